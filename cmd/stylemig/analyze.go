package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylemig/internal/stylemig"
)

var analyzeCmd = &cobra.Command{
	Use:     "analyze <file>",
	Aliases: []string{"dry-run"},
	Short:   "Dry-run analysis of one file",
	Long: `Print the inline style literals of one file, their utility classes and custom
styles, the rewrite that would be made, and SCSS suggestions for the custom
styles. The file is never modified.`,
	Args:    cobra.ExactArgs(1),
	PreRunE: preRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runAnalyze(cmd, args[0])
	},
}

// runAnalyze is shared between `stylemig <file>` and `stylemig analyze`.
func runAnalyze(_ *cobra.Command, path string) error {
	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer analyzer.Close()

	format := stylemig.DetermineOutputFormat(getStringWithFallback("output-format", "output-format", ""), false)
	useColors := stylemig.ShouldUseColors(getBoolWithFallback("color", "color", false))
	rewriter := stylemig.DryRunRewriter{}

	return analyzer.Reader.WithSource(path, func(src []byte) error {
		report := analyzer.AnalyzeSource(path, src)

		if format == stylemig.OutputJSON {
			return stylemig.WriteFileJSON(os.Stdout, report)
		}

		plan := rewriter.Plan(report, src)
		text := stylemig.NewTextReporter(os.Stdout, useColors, stylemig.DefaultReportLimits())
		text.PrintDryRun(report, plan, stylemig.SuggestRules(report))

		if len(plan.Edits) == 0 {
			return nil
		}
		if err := rewriter.Apply(plan); err != nil {
			if errors.Is(err, stylemig.ErrRewriteNotImplemented) {
				text.PrintApplyResult(err)
				return nil
			}
			return fmt.Errorf("apply rewrite: %w", err)
		}
		return nil
	})
}
