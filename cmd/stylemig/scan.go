package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylemig/internal/stylemig"
)

var scanCmd = &cobra.Command{
	Use:   "scan [root]",
	Short: "Scan a source tree for inline styles",
	Long: `Walk the source tree, analyze every matching file, and report literal counts,
the most common property/value signatures, and files by occurrence count.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: preRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			if err := k.Set("root", args[0]); err != nil {
				return err
			}
		}
		return runScan(cmd)
	},
}

// runScan is shared between `stylemig` and `stylemig scan`.
func runScan(cmd *cobra.Command) error {
	analyzer, err := newAnalyzer()
	if err != nil {
		return err
	}
	defer analyzer.Close()

	opts := buildScanOptions()
	opts.Analyzer = analyzer
	opts.Logger = logger

	quiet := getBoolWithFallback("quiet", "quiet", false)
	if !quiet && isInteractive() {
		fmt.Fprintln(os.Stderr, "Scanning project for inline styles...")
	}

	project, err := stylemig.Scan(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	format := stylemig.DetermineOutputFormat(getStringWithFallback("output-format", "output-format", ""), quiet)
	config := buildOutputConfig()
	config.Reader = analyzer.Reader
	return stylemig.WriteOutput(os.Stdout, project, format, config)
}

// isInteractive reports whether stderr is a terminal.
func isInteractive() bool {
	info, err := os.Stderr.Stat()
	return err == nil && info.Mode()&os.ModeCharDevice != 0
}
