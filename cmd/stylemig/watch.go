package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylemig/internal/stylemig"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Re-scan whenever source files change",
	Long: `Scan the source tree, then re-analyze after every burst of changes and print
an updated summary. Unchanged files are served from a cache.`,
	Args:    cobra.NoArgs,
	PreRunE: preRun,
	RunE: func(cmd *cobra.Command, _ []string) error {
		analyzer, err := newAnalyzer()
		if err != nil {
			return err
		}
		defer analyzer.Close()

		opts := buildScanOptions()
		opts.Analyzer = analyzer
		opts.Logger = logger

		debounce, _ := cmd.Flags().GetDuration("debounce")
		config := buildOutputConfig()
		useColors := stylemig.ShouldUseColors(config.Reporter.UseColors)

		session, err := stylemig.NewWatchSession(stylemig.WatchOptions{
			Scan:     opts,
			Debounce: debounce,
			OnReport: func(project *stylemig.ProjectReport) {
				fmt.Fprintf(os.Stdout, "\n[%s] ", time.Now().Format("15:04:05"))
				text := stylemig.NewTextReporter(os.Stdout, useColors, config.Limits)
				text.PrintScan(project)
				text.PrintStatistics(project)
			},
		})
		if err != nil {
			return err
		}
		return session.Run(cmd.Context())
	},
}

func init() {
	watchCmd.Flags().Duration("debounce", 200*time.Millisecond, "Quiet period before re-analysis")
}
