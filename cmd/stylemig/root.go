package main

import (
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/yacobolo/stylemig/internal/stylemig"
)

// logger is configured from --verbose/--log-format before any command runs.
var logger = slog.Default()

var rootCmd = &cobra.Command{
	Use:   "stylemig [file]",
	Short: "Find inline styles that can become utility classes",
	Long: `Scan JSX/TSX sources for inline style={{...}} literals and classify every
property as a utility class (d-flex, mb-16, gap-12) or a custom style.

With no arguments, scans the configured root and prints a project report.
With one file argument, prints a dry-run analysis of that file. Files are
never modified.`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: preRun,
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 1 {
			return runAnalyze(cmd, args[0])
		}
		return runScan(cmd)
	},
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Global persistent flags (inherited by all subcommands)
	pf := rootCmd.PersistentFlags()
	pf.BoolP("verbose", "v", false, "Enable debug logging")
	pf.Bool("quiet", false, "Print totals only")
	pf.Bool("color", false, "Force color output")
	pf.String("config", defaultConfigPath, "Config file path")
	pf.String("log-format", "text", "Log format: text|json")

	// Analysis
	pf.String("locator", stylemig.LocatorPattern, "Style literal locator: pattern|balanced|syntax")
	pf.String("table", "", "TOML utility table (default: built-in table)")
	pf.Bool("pixel-strings", false, "Treat '16px' strings as spacing/gap sizes")

	// Scanning
	pf.String("root", "src", "Directory to scan")
	pf.StringSlice("include", []string{"**/*.tsx", "**/*.jsx"}, "Glob patterns of files to analyze")
	pf.StringSlice("exclude", []string{"**/node_modules/**"}, "Glob patterns of files to skip")
	pf.Bool("gitignore", true, "Skip files ignored by <root>/.gitignore")
	pf.Int("workers", 1, "Files analyzed in parallel")

	// Output
	pf.String("output-format", "", "Output format: text|issues|summary|json|markdown")
	pf.Int("top", 30, "Rows in the most-common-styles table")
	pf.Int("files-limit", 20, "Rows in the files-by-occurrence listing")
	pf.Bool("print-lines", true, "Show source lines with issues")
	pf.Bool("print-linter-name", true, "Show (utility-style) suffix on issues")

	rootCmd.AddCommand(scanCmd)
	rootCmd.AddCommand(analyzeCmd)
	rootCmd.AddCommand(watchCmd)
	rootCmd.AddCommand(mcpCmd)
	rootCmd.AddCommand(tableCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(completionCmd)
	rootCmd.AddCommand(versionCmd)
}

// preRun loads configuration and installs the logger. Commands that only
// print (init, version, completion) skip it so a broken config file cannot
// block them.
func preRun(cmd *cobra.Command, _ []string) error {
	if err := loadConfig(cmd); err != nil {
		return err
	}
	logger = stylemig.NewLogger(buildLoggerConfig())
	slog.SetDefault(logger)
	return nil
}

// newAnalyzer builds the analyzer from the loaded configuration.
func newAnalyzer() (*stylemig.Analyzer, error) {
	return stylemig.NewAnalyzer(buildAnalyzerOptions(logger))
}
