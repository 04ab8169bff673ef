package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/posflag"
	"github.com/knadh/koanf/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/yacobolo/stylemig/internal/stylemig"
)

const defaultConfigPath = ".stylemig.yaml"

var k = koanf.New(".")

// dashedKeys restores config keys whose names contain a dash, which the
// env mapping (STYLEMIG_SCAN_FILES_LIMIT -> scan.files.limit) cannot express.
var dashedKeys = map[string]string{
	"log.format":             "log-format",
	"output.format":          "output-format",
	"scan.files.limit":       "scan.files-limit",
	"classify.pixel.strings": "classify.pixel-strings",
}

// loadConfig loads configuration with precedence: flags > env > file > defaults.
// It must be called after cobra parses flags (in PreRunE or RunE).
func loadConfig(cmd *cobra.Command) error {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath == "" {
		configPath = defaultConfigPath
	}

	if err := loadConfigFromPath(configPath); err != nil {
		return err
	}

	// CLI flags (highest precedence, only flags that were explicitly set)
	flags := cmd.Flags()
	provider := posflag.ProviderWithFlag(flags, ".", k, func(f *pflag.Flag) (string, interface{}) {
		if !f.Changed {
			return "", nil
		}
		return f.Name, posflag.FlagVal(flags, f)
	})
	if err := k.Load(provider, nil); err != nil {
		return fmt.Errorf("loading command flags: %w", err)
	}

	return nil
}

// loadConfigFromPath loads configuration from a file and environment variables.
// This is separated from loadConfig to allow testing without a cobra command.
func loadConfigFromPath(configPath string) error {
	if _, err := os.Stat(configPath); err == nil {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return fmt.Errorf("loading config file %s: %w", configPath, err)
		}
	}

	// STYLEMIG_SCAN_ROOT -> scan.root, STYLEMIG_VERBOSE -> verbose
	if err := k.Load(env.Provider("STYLEMIG_", ".", envKey), nil); err != nil {
		return fmt.Errorf("loading environment variables: %w", err)
	}

	return nil
}

func envKey(s string) string {
	key := strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(s, "STYLEMIG_")), "_", ".")
	if dashed, ok := dashedKeys[key]; ok {
		return dashed
	}
	return key
}

// buildScanOptions constructs the scan options from koanf state.
func buildScanOptions() stylemig.ScanOptions {
	defaults := stylemig.DefaultScanOptions()
	return stylemig.ScanOptions{
		Root:      getStringWithFallback("root", "scan.root", defaults.Root),
		Include:   getStringsWithFallback("include", "scan.include", defaults.Include),
		Exclude:   getStringsWithFallback("exclude", "scan.exclude", defaults.Exclude),
		Gitignore: getBoolWithFallback("gitignore", "scan.gitignore", defaults.Gitignore),
		Workers:   getIntWithFallback("workers", "scan.workers", defaults.Workers),
	}
}

// buildAnalyzerOptions constructs the analyzer options from koanf state.
func buildAnalyzerOptions(logger *slog.Logger) stylemig.AnalyzerOptions {
	return stylemig.AnalyzerOptions{
		Locator:      getStringWithFallback("locator", "parse.locator", stylemig.LocatorPattern),
		TablePath:    getStringWithFallback("table", "classify.table", ""),
		PixelStrings: getBoolWithFallback("pixel-strings", "classify.pixel-strings", false),
		Logger:       logger,
	}
}

// buildOutputConfig constructs report settings from koanf state.
func buildOutputConfig() stylemig.OutputConfig {
	defaults := stylemig.DefaultReportLimits()
	return stylemig.OutputConfig{
		Reporter: stylemig.ReporterConfig{
			UseColors:       getBoolWithFallback("color", "color", false),
			PrintLines:      getBoolWithFallback("print-lines", "output.print-lines", true),
			PrintLinterName: getBoolWithFallback("print-linter-name", "output.print-linter-name", true),
		},
		Limits: stylemig.ReportLimits{
			TopSignatures: getIntWithFallback("top", "scan.top", defaults.TopSignatures),
			Files:         getIntWithFallback("files-limit", "scan.files-limit", defaults.Files),
		},
	}
}

// buildLoggerConfig maps --verbose and --log-format to a logger config.
func buildLoggerConfig() stylemig.LoggerConfig {
	config := stylemig.DefaultLoggerConfig()
	if getBoolWithFallback("verbose", "verbose", false) {
		config.Level = stylemig.LevelDebug
	}
	config.Format = stylemig.LogFormat(getStringWithFallback("log-format", "log-format", string(stylemig.FormatText)))
	return config
}

// getStringWithFallback checks the flag key first, then the config file key, then returns the default.
func getStringWithFallback(flagKey, configKey, defaultVal string) string {
	if v := k.String(flagKey); v != "" {
		return v
	}
	if v := k.String(configKey); v != "" {
		return v
	}
	return defaultVal
}

// getStringsWithFallback checks the flag key first, then the config file key, then returns the default.
// A comma-separated string (from the environment) is split into a list.
func getStringsWithFallback(flagKey, configKey string, defaultVal []string) []string {
	for _, key := range []string{flagKey, configKey} {
		switch v := k.Get(key).(type) {
		case string:
			if list := splitList(v); len(list) > 0 {
				return list
			}
		case nil:
		default:
			if list := k.Strings(key); len(list) > 0 {
				return list
			}
		}
	}
	return defaultVal
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// getBoolWithFallback checks the flag key first, then the config file key, then returns the default.
func getBoolWithFallback(flagKey, configKey string, defaultVal bool) bool {
	if k.Exists(flagKey) {
		return k.Bool(flagKey)
	}
	if k.Exists(configKey) {
		return k.Bool(configKey)
	}
	return defaultVal
}

// getIntWithFallback checks the flag key first, then the config file key, then returns the default.
func getIntWithFallback(flagKey, configKey string, defaultVal int) int {
	if k.Exists(flagKey) {
		return k.Int(flagKey)
	}
	if k.Exists(configKey) {
		return k.Int(configKey)
	}
	return defaultVal
}
