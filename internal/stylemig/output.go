package stylemig

import (
	"fmt"
	"io"
)

// OutputConfig bundles the settings shared by all output formats.
type OutputConfig struct {
	Reporter ReporterConfig
	Limits   ReportLimits
	// Reader re-reads sources for issue context lines. Nil disables them.
	Reader SourceReader
}

// DetermineOutputFormat selects the output format from the flag value.
// Unknown values fall back to the default text report.
func DetermineOutputFormat(formatFlag string, quiet bool) OutputFormat {
	// Quiet keeps only the totals
	if quiet {
		return OutputSummary
	}

	switch formatFlag {
	case "text":
		return OutputText
	case "issues":
		return OutputIssues
	case "summary":
		return OutputSummary
	case "json":
		return OutputJSON
	case "markdown", "md":
		return OutputMarkdown
	}

	return DetermineDefaultOutputFormat()
}

// DetermineDefaultOutputFormat returns the default output format
func DetermineDefaultOutputFormat() OutputFormat {
	return OutputText
}

// WriteOutput writes the project report in the given format
func WriteOutput(w io.Writer, project *ProjectReport, format OutputFormat, config OutputConfig) error {
	useColors := ShouldUseColors(config.Reporter.UseColors)

	switch format {
	case OutputIssues:
		reader := config.Reader
		if reader == nil {
			reader = BytesReader{}
		}
		issues := ProjectIssues(project, reader)
		reporter := NewReporter(w, config.Reporter)
		reporter.PrintIssues(issues)
		reporter.PrintSummary(issues)

	case OutputSummary:
		text := NewTextReporter(w, useColors, config.Limits)
		text.PrintStatistics(project)
		text.PrintSkipped(project)

	case OutputJSON:
		if err := WriteJSON(w, project); err != nil {
			return fmt.Errorf("write json: %w", err)
		}

	case OutputMarkdown:
		if err := WriteMarkdown(w, project, config.Limits); err != nil {
			return fmt.Errorf("write markdown: %w", err)
		}

	default:
		text := NewTextReporter(w, useColors, config.Limits)
		text.PrintScan(project)
		text.PrintStatistics(project)
	}
	return nil
}
