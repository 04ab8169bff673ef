package stylemig

import (
	"errors"
	"fmt"
	"io"
	"strings"
)

// ReportLimits caps the long listings of the text report.
type ReportLimits struct {
	TopSignatures int // Rows of the frequency table
	Files         int // Rows of the files-by-occurrence listing
}

// DefaultReportLimits returns the stock report sizes.
func DefaultReportLimits() ReportLimits {
	return ReportLimits{TopSignatures: 30, Files: 20}
}

const separator = "============================================================"

// TextReporter prints human-readable scan and dry-run reports.
type TextReporter struct {
	w         io.Writer
	useColors bool
	limits    ReportLimits
}

// NewTextReporter creates a text reporter
func NewTextReporter(w io.Writer, useColors bool, limits ReportLimits) *TextReporter {
	return &TextReporter{
		w:         w,
		useColors: useColors,
		limits:    limits,
	}
}

// PrintScan prints the full scan report: totals, the most common
// signatures, files by occurrence count, and skipped files.
func (r *TextReporter) PrintScan(project *ProjectReport) {
	fmt.Fprintln(r.w, separator)
	fmt.Fprintln(r.w, RenderStyle(StyleCyan,
		fmt.Sprintf("SCAN RESULTS: Found %d files with inline styles", len(project.Files)), r.useColors))
	fmt.Fprintln(r.w, separator)

	fmt.Fprintf(r.w, "\nTotal inline style occurrences: %d\n", project.TotalLiterals)

	r.PrintTopSignatures(project)
	r.PrintFiles(project)
	r.PrintSkipped(project)
}

// PrintTopSignatures prints the frequency table.
func (r *TextReporter) PrintTopSignatures(project *ProjectReport) {
	top := project.TopSignatures(r.limits.TopSignatures)
	if len(top) == 0 {
		return
	}
	fmt.Fprintf(r.w, "\nTop %d most common inline styles:\n", len(top))
	fmt.Fprintln(r.w, strings.Repeat("-", len(separator)))
	for _, sc := range top {
		fmt.Fprintf(r.w, "%3dx  %s\n", sc.Count, sc.Signature)
	}
}

// PrintFiles prints files by descending literal count.
func (r *TextReporter) PrintFiles(project *ProjectReport) {
	files := project.FilesByCount()
	if len(files) == 0 {
		return
	}
	fmt.Fprintln(r.w, "\nFiles by occurrence count:")

	shown := files
	if r.limits.Files > 0 && len(files) > r.limits.Files {
		shown = files[:r.limits.Files]
	}
	for _, f := range shown {
		fmt.Fprintf(r.w, "  %3d - %s\n", f.Count(), f.Path)
	}
	if len(files) > len(shown) {
		fmt.Fprintf(r.w, "\n  ... and %d more files\n", len(files)-len(shown))
	}
}

// PrintSkipped lists files that could not be analyzed.
func (r *TextReporter) PrintSkipped(project *ProjectReport) {
	if len(project.Skipped) == 0 {
		return
	}
	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleRed, fmt.Sprintf("Skipped %d unreadable paths", len(project.Skipped)), r.useColors))
	for _, s := range project.Skipped {
		fmt.Fprintf(r.w, "  • %s: %s\n", s.Path, s.Reason)
	}
}

// PrintStatistics prints the conversion statistics.
func (r *TextReporter) PrintStatistics(project *ProjectReport) {
	stats := ComputeStats(project)

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Inline Style Statistics", r.useColors))
	fmt.Fprintln(r.w, "-----------------------")
	fmt.Fprintf(r.w, "Files Scanned:           %d\n", project.FilesScanned)
	fmt.Fprintf(r.w, "Files With Styles:       %d\n", len(project.Files))
	fmt.Fprintf(r.w, "Style Literals:          %d\n", project.TotalLiterals)
	fmt.Fprintf(r.w, "Properties:              %d\n", stats.Properties)
	fmt.Fprintf(r.w, "Utility Classes:         %d\n", stats.Classes)
	fmt.Fprintf(r.w, "Custom Style Sets:       %d\n", stats.CustomSets)
	fmt.Fprintf(r.w, "Dynamic Literals:        %d\n", stats.Dynamic)
	fmt.Fprintf(r.w, "Distinct Signatures:     %d\n", len(project.Frequencies))

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Utility Coverage", r.useColors))
	fmt.Fprintln(r.w, "----------------")
	printProgressBar(r.w, stats.Coverage)
}

// PrintDryRun prints the single-file analysis: matches, the rewrite plan,
// and stylesheet suggestions. Nothing is written to disk.
func (r *TextReporter) PrintDryRun(report *FileReport, plan RewritePlan, rules []StylesheetRule) {
	fmt.Fprintf(r.w, "\n[DRY RUN] Processing: %s\n", report.Path)

	if report.Count() == 0 {
		fmt.Fprintln(r.w, "  No inline styles found")
		return
	}
	fmt.Fprintf(r.w, "  Found %d inline style occurrences\n", report.Count())

	for _, m := range report.Matches {
		fmt.Fprintln(r.w, RenderStyle(StyleGray,
			fmt.Sprintf("  line %d: %s", m.Literal.Line, m.Literal.Text), r.useColors))
		if m.Dynamic {
			fmt.Fprintln(r.w, RenderStyle(StyleYellow, "    → Dynamic expression, left as is", r.useColors))
		}
		if len(m.Classes) > 0 {
			fmt.Fprintf(r.w, "    → Utility classes: %s\n",
				RenderStyle(StyleGreen, strings.Join(m.Classes, " "), r.useColors))
		}
		if m.Custom.Len() > 0 {
			fmt.Fprintf(r.w, "    → Custom styles needed: %s\n",
				RenderStyle(StyleYellow, m.Custom.String(), r.useColors))
		}
	}

	if len(plan.Edits) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Planned edits", r.useColors))
		for _, e := range plan.Edits {
			verb := "replace"
			if e.Merged {
				verb = "merge"
			}
			fmt.Fprintf(r.w, "  %s:%d %s\n", plan.Path, e.Line, verb)
			fmt.Fprintf(r.w, "    - %s\n", e.Original)
			fmt.Fprintf(r.w, "    + %s\n", RenderStyle(StyleGreen, e.Replacement, r.useColors))
		}
	}
	for _, s := range plan.Skipped {
		fmt.Fprintf(r.w, "  %s:%d skipped (%s)\n", plan.Path, s.Line, s.Reason)
	}

	if len(rules) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleCyan, "Suggested SCSS", r.useColors))
		for _, rule := range rules {
			fmt.Fprint(r.w, rule.String())
		}
	}

	fmt.Fprintln(r.w, "")
	fmt.Fprintln(r.w, RenderStyle(StyleGray, "  [Would modify file here]", r.useColors))
}

// PrintApplyResult explains why a plan was not applied.
func (r *TextReporter) PrintApplyResult(err error) {
	if errors.Is(err, ErrRewriteNotImplemented) {
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "  Rewriting is not implemented; the file was left unchanged.", r.useColors))
	}
}

// Stats are derived totals over a project report.
type Stats struct {
	Properties int
	Classes    int
	CustomSets int
	Custom     int // Properties left as custom styles
	Dynamic    int
	Coverage   float64 // Percent of properties mapped to utilities
}

// ComputeStats totals a project report.
func ComputeStats(project *ProjectReport) Stats {
	var s Stats
	for _, f := range project.Files {
		s.CustomSets += len(f.CustomStyles)
		for _, m := range f.Matches {
			s.Properties += m.Properties.Len()
			s.Classes += len(m.Classes)
			s.Custom += m.Custom.Len()
			if m.Dynamic {
				s.Dynamic++
			}
		}
	}
	if s.Properties > 0 {
		s.Coverage = float64(s.Properties-s.Custom) / float64(s.Properties) * 100
	}
	return s
}

// printProgressBar prints a visual progress bar
func printProgressBar(w io.Writer, percentage float64) {
	barWidth := 20
	filled := int(percentage / 100 * float64(barWidth))

	fmt.Fprint(w, "[")
	for i := 0; i < barWidth; i++ {
		if i < filled {
			fmt.Fprint(w, "█")
		} else {
			fmt.Fprint(w, "░")
		}
	}
	fmt.Fprintf(w, "] %.1f%%\n", percentage)
}
