package stylemig

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"
)

// ReporterConfig controls issue rendering.
type ReporterConfig struct {
	UseColors       bool // Force colors on
	PrintLines      bool // Print the source line and a caret
	PrintLinterName bool // Append "(utility-style)" to each issue
}

// Reporter prints issues in golangci-lint format.
type Reporter struct {
	w               io.Writer
	useColors       bool
	printLines      bool
	printLinterName bool
}

// NewReporter creates a new reporter with the given configuration
func NewReporter(w io.Writer, config ReporterConfig) *Reporter {
	return &Reporter{
		w:               w,
		useColors:       ShouldUseColors(config.UseColors),
		printLines:      config.PrintLines,
		printLinterName: config.PrintLinterName,
	}
}

// ShouldUseColors reports whether output should be colored: the explicit
// flag, FORCE_COLOR, GitHub Actions, or a terminal on stdout.
func ShouldUseColors(flag bool) bool {
	if flag {
		return true
	}
	if os.Getenv("FORCE_COLOR") != "" {
		return true
	}
	if os.Getenv("GITHUB_ACTIONS") == "true" {
		return true
	}
	if fileInfo, err := os.Stdout.Stat(); err == nil && (fileInfo.Mode()&os.ModeCharDevice) != 0 {
		return true
	}
	return false
}

// PrintIssues prints issues sorted by file, line, then column.
func (r *Reporter) PrintIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Pos.Filename != issues[j].Pos.Filename {
			return issues[i].Pos.Filename < issues[j].Pos.Filename
		}
		if issues[i].Pos.Line != issues[j].Pos.Line {
			return issues[i].Pos.Line < issues[j].Pos.Line
		}
		return issues[i].Pos.Column < issues[j].Pos.Column
	})

	for _, issue := range issues {
		r.printIssue(issue)
	}
}

// printIssue formats a single issue as file:line:col: text (linter)
func (r *Reporter) printIssue(issue Issue) {
	location := fmt.Sprintf("%s:%d:%d:", issue.Pos.Filename, issue.Pos.Line, issue.Pos.Column)

	linterSuffix := ""
	if r.printLinterName {
		linterSuffix = fmt.Sprintf(" (%s)", issue.FromLinter)
	}

	fmt.Fprintf(r.w, "%s %s%s\n",
		RenderStyle(StyleCyan, location, r.useColors),
		issue.Text,
		RenderStyle(StyleGray, linterSuffix, r.useColors))

	if r.printLines && len(issue.SourceLines) > 0 {
		for _, line := range issue.SourceLines {
			fmt.Fprintf(r.w, "\t%s\n", line)
		}
		caret := r.buildCaretIndicator(issue.SourceLines[0], issue.Pos.Column)
		fmt.Fprintf(r.w, "\t%s\n", RenderStyle(StyleYellow, caret, r.useColors))
	}

	if issue.Replacement != nil {
		fmt.Fprintf(r.w, "\t%s %s\n",
			RenderStyle(StyleGray, "→", r.useColors),
			RenderStyle(StyleGreen, issue.Replacement.NewText, r.useColors))
	}
}

// buildCaretIndicator aligns "^" under column, copying tabs from the
// source prefix so it lines up with any tab width.
func (r *Reporter) buildCaretIndicator(sourceLine string, column int) string {
	if column <= 0 {
		return "^"
	}

	prefixLen := min(column-1, len(sourceLine))

	var padding strings.Builder
	for _, ch := range sourceLine[:prefixLen] {
		if ch == '\t' {
			padding.WriteRune('\t')
		} else {
			padding.WriteRune(' ')
		}
	}

	return padding.String() + "^"
}

// PrintSummary prints the issue counts by severity and linter.
func (r *Reporter) PrintSummary(issues []Issue) {
	var warnings, infos int
	for _, issue := range issues {
		switch issue.Severity {
		case SeverityWarning:
			warnings++
		case SeverityInfo:
			infos++
		}
	}

	fmt.Fprintln(r.w, "")
	if warnings > 0 && infos > 0 {
		fmt.Fprintf(r.w, "%s (%s, %s):\n",
			pluralizeCount(len(issues), "issue", "issues"),
			pluralizeCount(infos, "convertible", "convertible"),
			pluralizeCount(warnings, "warning", "warnings"))
	} else {
		fmt.Fprintf(r.w, "%s:\n", pluralizeCount(len(issues), "issue", "issues"))
	}

	linterCounts := make(map[string]int)
	for _, issue := range issues {
		linterCounts[issue.FromLinter]++
	}
	linters := make([]string, 0, len(linterCounts))
	for linter := range linterCounts {
		linters = append(linters, linter)
	}
	sort.Strings(linters)
	for _, linter := range linters {
		fmt.Fprintf(r.w, "* %s: %d\n", linter, linterCounts[linter])
	}

	if len(issues) > 0 {
		fmt.Fprintln(r.w, "")
		fmt.Fprintln(r.w, RenderStyle(StyleGray, "Hint: Run `stylemig analyze <file>` for a dry-run rewrite plan", r.useColors))
	}
}

// pluralizeCount returns a formatted string with count and singular/plural form
func pluralizeCount(count int, singular, plural string) string {
	if count == 1 {
		return fmt.Sprintf("%d %s", count, singular)
	}
	return fmt.Sprintf("%d %s", count, plural)
}

// UseColors returns whether colors are enabled
func (r *Reporter) UseColors() bool {
	return r.useColors
}
