package stylemig

import (
	"bytes"
	"fmt"
	"strings"
)

// Issue represents one inline style finding in golangci-lint format
type Issue struct {
	FromLinter  string       `json:"FromLinter"`  // "utility-style"
	Text        string       `json:"Text"`        // "inline style can use utility classes \"d-flex mb-16\""
	Severity    string       `json:"Severity"`    // "", "warning", "error"
	SourceLines []string     `json:"SourceLines"` // Lines of code with issue
	Pos         IssuePos     `json:"Pos"`         // File location
	Replacement *Replacement `json:"Replacement"` // Planned rewrite, if any
}

// IssuePos specifies the exact location of an issue
type IssuePos struct {
	Filename string `json:"Filename"` // "src/components/Card.tsx"
	Line     int    `json:"Line"`     // 35
	Column   int    `json:"Column"`   // 15 (1-based, start of style=)
}

// Replacement is the dry-run rewrite for the style attribute
type Replacement struct {
	NewText      string // className="d-flex mb-16"
	InlineLength int    // Length of text to replace
}

// IssueSeverity constants
const (
	SeverityError   = "error"
	SeverityWarning = "warning"
	SeverityInfo    = ""
)

// Issue sources, shown as the linter name.
const (
	LinterUtility = "utility-style"
	LinterCustom  = "custom-style"
	LinterDynamic = "dynamic-style"
)

// Issue text templates
const (
	IssueUtilityClasses = "inline style can use utility classes %q"
	IssueCustomStyles   = "inline style needs custom styles %s"
	IssueDynamicStyle   = "inline style contains computed expressions %s"
)

// FileIssues converts a file report into issues: one info issue per literal
// with utility classes and one warning per custom residual. Dynamic literals
// yield a single warning. src is used for source lines and may be nil.
func FileIssues(report *FileReport, src []byte) []Issue {
	plan := DryRunRewriter{}.Plan(report, src)
	replacements := make(map[int]*Replacement, len(plan.Edits))
	for _, e := range plan.Edits {
		if !e.Merged {
			replacements[e.Start] = &Replacement{NewText: e.Replacement, InlineLength: e.End - e.Start}
		}
	}

	var issues []Issue
	for _, m := range report.Matches {
		pos := IssuePos{Filename: report.Path, Line: m.Literal.Line, Column: m.Literal.Column}
		lines := sourceLine(src, m.Literal.Line)

		if m.Dynamic {
			issues = append(issues, Issue{
				FromLinter:  LinterDynamic,
				Text:        fmt.Sprintf(IssueDynamicStyle, m.Properties.String()),
				Severity:    SeverityWarning,
				SourceLines: lines,
				Pos:         pos,
			})
			continue
		}

		if len(m.Classes) > 0 {
			issues = append(issues, Issue{
				FromLinter:  LinterUtility,
				Text:        fmt.Sprintf(IssueUtilityClasses, strings.Join(m.Classes, " ")),
				Severity:    SeverityInfo,
				SourceLines: lines,
				Pos:         pos,
				Replacement: replacements[m.Literal.Start],
			})
		}
		if m.Custom.Len() > 0 {
			issues = append(issues, Issue{
				FromLinter:  LinterCustom,
				Text:        fmt.Sprintf(IssueCustomStyles, m.Custom.String()),
				Severity:    SeverityWarning,
				SourceLines: lines,
				Pos:         pos,
			})
		}
	}
	return issues
}

// ProjectIssues collects issues for every listed file, re-reading sources
// through reader for context lines. Files that can no longer be read get
// issues without source lines.
func ProjectIssues(project *ProjectReport, reader SourceReader) []Issue {
	var issues []Issue
	for _, f := range project.Files {
		err := reader.WithSource(f.Path, func(src []byte) error {
			issues = append(issues, FileIssues(f, src)...)
			return nil
		})
		if err != nil {
			issues = append(issues, FileIssues(f, nil)...)
		}
	}
	return issues
}

// sourceLine returns the 1-based line of src, without its terminator.
func sourceLine(src []byte, line int) []string {
	if len(src) == 0 || line < 1 {
		return nil
	}
	for i := 1; i < line; i++ {
		nl := bytes.IndexByte(src, '\n')
		if nl < 0 {
			return nil
		}
		src = src[nl+1:]
	}
	if nl := bytes.IndexByte(src, '\n'); nl >= 0 {
		src = src[:nl]
	}
	return []string{strings.TrimRight(string(src), "\r")}
}
