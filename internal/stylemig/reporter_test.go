package stylemig

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildCaretIndicator(t *testing.T) {
	reporter := &Reporter{}

	tests := []struct {
		name       string
		sourceLine string
		column     int
		want       string
	}{
		{
			name:       "spaces only",
			sourceLine: "  <div style={{ gap: 4 }}>",
			column:     8,
			want:       "       ^", // 7 spaces + caret
		},
		{
			name:       "tabs and spaces",
			sourceLine: "\t\t<div style={{ gap: 4 }}>",
			column:     8,
			want:       "\t\t     ^", // 2 tabs + 5 spaces + caret
		},
		{
			name:       "start of line",
			sourceLine: "style={{ gap: 4 }}",
			column:     1,
			want:       "^",
		},
		{
			name:       "column 0 fallback",
			sourceLine: "some line",
			column:     0,
			want:       "^",
		},
		{
			name:       "column beyond line length",
			sourceLine: "short",
			column:     100,
			want:       "     ^", // Pads to line length only
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := reporter.buildCaretIndicator(tt.sourceLine, tt.column)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestFileIssues(t *testing.T) {
	src := `<div>
  <p style={{ display: 'flex', color: 'red' }} />
  <p style={{ width: size }} />
</div>`
	report := newTestAnalyzer(t, AnalyzerOptions{}).AnalyzeSource("Card.tsx", []byte(src))

	issues := FileIssues(report, []byte(src))
	require.Len(t, issues, 3)

	assert.Equal(t, LinterUtility, issues[0].FromLinter)
	assert.Equal(t, `inline style can use utility classes "d-flex"`, issues[0].Text)
	assert.Equal(t, SeverityInfo, issues[0].Severity)
	assert.Equal(t, IssuePos{Filename: "Card.tsx", Line: 2, Column: 6}, issues[0].Pos)
	assert.Equal(t, []string{"  <p style={{ display: 'flex', color: 'red' }} />"}, issues[0].SourceLines)
	require.NotNil(t, issues[0].Replacement)
	assert.Equal(t, `className="d-flex" style={{color: 'red'}}`, issues[0].Replacement.NewText)

	assert.Equal(t, LinterCustom, issues[1].FromLinter)
	assert.Equal(t, "inline style needs custom styles {color: 'red'}", issues[1].Text)
	assert.Equal(t, SeverityWarning, issues[1].Severity)

	assert.Equal(t, LinterDynamic, issues[2].FromLinter)
	assert.Equal(t, 3, issues[2].Pos.Line)
	assert.Nil(t, issues[2].Replacement)
}

func TestFileIssues_NoSource(t *testing.T) {
	report := newTestAnalyzer(t, AnalyzerOptions{}).AnalyzeSource("Card.tsx", []byte(`<p style={{ margin: 0 }} />`))

	issues := FileIssues(report, nil)
	require.Len(t, issues, 1)
	assert.Empty(t, issues[0].SourceLines)
	assert.Nil(t, issues[0].Replacement)
}

func TestReporter_PrintIssues(t *testing.T) {
	issues := []Issue{
		{FromLinter: LinterCustom, Text: "b", Severity: SeverityWarning, Pos: IssuePos{Filename: "b.tsx", Line: 1, Column: 1}},
		{
			FromLinter:  LinterUtility,
			Text:        "a",
			Pos:         IssuePos{Filename: "a.tsx", Line: 3, Column: 3},
			SourceLines: []string{"  style={{ margin: 0 }}"},
			Replacement: &Replacement{NewText: `className="m-0"`},
		},
	}

	var buf bytes.Buffer
	reporter := &Reporter{w: &buf, printLines: true, printLinterName: true}
	reporter.PrintIssues(issues)

	want := "a.tsx:3:3: a (utility-style)\n" +
		"\t  style={{ margin: 0 }}\n" +
		"\t  ^\n" +
		"\t→ className=\"m-0\"\n" +
		"b.tsx:1:1: b (custom-style)\n"
	assert.Equal(t, want, buf.String())
}

func TestReporter_PrintSummary(t *testing.T) {
	issues := []Issue{
		{FromLinter: LinterUtility, Severity: SeverityInfo},
		{FromLinter: LinterUtility, Severity: SeverityInfo},
		{FromLinter: LinterCustom, Severity: SeverityWarning},
	}

	var buf bytes.Buffer
	(&Reporter{w: &buf}).PrintSummary(issues)

	out := buf.String()
	assert.Contains(t, out, "3 issues (2 convertible, 1 warning):")
	assert.Contains(t, out, "* custom-style: 1\n* utility-style: 2\n")
	assert.Contains(t, out, "stylemig analyze <file>")
}

func TestTextReporter_PrintScan(t *testing.T) {
	a := newTestAnalyzer(t, AnalyzerOptions{})
	project := Aggregate("src", []*FileReport{
		a.AnalyzeSource("src/A.tsx", []byte(`<a style={{ margin: 0 }} /><b style={{ margin: 0 }} />`)),
		a.AnalyzeSource("src/B.tsx", []byte(`<a style={{ color: 'red' }} />`)),
		a.AnalyzeSource("src/C.tsx", []byte(`<a style={{ gap: 4 }} />`)),
	})
	project.Skipped = []SkippedFile{{Path: "src/D.tsx", Reason: "permission denied"}}

	var buf bytes.Buffer
	NewTextReporter(&buf, false, ReportLimits{TopSignatures: 2, Files: 2}).PrintScan(project)

	out := buf.String()
	assert.Contains(t, out, "SCAN RESULTS: Found 3 files with inline styles")
	assert.Contains(t, out, "Total inline style occurrences: 4")
	assert.Contains(t, out, "Top 2 most common inline styles:")
	assert.Contains(t, out, "  2x  margin: 0\n  1x  color: 'red'\n")
	assert.NotContains(t, out, "gap: 4")
	assert.Contains(t, out, "    2 - src/A.tsx\n    1 - src/B.tsx\n")
	assert.Contains(t, out, "... and 1 more files")
	assert.Contains(t, out, "src/D.tsx: permission denied")
}

func TestTextReporter_PrintDryRun(t *testing.T) {
	src := []byte(`<div style={{ display: 'flex', marginBottom: 16, color: 'red' }}>x</div>`)
	report := newTestAnalyzer(t, AnalyzerOptions{}).AnalyzeSource("Card.tsx", src)
	plan := DryRunRewriter{}.Plan(report, src)

	var buf bytes.Buffer
	text := NewTextReporter(&buf, false, DefaultReportLimits())
	text.PrintDryRun(report, plan, SuggestRules(report))
	text.PrintApplyResult(DryRunRewriter{}.Apply(plan))
	text.PrintApplyResult(errors.New("other"))

	out := buf.String()
	assert.Contains(t, out, "[DRY RUN] Processing: Card.tsx")
	assert.Contains(t, out, "Found 1 inline style occurrences")
	assert.Contains(t, out, "→ Utility classes: d-flex mb-16")
	assert.Contains(t, out, "→ Custom styles needed: {color: 'red'}")
	assert.Contains(t, out, `+ className="d-flex mb-16" style={{color: 'red'}}`)
	assert.Contains(t, out, ".card-1 {\n  color: red;\n}\n")
	assert.Contains(t, out, "[Would modify file here]")
	assert.Contains(t, out, "the file was left unchanged")
}

func TestTextReporter_PrintDryRunNoStyles(t *testing.T) {
	report := &FileReport{Path: "Empty.tsx"}

	var buf bytes.Buffer
	NewTextReporter(&buf, false, DefaultReportLimits()).PrintDryRun(report, RewritePlan{}, nil)
	assert.Contains(t, buf.String(), "No inline styles found")
	assert.NotContains(t, buf.String(), "Would modify")
}

func TestComputeStats(t *testing.T) {
	a := newTestAnalyzer(t, AnalyzerOptions{})
	project := Aggregate("src", []*FileReport{
		a.AnalyzeSource("A.tsx", []byte(`<a style={{ display: 'flex', margin: 0, color: 'red', width: w }} />`)),
	})

	stats := ComputeStats(project)
	assert.Equal(t, Stats{Properties: 4, Classes: 2, CustomSets: 1, Custom: 2, Dynamic: 1, Coverage: 50}, stats)
}
