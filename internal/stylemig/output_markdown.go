package stylemig

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// WriteMarkdown writes a shareable Markdown report of a scan.
func WriteMarkdown(w io.Writer, project *ProjectReport, limits ReportLimits) error {
	stats := ComputeStats(project)
	var b strings.Builder

	b.WriteString("# Inline Style Migration Report\n\n")
	fmt.Fprintf(&b, "_Generated %s for `%s`_\n\n", time.Now().Format("2006-01-02 15:04"), project.Root)

	b.WriteString("## Summary\n\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("|--------|-------|\n")
	fmt.Fprintf(&b, "| **Status** | %s |\n", migrationStatus(stats))
	fmt.Fprintf(&b, "| **Files Scanned** | %d |\n", project.FilesScanned)
	fmt.Fprintf(&b, "| **Files With Styles** | %d |\n", len(project.Files))
	fmt.Fprintf(&b, "| **Style Literals** | %d |\n", project.TotalLiterals)
	fmt.Fprintf(&b, "| **Utility Coverage** | %.1f%% |\n", stats.Coverage)
	fmt.Fprintf(&b, "| **Custom Style Sets** | %d |\n", stats.CustomSets)
	fmt.Fprintf(&b, "| **Dynamic Literals** | %d |\n\n", stats.Dynamic)

	if top := project.TopSignatures(limits.TopSignatures); len(top) > 0 {
		b.WriteString("## Most Common Inline Styles\n\n")
		b.WriteString("| Count | Style |\n")
		b.WriteString("|------:|-------|\n")
		for _, sc := range top {
			fmt.Fprintf(&b, "| %d | `%s` |\n", sc.Count, escapeMarkdown(sc.Signature))
		}
		b.WriteString("\n")
	}

	if files := project.FilesByCount(); len(files) > 0 {
		b.WriteString("## Files\n\n")
		b.WriteString("| Literals | File | Utility Classes | Custom Sets |\n")
		b.WriteString("|---------:|------|----------------:|------------:|\n")
		shown := files
		if limits.Files > 0 && len(files) > limits.Files {
			shown = files[:limits.Files]
		}
		for _, f := range shown {
			fmt.Fprintf(&b, "| %d | `%s` | %d | %d |\n",
				f.Count(), escapeMarkdown(f.Path), len(f.Classes), len(f.CustomStyles))
		}
		if len(files) > len(shown) {
			fmt.Fprintf(&b, "\n_... and %d more files_\n", len(files)-len(shown))
		}
		b.WriteString("\n")
	}

	if len(project.Skipped) > 0 {
		b.WriteString("## Skipped\n\n")
		for _, s := range project.Skipped {
			fmt.Fprintf(&b, "- `%s`: %s\n", escapeMarkdown(s.Path), escapeMarkdown(s.Reason))
		}
		b.WriteString("\n")
	}

	b.WriteString("---\n*Generated by stylemig*\n")

	_, err := io.WriteString(w, b.String())
	return err
}

// migrationStatus grades how much of the inline styling maps to utilities.
func migrationStatus(stats Stats) string {
	switch {
	case stats.Properties == 0:
		return "🟢 No inline styles"
	case stats.Coverage >= 80:
		return "🟢 Mostly convertible"
	case stats.Coverage >= 50:
		return "🟡 Partly convertible"
	default:
		return "🔴 Mostly custom"
	}
}

// escapeMarkdown escapes characters that break table cells.
func escapeMarkdown(s string) string {
	return strings.ReplaceAll(s, "|", "\\|")
}
