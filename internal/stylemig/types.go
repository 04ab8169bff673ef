package stylemig

import (
	"fmt"
	"strings"
)

// StyleLiteral is one inline style object found in source text.
type StyleLiteral struct {
	Text   string // Object literal including braces: "{ display: 'flex' }"
	Start  int    // Byte offset of the `style=` attribute
	End    int    // Byte offset just past the attribute
	Line   int    // 1-based
	Column int    // 1-based
}

// PropertyMap is an insertion-ordered mapping of style property to raw value.
// Setting an existing key overwrites its value but keeps its original position.
type PropertyMap struct {
	keys   []string
	values map[string]string
}

// NewPropertyMap returns an empty map.
func NewPropertyMap() PropertyMap {
	return PropertyMap{values: make(map[string]string)}
}

// Set inserts or overwrites a property.
func (m *PropertyMap) Set(key, value string) {
	if m.values == nil {
		m.values = make(map[string]string)
	}
	if _, exists := m.values[key]; !exists {
		m.keys = append(m.keys, key)
	}
	m.values[key] = value
}

// Get returns the raw value for key.
func (m PropertyMap) Get(key string) (string, bool) {
	v, ok := m.values[key]
	return v, ok
}

// Keys returns property names in insertion order.
func (m PropertyMap) Keys() []string {
	out := make([]string, len(m.keys))
	copy(out, m.keys)
	return out
}

// Len returns the number of properties.
func (m PropertyMap) Len() int {
	return len(m.keys)
}

// Signatures returns the normalized "property: value" form of every entry.
func (m PropertyMap) Signatures() []string {
	out := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		out = append(out, Signature(k, m.values[k]))
	}
	return out
}

// String renders the map the way it would appear in source: {color: 'red', gap: 4}
func (m PropertyMap) String() string {
	parts := make([]string, 0, len(m.keys))
	for _, k := range m.keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, m.values[k]))
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

// MarshalJSON keeps key order in structured output.
func (m PropertyMap) MarshalJSON() ([]byte, error) {
	var b strings.Builder
	b.WriteByte('{')
	for i, k := range m.keys {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s:%s", jsonString(k), jsonString(m.values[k]))
	}
	b.WriteByte('}')
	return []byte(b.String()), nil
}

// Signature builds the frequency-table key for one property.
func Signature(property, value string) string {
	return strings.TrimSpace(property) + ": " + strings.TrimSpace(value)
}

// ClassificationResult partitions one PropertyMap. Every input key lands in
// exactly one of Classes (via the class it produced) or Custom.
type ClassificationResult struct {
	Classes []string
	Custom  PropertyMap
}

// MatchReport is the analysis of a single style literal.
type MatchReport struct {
	Literal    StyleLiteral
	Properties PropertyMap
	Classes    []string
	Custom     PropertyMap
	Dynamic    bool // Literal holds computed expressions
}

// FileReport is the per-file analysis result.
type FileReport struct {
	Path         string
	Matches      []MatchReport
	Classes      []string      // Utility classes across all literals, in order
	CustomStyles []PropertyMap // Non-empty residuals needing manual styling
}

// Count returns the number of style literals in the file.
func (r *FileReport) Count() int {
	return len(r.Matches)
}

// SkippedFile records a file that could not be analyzed.
type SkippedFile struct {
	Path   string
	Reason string
}

// SignatureCount is one row of the frequency table.
type SignatureCount struct {
	Signature string
	Count     int
}

// ProjectReport aggregates a full tree scan.
type ProjectReport struct {
	Root          string
	Files         []*FileReport // Files with at least one literal, lexical order
	Frequencies   map[string]int
	Skipped       []SkippedFile
	FilesScanned  int
	TotalLiterals int
}

// OutputFormat represents the report output format
type OutputFormat string

const (
	// OutputText is the default human-readable scan report
	OutputText OutputFormat = "text"
	// OutputIssues shows golangci-lint style issues with source carets
	OutputIssues OutputFormat = "issues"
	// OutputSummary shows statistics and the frequency table only
	OutputSummary OutputFormat = "summary"
	// OutputJSON exports structured data for tooling
	OutputJSON OutputFormat = "json"
	// OutputMarkdown generates a shareable Markdown report
	OutputMarkdown OutputFormat = "markdown"
)
