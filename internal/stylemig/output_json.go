package stylemig

import (
	"encoding/json"
	"io"
	"time"

	"github.com/google/uuid"
)

// JSONSchemaVersion is bumped on incompatible output changes.
const JSONSchemaVersion = "1.0"

// JSONOutput represents the structured JSON export schema
type JSONOutput struct {
	Version     string          `json:"version"`
	ScanID      string          `json:"scan_id"`
	Timestamp   string          `json:"timestamp"`
	Root        string          `json:"root"`
	Summary     JSONSummary     `json:"summary"`
	Frequencies []JSONSignature `json:"frequencies"`
	Files       []JSONFile      `json:"files"`
	Skipped     []JSONSkipped   `json:"skipped"`
}

// JSONSummary contains the project totals
type JSONSummary struct {
	FilesScanned    int     `json:"files_scanned"`
	FilesWithStyles int     `json:"files_with_styles"`
	TotalLiterals   int     `json:"total_literals"`
	Properties      int     `json:"properties"`
	UtilityClasses  int     `json:"utility_classes"`
	CustomStyleSets int     `json:"custom_style_sets"`
	DynamicLiterals int     `json:"dynamic_literals"`
	Coverage        float64 `json:"coverage_percentage"`
}

// JSONSignature is one frequency table row
type JSONSignature struct {
	Signature string `json:"signature"`
	Count     int    `json:"count"`
}

// JSONFile is the report for one file
type JSONFile struct {
	Path         string        `json:"path"`
	Count        int           `json:"count"`
	Classes      []string      `json:"classes"`
	CustomStyles []PropertyMap `json:"custom_styles"`
	Matches      []JSONMatch   `json:"matches"`
}

// JSONMatch is one style literal
type JSONMatch struct {
	Line       int         `json:"line"`
	Column     int         `json:"column"`
	Literal    string      `json:"literal"`
	Properties PropertyMap `json:"properties"`
	Classes    []string    `json:"classes"`
	Custom     PropertyMap `json:"custom"`
	Dynamic    bool        `json:"dynamic"`
}

// JSONSkipped is a file the scan could not read
type JSONSkipped struct {
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// WriteJSON writes the project report as indented JSON
func WriteJSON(w io.Writer, project *ProjectReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildJSONOutput(project))
}

// WriteFileJSON writes a single file report as indented JSON
func WriteFileJSON(w io.Writer, report *FileReport) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(BuildJSONFile(report))
}

// BuildJSONOutput converts a ProjectReport to JSONOutput
func BuildJSONOutput(project *ProjectReport) JSONOutput {
	stats := ComputeStats(project)

	frequencies := make([]JSONSignature, 0, len(project.Frequencies))
	for _, sc := range project.TopSignatures(0) {
		frequencies = append(frequencies, JSONSignature{Signature: sc.Signature, Count: sc.Count})
	}

	files := make([]JSONFile, len(project.Files))
	for i, f := range project.Files {
		files[i] = BuildJSONFile(f)
	}

	skipped := make([]JSONSkipped, len(project.Skipped))
	for i, s := range project.Skipped {
		skipped[i] = JSONSkipped{Path: s.Path, Reason: s.Reason}
	}

	return JSONOutput{
		Version:   JSONSchemaVersion,
		ScanID:    uuid.NewString(),
		Timestamp: time.Now().Format(time.RFC3339),
		Root:      project.Root,
		Summary: JSONSummary{
			FilesScanned:    project.FilesScanned,
			FilesWithStyles: len(project.Files),
			TotalLiterals:   project.TotalLiterals,
			Properties:      stats.Properties,
			UtilityClasses:  stats.Classes,
			CustomStyleSets: stats.CustomSets,
			DynamicLiterals: stats.Dynamic,
			Coverage:        stats.Coverage,
		},
		Frequencies: frequencies,
		Files:       files,
		Skipped:     skipped,
	}
}

// BuildJSONFile converts a FileReport to JSONFile
func BuildJSONFile(f *FileReport) JSONFile {
	out := JSONFile{
		Path:         f.Path,
		Count:        f.Count(),
		Classes:      nonNil(f.Classes),
		CustomStyles: f.CustomStyles,
		Matches:      make([]JSONMatch, len(f.Matches)),
	}
	if out.CustomStyles == nil {
		out.CustomStyles = []PropertyMap{}
	}
	for i, m := range f.Matches {
		out.Matches[i] = JSONMatch{
			Line:       m.Literal.Line,
			Column:     m.Literal.Column,
			Literal:    m.Literal.Text,
			Properties: m.Properties,
			Classes:    nonNil(m.Classes),
			Custom:     m.Custom,
			Dynamic:    m.Dynamic,
		}
	}
	return out
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

// jsonString quotes s as a JSON string.
func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}
