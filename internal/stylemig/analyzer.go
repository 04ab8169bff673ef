// Package stylemig finds inline style literals in JSX/TSX sources and
// classifies their properties into utility classes and custom styles.
package stylemig

import (
	"fmt"
	"io"
	"log/slog"
)

// Analyzer runs Locator → Parse → Classifier over one file.
// It only reads sources; nothing is ever written back.
type Analyzer struct {
	Locator    Locator
	Parse      func(literal string) PropertyMap
	Classifier *Classifier
	Reader     SourceReader
	Logger     *slog.Logger
}

// AnalyzerOptions selects the analyzer components.
type AnalyzerOptions struct {
	Locator      string // pattern | balanced | syntax
	TablePath    string // TOML utility table; empty uses the built-in table
	PixelStrings bool
	Logger       *slog.Logger
}

// NewAnalyzer builds an analyzer from options.
func NewAnalyzer(opts AnalyzerOptions) (*Analyzer, error) {
	locator, err := NewLocator(opts.Locator)
	if err != nil {
		return nil, err
	}

	table := DefaultUtilityTable()
	if opts.TablePath != "" {
		table, err = LoadUtilityTable(opts.TablePath)
		if err != nil {
			return nil, err
		}
	}

	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}

	classifier := NewClassifier(table)
	classifier.PixelStrings = opts.PixelStrings

	return &Analyzer{
		Locator:    locator,
		Parse:      ParserFor(opts.Locator),
		Classifier: classifier,
		Reader:     MmapReader{Logger: logger},
		Logger:     logger,
	}, nil
}

// AnalyzeFile reads path and analyzes its contents.
func (a *Analyzer) AnalyzeFile(path string) (*FileReport, error) {
	var report *FileReport
	err := a.Reader.WithSource(path, func(src []byte) error {
		report = a.AnalyzeSource(path, src)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("analyze %s: %w", path, err)
	}
	return report, nil
}

// AnalyzeSource analyzes src as the contents of path. The report does not
// retain src.
func (a *Analyzer) AnalyzeSource(path string, src []byte) *FileReport {
	report := &FileReport{Path: path}
	for lit := range a.Locator.Locate(src) {
		m := a.analyzeLiteral(lit)
		report.Matches = append(report.Matches, m)
		report.Classes = append(report.Classes, m.Classes...)
		if m.Custom.Len() > 0 {
			report.CustomStyles = append(report.CustomStyles, m.Custom)
		}
	}

	if a.Logger != nil && report.Count() > 0 {
		a.Logger.Debug("analyzed file",
			"path", path,
			"literals", report.Count(),
			"classes", len(report.Classes),
			"custom", len(report.CustomStyles))
	}
	return report
}

func (a *Analyzer) analyzeLiteral(lit StyleLiteral) MatchReport {
	props := a.Parse(lit.Text)
	result := a.Classifier.ClassifyMap(props)
	return MatchReport{
		Literal:    lit,
		Properties: props,
		Classes:    result.Classes,
		Custom:     result.Custom,
		Dynamic:    isDynamicLiteral(lit.Text, props),
	}
}

// ClassifyLiteral parses and classifies one literal without any source file.
// The literal may be given with or without its surrounding style={...}.
func (a *Analyzer) ClassifyLiteral(literal string) MatchReport {
	for lit := range a.Locator.Locate([]byte(literal)) {
		return a.analyzeLiteral(lit)
	}
	return a.analyzeLiteral(StyleLiteral{Text: literal, End: len(literal), Line: 1, Column: 1})
}

// Close releases resources held by the locator, such as pooled syntax
// parsers.
func (a *Analyzer) Close() error {
	if c, ok := a.Locator.(io.Closer); ok {
		return c.Close()
	}
	return nil
}
