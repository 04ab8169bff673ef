// Package stylemig analyzes inline style={{...}} literals in JSX/TSX sources
// and reports which properties map to utility classes and which need custom
// styles.
//
// # Single file
//
// Analyze one file without modifying it:
//
//	report, err := stylemig.AnalyzeFile("src/components/Card.tsx", stylemig.DefaultOptions())
//	for _, m := range report.Matches {
//		fmt.Println(m.Classes, m.Custom)
//	}
//
// # Project scan
//
// Walk a source tree and aggregate the most common signatures:
//
//	opts := stylemig.DefaultOptions()
//	opts.Root = "web/src"
//	project, err := stylemig.Scan(ctx, opts)
//	for _, sc := range project.TopSignatures(30) {
//		fmt.Printf("%3dx  %s\n", sc.Count, sc.Signature)
//	}
//
// # CLI Tool
//
// stylemig also provides a CLI tool. Install with:
//
//	go install github.com/yacobolo/stylemig/cmd/stylemig@latest
package stylemig

import (
	"context"
	"log/slog"

	core "github.com/yacobolo/stylemig/internal/stylemig"
)

// Report types.
type (
	StyleLiteral         = core.StyleLiteral
	PropertyMap          = core.PropertyMap
	ClassificationResult = core.ClassificationResult
	MatchReport          = core.MatchReport
	FileReport           = core.FileReport
	ProjectReport        = core.ProjectReport
	SignatureCount       = core.SignatureCount
	SkippedFile          = core.SkippedFile
)

// Locator modes.
const (
	LocatorPattern  = core.LocatorPattern
	LocatorBalanced = core.LocatorBalanced
	LocatorSyntax   = core.LocatorSyntax
)

// Options configures analysis and scanning.
type Options struct {
	Root      string
	Include   []string
	Exclude   []string
	Gitignore bool
	Workers   int

	Locator      string // pattern (default) | balanced | syntax
	TablePath    string // TOML utility table; empty uses the built-in table
	PixelStrings bool   // Accept '16px' as a spacing/gap magnitude

	Logger *slog.Logger
}

// DefaultOptions returns the options of a plain `stylemig` run.
func DefaultOptions() Options {
	scan := core.DefaultScanOptions()
	return Options{
		Root:      scan.Root,
		Include:   scan.Include,
		Exclude:   scan.Exclude,
		Gitignore: scan.Gitignore,
		Workers:   scan.Workers,
		Locator:   core.LocatorPattern,
	}
}

// AnalyzeFile analyzes one file. The file is only read.
func AnalyzeFile(path string, opts Options) (*FileReport, error) {
	analyzer, err := newAnalyzer(opts)
	if err != nil {
		return nil, err
	}
	defer analyzer.Close()
	return analyzer.AnalyzeFile(path)
}

// Scan analyzes every matching file under opts.Root.
func Scan(ctx context.Context, opts Options) (*ProjectReport, error) {
	analyzer, err := newAnalyzer(opts)
	if err != nil {
		return nil, err
	}
	defer analyzer.Close()
	return core.Scan(ctx, core.ScanOptions{
		Root:      opts.Root,
		Include:   opts.Include,
		Exclude:   opts.Exclude,
		Gitignore: opts.Gitignore,
		Workers:   opts.Workers,
		Analyzer:  analyzer,
		Logger:    opts.Logger,
	})
}

func newAnalyzer(opts Options) (*core.Analyzer, error) {
	return core.NewAnalyzer(core.AnalyzerOptions{
		Locator:      opts.Locator,
		TablePath:    opts.TablePath,
		PixelStrings: opts.PixelStrings,
		Logger:       opts.Logger,
	})
}
