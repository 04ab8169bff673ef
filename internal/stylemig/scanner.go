package stylemig

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
	ignore "github.com/sabhiram/go-gitignore"
	"golang.org/x/sync/errgroup"
)

// ScanOptions configures a project scan.
type ScanOptions struct {
	Root      string
	Include   []string // doublestar globs relative to Root
	Exclude   []string
	Gitignore bool // Skip files ignored by Root/.gitignore
	Workers   int  // <= 1 scans sequentially
	Analyzer  *Analyzer
	Logger    *slog.Logger
}

// DefaultScanOptions returns the options of a plain `stylemig` run.
func DefaultScanOptions() ScanOptions {
	return ScanOptions{
		Root:      "src",
		Include:   []string{"**/*.tsx", "**/*.jsx"},
		Exclude:   []string{"**/node_modules/**"},
		Gitignore: true,
		Workers:   1,
	}
}

// Scan walks opts.Root and analyzes every matching file.
//
// Unreadable files never fail the scan; they are logged and recorded in
// ProjectReport.Skipped. Scan fails only for an unusable root, an invalid
// pattern, or a cancelled context.
func Scan(ctx context.Context, opts ScanOptions) (*ProjectReport, error) {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	analyzer := opts.Analyzer
	if analyzer == nil {
		var err error
		analyzer, err = NewAnalyzer(AnalyzerOptions{Logger: logger})
		if err != nil {
			return nil, err
		}
		defer analyzer.Close()
	}

	files, skipped, err := DiscoverFiles(opts, logger)
	if err != nil {
		return nil, err
	}
	logger.Debug("discovered files", "root", opts.Root, "files", len(files))

	type result struct {
		report *FileReport
		err    error
	}
	results := make([]result, len(files))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, opts.Workers))
	for i, path := range files {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			report, err := analyzer.AnalyzeFile(path)
			results[i] = result{report: report, err: err}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("scan %s: %w", opts.Root, err)
	}

	reports := make([]*FileReport, 0, len(files))
	for i, r := range results {
		if r.err != nil {
			logger.Warn("skipping unreadable file", "path", files[i], "error", r.err)
			skipped = append(skipped, SkippedFile{Path: files[i], Reason: r.err.Error()})
			continue
		}
		reports = append(reports, r.report)
	}

	project := Aggregate(opts.Root, reports)
	project.Skipped = append(project.Skipped, skipped...)
	return project, nil
}

// Aggregate folds per-file reports into a project report. reports must be
// in lexical path order; files without literals are counted but not listed.
func Aggregate(root string, reports []*FileReport) *ProjectReport {
	project := &ProjectReport{
		Root:        root,
		Frequencies: make(map[string]int),
	}
	for _, r := range reports {
		project.FilesScanned++
		if r.Count() == 0 {
			continue
		}
		project.Files = append(project.Files, r)
		project.TotalLiterals += r.Count()
		for _, m := range r.Matches {
			for _, sig := range m.Properties.Signatures() {
				project.Frequencies[sig]++
			}
		}
	}
	return project
}

// DiscoverFiles returns the files under opts.Root selected by the include,
// exclude and gitignore rules, in lexical order. Unreadable directories are
// returned as skipped entries.
func DiscoverFiles(opts ScanOptions, logger *slog.Logger) ([]string, []SkippedFile, error) {
	for _, pattern := range opts.Include {
		if !doublestar.ValidatePattern(pattern) {
			return nil, nil, fmt.Errorf("invalid include pattern: %s", pattern)
		}
	}
	for _, pattern := range opts.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return nil, nil, fmt.Errorf("invalid exclude pattern: %s", pattern)
		}
	}

	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, nil, fmt.Errorf("scan root: %w", err)
	}
	if !info.IsDir() {
		return nil, nil, fmt.Errorf("scan root %s: not a directory", opts.Root)
	}

	var gi *ignore.GitIgnore
	if opts.Gitignore {
		// No .gitignore is fine
		if compiled, err := ignore.CompileIgnoreFile(filepath.Join(opts.Root, ".gitignore")); err == nil {
			gi = compiled
		}
	}

	var (
		files   []string
		skipped []SkippedFile
	)
	err = filepath.WalkDir(opts.Root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == opts.Root {
				return err
			}
			logger.Warn("skipping unreadable path", "path", path, "error", err)
			skipped = append(skipped, SkippedFile{Path: path, Reason: err.Error()})
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if path == opts.Root {
			return nil
		}

		relPath, err := filepath.Rel(opts.Root, path)
		if err != nil {
			relPath = path
		}
		relPath = filepath.ToSlash(relPath)

		if matchesAny(opts.Exclude, relPath) || (gi != nil && gi.MatchesPath(relPath)) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}

		if len(opts.Include) > 0 && !matchesAny(opts.Include, relPath) {
			return nil
		}

		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("walk %s: %w", opts.Root, err)
	}

	sort.Strings(files)
	return files, skipped, nil
}

// Matches reports whether relPath (slash-separated, relative to Root) is
// selected by the include and exclude globs. Gitignore is not consulted.
func (o ScanOptions) Matches(relPath string) bool {
	relPath = filepath.ToSlash(relPath)
	if matchesAny(o.Exclude, relPath) {
		return false
	}
	return len(o.Include) == 0 || matchesAny(o.Include, relPath)
}

func matchesAny(patterns []string, relPath string) bool {
	for _, pattern := range patterns {
		if m, _ := doublestar.Match(pattern, relPath); m {
			return true
		}
	}
	return false
}

// TopSignatures returns the n most frequent signatures, by descending count
// then signature. n <= 0 returns all of them.
func (p *ProjectReport) TopSignatures(n int) []SignatureCount {
	out := make([]SignatureCount, 0, len(p.Frequencies))
	for sig, count := range p.Frequencies {
		out = append(out, SignatureCount{Signature: sig, Count: count})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Signature < out[j].Signature
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// FilesByCount returns the listed files ordered by descending literal count,
// ties in path order.
func (p *ProjectReport) FilesByCount() []*FileReport {
	out := make([]*FileReport, len(p.Files))
	copy(out, p.Files)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count() > out[j].Count()
	})
	return out
}

// CustomStyleCount returns the number of residual style sets across all files.
func (p *ProjectReport) CustomStyleCount() int {
	n := 0
	for _, f := range p.Files {
		n += len(f.CustomStyles)
	}
	return n
}

// ClassCount returns the number of utility classes emitted across all files.
func (p *ProjectReport) ClassCount() int {
	n := 0
	for _, f := range p.Files {
		n += len(f.Classes)
	}
	return n
}
