package stylemig

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	lru "github.com/hashicorp/golang-lru/v2"
)

// WatchOptions configures a watch session.
type WatchOptions struct {
	Scan      ScanOptions
	Debounce  time.Duration // Quiet period before re-analysis, default 200ms
	CacheSize int           // Cached file reports, default 4096
	// OnReport receives the initial report and every report after a change.
	OnReport func(*ProjectReport)
}

// WatchSession keeps a project report current while files change.
// Unchanged files (same path, mtime and size) are served from an LRU cache.
type WatchSession struct {
	opts     WatchOptions
	analyzer *Analyzer
	logger   *slog.Logger
	cache    *lru.Cache[string, *FileReport]

	// dirs holds the watched directories; only Run touches it.
	dirs map[string]bool

	hits, misses int
}

// NewWatchSession validates options and builds the report cache.
func NewWatchSession(opts WatchOptions) (*WatchSession, error) {
	if opts.Debounce <= 0 {
		opts.Debounce = 200 * time.Millisecond
	}
	if opts.CacheSize <= 0 {
		opts.CacheSize = 4096
	}
	logger := opts.Scan.Logger
	if logger == nil {
		logger = slog.Default()
	}
	analyzer := opts.Scan.Analyzer
	if analyzer == nil {
		var err error
		analyzer, err = NewAnalyzer(AnalyzerOptions{Logger: logger})
		if err != nil {
			return nil, err
		}
	}

	cache, err := lru.New[string, *FileReport](opts.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create report cache: %w", err)
	}

	return &WatchSession{
		opts:     opts,
		analyzer: analyzer,
		logger:   logger,
		cache:    cache,
		dirs:     make(map[string]bool),
	}, nil
}

// Snapshot analyzes the tree, reusing cached reports for unchanged files.
func (s *WatchSession) Snapshot(ctx context.Context) (*ProjectReport, error) {
	files, skipped, err := DiscoverFiles(s.opts.Scan, s.logger)
	if err != nil {
		return nil, err
	}

	reports := make([]*FileReport, 0, len(files))
	for _, path := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		report, err := s.analyzeCached(path)
		if err != nil {
			s.logger.Warn("skipping unreadable file", "path", path, "error", err)
			skipped = append(skipped, SkippedFile{Path: path, Reason: err.Error()})
			continue
		}
		reports = append(reports, report)
	}

	project := Aggregate(s.opts.Scan.Root, reports)
	project.Skipped = append(project.Skipped, skipped...)
	s.logger.Debug("snapshot complete",
		"files", len(files), "cache_hits", s.hits, "cache_misses", s.misses)
	return project, nil
}

func (s *WatchSession) analyzeCached(path string) (*FileReport, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	key := cacheKey(path, info)
	if report, ok := s.cache.Get(key); ok {
		s.hits++
		return report, nil
	}
	s.misses++

	report, err := s.analyzer.AnalyzeFile(path)
	if err != nil {
		return nil, err
	}
	s.cache.Add(key, report)
	return report, nil
}

func cacheKey(path string, info fs.FileInfo) string {
	return fmt.Sprintf("%s|%d|%d", path, info.ModTime().UnixNano(), info.Size())
}

// Run reports an initial snapshot, then re-analyzes after each burst of
// changes until ctx is done.
func (s *WatchSession) Run(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create file watcher: %w", err)
	}
	defer watcher.Close()

	if err := s.addDirs(watcher, s.opts.Scan.Root); err != nil {
		return err
	}

	if err := s.report(ctx); err != nil {
		return err
	}
	s.logger.Info("watching for changes", "root", s.opts.Scan.Root)

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if !s.relevant(watcher, event) {
				continue
			}
			s.logger.Debug("file event", "op", event.Op.String(), "path", event.Name)
			if timer == nil {
				timer = time.NewTimer(s.opts.Debounce)
			} else {
				timer.Reset(s.opts.Debounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			if err := s.report(ctx); err != nil {
				if ctx.Err() != nil {
					return nil
				}
				s.logger.Error("re-analysis failed", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("file watcher error", "error", err)
		}
	}
}

func (s *WatchSession) report(ctx context.Context) error {
	project, err := s.Snapshot(ctx)
	if err != nil {
		return err
	}
	if s.opts.OnReport != nil {
		s.opts.OnReport(project)
	}
	return nil
}

// relevant reports whether an event can change the report. New directories
// are added to the watch list; a watched directory that is renamed or removed
// drops out of it along with everything below.
func (s *WatchSession) relevant(watcher *fsnotify.Watcher, event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	if event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove) {
		if s.dirs[event.Name] {
			s.forgetDirs(watcher, event.Name)
			return true
		}
	}
	if event.Has(fsnotify.Create) {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := s.addDirs(watcher, event.Name); err != nil {
				s.logger.Warn("failed to watch directory", "path", event.Name, "error", err)
			}
			return true
		}
	}
	rel, err := filepath.Rel(s.opts.Scan.Root, event.Name)
	if err != nil {
		return false
	}
	return s.opts.Scan.Matches(rel)
}

// addDirs watches root and every directory below it that is not excluded.
func (s *WatchSession) addDirs(watcher *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// Walk errors are reported by Snapshot
			return nil
		}
		if !d.IsDir() {
			return nil
		}
		if rel, err := filepath.Rel(s.opts.Scan.Root, path); err == nil && rel != "." {
			if matchesAny(s.opts.Scan.Exclude, filepath.ToSlash(rel)) {
				return filepath.SkipDir
			}
		}
		if err := watcher.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		s.dirs[path] = true
		return nil
	})
}

// forgetDirs stops tracking dir and its subdirectories. Watches on paths
// that no longer exist are already gone, so removal errors are ignored.
func (s *WatchSession) forgetDirs(watcher *fsnotify.Watcher, dir string) {
	prefix := dir + string(filepath.Separator)
	for path := range s.dirs {
		if path == dir || strings.HasPrefix(path, prefix) {
			_ = watcher.Remove(path)
			delete(s.dirs, path)
		}
	}
}
