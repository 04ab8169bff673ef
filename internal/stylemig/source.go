package stylemig

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/edsrzf/mmap-go"
)

// SourceReader gives read-only access to a file's bytes for the duration of fn.
// Implementations must never modify the file.
type SourceReader interface {
	WithSource(path string, fn func(src []byte) error) error
}

// MmapReader maps files read-only and falls back to os.ReadFile when mapping
// fails (special files, exotic filesystems). src is only valid inside fn.
type MmapReader struct {
	Logger *slog.Logger
}

// WithSource maps path and calls fn with its contents.
func (r MmapReader) WithSource(path string, fn func(src []byte) error) error {
	// #nosec G304 - path comes from the scanned tree
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open source: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat source: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("read source %s: is a directory", path)
	}
	// Empty files cannot be mapped
	if info.Size() == 0 {
		return fn(nil)
	}

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		r.logger().Debug("mmap failed, falling back to read", "path", path, "error", err)
		content, readErr := os.ReadFile(path)
		if readErr != nil {
			return fmt.Errorf("read source: %w", readErr)
		}
		return fn(content)
	}
	defer func() {
		if err := data.Unmap(); err != nil {
			r.logger().Warn("failed to unmap source", "path", path, "error", err)
		}
	}()

	return fn(data)
}

func (r MmapReader) logger() *slog.Logger {
	if r.Logger == nil {
		return slog.Default()
	}
	return r.Logger
}

// BytesReader serves in-memory sources keyed by path. Used by tests and by
// callers that already hold file contents.
type BytesReader map[string][]byte

// WithSource calls fn with the stored bytes for path.
func (r BytesReader) WithSource(path string, fn func(src []byte) error) error {
	src, ok := r[path]
	if !ok {
		return fmt.Errorf("read source %s: %w", path, os.ErrNotExist)
	}
	return fn(src)
}
