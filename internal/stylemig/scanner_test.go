package stylemig

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeTree creates files (slash-separated paths relative to root).
func writeTree(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func scanOptions(root string) ScanOptions {
	opts := DefaultScanOptions()
	opts.Root = root
	opts.Logger = quietLogger()
	return opts
}

func relPaths(t *testing.T, root string, files []*FileReport) []string {
	t.Helper()
	out := make([]string, len(files))
	for i, f := range files {
		rel, err := filepath.Rel(root, f.Path)
		require.NoError(t, err)
		out[i] = filepath.ToSlash(rel)
	}
	return out
}

func TestScan_FrequencyAggregation(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"a/One.tsx": `<div style={{ margin: 0 }} />`,
		"b/Two.jsx": `<div style={{ margin: 0, display: 'flex' }} />`,
	})

	project, err := Scan(context.Background(), scanOptions(root))
	require.NoError(t, err)

	assert.Equal(t, 2, project.Frequencies["margin: 0"])
	assert.Equal(t, 1, project.Frequencies["display: 'flex'"])
	assert.Equal(t, 2, project.TotalLiterals)
	assert.Equal(t, 2, project.FilesScanned)
	assert.Empty(t, project.Skipped)
}

func TestScan_FilesAndOrder(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"z/Last.tsx":                  `<a style={{ gap: 4 }} />`,
		"a/First.tsx":                 `<a style={{ gap: 4 }} /><b style={{ gap: 8 }} />`,
		"m/Plain.tsx":                 `<a className="x" />`,
		"m/styles.css":                `.x { color: red }`,
		"node_modules/lib/Dep.tsx":    `<a style={{ gap: 4 }} />`,
		"m/deep/nested/Component.jsx": `<a style={{ padding: 8 }} />`,
	})

	project, err := Scan(context.Background(), scanOptions(root))
	require.NoError(t, err)

	assert.Equal(t, []string{"a/First.tsx", "m/deep/nested/Component.jsx", "z/Last.tsx"}, relPaths(t, root, project.Files))
	assert.Equal(t, 4, project.FilesScanned, "files without literals are counted but not listed")
	assert.Equal(t, 4, project.TotalLiterals)
}

func TestScan_Gitignore(t *testing.T) {
	root := t.TempDir()
	writeTree(t, root, map[string]string{
		".gitignore":       "generated/\n*.stories.tsx\n",
		"Card.tsx":         `<a style={{ gap: 4 }} />`,
		"Card.stories.tsx": `<a style={{ gap: 4 }} />`,
		"generated/X.tsx":  `<a style={{ gap: 4 }} />`,
	})

	project, err := Scan(context.Background(), scanOptions(root))
	require.NoError(t, err)
	assert.Equal(t, []string{"Card.tsx"}, relPaths(t, root, project.Files))

	opts := scanOptions(root)
	opts.Gitignore = false
	project, err = Scan(context.Background(), opts)
	require.NoError(t, err)
	assert.Len(t, project.Files, 3)
}

func TestScan_UnreadableFileIsSkipped(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("file permissions are not enforced")
	}

	root := t.TempDir()
	writeTree(t, root, map[string]string{
		"Good.tsx":   `<a style={{ margin: 0 }} />`,
		"Locked.tsx": `<a style={{ margin: 0 }} />`,
	})
	locked := filepath.Join(root, "Locked.tsx")
	require.NoError(t, os.Chmod(locked, 0))
	t.Cleanup(func() { _ = os.Chmod(locked, 0644) })

	project, err := Scan(context.Background(), scanOptions(root))
	require.NoError(t, err)

	assert.Equal(t, []string{"Good.tsx"}, relPaths(t, root, project.Files))
	require.Len(t, project.Skipped, 1)
	assert.Equal(t, locked, project.Skipped[0].Path)
	assert.NotEmpty(t, project.Skipped[0].Reason)
	assert.Equal(t, 1, project.Frequencies["margin: 0"])
}

func TestScan_Workers(t *testing.T) {
	root := t.TempDir()
	files := map[string]string{}
	for _, name := range []string{"a", "b", "c", "d", "e", "f", "g", "h"} {
		files[name+".tsx"] = `<a style={{ margin: 0 }} />`
	}
	writeTree(t, root, files)

	sequential, err := Scan(context.Background(), scanOptions(root))
	require.NoError(t, err)

	opts := scanOptions(root)
	opts.Workers = 4
	parallel, err := Scan(context.Background(), opts)
	require.NoError(t, err)

	assert.Equal(t, relPaths(t, root, sequential.Files), relPaths(t, root, parallel.Files))
	assert.Equal(t, sequential.Frequencies, parallel.Frequencies)
	assert.Equal(t, 8, parallel.Frequencies["margin: 0"])
}

func TestScan_Errors(t *testing.T) {
	root := t.TempDir()

	_, err := Scan(context.Background(), scanOptions(filepath.Join(root, "missing")))
	require.Error(t, err)

	file := filepath.Join(root, "file.tsx")
	require.NoError(t, os.WriteFile(file, nil, 0644))
	_, err = Scan(context.Background(), scanOptions(file))
	require.Error(t, err)

	opts := scanOptions(root)
	opts.Include = []string{"[unclosed"}
	_, err = Scan(context.Background(), opts)
	require.ErrorContains(t, err, "invalid include pattern")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	writeTree(t, root, map[string]string{"A.tsx": `<a style={{ margin: 0 }} />`})
	_, err = Scan(ctx, scanOptions(root))
	require.ErrorIs(t, err, context.Canceled)
}

func TestAggregate(t *testing.T) {
	a := newTestAnalyzer(t, AnalyzerOptions{})
	reports := []*FileReport{
		a.AnalyzeSource("a.tsx", []byte(`<a style={{ margin: 0, gap: 4 }} />`)),
		a.AnalyzeSource("b.tsx", []byte(`nothing here`)),
		a.AnalyzeSource("c.tsx", []byte(`<a style={{ gap: 4 }} /><b style={{ gap: 4 }} />`)),
	}

	project := Aggregate("src", reports)
	assert.Equal(t, "src", project.Root)
	assert.Equal(t, 3, project.FilesScanned)
	require.Len(t, project.Files, 2)
	assert.Equal(t, map[string]int{"margin: 0": 1, "gap: 4": 3}, project.Frequencies)

	assert.Equal(t, []SignatureCount{{Signature: "gap: 4", Count: 3}, {Signature: "margin: 0", Count: 1}}, project.TopSignatures(0))
	assert.Equal(t, []SignatureCount{{Signature: "gap: 4", Count: 3}}, project.TopSignatures(1))

	byCount := project.FilesByCount()
	assert.Equal(t, "c.tsx", byCount[0].Path)
	assert.Equal(t, "a.tsx", byCount[1].Path)
	assert.Equal(t, "a.tsx", project.Files[0].Path, "FilesByCount must not reorder Files")

	assert.Equal(t, 4, project.ClassCount())
	assert.Equal(t, 0, project.CustomStyleCount())
}

func TestTopSignatures_TieBreak(t *testing.T) {
	project := &ProjectReport{Frequencies: map[string]int{
		"zIndex: 1":    2,
		"color: 'red'": 2,
		"margin: 0":    5,
	}}

	assert.Equal(t, []SignatureCount{
		{Signature: "margin: 0", Count: 5},
		{Signature: "color: 'red'", Count: 2},
		{Signature: "zIndex: 1", Count: 2},
	}, project.TopSignatures(10))
}

func TestScanOptions_Matches(t *testing.T) {
	opts := DefaultScanOptions()

	tests := []struct {
		path string
		want bool
	}{
		{path: "Card.tsx", want: true},
		{path: "components/ui/Button.jsx", want: true},
		{path: "components/ui/Button.ts", want: false},
		{path: "node_modules/pkg/Index.tsx", want: false},
		{path: "a/node_modules/pkg/Index.tsx", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, opts.Matches(tt.path))
		})
	}
}
