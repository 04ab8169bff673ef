package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yacobolo/stylemig/internal/stylemig"
)

// --- helpers ---

func testServer(t *testing.T, root string) *Server {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	analyzer, err := stylemig.NewAnalyzer(stylemig.AnalyzerOptions{Logger: logger})
	require.NoError(t, err)

	scan := stylemig.DefaultScanOptions()
	scan.Root = root
	return NewServer(analyzer, scan, logger)
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func callTool(t *testing.T, s *Server, req mcp.CallToolRequest) *mcp.CallToolResult {
	t.Helper()
	var handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error)
	switch req.Params.Name {
	case "analyze_file":
		handler = s.handleAnalyzeFile
	case "scan_project":
		handler = s.handleScanProject
	case "classify_style":
		handler = s.handleClassifyStyle
	default:
		t.Fatalf("unknown tool: %s", req.Params.Name)
	}

	result, err := handler(context.Background(), req)
	require.NoError(t, err)
	require.NotNil(t, result)
	return result
}

func makeRequest(toolName string, args map[string]any) mcp.CallToolRequest {
	var arguments any
	if args != nil {
		arguments = args
	}
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      toolName,
			Arguments: arguments,
		},
	}
}

func resultJSON(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, result.Content)
	textContent, ok := result.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected TextContent, got %T", result.Content[0])
	return textContent.Text
}

// --- analyze_file ---

func TestHandleAnalyzeFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "Card.tsx")
	content := `<div className="card" style={{ display: 'flex', marginBottom: 16, color: 'red' }}>x</div>`
	writeFile(t, path, content)

	s := testServer(t, dir)
	result := callTool(t, s, makeRequest("analyze_file", map[string]any{"path": path}))
	require.False(t, result.IsError)

	var resp struct {
		File struct {
			Count        int                 `json:"count"`
			Classes      []string            `json:"classes"`
			CustomStyles []map[string]string `json:"custom_styles"`
		} `json:"file"`
		Edits []struct {
			Replacement string `json:"replacement"`
			Merged      bool   `json:"merged"`
		} `json:"edits"`
		Stylesheets []string `json:"stylesheet_suggestions"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &resp))

	assert.Equal(t, 1, resp.File.Count)
	assert.Equal(t, []string{"d-flex", "mb-16"}, resp.File.Classes)
	assert.Equal(t, []map[string]string{{"color": "'red'"}}, resp.File.CustomStyles)
	require.Len(t, resp.Edits, 1)
	assert.True(t, resp.Edits[0].Merged)
	assert.Equal(t, `className="card d-flex mb-16" style={{color: 'red'}}`, resp.Edits[0].Replacement)
	assert.Equal(t, []string{".card-1 {\n  color: red;\n}\n"}, resp.Stylesheets)

	onDisk, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, string(onDisk))
}

func TestHandleAnalyzeFile_Errors(t *testing.T) {
	s := testServer(t, t.TempDir())

	result := callTool(t, s, makeRequest("analyze_file", nil))
	assert.True(t, result.IsError)

	result = callTool(t, s, makeRequest("analyze_file", map[string]any{"path": "/nonexistent/Card.tsx"}))
	assert.True(t, result.IsError)
}

// --- scan_project ---

func TestHandleScanProject(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "a", "One.tsx"), `<a style={{ margin: 0 }} />`)
	writeFile(t, filepath.Join(root, "b", "Two.tsx"), `<a style={{ margin: 0 }} />`)

	s := testServer(t, root)
	result := callTool(t, s, makeRequest("scan_project", nil))
	require.False(t, result.IsError)

	var out stylemig.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &out))
	assert.Equal(t, root, out.Root)
	assert.Equal(t, 2, out.Summary.FilesWithStyles)
	assert.Equal(t, []stylemig.JSONSignature{{Signature: "margin: 0", Count: 2}}, out.Frequencies)
}

func TestHandleScanProject_RootArgument(t *testing.T) {
	other := t.TempDir()
	writeFile(t, filepath.Join(other, "X.jsx"), `<a style={{ gap: 4 }} />`)

	s := testServer(t, t.TempDir())
	result := callTool(t, s, makeRequest("scan_project", map[string]any{"root": other}))
	require.False(t, result.IsError)

	var out stylemig.JSONOutput
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &out))
	assert.Equal(t, other, out.Root)
	assert.Equal(t, 1, out.Summary.TotalLiterals)
}

func TestHandleScanProject_BadRoot(t *testing.T) {
	s := testServer(t, filepath.Join(t.TempDir(), "missing"))
	result := callTool(t, s, makeRequest("scan_project", nil))
	assert.True(t, result.IsError)
}

// --- classify_style ---

func TestHandleClassifyStyle(t *testing.T) {
	s := testServer(t, t.TempDir())
	result := callTool(t, s, makeRequest("classify_style", map[string]any{
		"literal": "{ display: 'flex', marginBottom: 16, gap: 12, color: 'red' }",
	}))
	require.False(t, result.IsError)

	var resp struct {
		Outcomes []map[string]string `json:"outcomes"`
		Classes  []string            `json:"classes"`
		Custom   map[string]string   `json:"custom"`
		Dynamic  bool                `json:"dynamic"`
	}
	require.NoError(t, json.Unmarshal([]byte(resultJSON(t, result)), &resp))

	assert.Equal(t, []string{"d-flex", "mb-16", "gap-12"}, resp.Classes)
	assert.Equal(t, map[string]string{"color": "'red'"}, resp.Custom)
	assert.False(t, resp.Dynamic)
	require.Len(t, resp.Outcomes, 4)
	assert.Equal(t, "direct", resp.Outcomes[0]["kind"])
	assert.Equal(t, "spacing", resp.Outcomes[1]["kind"])
	assert.Equal(t, "gap", resp.Outcomes[2]["kind"])
	assert.Equal(t, "none", resp.Outcomes[3]["kind"])
	assert.NotContains(t, resp.Outcomes[3], "class")
}

func TestHandleClassifyStyle_MissingLiteral(t *testing.T) {
	s := testServer(t, t.TempDir())
	result := callTool(t, s, makeRequest("classify_style", map[string]any{}))
	assert.True(t, result.IsError)
}
