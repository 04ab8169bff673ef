// Package mcp exposes style analysis to MCP clients over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/yacobolo/stylemig/internal/stylemig"
)

const serverVersion = "0.1.0-dev"

// Server implements the MCP server for stylemig.
type Server struct {
	mcpServer *server.MCPServer
	analyzer  *stylemig.Analyzer
	scan      stylemig.ScanOptions
	logger    *slog.Logger
}

// NewServer creates an MCP server that analyzes with analyzer and scans
// with scan as the default options.
func NewServer(analyzer *stylemig.Analyzer, scan stylemig.ScanOptions, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	scan.Analyzer = analyzer
	scan.Logger = logger
	s := &Server{analyzer: analyzer, scan: scan, logger: logger}

	s.mcpServer = server.NewMCPServer(
		"stylemig",
		serverVersion,
		server.WithToolCapabilities(false),
		server.WithRecovery(),
	)

	s.mcpServer.AddTools(
		server.ServerTool{Tool: analyzeFileTool(), Handler: s.handleAnalyzeFile},
		server.ServerTool{Tool: scanProjectTool(), Handler: s.handleScanProject},
		server.ServerTool{Tool: classifyStyleTool(), Handler: s.handleClassifyStyle},
	)

	return s
}

// ServeStdio starts the MCP server on stdin/stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

func analyzeFileTool() mcp.Tool {
	return mcp.NewTool("analyze_file",
		mcp.WithDescription("Find inline style={{...}} literals in one JSX/TSX file and classify each property as a utility class or a custom style. Includes a dry-run rewrite plan; the file is never modified."),
		mcp.WithString("path", mcp.Required(), mcp.Description("Path of the source file")),
	)
}

func scanProjectTool() mcp.Tool {
	return mcp.NewTool("scan_project",
		mcp.WithDescription("Scan a source tree for inline styles and return per-file reports and the most common property/value signatures."),
		mcp.WithString("root", mcp.Description("Directory to scan (defaults to the configured root)")),
	)
}

func classifyStyleTool() mcp.Tool {
	return mcp.NewTool("classify_style",
		mcp.WithDescription("Classify a single style object literal such as { display: 'flex', marginBottom: 16 }."),
		mcp.WithString("literal", mcp.Required(), mcp.Description("Style object literal, with or without style={...}")),
	)
}

// analyzeFileResponse is the analyze_file payload.
type analyzeFileResponse struct {
	File        stylemig.JSONFile `json:"file"`
	Edits       []editJSON        `json:"edits"`
	Skipped     []skippedJSON     `json:"skipped"`
	Stylesheets []string          `json:"stylesheet_suggestions"`
}

type editJSON struct {
	Line        int    `json:"line"`
	Original    string `json:"original"`
	Replacement string `json:"replacement"`
	Merged      bool   `json:"merged"`
}

type skippedJSON struct {
	Line   int    `json:"line"`
	Reason string `json:"reason"`
}

func (s *Server) handleAnalyzeFile(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path, err := req.RequireString("path")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	var resp analyzeFileResponse
	err = s.analyzer.Reader.WithSource(path, func(src []byte) error {
		report := s.analyzer.AnalyzeSource(path, src)
		plan := stylemig.DryRunRewriter{}.Plan(report, src)

		resp.File = stylemig.BuildJSONFile(report)
		resp.Edits = make([]editJSON, 0, len(plan.Edits))
		for _, e := range plan.Edits {
			resp.Edits = append(resp.Edits, editJSON{Line: e.Line, Original: e.Original, Replacement: e.Replacement, Merged: e.Merged})
		}
		resp.Skipped = make([]skippedJSON, 0, len(plan.Skipped))
		for _, sk := range plan.Skipped {
			resp.Skipped = append(resp.Skipped, skippedJSON{Line: sk.Line, Reason: sk.Reason})
		}
		resp.Stylesheets = []string{}
		for _, rule := range stylemig.SuggestRules(report) {
			resp.Stylesheets = append(resp.Stylesheets, rule.String())
		}
		return nil
	})
	if err != nil {
		s.logger.Warn("analyze_file failed", "path", path, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(resp)
}

func (s *Server) handleScanProject(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	opts := s.scan
	opts.Root = req.GetString("root", s.scan.Root)

	project, err := stylemig.Scan(ctx, opts)
	if err != nil {
		s.logger.Warn("scan_project failed", "root", opts.Root, "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}
	return jsonResult(stylemig.BuildJSONOutput(project))
}

// classifyResponse is the classify_style payload.
type classifyResponse struct {
	Properties stylemig.PropertyMap `json:"properties"`
	Outcomes   []outcomeJSON        `json:"outcomes"`
	Classes    []string             `json:"classes"`
	Custom     stylemig.PropertyMap `json:"custom"`
	Dynamic    bool                 `json:"dynamic"`
}

type outcomeJSON struct {
	Property string `json:"property"`
	Value    string `json:"value"`
	Kind     string `json:"kind"`
	Class    string `json:"class,omitempty"`
}

func (s *Server) handleClassifyStyle(_ context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	literal, err := req.RequireString("literal")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	m := s.analyzer.ClassifyLiteral(literal)
	resp := classifyResponse{
		Properties: m.Properties,
		Outcomes:   make([]outcomeJSON, 0, m.Properties.Len()),
		Classes:    m.Classes,
		Custom:     m.Custom,
		Dynamic:    m.Dynamic,
	}
	if resp.Classes == nil {
		resp.Classes = []string{}
	}
	for _, key := range m.Properties.Keys() {
		value, _ := m.Properties.Get(key)
		outcome := s.analyzer.Classifier.Classify(key, value)
		resp.Outcomes = append(resp.Outcomes, outcomeJSON{
			Property: key,
			Value:    value,
			Kind:     outcome.Kind.String(),
			Class:    outcome.Class,
		})
	}
	return jsonResult(resp)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError("encode result: " + err.Error()), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}
