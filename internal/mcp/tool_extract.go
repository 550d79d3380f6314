package mcp

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	mcputils "github.com/mvp-joe/loppers/internal/mcp-utils"
)

// ExtractRequest is the argument shape of skeleton_extract.
type ExtractRequest struct {
	Path     string `json:"path,omitempty"`
	Source   string `json:"source,omitempty"`
	Language string `json:"language,omitempty"`
}

// ExtractResponse is the result of skeleton_extract.
type ExtractResponse struct {
	Path     string `json:"path,omitempty"`
	Language string `json:"language"`
	Skeleton string `json:"skeleton"`
}

// AddSkeletonExtractTool registers the skeleton_extract tool with an MCP server.
func AddSkeletonExtractTool(s *server.MCPServer, cfg *ServerConfig) {
	tool := mcp.NewTool(
		"skeleton_extract",
		mcp.WithDescription("Return the skeleton of a source file: signatures, types, imports, comments, docstrings and decorators with function bodies removed. Use to understand a file's API without reading its implementation."),
		mcp.WithString("path",
			mcp.Description("File path relative to the project root (e.g., 'internal/server/handler.go')")),
		mcp.WithString("source",
			mcp.Description("Inline source code to extract instead of reading a file (requires language)")),
		mcp.WithString("language",
			mcp.Description("Language id or alias (e.g., 'go', 'python', 'ts'). Detected from the path extension when omitted.")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createSkeletonExtractHandler(cfg))
}

// createSkeletonExtractHandler creates the handler function for skeleton_extract tool.
func createSkeletonExtractHandler(cfg *ServerConfig) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	detect := cfg.Extractor.Registry().Detector(cfg.Config.Languages.Overrides)

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		if _, ok := request.GetRawArguments().(map[string]interface{}); !ok {
			return mcp.NewToolResultError("invalid arguments format"), nil
		}

		var req ExtractRequest
		if err := mcputils.CoerceBindArguments(request, &req); err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
		}

		if req.Path == "" && req.Source == "" {
			return mcp.NewToolResultError("either path or source is required"), nil
		}
		if req.Path != "" && req.Source != "" {
			return mcp.NewToolResultError("path and source are mutually exclusive"), nil
		}

		resp := ExtractResponse{Language: req.Language}
		source := req.Source

		if req.Path != "" {
			rel, err := projectPath(cfg.ProjectRoot, req.Path)
			if err != nil {
				return toolResult(err)
			}
			data, err := os.ReadFile(filepath.Join(cfg.ProjectRoot, filepath.FromSlash(rel)))
			if err != nil {
				return toolResult(err)
			}
			source = string(data)
			resp.Path = rel
			if resp.Language == "" {
				resp.Language = detect(rel)
			}
		}

		if resp.Language == "" {
			return mcp.NewToolResultError("language parameter is required (could not detect from path)"), nil
		}

		out, err := cfg.Extractor.Extract(source, resp.Language)
		if err != nil {
			return toolResult(err)
		}
		resp.Skeleton = out
		if lang, err := cfg.Extractor.Registry().Resolve(resp.Language); err == nil {
			resp.Language = lang.ID
		}

		return marshalToolResponse(resp)
	}
}
