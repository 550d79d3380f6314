package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/loppers/internal/concat"
	"github.com/mvp-joe/loppers/internal/discovery"
	mcputils "github.com/mvp-joe/loppers/internal/mcp-utils"
)

// ConcatenateRequest is the argument shape of skeleton_concatenate.
type ConcatenateRequest struct {
	Paths   []string `json:"paths,omitempty"`
	Extract *bool    `json:"extract,omitempty"`
}

// ConcatenateFile is the per-file status in a ConcatenateResponse.
type ConcatenateFile struct {
	Path     string `json:"path"`
	Language string `json:"language,omitempty"`
	Status   string `json:"status"`
	Error    string `json:"error,omitempty"`
}

// ConcatenateResponse is the result of skeleton_concatenate.
type ConcatenateResponse struct {
	Content string            `json:"content"`
	Files   []ConcatenateFile `json:"files"`
}

// AddSkeletonConcatenateTool registers the skeleton_concatenate tool with an MCP server.
func AddSkeletonConcatenateTool(s *server.MCPServer, cfg *ServerConfig) {
	tool := mcp.NewTool(
		"skeleton_concatenate",
		mcp.WithDescription("Concatenate project files into one document under '--- <path>' headers, replacing supported source files with their skeletons. Without paths, every non-ignored text file in the project is included."),
		mcp.WithArray("paths",
			mcp.Description("Optional file paths relative to the project root (e.g., ['cmd/main.go', 'internal/api/routes.go'])"),
			mcp.WithStringItems()),
		mcp.WithBoolean("extract",
			mcp.Description("Replace supported files with skeletons (default: true)")),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createSkeletonConcatenateHandler(cfg))
}

// createSkeletonConcatenateHandler creates the handler function for skeleton_concatenate tool.
func createSkeletonConcatenateHandler(cfg *ServerConfig) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	detect := cfg.Extractor.Registry().Detector(cfg.Config.Languages.Overrides)

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var req ConcatenateRequest
		if args := request.GetRawArguments(); args != nil {
			if _, ok := args.(map[string]interface{}); !ok {
				return mcp.NewToolResultError("invalid arguments format"), nil
			}
			if err := mcputils.CoerceBindArguments(request, &req); err != nil {
				return mcp.NewToolResultError(fmt.Sprintf("Invalid arguments: %v", err)), nil
			}
		}

		paths := make([]string, 0, len(req.Paths))
		for _, p := range req.Paths {
			rel, err := projectPath(cfg.ProjectRoot, p)
			if err != nil {
				return toolResult(err)
			}
			paths = append(paths, rel)
		}

		if len(paths) == 0 {
			found, err := discovery.FindFiles(cfg.ProjectRoot, cfg.Config.Discovery.Options())
			if err != nil {
				return nil, fmt.Errorf("failed to discover files: %w", err)
			}
			// Discovery lists symlinked files; keep only those resolving inside the root.
			for _, p := range found {
				if _, err := projectPath(cfg.ProjectRoot, p); err == nil {
					paths = append(paths, p)
				}
			}
		}

		extract := cfg.Config.Concatenate.Extract
		if req.Extract != nil {
			extract = *req.Extract
		}

		result, err := concat.Concatenate(ctx, cfg.ProjectRoot, paths, concat.Options{
			Extract:   extract,
			Workers:   cfg.Config.Concatenate.Workers,
			Detect:    detect,
			Extractor: cfg.Extractor,
			Cache:     cfg.Cache,
		})
		if err != nil {
			return toolResult(err)
		}

		resp := ConcatenateResponse{
			Content: result.Text(),
			Files:   make([]ConcatenateFile, 0, len(result.Files)),
		}
		for _, f := range result.Files {
			cf := ConcatenateFile{Path: f.Path, Language: f.Language, Status: string(f.Status)}
			if f.Err != nil {
				cf.Error = f.Err.Error()
			}
			resp.Files = append(resp.Files, cf)
		}

		return marshalToolResponse(resp)
	}
}
