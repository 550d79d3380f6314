package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/mvp-joe/loppers/internal/grammar"
)

// LanguageInfo describes one supported language.
type LanguageInfo struct {
	ID         string   `json:"id"`
	Aliases    []string `json:"aliases,omitempty"`
	Extensions []string `json:"extensions"`
}

// AddSkeletonLanguagesTool registers the skeleton_languages tool with an MCP server.
func AddSkeletonLanguagesTool(s *server.MCPServer, registry *grammar.Registry) {
	tool := mcp.NewTool(
		"skeleton_languages",
		mcp.WithDescription("List the languages skeleton extraction supports, with their aliases and file extensions."),
		mcp.WithReadOnlyHintAnnotation(true),
		mcp.WithDestructiveHintAnnotation(false),
	)

	s.AddTool(tool, createSkeletonLanguagesHandler(registry))
}

func createSkeletonLanguagesHandler(registry *grammar.Registry) func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	langs := make([]LanguageInfo, 0, len(registry.Languages()))
	for _, lang := range registry.Languages() {
		langs = append(langs, LanguageInfo{
			ID:         lang.ID,
			Aliases:    lang.Aliases,
			Extensions: lang.Extensions,
		})
	}

	return func(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		return marshalToolResponse(langs)
	}
}
