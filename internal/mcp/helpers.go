package mcp

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/mvp-joe/loppers/internal/concat"
	"github.com/mvp-joe/loppers/internal/skeleton"
)

// ErrOutsideRoot indicates a requested path escapes the project root.
var ErrOutsideRoot = errors.New("path is outside project root")

// marshalToolResponse marshals a response object to JSON and returns it as an MCP tool result.
func marshalToolResponse(response interface{}) (*mcp.CallToolResult, error) {
	jsonData, err := json.Marshal(response)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response: %w", err)
	}
	return mcp.NewToolResultText(string(jsonData)), nil
}

// projectPath resolves p against root and returns it as a slash-separated path
// relative to root.
func projectPath(root, p string) (string, error) {
	if strings.TrimSpace(p) == "" {
		return "", fmt.Errorf("empty path")
	}

	abs := filepath.FromSlash(p)
	if !filepath.IsAbs(abs) {
		abs = filepath.Join(root, abs)
	}
	abs = filepath.Clean(abs)
	rel, ok := within(root, abs)
	if !ok {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, p)
	}

	// Symlinks may point anywhere; check where the target really lives.
	realRoot, err := filepath.EvalSymlinks(root)
	if err != nil {
		realRoot = root
	}
	realPath, err := filepath.EvalSymlinks(abs)
	switch {
	case err == nil:
		if _, ok := within(realRoot, realPath); !ok {
			return "", fmt.Errorf("%w: %s", ErrOutsideRoot, p)
		}
	case !errors.Is(err, fs.ErrNotExist):
		return "", fmt.Errorf("failed to resolve %s: %w", p, err)
	}
	return filepath.ToSlash(rel), nil
}

// within returns path relative to root when path does not escape it.
func within(root, path string) (string, bool) {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", false
	}
	return rel, true
}

// isUserError determines if an error should be shown to the LLM (user error)
// vs treated as an internal system error.
func isUserError(err error) bool {
	return errors.Is(err, skeleton.ErrUnsupportedLanguage) ||
		errors.Is(err, skeleton.ErrParseFailure) ||
		errors.Is(err, ErrOutsideRoot) ||
		errors.Is(err, concat.ErrNoPaths) ||
		errors.Is(err, fs.ErrNotExist)
}

// toolResult converts err into a tool error when the caller can act on it.
func toolResult(err error) (*mcp.CallToolResult, error) {
	if isUserError(err) {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return nil, err
}
