package mcp

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvp-joe/loppers/internal/config"
	"github.com/mvp-joe/loppers/internal/grammar"
	"github.com/mvp-joe/loppers/internal/skeleton"
)

// Test Plan for skeleton MCP tools:
// - NewMCPServer requires a project root and fills defaults
// - skeleton_extract reads a project file and detects its language
// - skeleton_extract accepts inline source with a language
// - skeleton_extract rejects missing, conflicting and malformed arguments as tool errors
// - Unsupported languages, parse failures, missing files and paths outside the
//   root are tool errors
// - skeleton_concatenate discovers files when no paths are given and honours extract=false
// - skeleton_concatenate reports per-file status
// - skeleton_languages lists every registered language
// - Symlinks inside the root that resolve outside it are rejected

const goFile = "package main\n\nfunc main() {\n\tprintln(1)\n}\n"

func testProject(t *testing.T) *ServerConfig {
	t.Helper()

	root := t.TempDir()
	files := map[string]string{
		"main.go":           goFile,
		"README.md":         "# Demo\n",
		"pkg/broken.py":     "def broken(:\n",
		"node_modules/x.js": "function x() { return 1; }\n",
	}
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0644))
	}

	return &ServerConfig{
		ProjectRoot: root,
		Config:      config.Default(),
		Extractor:   skeleton.Default(),
	}
}

func callTool(t *testing.T, handler func(context.Context, mcp.CallToolRequest) (*mcp.CallToolResult, error), args interface{}) *mcp.CallToolResult {
	t.Helper()

	request := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Arguments: args,
		},
	}
	result, err := handler(context.Background(), request)
	require.NoError(t, err, "should not return system error")
	require.NotNil(t, result, "should return result")
	return result
}

func resultText(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()

	require.NotEmpty(t, result.Content)
	textContent, ok := mcp.AsTextContent(result.Content[0])
	require.True(t, ok, "should be text content")
	return textContent.Text
}

func TestNewMCPServer(t *testing.T) {
	t.Parallel()

	_, err := NewMCPServer(nil)
	assert.Error(t, err)

	_, err = NewMCPServer(&ServerConfig{})
	assert.Error(t, err)

	s, err := NewMCPServer(&ServerConfig{ProjectRoot: t.TempDir()})
	require.NoError(t, err)
	require.NotNil(t, s.Server())
	assert.NotNil(t, s.config.Config)
	assert.NotNil(t, s.config.Extractor)
	assert.True(t, filepath.IsAbs(s.config.ProjectRoot))
}

func TestSkeletonExtract_FromPath(t *testing.T) {
	t.Parallel()

	handler := createSkeletonExtractHandler(testProject(t))
	result := callTool(t, handler, map[string]interface{}{"path": "main.go"})
	assert.False(t, result.IsError, "should not be error result")

	var resp ExtractResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	assert.Equal(t, "main.go", resp.Path)
	assert.Equal(t, "go", resp.Language)
	assert.Equal(t, "package main\n\nfunc main() {\n}\n", resp.Skeleton)
}

func TestSkeletonExtract_InlineSource(t *testing.T) {
	t.Parallel()

	handler := createSkeletonExtractHandler(testProject(t))
	result := callTool(t, handler, map[string]interface{}{
		"source":   "def f(x):\n    \"\"\"Doc.\"\"\"\n    return x\n",
		"language": "py",
	})
	assert.False(t, result.IsError)

	var resp ExtractResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	assert.Equal(t, "python", resp.Language)
	assert.Equal(t, "def f(x):\n    \"\"\"Doc.\"\"\"\n", resp.Skeleton)
}

func TestSkeletonExtract_ToolErrors(t *testing.T) {
	t.Parallel()

	handler := createSkeletonExtractHandler(testProject(t))

	tests := []struct {
		name string
		args interface{}
		want string
	}{
		{"invalid format", "not a map", "invalid arguments format"},
		{"nothing given", map[string]interface{}{}, "either path or source is required"},
		{"both given", map[string]interface{}{"path": "main.go", "source": "x"}, "mutually exclusive"},
		{"source without language", map[string]interface{}{"source": "x = 1\n"}, "language parameter is required"},
		{"undetectable path", map[string]interface{}{"path": "README.md"}, "language parameter is required"},
		{"unsupported language", map[string]interface{}{"source": "x", "language": "swift"}, "unsupported language"},
		{"parse failure", map[string]interface{}{"path": "pkg/broken.py"}, "parse failure"},
		{"missing file", map[string]interface{}{"path": "nope.go"}, "no such file"},
		{"outside root", map[string]interface{}{"path": "../etc/passwd.go"}, "outside project root"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			result := callTool(t, handler, tt.args)
			assert.True(t, result.IsError, "should be error result")
			assert.Contains(t, resultText(t, result), tt.want)
		})
	}
}

func TestSkeletonConcatenate_DiscoversFiles(t *testing.T) {
	t.Parallel()

	handler := createSkeletonConcatenateHandler(testProject(t))
	result := callTool(t, handler, nil)
	assert.False(t, result.IsError)

	var resp ConcatenateResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))

	statuses := map[string]string{}
	for _, f := range resp.Files {
		statuses[f.Path] = f.Status
	}
	assert.Equal(t, map[string]string{
		"README.md":     "unsupported",
		"main.go":       "extracted",
		"pkg/broken.py": "failed",
	}, statuses)
	assert.Contains(t, resp.Content, "--- main.go\npackage main\n\nfunc main() {\n}")
	assert.NotContains(t, resp.Content, "node_modules")
}

func TestSkeletonConcatenate_ExplicitPathsWithoutExtraction(t *testing.T) {
	t.Parallel()

	handler := createSkeletonConcatenateHandler(testProject(t))
	result := callTool(t, handler, map[string]interface{}{
		"paths":   `["main.go"]`,
		"extract": "false",
	})
	assert.False(t, result.IsError)

	var resp ConcatenateResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	require.Len(t, resp.Files, 1)
	assert.Equal(t, "included", resp.Files[0].Status)
	assert.Equal(t, "--- main.go\n"+goFile[:len(goFile)-1], resp.Content)
}

func TestSkeletonConcatenate_ToolErrors(t *testing.T) {
	t.Parallel()

	handler := createSkeletonConcatenateHandler(testProject(t))

	result := callTool(t, handler, map[string]interface{}{"paths": []interface{}{"../outside.go"}})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "outside project root")

	result = callTool(t, handler, map[string]interface{}{"paths": []interface{}{"missing.go"}})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "missing.go")
}

func TestSkeletonLanguages(t *testing.T) {
	t.Parallel()

	handler := createSkeletonLanguagesHandler(grammar.Default())
	result := callTool(t, handler, nil)
	assert.False(t, result.IsError)

	var langs []LanguageInfo
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &langs))

	ids := make([]string, 0, len(langs))
	for _, l := range langs {
		ids = append(ids, l.ID)
		assert.NotEmpty(t, l.Extensions, l.ID)
	}
	assert.Equal(t, grammar.Default().Supported(), ids)
}

func TestProjectPath(t *testing.T) {
	t.Parallel()

	root := filepath.FromSlash("/srv/project")

	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"main.go", "main.go", false},
		{"./pkg/../cmd/app.go", "cmd/app.go", false},
		{filepath.Join(root, "lib", "x.rs"), "lib/x.rs", false},
		{"../escape.go", "", true},
		{"pkg/../../escape.go", "", true},
		{"..", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		got, err := projectPath(root, tt.in)
		if tt.wantErr {
			assert.Error(t, err, tt.in)
			continue
		}
		require.NoError(t, err, tt.in)
		assert.Equal(t, tt.want, got, tt.in)
	}
}

func TestProjectPath_Symlinks(t *testing.T) {
	t.Parallel()

	root := t.TempDir()
	outside := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(outside, "secret.go"), []byte(goFile), 0644))
	require.NoError(t, os.WriteFile(filepath.Join(root, "main.go"), []byte(goFile), 0644))

	if err := os.Symlink(filepath.Join(outside, "secret.go"), filepath.Join(root, "link.go")); err != nil {
		t.Skipf("symlinks not supported: %v", err)
	}
	require.NoError(t, os.Symlink(outside, filepath.Join(root, "linkdir")))
	require.NoError(t, os.Symlink(filepath.Join(root, "main.go"), filepath.Join(root, "alias.go")))

	_, err := projectPath(root, "link.go")
	assert.ErrorIs(t, err, ErrOutsideRoot)

	_, err = projectPath(root, "linkdir/secret.go")
	assert.ErrorIs(t, err, ErrOutsideRoot)

	got, err := projectPath(root, "alias.go")
	require.NoError(t, err)
	assert.Equal(t, "alias.go", got)

	cfg := &ServerConfig{ProjectRoot: root, Config: config.Default(), Extractor: skeleton.Default()}
	result := callTool(t, createSkeletonExtractHandler(cfg), map[string]interface{}{"path": "link.go"})
	assert.True(t, result.IsError)
	assert.Contains(t, resultText(t, result), "outside project root")

	result = callTool(t, createSkeletonConcatenateHandler(cfg), nil)
	assert.False(t, result.IsError)
	var resp ConcatenateResponse
	require.NoError(t, json.Unmarshal([]byte(resultText(t, result)), &resp))
	var paths []string
	for _, f := range resp.Files {
		paths = append(paths, f.Path)
	}
	assert.Equal(t, []string{"alias.go", "main.go"}, paths)
}
