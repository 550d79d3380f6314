package concat

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/mvp-joe/loppers/internal/discovery"
	"github.com/mvp-joe/loppers/internal/grammar"
	"github.com/mvp-joe/loppers/internal/skeleton"
)

// Test Plan for Concatenate:
// - Supported files are replaced by skeletons, others included verbatim
// - Extraction off includes every file verbatim
// - Failed extractions fall back to the original content and keep the error
// - Output order follows input order regardless of worker count
// - Binary files are left out
// - Missing files fail with fs.ErrNotExist unless IgnoreNotFound is set
// - Empty path lists and bad roots fail with typed errors
// - Detect overrides route unknown extensions to a grammar
// - OnFile sees every file exactly once
// - Cancelled contexts stop the run
// - YAML output carries the summary and every file

const goSource = "package main\n\nfunc main() {\n\tprintln(1)\n}\n"

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()

	root := t.TempDir()
	for rel, content := range files {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
	}
	return root
}

func TestConcatenate_ExtractsSupportedFiles(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"main.go":   goSource,
		"notes.txt": "hello\n",
	})

	result, err := Concatenate(context.Background(), root, []string{"main.go", "notes.txt"}, Options{Extract: true})
	require.NoError(t, err)
	require.Len(t, result.Files, 2)

	assert.Equal(t, StatusExtracted, result.Files[0].Status)
	assert.Equal(t, "go", result.Files[0].Language)
	assert.Equal(t, StatusUnsupported, result.Files[1].Status)
	assert.Equal(t, "--- main.go\npackage main\n\nfunc main() {\n}\n\n--- notes.txt\nhello", result.Text())
}

func TestConcatenate_WithoutExtraction(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"main.go": goSource})

	result, err := Concatenate(context.Background(), root, []string{"main.go"}, Options{})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, StatusIncluded, result.Files[0].Status)
	assert.Equal(t, goSource, result.Files[0].Content)
	assert.Equal(t, "--- main.go\n"+goSource[:len(goSource)-1], result.Text())
}

func TestConcatenate_FailedExtractionKeepsContent(t *testing.T) {
	t.Parallel()

	broken := "def broken(:\n    pass\n"
	root := writeFiles(t, map[string]string{"broken.py": broken})

	result, err := Concatenate(context.Background(), root, []string{"broken.py"}, Options{Extract: true})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)

	f := result.Files[0]
	assert.Equal(t, StatusFailed, f.Status)
	assert.ErrorIs(t, f.Err, skeleton.ErrParseFailure)
	assert.Equal(t, broken, f.Content)
	assert.Equal(t, 1, result.Count(StatusFailed))
}

func TestConcatenate_PreservesInputOrder(t *testing.T) {
	t.Parallel()

	files := map[string]string{}
	var paths []string
	for _, name := range []string{"e.txt", "a.txt", "d.txt", "b.txt", "c.txt", "f.txt"} {
		files[name] = name + "\n"
		paths = append(paths, name)
	}
	root := writeFiles(t, files)

	for _, workers := range []int{1, 3, 16} {
		result, err := Concatenate(context.Background(), root, paths, Options{Workers: workers})
		require.NoError(t, err)
		require.Len(t, result.Files, len(paths))
		for i, f := range result.Files {
			assert.Equal(t, paths[i], f.Path, "workers=%d", workers)
		}
	}
}

func TestConcatenate_SkipsBinary(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"blob.bin": "\x00\x01\x02",
		"a.txt":    "a\n",
	})

	result, err := Concatenate(context.Background(), root, []string{"blob.bin", "a.txt"}, Options{})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "a.txt", result.Files[0].Path)
}

func TestConcatenate_MissingFiles(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"a.txt": "a\n"})
	paths := []string{"a.txt", "gone.txt"}

	_, err := Concatenate(context.Background(), root, paths, Options{})
	require.Error(t, err)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "gone.txt")

	result, err := Concatenate(context.Background(), root, paths, Options{IgnoreNotFound: true})
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, "a.txt", result.Files[0].Path)
}

func TestConcatenate_InputErrors(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"a.txt": "a\n"})

	_, err := Concatenate(context.Background(), root, nil, Options{})
	assert.ErrorIs(t, err, ErrNoPaths)

	_, err = Concatenate(context.Background(), filepath.Join(root, "nope"), []string{"a.txt"}, Options{})
	assert.ErrorIs(t, err, discovery.ErrRootNotFound)

	_, err = Concatenate(context.Background(), filepath.Join(root, "a.txt"), []string{"a.txt"}, Options{})
	assert.ErrorIs(t, err, discovery.ErrNotDirectory)
}

func TestConcatenate_DetectOverride(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"main.gotmpl": goSource})
	opts := Options{
		Extract: true,
		Detect:  grammar.Default().Detector(map[string]string{".gotmpl": "go"}),
	}

	result, err := Concatenate(context.Background(), root, []string{"main.gotmpl"}, opts)
	require.NoError(t, err)
	require.Len(t, result.Files, 1)
	assert.Equal(t, StatusExtracted, result.Files[0].Status)
	assert.Equal(t, "package main\n\nfunc main() {\n}\n", result.Files[0].Content)
}

func TestConcatenate_OnFile(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"a.txt": "a", "b.txt": "b", "c.go": goSource})

	seen := map[string]Status{}
	opts := Options{
		Extract: true,
		Workers: 4,
		OnFile: func(f File) {
			seen[f.Path] = f.Status
		},
	}

	_, err := Concatenate(context.Background(), root, []string{"a.txt", "b.txt", "c.go"}, opts)
	require.NoError(t, err)
	assert.Equal(t, map[string]Status{
		"a.txt": StatusUnsupported,
		"b.txt": StatusUnsupported,
		"c.go":  StatusExtracted,
	}, seen)
}

func TestConcatenate_Cancelled(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{"a.txt": "a"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Concatenate(ctx, root, []string{"a.txt"}, Options{})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestResult_YAML(t *testing.T) {
	t.Parallel()

	root := writeFiles(t, map[string]string{
		"main.go":   goSource,
		"bad.py":    "def broken(:\n",
		"notes.txt": "hello\n",
	})

	result, err := Concatenate(context.Background(), root, []string{"main.go", "bad.py", "notes.txt"}, Options{Extract: true})
	require.NoError(t, err)

	out, err := result.YAML()
	require.NoError(t, err)

	var doc struct {
		Summary map[string]int `yaml:"summary"`
		Files   []struct {
			Path     string `yaml:"path"`
			Language string `yaml:"language"`
			Status   string `yaml:"status"`
			Error    string `yaml:"error"`
			Content  string `yaml:"content"`
		} `yaml:"files"`
	}
	require.NoError(t, yaml.Unmarshal(out, &doc))

	assert.Equal(t, map[string]int{"extracted": 1, "included": 0, "unsupported": 1, "failed": 1}, doc.Summary)
	require.Len(t, doc.Files, 3)
	assert.Equal(t, "main.go", doc.Files[0].Path)
	assert.Equal(t, "package main\n\nfunc main() {\n}\n", doc.Files[0].Content)
	assert.Equal(t, "failed", doc.Files[1].Status)
	assert.Contains(t, doc.Files[1].Error, "parse failure")
	assert.Empty(t, doc.Files[2].Language)
}
