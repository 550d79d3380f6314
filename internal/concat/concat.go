// Package concat joins many files into one document, replacing the bodies of
// supported source files with their skeletons.
package concat

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/mvp-joe/loppers/internal/discovery"
	"github.com/mvp-joe/loppers/internal/skeleton"
)

// ErrNoPaths is returned when there is nothing to concatenate.
var ErrNoPaths = errors.New("no paths to concatenate")

// Status describes how a file ended up in the output.
type Status string

const (
	// StatusExtracted means the skeleton replaced the file content.
	StatusExtracted Status = "extracted"
	// StatusIncluded means extraction was off and the content is verbatim.
	StatusIncluded Status = "included"
	// StatusUnsupported means no language is registered for the file.
	StatusUnsupported Status = "unsupported"
	// StatusFailed means extraction failed and the original content was used.
	StatusFailed Status = "failed"
)

// Options controls Concatenate.
type Options struct {
	// Extract replaces supported files with their skeletons.
	Extract bool
	// IgnoreNotFound drops missing files instead of failing.
	IgnoreNotFound bool
	// Workers bounds concurrent reads and extractions. Values below 1 mean runtime.NumCPU().
	Workers int
	// Detect maps a path to a language id. Defaults to the extractor's registry.
	Detect func(path string) string
	// OnFile is called once per processed file. Calls are serialized.
	OnFile func(File)
	// Extractor defaults to skeleton.Default().
	Extractor *skeleton.Extractor
	// Cache, when set, reuses skeletons of unchanged content across calls.
	Cache *Cache
}

// File is one entry of the concatenated output.
type File struct {
	Path     string
	Language string
	Status   Status
	Content  string
	// Err is set for StatusFailed.
	Err error
}

// Result is the outcome of Concatenate. Files are in input order.
type Result struct {
	Files []File
}

// Count returns how many files have the given status.
func (r *Result) Count(status Status) int {
	n := 0
	for _, f := range r.Files {
		if f.Status == status {
			n++
		}
	}
	return n
}

// Text renders every file under a "--- <path>" header, entries separated by a
// blank line. Trailing whitespace is trimmed.
func (r *Result) Text() string {
	var b strings.Builder
	for i, f := range r.Files {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString("--- ")
		b.WriteString(f.Path)
		if content := strings.TrimRight(f.Content, " \t\r\n"); content != "" {
			b.WriteByte('\n')
			b.WriteString(content)
		}
	}
	return b.String()
}

type entry struct {
	index int
	path  string
}

// Concatenate reads paths (slash-separated, relative to root) and builds the
// combined document. Binary files are left out. A missing file fails the whole
// call with an error wrapping fs.ErrNotExist unless opts.IgnoreNotFound is set.
func Concatenate(ctx context.Context, root string, paths []string, opts Options) (*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoPaths
	}
	if err := discovery.CheckRoot(root); err != nil {
		return nil, err
	}

	extractor := opts.Extractor
	if extractor == nil {
		extractor = skeleton.Default()
	}
	detect := opts.Detect
	if detect == nil {
		detect = extractor.Registry().DetectLanguage
	}
	workers := opts.Workers
	if workers < 1 {
		workers = runtime.NumCPU()
	}

	files := make([]File, len(paths))
	kept := make([]bool, len(paths))

	var mu sync.Mutex
	report := func(f File) {
		if opts.OnFile == nil {
			return
		}
		mu.Lock()
		defer mu.Unlock()
		opts.OnFile(f)
	}

	origCtx := ctx
	g, ctx := errgroup.WithContext(ctx)
	entries := make(chan entry, workers*2)

	g.Go(func() error {
		defer close(entries)
		for i, p := range paths {
			select {
			case entries <- entry{index: i, path: p}:
			case <-ctx.Done():
				return ctx.Err()
			}
		}
		return nil
	})

	for range workers {
		g.Go(func() error {
			for e := range entries {
				if err := ctx.Err(); err != nil {
					return err
				}
				f, ok, err := process(root, e.path, extractor, detect, opts)
				if err != nil {
					return err
				}
				if !ok {
					continue
				}
				files[e.index] = f
				kept[e.index] = true
				report(f)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	if err := origCtx.Err(); err != nil {
		return nil, err
	}

	result := &Result{Files: make([]File, 0, len(files))}
	for i, f := range files {
		if kept[i] {
			result.Files = append(result.Files, f)
		}
	}
	return result, nil
}

// process builds the entry for one path. ok is false for files that are left out.
func process(root, path string, extractor *skeleton.Extractor, detect func(string) string, opts Options) (File, bool, error) {
	data, err := os.ReadFile(filepath.Join(root, filepath.FromSlash(path)))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && opts.IgnoreNotFound {
			return File{}, false, nil
		}
		return File{}, false, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if discovery.IsBinary(data) {
		return File{}, false, nil
	}

	f := File{Path: path, Content: string(data), Status: StatusIncluded}
	if !opts.Extract {
		return f, true, nil
	}

	f.Language = detect(path)
	if f.Language == "" {
		f.Status = StatusUnsupported
		return f, true, nil
	}

	out, err := opts.Cache.extract(extractor, f.Content, f.Language)
	if err != nil {
		f.Status = StatusFailed
		f.Err = err
		return f, true, nil
	}
	f.Content = out
	f.Status = StatusExtracted
	return f, true, nil
}
