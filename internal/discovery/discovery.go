package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/gobwas/glob"
	gitignore "github.com/sabhiram/go-gitignore"
)

var (
	// ErrRootNotFound indicates the discovery root does not exist.
	ErrRootNotFound = errors.New("root not found")

	// ErrNotDirectory indicates the discovery root is not a directory.
	ErrNotDirectory = errors.New("root is not a directory")
)

// Options controls which files FindFiles returns.
type Options struct {
	// Recursive descends into subdirectories.
	Recursive bool
	// UseDefaultIgnore applies DefaultIgnorePatterns.
	UseDefaultIgnore bool
	// RespectGitignore applies the root .gitignore.
	RespectGitignore bool
	// IgnorePatterns are extra gitignore-syntax lines.
	IgnorePatterns []string
	// IncludePatterns restrict results to files matching at least one glob (e.g. "**/*.go").
	IncludePatterns []string
	// MaxFileSize skips files larger than this many bytes (0 = no limit).
	MaxFileSize int64
}

// DefaultOptions returns recursive discovery with default and .gitignore rules.
func DefaultOptions() Options {
	return Options{
		Recursive:        true,
		UseDefaultIgnore: true,
		RespectGitignore: true,
	}
}

// compiledPattern holds both the pattern string and compiled glob
type compiledPattern struct {
	pattern string
	glob    glob.Glob
}

// FileDiscovery finds non-binary text files under a root directory.
type FileDiscovery struct {
	rootDir string
	opts    Options
	ignore  *gitignore.GitIgnore
	include []compiledPattern
}

// New validates the root and compiles ignore and include rules.
func New(rootDir string, opts Options) (*FileDiscovery, error) {
	if err := CheckRoot(rootDir); err != nil {
		return nil, err
	}

	lines, err := ignoreLines(rootDir, opts)
	if err != nil {
		return nil, err
	}

	fd := &FileDiscovery{
		rootDir: rootDir,
		opts:    opts,
	}
	if len(lines) > 0 {
		fd.ignore = gitignore.CompileIgnoreLines(lines...)
	}

	for _, pattern := range opts.IncludePatterns {
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", pattern, err)
		}
		fd.include = append(fd.include, compiledPattern{pattern: pattern, glob: g})
	}

	return fd, nil
}

// CheckRoot returns ErrRootNotFound or ErrNotDirectory when root is unusable.
func CheckRoot(root string) error {
	info, err := os.Stat(root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrRootNotFound, root)
		}
		return fmt.Errorf("failed to stat root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s", ErrNotDirectory, root)
	}
	return nil
}

// FindFiles returns the text files under root as sorted slash-separated relative paths.
func FindFiles(root string, opts Options) ([]string, error) {
	fd, err := New(root, opts)
	if err != nil {
		return nil, err
	}
	return fd.Discover()
}

// Root returns the directory discovery runs in.
func (fd *FileDiscovery) Root() string {
	return fd.rootDir
}

// Discover walks the root and returns matching files relative to it, sorted.
func (fd *FileDiscovery) Discover() ([]string, error) {
	files := []string{}

	err := filepath.WalkDir(fd.rootDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if path == fd.rootDir {
			return nil
		}

		relPath, err := filepath.Rel(fd.rootDir, path)
		if err != nil {
			return err
		}

		// Normalize path separators for pattern matching
		relPath = filepath.ToSlash(relPath)

		if d.IsDir() {
			if !fd.opts.Recursive || fd.Ignored(relPath, true) {
				return filepath.SkipDir
			}
			return nil
		}

		if !d.Type().IsRegular() && d.Type()&fs.ModeSymlink == 0 {
			return nil
		}
		if !fd.Matches(relPath) {
			return nil
		}

		if fd.opts.MaxFileSize > 0 {
			info, err := d.Info()
			if err != nil || info.Size() > fd.opts.MaxFileSize {
				return nil
			}
		}

		if IsBinaryFile(path) {
			return nil
		}

		files = append(files, relPath)
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether a file passes the ignore and include rules.
func (fd *FileDiscovery) Matches(relPath string) bool {
	if fd.Ignored(relPath, false) {
		return false
	}
	if len(fd.include) == 0 {
		return true
	}
	return matchesAnyPattern(relPath, fd.include)
}

// Ignored reports whether the slash-separated relative path is excluded by the ignore rules.
// Directories are tested with and without a trailing slash so "build/" and "build" both apply.
func (fd *FileDiscovery) Ignored(relPath string, isDir bool) bool {
	if fd.ignore == nil {
		return false
	}
	if isDir {
		return fd.ignore.MatchesPath(relPath+"/") || fd.ignore.MatchesPath(relPath)
	}
	for dir := filepath.ToSlash(filepath.Dir(relPath)); dir != "." && dir != "/"; dir = filepath.ToSlash(filepath.Dir(dir)) {
		if fd.ignore.MatchesPath(dir+"/") || fd.ignore.MatchesPath(dir) {
			return true
		}
	}
	return fd.ignore.MatchesPath(relPath)
}

// matchesAnyPattern checks if a path matches any of the given patterns.
func matchesAnyPattern(path string, patterns []compiledPattern) bool {
	for _, cp := range patterns {
		if cp.glob.Match(path) {
			return true
		}
	}

	// Files in the root also match "**/" patterns, so "**/*.md" covers README.md.
	if !strings.Contains(path, "/") {
		for _, cp := range patterns {
			if !strings.HasPrefix(cp.pattern, "**/") {
				continue
			}
			simplified, err := glob.Compile(strings.TrimPrefix(cp.pattern, "**/"), '/')
			if err == nil && simplified.Match(path) {
				return true
			}
		}
	}

	return false
}
