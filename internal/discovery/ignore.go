package discovery

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// DefaultIgnorePatterns are gitignore-syntax rules for files that never belong in a
// skeleton: VCS metadata, dependency trees, build output, caches, lock files and
// compiled artifacts.
var DefaultIgnorePatterns = []string{
	// Version control
	".git/",
	".hg/",
	".svn/",
	".bzr/",

	// Dependencies
	"node_modules/",
	"bower_components/",
	".venv/",
	"venv/",
	".bundle/",

	// Build output
	"dist/",
	"build/",
	"target/",
	"out/",
	".next/",
	".nuxt/",
	".gradle/",
	"*.egg-info/",

	// Caches and tooling
	"__pycache__/",
	".mypy_cache/",
	".pytest_cache/",
	".ruff_cache/",
	".tox/",
	".cache/",
	"coverage/",
	".idea/",
	".vscode/",
	".DS_Store",

	// Lock files
	"package-lock.json",
	"yarn.lock",
	"pnpm-lock.yaml",
	"Cargo.lock",
	"poetry.lock",
	"Gemfile.lock",
	"composer.lock",

	// Generated and compiled artifacts
	"*.min.js",
	"*.min.css",
	"*.map",
	"*.pyc",
	"*.pyo",
	"*.class",
	"*.jar",
	"*.o",
	"*.a",
	"*.so",
	"*.dylib",
	"*.dll",
	"*.exe",
}

// ignoreLines merges default, .gitignore and custom rules in that order, so later
// rules (including negations) win.
func ignoreLines(rootDir string, opts Options) ([]string, error) {
	var lines []string
	if opts.UseDefaultIgnore {
		lines = append(lines, DefaultIgnorePatterns...)
	}
	if opts.RespectGitignore {
		gitignoreLines, err := readGitignore(filepath.Join(rootDir, ".gitignore"))
		if err != nil {
			return nil, err
		}
		lines = append(lines, gitignoreLines...)
	}
	lines = append(lines, opts.IgnorePatterns...)
	return lines, nil
}

// readGitignore returns the non-empty, non-comment lines of a .gitignore file.
// A missing file yields no lines.
func readGitignore(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	var lines []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		lines = append(lines, line)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return lines, nil
}
