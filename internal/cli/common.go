package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/loppers/internal/config"
)

// discoveryFlags are the file selection flags shared by concatenate, tree and files.
type discoveryFlags struct {
	noRecursive     bool
	ignorePatterns  []string
	noDefaultIgnore bool
	noGitignore     bool
	output          string
}

func (f *discoveryFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.noRecursive, "no-recursive", false, "Only include files directly in the root")
	cmd.Flags().StringArrayVarP(&f.ignorePatterns, "ignore-pattern", "I", nil, "Additional gitignore-style pattern (repeatable)")
	cmd.Flags().BoolVar(&f.noDefaultIgnore, "no-default-ignore", false, "Disable the built-in ignore patterns")
	cmd.Flags().BoolVar(&f.noGitignore, "no-gitignore", false, "Do not read the root .gitignore")
	cmd.Flags().StringVarP(&f.output, "output", "o", "", "Write output to a file instead of stdout")
}

// apply overrides cfg with the flags that were set on the command line.
func (f *discoveryFlags) apply(cmd *cobra.Command, cfg *config.DiscoveryConfig) {
	if cmd.Flags().Changed("no-recursive") {
		cfg.Recursive = !f.noRecursive
	}
	if cmd.Flags().Changed("no-default-ignore") {
		cfg.UseDefaultIgnore = !f.noDefaultIgnore
	}
	if cmd.Flags().Changed("no-gitignore") {
		cfg.RespectGitignore = !f.noGitignore
	}
	cfg.Ignore = append(cfg.Ignore, f.ignorePatterns...)
}

// rootArg returns the directory argument, defaulting to the working directory.
func rootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}

// writeOutput writes content to path, or to stdout when path is empty.
func writeOutput(stdout, stderr io.Writer, path, content string) error {
	if path == "" {
		_, err := io.WriteString(stdout, content)
		return err
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	newStatusPrinter(stderr, false).Wrote(path, len(content))
	return nil
}

// outputWithinRoot returns the output file's slash-separated path relative to root,
// or "" when the output is stdout or lies outside root.
func outputWithinRoot(root, output string) string {
	if output == "" {
		return ""
	}
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return ""
	}
	absOut, err := filepath.Abs(output)
	if err != nil {
		return ""
	}
	rel, err := filepath.Rel(absRoot, absOut)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return ""
	}
	return filepath.ToSlash(rel)
}
