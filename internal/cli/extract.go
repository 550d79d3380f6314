package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/loppers/internal/skeleton"
)

var (
	extractLanguage string
	extractOutput   string
)

// extractCmd represents the extract command
var extractCmd = &cobra.Command{
	Use:   "extract [file]",
	Short: "Print the skeleton of one source file",
	Long: `Extract removes function and method bodies from a source file and prints the
result. Signatures, types, imports, comments, docstrings and decorators are kept.

The language is detected from the file extension unless --language is given.
Without a file argument the source is read from stdin and --language is required.

Examples:
  # Skeleton of a Go file
  loppers extract internal/server/handler.go

  # From stdin
  cat app.py | loppers extract -l python

  # Write to a file
  loppers extract src/App.java -o App.skeleton.java`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)
	extractCmd.Flags().StringVarP(&extractLanguage, "language", "l", "", "Language id or alias (see 'loppers languages')")
	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", "", "Write the skeleton to a file instead of stdout")
}

func runExtract(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(".")
	if err != nil {
		return err
	}
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	return executeExtract(cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr(), skeleton.Default(), detectorFor(cfg), path, extractLanguage, extractOutput)
}

// executeExtract reads path (or stdin when path is empty), extracts it and writes the
// skeleton to output (or stdout).
func executeExtract(stdin io.Reader, stdout, stderr io.Writer, extractor *skeleton.Extractor, detect func(string) string, path, language, output string) error {
	var source []byte
	var err error

	if path == "" {
		if language == "" {
			return fmt.Errorf("--language is required when reading from stdin")
		}
		source, err = io.ReadAll(stdin)
		if err != nil {
			return fmt.Errorf("failed to read stdin: %w", err)
		}
	} else {
		source, err = os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if language == "" {
			language = detect(path)
		}
		if language == "" {
			return fmt.Errorf("%w: cannot detect language for %s, use --language", skeleton.ErrUnsupportedLanguage, path)
		}
	}

	out, err := extractor.Extract(string(source), language)
	if err != nil {
		if path != "" {
			return fmt.Errorf("%s: %w", path, err)
		}
		return err
	}

	return writeOutput(stdout, stderr, output, out)
}
