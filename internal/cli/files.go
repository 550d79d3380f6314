package cli

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/loppers/internal/discovery"
)

var filesFlags discoveryFlags

// filesCmd represents the files command
var filesCmd = &cobra.Command{
	Use:   "files [root]",
	Short: "List the files concatenate would include",
	Long: `Files prints one path per line, relative to root, after applying the default
ignore patterns, the root .gitignore and any --ignore-pattern flags. Binary files
are never listed.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runFiles,
}

func init() {
	rootCmd.AddCommand(filesCmd)
	filesFlags.register(filesCmd)
}

func runFiles(cmd *cobra.Command, args []string) error {
	root := rootArg(args)
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	filesFlags.apply(cmd, &cfg.Discovery)

	paths, err := discovery.FindFiles(root, cfg.Discovery.Options())
	if err != nil {
		return err
	}
	paths = excludeOutput(paths, outputWithinRoot(root, filesFlags.output))

	var b strings.Builder
	for _, p := range paths {
		b.WriteString(p)
		b.WriteByte('\n')
	}
	return writeOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), filesFlags.output, b.String())
}
