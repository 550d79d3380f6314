package cli

import (
	"github.com/spf13/cobra"

	"github.com/mvp-joe/loppers/internal/discovery"
)

var (
	treeFlags              discoveryFlags
	treeCollapseSingleDirs bool
)

// treeCmd represents the tree command
var treeCmd = &cobra.Command{
	Use:   "tree [root]",
	Short: "Render the discovered files as a directory tree",
	Long: `Tree walks root (default: the current directory) with the same ignore rules as
concatenate and prints the resulting files as a tree.

Examples:
  loppers tree
  loppers tree ./src --collapse-single-dirs
  loppers tree -I "*.md" -o tree.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runTree,
}

func init() {
	rootCmd.AddCommand(treeCmd)
	treeFlags.register(treeCmd)
	treeCmd.Flags().BoolVar(&treeCollapseSingleDirs, "collapse-single-dirs", false, "Join chains of single-child directories onto one line")
}

func runTree(cmd *cobra.Command, args []string) error {
	root := rootArg(args)
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}
	treeFlags.apply(cmd, &cfg.Discovery)
	if cmd.Flags().Changed("collapse-single-dirs") {
		cfg.Tree.CollapseSingleDirs = treeCollapseSingleDirs
	}

	paths, err := discovery.FindFiles(root, cfg.Discovery.Options())
	if err != nil {
		return err
	}

	tree := discovery.RenderTree(excludeOutput(paths, outputWithinRoot(root, treeFlags.output)), cfg.Tree.CollapseSingleDirs)
	return writeOutput(cmd.OutOrStdout(), cmd.ErrOrStderr(), treeFlags.output, tree+"\n")
}

// excludeOutput drops the command's own output file from paths.
func excludeOutput(paths []string, output string) []string {
	if output == "" {
		return paths
	}
	kept := paths[:0:0]
	for _, p := range paths {
		if p != output {
			kept = append(kept, p)
		}
	}
	return kept
}
