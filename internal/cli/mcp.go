package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/loppers/internal/mcp"
	"github.com/mvp-joe/loppers/internal/skeleton"
)

// mcpCmd represents the mcp command
var mcpCmd = &cobra.Command{
	Use:   "mcp [root]",
	Short: "Start the MCP server for skeleton extraction",
	Long: `Start the Model Context Protocol (MCP) server so coding assistants can request
skeletons of files under root (default: the current directory).

The MCP server:
- Provides skeleton_extract for one file or an inline source
- Provides skeleton_concatenate for a set of files or the whole project
- Provides skeleton_languages to list supported languages
- Communicates via stdio (standard MCP transport)

Paths passed to the tools are resolved against root and may not leave it.

Example:
  loppers mcp`,
	Args: cobra.MaximumNArgs(1),
	RunE: runMCP,
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	root := rootArg(args)
	cfg, err := loadConfig(root)
	if err != nil {
		return err
	}

	fmt.Fprintf(os.Stderr, "Loppers MCP Server %s\n", Version)
	fmt.Fprintf(os.Stderr, "Project Root: %s\n\n", root)

	server, err := mcp.NewMCPServer(&mcp.ServerConfig{
		ProjectRoot: root,
		Config:      cfg,
		Extractor:   skeleton.Default(),
		Version:     Version,
	})
	if err != nil {
		return fmt.Errorf("failed to create MCP server: %w", err)
	}

	return server.Serve(ctx)
}
