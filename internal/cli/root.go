package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mvp-joe/loppers/internal/config"
)

var (
	cfgFile string
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "loppers",
	Short: "Loppers - extract code skeletons",
	Long: `Loppers strips function and method bodies from source files while keeping
signatures, class scaffolding, imports, comments, docstrings and decorators.

Skeletons give a compact view of a codebase's API surface, small enough to hand to
an LLM or skim in review. Loppers can extract a single file, concatenate a whole
project into one document, render the project tree or serve the same operations
over MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is .loppers.yml in the processed root)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("verbose", rootCmd.PersistentFlags().Lookup("verbose"))
}

// loadConfig loads the configuration for root, preferring an explicit --config file.
func loadConfig(root string) (*config.Config, error) {
	var loader config.Loader
	if path := viper.GetString("config"); path != "" {
		loader = config.NewFileLoader(path)
	} else {
		loader = config.NewLoader(root)
	}

	cfg, err := loader.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}
	if viper.GetBool("verbose") {
		if path := viper.GetString("config"); path != "" {
			fmt.Fprintln(os.Stderr, "Using config file:", path)
		}
	}
	return cfg, nil
}
