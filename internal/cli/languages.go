package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mvp-joe/loppers/internal/grammar"
)

// languagesCmd represents the languages command
var languagesCmd = &cobra.Command{
	Use:   "languages",
	Short: "List supported languages, aliases and extensions",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return printLanguages(cmd.OutOrStdout(), grammar.Default())
	},
}

func init() {
	rootCmd.AddCommand(languagesCmd)
}

func printLanguages(w io.Writer, registry *grammar.Registry) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "LANGUAGE\tALIASES\tEXTENSIONS")
	for _, lang := range registry.Languages() {
		aliases := strings.Join(lang.Aliases, ", ")
		if aliases == "" {
			aliases = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\n", lang.ID, aliases, strings.Join(lang.Extensions, " "))
	}
	return tw.Flush()
}
