package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abhisek/lingua/internal/catalog"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Inspect the example sentence catalog",
}

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every language and difficulty with its sentence",
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, err := loadCatalog(cmd)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		for _, lang := range cat.Languages() {
			fmt.Fprintln(out, lang)
			fmt.Fprintln(out, strings.Repeat("\u2500", 60))
			for _, diff := range catalog.Difficulties() {
				sentence, err := cat.Lookup(lang, diff)
				if err != nil {
					sentence = "(missing)"
				}
				fmt.Fprintf(out, "  %s  %s\n", diff, sentence)
			}
			fmt.Fprintln(out)
		}
		return nil
	},
}

func init() {
	catalogCmd.AddCommand(catalogListCmd)
}
