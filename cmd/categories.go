package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List all categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		categories, err := app.categories.FetchAll(cmd.Context())
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tPARENT")
		for _, category := range categories {
			parent := ""
			if category.Parent != nil {
				parent = category.Parent.Name
			}
			fmt.Fprintf(w, "%s\t%s\t%s\n", category.ID, category.Name, parent)
		}
		w.Flush()
		return nil
	},
}

func init() {
	rootCmd.AddCommand(categoriesCmd)
}
