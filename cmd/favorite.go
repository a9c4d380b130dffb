package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var favoriteCmd = &cobra.Command{
	Use:   "favorite",
	Short: "Manage favorite bookmarks",
}

var favoriteAddCmd = &cobra.Command{
	Use:     "add ITEM",
	Short:   "Add an item to your favorites",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if err := app.favorites.Add(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Added to favorites")
		return nil
	},
}

var favoriteRemoveCmd = &cobra.Command{
	Use:     "remove ITEM",
	Short:   "Remove an item from your favorites",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if err := app.favorites.Remove(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Removed from favorites")
		return nil
	},
}

var favoriteStatusCmd = &cobra.Command{
	Use:     "status ITEM",
	Short:   "Check whether an item is favorited",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		fmt.Fprintln(cmd.OutOrStdout(), app.favorites.IsFavorite(cmd.Context(), args[0]))
		return nil
	},
}

func init() {
	favoriteCmd.AddCommand(favoriteAddCmd, favoriteRemoveCmd, favoriteStatusCmd)
	rootCmd.AddCommand(favoriteCmd)
}
