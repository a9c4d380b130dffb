package cmd

import (
	"fmt"
	"strings"

	"github.com/fant-market/client/types"
	"github.com/spf13/cobra"
)

var itemCmd = &cobra.Command{
	Use:   "item",
	Short: "Inspect and manage item listings",
}

var itemShowCmd = &cobra.Command{
	Use:   "show ID",
	Short: "Show a single listing",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		details, err := app.items.FetchItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%s\n", details.Title)
		fmt.Fprintf(out, "Price:    %s\n", formatPrice(details.Price))
		fmt.Fprintf(out, "Category: %s\n", details.Category)
		fmt.Fprintf(out, "Contact:  %s\n", details.Contact)
		if len(details.ImageURLs) > 0 {
			fmt.Fprintf(out, "Images:   %s\n", strings.Join(details.ImageURLs, ", "))
		}
		fmt.Fprintf(out, "\n%s\n", details.Description)

		if app.session.LoggedIn() {
			// View tracking feeds recommendations; ignore the outcome.
			app.items.RecordView(cmd.Context(), args[0])
			if app.favorites.IsFavorite(cmd.Context(), args[0]) {
				fmt.Fprintln(out, "\n♥ favorited")
			}
		}
		return nil
	},
}

var itemMinePageable types.Pageable

var itemMineCmd = &cobra.Command{
	Use:     "mine",
	Short:   "List your own listings",
	Args:    cobra.NoArgs,
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		page, err := app.items.FetchMyPagedItems(cmd.Context(), itemMinePageable)
		if err != nil {
			return err
		}
		printItemPage(cmd, page)
		return nil
	},
}

var itemFavoritesCmd = &cobra.Command{
	Use:     "favorites",
	Short:   "List your favorited items",
	Args:    cobra.NoArgs,
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		page, err := app.items.FetchPagedFavoriteItems(cmd.Context(), itemMinePageable)
		if err != nil {
			return err
		}
		printItemPage(cmd, page)
		return nil
	},
}

var itemRecommendedCmd = &cobra.Command{
	Use:     "recommended",
	Short:   "List items recommended from your browsing history",
	Args:    cobra.NoArgs,
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		rec, err := app.recs.CategoryRecommendations(cmd.Context())
		if err != nil {
			return err
		}
		page, err := app.items.FetchByDistribution(cmd.Context(), rec, 0)
		if err != nil {
			return err
		}
		printItemPage(cmd, page)
		return nil
	},
}

var (
	itemPayload   types.ItemCreate
	itemLatitude  float64
	itemLongitude float64
)

func itemPayloadFromFlags(cmd *cobra.Command) types.ItemCreate {
	payload := itemPayload
	if cmd.Flags().Changed("lat") {
		payload.Latitude = &itemLatitude
	}
	if cmd.Flags().Changed("lon") {
		payload.Longitude = &itemLongitude
	}
	return payload
}

var itemCreateCmd = &cobra.Command{
	Use:     "create",
	Short:   "Post a new listing",
	Args:    cobra.NoArgs,
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		id, err := app.items.Create(cmd.Context(), itemPayloadFromFlags(cmd))
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created item %d\n", id)
		return nil
	},
}

var itemUpdateCmd = &cobra.Command{
	Use:     "update ID",
	Short:   "Update one of your listings",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if _, err := app.items.Update(cmd.Context(), args[0], itemPayloadFromFlags(cmd)); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Updated")
		return nil
	},
}

var itemDeleteCmd = &cobra.Command{
	Use:     "delete ID",
	Short:   "Delete one of your listings",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if err := app.items.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Deleted")
		return nil
	},
}

func init() {
	for _, c := range []*cobra.Command{itemMineCmd, itemFavoritesCmd} {
		c.Flags().IntVar(&itemMinePageable.Page, "page", 0, "page index (0-based)")
		c.Flags().IntVar(&itemMinePageable.Size, "size", 20, "page size")
		c.Flags().StringVar(&itemMinePageable.Sort, "sort", "", "sort expression")
	}

	for _, c := range []*cobra.Command{itemCreateCmd, itemUpdateCmd} {
		c.Flags().Int64Var(&itemPayload.CategoryID, "category", 0, "category id")
		c.Flags().StringVar(&itemPayload.BriefDescription, "title", "", "short listing title")
		c.Flags().StringVar(&itemPayload.FullDescription, "description", "", "full description")
		c.Flags().Float64Var(&itemPayload.Price, "price", 0, "asking price in kroner")
		c.Flags().Float64Var(&itemLatitude, "lat", 0, "listing latitude")
		c.Flags().Float64Var(&itemLongitude, "lon", 0, "listing longitude")
	}
	itemCreateCmd.MarkFlagRequired("category")
	itemCreateCmd.MarkFlagRequired("title")
	itemCreateCmd.MarkFlagRequired("price")

	itemCmd.AddCommand(itemShowCmd, itemMineCmd, itemFavoritesCmd, itemRecommendedCmd,
		itemCreateCmd, itemUpdateCmd, itemDeleteCmd)
	rootCmd.AddCommand(itemCmd)
}
