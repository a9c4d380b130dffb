package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/fant-market/client/types"
	"github.com/spf13/cobra"
)

var searchFlags struct {
	query     string
	minPrice  float64
	maxPrice  float64
	category  string
	status    string
	latitude  float64
	longitude float64
	radius    float64
	page      int
	size      int
	sort      string
}

var searchCmd = &cobra.Command{
	Use:   "search",
	Short: "Search item listings",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()

		params := types.ItemSearchParams{
			SearchTerm:   searchFlags.query,
			CategoryName: searchFlags.category,
			Status:       types.ItemStatus(searchFlags.status),
			Page:         searchFlags.page,
			Size:         searchFlags.size,
			Sort:         searchFlags.sort,
		}
		if cmd.Flags().Changed("min-price") {
			params.MinPrice = &searchFlags.minPrice
		}
		if cmd.Flags().Changed("max-price") {
			params.MaxPrice = &searchFlags.maxPrice
		}
		if cmd.Flags().Changed("lat") {
			params.UserLatitude = &searchFlags.latitude
		}
		if cmd.Flags().Changed("lon") {
			params.UserLongitude = &searchFlags.longitude
		}
		if cmd.Flags().Changed("radius") {
			params.MaxDistance = &searchFlags.radius
		}

		page, err := app.items.Search(cmd.Context(), params)
		if err != nil {
			return err
		}

		printItemPage(cmd, page)
		return nil
	},
}

func printItemPage(cmd *cobra.Command, page types.Page[types.ItemPreview]) {
	if page.Empty {
		fmt.Fprintln(cmd.OutOrStdout(), "No items found")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tPRICE")
	for _, item := range page.Content {
		fmt.Fprintf(w, "%s\t%s\t%s\n", item.ID, item.Title, formatPrice(item.Price))
	}
	w.Flush()
	fmt.Fprintf(cmd.OutOrStdout(), "Page %d/%d (%d items)\n",
		page.Number+1, page.TotalPages, page.TotalElements)
}

func init() {
	searchCmd.Flags().StringVarP(&searchFlags.query, "query", "q", "", "free-text search term")
	searchCmd.Flags().Float64Var(&searchFlags.minPrice, "min-price", 0, "minimum price")
	searchCmd.Flags().Float64Var(&searchFlags.maxPrice, "max-price", 0, "maximum price")
	searchCmd.Flags().StringVar(&searchFlags.category, "category", "", "category name")
	searchCmd.Flags().StringVar(&searchFlags.status, "status", "", "item status filter")
	searchCmd.Flags().Float64Var(&searchFlags.latitude, "lat", 0, "your latitude for distance filtering")
	searchCmd.Flags().Float64Var(&searchFlags.longitude, "lon", 0, "your longitude for distance filtering")
	searchCmd.Flags().Float64Var(&searchFlags.radius, "radius", 0, "maximum distance in km")
	searchCmd.Flags().IntVar(&searchFlags.page, "page", 0, "page index (0-based)")
	searchCmd.Flags().IntVar(&searchFlags.size, "size", 20, "page size")
	searchCmd.Flags().StringVar(&searchFlags.sort, "sort", "", "sort expression, e.g. price,asc")

	rootCmd.AddCommand(searchCmd)
}
