package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/fant-market/client/types"
	"github.com/spf13/cobra"
)

var bidCmd = &cobra.Command{
	Use:   "bid",
	Short: "Place and manage bids",
}

var bidComment string

var bidPlaceCmd = &cobra.Command{
	Use:     "place ITEM AMOUNT",
	Short:   "Place a bid on an item",
	Args:    cobra.ExactArgs(2),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		itemID, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid item id %q", args[0])
		}
		amount, err := strconv.ParseFloat(args[1], 64)
		if err != nil {
			return fmt.Errorf("invalid amount %q", args[1])
		}

		payload := types.BidPayload{ItemID: itemID, Amount: amount, Comment: bidComment}
		if _, err := app.bids.Place(cmd.Context(), payload); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Bid of %s placed on item %d\n", formatPrice(amount), itemID)
		return nil
	},
}

var bidPageable types.Pageable

var bidMineCmd = &cobra.Command{
	Use:     "mine",
	Short:   "List your bids",
	Args:    cobra.NoArgs,
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		page, err := app.bids.FetchPagedUserBids(cmd.Context(), bidPageable)
		if err != nil {
			return err
		}
		printBids(cmd, page.Content)
		fmt.Fprintf(cmd.OutOrStdout(), "Page %d/%d (%d bids)\n",
			page.Number+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

var bidForItemCmd = &cobra.Command{
	Use:     "for-item ITEM",
	Short:   "List bids placed on your item",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		bids, err := app.bids.FetchBidsForItem(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printBids(cmd, bids)
		return nil
	},
}

var bidAcceptCmd = &cobra.Command{
	Use:     "accept ITEM BIDDER",
	Short:   "Accept a bid on your item",
	Args:    cobra.ExactArgs(2),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if _, err := app.bids.Accept(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Bid accepted")
		return nil
	},
}

var bidRejectCmd = &cobra.Command{
	Use:     "reject ITEM BIDDER",
	Short:   "Reject a bid on your item",
	Args:    cobra.ExactArgs(2),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if _, err := app.bids.Reject(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Bid rejected")
		return nil
	},
}

var bidRetractCmd = &cobra.Command{
	Use:     "retract ITEM",
	Short:   "Withdraw your bid on an item",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if _, err := app.bids.DeleteMy(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Bid withdrawn")
		return nil
	},
}

var bidUpdateAmount float64

var bidUpdateCmd = &cobra.Command{
	Use:     "update ITEM",
	Short:   "Change your pending bid on an item",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		update := types.BidUpdate{Comment: bidComment}
		if cmd.Flags().Changed("amount") {
			update.Amount = &bidUpdateAmount
		}
		if _, err := app.bids.UpdateMy(cmd.Context(), args[0], update); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Bid updated")
		return nil
	},
}

func printBids(cmd *cobra.Command, bids []types.Bid) {
	if len(bids) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No bids")
		return
	}
	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ITEM\tBIDDER\tAMOUNT\tSTATUS\tCOMMENT")
	for _, bid := range bids {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			bid.ItemID, bid.BidderUsername, formatPrice(bid.Amount), bid.Status, bid.Comment)
	}
	w.Flush()
}

func init() {
	bidPlaceCmd.Flags().StringVar(&bidComment, "comment", "", "optional comment")
	bidUpdateCmd.Flags().Float64Var(&bidUpdateAmount, "amount", 0, "new amount")
	bidUpdateCmd.Flags().StringVar(&bidComment, "comment", "", "new comment")
	bidMineCmd.Flags().IntVar(&bidPageable.Page, "page", 0, "page index (0-based)")
	bidMineCmd.Flags().IntVar(&bidPageable.Size, "size", 20, "page size")
	bidMineCmd.Flags().StringVar(&bidPageable.Sort, "sort", "", "sort expression")

	bidCmd.AddCommand(bidPlaceCmd, bidMineCmd, bidForItemCmd, bidAcceptCmd, bidRejectCmd, bidRetractCmd, bidUpdateCmd)
	rootCmd.AddCommand(bidCmd)
}
