package cmd

import (
	"fmt"
	"os"

	"github.com/fant-market/client/config"
	"github.com/fant-market/client/internal/logger"
	"github.com/spf13/cobra"
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "fant",
	Short: "Command-line client for the Fant marketplace",
	Long: `fant is the command-line client for the Fant marketplace backend.

It covers the full client surface: authentication, profile management,
item search and listings, bids, favorites, categories, the admin panel,
and real-time chat over the marketplace's websocket endpoint.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.LoadConfig()
		return logger.Init(cfg.Log.Level, cfg.Log.Format)
	},
}

// Execute adds all child commands to the root command and sets flags
// appropriately. This is called by main.main().
func Execute() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
