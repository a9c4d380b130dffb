package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fant-market/client/internal/services"
	"github.com/spf13/cobra"
)

var imageCmd = &cobra.Command{
	Use:   "image",
	Short: "Manage listing images",
}

var imageUploadCmd = &cobra.Command{
	Use:     "upload ITEM FILE...",
	Short:   "Upload image files to one of your listings",
	Args:    cobra.MinimumNArgs(2),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		uploads := make([]services.Upload, 0, len(args)-1)
		var opened []*os.File
		defer func() {
			for _, f := range opened {
				f.Close()
			}
		}()
		for _, path := range args[1:] {
			f, err := os.Open(path)
			if err != nil {
				return err
			}
			opened = append(opened, f)
			uploads = append(uploads, services.Upload{Name: filepath.Base(path), Contents: f})
		}

		if err := app.images.UploadImages(cmd.Context(), args[0], uploads); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Uploaded %d image(s)\n", len(uploads))
		return nil
	},
}

var imageDeleteCmd = &cobra.Command{
	Use:     "delete ITEM URL",
	Short:   "Remove an image from one of your listings",
	Args:    cobra.ExactArgs(2),
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if err := app.images.DeleteImage(cmd.Context(), args[0], args[1]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Image deleted")
		return nil
	},
}

func init() {
	imageCmd.AddCommand(imageUploadCmd, imageDeleteCmd)
	rootCmd.AddCommand(imageCmd)
}
