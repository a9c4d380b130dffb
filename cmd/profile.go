package cmd

import (
	"fmt"

	"github.com/fant-market/client/types"
	"github.com/spf13/cobra"
)

var profileCmd = &cobra.Command{
	Use:     "profile",
	Short:   "Show or update your profile",
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		profile, err := app.session.FetchProfile(cmd.Context())
		if err != nil {
			return err
		}
		printProfile(cmd, profile)
		return nil
	},
}

var profileUpdate types.Profile

var profileUpdateCmd = &cobra.Command{
	Use:     "update",
	Short:   "Update profile fields",
	PreRunE: requireAuth,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		current, err := app.session.FetchProfile(cmd.Context())
		if err != nil {
			return err
		}
		merged := current
		if cmd.Flags().Changed("email") {
			merged.Email = profileUpdate.Email
		}
		if cmd.Flags().Changed("first-name") {
			merged.FirstName = profileUpdate.FirstName
		}
		if cmd.Flags().Changed("last-name") {
			merged.LastName = profileUpdate.LastName
		}
		if cmd.Flags().Changed("phone") {
			merged.PhoneNumber = profileUpdate.PhoneNumber
		}
		updated, err := app.session.UpdateProfile(cmd.Context(), merged)
		if err != nil {
			return err
		}
		printProfile(cmd, updated)
		return nil
	},
}

func printProfile(cmd *cobra.Command, p types.Profile) {
	fmt.Fprintf(cmd.OutOrStdout(), "Email:      %s\n", p.Email)
	fmt.Fprintf(cmd.OutOrStdout(), "First name: %s\n", p.FirstName)
	fmt.Fprintf(cmd.OutOrStdout(), "Last name:  %s\n", p.LastName)
	fmt.Fprintf(cmd.OutOrStdout(), "Phone:      %s\n", p.PhoneNumber)
}

func init() {
	profileUpdateCmd.Flags().StringVar(&profileUpdate.Email, "email", "", "email address")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.FirstName, "first-name", "", "first name")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.LastName, "last-name", "", "last name")
	profileUpdateCmd.Flags().StringVar(&profileUpdate.PhoneNumber, "phone", "", "phone number")

	profileCmd.AddCommand(profileUpdateCmd)
	rootCmd.AddCommand(profileCmd)
}
