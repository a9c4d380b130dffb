package cmd

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/fant-market/client/types"
	"github.com/spf13/cobra"
)

var loginPassword string

var loginCmd = &cobra.Command{
	Use:   "login EMAIL",
	Short: "Authenticate against the marketplace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		password := loginPassword
		if password == "" {
			fmt.Fprint(cmd.OutOrStdout(), "Password: ")
			line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
			if err != nil {
				return err
			}
			password = strings.TrimSpace(line)
		}

		if err := app.session.VerifyLogin(cmd.Context(), args[0], password); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (%s)\n", app.session.Username(), app.session.Role())
		return nil
	},
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Clear the stored session",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		app.messages.CleanupMessaging()
		app.session.Logout()
		fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
		return nil
	},
}

var registerData types.UserCreate

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Create an account and log in",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if err := app.session.Register(cmd.Context(), registerData); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Registered and logged in as %s\n", app.session.Username())
		return nil
	},
}

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the current session identity",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if !app.session.LoggedIn() {
			fmt.Fprintln(cmd.OutOrStdout(), "Not logged in")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s\trole=%s\tuserId=%s\n",
			app.session.Username(), app.session.Role(), app.session.UserID())
		return nil
	},
}

func init() {
	loginCmd.Flags().StringVar(&loginPassword, "password", "", "password (prompted when omitted)")

	registerCmd.Flags().StringVar(&registerData.Email, "email", "", "email address")
	registerCmd.Flags().StringVar(&registerData.Password, "password", "", "password")
	registerCmd.Flags().StringVar(&registerData.DisplayName, "display-name", "", "public display name")
	registerCmd.Flags().StringVar(&registerData.FirstName, "first-name", "", "first name")
	registerCmd.Flags().StringVar(&registerData.LastName, "last-name", "", "last name")
	registerCmd.Flags().StringVar(&registerData.Phone, "phone", "", "phone number")
	_ = registerCmd.MarkFlagRequired("email")
	_ = registerCmd.MarkFlagRequired("password")
	_ = registerCmd.MarkFlagRequired("display-name")

	rootCmd.AddCommand(loginCmd, logoutCmd, registerCmd, whoamiCmd)
}
