package cmd

import (
	"fmt"
	"strconv"
	"text/tabwriter"

	"github.com/fant-market/client/types"
	"github.com/spf13/cobra"
)

var adminCmd = &cobra.Command{
	Use:   "admin",
	Short: "Administrative operations",
}

var adminUsersPageable types.Pageable

var adminUsersCmd = &cobra.Command{
	Use:     "users",
	Short:   "List user accounts",
	Args:    cobra.NoArgs,
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		page, err := app.users.FetchUsers(cmd.Context(), adminUsersPageable)
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tEMAIL\tDISPLAY NAME\tROLE")
		for _, user := range page.Content {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", user.ID, user.Email, user.DisplayName, user.Role)
		}
		w.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "Page %d/%d (%d users)\n",
			page.Number+1, page.TotalPages, page.TotalElements)
		return nil
	},
}

var adminUserShowCmd = &cobra.Command{
	Use:     "user ID",
	Short:   "Show one user account",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		user, err := app.users.FetchUser(cmd.Context(), id)
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "ID:           %d\n", user.ID)
		fmt.Fprintf(out, "Email:        %s\n", user.Email)
		fmt.Fprintf(out, "Display name: %s\n", user.DisplayName)
		fmt.Fprintf(out, "Role:         %s\n", user.Role)
		fmt.Fprintf(out, "Name:         %s %s\n", user.FirstName, user.LastName)
		fmt.Fprintf(out, "Phone:        %s\n", user.Phone)
		return nil
	},
}

var adminUserUpdate types.AdminUserUpdate

var adminUserUpdateCmd = &cobra.Command{
	Use:     "user-update ID",
	Short:   "Update a user account",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		if _, err := app.users.UpdateUser(cmd.Context(), id, adminUserUpdate); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "User updated")
		return nil
	},
}

var adminUserDeleteCmd = &cobra.Command{
	Use:     "user-delete ID",
	Short:   "Delete a user account",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		id, err := strconv.ParseInt(args[0], 10, 64)
		if err != nil {
			return fmt.Errorf("invalid user id %q", args[0])
		}
		if err := app.users.DeleteUser(cmd.Context(), id); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "User deleted")
		return nil
	},
}

var adminCategory types.CategoryRequest
var adminCategoryParent int64

var adminCategoryAddCmd = &cobra.Command{
	Use:     "category-add NAME",
	Short:   "Create a category",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		req := adminCategory
		req.Name = args[0]
		if cmd.Flags().Changed("parent") {
			req.ParentID = &adminCategoryParent
		}
		created, err := app.categories.Add(cmd.Context(), req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Created category %s (%s)\n", created.Name, created.ID)
		return nil
	},
}

var adminCategoryUpdateCmd = &cobra.Command{
	Use:     "category-update ID NAME",
	Short:   "Rename or re-parent a category",
	Args:    cobra.ExactArgs(2),
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		req := adminCategory
		req.Name = args[1]
		if cmd.Flags().Changed("parent") {
			req.ParentID = &adminCategoryParent
		}
		updated, err := app.categories.Update(cmd.Context(), args[0], req)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated category %s\n", updated.Name)
		return nil
	},
}

var adminCategoryDeleteCmd = &cobra.Command{
	Use:     "category-delete ID",
	Short:   "Delete a category",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if err := app.categories.Delete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Category deleted")
		return nil
	},
}

var adminItemDeleteCmd = &cobra.Command{
	Use:     "item-delete ID",
	Short:   "Delete any listing",
	Args:    cobra.ExactArgs(1),
	PreRunE: requireAdmin,
	RunE: func(cmd *cobra.Command, args []string) error {
		app := newApp()
		if err := app.items.AdminDelete(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "Item deleted")
		return nil
	},
}

func init() {
	adminUsersCmd.Flags().IntVar(&adminUsersPageable.Page, "page", 0, "page index (0-based)")
	adminUsersCmd.Flags().IntVar(&adminUsersPageable.Size, "size", 20, "page size")

	adminUserUpdateCmd.Flags().StringVar(&adminUserUpdate.Email, "email", "", "email address")
	adminUserUpdateCmd.Flags().StringVar(&adminUserUpdate.Password, "password", "", "new password (kept when omitted)")
	adminUserUpdateCmd.Flags().StringVar(&adminUserUpdate.DisplayName, "display-name", "", "display name")
	adminUserUpdateCmd.Flags().StringVar(&adminUserUpdate.FirstName, "first-name", "", "first name")
	adminUserUpdateCmd.Flags().StringVar(&adminUserUpdate.LastName, "last-name", "", "last name")
	adminUserUpdateCmd.Flags().StringVar(&adminUserUpdate.Phone, "phone", "", "phone number")

	for _, c := range []*cobra.Command{adminCategoryAddCmd, adminCategoryUpdateCmd} {
		c.Flags().StringVar(&adminCategory.ImageURL, "image-url", "", "category image URL")
		c.Flags().Int64Var(&adminCategoryParent, "parent", 0, "parent category id")
	}

	adminCmd.AddCommand(
		adminUsersCmd, adminUserShowCmd, adminUserUpdateCmd, adminUserDeleteCmd,
		adminCategoryAddCmd, adminCategoryUpdateCmd, adminCategoryDeleteCmd,
		adminItemDeleteCmd,
	)
	rootCmd.AddCommand(adminCmd)
}
