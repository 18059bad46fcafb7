package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/internal/screens"
)

// NewUsersCommand 用户管理
func NewUsersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage users",
	}
	cmd.AddCommand(newUsersListCommand(), newUsersCreateCommand(), newUsersUpdateCommand(), newUsersDeleteCommand())
	return cmd
}

func newUsersListCommand() *cobra.Command {
	var opts listOptions
	var role string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewUserScreen(app.Deps(), app.Client)
			defer screen.Close()
			applyListOptions(screen, &opts)
			if role != "" {
				screen.SetFilter("role", role)
			}
			if err := screen.Load(cmd.Context()); err != nil {
				return err
			}
			if screen.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No users found.")
				return nil
			}
			rows := make([][]string, 0, len(screen.Rows))
			for _, u := range screen.Rows {
				ext := ""
				if u.Extension != nil {
					ext = u.Extension.Number
				}
				rows = append(rows, []string{
					strconv.FormatUint(uint64(u.ID), 10),
					u.Name,
					u.Email,
					u.Role,
					ext,
					u.Status,
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Email", "Role", "Extension", "Status"}, rows)
			renderMeta(cmd.OutOrStdout(), screen.Meta)
			return nil
		},
	}
	addListFlags(cmd, &opts)
	cmd.Flags().StringVar(&role, "role", "", "filter by role")
	return cmd
}

type userFlags struct {
	name        string
	email       string
	role        string
	status      string
	address     string
	city        string
	country     string
	phone       string
	extensionID int
}

func addUserFlags(cmd *cobra.Command, f *userFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "full name")
	cmd.Flags().StringVar(&f.email, "email", "", "email address")
	cmd.Flags().StringVar(&f.role, "role", models.RolePBXUser, "role (owner|pbx_admin|pbx_user|reporter)")
	cmd.Flags().StringVar(&f.status, "status", "active", "status")
	cmd.Flags().StringVar(&f.address, "address", "", "street address")
	cmd.Flags().StringVar(&f.city, "city", "", "city")
	cmd.Flags().StringVar(&f.country, "country", "", "country")
	cmd.Flags().StringVar(&f.phone, "phone", "", "phone number")
	cmd.Flags().IntVar(&f.extensionID, "extension-id", 0, "linked extension id")
}

func applyUserFlags(cmd *cobra.Command, f *userFlags, screen *screens.UserScreen) {
	set := func(flag, field string, value interface{}) {
		if cmd.Flags().Changed(flag) {
			screen.Form.Set(field, value)
		}
	}
	set("name", "name", f.name)
	set("email", "email", f.email)
	set("role", "role", f.role)
	set("status", "status", f.status)
	set("address", "address", f.address)
	set("city", "city", f.city)
	set("country", "country", f.country)
	set("phone", "phone", f.phone)
	set("extension-id", "extension_id", f.extensionID)
}

func newUsersCreateCommand() *cobra.Command {
	var flags userFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a user",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewUserScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenCreate(); err != nil {
				return err
			}
			applyUserFlags(cmd, &flags, screen)
			return screen.SubmitCreate(cmd.Context())
		},
	}
	addUserFlags(cmd, &flags)
	return cmd
}

func newUsersUpdateCommand() *cobra.Command {
	var flags userFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a user (only changed fields are sent)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.Client.Users().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewUserScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenEdit(*user); err != nil {
				return err
			}
			applyUserFlags(cmd, &flags, screen)
			return screen.SubmitEdit(cmd.Context())
		},
	}
	addUserFlags(cmd, &flags)
	return cmd
}

func newUsersDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			user, err := app.Client.Users().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewUserScreen(app.Deps(), app.Client)
			defer screen.Close()
			prompt, err := screen.RequestDelete(*user)
			if err != nil {
				return err
			}
			if !confirm(cmd, prompt) {
				screen.CancelDelete()
				return nil
			}
			return screen.ConfirmDelete(cmd.Context())
		},
	}
}
