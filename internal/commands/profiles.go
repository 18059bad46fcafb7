package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/internal/store"
)

// NewProfilesCommand 环境 profile 管理
func NewProfilesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "Manage saved PBX environments",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List saved environments",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			profiles, err := app.Store.List()
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(profiles))
			for _, p := range profiles {
				active := ""
				if p.Active {
					active = "*"
				}
				rows = append(rows, []string{active, p.Name, p.BaseURL})
			}
			renderTable(cmd.OutOrStdout(), []string{"", "Name", "Base URL"}, rows)
			return nil
		},
	}

	var baseURL string
	add := &cobra.Command{
		Use:   "add <name>",
		Short: "Save a new environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.Save(&store.Profile{Name: args[0], BaseURL: baseURL}); err != nil {
				return err
			}
			app.Notify.Success("Profile saved", args[0])
			return nil
		},
	}
	add.Flags().StringVar(&baseURL, "base-url", "", "PBX API base URL")
	_ = add.MarkFlagRequired("base-url")

	use := &cobra.Command{
		Use:   "use <name>",
		Short: "Switch the active environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if err := app.Store.SetActive(args[0]); err != nil {
				return err
			}
			app.Notify.Success("Profile activated", args[0])
			return nil
		},
	}

	remove := &cobra.Command{
		Use:   "remove <name>",
		Short: "Delete a saved environment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if !confirm(cmd, fmt.Sprintf("Delete profile %q?", args[0])) {
				return nil
			}
			if err := app.Store.Delete(args[0]); err != nil {
				return err
			}
			app.Notify.Success("Profile deleted", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, use, remove)
	return cmd
}
