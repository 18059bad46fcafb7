package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/internal/screens"
)

// NewWhitelistCommand 外呼白名单管理
func NewWhitelistCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "whitelist",
		Short: "Manage the outbound whitelist",
	}
	cmd.AddCommand(newWhitelistListCommand(), newWhitelistCreateCommand(), newWhitelistUpdateCommand(), newWhitelistDeleteCommand())
	return cmd
}

func newWhitelistListCommand() *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List whitelist entries",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewWhitelistScreen(app.Deps(), app.Client)
			defer screen.Close()
			applyListOptions(screen, &opts)
			if err := screen.Load(cmd.Context()); err != nil {
				return err
			}
			if screen.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No whitelist entries found.")
				return nil
			}
			rows := make([][]string, 0, len(screen.Rows))
			for _, e := range screen.Rows {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(e.ID), 10),
					e.Name,
					e.CountryCode,
					e.Prefix,
					e.TrunkName,
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Country", "Prefix", "Trunk"}, rows)
			renderMeta(cmd.OutOrStdout(), screen.Meta)
			return nil
		},
	}
	addListFlags(cmd, &opts)
	return cmd
}

type whitelistFlags struct {
	name        string
	countryCode string
	prefix      string
	trunkName   string
}

func addWhitelistFlags(cmd *cobra.Command, f *whitelistFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "entry name")
	cmd.Flags().StringVar(&f.countryCode, "country-code", "", "destination country code")
	cmd.Flags().StringVar(&f.prefix, "prefix", "", "number prefix")
	cmd.Flags().StringVar(&f.trunkName, "trunk", "", "outbound trunk name")
}

func applyWhitelistFlags(cmd *cobra.Command, f *whitelistFlags, screen *screens.WhitelistScreen) {
	set := func(flag, field string, value interface{}) {
		if cmd.Flags().Changed(flag) {
			screen.Form.Set(field, value)
		}
	}
	set("name", "name", f.name)
	set("country-code", "country_code", f.countryCode)
	set("prefix", "prefix", f.prefix)
	set("trunk", "trunk_name", f.trunkName)
}

func newWhitelistCreateCommand() *cobra.Command {
	var flags whitelistFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a whitelist entry",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewWhitelistScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenCreate(); err != nil {
				return err
			}
			applyWhitelistFlags(cmd, &flags, screen)
			return screen.SubmitCreate(cmd.Context())
		},
	}
	addWhitelistFlags(cmd, &flags)
	return cmd
}

func newWhitelistUpdateCommand() *cobra.Command {
	var flags whitelistFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a whitelist entry",
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

			entry, err := app.Client.Whitelist().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewWhitelistScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenEdit(*entry); err != nil {
				return err
			}
			applyWhitelistFlags(cmd, &flags, screen)
			return screen.SubmitEdit(cmd.Context())
		},
	}
	addWhitelistFlags(cmd, &flags)
	return cmd
}

func newWhitelistDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a whitelist entry",
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

			entry, err := app.Client.Whitelist().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewWhitelistScreen(app.Deps(), app.Client)
			defer screen.Close()
			prompt, err := screen.RequestDelete(*entry)
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
