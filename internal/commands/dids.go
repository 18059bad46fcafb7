package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/internal/screens"
)

// NewDIDsCommand 外线号码管理
func NewDIDsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dids",
		Short: "Manage DID numbers",
	}
	cmd.AddCommand(newDIDsListCommand(), newDIDsCreateCommand(), newDIDsUpdateCommand(), newDIDsDeleteCommand())
	return cmd
}

func newDIDsListCommand() *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List DID numbers",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewDIDScreen(app.Deps(), app.Client)
			defer screen.Close()
			applyListOptions(screen, &opts)
			if err := screen.Load(cmd.Context()); err != nil {
				return err
			}
			if screen.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No DID numbers found.")
				return nil
			}
			rows := make([][]string, 0, len(screen.Rows))
			for _, d := range screen.Rows {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(d.ID), 10),
					d.Number,
					d.RoutingType,
					strconv.FormatUint(uint64(d.DestinationID), 10),
					d.Status,
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "Number", "Routing", "Destination", "Status"}, rows)
			renderMeta(cmd.OutOrStdout(), screen.Meta)
			return nil
		},
	}
	addListFlags(cmd, &opts)
	return cmd
}

type didFlags struct {
	number        string
	routingType   string
	destinationID int
	status        string
}

func addDIDFlags(cmd *cobra.Command, f *didFlags) {
	cmd.Flags().StringVar(&f.number, "number", "", "E.164 number")
	cmd.Flags().StringVar(&f.routingType, "routing-type", models.RoutingExtension,
		"routing type ("+strings.Join(models.RoutingTypes(), "|")+")")
	cmd.Flags().IntVar(&f.destinationID, "destination-id", 0, "routing destination id")
	cmd.Flags().StringVar(&f.status, "status", "active", "status")
}

func applyDIDFlags(cmd *cobra.Command, f *didFlags, screen *screens.DIDScreen) {
	set := func(flag, field string, value interface{}) {
		if cmd.Flags().Changed(flag) {
			screen.Form.Set(field, value)
		}
	}
	set("number", "number", f.number)
	set("routing-type", "routing_type", f.routingType)
	set("destination-id", "destination_id", f.destinationID)
	set("status", "status", f.status)
}

func newDIDsCreateCommand() *cobra.Command {
	var flags didFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a DID number",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewDIDScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenCreate(); err != nil {
				return err
			}
			applyDIDFlags(cmd, &flags, screen)
			return screen.SubmitCreate(cmd.Context())
		},
	}
	addDIDFlags(cmd, &flags)
	return cmd
}

func newDIDsUpdateCommand() *cobra.Command {
	var flags didFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a DID number",
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

			did, err := app.Client.DIDs().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewDIDScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenEdit(*did); err != nil {
				return err
			}
			applyDIDFlags(cmd, &flags, screen)
			return screen.SubmitEdit(cmd.Context())
		},
	}
	addDIDFlags(cmd, &flags)
	return cmd
}

func newDIDsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a DID number",
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

			did, err := app.Client.DIDs().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewDIDScreen(app.Deps(), app.Client)
			defer screen.Close()
			prompt, err := screen.RequestDelete(*did)
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
