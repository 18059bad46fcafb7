package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/internal/screens"
)

// NewSentryCommand 呼入黑名单管理
func NewSentryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sentry",
		Short: "Manage sentry blacklists",
	}
	cmd.AddCommand(
		newSentryListCommand(),
		newSentryCreateCommand(),
		newSentryUpdateCommand(),
		newSentryDeleteCommand(),
		newSentryItemsCommand(),
		newSentryAddItemCommand(),
		newSentryRemoveItemCommand(),
	)
	return cmd
}

func newSentryListCommand() *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List blacklists",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewSentryScreen(app.Deps(), app.Client)
			defer screen.Close()
			applyListOptions(screen, &opts)
			if err := screen.Load(cmd.Context()); err != nil {
				return err
			}
			if screen.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No blacklists found.")
				return nil
			}
			rows := make([][]string, 0, len(screen.Rows))
			for _, b := range screen.Rows {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(b.ID), 10),
					b.Name,
					strconv.Itoa(b.ItemCount),
					b.Status,
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Numbers", "Status"}, rows)
			renderMeta(cmd.OutOrStdout(), screen.Meta)
			return nil
		},
	}
	addListFlags(cmd, &opts)
	return cmd
}

type sentryFlags struct {
	name        string
	description string
	status      string
}

func addSentryFlags(cmd *cobra.Command, f *sentryFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "blacklist name")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().StringVar(&f.status, "status", "active", "status")
}

func applySentryFlags(cmd *cobra.Command, f *sentryFlags, screen *screens.SentryScreen) {
	set := func(flag, field string, value interface{}) {
		if cmd.Flags().Changed(flag) {
			screen.Form.Set(field, value)
		}
	}
	set("name", "name", f.name)
	set("description", "description", f.description)
	set("status", "status", f.status)
}

func newSentryCreateCommand() *cobra.Command {
	var flags sentryFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a blacklist",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewSentryScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenCreate(); err != nil {
				return err
			}
			applySentryFlags(cmd, &flags, screen)
			return screen.SubmitCreate(cmd.Context())
		},
	}
	addSentryFlags(cmd, &flags)
	return cmd
}

func newSentryUpdateCommand() *cobra.Command {
	var flags sentryFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a blacklist",
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

			list, err := app.Client.Sentry().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewSentryScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenEdit(*list); err != nil {
				return err
			}
			applySentryFlags(cmd, &flags, screen)
			return screen.SubmitEdit(cmd.Context())
		},
	}
	addSentryFlags(cmd, &flags)
	return cmd
}

func newSentryDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a blacklist",
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

			list, err := app.Client.Sentry().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewSentryScreen(app.Deps(), app.Client)
			defer screen.Close()
			prompt, err := screen.RequestDelete(*list)
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

func newSentryItemsCommand() *cobra.Command {
	var page int
	cmd := &cobra.Command{
		Use:   "items <list-id>",
		Short: "List numbers in a blacklist",
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

			list, err := app.Client.Sentry().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewSentryScreen(app.Deps(), app.Client)
			defer screen.Close()
			if page > 1 {
				screen.SetItemsPage(page)
			}
			if err := screen.Select(cmd.Context(), *list); err != nil {
				return err
			}
			if len(screen.Items) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Blacklist %q has no numbers.\n", list.Name)
				return nil
			}
			rows := make([][]string, 0, len(screen.Items))
			for _, item := range screen.Items {
				expires := ""
				if item.ExpiresAt != nil {
					expires = item.ExpiresAt.Format(time.RFC3339)
				}
				rows = append(rows, []string{
					strconv.FormatUint(uint64(item.ID), 10),
					item.Number,
					item.Reason,
					expires,
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "Number", "Reason", "Expires"}, rows)
			renderMeta(cmd.OutOrStdout(), screen.ItemsMeta)
			return nil
		},
	}
	cmd.Flags().IntVar(&page, "page", 1, "page number")
	return cmd
}

func newSentryAddItemCommand() *cobra.Command {
	var number, reason, expires string
	cmd := &cobra.Command{
		Use:   "add <list-id>",
		Short: "Add a number to a blacklist",
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

			list, err := app.Client.Sentry().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			input := models.BlacklistItemInput{Number: number, Reason: reason}
			if expires != "" {
				t, err := time.Parse(time.RFC3339, expires)
				if err != nil {
					return fmt.Errorf("invalid --expires, expected RFC3339: %w", err)
				}
				input.ExpiresAt = &t
			}

			screen := screens.NewSentryScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.Select(cmd.Context(), *list); err != nil {
				return err
			}
			if err := screen.OpenAddItem(); err != nil {
				return err
			}
			return screen.SubmitAddItem(cmd.Context(), input)
		},
	}
	cmd.Flags().StringVar(&number, "number", "", "number to block")
	cmd.Flags().StringVar(&reason, "reason", "", "reason for blocking")
	cmd.Flags().StringVar(&expires, "expires", "", "expiry time (RFC3339), permanent if omitted")
	_ = cmd.MarkFlagRequired("number")
	return cmd
}

func newSentryRemoveItemCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <list-id> <item-id>",
		Short: "Remove a number from a blacklist",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			listID, err := parseID(args[0])
			if err != nil {
				return err
			}
			itemID, err := parseID(args[1])
			if err != nil {
				return err
			}
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			list, err := app.Client.Sentry().Get(cmd.Context(), listID)
			if err != nil {
				return err
			}

			screen := screens.NewSentryScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.Select(cmd.Context(), *list); err != nil {
				return err
			}

			var target *models.BlacklistItem
			for i := range screen.Items {
				if screen.Items[i].ID == itemID {
					target = &screen.Items[i]
					break
				}
			}
			if target == nil {
				return fmt.Errorf("number %d not found in blacklist %q", itemID, list.Name)
			}

			prompt, err := screen.RequestRemoveItem(*target)
			if err != nil {
				return err
			}
			if !confirm(cmd, prompt) {
				screen.CancelRemoveItem()
				return nil
			}
			return screen.ConfirmRemoveItem(cmd.Context())
		},
	}
}
