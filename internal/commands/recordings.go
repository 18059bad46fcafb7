package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/internal/screens"
)

// NewRecordingsCommand 录音管理
func NewRecordingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "recordings",
		Short: "Manage recordings",
	}
	cmd.AddCommand(
		newRecordingsListCommand(),
		newRecordingsCreateCommand(),
		newRecordingsUpdateCommand(),
		newRecordingsDeleteCommand(),
		newRecordingsPlayCommand(),
		newRecordingsDownloadCommand(),
	)
	return cmd
}

func newRecordingScreen(app *App) *screens.RecordingScreen {
	return screens.NewRecordingScreen(app.Deps(), app.Client, app.Downloader)
}

func newRecordingsListCommand() *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List recordings",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := newRecordingScreen(app)
			defer screen.Close()
			applyListOptions(screen, &opts)
			if err := screen.Load(cmd.Context()); err != nil {
				return err
			}
			if screen.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No recordings found.")
				return nil
			}
			rows := make([][]string, 0, len(screen.Rows))
			for _, r := range screen.Rows {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(r.ID), 10),
					r.Name,
					r.Type,
					r.MimeType,
					r.Status,
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Type", "MIME", "Status"}, rows)
			renderMeta(cmd.OutOrStdout(), screen.Meta)
			return nil
		},
	}
	addListFlags(cmd, &opts)
	return cmd
}

type recordingFlags struct {
	name      string
	recType   string
	remoteURL string
	mimeType  string
	status    string
}

func addRecordingFlags(cmd *cobra.Command, f *recordingFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "recording name")
	cmd.Flags().StringVar(&f.recType, "type", models.RecordingTypeUpload, "type (upload|remote)")
	cmd.Flags().StringVar(&f.remoteURL, "remote-url", "", "remote audio URL (remote type)")
	cmd.Flags().StringVar(&f.mimeType, "mime-type", "", "audio MIME type")
	cmd.Flags().StringVar(&f.status, "status", "active", "status")
}

func applyRecordingFlags(cmd *cobra.Command, f *recordingFlags, screen *screens.RecordingScreen) {
	set := func(flag, field string, value interface{}) {
		if cmd.Flags().Changed(flag) {
			screen.Form.Set(field, value)
		}
	}
	set("name", "name", f.name)
	set("type", "type", f.recType)
	set("remote-url", "remote_url", f.remoteURL)
	set("mime-type", "mime_type", f.mimeType)
	set("status", "status", f.status)
}

func newRecordingsCreateCommand() *cobra.Command {
	var flags recordingFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a recording",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := newRecordingScreen(app)
			defer screen.Close()
			if err := screen.OpenCreate(); err != nil {
				return err
			}
			applyRecordingFlags(cmd, &flags, screen)
			return screen.SubmitCreate(cmd.Context())
		},
	}
	addRecordingFlags(cmd, &flags)
	return cmd
}

func newRecordingsUpdateCommand() *cobra.Command {
	var flags recordingFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a recording",
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

			rec, err := app.Client.Recordings().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := newRecordingScreen(app)
			defer screen.Close()
			if err := screen.OpenEdit(*rec); err != nil {
				return err
			}
			applyRecordingFlags(cmd, &flags, screen)
			return screen.SubmitEdit(cmd.Context())
		},
	}
	addRecordingFlags(cmd, &flags)
	return cmd
}

func newRecordingsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a recording",
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

			rec, err := app.Client.Recordings().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := newRecordingScreen(app)
			defer screen.Close()
			prompt, err := screen.RequestDelete(*rec)
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

func newRecordingsPlayCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "play <id>",
		Short: "Play a recording on the local audio device",
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

			rec, err := app.Client.Recordings().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := newRecordingScreen(app)
			defer screen.Close()
			playing, err := screen.TogglePlay(cmd.Context(), *rec)
			if err != nil {
				return err
			}
			if playing {
				fmt.Fprintf(cmd.OutOrStdout(), "Playing %q, press Enter to stop...\n", rec.Name)
				fmt.Fscanln(cmd.InOrStdin())
			}
			return nil
		},
	}
}

func newRecordingsDownloadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "download <id>",
		Short: "Download a recording to the local download directory",
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

			rec, err := app.Client.Recordings().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := newRecordingScreen(app)
			defer screen.Close()
			_, err = screen.Download(cmd.Context(), *rec)
			return err
		},
	}
}
