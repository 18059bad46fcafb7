package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/internal/screens"
)

// NewIVRCommand IVR 菜单管理
func NewIVRCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ivr",
		Short: "Manage IVR menus",
	}
	cmd.AddCommand(newIVRListCommand(), newIVRCreateCommand(), newIVRUpdateCommand(), newIVRDeleteCommand())
	return cmd
}

func newIVRListCommand() *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List IVR menus",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewIvrMenuScreen(app.Deps(), app.Client)
			defer screen.Close()
			applyListOptions(screen, &opts)
			if err := screen.Load(cmd.Context()); err != nil {
				return err
			}
			if screen.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No IVR menus found.")
				return nil
			}
			rows := make([][]string, 0, len(screen.Rows))
			for _, m := range screen.Rows {
				source := "recording"
				if m.AudioURL != "" {
					source = "url"
				} else if m.TTSText != "" {
					source = "tts"
				}
				rows = append(rows, []string{
					strconv.FormatUint(uint64(m.ID), 10),
					m.Name,
					source,
					strconv.Itoa(len(m.Options)),
					m.Status,
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Audio", "Options", "Status"}, rows)
			renderMeta(cmd.OutOrStdout(), screen.Meta)
			return nil
		},
	}
	addListFlags(cmd, &opts)
	return cmd
}

type ivrFlags struct {
	name         string
	description  string
	recordingID  int
	audioURL     string
	ttsText      string
	ttsVoice     string
	maxReplays   int
	failoverType string
	failoverID   int
	status       string
	options      []string
}

func addIVRFlags(cmd *cobra.Command, f *ivrFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "menu name")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().IntVar(&f.recordingID, "recording-id", 0, "prompt recording id")
	cmd.Flags().StringVar(&f.audioURL, "audio-url", "", "prompt audio URL")
	cmd.Flags().StringVar(&f.ttsText, "tts-text", "", "prompt TTS text")
	cmd.Flags().StringVar(&f.ttsVoice, "tts-voice", "", "TTS voice")
	cmd.Flags().IntVar(&f.maxReplays, "max-replays", 3, "prompt replay limit")
	cmd.Flags().StringVar(&f.failoverType, "failover-type", "", "failover destination type")
	cmd.Flags().IntVar(&f.failoverID, "failover-id", 0, "failover destination id")
	cmd.Flags().StringVar(&f.status, "status", "active", "status")
	cmd.Flags().StringArrayVar(&f.options, "option", nil,
		"key option digit=type:id[:description], repeatable (e.g. 1=extension:100:Sales)")
}

func applyIVRFlags(cmd *cobra.Command, f *ivrFlags, screen *screens.IvrMenuScreen) error {
	set := func(flag, field string, value interface{}) {
		if cmd.Flags().Changed(flag) {
			screen.Form.Set(field, value)
		}
	}
	set("name", "name", f.name)
	set("description", "description", f.description)
	set("recording-id", "recording_id", f.recordingID)
	set("audio-url", "audio_url", f.audioURL)
	set("tts-text", "tts_text", f.ttsText)
	set("tts-voice", "tts_voice", f.ttsVoice)
	set("max-replays", "max_replays", f.maxReplays)
	set("failover-type", "failover_type", f.failoverType)
	set("failover-id", "failover_id", f.failoverID)
	set("status", "status", f.status)

	for _, raw := range f.options {
		opt, err := parseIVROption(raw)
		if err != nil {
			return err
		}
		screen.AddOption(opt)
	}
	return nil
}

// parseIVROption 解析 digit=type:id[:description]
func parseIVROption(raw string) (models.IvrMenuOption, error) {
	var opt models.IvrMenuOption
	digit, rest, ok := strings.Cut(raw, "=")
	if !ok || digit == "" || rest == "" {
		return opt, fmt.Errorf("invalid option %q, expected digit=type:id[:description]", raw)
	}
	opt.Digit = digit

	parts := strings.SplitN(rest, ":", 3)
	if len(parts) < 2 {
		return opt, fmt.Errorf("invalid option %q, expected digit=type:id[:description]", raw)
	}
	opt.DestinationType = parts[0]
	id, err := strconv.ParseUint(parts[1], 10, 32)
	if err != nil {
		return opt, fmt.Errorf("invalid destination id in option %q", raw)
	}
	opt.DestinationID = uint(id)
	if len(parts) == 3 {
		opt.Description = parts[2]
	}
	return opt, nil
}

func newIVRCreateCommand() *cobra.Command {
	var flags ivrFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an IVR menu",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewIvrMenuScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenCreate(); err != nil {
				return err
			}
			if err := applyIVRFlags(cmd, &flags, screen); err != nil {
				return err
			}
			return screen.SubmitCreate(cmd.Context())
		},
	}
	addIVRFlags(cmd, &flags)
	return cmd
}

func newIVRUpdateCommand() *cobra.Command {
	var flags ivrFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update an IVR menu",
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

			menu, err := app.Client.IvrMenus().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewIvrMenuScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenEdit(*menu); err != nil {
				return err
			}
			if err := applyIVRFlags(cmd, &flags, screen); err != nil {
				return err
			}
			return screen.SubmitEdit(cmd.Context())
		},
	}
	addIVRFlags(cmd, &flags)
	return cmd
}

func newIVRDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an IVR menu",
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

			menu, err := app.Client.IvrMenus().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewIvrMenuScreen(app.Deps(), app.Client)
			defer screen.Close()
			prompt, err := screen.RequestDelete(*menu)
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
