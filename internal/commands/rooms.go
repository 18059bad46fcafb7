package commands

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/internal/screens"
)

// NewRoomsCommand 会议室管理
func NewRoomsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rooms",
		Short: "Manage conference rooms",
	}
	cmd.AddCommand(newRoomsListCommand(), newRoomsCreateCommand(), newRoomsUpdateCommand(), newRoomsDeleteCommand())
	return cmd
}

func newRoomsListCommand() *cobra.Command {
	var opts listOptions
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List conference rooms",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewConferenceRoomScreen(app.Deps(), app.Client)
			defer screen.Close()
			applyListOptions(screen, &opts)
			if err := screen.Load(cmd.Context()); err != nil {
				return err
			}
			if screen.Empty() {
				fmt.Fprintln(cmd.OutOrStdout(), "No conference rooms found.")
				return nil
			}
			rows := make([][]string, 0, len(screen.Rows))
			for _, r := range screen.Rows {
				rows = append(rows, []string{
					strconv.FormatUint(uint64(r.ID), 10),
					r.Name,
					strconv.Itoa(r.MaxMembers),
					boolMark(r.PinRequired),
					boolMark(r.RecordingEnabled),
					r.Status,
				})
			}
			renderTable(cmd.OutOrStdout(), []string{"ID", "Name", "Capacity", "PIN", "Recording", "Status"}, rows)
			renderMeta(cmd.OutOrStdout(), screen.Meta)
			return nil
		},
	}
	addListFlags(cmd, &opts)
	return cmd
}

// roomFlags 表单字段对应的命令行参数
type roomFlags struct {
	name                 string
	description          string
	maxMembers           int
	status               string
	pinRequired          bool
	participantPin       string
	hostPin              string
	waitForHost          bool
	muteOnEntry          bool
	announceJoinLeave    bool
	musicOnHold          bool
	recordingEnabled     bool
	recordingAutoStart   bool
	recordingWebhookURL  string
	talkDetectionEnabled bool
	talkDetectionWebhook string
}

func addRoomFlags(cmd *cobra.Command, f *roomFlags) {
	cmd.Flags().StringVar(&f.name, "name", "", "room name")
	cmd.Flags().StringVar(&f.description, "description", "", "description")
	cmd.Flags().IntVar(&f.maxMembers, "max-members", 10, "capacity (min 2)")
	cmd.Flags().StringVar(&f.status, "status", "active", "status")
	cmd.Flags().BoolVar(&f.pinRequired, "pin-required", false, "require a PIN to join")
	cmd.Flags().StringVar(&f.participantPin, "participant-pin", "", "participant PIN")
	cmd.Flags().StringVar(&f.hostPin, "host-pin", "", "host PIN")
	cmd.Flags().BoolVar(&f.waitForHost, "wait-for-host", false, "wait for host before starting")
	cmd.Flags().BoolVar(&f.muteOnEntry, "mute-on-entry", false, "mute participants on entry")
	cmd.Flags().BoolVar(&f.announceJoinLeave, "announce-join-leave", false, "announce joins and leaves")
	cmd.Flags().BoolVar(&f.musicOnHold, "music-on-hold", false, "play music on hold")
	cmd.Flags().BoolVar(&f.recordingEnabled, "recording-enabled", false, "enable recording")
	cmd.Flags().BoolVar(&f.recordingAutoStart, "recording-auto-start", false, "start recording automatically")
	cmd.Flags().StringVar(&f.recordingWebhookURL, "recording-webhook-url", "", "recording webhook URL")
	cmd.Flags().BoolVar(&f.talkDetectionEnabled, "talk-detection", false, "enable talk detection")
	cmd.Flags().StringVar(&f.talkDetectionWebhook, "talk-detection-webhook-url", "", "talk detection webhook URL")
}

// applyRoomFlags 只把显式传了的参数写进表单，编辑时据此生成字段级差量
func applyRoomFlags(cmd *cobra.Command, f *roomFlags, screen *screens.ConferenceRoomScreen) {
	set := func(flag, field string, value interface{}) {
		if cmd.Flags().Changed(flag) {
			screen.Form.Set(field, value)
		}
	}
	set("name", "name", f.name)
	set("description", "description", f.description)
	set("max-members", "max_members", f.maxMembers)
	set("status", "status", f.status)
	set("pin-required", "pin_required", f.pinRequired)
	set("participant-pin", "participant_pin", f.participantPin)
	set("host-pin", "host_pin", f.hostPin)
	set("wait-for-host", "wait_for_host", f.waitForHost)
	set("mute-on-entry", "mute_on_entry", f.muteOnEntry)
	set("announce-join-leave", "announce_join_leave", f.announceJoinLeave)
	set("music-on-hold", "music_on_hold", f.musicOnHold)
	set("recording-enabled", "recording_enabled", f.recordingEnabled)
	set("recording-auto-start", "recording_auto_start", f.recordingAutoStart)
	set("recording-webhook-url", "recording_webhook_url", f.recordingWebhookURL)
	set("talk-detection", "talk_detection_enabled", f.talkDetectionEnabled)
	set("talk-detection-webhook-url", "talk_detection_webhook_url", f.talkDetectionWebhook)
}

func newRoomsCreateCommand() *cobra.Command {
	var flags roomFlags
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a conference room",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewConferenceRoomScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenCreate(); err != nil {
				return err
			}
			applyRoomFlags(cmd, &flags, screen)
			return screen.SubmitCreate(cmd.Context())
		},
	}
	addRoomFlags(cmd, &flags)
	return cmd
}

func newRoomsUpdateCommand() *cobra.Command {
	var flags roomFlags
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Update a conference room (only changed fields are sent)",
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

			room, err := app.Client.ConferenceRooms().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewConferenceRoomScreen(app.Deps(), app.Client)
			defer screen.Close()
			if err := screen.OpenEdit(*room); err != nil {
				return err
			}
			applyRoomFlags(cmd, &flags, screen)
			return screen.SubmitEdit(cmd.Context())
		},
	}
	addRoomFlags(cmd, &flags)
	return cmd
}

func newRoomsDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a conference room",
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

			room, err := app.Client.ConferenceRooms().Get(cmd.Context(), id)
			if err != nil {
				return err
			}

			screen := screens.NewConferenceRoomScreen(app.Deps(), app.Client)
			defer screen.Close()
			prompt, err := screen.RequestDelete(*room)
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

func parseID(raw string) (uint, error) {
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("invalid id %q", raw)
	}
	return uint(id), nil
}
