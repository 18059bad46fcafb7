package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/internal/screens"
)

// NewLiveCallsCommand 实时通话视图
func NewLiveCallsCommand() *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "calls",
		Short: "Show live calls",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			screen := screens.NewLiveCallsScreen(app.Client, intervalOr(interval, app.Config.LiveCallsInterval))

			if !watch {
				// 一次性：启动立即拉一次，打印后就停
				screen.Start(cmd.Context())
				defer screen.Stop()
				// Start 的首个 tick 是同步之前还没完成的，稍等快照就位
				deadline := time.Now().Add(app.Config.APITimeout + time.Second)
				for {
					calls, at := screen.Snapshot()
					if !at.IsZero() {
						renderLiveCalls(cmd, calls, at)
						return nil
					}
					if time.Now().After(deadline) {
						return fmt.Errorf("timed out waiting for live calls snapshot")
					}
					time.Sleep(50 * time.Millisecond)
				}
			}

			screen.OnUpdate(func() {
				calls, at := screen.Snapshot()
				renderLiveCalls(cmd, calls, at)
			})
			screen.Start(cmd.Context())
			defer screen.Stop()

			fmt.Fprintln(cmd.OutOrStdout(), "Watching live calls, press Enter to stop...")
			fmt.Fscanln(cmd.InOrStdin())
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep polling and reprint on change")
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default from config)")
	return cmd
}

func intervalOr(flag, fallback time.Duration) time.Duration {
	if flag > 0 {
		return flag
	}
	return fallback
}

func renderLiveCalls(cmd *cobra.Command, calls []models.LiveCall, at time.Time) {
	out := cmd.OutOrStdout()
	if len(calls) == 0 {
		fmt.Fprintf(out, "[%s] No active calls.\n", at.Format("15:04:05"))
		return
	}
	rows := make([][]string, 0, len(calls))
	for _, c := range calls {
		rows = append(rows, []string{
			c.Channel,
			c.Caller,
			c.Callee,
			c.Direction,
			c.State,
			strconv.FormatInt(c.Duration, 10) + "s",
		})
	}
	fmt.Fprintf(out, "[%s] %d active call(s)\n", at.Format("15:04:05"), len(calls))
	renderTable(out, []string{"Channel", "Caller", "Callee", "Direction", "State", "Duration"}, rows)
}
