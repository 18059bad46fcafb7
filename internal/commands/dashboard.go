package commands

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/internal/models"
	"github.com/code-100-precent/EchoPBX/internal/screens"
)

// NewDashboardCommand 仪表盘视图
func NewDashboardCommand() *cobra.Command {
	var watch bool
	var interval time.Duration

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show PBX dashboard statistics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			app, err := NewApp()
			if err != nil {
				return err
			}
			defer app.Close()

			if !watch {
				// 一次性直接打请求，不必经过轮询器
				stats, err := app.Client.DashboardStats(cmd.Context())
				if err != nil {
					return err
				}
				renderDashboard(cmd, *stats, time.Now())
				return nil
			}

			screen := screens.NewDashboardScreen(app.Client, intervalOr(interval, app.Config.DashboardInterval))
			screen.OnUpdate(func() {
				stats, at := screen.Current()
				renderDashboard(cmd, stats, at)
			})
			screen.Start(cmd.Context())
			defer screen.Stop()

			fmt.Fprintln(cmd.OutOrStdout(), "Watching dashboard, press Enter to stop...")
			fmt.Fscanln(cmd.InOrStdin())
			return nil
		},
	}
	cmd.Flags().BoolVar(&watch, "watch", false, "keep polling and reprint on change")
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (default from config)")
	return cmd
}

func renderDashboard(cmd *cobra.Command, stats models.DashboardStats, at time.Time) {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "[%s] PBX overview\n", at.Format("15:04:05"))
	renderTable(out, []string{"Metric", "Value"}, [][]string{
		{"Active calls", strconv.Itoa(stats.ActiveCalls)},
		{"Registered extensions", strconv.Itoa(stats.RegisteredExtensions)},
		{"DID numbers", strconv.Itoa(stats.TotalDIDs)},
		{"Recordings", strconv.Itoa(stats.TotalRecordings)},
	})
}
