package commands

import (
	"github.com/spf13/cobra"

	"github.com/code-100-precent/EchoPBX/pkg/metrics"
)

// NewStatsCommand 输出本进程的请求与缓存计数
func NewStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Dump client-side request and cache metrics",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return metrics.Dump(cmd.OutOrStdout())
		},
	}
}
