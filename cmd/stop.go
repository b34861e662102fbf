package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/journal"
)

// NewStopCmd creates a command to stop the agent daemon
func NewStopCmd(c *cli.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stop",
		Short: "Stop the BambooClaw daemon",
		Long:  `Stops the running BambooClaw agent daemon. When the daemon was started by another process, all processes matching the daemon name are terminated instead. Stopping when nothing is running is a no-op.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			theme := c.ThemeMgr.GetCurrentTheme()

			sup, err := newSupervisor(c)
			if err != nil {
				return err
			}

			result, err := sup.Stop(ctx)
			if err != nil {
				theme.Error().Printf("Failed to stop daemon: %v\n", err)
				return err
			}

			if result.NotRunning {
				theme.Info().Println(result.Message)
				return nil
			}

			for _, failure := range result.Failures {
				theme.Warning().Printf("warning: %v\n", failure)
			}
			theme.Success().Println(result.Message)
			recordEvent(c, journal.KindDaemonStop, result.Message)
			return nil
		},
	}
	return cmd
}
