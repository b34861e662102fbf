package cmd

import (
	"github.com/spf13/cobra"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/journal"
)

// NewStartCmd creates a command to start the agent daemon
func NewStartCmd(c *cli.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "start",
		Short: "Start the BambooClaw daemon",
		Long:  `Starts the BambooClaw agent daemon detached from this process. Starting an already-running daemon is a no-op, not an error.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			theme := c.ThemeMgr.GetCurrentTheme()

			sup, err := newSupervisor(c)
			if err != nil {
				return err
			}

			result, err := sup.Start(ctx)
			if err != nil {
				theme.Error().Printf("Failed to start daemon: %v\n", err)
				return err
			}

			if result.AlreadyRunning {
				theme.Info().Println(result.Message)
				return nil
			}

			theme.Success().Println(result.Message)
			recordEvent(c, journal.KindDaemonStart, result.Message)
			return nil
		},
	}
	return cmd
}
