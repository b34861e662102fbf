package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/supervisor"
)

// NewStatusCmd creates a command to check the daemon status
func NewStatusCmd(c *cli.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "status",
		Short: "Check the status of the BambooClaw daemon",
		Long:  `Checks whether the BambooClaw agent daemon is currently running and whether this companion owns it.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			sup, err := newSupervisor(c)
			if err != nil {
				return err
			}

			status, err := sup.Status(ctx)
			if err != nil {
				return fmt.Errorf("failed to resolve daemon status: %w", err)
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Component", "Status", "Details"})
			table.SetBorder(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
			table.SetHeaderColor(
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
			)

			if status.State == supervisor.StateRunning {
				details := fmt.Sprintf("pid %d", status.PID)
				if !status.Owned {
					details += " (started externally)"
				}
				table.Rich(
					[]string{"Daemon", "Running", details},
					[]tablewriter.Colors{{}, {tablewriter.Bold, tablewriter.FgGreenColor}, {}},
				)
			} else {
				table.Rich(
					[]string{"Daemon", "Not running", "-"},
					[]tablewriter.Colors{{}, {tablewriter.Bold, tablewriter.FgRedColor}, {}},
				)
			}

			binPath, err := c.Filesystem.DaemonBinaryPath(c.Adapter.DaemonExecutable())
			if err != nil {
				return err
			}
			if _, err := os.Stat(binPath); err == nil {
				table.Rich(
					[]string{"Agent binary", "Installed", binPath},
					[]tablewriter.Colors{{}, {tablewriter.Bold, tablewriter.FgGreenColor}, {}},
				)
			} else {
				table.Rich(
					[]string{"Agent binary", "Missing", "run 'clawctl fetch' to install"},
					[]tablewriter.Colors{{}, {tablewriter.Bold, tablewriter.FgRedColor}, {}},
				)
			}

			table.Render()
			return nil
		},
	}
	return cmd
}
