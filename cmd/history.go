package cmd

import (
	"fmt"
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/filesystem"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/journal"
)

// NewHistoryCmd creates a command listing recent lifecycle events
func NewHistoryCmd(c *cli.Container) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "Show recent daemon and download events",
		Long:  `Lists the most recent lifecycle events recorded by this companion, newest first.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			j, err := journal.Open(c.Paths[filesystem.JournalDBPath])
			if err != nil {
				return fmt.Errorf("failed to open journal: %w", err)
			}
			defer j.Close()

			events, err := j.Recent(ctx, limit)
			if err != nil {
				return fmt.Errorf("failed to read journal: %w", err)
			}

			if len(events) == 0 {
				c.ThemeMgr.GetCurrentTheme().Info().Println("No events recorded yet.")
				return nil
			}

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Time", "Event", "Detail"})
			table.SetBorder(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
			table.SetHeaderColor(
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
			)
			for _, e := range events {
				table.Append([]string{e.Timestamp.Local().Format("2006-01-02 15:04:05"), e.Kind, e.Detail})
			}
			table.Render()
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "maximum number of events to show")
	return cmd
}
