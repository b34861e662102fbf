package cmd

import (
	"os"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/prereq"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/shell"
)

// NewDoctorCmd creates a command that checks host prerequisites
func NewDoctorCmd(c *cli.Container) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check host prerequisites for running the agent",
		Long:  `Probes the host for the tools the BambooClaw agent depends on and reports what is missing.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()

			runner := shell.NewRunner(c.Adapter, c.Logger)
			checker := prereq.NewChecker(runner, c.Logger)

			table := tablewriter.NewWriter(os.Stdout)
			table.SetHeader([]string{"Prerequisite", "Status", "Details"})
			table.SetBorder(false)
			table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
			table.SetColumnAlignment([]int{tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT, tablewriter.ALIGN_LEFT})
			table.SetHeaderColor(
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
				tablewriter.Colors{tablewriter.Bold, tablewriter.FgCyanColor},
			)

			missing := 0
			for _, name := range checker.Known() {
				detail, err := checker.Check(ctx, name)
				if err != nil {
					missing++
					table.Rich(
						[]string{name, "Missing", err.Error()},
						[]tablewriter.Colors{{}, {tablewriter.Bold, tablewriter.FgRedColor}, {}},
					)
					continue
				}
				table.Rich(
					[]string{name, "OK", detail},
					[]tablewriter.Colors{{}, {tablewriter.Bold, tablewriter.FgGreenColor}, {}},
				)
			}
			table.Render()

			theme := c.ThemeMgr.GetCurrentTheme()
			if missing == 0 {
				theme.Success().Println("\nAll prerequisites satisfied.")
			} else {
				theme.Warning().Printf("\n%d prerequisite(s) missing.\n", missing)
			}
			return nil
		},
	}
	return cmd
}
