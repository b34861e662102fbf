package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/flush"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/journal"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/proctable"
)

// NewFlushCmd creates the emergency flush command
func NewFlushCmd(c *cli.Container) *cobra.Command {
	var skipConfirm bool

	cmd := &cobra.Command{
		Use:   "flush",
		Short: "Emergency flush: stop everything and reset scratch state",
		Long: `Stops the BambooClaw daemon, terminates its known auxiliary processes
and resets the scratch directory. Intended as a last resort when the
agent has wedged itself. Individual step failures are reported but
never abort the remaining steps.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := commandContext()
			defer cancel()
			theme := c.ThemeMgr.GetCurrentTheme()

			if !skipConfirm {
				theme.Warning().Printf("This will stop the daemon, kill %s and wipe the scratch directory.\n",
					strings.Join(c.Adapter.KillList(), ", "))
				fmt.Print("Proceed? (y/n): ")
				var input string
				fmt.Scanln(&input)
				if answer := strings.ToLower(input); answer != "y" && answer != "yes" {
					theme.Info().Println("Flush cancelled")
					return nil
				}
			}

			sup, err := newSupervisor(c)
			if err != nil {
				return err
			}

			flusher := flush.New(c.Adapter, proctable.NewSystemTable(), sup, flush.Config{
				Logger: c.Logger,
			})
			report := flusher.Flush(ctx)

			for _, failure := range report.Failures {
				theme.Warning().Printf("warning: %v\n", failure)
			}
			if report.OK() {
				theme.Success().Println(report.Summary())
			} else {
				theme.Warning().Println(report.Summary())
			}
			recordEvent(c, journal.KindFlush, report.Summary())
			return nil
		},
	}

	cmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}
