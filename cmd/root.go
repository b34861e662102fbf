package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
)

// NewRootCmd creates and returns the root command
func NewRootCmd(container *cli.Container) *cobra.Command {
	rootCmd := &cobra.Command{
		Version: container.Config.Version.VersionText(),
		Use:     "clawctl",
		Short:   "Companion for the BambooClaw agent",
		Long: `clawctl installs, launches and supervises the BambooClaw agent daemon.

It fetches the agent binary, starts and stops the detached daemon,
checks prerequisites, and provides an emergency flush for when the
agent wedges itself.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := container.ThemeMgr.GetCurrentTheme()
			theme.Primary().Printf("%s companion %s\n", container.Config.Name, container.Config.Version.VersionText())
			fmt.Println("")
			theme.Info().Println("Run 'clawctl status' to check the daemon, or 'clawctl --help' for all commands.")
			return nil
		},
	}

	return rootCmd
}
