package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/initializer"
	"github.com/Enigmara-Technologies/bambooclaw-core/internal/logger"
)

// NewInitCmd creates an interactive init command
func NewInitCmd(c *cli.Container) *cobra.Command {
	cmd := &cobra.Command{
		Version: c.Config.Version.VersionText(),
		Use:     "init",
		Short:   "Initialize BambooClaw with a guided setup",
		Long:    `Start an interactive wizard to configure the agent with a series of questions.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			c.Logger.Info("starting initialization", nil)

			wizard := initializer.New(c.ConfigStore, c.Logger, c.ThemeMgr)
			if err := wizard.Run(); err != nil {
				c.Logger.Error("initialization failed", logger.Fields{"error": err.Error()})
				c.ThemeMgr.GetCurrentTheme().Error().Println(fmt.Sprintf("Initialization failed: %v", err))
				return err
			}

			c.Logger.Info("initialization complete", nil)
			return nil
		},
	}
	return cmd
}
