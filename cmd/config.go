package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Enigmara-Technologies/bambooclaw-core/internal/cli"
)

// NewConfigCmd creates a config command
func NewConfigCmd(c *cli.Container) *cobra.Command {
	cfgCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage BambooClaw configuration",
		Long:  `Commands to view and edit the agent configuration file.`,
	}

	cfgCmd.AddCommand(NewConfigShowCmd(c))
	cfgCmd.AddCommand(NewConfigGetCmd(c))
	cfgCmd.AddCommand(NewConfigSetCmd(c))
	return cfgCmd
}

// NewConfigShowCmd creates a command to display the config file
func NewConfigShowCmd(c *cli.Container) *cobra.Command {
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Display the current configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			theme := c.ThemeMgr.GetCurrentTheme()
			store := c.ConfigStore

			if !store.Exists() {
				theme.Warning().Printf("No configuration file at %s. Run 'clawctl init' to create one.\n", store.Path())
				return nil
			}

			theme.Primary().Println("Configuration")
			theme.Subtle().Printf("Located at: %s\n\n", store.Path())

			var content string
			var err error
			if asYAML {
				content, err = store.ExportYAML()
			} else {
				content, err = store.ReadRaw()
			}
			if err != nil {
				return fmt.Errorf("failed to read configuration: %w", err)
			}
			fmt.Println(content)
			return nil
		},
	}

	cmd.Flags().BoolVar(&asYAML, "yaml", false, "render the configuration as YAML")
	return cmd
}

// NewConfigGetCmd creates a command to read one configuration key
func NewConfigGetCmd(c *cli.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "get <key>",
		Short: "Print the value of one configuration key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			value, err := c.ConfigStore.Get(args[0])
			if err != nil {
				return err
			}
			fmt.Println(value)
			return nil
		},
	}
}

// NewConfigSetCmd creates a command to write one configuration key
func NewConfigSetCmd(c *cli.Container) *cobra.Command {
	return &cobra.Command{
		Use:   "set <key> <value>",
		Short: "Set one configuration key",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := c.ConfigStore.Set(args[0], args[1]); err != nil {
				return err
			}
			c.ThemeMgr.GetCurrentTheme().Success().Printf("%s updated\n", args[0])
			return nil
		},
	}
}
