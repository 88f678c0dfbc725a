package cmd

import (
	"fmt"

	"github.com/brogergvhs/noveld/internal/config"

	"github.com/spf13/cobra"
)

var configResetCmd = &cobra.Command{
	Use:   "reset [config_label]",
	Short: "Overwrite a config with the default values",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label, err := labelOrCurrent(args)
		if err != nil {
			return err
		}
		path, err := config.ConfigPathByLabel(label)
		if err != nil {
			return err
		}

		if err := config.SaveYAML(config.DefaultConfig(), path); err != nil {
			return err
		}

		fmt.Printf("Config %q reset to defaults (%s)\n", label, path)
		return nil
	},
}

func init() {
	configCmd.AddCommand(configResetCmd)
}
