package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/brogergvhs/noveld/internal/config"

	"github.com/spf13/cobra"
)

var configInitYes bool

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the Default config and make it active",
	RunE: func(cmd *cobra.Command, args []string) error {
		if path, err := config.ConfigPathByLabel(config.DefaultLabel); err == nil {
			fmt.Printf("Default config already exists: %s\n", path)
			fmt.Println("Use `noveld config reset Default` to start over.")
			return nil
		}

		if !configInitYes {
			fmt.Printf("Configs live in %s\n\n", config.ConfigsDir())
			config.DefaultConfig().Print()
			fmt.Println()
			if !confirm("Create the Default config with these values?") {
				fmt.Println("Nothing created.")
				return nil
			}
		}

		path, err := config.InitDefaultConfig()
		if err != nil && !errors.Is(err, os.ErrExist) {
			return fmt.Errorf("write default config: %w", err)
		}

		fmt.Printf("Created %s (active)\n", path)
		return nil
	},
}

func init() {
	configInitCmd.Flags().BoolVarP(&configInitYes, "yes", "y", false, "do not ask for confirmation")
	configCmd.AddCommand(configInitCmd)
}
