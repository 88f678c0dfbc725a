package cmd

import (
	"fmt"

	"github.com/brogergvhs/noveld/internal/config"

	"github.com/spf13/cobra"
)

var configPathOnly bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective settings and manage config profiles",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, used, err := config.LoadMerged(config.Options{
			IgnoreConfig: flagIgnoreConfig,
			Debug:        flagDebug,
		})
		if err != nil {
			return err
		}

		if configPathOnly {
			fmt.Println(used)
			return nil
		}

		fmt.Printf("Source: %s\n\n", used)
		cfg.Print()
		return nil
	},
}

func init() {
	configCmd.Flags().BoolVar(&configPathOnly, "path", false, "print only the path of the loaded config")
	rootCmd.AddCommand(configCmd)
}
