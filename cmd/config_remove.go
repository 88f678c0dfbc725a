package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/brogergvhs/noveld/internal/config"

	"github.com/spf13/cobra"
)

var forceRemove bool

var configRemoveCmd = &cobra.Command{
	Use:   "remove <label>",
	Short: "Delete a config profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		label := args[0]

		active, _ := config.CurrentLabel()
		if label == active && !forceRemove && !confirm(fmt.Sprintf("%q is the active config, remove it?", label)) {
			fmt.Println("Nothing removed.")
			return nil
		}

		if err := config.RemoveConfig(label); err != nil {
			return err
		}

		fmt.Printf("Removed %q\n", label)
		if now, err := config.CurrentLabel(); err == nil && now != active {
			fmt.Printf("Active config is now %q\n", now)
		}
		return nil
	},
}

func confirm(question string) bool {
	fmt.Printf("%s [y/N]: ", question)
	resp, _ := bufio.NewReader(os.Stdin).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(resp)) {
	case "y", "yes":
		return true
	}
	return false
}

func init() {
	configRemoveCmd.Flags().BoolVarP(&forceRemove, "force", "f", false, "skip the prompt when removing the active config")
	configCmd.AddCommand(configRemoveCmd)
}
