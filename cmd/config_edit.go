package cmd

import (
	"fmt"
	"os"
	"os/exec"

	"github.com/brogergvhs/noveld/internal/config"

	"github.com/spf13/cobra"
)

var configEditCmd = &cobra.Command{
	Use:   "edit [config_label]",
	Short: "Open a config in $EDITOR and check it afterwards",
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

		editor := os.Getenv("EDITOR")
		if editor == "" {
			editor = "vi"
		}

		ed := exec.Command(editor, path)
		ed.Stdin, ed.Stdout, ed.Stderr = os.Stdin, os.Stdout, os.Stderr
		if err := ed.Run(); err != nil {
			return fmt.Errorf("run %s: %w", editor, err)
		}

		if err := config.CheckFile(path); err != nil {
			fmt.Printf("Warning: %s no longer loads: %v\n", path, err)
			fmt.Println("Downloads will fail with this profile until it is fixed or reset.")
		}
		return nil
	},
}

// labelOrCurrent returns the label given on the command line, or the
// active profile when there is none.
func labelOrCurrent(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	label, err := config.CurrentLabel()
	if err != nil {
		return "", fmt.Errorf("no active config, run `noveld config init`: %w", err)
	}
	return label, nil
}

func init() {
	configCmd.AddCommand(configEditCmd)
}
