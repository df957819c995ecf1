package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/scaff/internal/store"
)

var enableCmd = &cobra.Command{
	Use:   "enable <tier>",
	Short: "Enable a tier and save the document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTierEnabled(args[0], true)
	},
}

var disableCmd = &cobra.Command{
	Use:   "disable <tier>",
	Short: "Disable a tier and save the document",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setTierEnabled(args[0], false)
	},
}

func init() {
	rootCmd.AddCommand(enableCmd)
	rootCmd.AddCommand(disableCmd)
}

// setTierEnabled toggles a tier and persists the document, so the change
// survives into the next invocation.
func setTierEnabled(name string, enabled bool) error {
	cfg, err := loadToolConfig()
	if err != nil {
		return err
	}

	doc, path, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	if err := doc.SetTierEnabled(name, enabled); err != nil {
		return err
	}
	if err := store.Save(doc, path); err != nil {
		return err
	}

	state := "disabled"
	if enabled {
		state = "enabled"
	}
	fmt.Printf("Tier '%s' %s\n", name, state)

	return nil
}
