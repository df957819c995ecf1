package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/conneroisu/scaff/internal/scaffold"
	"github.com/conneroisu/scaff/internal/store"
)

var (
	initName        string
	initConcept     string
	initLanguage    string
	initDescription string
	initVars        []string
	initForce       bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a scaffold document with the standard tiers",
	Long: `Create a scaffold document seeded with the three standard tiers:
an enabled "initial" planning tier, plus disabled "file_generation" and
"optimization" tiers to switch on as needed.

Examples:
  scaff init --name demo --concept "a CSV toolkit" --language python
  scaff init --name api --concept "a REST API" --language go --var framework=chi`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)

	initCmd.Flags().StringVar(&initName, "name", "", "project name (required)")
	initCmd.Flags().StringVar(&initConcept, "concept", "", "one-line project concept (required)")
	initCmd.Flags().StringVar(&initLanguage, "language", "python", "target language")
	initCmd.Flags().StringVar(&initDescription, "description", "", "project description")
	initCmd.Flags().StringArrayVar(&initVars, "var", nil, "extra template variable as key=value (repeatable)")
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite an existing document")
	_ = initCmd.MarkFlagRequired("name")
	_ = initCmd.MarkFlagRequired("concept")
}

func runInit(cmd *cobra.Command, args []string) error {
	cfg, err := loadToolConfig()
	if err != nil {
		return err
	}
	path := documentPath(cfg)

	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	extraVars, err := parseVarFlags(initVars)
	if err != nil {
		return err
	}

	doc := scaffold.NewDefaultConfig(initName, initConcept, initLanguage, initDescription, extraVars)
	if err := store.Save(doc, path); err != nil {
		return err
	}

	fmt.Printf("Created %s\n", path)
	fmt.Printf("  %s\n", doc.Summary())
	for _, name := range doc.TierNames() {
		tier, _ := doc.Tier(name)
		state := "disabled"
		if tier.Enabled {
			state = "enabled"
		}
		fmt.Printf("  - %s (%s)\n", name, state)
	}

	return nil
}

// parseVarFlags turns repeated key=value flags into a variable map.
func parseVarFlags(pairs []string) (map[string]any, error) {
	if len(pairs) == 0 {
		return nil, nil
	}

	vars := make(map[string]any, len(pairs))
	for _, pair := range pairs {
		key, value, ok := strings.Cut(pair, "=")
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --var %q, expected key=value", pair)
		}
		vars[key] = value
	}

	return vars, nil
}
