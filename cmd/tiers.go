package cmd

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/conneroisu/scaff/internal/scaffold"
)

var tiersFormat = newFormatValue("table", "table", "json", "yaml")

var tiersCmd = &cobra.Command{
	Use:   "tiers",
	Short: "List the tiers of the scaffold document",
	Long: `List the tiers of the scaffold document with their enablement, output
format, flags, and a preview of the prompt template.

Examples:
  scaff tiers
  scaff tiers --format json
  scaff tiers --format yaml`,
	RunE: runTiers,
}

// tierListing is the serializable shape of one tier row.
type tierListing struct {
	Name          string `json:"name" yaml:"name"`
	Enabled       bool   `json:"enabled" yaml:"enabled"`
	Format        string `json:"output_format" yaml:"output_format"`
	UseSystemInfo bool   `json:"use_system_info" yaml:"use_system_info"`
	Optimize      bool   `json:"optimize" yaml:"optimize"`
	Template      string `json:"template" yaml:"template"`
}

func init() {
	rootCmd.AddCommand(tiersCmd)
	tiersCmd.Flags().Var(tiersFormat, "format", "output format (table|json|yaml)")
}

func runTiers(cmd *cobra.Command, args []string) error {
	cfg, err := loadToolConfig()
	if err != nil {
		return err
	}

	doc, path, err := loadDocument(cfg)
	if err != nil {
		return err
	}

	listings := make([]tierListing, 0, len(doc.Tiers))
	for _, name := range doc.TierNames() {
		tier, _ := doc.Tier(name)
		listings = append(listings, tierListing{
			Name:          name,
			Enabled:       tier.Enabled,
			Format:        string(tier.Format),
			UseSystemInfo: tier.UseSystemInfo,
			Optimize:      tier.Optimize,
			Template:      tier.Template.Content,
		})
	}

	switch tiersFormat.String() {
	case "json":
		data, err := json.MarshalIndent(listings, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
	case "yaml":
		data, err := yaml.Marshal(listings)
		if err != nil {
			return err
		}
		fmt.Print(string(data))
	default:
		printTierTable(doc, path, listings)
	}

	return nil
}

func printTierTable(doc *scaffold.Config, path string, listings []tierListing) {
	fmt.Printf("%s (%s)\n\n", doc.Summary(), path)

	w := tabwriter.NewWriter(os.Stdout, 0, 8, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tENABLED\tFORMAT\tSYSTEM\tOPTIMIZE\tTEMPLATE")
	for _, l := range listings {
		fmt.Fprintf(w, "%s\t%t\t%s\t%t\t%t\t%s\n",
			l.Name, l.Enabled, l.Format, l.UseSystemInfo, l.Optimize, templatePreview(l.Template))
	}
	_ = w.Flush()
}

// templatePreview collapses a template to a single short line for the table.
func templatePreview(content string) string {
	line := strings.Join(strings.Fields(content), " ")
	if len(line) > 50 {
		line = line[:47] + "..."
	}

	return line
}
