package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/conneroisu/scaff/internal/version"
)

var (
	versionShort    bool
	versionDetailed bool
	versionFormat   = newFormatValue("text", "text", "json")
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version and build information",
	RunE:  runVersion,
}

func init() {
	rootCmd.AddCommand(versionCmd)

	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version number")
	versionCmd.Flags().BoolVar(&versionDetailed, "detailed", false, "print full build metadata")
	versionCmd.Flags().Var(versionFormat, "format", "output format (text|json)")
}

func runVersion(cmd *cobra.Command, args []string) error {
	info := version.Get()

	if versionFormat.String() == "json" {
		data, err := json.MarshalIndent(info, "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(data))
		return nil
	}

	switch {
	case versionShort:
		fmt.Println(info.Version)
	case versionDetailed:
		fmt.Println(info.Detailed())
	default:
		fmt.Println(info.String())
	}

	return nil
}
