package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var typesJSON bool

var typesCmd = &cobra.Command{
	Use:   "types",
	Short: "List supported transaction-set types",
	RunE:  runTypes,
}

func init() {
	typesCmd.Flags().BoolVar(&typesJSON, "json", false, "output descriptors as JSON")
	rootCmd.AddCommand(typesCmd)
}

func runTypes(cmd *cobra.Command, _ []string) error {
	if engine == nil {
		return errors.New("engine not configured")
	}

	types := engine.ListSupportedTypes()

	if typesJSON {
		data, err := json.MarshalIndent(types, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal descriptors: %w", err)
		}
		cmd.Println(string(data))
		return nil
	}

	for _, d := range types {
		cmd.Printf("%s  %s\n", d.Code, d.Name)
		cmd.Printf("     %s\n", d.Description)
		cmd.Printf("     Required: %s\n", strings.Join(d.RequiredSegments, ", "))
	}
	return nil
}
