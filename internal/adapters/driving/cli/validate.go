package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tradewire-labs/edix/internal/core/domain"
)

var (
	validateType string
	validateJSON bool
)

var validateCmd = &cobra.Command{
	Use:   "validate [file]",
	Short: "Validate an EDI interchange without mapping it",
	Long: `Runs the tokenizer, envelope parser and format validation and
reports conformance findings. No typed document is produced. With no
file argument (or "-") the interchange is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runValidate,
}

func init() {
	validateCmd.Flags().StringVarP(&validateType, "type", "t", "", "force a transaction-set code instead of detecting from ST01")
	validateCmd.Flags().BoolVar(&validateJSON, "json", false, "output the report as JSON")
	rootCmd.AddCommand(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	if engine == nil {
		return errors.New("engine not configured")
	}

	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	report := engine.ValidateMessage(cmd.Context(), raw, validateType)

	if validateJSON {
		return outputValidateJSON(cmd, report)
	}
	outputValidateText(cmd, report)
	return nil
}

type validateOutput struct {
	Status              string          `json:"status"`
	DetectedVersion     string          `json:"detectedVersion"`
	DetectedMessageType string          `json:"detectedMessageType"`
	Messages            []messageOutput `json:"messages,omitempty"`
}

func outputValidateJSON(cmd *cobra.Command, report domain.ValidationReport) error {
	out := validateOutput{
		Status:              report.Status.String(),
		DetectedVersion:     report.DetectedVersion,
		DetectedMessageType: report.DetectedMessageType,
		Messages:            toMessageOutputs(report.Messages),
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	cmd.Println(string(data))
	return nil
}

func outputValidateText(cmd *cobra.Command, report domain.ValidationReport) {
	cmd.Printf("Status:  %s\n", report.Status)
	cmd.Printf("Version: %s\n", report.DetectedVersion)
	cmd.Printf("Type:    %s\n", report.DetectedMessageType)

	if len(report.Messages) == 0 {
		cmd.Println("No findings.")
		return
	}

	cmd.Println()
	for _, m := range report.Messages {
		loc := ""
		if m.LineNumber > 0 {
			loc = fmt.Sprintf(" (line %d)", m.LineNumber)
		}
		cmd.Printf("  [%s] %s: %s%s\n", m.Severity, m.Code, m.Text, loc)
	}
}
