package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tradewire-labs/edix/internal/core/domain"
)

var (
	processType   string
	processJSON   bool
	processRaw    bool
	processStrict bool
	processEnv    string
)

var processCmd = &cobra.Command{
	Use:   "process [file]",
	Short: "Process an EDI interchange into a typed document",
	Long: `Tokenizes, validates and maps one X12 interchange. The message type
is detected from the ST segment unless --type forces one. With no file
argument (or "-") the interchange is read from stdin.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runProcess,
}

func init() {
	processCmd.Flags().StringVarP(&processType, "type", "t", "", "force a transaction-set code instead of detecting from ST01")
	processCmd.Flags().BoolVar(&processJSON, "json", false, "output the full result as JSON")
	processCmd.Flags().BoolVar(&processRaw, "raw-segments", false, "include the tokenized segments in the result")
	processCmd.Flags().BoolVar(&processStrict, "strict", false, "treat business-rule errors as terminal and withhold the body")
	processCmd.Flags().StringVarP(&processEnv, "environment", "e", "", "environment key for business-rule selection")
	rootCmd.AddCommand(processCmd)
}

func runProcess(cmd *cobra.Command, args []string) error {
	if engine == nil {
		return errors.New("engine not configured")
	}

	raw, err := readInput(cmd, args)
	if err != nil {
		return err
	}

	opts := engineOptions()
	if processRaw {
		opts.IncludeRawSegments = true
	}
	if processStrict {
		opts.FailOnBusinessRules = true
	}
	if processEnv != "" {
		opts.Environment = processEnv
	}

	result := engine.ProcessMessage(cmd.Context(), raw, processType, opts)

	if processJSON {
		return outputProcessJSON(cmd, result)
	}
	outputProcessText(cmd, result)
	return nil
}

// readInput loads the interchange from the file argument, or stdin when
// the argument is absent or "-".
func readInput(cmd *cobra.Command, args []string) (string, error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", fmt.Errorf("reading stdin: %w", err)
		}
		return string(data), nil
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", args[0], err)
	}
	return string(data), nil
}

// processOutput is the JSON shape of a processing result. Statuses and
// severities render as their string forms.
type processOutput struct {
	ID          string           `json:"id"`
	Status      string           `json:"status"`
	MessageType string           `json:"messageType,omitempty"`
	Envelope    *domain.Envelope `json:"envelope,omitempty"`
	Messages    []messageOutput  `json:"messages,omitempty"`
	Body        any              `json:"body,omitempty"`
	RawSegments []domain.Segment `json:"rawSegments,omitempty"`
	ProcessedAt time.Time        `json:"processedAt"`
}

type messageOutput struct {
	Severity     string `json:"severity"`
	Class        string `json:"class"`
	Code         string `json:"code"`
	Text         string `json:"text"`
	Field        string `json:"field,omitempty"`
	LineNumber   int    `json:"lineNumber,omitempty"`
	ElementIndex int    `json:"elementIndex,omitempty"`
}

func toMessageOutputs(msgs []domain.ProcessingMessage) []messageOutput {
	out := make([]messageOutput, 0, len(msgs))
	for _, m := range msgs {
		out = append(out, messageOutput{
			Severity:     m.Severity.String(),
			Class:        m.Class.String(),
			Code:         m.Code,
			Text:         m.Text,
			Field:        m.Field,
			LineNumber:   m.LineNumber,
			ElementIndex: m.ElementIndex,
		})
	}
	return out
}

// marshalProcessResult renders a processing result as indented JSON. Both
// the process command and the watch result files use this shape.
func marshalProcessResult(result domain.ProcessingResult) ([]byte, error) {
	out := processOutput{
		ID:          result.ID,
		Status:      result.Status.String(),
		MessageType: result.MessageType,
		Envelope:    result.Envelope,
		Messages:    toMessageOutputs(result.Messages),
		Body:        result.Parsed.Body(),
		RawSegments: result.RawSegments,
		ProcessedAt: result.ProcessedAt,
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal result: %w", err)
	}
	return data, nil
}

func outputProcessJSON(cmd *cobra.Command, result domain.ProcessingResult) error {
	data, err := marshalProcessResult(result)
	if err != nil {
		return err
	}
	cmd.Println(string(data))
	return nil
}

func outputProcessText(cmd *cobra.Command, result domain.ProcessingResult) {
	cmd.Printf("Status: %s\n", result.Status)
	if result.MessageType != "" {
		cmd.Printf("Type:   %s\n", result.MessageType)
	}
	if env := result.Envelope; env != nil && env.SenderID != "" {
		cmd.Printf("From:   %s (%s)\n", env.SenderID, env.SenderQualifier)
		cmd.Printf("To:     %s (%s)\n", env.ReceiverID, env.ReceiverQualifier)
	}

	outputBodySummary(cmd, result.Parsed)

	if len(result.Messages) > 0 {
		cmd.Println()
		cmd.Printf("Messages (%d):\n", len(result.Messages))
		for _, m := range result.Messages {
			loc := ""
			if m.LineNumber > 0 {
				loc = fmt.Sprintf(" (line %d)", m.LineNumber)
			}
			cmd.Printf("  [%s] %s: %s%s\n", m.Severity, m.Code, m.Text, loc)
		}
	}
}

func outputBodySummary(cmd *cobra.Command, parsed domain.ParsedMessage) {
	switch parsed.Kind() {
	case domain.KindPurchaseOrder:
		po := parsed.PurchaseOrder()
		cmd.Printf("PO:     %s (%d line items)\n", po.PONumber, len(po.LineItems))
	case domain.KindInvoice:
		inv := parsed.Invoice()
		cmd.Printf("Invoice: %s (%d line items)\n", inv.InvoiceNumber, len(inv.LineItems))
		if inv.Totals.HasTotal {
			cmd.Printf("Total:  %.2f\n", inv.Totals.TotalAmount)
		}
	case domain.KindShipNotice:
		asn := parsed.ShipNotice()
		cmd.Printf("Shipment: %s (%d orders)\n", asn.ShipmentID, len(asn.Shipment.Orders))
	case domain.KindFuncAck:
		ack := parsed.FuncAck()
		cmd.Printf("Ack:    group %s, %d transaction sets\n", ack.GroupControlNumber, len(ack.TransactionSetAcks))
	}
}
