package services

import (
	"context"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/validation"
	"github.com/tradewire-labs/edix/internal/x12"
)

const sample850 = "ISA*00*          *00*          *ZZ*SENDERID       *ZZ*RECEIVERID     *210101*1253*U*00401*000000001*0*P*>~" +
	"GS*PO*SENDERID*RECEIVERID*20210101*1253*1*X*004010~" +
	"ST*850*0001~" +
	"BEG*00*SA*PO123456**20210101~" +
	"PO1*1*10*EA*25.50**VP*SKU12345*PD*Widget A~" +
	"SE*4*0001~" +
	"GE*1*1~" +
	"IEA*1*000000001~"

func newTestEngine() *Engine {
	return NewEngine(NewMessageTypeRegistry(), nil)
}

func hasCode(msgs []domain.ProcessingMessage, code string) bool {
	for _, m := range msgs {
		if m.Code == code {
			return true
		}
	}
	return false
}

func TestProcessMessage_Success(t *testing.T) {
	e := newTestEngine()

	result := e.ProcessMessage(context.Background(), sample850, "", domain.DefaultOptions())

	assert.Equal(t, domain.StatusSuccess, result.Status)
	assert.NotEmpty(t, result.ID)
	assert.Equal(t, "850", result.MessageType)
	assert.False(t, result.ProcessedAt.IsZero())
	assert.False(t, result.HasErrors())

	require.NotNil(t, result.Envelope)
	assert.Equal(t, "SENDERID", result.Envelope.SenderID)
	assert.Equal(t, "RECEIVERID", result.Envelope.ReceiverID)
	assert.Equal(t, "000000001", result.Envelope.InterchangeControlNumber)

	po := result.Parsed.PurchaseOrder()
	require.NotNil(t, po)
	assert.Equal(t, "PO123456", po.PONumber)
	require.Len(t, po.LineItems, 1)
	assert.Equal(t, "SKU12345", po.LineItems[0].Product.ProductID)
	assert.Equal(t, 10.0, po.LineItems[0].QuantityOrdered.Value)
	assert.Equal(t, 25.50, po.LineItems[0].UnitPrice.Value)

	assert.Empty(t, result.RawSegments)
}

func TestProcessMessage_EnvelopeCountMismatchIsNonFatal(t *testing.T) {
	e := newTestEngine()
	raw := strings.Replace(sample850, "SE*4*0001", "SE*99*0001", 1)

	result := e.ProcessMessage(context.Background(), raw, "", domain.DefaultOptions())

	assert.Equal(t, domain.StatusValidationError, result.Status)
	assert.True(t, hasCode(result.Messages, x12.CodeEnvelopeCountMismatch))

	// Envelope damage does not withhold the body.
	po := result.Parsed.PurchaseOrder()
	require.NotNil(t, po)
	assert.Equal(t, "PO123456", po.PONumber)
}

func TestProcessMessage_MissingHeaderSegment(t *testing.T) {
	e := newTestEngine()
	raw := strings.Replace(sample850, "BEG*00*SA*PO123456**20210101~", "", 1)

	result := e.ProcessMessage(context.Background(), raw, "", domain.DefaultOptions())

	assert.Equal(t, domain.StatusParsingError, result.Status)
	assert.True(t, result.Parsed.IsZero())
	assert.True(t, hasCode(result.Messages, CodeMappingFailed))
	assert.True(t, hasCode(result.Messages, validation.CodeMissingRequiredSegment))
}

func TestProcessMessage_UnsupportedType(t *testing.T) {
	e := newTestEngine()
	raw := strings.Replace(sample850, "ST*850*0001", "ST*999*0001", 1)

	result := e.ProcessMessage(context.Background(), raw, "", domain.DefaultOptions())

	assert.Equal(t, domain.StatusUnsupportedMessageType, result.Status)
	assert.Equal(t, "999", result.MessageType)
	assert.True(t, result.Parsed.IsZero())
	assert.True(t, hasCode(result.Messages, CodeUnsupportedType))
}

func TestProcessMessage_HintOverridesDetection(t *testing.T) {
	e := newTestEngine()

	// An 850 interchange forced through the 810 pipeline has no BIG
	// header, so mapping fails.
	result := e.ProcessMessage(context.Background(), sample850, "810", domain.DefaultOptions())
	assert.Equal(t, "810", result.MessageType)
	assert.Equal(t, domain.StatusParsingError, result.Status)

	result = e.ProcessMessage(context.Background(), sample850, "999", domain.DefaultOptions())
	assert.Equal(t, domain.StatusUnsupportedMessageType, result.Status)
}

func TestProcessMessage_FuncAckWithoutAK9(t *testing.T) {
	e := newTestEngine()
	raw := "ISA*00*          *00*          *ZZ*SENDERID       *ZZ*RECEIVERID     *210101*1253*U*00401*000000001*0*P*>~" +
		"GS*FA*SENDERID*RECEIVERID*20210101*1253*1*X*004010~" +
		"ST*997*0001~" +
		"AK1*PO*1~" +
		"AK2*850*0001~" +
		"AK5*A~" +
		"SE*5*0001~" +
		"GE*1*1~" +
		"IEA*1*000000001~"

	result := e.ProcessMessage(context.Background(), raw, "", domain.DefaultOptions())

	assert.Equal(t, domain.StatusSuccess, result.Status)
	assert.False(t, hasCode(result.Messages, validation.CodeMissingRequiredSegment))

	ack := result.Parsed.FuncAck()
	require.NotNil(t, ack)
	assert.Empty(t, ack.GroupAckCode)
	require.Len(t, ack.TransactionSetAcks, 1)
	assert.Equal(t, "A", ack.TransactionSetAcks[0].AckCode)
}

func TestProcessMessage_RejectsNonEDIInput(t *testing.T) {
	e := newTestEngine()

	result := e.ProcessMessage(context.Background(), "hello world", "", domain.DefaultOptions())

	assert.Equal(t, domain.StatusParsingError, result.Status)
	assert.True(t, hasCode(result.Messages, CodeTokenizationFailed))
	assert.True(t, result.Parsed.IsZero())
}

func TestProcessMessage_SizeLimit(t *testing.T) {
	e := newTestEngine()
	opts := domain.DefaultOptions()
	opts.MaxMessageBytes = 16

	result := e.ProcessMessage(context.Background(), sample850, "", opts)

	assert.Equal(t, domain.StatusParsingError, result.Status)
	require.True(t, hasCode(result.Messages, CodeMessageTooLarge))
	for _, m := range result.Messages {
		if m.Code == CodeMessageTooLarge {
			assert.Contains(t, m.Text, "message exceeds size limit")
		}
	}
}

func TestProcessMessage_IncludeRawSegments(t *testing.T) {
	e := newTestEngine()
	opts := domain.DefaultOptions()
	opts.IncludeRawSegments = true

	result := e.ProcessMessage(context.Background(), sample850, "", opts)

	require.Len(t, result.RawSegments, 8)
	assert.Equal(t, "ISA", result.RawSegments[0].ID)
	assert.Equal(t, "IEA", result.RawSegments[7].ID)
}

func TestProcessMessage_BusinessRuleError(t *testing.T) {
	e := newTestEngine()
	raw := strings.Replace(sample850, "PO1*1*10*EA", "PO1*1*0*EA", 1)

	result := e.ProcessMessage(context.Background(), raw, "", domain.DefaultOptions())

	assert.Equal(t, domain.StatusBusinessRuleError, result.Status)
	assert.True(t, hasCode(result.Messages, validation.CodeInvalidQuantity))

	// By default the body is still delivered alongside the errors.
	require.NotNil(t, result.Parsed.PurchaseOrder())
}

func TestProcessMessage_FailOnBusinessRulesWithholdsBody(t *testing.T) {
	e := newTestEngine()
	raw := strings.Replace(sample850, "PO1*1*10*EA", "PO1*1*0*EA", 1)
	opts := domain.DefaultOptions()
	opts.FailOnBusinessRules = true

	result := e.ProcessMessage(context.Background(), raw, "", opts)

	assert.Equal(t, domain.StatusBusinessRuleError, result.Status)
	assert.True(t, result.Parsed.IsZero())
	assert.True(t, hasCode(result.Messages, CodeBusinessRulesRejected))
}

func TestProcessMessage_ValidationDisabled(t *testing.T) {
	e := newTestEngine()
	raw := strings.Replace(sample850, "PO1*1*10*EA", "PO1*1*0*EA", 1)

	result := e.ProcessMessage(context.Background(), raw, "", domain.Options{})

	// With both passes off only envelope checks run, and the sample's
	// envelope is intact.
	assert.Equal(t, domain.StatusSuccess, result.Status)
	require.NotNil(t, result.Parsed.PurchaseOrder())
}

func TestProcessMessage_CustomRules(t *testing.T) {
	raw := strings.Replace(sample850, "PO1*1*10*EA", "PO1*1*0*EA", 1)
	e := NewEngine(NewMessageTypeRegistry(), staticRules{domain.RuleSet{
		PriceEpsilon:  0.01,
		DisabledCodes: []string{validation.CodeInvalidQuantity},
	}})

	result := e.ProcessMessage(context.Background(), raw, "", domain.DefaultOptions())

	assert.Equal(t, domain.StatusSuccess, result.Status)
	assert.False(t, hasCode(result.Messages, validation.CodeInvalidQuantity))
}

type staticRules struct {
	rules domain.RuleSet
}

func (s staticRules) RulesFor(string) domain.RuleSet { return s.rules }

func TestProcessMessage_Concurrent(t *testing.T) {
	e := newTestEngine()

	const workers = 16
	results := make([]domain.ProcessingResult, workers)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = e.ProcessMessage(context.Background(), sample850, "", domain.DefaultOptions())
		}(i)
	}
	wg.Wait()

	seen := make(map[string]bool, workers)
	for _, r := range results {
		assert.Equal(t, domain.StatusSuccess, r.Status)
		assert.False(t, seen[r.ID], "result IDs must be unique")
		seen[r.ID] = true
	}
}

func TestValidateMessage(t *testing.T) {
	e := newTestEngine()

	report := e.ValidateMessage(context.Background(), sample850, "")

	assert.Equal(t, domain.StatusSuccess, report.Status)
	assert.Equal(t, "00401", report.DetectedVersion)
	assert.Equal(t, "850", report.DetectedMessageType)
}

func TestValidateMessage_FormatFailure(t *testing.T) {
	e := newTestEngine()
	raw := strings.Replace(sample850, "BEG*00*SA*PO123456**20210101~", "", 1)

	report := e.ValidateMessage(context.Background(), raw, "")

	assert.Equal(t, domain.StatusValidationError, report.Status)
	assert.True(t, hasCode(report.Messages, validation.CodeMissingRequiredSegment))
}

func TestValidateMessage_UnsupportedType(t *testing.T) {
	e := newTestEngine()

	report := e.ValidateMessage(context.Background(), sample850, "940")

	assert.Equal(t, domain.StatusUnsupportedMessageType, report.Status)
}

func TestValidateMessage_NotEDI(t *testing.T) {
	e := newTestEngine()

	report := e.ValidateMessage(context.Background(), "not an interchange", "")

	assert.Equal(t, domain.StatusParsingError, report.Status)
	assert.Equal(t, "Unknown", report.DetectedVersion)
	assert.Equal(t, "Unknown", report.DetectedMessageType)
}

func TestListSupportedTypes(t *testing.T) {
	e := newTestEngine()

	types := e.ListSupportedTypes()
	require.Len(t, types, 4)
	assert.Equal(t, "850", types[0].Code)
	assert.Equal(t, "997", types[3].Code)
}
