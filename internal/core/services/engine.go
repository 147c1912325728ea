package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/core/ports/driven"
	"github.com/tradewire-labs/edix/internal/core/ports/driving"
	"github.com/tradewire-labs/edix/internal/logger"
	"github.com/tradewire-labs/edix/internal/validation"
	"github.com/tradewire-labs/edix/internal/x12"
)

// Ensure Engine implements the interface.
var _ driving.Engine = (*Engine)(nil)

// Diagnostic codes emitted by the engine itself.
const (
	CodeMessageTooLarge       = "MESSAGE_TOO_LARGE"
	CodeTokenizationFailed    = "TOKENIZATION_FAILED"
	CodeUnsupportedType       = "UNSUPPORTED_MESSAGE_TYPE"
	CodeMappingFailed         = "MAPPING_FAILED"
	CodeBusinessRulesRejected = "BUSINESS_RULES_REJECTED"
	CodeInternalFault         = "INTERNAL_FAULT"
)

// Engine is the processing facade. It owns no mutable state beyond its
// registry and rule provider, both read-only after construction, so one
// instance serves concurrent callers; each invocation builds its own
// result.
type Engine struct {
	registry *MessageTypeRegistry
	rules    driven.RuleProvider
}

// NewEngine creates an engine over a registry. ruleProvider is optional
// (can be nil); without one the default rule set applies.
func NewEngine(registry *MessageTypeRegistry, ruleProvider driven.RuleProvider) *Engine {
	return &Engine{
		registry: registry,
		rules:    ruleProvider,
	}
}

// ProcessMessage runs the full pipeline: tokenize, parse the envelope,
// validate per the options, and map the typed body. All failures are
// reported through the result's status and messages.
func (e *Engine) ProcessMessage(ctx context.Context, raw string, messageTypeHint string, opts domain.Options) (result domain.ProcessingResult) {
	result.ID = uuid.NewString()

	// A mapper or validator panic must not take down the caller, which
	// may be serving other interchanges on the same process.
	defer func() {
		if r := recover(); r != nil {
			logger.Info("Internal fault: %v", r)
			result.Status = domain.StatusInternalError
			result.Parsed = domain.ParsedMessage{}
			result.Messages = append(result.Messages, domain.ProcessingMessage{
				Severity: domain.SeverityError,
				Class:    domain.ClassFormat,
				Code:     CodeInternalFault,
				Text:     fmt.Sprintf("internal fault: %v", r),
			})
			result.ProcessedAt = time.Now().UTC()
		}
	}()

	logger.Section("Message Processing")
	logger.Debug("Input: %d bytes, hint=%q", len(raw), messageTypeHint)

	if opts.MaxMessageBytes > 0 && len(raw) > opts.MaxMessageBytes {
		sizeErr := &domain.FormatError{Reason: "message exceeds size limit"}
		return e.finalize(result, domain.StatusParsingError, domain.ProcessingMessage{
			Severity: domain.SeverityError,
			Class:    domain.ClassFormat,
			Code:     CodeMessageTooLarge,
			Text:     fmt.Sprintf("%s (%d bytes, limit %d)", sizeErr.Error(), len(raw), opts.MaxMessageBytes),
		})
	}

	segments, delims, err := x12.Tokenize(raw)
	if err != nil {
		logger.Debug("Tokenization failed: %v", err)
		return e.finalize(result, domain.StatusParsingError, domain.ProcessingMessage{
			Severity: domain.SeverityError,
			Class:    domain.ClassFormat,
			Code:     CodeTokenizationFailed,
			Text:     err.Error(),
		})
	}
	logger.Debug("Tokenized %d segments", len(segments))

	env, body, envMsgs := x12.ParseEnvelope(segments, delims)
	result.Envelope = env
	result.Messages = append(result.Messages, envMsgs...)
	if opts.IncludeRawSegments {
		result.RawSegments = segments
	}

	code := messageTypeHint
	if code == "" {
		code = env.TransactionSetCode
	}
	result.MessageType = code

	desc, err := e.registry.Resolve(code)
	if err != nil {
		logger.Debug("Unsupported message type %q", code)
		return e.finalize(result, domain.StatusUnsupportedMessageType, domain.ProcessingMessage{
			Severity: domain.SeverityError,
			Class:    domain.ClassFormat,
			Code:     CodeUnsupportedType,
			Text:     fmt.Sprintf("message type %q is not supported", code),
		})
	}

	if opts.ValidateFormat {
		result.Messages = append(result.Messages, validation.FormatPass(segments, desc)...)
	}
	if opts.ValidateBusinessRules {
		result.Messages = append(result.Messages, validation.BusinessPass(segments, desc, e.rulesFor(opts.Environment))...)
	}

	mapper, err := e.registry.Mapper(code)
	if err != nil {
		return e.finalize(result, domain.StatusUnsupportedMessageType, domain.ProcessingMessage{
			Severity: domain.SeverityError,
			Class:    domain.ClassFormat,
			Code:     CodeUnsupportedType,
			Text:     fmt.Sprintf("message type %q is not supported", code),
		})
	}

	parsed, err := mapper.Map(body)
	if err != nil {
		logger.Debug("Mapping failed: %v", err)
		msg := domain.ProcessingMessage{
			Severity: domain.SeverityError,
			Class:    domain.ClassMapping,
			Code:     CodeMappingFailed,
			Text:     err.Error(),
		}
		var me *domain.MappingError
		if errors.As(err, &me) {
			msg.Field = me.Field
		}
		return e.finalize(result, domain.StatusParsingError, msg)
	}
	result.Parsed = parsed

	status := e.deriveStatus(result.Messages)
	if status == domain.StatusBusinessRuleError && opts.FailOnBusinessRules {
		// Terminal rejection: the body is withheld so downstream systems
		// cannot accidentally consume a document that failed its rules.
		result.Parsed = domain.ParsedMessage{}
		result.Messages = append(result.Messages, domain.ProcessingMessage{
			Severity: domain.SeverityError,
			Class:    domain.ClassBusiness,
			Code:     CodeBusinessRulesRejected,
			Text:     "business rules rejected the message",
		})
	}

	logger.Info("Processed %s: %s (%d messages)", code, status, len(result.Messages))
	return e.finalize(result, status)
}

// ValidateMessage runs tokenizer, envelope parser and format validation
// without mapping a body.
func (e *Engine) ValidateMessage(ctx context.Context, raw string, messageType string) domain.ValidationReport {
	report := domain.ValidationReport{
		DetectedVersion:     "Unknown",
		DetectedMessageType: "Unknown",
	}

	segments, delims, err := x12.Tokenize(raw)
	if err != nil {
		report.Status = domain.StatusParsingError
		report.Messages = append(report.Messages, domain.ProcessingMessage{
			Severity: domain.SeverityError,
			Class:    domain.ClassFormat,
			Code:     CodeTokenizationFailed,
			Text:     err.Error(),
		})
		return report
	}

	env, _, envMsgs := x12.ParseEnvelope(segments, delims)
	report.Messages = append(report.Messages, envMsgs...)
	if env.InterchangeVersion != "" {
		report.DetectedVersion = env.InterchangeVersion
	} else if env.GroupVersion != "" {
		report.DetectedVersion = env.GroupVersion
	}
	if env.TransactionSetCode != "" {
		report.DetectedMessageType = env.TransactionSetCode
	}

	code := messageType
	if code == "" {
		code = env.TransactionSetCode
	}

	desc, err := e.registry.Resolve(code)
	if err != nil {
		report.Status = domain.StatusUnsupportedMessageType
		report.Messages = append(report.Messages, domain.ProcessingMessage{
			Severity: domain.SeverityError,
			Class:    domain.ClassFormat,
			Code:     CodeUnsupportedType,
			Text:     fmt.Sprintf("message type %q is not supported", code),
		})
		return report
	}

	report.Messages = append(report.Messages, validation.FormatPass(segments, desc)...)
	report.Status = domain.StatusSuccess
	for _, m := range report.Messages {
		if m.Severity == domain.SeverityError {
			report.Status = domain.StatusValidationError
			break
		}
	}
	return report
}

// ListSupportedTypes returns the registered descriptors.
func (e *Engine) ListSupportedTypes() []domain.MessageTypeDescriptor {
	return e.registry.List()
}

func (e *Engine) rulesFor(environment string) domain.RuleSet {
	if e.rules == nil {
		return domain.DefaultRuleSet()
	}
	return e.rules.RulesFor(environment)
}

// deriveStatus folds the diagnostic list into a terminal status.
// Business errors take precedence over envelope and format errors: a
// document that is structurally readable but commercially wrong is a
// business failure, not a syntax one.
func (e *Engine) deriveStatus(msgs []domain.ProcessingMessage) domain.Status {
	sawConformance := false
	for _, m := range msgs {
		if m.Severity != domain.SeverityError {
			continue
		}
		if m.Class == domain.ClassBusiness {
			return domain.StatusBusinessRuleError
		}
		sawConformance = true
	}
	if sawConformance {
		return domain.StatusValidationError
	}
	return domain.StatusSuccess
}

func (e *Engine) finalize(result domain.ProcessingResult, status domain.Status, msgs ...domain.ProcessingMessage) domain.ProcessingResult {
	result.Messages = append(result.Messages, msgs...)
	result.Status = status
	result.ProcessedAt = time.Now().UTC()
	return result
}
