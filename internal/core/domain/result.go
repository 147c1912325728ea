package domain

import "time"

// Severity grades a ProcessingMessage.
type Severity int

const (
	// SeverityInfo is advisory only.
	SeverityInfo Severity = iota

	// SeverityWarning indicates a recoverable rule breach.
	SeverityWarning

	// SeverityError indicates a conformance failure.
	SeverityError
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "info"
	}
}

// RuleClass tells which validation pass produced a message, which
// drives status derivation (format errors and business errors map to
// different statuses).
type RuleClass int

const (
	// ClassEnvelope covers ISA/GS/ST framing checks.
	ClassEnvelope RuleClass = iota

	// ClassFormat covers segment presence and element cardinality.
	ClassFormat

	// ClassBusiness covers cross-field business rules.
	ClassBusiness

	// ClassMapping covers messages emitted while building the body.
	ClassMapping
)

func (c RuleClass) String() string {
	switch c {
	case ClassFormat:
		return "format"
	case ClassBusiness:
		return "business"
	case ClassMapping:
		return "mapping"
	default:
		return "envelope"
	}
}

// ProcessingMessage is one diagnostic accumulated during processing.
// Messages are append-only: the validator and mapper both append to the
// same ordered list and never mutate earlier entries.
type ProcessingMessage struct {
	Severity Severity
	Class    RuleClass

	// Code is the stable machine-readable identifier, e.g.
	// "ENVELOPE_COUNT_MISMATCH".
	Code string

	// Text is the human-readable explanation.
	Text string

	// Field locates the segment id or semantic field involved, when known.
	Field string

	// LineNumber locates the offending segment in the source text
	// (1-indexed, 0 when unknown).
	LineNumber int

	// ElementIndex locates the offending element within the segment
	// (X12 numbering, 0 when unknown).
	ElementIndex int
}

// Status is the terminal disposition of one engine invocation.
type Status int

const (
	// StatusSuccess means no ERROR-level messages and a body was mapped.
	StatusSuccess Status = iota

	// StatusValidationError means format or envelope conformance failed.
	StatusValidationError

	// StatusParsingError means tokenization or mapping failed fatally.
	StatusParsingError

	// StatusBusinessRuleError means a business rule produced an ERROR.
	StatusBusinessRuleError

	// StatusUnsupportedMessageType means the transaction-set code is not
	// registered.
	StatusUnsupportedMessageType

	// StatusInternalError means the engine itself faulted.
	StatusInternalError
)

func (s Status) String() string {
	switch s {
	case StatusSuccess:
		return "SUCCESS"
	case StatusValidationError:
		return "VALIDATION_ERROR"
	case StatusParsingError:
		return "PARSING_ERROR"
	case StatusBusinessRuleError:
		return "BUSINESS_RULE_ERROR"
	case StatusUnsupportedMessageType:
		return "UNSUPPORTED_MESSAGE_TYPE"
	case StatusInternalError:
		return "INTERNAL_ERROR"
	default:
		return "UNKNOWN"
	}
}

// Options is the per-request configuration surface of the engine.
type Options struct {
	// ValidateFormat enables the format validation pass.
	ValidateFormat bool

	// ValidateBusinessRules enables the business-rule pass.
	ValidateBusinessRules bool

	// IncludeRawSegments echoes the tokenized segments in the result
	// for audit.
	IncludeRawSegments bool

	// FailOnBusinessRules escalates ERROR-level business messages to a
	// terminal failure: the typed body is withheld and the status
	// becomes BUSINESS_RULE_ERROR.
	FailOnBusinessRules bool

	// MaxMessageBytes caps the input size, enforced before
	// tokenization. Zero means no limit.
	MaxMessageBytes int

	// Environment is an opaque key handed to the rule provider for
	// customer-specific rule selection. The engine does not interpret it.
	Environment string
}

// DefaultOptions enables both validation passes with a 1 MiB input cap.
func DefaultOptions() Options {
	return Options{
		ValidateFormat:        true,
		ValidateBusinessRules: true,
		MaxMessageBytes:       1 << 20,
	}
}

// RuleSet is the customer-specific tuning returned by a rule provider.
type RuleSet struct {
	// PriceEpsilon is the tolerance for extended-price checks, in
	// currency units.
	PriceEpsilon float64

	// DisabledCodes suppresses specific business-rule message codes.
	DisabledCodes []string
}

// DefaultRuleSet applies the standard one-cent tolerance.
func DefaultRuleSet() RuleSet {
	return RuleSet{PriceEpsilon: 0.01}
}

// Disabled reports whether a message code is suppressed.
func (r RuleSet) Disabled(code string) bool {
	for _, c := range r.DisabledCodes {
		if c == code {
			return true
		}
	}
	return false
}

// ProcessingResult is the outcome of ProcessMessage. It is created once
// per request and immutable after the engine finalizes it.
type ProcessingResult struct {
	// ID uniquely identifies this processing run.
	ID string

	// Status is derived from the accumulated messages and the presence
	// of a mapped body.
	Status Status

	// MessageType is the transaction-set code that was processed.
	MessageType string

	// Envelope is the parsed framing data, when tokenization succeeded.
	Envelope *Envelope

	// Parsed is the typed body. Zero when processing failed fatally or
	// the body was withheld.
	Parsed ParsedMessage

	// Messages is the full ordered diagnostic list: envelope, format,
	// business, then mapping messages, segment order preserved within
	// each group.
	Messages []ProcessingMessage

	// RawSegments echoes the tokenized segments when
	// Options.IncludeRawSegments was set.
	RawSegments []Segment

	// ProcessedAt is when the engine finalized the result.
	ProcessedAt time.Time
}

// HasErrors reports whether any ERROR-level message accumulated.
func (r ProcessingResult) HasErrors() bool {
	for _, m := range r.Messages {
		if m.Severity == SeverityError {
			return true
		}
	}
	return false
}

// ValidationReport is the outcome of ValidateMessage: tokenizer,
// envelope parser and format validation only, no mapping.
type ValidationReport struct {
	Status   Status
	Messages []ProcessingMessage

	// DetectedVersion is the interchange version from ISA12 (GS08 when
	// ISA12 is blank), or "Unknown".
	DetectedVersion string

	// DetectedMessageType is ST01, or "Unknown".
	DetectedMessageType string
}
