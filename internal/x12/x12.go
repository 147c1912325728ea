// Package x12 implements the low-level X12 interchange machinery: the
// segment tokenizer and the envelope/control parser. It is purely
// CPU-bound and allocates per call; nothing in this package holds state
// across invocations.
package x12

// Envelope framing segment identifiers.
const (
	isaSegmentID = "ISA"
	ieaSegmentID = "IEA"
	gsSegmentID  = "GS"
	geSegmentID  = "GE"
	stSegmentID  = "ST"
	seSegmentID  = "SE"
)

// The ISA header is fixed-width: 16 elements, with the element
// separator at byte 3 and the component separator as the final element.
// The segment terminator is whatever byte follows ISA16.
const (
	isaPrefixLen        = 3
	isaElementSepOffset = 3
	isaElementCount     = 16
)

// ISA element positions (X12 numbering).
const (
	isaIndexAuthInfoQualifier = iota + 1
	isaIndexAuthInfo
	isaIndexSecurityInfoQualifier
	isaIndexSecurityInfo
	isaIndexSenderIDQualifier
	isaIndexSenderID
	isaIndexReceiverIDQualifier
	isaIndexReceiverID
	isaIndexDate
	isaIndexTime
	isaIndexRepetitionSeparator
	isaIndexVersion
	isaIndexControlNumber
	isaIndexAckRequested
	isaIndexUsageIndicator
	isaIndexComponentSeparator
)

// ISAElementLengths are the fixed X12 lengths of ISA01..ISA16, indexed
// from zero. The format validator checks declared elements against them.
var ISAElementLengths = [isaElementCount]int{
	2, 10, 2, 10, 2, 15, 2, 15, 6, 4, 1, 5, 9, 1, 1, 1,
}

// GS element positions.
const (
	gsIndexFunctionalIDCode = iota + 1
	gsIndexSenderCode
	gsIndexReceiverCode
	gsIndexDate
	gsIndexTime
	gsIndexControlNumber
	gsIndexAgencyCode
	gsIndexVersion
)

// GE element positions.
const (
	geIndexTransactionCount = iota + 1
	geIndexControlNumber
)

// ST element positions.
const (
	stIndexTransactionSetCode = iota + 1
	stIndexControlNumber
)

// SE element positions.
const (
	seIndexSegmentCount = iota + 1
	seIndexControlNumber
)

// IEA element positions.
const (
	ieaIndexGroupCount = iota + 1
	ieaIndexControlNumber
)
