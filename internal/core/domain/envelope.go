package domain

// Envelope holds the control data extracted from the ISA/GS/ST framing
// of one interchange, together with the delimiters it declared.
type Envelope struct {
	// SenderQualifier and SenderID identify the interchange sender (ISA05/ISA06).
	SenderQualifier string
	SenderID        string

	// ReceiverQualifier and ReceiverID identify the receiver (ISA07/ISA08).
	ReceiverQualifier string
	ReceiverID        string

	// InterchangeControlNumber is ISA13, matched against IEA02.
	InterchangeControlNumber string

	// GroupControlNumber is GS06, matched against GE02.
	GroupControlNumber string

	// TransactionControlNumber is ST02, matched against SE02.
	TransactionControlNumber string

	// InterchangeVersion is ISA12 (e.g. "00401").
	InterchangeVersion string

	// GroupVersion is GS08 (e.g. "004010").
	GroupVersion string

	// TransactionSetCode is ST01 (e.g. "850"), the message type.
	TransactionSetCode string

	// FunctionalIDCode is GS01 (e.g. "PO").
	FunctionalIDCode string

	// Usage is ISA15 ("P" production, "T" test).
	Usage string

	// Delimiters are the separators the interchange declared.
	Delimiters Delimiters
}
