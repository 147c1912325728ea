package domain

// MessageTypeDescriptor describes one registered transaction-set type:
// its grammar (required and optional segment sets) and whether it uses
// the hierarchical HL loop. Descriptors are registered once at startup
// and never mutated during a request.
type MessageTypeDescriptor struct {
	// Code is the transaction-set code from ST01 ("850").
	Code string

	// Name is the short human name ("Purchase Order").
	Name string

	// Description is the long form for listings.
	Description string

	// RequiredSegments must each appear at least once in a conforming
	// interchange.
	RequiredSegments []string

	// OptionalSegments are recognized but not demanded. Segment ids
	// outside both sets draw an UNRECOGNIZED_SEGMENT warning.
	OptionalSegments []string

	// Hierarchical marks types whose body nests via HL loops (856).
	Hierarchical bool
}

// Recognizes reports whether the segment id is in the required or
// optional set.
func (d MessageTypeDescriptor) Recognizes(segmentID string) bool {
	for _, s := range d.RequiredSegments {
		if s == segmentID {
			return true
		}
	}
	for _, s := range d.OptionalSegments {
		if s == segmentID {
			return true
		}
	}
	return false
}
