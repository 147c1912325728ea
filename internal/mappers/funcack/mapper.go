// Package funcack maps EDI 997 transaction bodies into the
// FunctionalAcknowledgment domain model.
package funcack

import (
	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/core/ports/driven"
	"github.com/tradewire-labs/edix/internal/mappers"
)

// Ensure Mapper implements the interface.
var _ driven.Mapper = (*Mapper)(nil)

// Mapper builds FunctionalAcknowledgment bodies from 997 segments.
type Mapper struct{}

// New creates a new 997 mapper.
func New() *Mapper {
	return &Mapper{}
}

// Code returns the transaction-set code this mapper handles.
func (m *Mapper) Code() string {
	return "997"
}

// Map folds the transaction-body segments into a
// FunctionalAcknowledgment. AK101 (the acknowledged functional id
// code) is the only required field. Each AK2 opens one transaction-set
// response whose disposition arrives on the following AK5.
func (m *Mapper) Map(segments []domain.Segment) (domain.ParsedMessage, error) {
	ack := &domain.FunctionalAcknowledgment{}
	open := -1 // index of the AK2 awaiting its AK5
	sawAK1 := false

	for _, seg := range segments {
		switch seg.ID {
		case "AK1":
			sawAK1 = true
			ack.FunctionalIDCode = seg.Element(1)
			ack.GroupControlNumber = seg.Element(2)

		case "AK2":
			ack.TransactionSetAcks = append(ack.TransactionSetAcks, domain.TransactionSetAck{
				TransactionSetID: seg.Element(1),
				ControlNumber:    seg.Element(2),
			})
			open = len(ack.TransactionSetAcks) - 1

		case "AK5":
			if open >= 0 {
				ack.TransactionSetAcks[open].AckCode = seg.Element(1)
				open = -1
			}

		case "AK9":
			ack.GroupAckCode = seg.Element(1)
			ack.TransactionSetsIncluded = mappers.ParseInt(seg.Element(2))
			ack.TransactionSetsReceived = mappers.ParseInt(seg.Element(3))
			ack.TransactionSetsAccepted = mappers.ParseInt(seg.Element(4))
		}
	}

	if !sawAK1 {
		return domain.ParsedMessage{}, &domain.MappingError{Field: "functional_id_code", Reason: "AK1 segment not found"}
	}
	if ack.FunctionalIDCode == "" {
		return domain.ParsedMessage{}, &domain.MappingError{Field: "functional_id_code", Reason: "AK101 is empty"}
	}

	return domain.NewFuncAckMessage(ack), nil
}
