// Package purchaseorder maps EDI 850 transaction bodies into the
// PurchaseOrder domain model.
package purchaseorder

import (
	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/core/ports/driven"
	"github.com/tradewire-labs/edix/internal/mappers"
)

// Ensure Mapper implements the interface.
var _ driven.Mapper = (*Mapper)(nil)

// Mapper builds PurchaseOrder bodies from 850 segments.
type Mapper struct{}

// New creates a new 850 mapper.
func New() *Mapper {
	return &Mapper{}
}

// Code returns the transaction-set code this mapper handles.
func (m *Mapper) Code() string {
	return "850"
}

// Map folds the transaction-body segments into a PurchaseOrder.
// BEG03 (the PO number) is the only required field; everything else is
// left absent when its source segment is missing.
func (m *Mapper) Map(segments []domain.Segment) (domain.ParsedMessage, error) {
	po := &domain.PurchaseOrder{}
	var parties mappers.PartyFold
	var lastLine *domain.PurchaseOrderLineItem
	sawBEG := false

	for _, seg := range segments {
		switch seg.ID {
		case "BEG":
			sawBEG = true
			po.PurposeCode = seg.Element(1)
			po.TypeCode = seg.Element(2)
			po.PONumber = seg.Element(3)
			po.PODate = seg.Element(5)

		case "REF":
			po.References = append(po.References, mappers.Reference(seg))

		case "PO1":
			po.LineItems = append(po.LineItems, domain.PurchaseOrderLineItem{
				LineNumber: seg.Element(1),
				QuantityOrdered: domain.Quantity{
					Value:         mappers.ParseFloat(seg.Element(2)),
					UnitOfMeasure: seg.Element(3),
				},
				UnitPrice: domain.Price{
					Value: mappers.ParseFloat(seg.Element(4)),
					Basis: seg.Element(5),
				},
				Product: mappers.ProductFromPairs(seg, 6),
			})
			lastLine = &po.LineItems[len(po.LineItems)-1]

		case "PID":
			// PID*F****<description> enriches the open line when the
			// qualifier pairs did not carry one.
			if lastLine != nil && lastLine.Product.Description == "" {
				lastLine.Product.Description = seg.Element(5)
			}

		case "AMT":
			if lastLine != nil && seg.Element(1) == "1" {
				lastLine.ExtendedPrice = mappers.ParseFloat(seg.Element(2))
				lastLine.HasExtendedPrice = true
			}

		case "CTT":
			po.LineItemCount = mappers.ParseInt(seg.Element(1))

		default:
			parties.Feed(seg)
		}
	}

	if !sawBEG {
		return domain.ParsedMessage{}, &domain.MappingError{Field: "po_number", Reason: "BEG segment not found"}
	}
	if po.PONumber == "" {
		return domain.ParsedMessage{}, &domain.MappingError{Field: "po_number", Reason: "BEG03 is empty"}
	}

	po.Buyer = parties.ByCode("BY")
	po.Seller = parties.ByCode("SE")
	po.ShipTo = parties.ByCode("ST")
	po.BillTo = parties.ByCode("BT")

	return domain.NewPurchaseOrderMessage(po), nil
}
