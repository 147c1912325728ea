// Package invoice maps EDI 810 transaction bodies into the Invoice
// domain model.
package invoice

import (
	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/core/ports/driven"
	"github.com/tradewire-labs/edix/internal/mappers"
)

// Ensure Mapper implements the interface.
var _ driven.Mapper = (*Mapper)(nil)

// Mapper builds Invoice bodies from 810 segments.
type Mapper struct{}

// New creates a new 810 mapper.
func New() *Mapper {
	return &Mapper{}
}

// Code returns the transaction-set code this mapper handles.
func (m *Mapper) Code() string {
	return "810"
}

// Map folds the transaction-body segments into an Invoice. BIG02 (the
// invoice number) is the only required field.
func (m *Mapper) Map(segments []domain.Segment) (domain.ParsedMessage, error) {
	inv := &domain.Invoice{}
	var parties mappers.PartyFold
	var lastLine *domain.InvoiceLineItem
	sawBIG := false

	for _, seg := range segments {
		switch seg.ID {
		case "BIG":
			sawBIG = true
			inv.InvoiceDate = seg.Element(1)
			inv.InvoiceNumber = seg.Element(2)
			inv.PONumber = seg.Element(4)

		case "REF":
			inv.References = append(inv.References, mappers.Reference(seg))

		case "IT1":
			inv.LineItems = append(inv.LineItems, domain.InvoiceLineItem{
				LineNumber: seg.Element(1),
				QuantityInvoiced: domain.Quantity{
					Value:         mappers.ParseFloat(seg.Element(2)),
					UnitOfMeasure: seg.Element(3),
				},
				UnitPrice: domain.Price{
					Value: mappers.ParseFloat(seg.Element(4)),
					Basis: seg.Element(5),
				},
				Product: mappers.ProductFromPairs(seg, 6),
			})
			lastLine = &inv.LineItems[len(inv.LineItems)-1]

		case "PID":
			if lastLine != nil && lastLine.Product.Description == "" {
				lastLine.Product.Description = seg.Element(5)
			}

		case "AMT":
			if lastLine != nil && seg.Element(1) == "1" {
				lastLine.ExtendedPrice = mappers.ParseFloat(seg.Element(2))
				lastLine.HasExtendedPrice = true
			}

		case "TDS":
			// TDS01 carries the invoice total with two implied decimals.
			inv.Totals = domain.MonetaryAmounts{
				TotalAmount: mappers.ParseFloat(seg.Element(1)) / 100,
				HasTotal:    seg.Element(1) != "",
			}

		case "CTT":
			inv.LineItemCount = mappers.ParseInt(seg.Element(1))

		default:
			parties.Feed(seg)
		}
	}

	if !sawBIG {
		return domain.ParsedMessage{}, &domain.MappingError{Field: "invoice_number", Reason: "BIG segment not found"}
	}
	if inv.InvoiceNumber == "" {
		return domain.ParsedMessage{}, &domain.MappingError{Field: "invoice_number", Reason: "BIG02 is empty"}
	}

	inv.BillTo = parties.ByCode("BT")
	inv.RemitTo = parties.ByCode("RE")
	inv.ShipFrom = parties.ByCode("SF")
	inv.ShipTo = parties.ByCode("ST")

	return domain.NewInvoiceMessage(inv), nil
}
