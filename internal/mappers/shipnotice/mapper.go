// Package shipnotice maps EDI 856 transaction bodies into the
// AdvanceShipNotice domain model, reconstructing the hierarchical HL
// loop (shipment, order, pack, item levels).
package shipnotice

import (
	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/core/ports/driven"
	"github.com/tradewire-labs/edix/internal/mappers"
)

// Ensure Mapper implements the interface.
var _ driven.Mapper = (*Mapper)(nil)

// Mapper builds AdvanceShipNotice bodies from 856 segments.
type Mapper struct{}

// New creates a new 856 mapper.
func New() *Mapper {
	return &Mapper{}
}

// Code returns the transaction-set code this mapper handles.
func (m *Mapper) Code() string {
	return "856"
}

// frame is one open HL loop. Frames live in a flat ordered slice with
// parent-index back-references; the hierarchy is never built with
// recursion or heap-linked parents, so pathological nesting depth
// cannot exhaust the stack.
type frame struct {
	id        string
	parentIdx int // index into the frame slice, -1 for the root
	level     domain.ShipmentLevelCode

	order *domain.ShipmentOrder
	pack  *domain.ShipmentPack
	item  *domain.ShipmentItem
}

// Map folds the transaction-body segments into an AdvanceShipNotice.
// BSN02 (the shipment id) is the only required field.
//
// HL linkage: each HL names its own id (HL01) and its parent's id
// (HL02). A child attaches to the frame whose id matches HL02; when the
// link is absent or dangling it falls back to the most recently opened
// frame of the expected parent level, preserving sibling order either
// way.
func (m *Mapper) Map(segments []domain.Segment) (domain.ParsedMessage, error) {
	asn := &domain.AdvanceShipNotice{}
	var parties mappers.PartyFold
	var frames []frame
	sawBSN := false

	for _, seg := range segments {
		switch seg.ID {
		case "BSN":
			sawBSN = true
			asn.PurposeCode = seg.Element(1)
			asn.ShipmentID = seg.Element(2)
			asn.ShipmentDate = seg.Element(3)
			asn.ShipmentTime = seg.Element(4)

		case "REF":
			asn.References = append(asn.References, mappers.Reference(seg))

		case "HL":
			frames = append(frames, openFrame(frames, seg))

		case "TD1":
			if currentLevel(frames) == domain.LevelShipment {
				asn.Shipment.PackagingCode = seg.Element(1)
				asn.Shipment.LadingQuantity = mappers.ParseInt(seg.Element(2))
			}

		case "TD5":
			if currentLevel(frames) == domain.LevelShipment {
				asn.Shipment.CarrierCode = seg.Element(3)
				asn.Shipment.TransportMethod = seg.Element(4)
			}

		case "PRF":
			if f := current(frames); f != nil && f.order != nil {
				f.order.PONumber = seg.Element(1)
			}

		case "MAN":
			if f := current(frames); f != nil && f.pack != nil {
				f.pack.MarksAndNumbers = seg.Element(2)
			}

		case "LIN":
			if f := current(frames); f != nil && f.item != nil {
				f.item.Product = mappers.ProductFromPairs(seg, 2)
			}

		case "SN1":
			if f := current(frames); f != nil && f.item != nil {
				f.item.QuantityShipped = domain.Quantity{
					Value:         mappers.ParseFloat(seg.Element(2)),
					UnitOfMeasure: seg.Element(3),
				}
			}

		default:
			parties.Feed(seg)
		}
	}

	if !sawBSN {
		return domain.ParsedMessage{}, &domain.MappingError{Field: "shipment_id", Reason: "BSN segment not found"}
	}
	if asn.ShipmentID == "" {
		return domain.ParsedMessage{}, &domain.MappingError{Field: "shipment_id", Reason: "BSN02 is empty"}
	}

	assemble(asn, frames)

	asn.ShipFrom = parties.ByCode("SF")
	asn.ShipTo = parties.ByCode("ST")
	asn.Carrier = parties.ByCode("CA")

	return domain.NewShipNoticeMessage(asn), nil
}

// openFrame creates the frame for one HL segment, resolving its parent
// index from the HL02 linkage.
func openFrame(frames []frame, seg domain.Segment) frame {
	level := domain.ShipmentLevelCode(seg.Element(3))
	f := frame{
		id:        seg.Element(1),
		parentIdx: resolveParent(frames, seg.Element(2), level),
		level:     level,
	}
	switch level {
	case domain.LevelOrder:
		f.order = &domain.ShipmentOrder{}
	case domain.LevelPack:
		f.pack = &domain.ShipmentPack{}
	case domain.LevelItem:
		f.item = &domain.ShipmentItem{}
	}
	return f
}

// resolveParent finds the frame index a new HL attaches to: the frame
// whose id matches the HL02 link, or the most recently opened frame of
// the level the child is expected to nest under.
func resolveParent(frames []frame, parentID string, level domain.ShipmentLevelCode) int {
	if parentID != "" {
		for i := len(frames) - 1; i >= 0; i-- {
			if frames[i].id == parentID {
				return i
			}
		}
	}

	var want []domain.ShipmentLevelCode
	switch level {
	case domain.LevelOrder:
		want = []domain.ShipmentLevelCode{domain.LevelShipment}
	case domain.LevelPack:
		want = []domain.ShipmentLevelCode{domain.LevelOrder, domain.LevelShipment}
	case domain.LevelItem:
		want = []domain.ShipmentLevelCode{domain.LevelPack, domain.LevelOrder}
	default:
		return -1
	}
	for i := len(frames) - 1; i >= 0; i-- {
		for _, w := range want {
			if frames[i].level == w {
				return i
			}
		}
	}
	return -1
}

func current(frames []frame) *frame {
	if len(frames) == 0 {
		return nil
	}
	return &frames[len(frames)-1]
}

func currentLevel(frames []frame) domain.ShipmentLevelCode {
	if f := current(frames); f != nil {
		return f.level
	}
	// Shipment-level detail segments may precede any HL in degenerate
	// messages; treat them as shipment scope.
	return domain.LevelShipment
}

// assemble materializes the frame slice into the nested shipment
// structure. Finalizing one level at a time, leaves first, means every
// value copied into its parent is already complete, and iterating each
// level in frame order preserves sibling order.
func assemble(asn *domain.AdvanceShipNotice, frames []frame) {
	// Items into their parent pack or order.
	for i := range frames {
		f := &frames[i]
		if f.level != domain.LevelItem || f.item == nil || f.parentIdx < 0 {
			continue
		}
		switch parent := &frames[f.parentIdx]; parent.level {
		case domain.LevelPack:
			parent.pack.Items = append(parent.pack.Items, *f.item)
		case domain.LevelOrder:
			parent.order.Items = append(parent.order.Items, *f.item)
		}
	}

	// Packs into their parent order.
	for i := range frames {
		f := &frames[i]
		if f.level != domain.LevelPack || f.pack == nil || f.parentIdx < 0 {
			continue
		}
		if parent := &frames[f.parentIdx]; parent.level == domain.LevelOrder {
			parent.order.Packs = append(parent.order.Packs, *f.pack)
		}
	}

	// Orders into the shipment.
	for i := range frames {
		f := &frames[i]
		if f.level == domain.LevelOrder && f.order != nil {
			asn.Shipment.Orders = append(asn.Shipment.Orders, *f.order)
		}
	}
}
