package services

import (
	"fmt"

	"github.com/tradewire-labs/edix/internal/core/domain"
	"github.com/tradewire-labs/edix/internal/core/ports/driven"
	"github.com/tradewire-labs/edix/internal/mappers/funcack"
	"github.com/tradewire-labs/edix/internal/mappers/invoice"
	"github.com/tradewire-labs/edix/internal/mappers/purchaseorder"
	"github.com/tradewire-labs/edix/internal/mappers/shipnotice"
)

// MessageTypeRegistry maps transaction-set codes to their descriptors
// and mappers. It is populated once at construction and never mutated
// afterwards, so lookups need no synchronization.
type MessageTypeRegistry struct {
	types   map[string]domain.MessageTypeDescriptor
	mappers map[string]driven.Mapper
	order   []string
}

// NewMessageTypeRegistry creates a registry with the built-in
// transaction-set types.
func NewMessageTypeRegistry() *MessageTypeRegistry {
	r := &MessageTypeRegistry{
		types:   make(map[string]domain.MessageTypeDescriptor),
		mappers: make(map[string]driven.Mapper),
	}
	r.registerBuiltinTypes()
	return r
}

func (r *MessageTypeRegistry) registerBuiltinTypes() {
	r.registerPurchaseOrder()
	r.registerInvoice()
	r.registerShipNotice()
	r.registerFuncAck()
}

func (r *MessageTypeRegistry) registerPurchaseOrder() {
	r.register(domain.MessageTypeDescriptor{
		Code:        "850",
		Name:        "Purchase Order",
		Description: "Buyer-to-seller order with line items, parties, and terms",
		RequiredSegments: []string{
			"ISA", "GS", "ST", "BEG", "SE", "GE", "IEA",
		},
		OptionalSegments: []string{
			"CUR", "REF", "PER", "DTM", "N1", "N3", "N4",
			"PO1", "PID", "AMT", "CTT",
		},
	}, purchaseorder.New())
}

func (r *MessageTypeRegistry) registerInvoice() {
	r.register(domain.MessageTypeDescriptor{
		Code:        "810",
		Name:        "Invoice",
		Description: "Seller-to-buyer invoice with charges and payment terms",
		RequiredSegments: []string{
			"ISA", "GS", "ST", "BIG", "SE", "GE", "IEA",
		},
		OptionalSegments: []string{
			"CUR", "REF", "PER", "DTM", "N1", "N3", "N4",
			"IT1", "PID", "AMT", "TDS", "CTT",
		},
	}, invoice.New())
}

func (r *MessageTypeRegistry) registerShipNotice() {
	r.register(domain.MessageTypeDescriptor{
		Code:        "856",
		Name:        "Advance Ship Notice",
		Description: "Shipment contents and hierarchy sent ahead of delivery",
		RequiredSegments: []string{
			"ISA", "GS", "ST", "BSN", "SE", "GE", "IEA",
		},
		OptionalSegments: []string{
			"HL", "TD1", "TD5", "REF", "DTM", "PRF", "MAN",
			"LIN", "SN1", "PID", "N1", "N3", "N4", "CTT",
		},
		Hierarchical: true,
	}, shipnotice.New())
}

func (r *MessageTypeRegistry) registerFuncAck() {
	r.register(domain.MessageTypeDescriptor{
		Code:        "997",
		Name:        "Functional Acknowledgment",
		Description: "Receipt and syntax disposition for a functional group",
		RequiredSegments: []string{
			"ISA", "GS", "ST", "AK1", "SE", "GE", "IEA",
		},
		OptionalSegments: []string{
			"AK2", "AK3", "AK4", "AK5", "AK9",
		},
	}, funcack.New())
}

func (r *MessageTypeRegistry) register(desc domain.MessageTypeDescriptor, mapper driven.Mapper) {
	r.types[desc.Code] = desc
	r.mappers[desc.Code] = mapper
	r.order = append(r.order, desc.Code)
}

// Resolve returns the descriptor for a transaction-set code, or
// ErrUnsupportedType when the code is not registered.
func (r *MessageTypeRegistry) Resolve(code string) (domain.MessageTypeDescriptor, error) {
	desc, ok := r.types[code]
	if !ok {
		return domain.MessageTypeDescriptor{}, fmt.Errorf("message type %q: %w", code, domain.ErrUnsupportedType)
	}
	return desc, nil
}

// Mapper returns the mapper for a transaction-set code, or
// ErrUnsupportedType when the code is not registered.
func (r *MessageTypeRegistry) Mapper(code string) (driven.Mapper, error) {
	m, ok := r.mappers[code]
	if !ok {
		return nil, fmt.Errorf("message type %q: %w", code, domain.ErrUnsupportedType)
	}
	return m, nil
}

// List returns the registered descriptors in registration order.
func (r *MessageTypeRegistry) List() []domain.MessageTypeDescriptor {
	out := make([]domain.MessageTypeDescriptor, 0, len(r.order))
	for _, code := range r.order {
		out = append(out, r.types[code])
	}
	return out
}
