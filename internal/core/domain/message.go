package domain

// Common value objects shared by all transaction-set bodies. They are
// flat bags of optional semantic fields with no behaviour; mappers fill
// them from raw element values and qualifier codes.

// Party is a trading partner named on an N1 loop.
type Party struct {
	// EntityIdentifierCode is the N101 qualifier ("BY" buyer, "SE"
	// seller, "ST" ship-to, ...).
	EntityIdentifierCode string

	// Name is N102.
	Name string

	// IdentificationQualifier and IdentificationCode are N103/N104
	// (e.g. "92" assigned by buyer).
	IdentificationQualifier string
	IdentificationCode      string

	// Address is filled from the N3/N4 segments following the N1.
	Address Address

	// Contact is filled from a PER segment following the N1.
	Contact Contact
}

// Address is the N3/N4 street and locality data for a party.
type Address struct {
	Street1    string
	Street2    string
	City       string
	State      string
	PostalCode string
	Country    string
}

// Contact is PER administrative contact data.
type Contact struct {
	// Function is PER01 ("BD" buyer contact, "IC" information contact).
	Function string
	Name     string
	Phone    string
	Email    string
}

// Product identifies one article on a line item.
type Product struct {
	// ProductID is the value whose qualifier was "VP"/"UP"/"IN" etc.
	ProductID string

	// IDQualifier is the qualifier that accompanied ProductID.
	IDQualifier string

	// Description is free text, from a "PD" qualifier pair or a PID
	// segment.
	Description string
}

// Quantity is a measured amount with its unit.
type Quantity struct {
	Value         float64
	UnitOfMeasure string
}

// Price is a monetary rate.
type Price struct {
	Value float64

	// Basis is the unit-price basis code when present (PO105).
	Basis string
}

// ReferenceNumber is one REF segment.
type ReferenceNumber struct {
	// Qualifier is REF01 ("PO" purchase order, "BM" bill of lading, ...).
	Qualifier string
	Value     string
}

// MonetaryAmounts collects document-level totals.
type MonetaryAmounts struct {
	// TotalAmount is the document total (TDS01 for invoices, in major
	// currency units).
	TotalAmount float64

	// HasTotal reports whether TotalAmount was present in the source.
	HasTotal bool
}

// PurchaseOrderLineItem is one PO1 loop of an 850.
type PurchaseOrderLineItem struct {
	LineNumber      string
	QuantityOrdered Quantity
	UnitPrice       Price
	Product         Product

	// ExtendedPrice is the line total from a following AMT segment.
	ExtendedPrice float64

	// HasExtendedPrice reports whether an AMT carried the line total.
	HasExtendedPrice bool
}

// PurchaseOrder is the typed body of an EDI 850.
type PurchaseOrder struct {
	// PONumber is BEG03 and is the only mandatory field.
	PONumber string

	// PurposeCode and TypeCode are BEG01/BEG02.
	PurposeCode string
	TypeCode    string

	// PODate is BEG05 in YYYYMMDD form.
	PODate string

	Buyer  *Party
	Seller *Party
	ShipTo *Party
	BillTo *Party

	References []ReferenceNumber
	LineItems  []PurchaseOrderLineItem

	// LineItemCount is CTT01 when a CTT trailer was present, else 0.
	LineItemCount int
}

// InvoiceLineItem is one IT1 loop of an 810.
type InvoiceLineItem struct {
	LineNumber       string
	QuantityInvoiced Quantity
	UnitPrice        Price
	Product          Product

	ExtendedPrice    float64
	HasExtendedPrice bool
}

// Invoice is the typed body of an EDI 810.
type Invoice struct {
	// InvoiceNumber is BIG02 and is the only mandatory field.
	InvoiceNumber string

	// InvoiceDate is BIG01 in YYYYMMDD form.
	InvoiceDate string

	// PONumber is BIG04, the purchase order being invoiced.
	PONumber string

	BillTo   *Party
	RemitTo  *Party
	ShipFrom *Party
	ShipTo   *Party

	References []ReferenceNumber
	LineItems  []InvoiceLineItem
	Totals     MonetaryAmounts

	LineItemCount int
}

// ShipmentLevelCode classifies one HL level of an 856.
type ShipmentLevelCode string

// HL03 level codes used by the 856 hierarchy.
const (
	LevelShipment ShipmentLevelCode = "S"
	LevelOrder    ShipmentLevelCode = "O"
	LevelPack     ShipmentLevelCode = "P"
	LevelItem     ShipmentLevelCode = "I"
)

// ShipmentItem is an item-level HL loop (LIN/SN1 data).
type ShipmentItem struct {
	Product         Product
	QuantityShipped Quantity
}

// ShipmentPack is a pack-level HL loop.
type ShipmentPack struct {
	// MarksAndNumbers is MAN02, typically the SSCC-18 carton label.
	MarksAndNumbers string

	Items []ShipmentItem
}

// ShipmentOrder is an order-level HL loop.
type ShipmentOrder struct {
	// PONumber is PRF01, the purchase order the shipment fulfils.
	PONumber string

	Packs []ShipmentPack

	// Items holds item loops attached directly to the order when the
	// sender skips the pack level.
	Items []ShipmentItem
}

// ShipmentDetail is the shipment-level HL loop content.
type ShipmentDetail struct {
	// PackagingCode and LadingQuantity come from TD1.
	PackagingCode  string
	LadingQuantity int

	// CarrierCode and TransportMethod come from TD5.
	CarrierCode     string
	TransportMethod string

	Orders []ShipmentOrder
}

// AdvanceShipNotice is the typed body of an EDI 856.
type AdvanceShipNotice struct {
	// ShipmentID is BSN02 and is the only mandatory field.
	ShipmentID string

	// PurposeCode is BSN01.
	PurposeCode string

	// ShipmentDate and ShipmentTime are BSN03/BSN04.
	ShipmentDate string
	ShipmentTime string

	ShipFrom *Party
	ShipTo   *Party
	Carrier  *Party

	References []ReferenceNumber
	Shipment   ShipmentDetail
}

// TransactionSetAck is one AK2/AK5 pair of a 997.
type TransactionSetAck struct {
	// TransactionSetID is AK201 (e.g. "850").
	TransactionSetID string

	// ControlNumber is AK202, the ST02 being acknowledged.
	ControlNumber string

	// AckCode is AK501 ("A" accepted, "R" rejected, "E" accepted with
	// errors).
	AckCode string
}

// FunctionalAcknowledgment is the typed body of an EDI 997.
type FunctionalAcknowledgment struct {
	// FunctionalIDCode is AK101, the GS01 of the acknowledged group.
	FunctionalIDCode string

	// GroupControlNumber is AK102, the GS06 being acknowledged.
	GroupControlNumber string

	TransactionSetAcks []TransactionSetAck

	// GroupAckCode is AK901.
	GroupAckCode string

	// TransactionSetsIncluded/Received/Accepted are AK902-AK904.
	TransactionSetsIncluded int
	TransactionSetsReceived int
	TransactionSetsAccepted int
}

// MessageKind discriminates the ParsedMessage union.
type MessageKind int

const (
	// KindNone means no typed body was produced.
	KindNone MessageKind = iota

	// KindPurchaseOrder holds a PurchaseOrder (850).
	KindPurchaseOrder

	// KindInvoice holds an Invoice (810).
	KindInvoice

	// KindShipNotice holds an AdvanceShipNotice (856).
	KindShipNotice

	// KindFuncAck holds a FunctionalAcknowledgment (997).
	KindFuncAck
)

func (k MessageKind) String() string {
	switch k {
	case KindPurchaseOrder:
		return "purchase_order"
	case KindInvoice:
		return "invoice"
	case KindShipNotice:
		return "advance_ship_notice"
	case KindFuncAck:
		return "functional_acknowledgment"
	default:
		return "none"
	}
}

// ParsedMessage is a tagged union over the four transaction-set bodies.
// Exactly one variant is populated, selected by Kind; the accessors
// return nil for every other variant. Constructing it through the
// New*Message functions keeps the invariant by construction.
type ParsedMessage struct {
	kind MessageKind

	purchaseOrder *PurchaseOrder
	invoice       *Invoice
	shipNotice    *AdvanceShipNotice
	funcAck       *FunctionalAcknowledgment
}

// NewPurchaseOrderMessage wraps a PurchaseOrder body.
func NewPurchaseOrderMessage(po *PurchaseOrder) ParsedMessage {
	return ParsedMessage{kind: KindPurchaseOrder, purchaseOrder: po}
}

// NewInvoiceMessage wraps an Invoice body.
func NewInvoiceMessage(inv *Invoice) ParsedMessage {
	return ParsedMessage{kind: KindInvoice, invoice: inv}
}

// NewShipNoticeMessage wraps an AdvanceShipNotice body.
func NewShipNoticeMessage(asn *AdvanceShipNotice) ParsedMessage {
	return ParsedMessage{kind: KindShipNotice, shipNotice: asn}
}

// NewFuncAckMessage wraps a FunctionalAcknowledgment body.
func NewFuncAckMessage(ack *FunctionalAcknowledgment) ParsedMessage {
	return ParsedMessage{kind: KindFuncAck, funcAck: ack}
}

// Kind reports which variant is populated.
func (m ParsedMessage) Kind() MessageKind { return m.kind }

// IsZero reports whether no body is present.
func (m ParsedMessage) IsZero() bool { return m.kind == KindNone }

// PurchaseOrder returns the 850 body, or nil for other kinds.
func (m ParsedMessage) PurchaseOrder() *PurchaseOrder {
	if m.kind != KindPurchaseOrder {
		return nil
	}
	return m.purchaseOrder
}

// Invoice returns the 810 body, or nil for other kinds.
func (m ParsedMessage) Invoice() *Invoice {
	if m.kind != KindInvoice {
		return nil
	}
	return m.invoice
}

// ShipNotice returns the 856 body, or nil for other kinds.
func (m ParsedMessage) ShipNotice() *AdvanceShipNotice {
	if m.kind != KindShipNotice {
		return nil
	}
	return m.shipNotice
}

// FuncAck returns the 997 body, or nil for other kinds.
func (m ParsedMessage) FuncAck() *FunctionalAcknowledgment {
	if m.kind != KindFuncAck {
		return nil
	}
	return m.funcAck
}

// Body returns the populated variant untyped, or nil. Meant for
// renderers that serialize whichever body is present; typed consumers
// should use the kind-specific accessors.
func (m ParsedMessage) Body() any {
	switch m.kind {
	case KindPurchaseOrder:
		return m.purchaseOrder
	case KindInvoice:
		return m.invoice
	case KindShipNotice:
		return m.shipNotice
	case KindFuncAck:
		return m.funcAck
	default:
		return nil
	}
}
