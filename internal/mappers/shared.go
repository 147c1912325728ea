package mappers

import (
	"strconv"

	"github.com/tradewire-labs/edix/internal/core/domain"
)

// Qualifier codes shared by the PO1/IT1/LIN product id pairs.
const (
	QualifierVendorPart   = "VP"
	QualifierUPC          = "UP"
	QualifierBuyerPart    = "IN"
	QualifierPlainTextPD  = "PD"
	QualifierContactPhone = "TE"
	QualifierContactEmail = "EM"
)

// ParseFloat converts an element value, returning 0 for empty or
// malformed input. Mappers are lenient here: numeric sanity is the
// business-rule pass's concern, not the mapper's.
func ParseFloat(v string) float64 {
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0
	}
	return f
}

// ParseInt converts an element value, returning 0 for empty or
// malformed input.
func ParseInt(v string) int {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0
	}
	return n
}

// ProductFromPairs resolves trailing qualifier/value pairs (PO106+,
// IT106+, LIN02+) into a Product. The first product-id qualifier wins;
// a "PD" pair supplies the description.
func ProductFromPairs(seg domain.Segment, startPos int) domain.Product {
	var p domain.Product
	for pos := startPos; pos+1 <= len(seg.Elements); pos += 2 {
		qual := seg.Element(pos)
		val := seg.Element(pos + 1)
		if qual == "" || val == "" {
			continue
		}
		switch qual {
		case QualifierVendorPart, QualifierUPC, QualifierBuyerPart:
			if p.ProductID == "" {
				p.ProductID = val
				p.IDQualifier = qual
			}
		case QualifierPlainTextPD:
			if p.Description == "" {
				p.Description = val
			}
		}
	}
	return p
}

// PartyFold accumulates N1 loops: each N1 opens a party, and following
// N3/N4/PER segments attach to the most recently opened one.
type PartyFold struct {
	parties []*domain.Party
}

// Feed consumes one segment; non-party segments are ignored so callers
// can feed every segment of the fold.
func (f *PartyFold) Feed(seg domain.Segment) {
	switch seg.ID {
	case "N1":
		f.parties = append(f.parties, &domain.Party{
			EntityIdentifierCode:    seg.Element(1),
			Name:                    seg.Element(2),
			IdentificationQualifier: seg.Element(3),
			IdentificationCode:      seg.Element(4),
		})
	case "N3":
		if p := f.current(); p != nil {
			p.Address.Street1 = seg.Element(1)
			p.Address.Street2 = seg.Element(2)
		}
	case "N4":
		if p := f.current(); p != nil {
			p.Address.City = seg.Element(1)
			p.Address.State = seg.Element(2)
			p.Address.PostalCode = seg.Element(3)
			p.Address.Country = seg.Element(4)
		}
	case "PER":
		if p := f.current(); p != nil {
			p.Contact.Function = seg.Element(1)
			p.Contact.Name = seg.Element(2)
			f.contactDetail(p, seg.Element(3), seg.Element(4))
			f.contactDetail(p, seg.Element(5), seg.Element(6))
		}
	}
}

func (f *PartyFold) contactDetail(p *domain.Party, qual, val string) {
	switch qual {
	case QualifierContactPhone:
		p.Contact.Phone = val
	case QualifierContactEmail:
		p.Contact.Email = val
	}
}

func (f *PartyFold) current() *domain.Party {
	if len(f.parties) == 0 {
		return nil
	}
	return f.parties[len(f.parties)-1]
}

// ByCode returns the first party with the given N101 entity identifier
// code, or nil.
func (f *PartyFold) ByCode(code string) *domain.Party {
	for _, p := range f.parties {
		if p.EntityIdentifierCode == code {
			return p
		}
	}
	return nil
}

// Reference converts a REF segment into a ReferenceNumber.
func Reference(seg domain.Segment) domain.ReferenceNumber {
	return domain.ReferenceNumber{
		Qualifier: seg.Element(1),
		Value:     seg.Element(2),
	}
}
