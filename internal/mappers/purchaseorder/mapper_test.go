package purchaseorder

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tradewire-labs/edix/internal/core/domain"
)

func seg(id string, elements ...string) domain.Segment {
	return domain.Segment{ID: id, Elements: elements}
}

func TestNew(t *testing.T) {
	m := New()
	require.NotNil(t, m)
	assert.Equal(t, "850", m.Code())
}

func TestMap_MinimalPurchaseOrder(t *testing.T) {
	body := []domain.Segment{
		seg("BEG", "00", "SA", "PO123456", "", "20210101"),
		seg("PO1", "1", "10", "EA", "25.50", "", "VP", "SKU12345", "PD", "Widget A"),
	}

	msg, err := New().Map(body)
	require.NoError(t, err)
	require.Equal(t, domain.KindPurchaseOrder, msg.Kind())

	po := msg.PurchaseOrder()
	require.NotNil(t, po)
	assert.Equal(t, "PO123456", po.PONumber)
	assert.Equal(t, "00", po.PurposeCode)
	assert.Equal(t, "SA", po.TypeCode)
	assert.Equal(t, "20210101", po.PODate)

	require.Len(t, po.LineItems, 1)
	line := po.LineItems[0]
	assert.Equal(t, "1", line.LineNumber)
	assert.Equal(t, 10.0, line.QuantityOrdered.Value)
	assert.Equal(t, "EA", line.QuantityOrdered.UnitOfMeasure)
	assert.Equal(t, 25.50, line.UnitPrice.Value)
	assert.Equal(t, "SKU12345", line.Product.ProductID)
	assert.Equal(t, "VP", line.Product.IDQualifier)
	assert.Equal(t, "Widget A", line.Product.Description)
}

func TestMap_LineItemCountMatchesSource(t *testing.T) {
	body := []domain.Segment{seg("BEG", "00", "SA", "PO1")}
	for i := 0; i < 5; i++ {
		body = append(body, seg("PO1", "1", "2", "EA", "1.00"))
	}

	msg, err := New().Map(body)
	require.NoError(t, err)
	assert.Len(t, msg.PurchaseOrder().LineItems, 5)
}

func TestMap_PartiesWithAddresses(t *testing.T) {
	body := []domain.Segment{
		seg("BEG", "00", "SA", "PO42"),
		seg("N1", "BY", "Acme Corp", "92", "0001"),
		seg("N3", "123 Main St", "Suite 4"),
		seg("N4", "Springfield", "IL", "62704", "US"),
		seg("PER", "BD", "Jane Smith", "TE", "5551230000", "EM", "jane@acme.example"),
		seg("N1", "ST", "Acme Warehouse"),
		seg("N4", "Peoria", "IL", "61602"),
		seg("PO1", "1", "1", "EA", "9.99"),
	}

	msg, err := New().Map(body)
	require.NoError(t, err)
	po := msg.PurchaseOrder()

	require.NotNil(t, po.Buyer)
	assert.Equal(t, "Acme Corp", po.Buyer.Name)
	assert.Equal(t, "0001", po.Buyer.IdentificationCode)
	assert.Equal(t, "123 Main St", po.Buyer.Address.Street1)
	assert.Equal(t, "Suite 4", po.Buyer.Address.Street2)
	assert.Equal(t, "Springfield", po.Buyer.Address.City)
	assert.Equal(t, "62704", po.Buyer.Address.PostalCode)
	assert.Equal(t, "Jane Smith", po.Buyer.Contact.Name)
	assert.Equal(t, "5551230000", po.Buyer.Contact.Phone)
	assert.Equal(t, "jane@acme.example", po.Buyer.Contact.Email)

	require.NotNil(t, po.ShipTo)
	assert.Equal(t, "Acme Warehouse", po.ShipTo.Name)
	assert.Equal(t, "Peoria", po.ShipTo.Address.City)

	assert.Nil(t, po.Seller)
	assert.Nil(t, po.BillTo)
}

func TestMap_ExtendedPriceAndTrailer(t *testing.T) {
	body := []domain.Segment{
		seg("BEG", "00", "SA", "PO7"),
		seg("REF", "DP", "038"),
		seg("PO1", "1", "10", "EA", "25.50"),
		seg("AMT", "1", "255.00"),
		seg("PO1", "2", "3", "EA", "5.00"),
		seg("CTT", "2"),
	}

	msg, err := New().Map(body)
	require.NoError(t, err)
	po := msg.PurchaseOrder()

	require.Len(t, po.LineItems, 2)
	assert.True(t, po.LineItems[0].HasExtendedPrice)
	assert.Equal(t, 255.00, po.LineItems[0].ExtendedPrice)
	assert.False(t, po.LineItems[1].HasExtendedPrice)
	assert.Equal(t, 2, po.LineItemCount)

	require.Len(t, po.References, 1)
	assert.Equal(t, "DP", po.References[0].Qualifier)
}

func TestMap_MissingBEGFails(t *testing.T) {
	body := []domain.Segment{seg("PO1", "1", "10", "EA", "25.50")}

	msg, err := New().Map(body)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMapping)
	assert.True(t, msg.IsZero())

	var me *domain.MappingError
	require.ErrorAs(t, err, &me)
	assert.Equal(t, "po_number", me.Field)
}

func TestMap_EmptyPONumberFails(t *testing.T) {
	body := []domain.Segment{seg("BEG", "00", "SA", "")}

	_, err := New().Map(body)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrMapping)
}
