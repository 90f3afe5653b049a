package stock

import (
	"errors"
	"testing"

	"go-pharmacy-inventory/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowNames(rows []ProductRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Name)
	}
	return out
}

func listingCatalog() []model.Product {
	para := prod("Paracetamol 500mg", 500, 100, 5000, "2025-12-31")
	vit := prod("vitamin C 1000mg", 80, 100, 15000, "2026-03-20")
	vit.Category = model.CategorySupplement
	vit.Supplier = "PT Natura"
	amox := prod("Amoxicillin 500mg", 300, 150, 8000, "2025-08-15")
	amox.Supplier = "PT Kalbe Farma"
	amox.BatchNumber = "AMOX-2024-012"
	return []model.Product{para, vit, amox}
}

func TestListProducts_DefaultSortIsCaseInsensitiveName(t *testing.T) {
	rows := ListProducts(listingCatalog(), ProductQuery{}, refNow)
	assert.Equal(t, []string{"Amoxicillin 500mg", "Paracetamol 500mg", "vitamin C 1000mg"}, rowNames(rows))
}

func TestListProducts_SortDescending(t *testing.T) {
	byQty := ListProducts(listingCatalog(), ProductQuery{Sort: SortByQuantity}, refNow)
	assert.Equal(t, []string{"Paracetamol 500mg", "Amoxicillin 500mg", "vitamin C 1000mg"}, rowNames(byQty))

	byPrice := ListProducts(listingCatalog(), ProductQuery{Sort: SortByPrice}, refNow)
	assert.Equal(t, []string{"vitamin C 1000mg", "Amoxicillin 500mg", "Paracetamol 500mg"}, rowNames(byPrice))
}

func TestListProducts_SearchAndCategory(t *testing.T) {
	catalog := listingCatalog()

	assert.Equal(t, []string{"vitamin C 1000mg"}, rowNames(ListProducts(catalog, ProductQuery{Search: "VITAMIN"}, refNow)))
	assert.Equal(t, []string{"Amoxicillin 500mg"}, rowNames(ListProducts(catalog, ProductQuery{Search: "kalbe"}, refNow)))
	assert.Equal(t, []string{"Amoxicillin 500mg"}, rowNames(ListProducts(catalog, ProductQuery{Search: "amox-2024"}, refNow)))
	assert.Equal(t,
		[]string{"vitamin C 1000mg"},
		rowNames(ListProducts(catalog, ProductQuery{Category: model.CategorySupplement}, refNow)))
	assert.Empty(t, ListProducts(catalog, ProductQuery{Search: "insulin"}, refNow))
}

func TestListProducts_DerivedFlags(t *testing.T) {
	rows := ListProducts(listingCatalog(), ProductQuery{Search: "vitamin"}, refNow)
	require.Len(t, rows, 1)

	assert.Equal(t, int64(1200000), rows[0].Valuation)
	assert.True(t, rows[0].LowStock)
	assert.False(t, rows[0].ExpiryFlag, "2026-03-20 is more than six months away")

	rows = ListProducts(listingCatalog(), ProductQuery{Search: "amoxicillin"}, refNow)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].ExpiryFlag)
	assert.False(t, rows[0].LowStock)
}

func TestListProducts_DoesNotReorderInput(t *testing.T) {
	catalog := listingCatalog()
	ListProducts(catalog, ProductQuery{Sort: SortByPrice}, refNow)
	assert.Equal(t, "Paracetamol 500mg", catalog[0].Name)
}

func TestFilterTransactions(t *testing.T) {
	ledger := []model.Transaction{
		{ID: "TRX-003", ProductName: "Vitamin C 1000mg", Type: model.TxOutgoing, Reference: "INV-2024-046"},
		{ID: "TRX-002", ProductName: "Paracetamol 500mg", Type: model.TxOutgoing, Reference: "INV-2024-045"},
		{ID: "TRX-001", ProductName: "Paracetamol 500mg", Type: model.TxIncoming, Reference: "PO-2024-001"},
	}

	assert.Equal(t, []string{"TRX-003", "TRX-002", "TRX-001"}, ids(FilterTransactions(ledger, TransactionQuery{})))
	assert.Equal(t, []string{"TRX-001"}, ids(FilterTransactions(ledger, TransactionQuery{Type: model.TxIncoming})))
	assert.Equal(t, []string{"TRX-002", "TRX-001"}, ids(FilterTransactions(ledger, TransactionQuery{Search: "para"})))
	assert.Equal(t, []string{"TRX-003"}, ids(FilterTransactions(ledger, TransactionQuery{Search: "inv-2024-046"})))
	assert.Equal(t,
		[]string{"TRX-002"},
		ids(FilterTransactions(ledger, TransactionQuery{Type: model.TxOutgoing, Search: "paracetamol"})))
}

func TestParseQueryParams(t *testing.T) {
	c, err := ParseCategory("all")
	require.NoError(t, err)
	assert.Equal(t, model.Category(""), c)

	s, err := ParseSort("")
	require.NoError(t, err)
	assert.Equal(t, SortByName, s)

	tt, err := ParseTransactionType("outgoing")
	require.NoError(t, err)
	assert.Equal(t, model.TxOutgoing, tt)

	for _, err := range []error{
		func() error { _, err := ParseCategory("vaccine"); return err }(),
		func() error { _, err := ParseSort("expiry"); return err }(),
		func() error { _, err := ParseTransactionType("refund"); return err }(),
	} {
		require.Error(t, err)
		assert.True(t, errors.Is(err, model.ErrValidation))
	}
}
