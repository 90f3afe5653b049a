package stock

import (
	"testing"
	"time"

	"go-pharmacy-inventory/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShortageCost_Scenario(t *testing.T) {
	p := prod("Vitamin C 1000mg", 80, 100, 15000, "2026-03-20")

	assert.Equal(t, 20, ShortageUnits(p))
	assert.Equal(t, int64(300000), ShortageCost(p))
}

func TestShortageCost_NeverNegative(t *testing.T) {
	p := prod("plenty", 500, 100, 5000, "2026-03-20")
	assert.Equal(t, 0, ShortageUnits(p))
	assert.Equal(t, int64(0), ShortageCost(p))
}

func TestValuation(t *testing.T) {
	med := prod("med", 500, 100, 5000, "2026-01-01")
	sup := prod("sup", 80, 100, 15000, "2026-01-01")
	sup.Category = model.CategorySupplement
	catalog := []model.Product{med, sup}

	assert.Equal(t, int64(2500000), Valuation(med))
	assert.Equal(t, int64(3700000), TotalValuation(catalog))
	assert.Equal(t, int64(2500000), CategoryValuation(catalog, model.CategoryMedicine))
	assert.Equal(t, int64(1200000), CategoryValuation(catalog, model.CategorySupplement))
	assert.Equal(t, int64(0), TotalValuation(nil))
}

func TestTotalShortageCost_OnlyLowStock(t *testing.T) {
	catalog := []model.Product{
		prod("low", 80, 100, 15000, "2026-01-01"),
		prod("at-threshold", 100, 100, 9000, "2026-01-01"),
		prod("fine", 500, 100, 5000, "2026-01-01"),
	}
	assert.Equal(t, int64(300000), TotalShortageCost(catalog))
}

func TestCategoryBreakdown_IncludesEmptyCategories(t *testing.T) {
	catalog := []model.Product{
		prod("a", 10, 1, 100, "2026-01-01"),
		prod("b", 5, 1, 200, "2026-01-01"),
	}

	got := CategoryBreakdown(catalog)

	require.Len(t, got, 2)
	assert.Equal(t, CategoryTotals{Category: model.CategoryMedicine, Products: 2, Quantity: 15, Valuation: 2000}, got[0])
	assert.Equal(t, CategoryTotals{Category: model.CategorySupplement}, got[1])
}

func TestDaysUntilExpiry_RoundsUp(t *testing.T) {
	tests := []struct {
		expiry string
		want   int
	}{
		{"2025-06-16", 1},  // 9.5 hours away
		{"2025-06-17", 2},  // 33.5 hours away
		{"2025-09-15", 92}, // three months
		{"2025-06-15", 0},  // today, 14.5 hours ago
		{"2025-06-14", -1},
	}
	for _, tt := range tests {
		t.Run(tt.expiry, func(t *testing.T) {
			assert.Equal(t, tt.want, DaysUntilExpiry(prod("p", 1, 1, 1, tt.expiry), refNow))
		})
	}
}

func TestDaysUntilExpiry_AtMidnightIsExact(t *testing.T) {
	midnight := time.Date(2025, time.June, 15, 0, 0, 0, 0, wib)
	assert.Equal(t, 3, DaysUntilExpiry(prod("p", 1, 1, 1, "2025-06-18"), midnight))
}

func TestSummarize(t *testing.T) {
	txs := []model.Transaction{
		{ID: "TRX-003", Type: model.TxOutgoing, Quantity: 20, TotalAmount: 300000},
		{ID: "TRX-002", Type: model.TxOutgoing, Quantity: 50, TotalAmount: 250000},
		{ID: "TRX-001", Type: model.TxIncoming, Quantity: 200, TotalAmount: 1000000},
	}

	s := Summarize(txs)

	assert.Equal(t, Rollup{Count: 3, Amount: 1550000}, s.Total)
	assert.Equal(t, Rollup{Count: 1, Amount: 1000000}, s.Incoming)
	assert.Equal(t, Rollup{Count: 2, Amount: 550000}, s.Outgoing)
	assert.Equal(t, TransactionSummary{}, Summarize(nil))
}
