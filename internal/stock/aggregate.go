package stock

import (
	"math"
	"time"

	"go-pharmacy-inventory/internal/model"
)

// Valuation is quantity * price of a single product.
func Valuation(p model.Product) int64 {
	return int64(p.Quantity) * p.Price
}

func TotalValuation(products []model.Product) int64 {
	var total int64
	for _, p := range products {
		total += Valuation(p)
	}
	return total
}

// CategoryValuation sums Valuation over products of one category.
func CategoryValuation(products []model.Product, category model.Category) int64 {
	var total int64
	for _, p := range products {
		if p.Category == category {
			total += Valuation(p)
		}
	}
	return total
}

// ShortageUnits is the quantity needed to get back to minStock, never negative.
func ShortageUnits(p model.Product) int {
	return max(0, p.MinStock-p.Quantity)
}

// ShortageCost is the reorder cost of ShortageUnits at the current price.
func ShortageCost(p model.Product) int64 {
	return int64(ShortageUnits(p)) * p.Price
}

// TotalShortageCost sums ShortageCost over low-stock products.
func TotalShortageCost(products []model.Product) int64 {
	var total int64
	for _, p := range products {
		if IsLowStock(p) {
			total += ShortageCost(p)
		}
	}
	return total
}

// DaysUntilExpiry is ceil((expiry - now) in days), with expiry taken as midnight in
// now's location. Negative for expired products.
func DaysUntilExpiry(p model.Product, now time.Time) int {
	diff := p.ExpiryDate.In(now.Location()).Sub(now)
	return int(math.Ceil(diff.Hours() / 24))
}

// CategoryTotals is the per-category rollup shown on the dashboard.
type CategoryTotals struct {
	Category  model.Category `json:"category"`
	Products  int            `json:"products"`
	Quantity  int            `json:"quantity"`
	Valuation int64          `json:"valuation"`
}

// CategoryBreakdown returns one entry per known category, including empty ones.
func CategoryBreakdown(products []model.Product) []CategoryTotals {
	out := make([]CategoryTotals, 0, len(model.Categories))
	for _, category := range model.Categories {
		totals := CategoryTotals{Category: category}
		for _, p := range products {
			if p.Category != category {
				continue
			}
			totals.Products++
			totals.Quantity += p.Quantity
			totals.Valuation += Valuation(p)
		}
		out = append(out, totals)
	}
	return out
}

// Rollup is a count and monetary total.
type Rollup struct {
	Count  int   `json:"count"`
	Amount int64 `json:"amount"`
}

// TransactionSummary partitions a set of transactions by type.
type TransactionSummary struct {
	Total    Rollup `json:"total"`
	Incoming Rollup `json:"incoming"`
	Outgoing Rollup `json:"outgoing"`
}

func Summarize(transactions []model.Transaction) TransactionSummary {
	var s TransactionSummary
	for _, t := range transactions {
		s.Total.Count++
		s.Total.Amount += t.TotalAmount
		switch t.Type {
		case model.TxIncoming:
			s.Incoming.Count++
			s.Incoming.Amount += t.TotalAmount
		case model.TxOutgoing:
			s.Outgoing.Count++
			s.Outgoing.Amount += t.TotalAmount
		}
	}
	return s
}
