// Package stock derives alert and reporting views from catalog and ledger snapshots.
// Every function is pure: it reads its arguments, keeps no state and is safe to call
// repeatedly on the same input.
package stock

import (
	"time"

	"go-pharmacy-inventory/internal/model"

	"github.com/shopspring/decimal"
)

const (
	// ExpiryAlertMonths is the expiring-soon alert horizon.
	ExpiryAlertMonths = 3
	// InlineExpiryFlagMonths is the horizon of the expiry flag on product listings.
	// Not the same window as ExpiryAlertMonths; keep them separate.
	InlineExpiryFlagMonths = 6
)

// Level is the criticality of a low-stock product.
type Level string

const (
	LevelCritical Level = "critical"
	LevelWarning  Level = "warning"
	LevelNormal   Level = "normal"
)

// Classification holds the three alert sets. A product may be in several.
type Classification struct {
	LowStock     []model.Product `json:"low_stock"`
	Expired      []model.Product `json:"expired"`
	ExpiringSoon []model.Product `json:"expiring_soon"`
}

// Classify partitions the catalog into alert sets as of now, keeping catalog order.
func Classify(products []model.Product, now time.Time) Classification {
	c := Classification{
		LowStock:     []model.Product{},
		Expired:      []model.Product{},
		ExpiringSoon: []model.Product{},
	}
	for _, p := range products {
		if IsLowStock(p) {
			c.LowStock = append(c.LowStock, p)
		}
		if IsExpired(p, now) {
			c.Expired = append(c.Expired, p)
		}
		if IsExpiringSoon(p, now) {
			c.ExpiringSoon = append(c.ExpiringSoon, p)
		}
	}
	return c
}

// IsLowStock reports quantity <= minStock.
func IsLowStock(p model.Product) bool {
	return p.Quantity <= p.MinStock
}

// IsExpired compares dates only; the time of day of now is ignored.
func IsExpired(p model.Product, now time.Time) bool {
	return p.ExpiryDate.Before(model.DateOf(now))
}

// IsExpiringSoon reports today < expiry <= today + ExpiryAlertMonths.
func IsExpiringSoon(p model.Product, now time.Time) bool {
	today := model.DateOf(now)
	horizon := today.AddMonths(ExpiryAlertMonths)
	return p.ExpiryDate.After(today) && !p.ExpiryDate.After(horizon)
}

// HasExpiryFlag drives the inline listing flag: expiry <= today + InlineExpiryFlagMonths.
// Already expired products are flagged as well.
func HasExpiryFlag(p model.Product, now time.Time) bool {
	horizon := model.DateOf(now).AddMonths(InlineExpiryFlagMonths)
	return !p.ExpiryDate.After(horizon)
}

// Criticality grades quantity/minStock: <= 0.5 critical, <= 1 warning, else normal.
// A zero minStock means no reorder threshold, so the product is always normal.
func Criticality(p model.Product) Level {
	if p.MinStock <= 0 {
		return LevelNormal
	}
	switch {
	case 2*p.Quantity <= p.MinStock:
		return LevelCritical
	case p.Quantity <= p.MinStock:
		return LevelWarning
	default:
		return LevelNormal
	}
}

// StockPercentage is quantity/minStock*100 rounded to one decimal place.
// ok is false when minStock is zero.
func StockPercentage(p model.Product) (pct decimal.Decimal, ok bool) {
	if p.MinStock <= 0 {
		return decimal.Zero, false
	}
	return decimal.NewFromInt(int64(p.Quantity)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(p.MinStock))).
		Round(1), true
}
