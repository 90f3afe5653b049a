package stock

import (
	"time"

	"go-pharmacy-inventory/internal/model"

	"github.com/shopspring/decimal"
)

type LowStockAlert struct {
	model.Product
	Criticality     Level            `json:"criticality"`
	StockPercentage *decimal.Decimal `json:"stock_percentage,omitempty"`
	ShortageUnits   int              `json:"shortage_units"`
	ShortageCost    int64            `json:"shortage_cost"`
}

type ExpiryAlert struct {
	model.Product
	DaysUntilExpiry int `json:"days_until_expiry"`
}

// Alerts backs the alerts view and the dashboard badges.
type Alerts struct {
	LowStock          []LowStockAlert `json:"low_stock"`
	Expired           []ExpiryAlert   `json:"expired"`
	ExpiringSoon      []ExpiryAlert   `json:"expiring_soon"`
	CriticalCount     int             `json:"critical_count"`
	WarningCount      int             `json:"warning_count"`
	TotalShortageCost int64           `json:"total_shortage_cost"`
}

func BuildAlerts(products []model.Product, now time.Time) Alerts {
	c := Classify(products, now)
	a := Alerts{
		LowStock:     make([]LowStockAlert, 0, len(c.LowStock)),
		Expired:      make([]ExpiryAlert, 0, len(c.Expired)),
		ExpiringSoon: make([]ExpiryAlert, 0, len(c.ExpiringSoon)),
	}
	for _, p := range c.LowStock {
		alert := LowStockAlert{
			Product:       p,
			Criticality:   Criticality(p),
			ShortageUnits: ShortageUnits(p),
			ShortageCost:  ShortageCost(p),
		}
		if pct, ok := StockPercentage(p); ok {
			alert.StockPercentage = &pct
		}
		switch alert.Criticality {
		case LevelCritical:
			a.CriticalCount++
		case LevelWarning:
			a.WarningCount++
		}
		a.TotalShortageCost += alert.ShortageCost
		a.LowStock = append(a.LowStock, alert)
	}
	for _, p := range c.Expired {
		a.Expired = append(a.Expired, ExpiryAlert{Product: p, DaysUntilExpiry: DaysUntilExpiry(p, now)})
	}
	for _, p := range c.ExpiringSoon {
		a.ExpiringSoon = append(a.ExpiringSoon, ExpiryAlert{Product: p, DaysUntilExpiry: DaysUntilExpiry(p, now)})
	}
	return a
}
