package stock

import (
	"time"

	"go-pharmacy-inventory/internal/model"
)

// MovementPoint is one day of the stock movement chart.
type MovementPoint struct {
	Date     model.Date `json:"date"`
	Inbound  int        `json:"inbound"`
	Outbound int        `json:"outbound"`
}

// StockMovement aggregates quantities per day for the last days days (today included),
// oldest first. Days without transactions are present with zero totals.
func StockMovement(transactions []model.Transaction, days int, now time.Time) []MovementPoint {
	if days <= 0 {
		return []MovementPoint{}
	}
	today := model.DateOf(now)
	start := today.AddDays(-(days - 1))

	points := make([]MovementPoint, days)
	for i := range points {
		points[i].Date = start.AddDays(i)
	}
	for _, t := range transactions {
		if t.Date.Before(start) || t.Date.After(today) {
			continue
		}
		i := int(t.Date.In(time.UTC).Sub(start.In(time.UTC)).Hours() / 24)
		switch t.Type {
		case model.TxIncoming:
			points[i].Inbound += t.Quantity
		case model.TxOutgoing:
			points[i].Outbound += t.Quantity
		}
	}
	return points
}
