package stock

import (
	"time"

	"go-pharmacy-inventory/internal/model"
)

// ReportKind selects the rows of a report.
type ReportKind string

const (
	ReportStock        ReportKind = "stock"
	ReportExpired      ReportKind = "expired"
	ReportExpiring     ReportKind = "expiring"
	ReportLowStock     ReportKind = "lowstock"
	ReportTransactions ReportKind = "transactions"
)

// ReportKinds lists every kind in menu order.
var ReportKinds = []ReportKind{ReportStock, ReportExpired, ReportExpiring, ReportLowStock, ReportTransactions}

func ParseReportKind(s string) (ReportKind, error) {
	switch k := ReportKind(s); k {
	case ReportStock, ReportExpired, ReportExpiring, ReportLowStock, ReportTransactions:
		return k, nil
	}
	return "", invalidParam("report", s, "stock, expired, expiring, lowstock or transactions")
}

type StockRow struct {
	Name        string         `json:"name"`
	Category    model.Category `json:"category"`
	Type        string         `json:"type"`
	Quantity    int            `json:"quantity"`
	Unit        string         `json:"unit"`
	Price       int64          `json:"price"`
	Valuation   int64          `json:"valuation"`
	Supplier    string         `json:"supplier"`
	ExpiryDate  model.Date     `json:"expiry_date"`
	BatchNumber string         `json:"batch_number"`
	StorageType string         `json:"storage_type"`
}

// ExpiryRow is used by both the expired and the expiring report.
type ExpiryRow struct {
	Name            string         `json:"name"`
	Category        model.Category `json:"category"`
	Quantity        int            `json:"quantity"`
	Unit            string         `json:"unit"`
	ExpiryDate      model.Date     `json:"expiry_date"`
	DaysUntilExpiry int            `json:"days_until_expiry"`
	Supplier        string         `json:"supplier"`
	BatchNumber     string         `json:"batch_number"`
}

type LowStockRow struct {
	Name         string         `json:"name"`
	Category     model.Category `json:"category"`
	CurrentStock int            `json:"current_stock"`
	MinimumStock int            `json:"minimum_stock"`
	Shortage     int            `json:"shortage"`
	ShortageCost int64          `json:"shortage_cost"`
	Criticality  Level          `json:"criticality"`
	Supplier     string         `json:"supplier"`
}

type TransactionRow struct {
	Date        model.Date            `json:"date"`
	Reference   string                `json:"reference"`
	Product     string                `json:"product"`
	Type        model.TransactionType `json:"type"`
	Quantity    int                   `json:"quantity"`
	Unit        string                `json:"unit"`
	TotalAmount int64                 `json:"total_amount"`
	Partner     string                `json:"partner"`
}

// ReportSummary carries the headline figures printed above every report.
type ReportSummary struct {
	TotalProducts     int                `json:"total_products"`
	TotalValuation    int64              `json:"total_valuation"`
	Categories        []CategoryTotals   `json:"categories"`
	LowStockCount     int                `json:"low_stock_count"`
	ExpiredCount      int                `json:"expired_count"`
	ExpiringSoonCount int                `json:"expiring_soon_count"`
	TotalShortageCost int64              `json:"total_shortage_cost"`
	Transactions      TransactionSummary `json:"transactions"` // restricted to Window
}

// Report is the computed content of one report kind. Only the row slice matching Kind
// is populated.
type Report struct {
	Kind         ReportKind       `json:"kind"`
	Window       Window           `json:"window"`
	GeneratedAt  time.Time        `json:"generated_at"`
	Summary      ReportSummary    `json:"summary"`
	Stock        []StockRow       `json:"stock,omitempty"`
	Expiry       []ExpiryRow      `json:"expiry,omitempty"`
	LowStock     []LowStockRow    `json:"low_stock,omitempty"`
	Transactions []TransactionRow `json:"transactions,omitempty"`
}

// BuildReport derives a report from catalog and ledger snapshots. The window applies to
// the transaction rows and the transaction summary; catalog reports are point-in-time.
func BuildReport(kind ReportKind, products []model.Product, transactions []model.Transaction, w Window, now time.Time) Report {
	c := Classify(products, now)
	windowed := FilterByWindow(transactions, w, now)

	r := Report{
		Kind:        kind,
		Window:      w,
		GeneratedAt: now,
		Summary: ReportSummary{
			TotalProducts:     len(products),
			TotalValuation:    TotalValuation(products),
			Categories:        CategoryBreakdown(products),
			LowStockCount:     len(c.LowStock),
			ExpiredCount:      len(c.Expired),
			ExpiringSoonCount: len(c.ExpiringSoon),
			TotalShortageCost: TotalShortageCost(products),
			Transactions:      Summarize(windowed),
		},
	}

	switch kind {
	case ReportStock:
		r.Stock = make([]StockRow, 0, len(products))
		for _, p := range products {
			r.Stock = append(r.Stock, StockRow{
				Name:        p.Name,
				Category:    p.Category,
				Type:        p.Type,
				Quantity:    p.Quantity,
				Unit:        p.Unit,
				Price:       p.Price,
				Valuation:   Valuation(p),
				Supplier:    p.Supplier,
				ExpiryDate:  p.ExpiryDate,
				BatchNumber: p.BatchNumber,
				StorageType: p.StorageType,
			})
		}
	case ReportExpired:
		r.Expiry = expiryRows(c.Expired, now)
	case ReportExpiring:
		r.Expiry = expiryRows(c.ExpiringSoon, now)
	case ReportLowStock:
		r.LowStock = make([]LowStockRow, 0, len(c.LowStock))
		for _, p := range c.LowStock {
			r.LowStock = append(r.LowStock, LowStockRow{
				Name:         p.Name,
				Category:     p.Category,
				CurrentStock: p.Quantity,
				MinimumStock: p.MinStock,
				Shortage:     ShortageUnits(p),
				ShortageCost: ShortageCost(p),
				Criticality:  Criticality(p),
				Supplier:     p.Supplier,
			})
		}
	case ReportTransactions:
		r.Transactions = make([]TransactionRow, 0, len(windowed))
		for _, t := range windowed {
			r.Transactions = append(r.Transactions, TransactionRow{
				Date:        t.Date,
				Reference:   t.Reference,
				Product:     t.ProductName,
				Type:        t.Type,
				Quantity:    t.Quantity,
				Unit:        t.Unit,
				TotalAmount: t.TotalAmount,
				Partner:     t.Partner(),
			})
		}
	}
	return r
}

func expiryRows(products []model.Product, now time.Time) []ExpiryRow {
	rows := make([]ExpiryRow, 0, len(products))
	for _, p := range products {
		rows = append(rows, ExpiryRow{
			Name:            p.Name,
			Category:        p.Category,
			Quantity:        p.Quantity,
			Unit:            p.Unit,
			ExpiryDate:      p.ExpiryDate,
			DaysUntilExpiry: DaysUntilExpiry(p, now),
			Supplier:        p.Supplier,
			BatchNumber:     p.BatchNumber,
		})
	}
	return rows
}
