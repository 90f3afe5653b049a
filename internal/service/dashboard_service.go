package service

import (
	"time"

	"go-pharmacy-inventory/internal/model"
	"go-pharmacy-inventory/internal/repository"
	"go-pharmacy-inventory/internal/stock"

	"go.uber.org/zap"
)

const (
	DefaultMovementDays = 7
	MaxMovementDays     = 90

	recentTransactionsLimit = 5
)

// DashboardStats is the headline block of the dashboard page.
type DashboardStats struct {
	TotalProducts      int                      `json:"total_products"`
	TotalQuantity      int                      `json:"total_quantity"`
	TotalValuation     int64                    `json:"total_valuation"`
	LowStockCount      int                      `json:"low_stock_count"`
	ExpiredCount       int                      `json:"expired_count"`
	ExpiringSoonCount  int                      `json:"expiring_soon_count"`
	TotalShortageCost  int64                    `json:"total_shortage_cost"`
	Categories         []stock.CategoryTotals   `json:"categories"`
	Transactions       stock.TransactionSummary `json:"transactions"`
	Today              stock.TransactionSummary `json:"today"`
	RecentTransactions []model.Transaction      `json:"recent_transactions"`
}

type DashboardService interface {
	GetStockMovement(days int) ([]stock.MovementPoint, error)
	GetDashboardStats() (*DashboardStats, error)
}

type dashboardService struct {
	db  *repository.DB
	log *zap.Logger
	now func() time.Time
}

func NewDashboardService(db *repository.DB, cfg ServiceConfig) DashboardService {
	cfg = cfg.withDefaults()
	return &dashboardService{db: db, log: cfg.Logger.Named("dashboard"), now: cfg.Now}
}

// GetStockMovement returns per-day inbound and outbound quantities, oldest first.
// days outside 1..MaxMovementDays is rejected.
func (s *dashboardService) GetStockMovement(days int) ([]stock.MovementPoint, error) {
	if days < 1 || days > MaxMovementDays {
		return nil, &model.ValidationError{
			Field:   "days",
			Tag:     "range",
			Message: "days must be between 1 and 90",
		}
	}
	snap := s.db.Snapshot()
	return stock.StockMovement(snap.Transactions, days, s.now()), nil
}

func (s *dashboardService) GetDashboardStats() (*DashboardStats, error) {
	now := s.now()
	snap := s.db.Snapshot()
	c := stock.Classify(snap.Products, now)

	totalQty := 0
	for _, p := range snap.Products {
		totalQty += p.Quantity
	}

	recent := snap.Transactions
	if len(recent) > recentTransactionsLimit {
		recent = recent[:recentTransactionsLimit]
	}

	stats := &DashboardStats{
		TotalProducts:      len(snap.Products),
		TotalQuantity:      totalQty,
		TotalValuation:     stock.TotalValuation(snap.Products),
		LowStockCount:      len(c.LowStock),
		ExpiredCount:       len(c.Expired),
		ExpiringSoonCount:  len(c.ExpiringSoon),
		TotalShortageCost:  stock.TotalShortageCost(snap.Products),
		Categories:         stock.CategoryBreakdown(snap.Products),
		Transactions:       stock.Summarize(snap.Transactions),
		Today:              stock.Summarize(stock.FilterByWindow(snap.Transactions, stock.WindowToday, now)),
		RecentTransactions: recent,
	}
	if stats.RecentTransactions == nil {
		stats.RecentTransactions = []model.Transaction{}
	}
	return stats, nil
}
