package service

import (
	"context"
	"fmt"
	"time"

	"go-pharmacy-inventory/internal/repository"
	"go-pharmacy-inventory/internal/stock"
	"go-pharmacy-inventory/internal/ws"

	"go.uber.org/zap"
)

// AlertDigest is the compact alert summary pushed to dashboard clients.
type AlertDigest struct {
	LowStock          int   `json:"low_stock"`
	Critical          int   `json:"critical"`
	Warning           int   `json:"warning"`
	Expired           int   `json:"expired"`
	ExpiringSoon      int   `json:"expiring_soon"`
	TotalShortageCost int64 `json:"total_shortage_cost"`
}

func (d AlertDigest) Empty() bool {
	return d.LowStock == 0 && d.Expired == 0 && d.ExpiringSoon == 0
}

type AlertService interface {
	GetAlerts() (*stock.Alerts, error)
	Digest() AlertDigest
	// RunDigest publishes a digest every interval until ctx is done.
	RunDigest(ctx context.Context, interval time.Duration) error
}

type alertService struct {
	db    *repository.DB
	wsHub EventPublisher
	log   *zap.Logger
	now   func() time.Time
}

func NewAlertService(db *repository.DB, hub EventPublisher, cfg ServiceConfig) AlertService {
	cfg = cfg.withDefaults()
	if hub == nil {
		hub = nopPublisher{}
	}
	return &alertService{db: db, wsHub: hub, log: cfg.Logger.Named("alerts"), now: cfg.Now}
}

func (s *alertService) GetAlerts() (*stock.Alerts, error) {
	snap := s.db.Snapshot()
	alerts := stock.BuildAlerts(snap.Products, s.now())
	return &alerts, nil
}

func (s *alertService) Digest() AlertDigest {
	snap := s.db.Snapshot()
	a := stock.BuildAlerts(snap.Products, s.now())
	return AlertDigest{
		LowStock:          len(a.LowStock),
		Critical:          a.CriticalCount,
		Warning:           a.WarningCount,
		Expired:           len(a.Expired),
		ExpiringSoon:      len(a.ExpiringSoon),
		TotalShortageCost: a.TotalShortageCost,
	}
}

func (s *alertService) RunDigest(ctx context.Context, interval time.Duration) error {
	if interval <= 0 {
		return nil
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			d := s.Digest()
			if d.Empty() {
				continue
			}
			s.log.Debug("publishing alert digest", zap.Any("digest", d))
			s.wsHub.Publish(ws.Event{
				Type:    ws.EventAlertDigest,
				Message: fmt.Sprintf("%d low stock, %d expired, %d expiring soon", d.LowStock, d.Expired, d.ExpiringSoon),
				Data:    d,
			})
		}
	}
}
