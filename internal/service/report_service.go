package service

import (
	"time"

	"go-pharmacy-inventory/internal/repository"
	"go-pharmacy-inventory/internal/stock"

	"go.uber.org/zap"
)

type ReportService interface {
	Generate(kind stock.ReportKind, window stock.Window) (*stock.Report, error)
}

type reportService struct {
	db  *repository.DB
	log *zap.Logger
	now func() time.Time
}

func NewReportService(db *repository.DB, cfg ServiceConfig) ReportService {
	cfg = cfg.withDefaults()
	return &reportService{db: db, log: cfg.Logger.Named("report"), now: cfg.Now}
}

// Generate builds the report from one consistent snapshot of catalog and ledger.
func (s *reportService) Generate(kind stock.ReportKind, window stock.Window) (*stock.Report, error) {
	kind, err := stock.ParseReportKind(string(kind))
	if err != nil {
		return nil, err
	}
	window, err = stock.ParseWindow(string(window))
	if err != nil {
		return nil, err
	}

	snap := s.db.Snapshot()
	report := stock.BuildReport(kind, snap.Products, snap.Transactions, window, s.now())

	s.log.Debug("report generated",
		zap.String("kind", string(kind)),
		zap.String("window", string(window)),
		zap.Int("products", len(snap.Products)),
		zap.Int("transactions", len(snap.Transactions)),
	)
	return &report, nil
}
