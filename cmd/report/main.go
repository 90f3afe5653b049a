package main

import (
	"flag"
	"log"
	"os"

	"go-pharmacy-inventory/internal/config"
	"go-pharmacy-inventory/internal/export"
	"go-pharmacy-inventory/internal/repository"
	"go-pharmacy-inventory/internal/seed"
	"go-pharmacy-inventory/internal/service"
	"go-pharmacy-inventory/internal/stock"
	"go-pharmacy-inventory/pkg/currency"
)

// report prints one CSV report of the demo catalog and ledger.
//
//	go run ./cmd/report -kind lowstock -window month -out low_stock_report.csv
func main() {
	kindFlag := flag.String("kind", string(stock.ReportStock), "report kind: stock, expired, expiring, lowstock, transactions")
	windowFlag := flag.String("window", string(stock.WindowAll), "transaction window: today, week, month, all")
	outFlag := flag.String("out", "", "output file (default stdout, \"auto\" uses the report's default filename)")
	flag.Parse()

	// 1. Load Env
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	kind, err := stock.ParseReportKind(*kindFlag)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}
	window, err := stock.ParseWindow(*windowFlag)
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	// 2. Load demo data
	db := repository.NewDB()
	seed.Load(db)

	// 3. Generate
	report, err := service.NewReportService(db, service.ServiceConfig{Now: cfg.Clock()}).Generate(kind, window)
	if err != nil {
		log.Fatalf("❌ Failed to generate report: %v", err)
	}

	// 4. Write
	if *outFlag == "" {
		if err := export.WriteCSV(os.Stdout, report); err != nil {
			log.Fatalf("❌ Failed to write report: %v", err)
		}
	} else {
		path := *outFlag
		if path == "auto" {
			path = export.Filename(kind)
		}
		if err := writeFile(path, report); err != nil {
			log.Fatalf("❌ Failed to write %s: %v", path, err)
		}
		log.Printf("✅ Report written to %s", path)
	}

	s := report.Summary
	log.Printf("Products: %d | Valuation: %s | Low stock: %d | Expired: %d | Expiring soon: %d",
		s.TotalProducts, currency.FormatIDR(s.TotalValuation), s.LowStockCount, s.ExpiredCount, s.ExpiringSoonCount)
	log.Printf("Shortage cost: %s | Incoming: %d (%s) | Outgoing: %d (%s)",
		currency.FormatIDR(s.TotalShortageCost),
		s.Transactions.Incoming.Count, currency.FormatIDR(s.Transactions.Incoming.Amount),
		s.Transactions.Outgoing.Count, currency.FormatIDR(s.Transactions.Outgoing.Amount))
}

// writeFile writes the CSV to path. An error from Close is returned too.
func writeFile(path string, report *stock.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := export.WriteCSV(f, report); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
