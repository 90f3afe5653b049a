// Package export renders reports as CSV files: text fields always double-quoted,
// numbers bare, a fixed header line per report kind.
package export

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"go-pharmacy-inventory/internal/stock"
)

var headers = map[stock.ReportKind]string{
	stock.ReportStock:        "Product Name,Category,Type,Quantity,Unit,Price,Supplier,Expiry Date,Batch Number,Storage",
	stock.ReportExpired:      "Product Name,Category,Quantity,Unit,Expiry Date,Supplier,Batch Number",
	stock.ReportExpiring:     "Product Name,Category,Quantity,Unit,Expiry Date,Supplier,Batch Number",
	stock.ReportLowStock:     "Product Name,Category,Current Stock,Minimum Stock,Shortage,Supplier",
	stock.ReportTransactions: "Date,Reference,Product,Type,Quantity,Unit,Total Amount,Partner",
}

var filenames = map[stock.ReportKind]string{
	stock.ReportStock:        "stock_report.csv",
	stock.ReportExpired:      "expired_products_report.csv",
	stock.ReportExpiring:     "expiring_products_report.csv",
	stock.ReportLowStock:     "low_stock_report.csv",
	stock.ReportTransactions: "transactions_report.csv",
}

// Header returns the header line of kind, without the trailing newline.
func Header(kind stock.ReportKind) string {
	return headers[kind]
}

// Filename is the suggested download name of kind.
func Filename(kind stock.ReportKind) string {
	if name, ok := filenames[kind]; ok {
		return name
	}
	return "report.csv"
}

// field is one CSV cell; quoted cells are text.
type field struct {
	value  string
	quoted bool
}

func text(s string) field { return field{value: s, quoted: true} }
func num(n int) field { return field{value: strconv.Itoa(n)} }
func money(n int64) field { return field{value: strconv.FormatInt(n, 10)} }
func textf(v any) field { return text(fmt.Sprint(v)) }

// WriteCSV writes the rows of r. Unknown kinds are an error.
func WriteCSV(w io.Writer, r *stock.Report) error {
	header, ok := headers[r.Kind]
	if !ok {
		return fmt.Errorf("export: unknown report kind %q", r.Kind)
	}

	bw := bufio.NewWriter(w)
	bw.WriteString(header)
	bw.WriteByte('\n')

	for _, rec := range records(r) {
		for i, f := range rec {
			if i > 0 {
				bw.WriteByte(',')
			}
			if f.quoted {
				bw.WriteByte('"')
				bw.WriteString(strings.ReplaceAll(f.value, `"`, `""`))
				bw.WriteByte('"')
			} else {
				bw.WriteString(f.value)
			}
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

func records(r *stock.Report) [][]field {
	var out [][]field
	switch r.Kind {
	case stock.ReportStock:
		for _, p := range r.Stock {
			out = append(out, []field{
				text(p.Name), textf(p.Category), text(p.Type), num(p.Quantity), text(p.Unit),
				money(p.Price), text(p.Supplier), text(p.ExpiryDate.String()), text(p.BatchNumber),
				text(p.StorageType),
			})
		}
	case stock.ReportExpired, stock.ReportExpiring:
		for _, p := range r.Expiry {
			out = append(out, []field{
				text(p.Name), textf(p.Category), num(p.Quantity), text(p.Unit),
				text(p.ExpiryDate.String()), text(p.Supplier), text(p.BatchNumber),
			})
		}
	case stock.ReportLowStock:
		for _, p := range r.LowStock {
			out = append(out, []field{
				text(p.Name), textf(p.Category), num(p.CurrentStock), num(p.MinimumStock),
				num(p.Shortage), text(p.Supplier),
			})
		}
	case stock.ReportTransactions:
		for _, t := range r.Transactions {
			out = append(out, []field{
				text(t.Date.String()), text(t.Reference), text(t.Product), textf(t.Type),
				num(t.Quantity), text(t.Unit), money(t.TotalAmount), text(t.Partner),
			})
		}
	}
	return out
}
