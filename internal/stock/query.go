package stock

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"go-pharmacy-inventory/internal/model"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// SortField orders product listings.
type SortField string

const (
	SortByName     SortField = "name"     // ascending, Indonesian collation
	SortByQuantity SortField = "quantity" // descending
	SortByPrice    SortField = "price"    // descending
)

// ProductQuery is the listing filter. Zero values mean no filter and sort by name.
type ProductQuery struct {
	Search   string
	Category model.Category
	Sort     SortField
}

// ProductRow is a listing entry with its derived flags.
type ProductRow struct {
	model.Product
	Valuation  int64 `json:"valuation"`
	LowStock   bool  `json:"low_stock"`
	ExpiryFlag bool  `json:"expiry_flag"`
}

// ListProducts filters by search text (name, supplier, batch number) and category,
// then sorts. The input slice is not modified.
func ListProducts(products []model.Product, q ProductQuery, now time.Time) []ProductRow {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	matched := make([]model.Product, 0, len(products))
	for _, p := range products {
		if q.Category != "" && p.Category != q.Category {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(p.Name), search) &&
			!strings.Contains(strings.ToLower(p.Supplier), search) &&
			!strings.Contains(strings.ToLower(p.BatchNumber), search) {
			continue
		}
		matched = append(matched, p)
	}

	switch q.Sort {
	case SortByQuantity:
		slices.SortStableFunc(matched, func(a, b model.Product) int { return b.Quantity - a.Quantity })
	case SortByPrice:
		slices.SortStableFunc(matched, func(a, b model.Product) int {
			switch {
			case a.Price > b.Price:
				return -1
			case a.Price < b.Price:
				return 1
			}
			return 0
		})
	default:
		col := collate.New(language.Indonesian, collate.IgnoreCase)
		slices.SortStableFunc(matched, func(a, b model.Product) int {
			return col.CompareString(a.Name, b.Name)
		})
	}

	rows := make([]ProductRow, 0, len(matched))
	for _, p := range matched {
		rows = append(rows, ProductRow{
			Product:    p,
			Valuation:  Valuation(p),
			LowStock:   IsLowStock(p),
			ExpiryFlag: HasExpiryFlag(p, now),
		})
	}
	return rows
}

// TransactionQuery filters the ledger listing. Zero values mean no filter.
type TransactionQuery struct {
	Type   model.TransactionType
	Search string
}

// FilterTransactions matches type and a case-insensitive search over product name and
// reference, keeping ledger order (newest first).
func FilterTransactions(transactions []model.Transaction, q TransactionQuery) []model.Transaction {
	search := strings.ToLower(strings.TrimSpace(q.Search))
	out := make([]model.Transaction, 0, len(transactions))
	for _, t := range transactions {
		if q.Type != "" && t.Type != q.Type {
			continue
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(t.ProductName), search) &&
			!strings.Contains(strings.ToLower(t.Reference), search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// ParseCategory accepts medicine, supplement, or all/empty for no filter.
func ParseCategory(s string) (model.Category, error) {
	switch c := model.Category(s); c {
	case "", "all":
		return "", nil
	case model.CategoryMedicine, model.CategorySupplement:
		return c, nil
	}
	return "", invalidParam("category", s, "all, medicine or supplement")
}

// ParseSort accepts name, quantity or price; empty sorts by name.
func ParseSort(s string) (SortField, error) {
	switch f := SortField(s); f {
	case "":
		return SortByName, nil
	case SortByName, SortByQuantity, SortByPrice:
		return f, nil
	}
	return "", invalidParam("sort", s, "name, quantity or price")
}

// ParseTransactionType accepts incoming, outgoing, or all/empty for no filter.
func ParseTransactionType(s string) (model.TransactionType, error) {
	switch t := model.TransactionType(s); t {
	case "", "all":
		return "", nil
	case model.TxIncoming, model.TxOutgoing:
		return t, nil
	}
	return "", invalidParam("type", s, "all, incoming or outgoing")
}

func invalidParam(field, value, allowed string) error {
	return &model.ValidationError{
		Field:   field,
		Tag:     "oneof",
		Message: fmt.Sprintf("unknown %s %q, use %s", field, value, allowed),
	}
}
