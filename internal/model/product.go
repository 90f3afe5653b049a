package model

// Category membedakan obat dan suplemen.
type Category string

const (
	CategoryMedicine   Category = "medicine"
	CategorySupplement Category = "supplement"
)

// Categories lists every category in display order.
var Categories = []Category{CategoryMedicine, CategorySupplement}

type Product struct {
	ID          string   `json:"id"`
	Name        string   `json:"name" validate:"required"`
	Category    Category `json:"category" validate:"required,oneof=medicine supplement"`
	Type        string   `json:"type" validate:"required"` // Tablet, Capsule, Injection, ...
	Quantity    int      `json:"quantity" validate:"gte=0"`
	Unit        string   `json:"unit" validate:"required"`
	MinStock    int      `json:"min_stock" validate:"gte=0"` // reorder threshold, advisory only
	Price       int64    `json:"price" validate:"gte=0"`     // IDR, no fractional part
	Supplier    string   `json:"supplier" validate:"required"`
	ExpiryDate  Date     `json:"expiry_date" validate:"date_required"`
	BatchNumber string   `json:"batch_number" validate:"required"`
	StorageType string   `json:"storage_type" validate:"required"`
}
