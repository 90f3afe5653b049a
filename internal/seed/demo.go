// Package seed loads the demo pharmacy catalog and ledger.
package seed

import (
	"go-pharmacy-inventory/internal/model"
	"go-pharmacy-inventory/internal/repository"
)

func product(name string, category model.Category, typ string, qty int, unit string, minStock int, price int64, supplier, expiry, batch, storage string) model.Product {
	return model.Product{
		ID:          model.NewID(),
		Name:        name,
		Category:    category,
		Type:        typ,
		Quantity:    qty,
		Unit:        unit,
		MinStock:    minStock,
		Price:       price,
		Supplier:    supplier,
		ExpiryDate:  model.MustDate(expiry),
		BatchNumber: batch,
		StorageType: storage,
	}
}

// DemoProducts returns the demo catalog with freshly generated ids.
func DemoProducts() []model.Product {
	return []model.Product{
		product("Paracetamol 500mg", model.CategoryMedicine, "Tablet", 500, "tablets", 100, 5000, "PT Kimia Farma", "2025-12-31", "PARA-2024-001", "Room Temperature"),
		product("Amoxicillin 500mg", model.CategoryMedicine, "Capsule", 300, "capsules", 150, 8000, "PT Kalbe Farma", "2025-08-15", "AMOX-2024-012", "Room Temperature"),
		product("Vitamin C 1000mg", model.CategorySupplement, "Tablet", 80, "tablets", 100, 15000, "PT Natura", "2026-03-20", "VITC-2024-005", "Room Temperature"),
		product("Ibuprofen 400mg", model.CategoryMedicine, "Tablet", 250, "tablets", 100, 6500, "PT Kimia Farma", "2025-10-10", "IBU-2024-003", "Room Temperature"),
		product("Multivitamin Complex", model.CategorySupplement, "Capsule", 45, "capsules", 50, 25000, "PT Wellness Indo", "2026-01-15", "MULTI-2024-008", "Cool Place"),
		product("Omeprazole 20mg", model.CategoryMedicine, "Capsule", 180, "capsules", 80, 12000, "PT Kalbe Farma", "2025-09-30", "OMEP-2024-006", "Room Temperature"),
		product("Fish Oil Omega 3", model.CategorySupplement, "Softgel", 30, "softgels", 60, 35000, "PT Natura", "2026-06-30", "FISH-2024-011", "Cool Place"),
		product("Cetirizine 10mg", model.CategoryMedicine, "Tablet", 400, "tablets", 120, 4500, "PT Dexa Medica", "2025-11-20", "CETI-2024-009", "Room Temperature"),
		product("Insulin Glargine", model.CategoryMedicine, "Injection", 15, "vials", 20, 450000, "PT Sanofi Indonesia", "2025-03-15", "INS-2024-007", "Refrigerated"),
	}
}

func strPtr(s string) *string { return &s }

// DemoTransactions returns the demo ledger for products (as returned by DemoProducts),
// newest first. The stock levels of products already include these movements.
func DemoTransactions(products []model.Product) []model.Transaction {
	paracetamol, vitaminC := products[0], products[2]
	return []model.Transaction{
		{
			ID:          model.TransactionID(3),
			ProductID:   vitaminC.ID,
			ProductName: vitaminC.Name,
			Type:        model.TxOutgoing,
			Quantity:    20,
			Unit:        vitaminC.Unit,
			Price:       vitaminC.Price,
			TotalAmount: 300000,
			Date:        model.MustDate("2024-12-03"),
			Reference:   "INV-2024-046",
			Notes:       "Customer purchase",
			Customer:    strPtr("Walk-in Customer"),
		},
		{
			ID:          model.TransactionID(2),
			ProductID:   paracetamol.ID,
			ProductName: paracetamol.Name,
			Type:        model.TxOutgoing,
			Quantity:    50,
			Unit:        paracetamol.Unit,
			Price:       paracetamol.Price,
			TotalAmount: 250000,
			Date:        model.MustDate("2024-12-02"),
			Reference:   "INV-2024-045",
			Notes:       "Customer purchase",
			Customer:    strPtr("Walk-in Customer"),
		},
		{
			ID:          model.TransactionID(1),
			ProductID:   paracetamol.ID,
			ProductName: paracetamol.Name,
			Type:        model.TxIncoming,
			Quantity:    200,
			Unit:        paracetamol.Unit,
			Price:       paracetamol.Price,
			TotalAmount: 1000000,
			Date:        model.MustDate("2024-12-01"),
			Reference:   "PO-2024-001",
			Notes:       "Regular stock replenishment",
			Supplier:    strPtr("PT Kimia Farma"),
		},
	}
}

// Load replaces the contents of db with the demo data and returns the catalog size.
func Load(db *repository.DB) int {
	products := DemoProducts()
	db.Load(products, DemoTransactions(products))
	return len(products)
}
