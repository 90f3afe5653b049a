package repository

import (
	"slices"

	"go-pharmacy-inventory/internal/model"
)

type ProductRepository interface {
	Create(product *model.Product) error
	FindAll() ([]model.Product, error)
	FindByID(id string) (*model.Product, error)
	Delete(id string) (removed bool, err error)
	FindByIDTx(tx *Tx, id string) (*model.Product, error)
	UpdateTx(tx *Tx, product *model.Product) error
	UpdateStock(tx *Tx, id string, newStock int) error
}

type productRepo struct {
	db *DB
}

func NewProductRepo(db *DB) ProductRepository {
	return &productRepo{db}
}

// Create assigns a fresh ID and appends the product to the catalog.
func (r *productRepo) Create(product *model.Product) error {
	return r.db.Transaction(func(tx *Tx) error {
		product.ID = model.NewID()
		tx.insertProduct(*product)
		return nil
	})
}

func (r *productRepo) FindAll() ([]model.Product, error) {
	var products []model.Product
	r.db.view(func(tx *Tx) {
		products = slices.Clone(tx.products)
	})
	return products, nil
}

func (r *productRepo) FindByID(id string) (*model.Product, error) {
	var (
		product *model.Product
		err     error
	)
	r.db.view(func(tx *Tx) {
		product, err = tx.findProduct(id)
	})
	return product, err
}

// Delete is a no-op for unknown IDs; removed is false then. Transactions referencing
// the product are kept.
func (r *productRepo) Delete(id string) (removed bool, err error) {
	err = r.db.Transaction(func(tx *Tx) error {
		removed = tx.deleteProduct(id)
		return nil
	})
	return removed, err
}

func (r *productRepo) FindByIDTx(tx *Tx, id string) (*model.Product, error) {
	return tx.findProduct(id)
}

// UpdateTx replaces every field of an existing product
func (r *productRepo) UpdateTx(tx *Tx, product *model.Product) error {
	return tx.saveProduct(*product)
}

// UpdateStock menerima *Tx agar bisa berjalan dalam transaksi
func (r *productRepo) UpdateStock(tx *Tx, id string, newStock int) error {
	product, err := tx.findProduct(id)
	if err != nil {
		return err
	}
	product.Quantity = newStock
	return tx.saveProduct(*product)
}
