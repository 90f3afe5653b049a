package repository

import (
	"slices"
	"sync"

	"go-pharmacy-inventory/internal/model"
)

// DB holds the catalog and the ledger in memory. Single writes and Transaction blocks take
// the write lock; Snapshot takes the read lock, so a reader never observes a ledger entry
// without its stock mutation.
type DB struct {
	mu           sync.RWMutex
	products     []model.Product     // insertion order
	transactions []model.Transaction // newest first
}

func NewDB() *DB {
	return &DB{}
}

// Load replaces catalog and ledger wholesale. Transactions must be newest first.
func (db *DB) Load(products []model.Product, transactions []model.Transaction) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.products = slices.Clone(products)
	db.transactions = slices.Clone(transactions)
}

// Tx is a unit of work over the DB. Writes go to private copies and are published only
// when the Transaction callback returns nil.
type Tx struct {
	products     []model.Product
	transactions []model.Transaction
}

// Transaction runs fn atomically. Any error leaves the DB exactly as it was.
func (db *DB) Transaction(fn func(tx *Tx) error) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	tx := &Tx{
		products:     slices.Clone(db.products),
		transactions: db.transactions,
	}
	if err := fn(tx); err != nil {
		return err
	}
	db.products = tx.products
	db.transactions = tx.transactions
	return nil
}

// Snapshot is a consistent copy of catalog and ledger for read-side projections.
type Snapshot struct {
	Products     []model.Product
	Transactions []model.Transaction
}

func (db *DB) Snapshot() Snapshot {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return Snapshot{
		Products:     slices.Clone(db.products),
		Transactions: slices.Clone(db.transactions),
	}
}

func (db *DB) view(fn func(tx *Tx)) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	fn(&Tx{products: db.products, transactions: db.transactions})
}

func (tx *Tx) productIndex(id string) int {
	return slices.IndexFunc(tx.products, func(p model.Product) bool { return p.ID == id })
}

func (tx *Tx) findProduct(id string) (*model.Product, error) {
	i := tx.productIndex(id)
	if i < 0 {
		return nil, model.ProductNotFound(id)
	}
	p := tx.products[i]
	return &p, nil
}

func (tx *Tx) saveProduct(p model.Product) error {
	i := tx.productIndex(p.ID)
	if i < 0 {
		return model.ProductNotFound(p.ID)
	}
	tx.products[i] = p
	return nil
}

func (tx *Tx) insertProduct(p model.Product) {
	tx.products = append(tx.products, p)
}

func (tx *Tx) deleteProduct(id string) bool {
	n := len(tx.products)
	tx.products = slices.DeleteFunc(tx.products, func(p model.Product) bool { return p.ID == id })
	return len(tx.products) < n
}

// prependTransaction never mutates the published backing array.
func (tx *Tx) prependTransaction(t model.Transaction) {
	next := make([]model.Transaction, 0, len(tx.transactions)+1)
	next = append(next, t)
	tx.transactions = append(next, tx.transactions...)
}

func (tx *Tx) transactionCount() int {
	return len(tx.transactions)
}
