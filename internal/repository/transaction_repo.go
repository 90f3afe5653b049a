package repository

import (
	"slices"

	"go-pharmacy-inventory/internal/model"
)

// TransactionRepository is append-only: there is no Update or Delete.
type TransactionRepository interface {
	Create(tx *Tx, transaction *model.Transaction) error
	FindAll() ([]model.Transaction, error)
	FindByID(id string) (*model.Transaction, error)
	NextID(tx *Tx) string
}

type transactionRepo struct {
	db *DB
}

func NewTransactionRepo(db *DB) TransactionRepository {
	return &transactionRepo{db}
}

// NextID is one greater than the current ledger length, formatted TRX-###.
func (r *transactionRepo) NextID(tx *Tx) string {
	return model.TransactionID(tx.transactionCount() + 1)
}

// Create prepends the transaction (most recent first).
func (r *transactionRepo) Create(tx *Tx, transaction *model.Transaction) error {
	tx.prependTransaction(*transaction)
	return nil
}

func (r *transactionRepo) FindAll() ([]model.Transaction, error) {
	var transactions []model.Transaction
	r.db.view(func(tx *Tx) {
		transactions = slices.Clone(tx.transactions)
	})
	return transactions, nil
}

func (r *transactionRepo) FindByID(id string) (*model.Transaction, error) {
	var found *model.Transaction
	r.db.view(func(tx *Tx) {
		for _, t := range tx.transactions {
			if t.ID == id {
				found = &t
				return
			}
		}
	})
	if found == nil {
		return nil, model.TransactionNotFound(id)
	}
	return found, nil
}
