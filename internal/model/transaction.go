package model

import "fmt"

type TransactionType string

const (
	TxIncoming TransactionType = "incoming"
	TxOutgoing TransactionType = "outgoing"
)

// Transaction is an immutable ledger entry. Name, unit and price are snapshots of the
// product at recording time and are never re-synced.
type Transaction struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Type        TransactionType `json:"type"`
	Quantity    int             `json:"quantity"`
	Unit        string          `json:"unit"`
	Price       int64           `json:"price"`
	TotalAmount int64           `json:"total_amount"` // Snapshot price * quantity
	Date        Date            `json:"date"`
	Reference   string          `json:"reference"`
	Notes       string          `json:"notes"`

	// Exactly one is set: Supplier for incoming, Customer for outgoing.
	Supplier *string `json:"supplier,omitempty"`
	Customer *string `json:"customer,omitempty"`
}

// Partner returns the supplier or customer, or "-" when neither was given.
func (t Transaction) Partner() string {
	if t.Supplier != nil && *t.Supplier != "" {
		return *t.Supplier
	}
	if t.Customer != nil && *t.Customer != "" {
		return *t.Customer
	}
	return "-"
}

// TransactionRequest is the input of RecordTransaction.
type TransactionRequest struct {
	ProductID string          `json:"product_id" validate:"required"`
	Type      TransactionType `json:"type" validate:"required,oneof=incoming outgoing"`
	Quantity  int             `json:"quantity" validate:"gt=0"` // Qty harus > 0
	Reference string          `json:"reference" validate:"required"`
	Notes     string          `json:"notes"`
	Supplier  string          `json:"supplier"`
	Customer  string          `json:"customer"`
	Date      *Date           `json:"date,omitempty"` // defaults to the recording day
}

// TransactionID formats the ledger identifier for the given 1-based position.
func TransactionID(seq int) string {
	return fmt.Sprintf("TRX-%03d", seq)
}
