package stock

import (
	"fmt"
	"math"

	"go-pharmacy-inventory/internal/model"
)

// ApplyMovement returns the stock level after a transaction of qty units. Outgoing
// movements never take the level below zero; clamped reports when the floor was hit.
// Callers run CheckMovement first.
func ApplyMovement(current int, txType model.TransactionType, qty int) (next int, clamped bool) {
	switch txType {
	case model.TxIncoming:
		return current + qty, false
	case model.TxOutgoing:
		if qty > current {
			return 0, true
		}
		return current - qty, false
	}
	return current, false
}

// CheckMovement rejects a movement whose resulting stock level or total amount
// (qty * price) does not fit in the integer range.
func CheckMovement(current int, txType model.TransactionType, qty int, price int64) error {
	if qty <= 0 {
		return nil
	}
	if txType == model.TxIncoming && current > math.MaxInt-qty {
		return &model.ValidationError{
			Field:   "quantity",
			Tag:     "max",
			Message: fmt.Sprintf("incoming quantity %d would overflow the stock level of %d", qty, current),
		}
	}
	if price > 0 && int64(qty) > math.MaxInt64/price {
		return &model.ValidationError{
			Field:   "quantity",
			Tag:     "max",
			Message: fmt.Sprintf("total amount of %d x %d overflows", qty, price),
		}
	}
	return nil
}
