package domain

import (
	"fmt"
	"time"
)

// PageTransactionType classifies a ledger entry.
type PageTransactionType string

const (
	Allocate PageTransactionType = "ALLOCATE" // Quota granted by an administrator
	Purchase PageTransactionType = "PURCHASE" // Confirmed payment top-up
	Deduct   PageTransactionType = "DEDUCT"   // Print batch charge
	Refund   PageTransactionType = "REFUND"   // Offsets the charge of a cancelled job
)

// IsCredit reports whether entries of this type add to the balance.
func (t PageTransactionType) IsCredit() bool {
	return t == Allocate || t == Purchase || t == Refund
}

// PageTransaction is an immutable ledger entry. The order of a user's entries,
// given by Sequence, is the only source of truth for their balance.
type PageTransaction struct {
	TransactionID    string              `json:"transactionID"`
	UserID           string              `json:"userID"`
	Type             PageTransactionType `json:"type"`
	Delta            int64               `json:"delta"`
	BalanceAfter     int64               `json:"balanceAfter"`
	ReferenceJobID   *string             `json:"referenceJobID,omitempty"`
	PaymentReference *string             `json:"paymentReference,omitempty"`
	Note             string              `json:"note"`
	Sequence         int64               `json:"sequence"`
	CreatedAt        time.Time           `json:"createdAt"`
	CreatedBy        string              `json:"createdBy"`
}

// Validate checks the entry against the running-balance invariant given the
// balance before it was appended.
func (t PageTransaction) Validate(balanceBefore int64) error {
	switch {
	case t.Type.IsCredit() && t.Delta <= 0:
		return fmt.Errorf("%s transaction must have a positive delta, got %d", t.Type, t.Delta)
	case t.Type == Deduct && t.Delta >= 0:
		return fmt.Errorf("DEDUCT transaction must have a negative delta, got %d", t.Delta)
	case !t.Type.IsCredit() && t.Type != Deduct:
		return fmt.Errorf("unknown transaction type %q", t.Type)
	}
	if t.BalanceAfter != balanceBefore+t.Delta {
		return fmt.Errorf("balanceAfter %d does not equal %d%+d", t.BalanceAfter, balanceBefore, t.Delta)
	}
	if t.BalanceAfter < 0 {
		return fmt.Errorf("balanceAfter must not be negative, got %d", t.BalanceAfter)
	}
	return nil
}

// PageBalance is the projection of a user's ledger. It is never stored as the
// authority; the latest transaction's BalanceAfter is.
type PageBalance struct {
	UserID    string `json:"userID"`
	CurrentA4 int64  `json:"currentA4"`
}
