package models

import (
	"database/sql"
	"time"
)

// PageTransaction is a row of the append-only page_transactions table.
type PageTransaction struct {
	Sequence         int64          `db:"seq"`
	TransactionID    string         `db:"transaction_id"`
	UserID           string         `db:"user_id"`
	Type             string         `db:"type"`
	Delta            int64          `db:"delta"`
	BalanceAfter     int64          `db:"balance_after"`
	ReferenceJobID   sql.NullString `db:"reference_job_id"`
	PaymentReference sql.NullString `db:"payment_reference"`
	Note             string         `db:"note"`
	CreatedAt        time.Time      `db:"created_at"`
	CreatedBy        string         `db:"created_by"`
}

// Payment is a row of payments.
type Payment struct {
	Reference     string         `db:"reference"`
	UserID        string         `db:"user_id"`
	Amount        int64          `db:"amount"`
	Status        string         `db:"status"`
	TransactionID sql.NullString `db:"transaction_id"`
	ExpiresAt     sql.NullTime   `db:"expires_at"`
	CreatedAt     time.Time      `db:"created_at"`
	LastUpdatedAt time.Time      `db:"last_updated_at"`
}
