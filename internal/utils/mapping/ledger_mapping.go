package mapping

import (
	"database/sql"
	"time"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/models"
)

// ToModelPageTransaction converts a domain PageTransaction to a model PageTransaction
func ToModelPageTransaction(d domain.PageTransaction) models.PageTransaction {
	return models.PageTransaction{
		Sequence:         d.Sequence,
		TransactionID:    d.TransactionID,
		UserID:           d.UserID,
		Type:             string(d.Type),
		Delta:            d.Delta,
		BalanceAfter:     d.BalanceAfter,
		ReferenceJobID:   nullString(d.ReferenceJobID),
		PaymentReference: nullString(d.PaymentReference),
		Note:             d.Note,
		CreatedAt:        d.CreatedAt,
		CreatedBy:        d.CreatedBy,
	}
}

// ToDomainPageTransaction converts a model PageTransaction to a domain PageTransaction
func ToDomainPageTransaction(m models.PageTransaction) domain.PageTransaction {
	return domain.PageTransaction{
		TransactionID:    m.TransactionID,
		UserID:           m.UserID,
		Type:             domain.PageTransactionType(m.Type),
		Delta:            m.Delta,
		BalanceAfter:     m.BalanceAfter,
		ReferenceJobID:   stringPtr(m.ReferenceJobID),
		PaymentReference: stringPtr(m.PaymentReference),
		Note:             m.Note,
		Sequence:         m.Sequence,
		CreatedAt:        m.CreatedAt,
		CreatedBy:        m.CreatedBy,
	}
}

// ToModelPayment converts a domain Payment to a model Payment
func ToModelPayment(d domain.Payment) models.Payment {
	var expires sql.NullTime
	if !d.ExpiresAt.IsZero() {
		expires = sql.NullTime{Time: d.ExpiresAt, Valid: true}
	}
	return models.Payment{
		Reference:     d.Reference,
		UserID:        d.UserID,
		Amount:        d.Amount,
		Status:        string(d.Status),
		TransactionID: nullString(d.TransactionID),
		ExpiresAt:     expires,
		CreatedAt:     d.CreatedAt,
		LastUpdatedAt: d.LastUpdatedAt,
	}
}

// ToDomainPayment converts a model Payment to a domain Payment
func ToDomainPayment(m models.Payment) domain.Payment {
	var expires time.Time
	if m.ExpiresAt.Valid {
		expires = m.ExpiresAt.Time
	}
	return domain.Payment{
		Reference:     m.Reference,
		UserID:        m.UserID,
		Amount:        m.Amount,
		Status:        domain.PaymentStatus(m.Status),
		TransactionID: stringPtr(m.TransactionID),
		ExpiresAt:     expires,
		CreatedAt:     m.CreatedAt,
		LastUpdatedAt: m.LastUpdatedAt,
	}
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func stringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time
	return &t
}
