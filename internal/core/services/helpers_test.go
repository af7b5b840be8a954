package services_test

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/repositories/memory"
	"github.com/google/uuid"
)

func apperrorsIsInsufficient(err error) bool {
	return errors.Is(err, apperrors.ErrInsufficientBalance)
}

// fixedClock is a settable clock shared by a test and the services under test.
type fixedClock struct {
	now time.Time
}

func (c *fixedClock) Now() time.Time { return c.now }

func (c *fixedClock) Advance(d time.Duration) { c.now = c.now.Add(d) }

// seedDocument stores a document of pages pages owned by ownerID.
func seedDocument(store *memory.Store, ownerID string, pages int) domain.Document {
	doc := domain.Document{
		DocumentID: uuid.NewString(),
		OwnerID:    ownerID,
		Name:       "notes.pdf",
		StorageKey: "documents/" + ownerID + "/notes.pdf",
		TotalPages: pages,
		CreatedAt:  time.Now().UTC(),
	}
	if err := store.SaveDocument(context.Background(), doc); err != nil {
		panic(err)
	}
	return doc
}

var (
	bwPrinter = domain.Printer{
		PrinterID:      "bw-a4",
		Name:           "B/W A4",
		SupportedSizes: []domain.PaperSize{domain.A4},
		SupportsDuplex: true,
	}
	colorPrinter = domain.Printer{
		PrinterID:      "color-a3",
		Name:           "Color A3",
		SupportedSizes: []domain.PaperSize{domain.A4, domain.A3},
		SupportsDuplex: true,
		SupportsColor:  true,
	}
)
