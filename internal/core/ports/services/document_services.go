package services

import (
	"context"
	"io"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// DocumentSvc manages document metadata.
type DocumentSvc interface {
	// RegisterDocument counts the pages of a PDF and stores its metadata for the caller.
	RegisterDocument(ctx context.Context, session domain.Session, name string, storageKey string, pdf io.ReadSeeker) (*domain.Document, error)

	// GetDocument retrieves one of the caller's documents.
	GetDocument(ctx context.Context, session domain.Session, documentID string) (*domain.Document, error)
}

// PrinterSvc exposes the read-only printer registry.
type PrinterSvc interface {
	// ListPrinters returns every registered printer.
	ListPrinters(ctx context.Context) ([]domain.Printer, error)

	// GetPrinter returns a single printer.
	GetPrinter(ctx context.Context, printerID string) (*domain.Printer, error)
}
