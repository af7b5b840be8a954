package repositories

import (
	"context"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// PrinterReader reads the printer registry. The registry is maintained outside this
// service, so there is no writer.
type PrinterReader interface {
	// FindPrinterByID retrieves a printer by its ID.
	FindPrinterByID(ctx context.Context, printerID string) (*domain.Printer, error)

	// ListPrinters retrieves every registered printer ordered by name.
	ListPrinters(ctx context.Context) ([]domain.Printer, error)
}
