package services

import (
	"context"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
)

type printerService struct {
	BaseService
	printerRepo portsrepo.PrinterReader
}

// NewPrinterService creates a service over the read-only printer registry.
func NewPrinterService(printerRepo portsrepo.PrinterReader) portssvc.PrinterSvc {
	return &printerService{printerRepo: printerRepo}
}

var _ portssvc.PrinterSvc = (*printerService)(nil)

func (s *printerService) ListPrinters(ctx context.Context) ([]domain.Printer, error) {
	return s.printerRepo.ListPrinters(ctx)
}

func (s *printerService) GetPrinter(ctx context.Context, printerID string) (*domain.Printer, error) {
	return s.printerRepo.FindPrinterByID(ctx, printerID)
}
