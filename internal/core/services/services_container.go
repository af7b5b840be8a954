package services

import (
	"log/slog"

	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/platform/config"
)

// ContainerDeps are the collaborators that live outside the repository layer.
// Any field may be nil: a nil Gateway disables payment polling, a nil Events drops
// analytics and a nil Logger falls back to slog.Default.
type ContainerDeps struct {
	Gateway portssvc.PaymentGateway
	Events  portssvc.EventSink
	Logger  *slog.Logger
}

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, deps ContainerDeps) *portssvc.ServiceContainer {
	// One cache is shared so every service that writes the ledger refreshes the balance readers see.
	cache := NewBalanceCache(cfg.BalanceCacheSize, cfg.BalanceCacheTTL)

	container := &portssvc.ServiceContainer{}
	container.Ledger = NewLedgerService(repos.LedgerRepo, repos.UnitOfWork, cache)
	container.Submission = NewSubmissionService(repos.DocumentRepo, repos.PrinterRepo, container.Ledger, repos.UnitOfWork, cache, deps.Events)
	container.PrintJob = NewPrintJobService(repos.PrintJobRepo, repos.UnitOfWork, cache, deps.Events)
	container.Document = NewDocumentService(repos.DocumentRepo)
	container.Printer = NewPrinterService(repos.PrinterRepo)

	paymentOpts := []PaymentOption{
		WithPaymentExpiry(cfg.PaymentExpiry),
		WithPaymentEvents(deps.Events),
	}
	if deps.Gateway != nil {
		paymentOpts = append(paymentOpts, WithGatewayPolling(deps.Gateway, cfg.PaymentPollInterval, deps.Logger))
	}
	container.Payment = NewPaymentService(repos.PaymentRepo, repos.UnitOfWork, cache, paymentOpts...)

	return container
}
