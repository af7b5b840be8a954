package pgsql

import (
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		LedgerRepo:   newPgxLedgerRepository(dbPool),
		PrintJobRepo: newPgxPrintJobRepository(dbPool),
		DocumentRepo: newPgxDocumentRepository(dbPool),
		PrinterRepo:  newPgxPrinterRepository(dbPool),
		PaymentRepo:  newPgxPaymentRepository(dbPool),
		UnitOfWork:   newPgxUnitOfWork(dbPool),
	}
}
