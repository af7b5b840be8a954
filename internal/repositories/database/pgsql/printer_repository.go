package pgsql

import (
	"context"
	"errors"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const printerColumns = `printer_id, name, location, supported_sizes, supports_duplex, supports_color, created_at, last_updated_at`

type PgxPrinterRepository struct {
	BaseRepository
}

func newPgxPrinterRepository(pool *pgxpool.Pool) portsrepo.PrinterReader {
	return &PgxPrinterRepository{BaseRepository: BaseRepository{Pool: pool}}
}

var _ portsrepo.PrinterReader = (*PgxPrinterRepository)(nil)

func (r *PgxPrinterRepository) FindPrinterByID(ctx context.Context, printerID string) (*domain.Printer, error) {
	p, err := scanPrinter(r.Pool.QueryRow(ctx, `SELECT `+printerColumns+` FROM printers WHERE printer_id = $1`, printerID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewNotFoundError("printer", printerID)
		}
		return nil, apperrors.NewAppError(500, "failed to find printer "+printerID, err)
	}
	return &p, nil
}

func (r *PgxPrinterRepository) ListPrinters(ctx context.Context) ([]domain.Printer, error) {
	rows, err := r.Pool.Query(ctx, `SELECT `+printerColumns+` FROM printers ORDER BY name`)
	if err != nil {
		return nil, apperrors.NewAppError(500, "failed to list printers", err)
	}
	defer rows.Close()

	printers := make([]domain.Printer, 0)
	for rows.Next() {
		p, err := scanPrinter(rows)
		if err != nil {
			return nil, apperrors.NewAppError(500, "failed to scan printer row", err)
		}
		printers = append(printers, p)
	}
	if err := rows.Err(); err != nil {
		return nil, apperrors.NewAppError(500, "error iterating printer rows", err)
	}
	return printers, nil
}

func scanPrinter(row pgx.Row) (domain.Printer, error) {
	var (
		p     domain.Printer
		sizes []string
	)
	err := row.Scan(&p.PrinterID, &p.Name, &p.Location, &sizes, &p.SupportsDuplex, &p.SupportsColor, &p.CreatedAt, &p.LastUpdatedAt)
	if err != nil {
		return domain.Printer{}, err
	}
	p.SupportedSizes = make([]domain.PaperSize, len(sizes))
	for i, s := range sizes {
		p.SupportedSizes[i] = domain.PaperSize(s)
	}
	return p, nil
}
