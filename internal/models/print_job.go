package models

import (
	"database/sql"
	"time"
)

// PrintJob is a row of print_jobs. The print request is flattened into columns.
type PrintJob struct {
	JobID                  string         `db:"job_id"`
	BatchID                string         `db:"batch_id"`
	UserID                 string         `db:"user_id"`
	DocumentID             string         `db:"document_id"`
	PrinterID              string         `db:"printer_id"`
	PaperSize              string         `db:"paper_size"`
	Duplex                 bool           `db:"duplex"`
	Copies                 int            `db:"copies"`
	PageRange              string         `db:"page_range"`
	ColorMode              string         `db:"color_mode"`
	ColorPageRange         string         `db:"color_page_range"`
	Status                 string         `db:"status"`
	EquivalentPagesCharged int64          `db:"equivalent_pages_charged"`
	SubmittedAt            time.Time      `db:"submitted_at"`
	CompletedAt            sql.NullTime   `db:"completed_at"`
	ErrorMessage           sql.NullString `db:"error_message"`
	LastUpdatedAt          time.Time      `db:"last_updated_at"`
}
