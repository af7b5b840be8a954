package mapping

import (
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	"github.com/SscSPs/print_quota_service/internal/models"
)

// ToModelPrintJob converts a domain PrintJob to a model PrintJob
func ToModelPrintJob(d domain.PrintJob) models.PrintJob {
	return models.PrintJob{
		JobID:                  d.JobID,
		BatchID:                d.BatchID,
		UserID:                 d.UserID,
		DocumentID:             d.Request.DocumentID,
		PrinterID:              d.Request.PrinterID,
		PaperSize:              string(d.Request.PaperSize),
		Duplex:                 d.Request.Duplex,
		Copies:                 d.Request.Copies,
		PageRange:              d.Request.PageRange,
		ColorMode:              string(d.Request.ColorMode),
		ColorPageRange:         d.Request.ColorPageRange,
		Status:                 string(d.Status),
		EquivalentPagesCharged: d.EquivalentPagesCharged,
		SubmittedAt:            d.SubmittedAt,
		CompletedAt:            nullTime(d.CompletedAt),
		ErrorMessage:           nullString(d.ErrorMessage),
		LastUpdatedAt:          d.LastUpdatedAt,
	}
}

// ToDomainPrintJob converts a model PrintJob to a domain PrintJob
func ToDomainPrintJob(m models.PrintJob) domain.PrintJob {
	return domain.PrintJob{
		JobID:   m.JobID,
		BatchID: m.BatchID,
		UserID:  m.UserID,
		Request: domain.PrintRequest{
			DocumentID:     m.DocumentID,
			PrinterID:      m.PrinterID,
			PaperSize:      domain.PaperSize(m.PaperSize),
			Duplex:         m.Duplex,
			Copies:         m.Copies,
			PageRange:      m.PageRange,
			ColorMode:      domain.ColorMode(m.ColorMode),
			ColorPageRange: m.ColorPageRange,
		},
		Status:                 domain.PrintJobStatus(m.Status),
		EquivalentPagesCharged: m.EquivalentPagesCharged,
		SubmittedAt:            m.SubmittedAt,
		CompletedAt:            timePtr(m.CompletedAt),
		ErrorMessage:           stringPtr(m.ErrorMessage),
		LastUpdatedAt:          m.LastUpdatedAt,
	}
}
