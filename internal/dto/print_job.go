package dto

import (
	"time"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// PrintRequestItem is one document of a print submission.
type PrintRequestItem struct {
	DocumentID     string           `json:"documentID" binding:"required"`
	PrinterID      string           `json:"printerID" binding:"required"`
	PaperSize      domain.PaperSize `json:"paperSize" binding:"required,oneof=A4 A3"`
	Duplex         bool             `json:"duplex"`
	Copies         int              `json:"copies" binding:"required,min=1,max=10"`
	PageRange      string           `json:"pageRange" binding:"omitempty,pagerange"`
	ColorMode      domain.ColorMode `json:"colorMode" binding:"required,oneof=BLACK_WHITE COLOR"`
	ColorPageRange string           `json:"colorPageRange" binding:"omitempty,pagerange"`
}

// ToDomain converts the item into a domain.PrintRequest.
func (i PrintRequestItem) ToDomain() domain.PrintRequest {
	return domain.PrintRequest{
		DocumentID:     i.DocumentID,
		PrinterID:      i.PrinterID,
		PaperSize:      i.PaperSize,
		Duplex:         i.Duplex,
		Copies:         i.Copies,
		PageRange:      i.PageRange,
		ColorMode:      i.ColorMode,
		ColorPageRange: i.ColorPageRange,
	}
}

// SubmitPrintJobsRequest is a batch of documents accepted or rejected as a unit.
type SubmitPrintJobsRequest struct {
	Documents []PrintRequestItem `json:"documents" binding:"required,min=1,max=20,dive"`
}

// ToDomainRequests converts the batch into domain requests, preserving order.
func (r SubmitPrintJobsRequest) ToDomainRequests() []domain.PrintRequest {
	reqs := make([]domain.PrintRequest, len(r.Documents))
	for i, item := range r.Documents {
		reqs[i] = item.ToDomain()
	}
	return reqs
}

// PrintJobResponse is the public view of a print job.
type PrintJobResponse struct {
	JobID                  string              `json:"jobID"`
	BatchID                string              `json:"batchID"`
	DocumentID             string              `json:"documentID"`
	PrinterID              string              `json:"printerID"`
	Request                domain.PrintRequest `json:"request"`
	Status                 string              `json:"status"`
	EquivalentPagesCharged int64               `json:"equivalentPagesCharged"`
	SubmittedAt            time.Time           `json:"submittedAt"`
	CompletedAt            *time.Time          `json:"completedAt,omitempty"`
	ErrorMessage           *string             `json:"errorMessage,omitempty"`
}

// ToPrintJobResponse converts a domain.PrintJob to PrintJobResponse DTO.
func ToPrintJobResponse(j *domain.PrintJob) PrintJobResponse {
	return PrintJobResponse{
		JobID:                  j.JobID,
		BatchID:                j.BatchID,
		DocumentID:             j.Request.DocumentID,
		PrinterID:              j.Request.PrinterID,
		Request:                j.Request,
		Status:                 string(j.Status),
		EquivalentPagesCharged: j.EquivalentPagesCharged,
		SubmittedAt:            j.SubmittedAt,
		CompletedAt:            j.CompletedAt,
		ErrorMessage:           j.ErrorMessage,
	}
}

// ToPrintJobResponses converts a slice of domain.PrintJob to []PrintJobResponse.
func ToPrintJobResponses(jobs []domain.PrintJob) []PrintJobResponse {
	responses := make([]PrintJobResponse, len(jobs))
	for i := range jobs {
		responses[i] = ToPrintJobResponse(&jobs[i])
	}
	return responses
}

// SubmitPrintJobsResponse lists the jobs created for an accepted batch.
type SubmitPrintJobsResponse struct {
	BatchID     string             `json:"batchID"`
	TotalCharge int64              `json:"totalCharge"`
	Jobs        []PrintJobResponse `json:"jobs"`
}

// ToSubmitPrintJobsResponse builds the response for an accepted batch.
func ToSubmitPrintJobsResponse(jobs []domain.PrintJob) SubmitPrintJobsResponse {
	resp := SubmitPrintJobsResponse{Jobs: ToPrintJobResponses(jobs)}
	for _, j := range jobs {
		resp.BatchID = j.BatchID
		resp.TotalCharge += j.EquivalentPagesCharged
	}
	return resp
}

// EstimateItem is the cost of one document of an estimate.
type EstimateItem struct {
	DocumentID      string `json:"documentID"`
	PageCount       int    `json:"pageCount"`
	EquivalentPages int64  `json:"equivalentPages"`
}

// EstimateResponse is the cost of a batch before submission.
type EstimateResponse struct {
	Items          []EstimateItem `json:"items"`
	TotalCharge    int64          `json:"totalCharge"`
	CurrentBalance int64          `json:"currentBalance"`
	Sufficient     bool           `json:"sufficient"`
}

// ListPrintJobsParams defines query parameters for listing print jobs.
type ListPrintJobsParams struct {
	Limit     int     `form:"limit,default=20" binding:"min=1,max=100"`
	NextToken *string `form:"nextToken"`
}

// ListPrintJobsResponse wraps a page of print jobs.
type ListPrintJobsResponse struct {
	Jobs      []PrintJobResponse `json:"jobs"`
	NextToken *string            `json:"nextToken,omitempty"`
}

// UpdatePrintJobStatusRequest is sent by the printer-dispatch collaborator.
type UpdatePrintJobStatusRequest struct {
	Status       domain.PrintJobStatus `json:"status" binding:"required,oneof=PRINTING COMPLETED FAILED"`
	ErrorMessage string                `json:"errorMessage" binding:"required_if=Status FAILED"`
}
