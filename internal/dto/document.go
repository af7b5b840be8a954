package dto

import (
	"time"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
)

// DocumentResponse is the public view of a document's metadata.
type DocumentResponse struct {
	DocumentID string    `json:"documentID"`
	Name       string    `json:"name"`
	TotalPages int       `json:"totalPages"`
	CreatedAt  time.Time `json:"createdAt"`
}

// ToDocumentResponse converts a domain.Document to DocumentResponse DTO.
func ToDocumentResponse(d *domain.Document) DocumentResponse {
	return DocumentResponse{
		DocumentID: d.DocumentID,
		Name:       d.Name,
		TotalPages: d.TotalPages,
		CreatedAt:  d.CreatedAt,
	}
}

// PrinterResponse is the public view of a printer.
type PrinterResponse struct {
	PrinterID      string             `json:"printerID"`
	Name           string             `json:"name"`
	Location       string             `json:"location"`
	SupportedSizes []domain.PaperSize `json:"supportedSizes"`
	SupportsDuplex bool               `json:"supportsDuplex"`
	SupportsColor  bool               `json:"supportsColor"`
}

// ToPrinterResponse converts a domain.Printer to PrinterResponse DTO.
func ToPrinterResponse(p *domain.Printer) PrinterResponse {
	return PrinterResponse{
		PrinterID:      p.PrinterID,
		Name:           p.Name,
		Location:       p.Location,
		SupportedSizes: p.SupportedSizes,
		SupportsDuplex: p.SupportsDuplex,
		SupportsColor:  p.SupportsColor,
	}
}

// ToPrinterResponses converts a slice of domain.Printer to []PrinterResponse.
func ToPrinterResponses(printers []domain.Printer) []PrinterResponse {
	responses := make([]PrinterResponse, len(printers))
	for i := range printers {
		responses[i] = ToPrinterResponse(&printers[i])
	}
	return responses
}
