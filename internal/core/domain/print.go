package domain

import "time"

// PaperSize is the sheet size requested for a print job.
type PaperSize string

const (
	A4 PaperSize = "A4"
	A3 PaperSize = "A3"
)

// IsValid reports whether the paper size is one the service can charge for.
func (p PaperSize) IsValid() bool {
	return p == A4 || p == A3
}

// ColorMode selects monochrome or color output.
type ColorMode string

const (
	BlackWhite ColorMode = "BLACK_WHITE"
	Color      ColorMode = "COLOR"
)

// IsValid reports whether the color mode is known.
func (c ColorMode) IsValid() bool {
	return c == BlackWhite || c == Color
}

const (
	MinCopies = 1
	MaxCopies = 10
)

// PrintRequest is a single document's print options inside a submission batch.
// It is transient and never persisted on its own; PrintJob keeps a snapshot.
type PrintRequest struct {
	DocumentID     string    `json:"documentID"`
	PrinterID      string    `json:"printerID"`
	PaperSize      PaperSize `json:"paperSize"`
	Duplex         bool      `json:"duplex"`
	Copies         int       `json:"copies"`
	PageRange      string    `json:"pageRange,omitempty"`
	ColorMode      ColorMode `json:"colorMode"`
	ColorPageRange string    `json:"colorPageRange,omitempty"` // Only with BlackWhite
}

// WantsColor reports whether any part of the request needs a color-capable printer.
func (r PrintRequest) WantsColor() bool {
	return r.ColorMode == Color || r.ColorPageRange != ""
}

// Printer is an entry of the read-only printer registry.
type Printer struct {
	PrinterID      string      `json:"printerID"`
	Name           string      `json:"name"`
	Location       string      `json:"location"`
	SupportedSizes []PaperSize `json:"supportedSizes"`
	SupportsDuplex bool        `json:"supportsDuplex"`
	SupportsColor  bool        `json:"supportsColor"`
	CreatedAt      time.Time   `json:"createdAt"`
	LastUpdatedAt  time.Time   `json:"lastUpdatedAt"`
}

// SupportsSize reports whether the printer accepts the given paper size.
func (p Printer) SupportsSize(size PaperSize) bool {
	for _, s := range p.SupportedSizes {
		if s == size {
			return true
		}
	}
	return false
}

// Document is the metadata of an uploaded file. The file itself lives in external storage.
type Document struct {
	DocumentID string    `json:"documentID"`
	OwnerID    string    `json:"ownerID"`
	Name       string    `json:"name"`
	StorageKey string    `json:"storageKey"`
	TotalPages int       `json:"totalPages"`
	CreatedAt  time.Time `json:"createdAt"`
}
