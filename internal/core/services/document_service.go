package services

import (
	"context"
	"io"
	"log/slog"
	"strings"

	"github.com/SscSPs/print_quota_service/internal/apperrors"
	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portsrepo "github.com/SscSPs/print_quota_service/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

// documentService implements portssvc.DocumentSvc
type documentService struct {
	BaseService
	documentRepo portsrepo.DocumentRepositoryFacade
}

// NewDocumentService creates a new document service.
func NewDocumentService(documentRepo portsrepo.DocumentRepositoryFacade, options ...Option) portssvc.DocumentSvc {
	svc := &documentService{documentRepo: documentRepo}
	svc.apply(options)
	return svc
}

var _ portssvc.DocumentSvc = (*documentService)(nil)

// RegisterDocument stores metadata for an uploaded PDF. The page count is read from the
// file itself so that charges never depend on a client-supplied number.
func (s *documentService) RegisterDocument(ctx context.Context, session domain.Session, name string, storageKey string, pdf io.ReadSeeker) (*domain.Document, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, apperrors.NewValidationError("name", "", "required")
	}
	if pdf == nil {
		return nil, apperrors.NewValidationError("file", "", "required")
	}

	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	pages, err := api.PageCount(pdf, conf)
	if err != nil {
		s.LogInfo(ctx, "Unreadable PDF upload", slog.String("name", name), slog.String("error", err.Error()))
		return nil, apperrors.NewValidationError("file", name, "not a readable PDF")
	}
	if pages < 1 {
		return nil, apperrors.NewValidationError("file", name, "PDF has no pages")
	}

	if storageKey == "" {
		storageKey = "documents/" + session.UserID + "/" + uuid.NewString() + ".pdf"
	}
	doc := domain.Document{
		DocumentID: uuid.NewString(),
		OwnerID:    session.UserID,
		Name:       name,
		StorageKey: storageKey,
		TotalPages: pages,
		CreatedAt:  s.Now(),
	}
	if err := s.documentRepo.SaveDocument(ctx, doc); err != nil {
		s.LogError(ctx, err, "Failed to save document", slog.String("name", name))
		return nil, err
	}

	s.LogInfo(ctx, "Document registered", slog.String("document_id", doc.DocumentID), slog.Int("total_pages", pages))
	return &doc, nil
}

func (s *documentService) GetDocument(ctx context.Context, session domain.Session, documentID string) (*domain.Document, error) {
	if err := requireSession(session); err != nil {
		return nil, err
	}
	doc, err := s.documentRepo.FindDocumentByID(ctx, documentID)
	if err != nil {
		return nil, err
	}
	if err := requireOwner(session, doc.OwnerID, "document", documentID); err != nil {
		return nil, err
	}
	return doc, nil
}
