package handlers

import (
	"log/slog"
	"net/http"
	"path/filepath"

	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/SscSPs/print_quota_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

type documentHandler struct {
	documentService portssvc.DocumentSvc
	maxUploadBytes  int64
}

func registerDocumentRoutes(rg *gin.RouterGroup, documentService portssvc.DocumentSvc, maxUploadBytes int64) {
	h := &documentHandler{documentService: documentService, maxUploadBytes: maxUploadBytes}

	documents := rg.Group("/documents")
	{
		documents.POST("", h.registerDocument)
		documents.GET("/:documentID", h.getDocument)
	}
}

// registerDocument godoc
// @Summary Register an uploaded PDF
// @Description Counts the pages of the uploaded PDF and stores its metadata. The storage key
// @Description is the location of the file in document storage; one is generated if omitted.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "PDF file"
// @Param name formData string false "Display name (defaults to the file name)"
// @Param storageKey formData string false "Storage key of the uploaded file"
// @Success 201 {object} dto.DocumentResponse
// @Failure 400 {object} map[string]string "Missing or unreadable PDF"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /documents [post]
func (h *documentHandler) registerDocument(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := requireSession(c)
	if !ok {
		return
	}

	if h.maxUploadBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		logger.Warn("Missing document upload", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "A PDF file is required in the 'file' field"})
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		respondError(c, err, "Failed to read upload")
		return
	}
	defer file.Close()

	name := c.PostForm("name")
	if name == "" {
		name = filepath.Base(fileHeader.Filename)
	}

	doc, err := h.documentService.RegisterDocument(c.Request.Context(), session, name, c.PostForm("storageKey"), file)
	if err != nil {
		respondError(c, err, "Failed to register document")
		return
	}
	c.JSON(http.StatusCreated, dto.ToDocumentResponse(doc))
}

// getDocument godoc
// @Summary Get document metadata
// @Tags documents
// @Produce json
// @Param documentID path string true "Document ID"
// @Success 200 {object} dto.DocumentResponse
// @Failure 404 {object} map[string]string "Document not found"
// @Security BearerAuth
// @Router /documents/{documentID} [get]
func (h *documentHandler) getDocument(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	doc, err := h.documentService.GetDocument(c.Request.Context(), session, c.Param("documentID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve document")
		return
	}
	c.JSON(http.StatusOK, dto.ToDocumentResponse(doc))
}
