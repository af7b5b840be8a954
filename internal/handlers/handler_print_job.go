package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/SscSPs/print_quota_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// printJobHandler handles HTTP requests related to print jobs.
type printJobHandler struct {
	submissionService portssvc.SubmissionSvc
	printJobService   portssvc.PrintJobSvcFacade
}

func registerPrintJobRoutes(rg *gin.RouterGroup, submissionService portssvc.SubmissionSvc, printJobService portssvc.PrintJobSvcFacade) {
	h := &printJobHandler{submissionService: submissionService, printJobService: printJobService}

	jobs := rg.Group("/print-jobs")
	{
		jobs.POST("/estimate", h.estimate)
		jobs.POST("", h.submit)
		jobs.GET("", h.listJobs)
		jobs.GET("/:jobID", h.getJob)
		jobs.POST("/:jobID/cancel", h.cancelJob)
	}
}

// estimate godoc
// @Summary Estimate the cost of a print batch
// @Description Prices every document of the batch in A4-equivalent pages without charging
// @Tags print-jobs
// @Accept json
// @Produce json
// @Param batch body dto.SubmitPrintJobsRequest true "Documents to print"
// @Success 200 {object} dto.EstimateResponse
// @Failure 400 {object} map[string]string "Invalid print options"
// @Failure 404 {object} map[string]string "Document or printer not found"
// @Failure 422 {object} map[string]string "Printer cannot satisfy the options"
// @Security BearerAuth
// @Router /print-jobs/estimate [post]
func (h *printJobHandler) estimate(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.SubmitPrintJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "Estimate")
		return
	}

	estimate, err := h.submissionService.Estimate(c.Request.Context(), session, req.ToDomainRequests())
	if err != nil {
		respondError(c, err, "Failed to estimate print batch")
		return
	}
	c.JSON(http.StatusOK, estimate)
}

// submit godoc
// @Summary Submit a print batch
// @Description Charges the whole batch with a single debit and creates one PENDING job per
// @Description document. Either every document is accepted or none is.
// @Tags print-jobs
// @Accept json
// @Produce json
// @Param batch body dto.SubmitPrintJobsRequest true "Documents to print"
// @Success 201 {object} dto.SubmitPrintJobsResponse
// @Failure 400 {object} map[string]string "Invalid print options"
// @Failure 402 {object} map[string]any "Insufficient balance (carries balance and required)"
// @Failure 404 {object} map[string]string "Document or printer not found"
// @Failure 422 {object} map[string]string "Printer cannot satisfy the options"
// @Security BearerAuth
// @Router /print-jobs [post]
func (h *printJobHandler) submit(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.SubmitPrintJobsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "SubmitPrintJobs")
		return
	}

	logger.Info("Received print batch", slog.Int("documents", len(req.Documents)))
	jobs, err := h.submissionService.Submit(c.Request.Context(), session, req.ToDomainRequests())
	if err != nil {
		respondError(c, err, "Failed to submit print batch")
		return
	}
	c.JSON(http.StatusCreated, dto.ToSubmitPrintJobsResponse(jobs))
}

// listJobs godoc
// @Summary List my print jobs
// @Tags print-jobs
// @Produce json
// @Param limit query int false "Page size (1-100)" default(20)
// @Param nextToken query string false "Token from the previous page"
// @Success 200 {object} dto.ListPrintJobsResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /print-jobs [get]
func (h *printJobHandler) listJobs(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var params dto.ListPrintJobsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "ListPrintJobs")
		return
	}

	resp, err := h.printJobService.ListJobs(c.Request.Context(), session, params)
	if err != nil {
		respondError(c, err, "Failed to list print jobs")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// getJob godoc
// @Summary Get a print job
// @Tags print-jobs
// @Produce json
// @Param jobID path string true "Job ID"
// @Success 200 {object} dto.PrintJobResponse
// @Failure 404 {object} map[string]string "Print job not found"
// @Security BearerAuth
// @Router /print-jobs/{jobID} [get]
func (h *printJobHandler) getJob(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	job, err := h.printJobService.GetJob(c.Request.Context(), session, c.Param("jobID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve print job")
		return
	}
	c.JSON(http.StatusOK, dto.ToPrintJobResponse(job))
}

// cancelJob godoc
// @Summary Cancel a pending print job
// @Description Cancels a PENDING job and refunds its charge
// @Tags print-jobs
// @Produce json
// @Param jobID path string true "Job ID"
// @Success 200 {object} dto.PrintJobResponse
// @Failure 404 {object} map[string]string "Print job not found"
// @Failure 409 {object} map[string]string "Job is no longer pending"
// @Security BearerAuth
// @Router /print-jobs/{jobID}/cancel [post]
func (h *printJobHandler) cancelJob(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	job, err := h.printJobService.CancelJob(c.Request.Context(), session, c.Param("jobID"))
	if err != nil {
		respondError(c, err, "Failed to cancel print job")
		return
	}
	c.JSON(http.StatusOK, dto.ToPrintJobResponse(job))
}
