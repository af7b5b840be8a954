package handlers

import (
	"log/slog"
	"net/http"

	"github.com/SscSPs/print_quota_service/internal/core/domain"
	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/SscSPs/print_quota_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

// adminHandler serves quota administration and the printer-dispatch status feed.
type adminHandler struct {
	ledgerService   portssvc.LedgerSvcFacade
	printJobService portssvc.PrintJobLifecycleSvc
}

func registerAdminRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerSvcFacade, printJobService portssvc.PrintJobLifecycleSvc) {
	h := &adminHandler{ledgerService: ledgerService, printJobService: printJobService}

	admin := rg.Group("/admin", middleware.RequireRole(domain.RoleAdmin))
	{
		admin.GET("/users/:userID/balance", h.getUserBalance)
		admin.POST("/users/:userID/allocations", h.allocatePages)
		admin.POST("/print-jobs/:jobID/status", h.updatePrintJobStatus)
	}
}

// getUserBalance godoc
// @Summary Get a user's page balance
// @Tags admin
// @Produce json
// @Param userID path string true "User ID"
// @Success 200 {object} dto.BalanceResponse
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/users/{userID}/balance [get]
func (h *adminHandler) getUserBalance(c *gin.Context) {
	balance, err := h.ledgerService.GetBalance(c.Request.Context(), c.Param("userID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// allocatePages godoc
// @Summary Allocate pages to a user
// @Description Appends an ALLOCATE credit to the user's ledger
// @Tags admin
// @Accept json
// @Produce json
// @Param userID path string true "User ID"
// @Param allocation body dto.AllocatePagesRequest true "Pages to allocate"
// @Success 201 {object} dto.PageTransactionResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Failure 403 {object} map[string]string "Forbidden"
// @Security BearerAuth
// @Router /admin/users/{userID}/allocations [post]
func (h *adminHandler) allocatePages(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.AllocatePagesRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "AllocatePages")
		return
	}

	userID := c.Param("userID")
	txn, err := h.ledgerService.Credit(c.Request.Context(), userID, domain.Allocate, req.Amount, req.Note, session.UserID)
	if err != nil {
		respondError(c, err, "Failed to allocate pages")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Pages allocated", slog.String("target_user_id", userID), slog.Int64("amount", req.Amount))
	c.JSON(http.StatusCreated, dto.ToPageTransactionResponse(txn))
}

// updatePrintJobStatus godoc
// @Summary Report print job progress
// @Description Moves a job to PRINTING, COMPLETED or FAILED. Failed jobs are not refunded.
// @Tags admin
// @Accept json
// @Produce json
// @Param jobID path string true "Job ID"
// @Param status body dto.UpdatePrintJobStatusRequest true "New status"
// @Success 200 {object} dto.PrintJobResponse
// @Failure 404 {object} map[string]string "Print job not found"
// @Failure 409 {object} map[string]string "Transition not allowed"
// @Security BearerAuth
// @Router /admin/print-jobs/{jobID}/status [post]
func (h *adminHandler) updatePrintJobStatus(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.UpdatePrintJobStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "UpdatePrintJobStatus")
		return
	}

	job, err := h.printJobService.UpdateStatus(c.Request.Context(), session, c.Param("jobID"), req.Status, req.ErrorMessage)
	if err != nil {
		respondError(c, err, "Failed to update print job")
		return
	}
	c.JSON(http.StatusOK, dto.ToPrintJobResponse(job))
}
