package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/SscSPs/print_quota_service/internal/middleware"
	"github.com/gin-gonic/gin"
)

type topUpHandler struct {
	paymentService portssvc.PaymentSvc
}

func registerTopUpRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvc) {
	h := &topUpHandler{paymentService: paymentService}

	topUps := rg.Group("/top-ups")
	{
		topUps.POST("", h.startTopUp)
		topUps.GET("/:reference", h.getTopUp)
		topUps.DELETE("/:reference", h.cancelTopUp)
	}
}

// startTopUp godoc
// @Summary Start a page purchase
// @Description Creates a pending payment; pages are credited once the payment service confirms it
// @Tags top-ups
// @Accept json
// @Produce json
// @Param topUp body dto.StartTopUpRequest true "Pages to buy"
// @Success 201 {object} dto.TopUpResponse
// @Failure 400 {object} map[string]string "Invalid amount"
// @Security BearerAuth
// @Router /top-ups [post]
func (h *topUpHandler) startTopUp(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var req dto.StartTopUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "StartTopUp")
		return
	}

	payment, err := h.paymentService.StartTopUp(c.Request.Context(), session, req.Amount)
	if err != nil {
		respondError(c, err, "Failed to start top-up")
		return
	}
	middleware.GetLoggerFromCtx(c.Request.Context()).Info("Top-up created", slog.String("reference", payment.Reference))
	c.JSON(http.StatusCreated, dto.ToTopUpResponse(payment))
}

// getTopUp godoc
// @Summary Get a top-up
// @Tags top-ups
// @Produce json
// @Param reference path string true "Payment reference"
// @Success 200 {object} dto.TopUpResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Security BearerAuth
// @Router /top-ups/{reference} [get]
func (h *topUpHandler) getTopUp(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.GetTopUp(c.Request.Context(), session, c.Param("reference"))
	if err != nil {
		respondError(c, err, "Failed to retrieve top-up")
		return
	}
	c.JSON(http.StatusOK, dto.ToTopUpResponse(payment))
}

// cancelTopUp godoc
// @Summary Cancel a pending top-up
// @Tags top-ups
// @Produce json
// @Param reference path string true "Payment reference"
// @Success 200 {object} dto.TopUpResponse
// @Failure 404 {object} map[string]string "Payment not found"
// @Failure 409 {object} map[string]string "Payment is no longer pending"
// @Security BearerAuth
// @Router /top-ups/{reference} [delete]
func (h *topUpHandler) cancelTopUp(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	payment, err := h.paymentService.CancelTopUp(c.Request.Context(), session, c.Param("reference"))
	if err != nil {
		respondError(c, err, "Failed to cancel top-up")
		return
	}
	c.JSON(http.StatusOK, dto.ToTopUpResponse(payment))
}
