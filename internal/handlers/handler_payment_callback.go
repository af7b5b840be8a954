package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/gin-gonic/gin"
)

type paymentCallbackHandler struct {
	paymentService portssvc.PaymentSvc
}

func registerPaymentCallbackRoutes(rg *gin.RouterGroup, paymentService portssvc.PaymentSvc) {
	h := &paymentCallbackHandler{paymentService: paymentService}
	rg.POST("/payments/confirm", h.confirmPayment)
}

// confirmPayment godoc
// @Summary Confirm a received payment
// @Description Called by the payment service. Credits the pages once per payment reference;
// @Description repeated calls return the original transaction.
// @Tags internal
// @Accept json
// @Produce json
// @Param confirmation body dto.ConfirmPaymentRequest true "Payment details"
// @Success 200 {object} dto.PageTransactionResponse
// @Failure 401 {object} map[string]string "Invalid service key"
// @Failure 409 {object} map[string]string "Payment cancelled, expired or mismatched"
// @Security ApiKeyAuth
// @Router /internal/payments/confirm [post]
func (h *paymentCallbackHandler) confirmPayment(c *gin.Context) {
	var req dto.ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err, "ConfirmPayment")
		return
	}

	txn, err := h.paymentService.ConfirmPayment(c.Request.Context(), req.UserID, req.Amount, req.PaymentReference)
	if err != nil {
		respondError(c, err, "Failed to confirm payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToPageTransactionResponse(txn))
}
