package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/gin-gonic/gin"
)

type balanceHandler struct {
	ledgerService portssvc.LedgerReaderSvc
}

func registerBalanceRoutes(rg *gin.RouterGroup, ledgerService portssvc.LedgerReaderSvc) {
	h := &balanceHandler{ledgerService: ledgerService}

	balance := rg.Group("/balance")
	{
		balance.GET("", h.getBalance)
		balance.GET("/transactions", h.listTransactions)
	}
}

// getBalance godoc
// @Summary Get my page balance
// @Tags balance
// @Produce json
// @Success 200 {object} dto.BalanceResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Security BearerAuth
// @Router /balance [get]
func (h *balanceHandler) getBalance(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	balance, err := h.ledgerService.GetBalance(c.Request.Context(), session.UserID)
	if err != nil {
		respondError(c, err, "Failed to retrieve balance")
		return
	}
	c.JSON(http.StatusOK, dto.ToBalanceResponse(balance))
}

// listTransactions godoc
// @Summary List my ledger transactions
// @Description Returns one page of the caller's ledger, newest first
// @Tags balance
// @Produce json
// @Param page query int false "1-based page number" default(1)
// @Param size query int false "Page size (1-100)" default(20)
// @Success 200 {object} dto.TransactionHistoryResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /balance/transactions [get]
func (h *balanceHandler) listTransactions(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}
	var params dto.ListTransactionsParams
	if err := c.ShouldBindQuery(&params); err != nil {
		bindError(c, err, "ListTransactions")
		return
	}

	history, err := h.ledgerService.History(c.Request.Context(), session.UserID, params)
	if err != nil {
		respondError(c, err, "Failed to list transactions")
		return
	}
	c.JSON(http.StatusOK, history)
}
