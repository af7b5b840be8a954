package handlers

import (
	"net/http"

	portssvc "github.com/SscSPs/print_quota_service/internal/core/ports/services"
	"github.com/SscSPs/print_quota_service/internal/dto"
	"github.com/gin-gonic/gin"
)

type printerHandler struct {
	printerService portssvc.PrinterSvc
}

func registerPrinterRoutes(rg *gin.RouterGroup, printerService portssvc.PrinterSvc) {
	h := &printerHandler{printerService: printerService}

	printers := rg.Group("/printers")
	{
		printers.GET("", h.listPrinters)
		printers.GET("/:printerID", h.getPrinter)
	}
}

// listPrinters godoc
// @Summary List printers
// @Description Lists the printers of the registry with their capabilities
// @Tags printers
// @Produce json
// @Success 200 {array} dto.PrinterResponse
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to list printers"
// @Security BearerAuth
// @Router /printers [get]
func (h *printerHandler) listPrinters(c *gin.Context) {
	printers, err := h.printerService.ListPrinters(c.Request.Context())
	if err != nil {
		respondError(c, err, "Failed to list printers")
		return
	}
	c.JSON(http.StatusOK, dto.ToPrinterResponses(printers))
}

// getPrinter godoc
// @Summary Get a printer
// @Tags printers
// @Produce json
// @Param printerID path string true "Printer ID"
// @Success 200 {object} dto.PrinterResponse
// @Failure 404 {object} map[string]string "Printer not found"
// @Security BearerAuth
// @Router /printers/{printerID} [get]
func (h *printerHandler) getPrinter(c *gin.Context) {
	printer, err := h.printerService.GetPrinter(c.Request.Context(), c.Param("printerID"))
	if err != nil {
		respondError(c, err, "Failed to retrieve printer")
		return
	}
	c.JSON(http.StatusOK, dto.ToPrinterResponse(printer))
}
