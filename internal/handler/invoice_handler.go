package handler

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"invoicegen/internal/csvexport"
	"invoicegen/internal/middleware"
	"invoicegen/internal/service"
	"invoicegen/internal/xlsxexport"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// InvoiceHandler handles invoice endpoints.
type InvoiceHandler struct {
	invoiceService service.InvoiceService
}

// NewInvoiceHandler creates a new InvoiceHandler.
func NewInvoiceHandler(invoiceService service.InvoiceService) *InvoiceHandler {
	return &InvoiceHandler{invoiceService: invoiceService}
}

// List handles GET /api/invoices. The response keeps the historical raw
// shape the web client binds to.
func (h *InvoiceHandler) List(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	invoices, total, err := h.invoiceService.List(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"invoices": invoices, "totalCount": total})
}

// Create handles POST /api/invoices.
func (h *InvoiceHandler) Create(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var input service.CreateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	_, total, err := h.invoiceService.Create(c.Request.Context(), userID, input)
	if err != nil {
		respondLegacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice saved", "totalInvoices": total})
}

// Update handles POST /api/update-invoice, the payment-tracking edit.
func (h *InvoiceHandler) Update(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	var input service.UpdateInvoiceInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": "invalid request body"})
		return
	}

	invoice, err := h.invoiceService.Update(c.Request.Context(), userID, input)
	if err != nil {
		respondLegacyError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Invoice updated", "invoice": invoice})
}

// Summary handles GET /api/invoices/summary.
func (h *InvoiceHandler) Summary(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	summary, err := h.invoiceService.Summary(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, summary)
}

// DownloadPDF handles GET /api/invoices/:index/pdf.
func (h *InvoiceHandler) DownloadPDF(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	pdf, invoice, err := h.invoiceService.RenderPDF(c.Request.Context(), userID, index)
	if err != nil {
		HandleError(c, err)
		return
	}

	name := csvexport.SanitizeFilename(invoice.InvoiceNo)
	if name == "" {
		name = "invoice"
	}
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", name))
	c.Data(http.StatusOK, "application/pdf", pdf)
}

// ExportCSV handles GET /api/invoices/export/csv.
func (h *InvoiceHandler) ExportCSV(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	invoices, _, err := h.invoiceService.List(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	var buf bytes.Buffer
	buf.Write(csvexport.BOM)
	w := csvexport.NewWriter(&buf)
	if err := w.WriteHeader(); err != nil {
		HandleError(c, err)
		return
	}
	if err := w.WriteInvoices(invoices); err != nil {
		HandleError(c, err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", csvexport.BuildFilename("invoices")))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

// ExportXLSX handles GET /api/invoices/export/xlsx.
func (h *InvoiceHandler) ExportXLSX(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	invoices, _, err := h.invoiceService.List(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	data, err := xlsxexport.Write(invoices)
	if err != nil {
		HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", xlsxexport.BuildFilename("invoices")))
	c.Data(http.StatusOK, xlsxContentType, data)
}

// Send handles POST /api/invoices/:index/send. The body is optional; without
// an explicit recipient the invoice's client email is used.
func (h *InvoiceHandler) Send(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	var input service.SendInvoiceInput
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&input); err != nil {
			RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", err.Error())
			return
		}
	}

	recipient, err := h.invoiceService.SendInvoice(c.Request.Context(), userID, index, input)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"sentTo": recipient})
}

// requireUser extracts the authenticated user ID from the request context.
// Returns false if it is missing (error response already written).
func requireUser(c *gin.Context) (uuid.UUID, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return uuid.Nil, false
	}
	return userID, true
}

// parseIndex parses the :index path parameter, the invoice's 0-based position
// within the caller's collection.
func parseIndex(c *gin.Context) (int, bool) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil || index < 0 {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "index must be a non-negative integer")
		return 0, false
	}
	return index, true
}

// respondLegacyError maps a domain error onto the historical flat
// {message} shape used by the original client routes.
func respondLegacyError(c *gin.Context, err error) {
	status, _, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
		c.JSON(status, gin.H{"message": "Server error"})
		return
	}
	c.JSON(status, gin.H{"message": msg})
}
