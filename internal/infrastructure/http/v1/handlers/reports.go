package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/domain/reports"
	"steeldesk/internal/infrastructure/http/v1/dto"
)

// ReportsHandler serves the business reports.
type ReportsHandler struct {
	*BaseHandler
	service *reports.Service
}

// NewReportsHandler creates a new reports handler.
func NewReportsHandler(base *BaseHandler, service *reports.Service) *ReportsHandler {
	return &ReportsHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Stock handles GET /reports/stock.
func (h *ReportsHandler) Stock(c *gin.Context) {
	excludeZero := c.Query("excludeZero") == "true"

	rows, err := h.service.StockReport(c.Request.Context(), excludeZero)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rows)
}

// SalesSummary handles GET /reports/sales-summary.
// Requires dateFrom and dateTo in RFC3339.
func (h *ReportsHandler) SalesSummary(c *gin.Context) {
	from, ok := h.parseDateQuery(c, "dateFrom")
	if !ok {
		return
	}
	to, okTo := h.parseDateQuery(c, "dateTo")
	if !okTo {
		return
	}
	if from == nil || to == nil {
		h.Error(c, apperror.NewValidation("dateFrom and dateTo are required"))
		return
	}

	summary, err := h.service.SalesSummaryReport(c.Request.Context(), *from, *to)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromSalesSummary(summary))
}

// Receivables handles GET /reports/receivables.
func (h *ReportsHandler) Receivables(c *gin.Context) {
	balances, err := h.service.Receivables(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPartyBalances(balances))
}

// Payables handles GET /reports/payables.
func (h *ReportsHandler) Payables(c *gin.Context) {
	balances, err := h.service.Payables(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPartyBalances(balances))
}

// Journal handles GET /reports/journal.
func (h *ReportsHandler) Journal(c *gin.Context) {
	f := reports.JournalFilter{
		DocumentType: c.Query("documentType"),
		Limit:        h.ParseIntQuery(c, "limit", 100),
		Offset:       h.ParseIntQuery(c, "offset", 0),
	}
	if from, ok := h.parseDateQuery(c, "dateFrom"); ok {
		f.FromDate = from
	} else {
		return
	}
	if to, ok := h.parseDateQuery(c, "dateTo"); ok {
		f.ToDate = to
	} else {
		return
	}

	rows, err := h.service.DocumentJournal(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, rows)
}

// RegisterRoutes registers report routes.
func (h *ReportsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/stock", h.Stock)
	rg.GET("/sales-summary", h.SalesSummary)
	rg.GET("/receivables", h.Receivables)
	rg.GET("/payables", h.Payables)
	rg.GET("/journal", h.Journal)
}

func (h *ReportsHandler) parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
	val := c.Query(key)
	if val == "" {
		return nil, true
	}
	parsed, err := time.Parse(time.RFC3339, val)
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid "+key+" format, expected RFC3339"))
		return nil, false
	}
	return &parsed, true
}
