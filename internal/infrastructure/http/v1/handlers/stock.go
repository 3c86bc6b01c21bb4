package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/entity"
	"steeldesk/internal/core/id"
	"steeldesk/internal/domain/registers/stock"
	"steeldesk/internal/infrastructure/http/v1/dto"
)

// StockHandler serves stock balances, availability and movement history.
type StockHandler struct {
	*BaseHandler
	service *stock.Service
}

// NewStockHandler creates a new stock handler.
func NewStockHandler(base *BaseHandler, service *stock.Service) *StockHandler {
	return &StockHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Balances handles GET /registers/stock.
func (h *StockHandler) Balances(c *gin.Context) {
	balances, err := h.service.GetStock(c.Request.Context())
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, balances)
}

// Availability handles GET /registers/stock/:itemId/availability.
func (h *StockHandler) Availability(c *gin.Context) {
	itemID, ok := h.parseItemID(c)
	if !ok {
		return
	}

	qty, err := h.service.GetAvailability(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.AvailabilityResponse{
		ItemID:   itemID.String(),
		Quantity: qty,
	})
}

// Movements handles GET /registers/stock/:itemId/movements.
func (h *StockHandler) Movements(c *gin.Context) {
	itemID, ok := h.parseItemID(c)
	if !ok {
		return
	}

	f := stock.MovementFilter{
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
	}
	if rt := c.Query("recordType"); rt != "" {
		recordType := entity.RecordType(rt)
		if recordType != entity.RecordTypeReceipt && recordType != entity.RecordTypeIssue {
			h.Error(c, apperror.NewValidation("invalid recordType, expected receipt or issue"))
			return
		}
		f.RecordType = &recordType
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

	movements, err := h.service.GetMovementHistory(c.Request.Context(), itemID, f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, movements)
}

// Turnover handles GET /registers/stock/turnover.
// Requires dateFrom and dateTo; itemId narrows to a single item.
func (h *StockHandler) Turnover(c *gin.Context) {
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

	f := stock.TurnoverFilter{FromDate: *from, ToDate: *to}
	if itemID := c.Query("itemId"); itemID != "" {
		parsed, err := id.Parse(itemID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid itemId format"))
			return
		}
		f.ItemID = &parsed
	}

	turnovers, err := h.service.GetTurnover(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, turnovers)
}

// RegisterRoutes registers stock register routes.
func (h *StockHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.Balances)
	rg.GET("/turnover", h.Turnover)
	rg.GET("/:itemId/availability", h.Availability)
	rg.GET("/:itemId/movements", h.Movements)
}

func (h *StockHandler) parseItemID(c *gin.Context) (id.ID, bool) {
	parsed, err := id.Parse(c.Param("itemId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid itemId format"))
		return id.Nil(), false
	}
	return parsed, true
}

func (h *StockHandler) parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
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
