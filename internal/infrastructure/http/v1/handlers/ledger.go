package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/id"
	"steeldesk/internal/core/types"
	"steeldesk/internal/domain/ledger"
	"steeldesk/internal/infrastructure/http/v1/dto"
)

// LedgerHandler serves party ledger statements and balances.
type LedgerHandler struct {
	*BaseHandler
	service *ledger.Service
}

// NewLedgerHandler creates a new ledger handler.
func NewLedgerHandler(base *BaseHandler, service *ledger.Service) *LedgerHandler {
	return &LedgerHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Statement handles GET /registers/ledger/:partyId/statement.
func (h *LedgerHandler) Statement(c *gin.Context) {
	partyID, err := id.Parse(c.Param("partyId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid partyId format"))
		return
	}

	f := ledger.EntryFilter{
		Limit:  h.ParseIntQuery(c, "limit", 100),
		Offset: h.ParseIntQuery(c, "offset", 0),
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

	st, err := h.service.GetStatement(c.Request.Context(), partyID, f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromStatement(st))
}

// Balance handles GET /registers/ledger/:partyId/balance.
func (h *LedgerHandler) Balance(c *gin.Context) {
	partyID, err := id.Parse(c.Param("partyId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid partyId format"))
		return
	}

	balance, err := h.service.GetBalance(c.Request.Context(), partyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.BalanceResponse{
		PartyID: partyID.String(),
		Balance: types.Round2(balance),
	})
}

// RegisterRoutes registers ledger routes.
func (h *LedgerHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/:partyId/statement", h.Statement)
	rg.GET("/:partyId/balance", h.Balance)
}

// parseDateQuery parses an optional RFC3339 query parameter.
// Returns false after registering a validation error.
func (h *LedgerHandler) parseDateQuery(c *gin.Context, key string) (*time.Time, bool) {
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
