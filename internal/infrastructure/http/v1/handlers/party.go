package handlers

import (
	"github.com/gin-gonic/gin"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/id"
	"steeldesk/internal/domain"
	"steeldesk/internal/domain/catalogs/party"
	"steeldesk/internal/infrastructure/http/v1/dto"
)

// PartyHandler handles HTTP requests for the Party catalog.
type PartyHandler struct {
	*BaseHandler
	service *party.Service
}

// NewPartyHandler creates a new party handler.
func NewPartyHandler(base *BaseHandler, service *party.Service) *PartyHandler {
	return &PartyHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /catalog/parties.
func (h *PartyHandler) Create(c *gin.Context) {
	var req dto.CreatePartyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromParty(p))
}

// Get handles GET /catalog/parties/:id.
func (h *PartyHandler) Get(c *gin.Context) {
	partyID, ok := h.parseID(c)
	if !ok {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), partyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromParty(p))
}

// Update handles PUT /catalog/parties/:id.
func (h *PartyHandler) Update(c *gin.Context) {
	partyID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdatePartyRequest
	if !h.BindJSON(c, &req) {
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), partyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(p)

	if err := h.service.Update(c.Request.Context(), p); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromParty(p))
}

// Delete handles DELETE /catalog/parties/:id (soft delete).
func (h *PartyHandler) Delete(c *gin.Context) {
	partyID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.SetDeletionMark(c.Request.Context(), partyID, true); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// SetDeletionMark handles POST /catalog/parties/:id/deletion-mark.
// Marking with marked=false restores a soft-deleted party.
func (h *PartyHandler) SetDeletionMark(c *gin.Context) {
	partyID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.SetDeletionMarkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetDeletionMark(c.Request.Context(), partyID, req.Marked); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "deletion mark updated")
}

// List handles GET /catalog/parties. An optional kind query parameter
// restricts the listing to customers or vendors.
func (h *PartyHandler) List(c *gin.Context) {
	f := domain.DefaultListFilter()
	f.Search = c.Query("search")
	f.Limit = h.ParseIntQuery(c, "limit", 50)
	f.Offset = h.ParseIntQuery(c, "offset", 0)
	f.OrderBy = c.DefaultQuery("orderBy", "name")
	f.IncludeDeleted = c.Query("includeDeleted") == "true"

	var (
		result domain.ListResult[*party.Party]
		err    error
	)

	if kind := c.Query("kind"); kind != "" {
		k := party.Kind(kind)
		if k != party.KindCustomer && k != party.KindVendor {
			h.Error(c, apperror.NewValidation("invalid party kind").
				WithDetail("kind", kind))
			return
		}
		result, err = h.service.ListByKind(c.Request.Context(), k, f)
	} else {
		result, err = h.service.List(c.Request.Context(), f)
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	h.respondList(c, result)
}

// RegisterRoutes registers party routes.
func (h *PartyHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/deletion-mark", h.SetDeletionMark)
}

func (h *PartyHandler) parseID(c *gin.Context) (id.ID, bool) {
	parsed, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return id.Nil(), false
	}
	return parsed, true
}

func (h *PartyHandler) respondList(c *gin.Context, result domain.ListResult[*party.Party]) {
	parties := make([]*dto.PartyResponse, len(result.Items))
	for i, p := range result.Items {
		parties[i] = dto.FromParty(p)
	}

	h.OK(c, dto.ListResponse{
		Items:      parties,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
