package handlers

import (
	"github.com/gin-gonic/gin"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/id"
	"steeldesk/internal/domain"
	"steeldesk/internal/domain/catalogs/item"
	"steeldesk/internal/domain/filter"
	"steeldesk/internal/infrastructure/http/v1/dto"
)

// ItemHandler handles HTTP requests for the Item catalog.
type ItemHandler struct {
	*BaseHandler
	service *item.Service
}

// NewItemHandler creates a new item handler.
func NewItemHandler(base *BaseHandler, service *item.Service) *ItemHandler {
	return &ItemHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /catalog/items.
func (h *ItemHandler) Create(c *gin.Context) {
	var req dto.CreateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it := req.ToEntity()
	if err := h.service.Create(c.Request.Context(), it); err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromItem(it))
}

// Get handles GET /catalog/items/:id.
func (h *ItemHandler) Get(c *gin.Context) {
	itemID, ok := h.parseID(c)
	if !ok {
		return
	}

	it, err := h.service.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(it))
}

// Update handles PUT /catalog/items/:id.
func (h *ItemHandler) Update(c *gin.Context) {
	itemID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdateItemRequest
	if !h.BindJSON(c, &req) {
		return
	}

	it, err := h.service.GetByID(c.Request.Context(), itemID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(it)

	if err := h.service.Update(c.Request.Context(), it); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromItem(it))
}

// Delete handles DELETE /catalog/items/:id (soft delete).
func (h *ItemHandler) Delete(c *gin.Context) {
	itemID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.SetDeletionMark(c.Request.Context(), itemID, true); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// SetDeletionMark handles POST /catalog/items/:id/deletion-mark.
// Marking with marked=false restores a soft-deleted item.
func (h *ItemHandler) SetDeletionMark(c *gin.Context) {
	itemID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.SetDeletionMarkRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetDeletionMark(c.Request.Context(), itemID, req.Marked); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "deletion mark updated")
}

// List handles GET /catalog/items.
func (h *ItemHandler) List(c *gin.Context) {
	f := domain.DefaultListFilter()
	f.Search = c.Query("search")
	f.Limit = h.ParseIntQuery(c, "limit", 50)
	f.Offset = h.ParseIntQuery(c, "offset", 0)
	f.OrderBy = c.DefaultQuery("orderBy", "name")
	f.IncludeDeleted = c.Query("includeDeleted") == "true"

	if category := c.Query("category"); category != "" {
		if !item.IsValidCategory(item.Category(category)) {
			h.Error(c, apperror.NewValidation("invalid item category").
				WithDetail("category", category))
			return
		}
		f.AdvancedFilters = append(f.AdvancedFilters, filter.Item{
			Field:    "category",
			Operator: filter.Equal,
			Value:    category,
		})
	}

	result, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.respondList(c, result)
}

// LowStock handles GET /catalog/items/low-stock.
func (h *ItemHandler) LowStock(c *gin.Context) {
	f := domain.DefaultListFilter()
	f.Limit = h.ParseIntQuery(c, "limit", 50)
	f.Offset = h.ParseIntQuery(c, "offset", 0)

	result, err := h.service.FindLowStock(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.respondList(c, result)
}

// RegisterRoutes registers item routes.
func (h *ItemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/low-stock", h.LowStock)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/deletion-mark", h.SetDeletionMark)
}

func (h *ItemHandler) parseID(c *gin.Context) (id.ID, bool) {
	parsed, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return id.Nil(), false
	}
	return parsed, true
}

func (h *ItemHandler) respondList(c *gin.Context, result domain.ListResult[*item.Item]) {
	items := make([]*dto.ItemResponse, len(result.Items))
	for i, it := range result.Items {
		items[i] = dto.FromItem(it)
	}

	h.OK(c, dto.ListResponse{
		Items:      items,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}
