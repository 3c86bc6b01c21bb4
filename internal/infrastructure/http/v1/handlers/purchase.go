package handlers

import (
	"github.com/gin-gonic/gin"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/id"
	"steeldesk/internal/domain"
	"steeldesk/internal/domain/documents/purchase"
	"steeldesk/internal/infrastructure/http/v1/dto"
)

// PurchaseHandler handles HTTP requests for purchase orders.
type PurchaseHandler struct {
	*BaseHandler
	service *purchase.Service
}

// NewPurchaseHandler creates a new purchase order handler.
func NewPurchaseHandler(base *BaseHandler, service *purchase.Service) *PurchaseHandler {
	return &PurchaseHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /documents/purchase-orders.
// With postImmediately=true the draft is saved and posted in one transaction.
func (h *PurchaseHandler) Create(c *gin.Context) {
	var req dto.CreatePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	ctx := c.Request.Context()
	if req.PostImmediately {
		err = h.service.PostAndSave(ctx, doc)
	} else {
		err = h.service.Create(ctx, doc)
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromPurchaseOrder(doc))
}

// Get handles GET /documents/purchase-orders/:id.
func (h *PurchaseHandler) Get(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPurchaseOrder(doc))
}

// Update handles PUT /documents/purchase-orders/:id.
func (h *PurchaseHandler) Update(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdatePurchaseOrderRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(doc); err != nil {
		h.Error(c, err)
		return
	}

	if err := h.service.Update(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPurchaseOrder(doc))
}

// Delete handles DELETE /documents/purchase-orders/:id.
func (h *PurchaseHandler) Delete(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Delete(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// Post handles POST /documents/purchase-orders/:id/post.
func (h *PurchaseHandler) Post(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Post(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "purchase order posted")
}

// Unpost handles POST /documents/purchase-orders/:id/unpost.
func (h *PurchaseHandler) Unpost(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Unpost(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "purchase order unposted")
}

// List handles GET /documents/purchase-orders.
func (h *PurchaseHandler) List(c *gin.Context) {
	f := purchase.ListFilter{ListFilter: domain.DefaultListFilter()}
	f.Search = c.Query("search")
	f.Limit = h.ParseIntQuery(c, "limit", 50)
	f.Offset = h.ParseIntQuery(c, "offset", 0)
	f.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	f.IncludeDeleted = c.Query("includeDeleted") == "true"

	if vendorID := c.Query("vendorId"); vendorID != "" {
		parsed, err := id.Parse(vendorID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid vendorId format"))
			return
		}
		f.VendorID = &parsed
	}
	if posted := c.Query("posted"); posted != "" {
		val := posted == "true"
		f.Posted = &val
	}
	result, err := h.service.List(c.Request.Context(), f)
	if err != nil {
		h.Error(c, err)
		return
	}

	docs := make([]*dto.PurchaseOrderResponse, len(result.Items))
	for i, doc := range result.Items {
		docs[i] = dto.FromPurchaseOrder(doc)
	}

	h.OK(c, dto.ListResponse{
		Items:      docs,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers purchase order routes.
func (h *PurchaseHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/post", h.Post)
	rg.POST("/:id/unpost", h.Unpost)
}

func (h *PurchaseHandler) parseID(c *gin.Context) (id.ID, bool) {
	parsed, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return id.Nil(), false
	}
	return parsed, true
}
