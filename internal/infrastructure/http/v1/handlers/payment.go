package handlers

import (
	"github.com/gin-gonic/gin"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/core/id"
	"steeldesk/internal/domain"
	"steeldesk/internal/domain/documents/payment"
	"steeldesk/internal/infrastructure/http/v1/dto"
)

// PaymentHandler handles HTTP requests for payment documents.
type PaymentHandler struct {
	*BaseHandler
	service *payment.Service
}

// NewPaymentHandler creates a new payment handler.
func NewPaymentHandler(base *BaseHandler, service *payment.Service) *PaymentHandler {
	return &PaymentHandler{
		BaseHandler: base,
		service:     service,
	}
}

// Create handles POST /documents/payments.
func (h *PaymentHandler) Create(c *gin.Context) {
	var req dto.CreatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc := req.ToEntity()

	ctx := c.Request.Context()
	var err error
	if req.PostImmediately {
		err = h.service.PostAndSave(ctx, doc)
	} else {
		err = h.service.Create(ctx, doc)
	}
	if err != nil {
		h.Error(c, err)
		return
	}

	h.Created(c, dto.FromPayment(doc))
}

// Get handles GET /documents/payments/:id.
func (h *PaymentHandler) Get(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPayment(doc))
}

// Update handles PUT /documents/payments/:id.
func (h *PaymentHandler) Update(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	var req dto.UpdatePaymentRequest
	if !h.BindJSON(c, &req) {
		return
	}

	doc, err := h.service.GetByID(c.Request.Context(), docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	req.ApplyTo(doc)

	if err := h.service.Update(c.Request.Context(), doc); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromPayment(doc))
}

// Delete handles DELETE /documents/payments/:id.
func (h *PaymentHandler) Delete(c *gin.Context) {
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

// Post handles POST /documents/payments/:id/post.
func (h *PaymentHandler) Post(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Post(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "payment posted")
}

// Unpost handles POST /documents/payments/:id/unpost.
func (h *PaymentHandler) Unpost(c *gin.Context) {
	docID, ok := h.parseID(c)
	if !ok {
		return
	}

	if err := h.service.Unpost(c.Request.Context(), docID); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "payment unposted")
}

// FullAmount handles GET /documents/payments/full-amount.
// Returns the party's outstanding balance for one-click full settlement.
func (h *PaymentHandler) FullAmount(c *gin.Context) {
	partyID, err := id.Parse(c.Query("partyId"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid or missing partyId"))
		return
	}

	amount, err := h.service.FullAmount(c.Request.Context(), partyID)
	if err != nil {
		h.Error(c, err)
		return
	}

	// Already rounded down by the service; never round up here.
	h.OK(c, dto.FullAmountResponse{
		PartyID: partyID.String(),
		Amount:  amount,
	})
}

// List handles GET /documents/payments.
func (h *PaymentHandler) List(c *gin.Context) {
	f := payment.ListFilter{ListFilter: domain.DefaultListFilter()}
	f.Search = c.Query("search")
	f.Limit = h.ParseIntQuery(c, "limit", 50)
	f.Offset = h.ParseIntQuery(c, "offset", 0)
	f.OrderBy = c.DefaultQuery("orderBy", "date DESC")
	f.IncludeDeleted = c.Query("includeDeleted") == "true"

	if partyID := c.Query("partyId"); partyID != "" {
		parsed, err := id.Parse(partyID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid partyId format"))
			return
		}
		f.PartyID = &parsed
	}
	if orderID := c.Query("orderId"); orderID != "" {
		parsed, err := id.Parse(orderID)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid orderId format"))
			return
		}
		f.OrderID = &parsed
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

	docs := make([]*dto.PaymentResponse, len(result.Items))
	for i, doc := range result.Items {
		docs[i] = dto.FromPayment(doc)
	}

	h.OK(c, dto.ListResponse{
		Items:      docs,
		TotalCount: result.TotalCount,
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers payment routes.
func (h *PaymentHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.List)
	rg.GET("/full-amount", h.FullAmount)
	rg.POST("", h.Create)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/post", h.Post)
	rg.POST("/:id/unpost", h.Unpost)
}

func (h *PaymentHandler) parseID(c *gin.Context) (id.ID, bool) {
	parsed, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return id.Nil(), false
	}
	return parsed, true
}
