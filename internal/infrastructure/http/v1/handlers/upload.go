package handlers

import (
	"github.com/gin-gonic/gin"

	"steeldesk/internal/core/apperror"
	"steeldesk/internal/domain/catalogs/item"
	"steeldesk/internal/domain/ingest"
	"steeldesk/internal/infrastructure/http/v1/dto"
	"steeldesk/internal/infrastructure/spreadsheet"
)

const maxUploadBytes = 10 << 20

// UploadHandler handles spreadsheet uploads of purchase and sale lines.
// Uploads only validate and price the rows; nothing is persisted until
// the client submits the resulting lines as an order.
type UploadHandler struct {
	*BaseHandler
	items *item.Service
}

// NewUploadHandler creates a new upload handler.
func NewUploadHandler(base *BaseHandler, items *item.Service) *UploadHandler {
	return &UploadHandler{
		BaseHandler: base,
		items:       items,
	}
}

// Purchase handles POST /uploads/purchase.
// Expects multipart form fields "file" and "category".
func (h *UploadHandler) Purchase(c *gin.Context) {
	file, category, ok := h.parseUpload(c)
	if !ok {
		return
	}

	result, err := ingest.ProcessPurchase(file.Headers, file.Rows, category)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromIngestResult(result))
}

// Sale handles POST /uploads/sale.
// Sale rows are matched against the item catalog and checked for stock.
func (h *UploadHandler) Sale(c *gin.Context) {
	file, category, ok := h.parseUpload(c)
	if !ok {
		return
	}

	snapshot, err := h.items.Snapshot(c.Request.Context(), category)
	if err != nil {
		h.Error(c, err)
		return
	}

	result, err := ingest.ProcessSale(file.Headers, file.Rows, category, snapshot)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromIngestResult(result))
}

// Templates handles GET /uploads/templates.
// Returns the expected column headers per category, either as JSON or
// as a downloadable workbook with format=xlsx.
func (h *UploadHandler) Templates(c *gin.Context) {
	side := ingest.Side(c.DefaultQuery("side", string(ingest.SidePurchase)))
	if side != ingest.SidePurchase && side != ingest.SideSale {
		h.Error(c, apperror.NewValidation("invalid side, expected purchase or sale"))
		return
	}

	if c.Query("format") == "xlsx" {
		wb, err := spreadsheet.BuildTemplateWorkbook(side)
		if err != nil {
			h.Error(c, err)
			return
		}
		c.Header("Content-Disposition", `attachment; filename="`+string(side)+`_template.xlsx"`)
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		if err := wb.Write(c.Writer); err != nil {
			h.Error(c, apperror.NewInternal(err))
		}
		return
	}

	templates := make(map[string][]string)
	for category, headers := range ingest.Templates(side) {
		templates[string(category)] = headers
	}

	h.OK(c, dto.TemplatesResponse{
		Side:      string(side),
		Templates: templates,
	})
}

// RegisterRoutes registers upload routes.
func (h *UploadHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/purchase", h.Purchase)
	rg.POST("/sale", h.Sale)
	rg.GET("/templates", h.Templates)
}

func (h *UploadHandler) parseUpload(c *gin.Context) (*spreadsheet.File, item.Category, bool) {
	category := item.Category(c.PostForm("category"))
	if !item.IsValidCategory(category) {
		h.Error(c, apperror.NewValidation("invalid or missing category").
			WithDetail("category", string(category)))
		return nil, "", false
	}

	header, err := c.FormFile("file")
	if err != nil {
		h.Error(c, apperror.NewValidation("missing file field"))
		return nil, "", false
	}
	if header.Size > maxUploadBytes {
		h.Error(c, apperror.NewValidation("file too large").
			WithDetail("max_bytes", maxUploadBytes))
		return nil, "", false
	}

	src, err := header.Open()
	if err != nil {
		h.Error(c, apperror.NewInternal(err))
		return nil, "", false
	}
	defer src.Close()

	file, err := spreadsheet.Parse(src, header.Filename)
	if err != nil {
		h.Error(c, err)
		return nil, "", false
	}
	return file, category, true
}
