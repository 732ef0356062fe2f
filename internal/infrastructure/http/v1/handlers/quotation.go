package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"billmint/internal/core/apperror"
	"billmint/internal/core/id"
	"billmint/internal/domain"
	"billmint/internal/domain/documents/quotation"
	"billmint/internal/domain/settings"
	"billmint/internal/domain/tax"
	"billmint/internal/infrastructure/http/v1/dto"
)

// QuotationHandler handles HTTP requests for quotations.
type QuotationHandler struct {
	*BaseHandler
	service  *quotation.Service
	settings *settings.Service
}

// NewQuotationHandler creates a new quotation handler.
func NewQuotationHandler(base *BaseHandler, service *quotation.Service, settingsService *settings.Service) *QuotationHandler {
	return &QuotationHandler{
		BaseHandler: base,
		service:     service,
		settings:    settingsService,
	}
}

// Create handles POST /quotations.
func (h *QuotationHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	q, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	seller := h.settings.CompanyProfile(ctx)
	result := tax.Classify(seller, req.BuyerStateCode, req.BuyerCountry)
	q.Summary = result.Apply(q.Subtotal)

	if err := h.service.Create(ctx, q); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromQuotation(q))
}

// Get handles GET /quotations/:id.
func (h *QuotationHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	q, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromQuotation(q))
}

// Update handles PUT /quotations/:id.
func (h *QuotationHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateQuotationRequest
	if !h.BindJSON(c, &req) {
		return
	}

	q, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(q); err != nil {
		h.Error(c, err)
		return
	}

	// Re-classify when the place of supply changed; otherwise keep the
	// stored regime but recompute its component amounts against the
	// possibly changed subtotal.
	if req.BuyerStateCode != nil || req.BuyerCountry != nil {
		var stateCode, country string
		if req.BuyerStateCode != nil {
			stateCode = *req.BuyerStateCode
		}
		if req.BuyerCountry != nil {
			country = *req.BuyerCountry
		}
		seller := h.settings.CompanyProfile(ctx)
		q.Summary = tax.Classify(seller, stateCode, country).Apply(q.Subtotal)
	} else {
		q.Summary = tax.ResultFor(q.Summary.Type).Apply(q.Subtotal)
	}

	if err := h.service.Update(ctx, q); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromQuotation(q))
}

// SetStatus handles POST /quotations/:id/status.
func (h *QuotationHandler) SetStatus(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.SetStatusRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.service.SetStatus(ctx, docID, quotation.Status(req.Status)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "status updated")
}

// Delete handles DELETE /quotations/:id.
func (h *QuotationHandler) Delete(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	if err := h.service.Delete(ctx, docID); err != nil {
		h.Error(c, err)
		return
	}

	h.NoContent(c)
}

// List handles GET /quotations.
func (h *QuotationHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	// Exact number lookup. Document numbers contain slashes, so this rides
	// the collection route as a query parameter instead of a path segment.
	if number := c.Query("number"); number != "" {
		q, err := h.service.GetByNumber(ctx, number)
		if err != nil {
			if apperror.IsNotFound(err) {
				c.JSON(http.StatusOK, dto.QuotationListResponse{Items: []*dto.QuotationResponse{}})
				return
			}
			h.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.QuotationListResponse{
			Items:      []*dto.QuotationResponse{dto.FromQuotation(q)},
			TotalCount: 1,
			Limit:      1,
		})
		return
	}

	filter := quotation.ListFilter{
		ListFilter: domain.DefaultListFilter(),
	}
	filter.Search = c.Query("search")
	filter.Limit = h.ParseIntQuery(c, "limit", 50)
	filter.Offset = h.ParseIntQuery(c, "offset", 0)
	filter.OrderBy = c.DefaultQuery("orderBy", "-date")

	if clientID := c.Query("clientId"); clientID != "" {
		if parsed, err := id.Parse(clientID); err == nil {
			filter.ClientID = &parsed
		}
	}

	if status := c.Query("status"); status != "" {
		val := quotation.Status(status)
		filter.Status = &val
	}

	if dateFrom := c.Query("dateFrom"); dateFrom != "" {
		if parsed, err := time.Parse(time.RFC3339, dateFrom); err == nil {
			filter.DateFrom = &parsed
		}
	}

	if dateTo := c.Query("dateTo"); dateTo != "" {
		if parsed, err := time.Parse(time.RFC3339, dateTo); err == nil {
			filter.DateTo = &parsed
		}
	}

	result, err := h.service.List(ctx, filter)
	if err != nil {
		h.Error(c, err)
		return
	}

	items := make([]*dto.QuotationResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromQuotation(doc)
	}

	c.JSON(http.StatusOK, dto.QuotationListResponse{
		Items:      items,
		TotalCount: int(result.TotalCount),
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers quotation routes.
func (h *QuotationHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/status", h.SetStatus)
}
