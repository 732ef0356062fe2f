package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"billmint/internal/core/apperror"
	"billmint/internal/core/id"
	"billmint/internal/domain"
	"billmint/internal/domain/documents/invoice"
	"billmint/internal/domain/settings"
	"billmint/internal/domain/tax"
	"billmint/internal/infrastructure/http/v1/dto"
)

// InvoiceHandler handles HTTP requests for invoices.
type InvoiceHandler struct {
	*BaseHandler
	service  *invoice.Service
	settings *settings.Service
}

// NewInvoiceHandler creates a new invoice handler.
func NewInvoiceHandler(base *BaseHandler, service *invoice.Service, settingsService *settings.Service) *InvoiceHandler {
	return &InvoiceHandler{
		BaseHandler: base,
		service:     service,
		settings:    settingsService,
	}
}

// Create handles POST /invoices.
// The tax snapshot is classified here from the seller profile and the
// request's place of supply, then frozen onto the document.
func (h *InvoiceHandler) Create(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.CreateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := req.ToEntity()
	if err != nil {
		h.Error(c, err)
		return
	}

	seller := h.settings.CompanyProfile(ctx)
	result := tax.Classify(seller, req.BuyerStateCode, req.BuyerCountry)
	inv.Summary = result.Apply(inv.Subtotal)

	if err := h.service.Create(ctx, inv); err != nil {
		h.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.FromInvoice(inv))
}

// Get handles GET /invoices/:id.
func (h *InvoiceHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	inv, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(inv))
}

// Update handles PUT /invoices/:id.
func (h *InvoiceHandler) Update(c *gin.Context) {
	ctx := c.Request.Context()

	docID, err := id.Parse(c.Param("id"))
	if err != nil {
		h.Error(c, apperror.NewValidation("invalid id format"))
		return
	}

	var req dto.UpdateInvoiceRequest
	if !h.BindJSON(c, &req) {
		return
	}

	inv, err := h.service.GetByID(ctx, docID)
	if err != nil {
		h.Error(c, err)
		return
	}

	if err := req.ApplyTo(inv); err != nil {
		h.Error(c, err)
		return
	}

	// Re-classify when the place of supply changed; otherwise keep the
	// stored regime but recompute its component amounts, so a lines-only
	// update cannot leave tax amounts trailing the new subtotal.
	if req.BuyerStateCode != nil || req.BuyerCountry != nil {
		var stateCode, country string
		if req.BuyerStateCode != nil {
			stateCode = *req.BuyerStateCode
		}
		if req.BuyerCountry != nil {
			country = *req.BuyerCountry
		}
		seller := h.settings.CompanyProfile(ctx)
		inv.Summary = tax.Classify(seller, stateCode, country).Apply(inv.Subtotal)
	} else {
		inv.Summary = tax.ResultFor(inv.Summary.Type).Apply(inv.Subtotal)
	}

	if err := h.service.Update(ctx, inv); err != nil {
		h.Error(c, err)
		return
	}

	h.OK(c, dto.FromInvoice(inv))
}

// SetStatus handles POST /invoices/:id/status.
func (h *InvoiceHandler) SetStatus(c *gin.Context) {
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

	if err := h.service.SetStatus(ctx, docID, invoice.Status(req.Status)); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "status updated")
}

// Delete handles DELETE /invoices/:id.
func (h *InvoiceHandler) Delete(c *gin.Context) {
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

// List handles GET /invoices.
func (h *InvoiceHandler) List(c *gin.Context) {
	ctx := c.Request.Context()

	// Exact number lookup. Document numbers contain slashes, so this rides
	// the collection route as a query parameter instead of a path segment.
	if number := c.Query("number"); number != "" {
		inv, err := h.service.GetByNumber(ctx, number)
		if err != nil {
			if apperror.IsNotFound(err) {
				c.JSON(http.StatusOK, dto.InvoiceListResponse{Items: []*dto.InvoiceResponse{}})
				return
			}
			h.Error(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.InvoiceListResponse{
			Items:      []*dto.InvoiceResponse{dto.FromInvoice(inv)},
			TotalCount: 1,
			Limit:      1,
		})
		return
	}

	filter := invoice.ListFilter{
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
		val := invoice.Status(status)
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

	items := make([]*dto.InvoiceResponse, len(result.Items))
	for i, doc := range result.Items {
		items[i] = dto.FromInvoice(doc)
	}

	c.JSON(http.StatusOK, dto.InvoiceListResponse{
		Items:      items,
		TotalCount: int(result.TotalCount),
		Limit:      result.Limit,
		Offset:     result.Offset,
	})
}

// RegisterRoutes registers invoice routes.
func (h *InvoiceHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.Create)
	rg.GET("", h.List)
	rg.GET("/:id", h.Get)
	rg.PUT("/:id", h.Update)
	rg.DELETE("/:id", h.Delete)
	rg.POST("/:id/status", h.SetStatus)
}
