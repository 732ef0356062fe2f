package handlers

import (
	"github.com/gin-gonic/gin"

	"billmint/internal/core/apperror"
	"billmint/internal/core/types"
	"billmint/internal/domain/settings"
	"billmint/internal/domain/tax"
	"billmint/internal/infrastructure/http/v1/dto"
)

// TaxHandler handles tax classification and configuration endpoints.
type TaxHandler struct {
	*BaseHandler
	settings *settings.Service
}

// NewTaxHandler creates a new tax handler.
func NewTaxHandler(base *BaseHandler, settingsService *settings.Service) *TaxHandler {
	return &TaxHandler{
		BaseHandler: base,
		settings:    settingsService,
	}
}

// Classify handles POST /tax/classify.
// Dry-run classification: lets clients preview the tax treatment of a sale
// without creating a document.
func (h *TaxHandler) Classify(c *gin.Context) {
	ctx := c.Request.Context()

	var req dto.ClassifyTaxRequest
	if !h.BindJSON(c, &req) {
		return
	}

	seller := h.settings.CompanyProfile(ctx)
	result := tax.Classify(seller, req.BuyerStateCode, req.BuyerCountry)

	resp := dto.FromTaxResult(result)

	if req.Subtotal != "" {
		subtotal, err := types.NewMoneyFromString(req.Subtotal)
		if err != nil {
			h.Error(c, apperror.NewValidation("invalid subtotal").WithDetail("value", req.Subtotal))
			return
		}
		summary := result.Apply(subtotal)
		resp.Amounts = &dto.TaxSummaryResponse{
			Type: string(summary.Type),
			Rate: summary.Rate.String(),
			CGST: summary.CGST.String(),
			SGST: summary.SGST.String(),
			IGST: summary.IGST.String(),
		}
	}

	h.OK(c, resp)
}

// GetDocumentSettings handles GET /settings/documents.
func (h *TaxHandler) GetDocumentSettings(c *gin.Context) {
	ds := h.settings.DocumentSettings(c.Request.Context())
	h.OK(c, dto.DocumentSettingsResponse{
		InvoiceFormat:   ds.InvoiceFormat,
		QuotationFormat: ds.QuotationFormat,
	})
}

// SetDocumentSettings handles PUT /settings/documents.
func (h *TaxHandler) SetDocumentSettings(c *gin.Context) {
	var req dto.DocumentSettingsRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.settings.SetDocumentSettings(c.Request.Context(), req.ToEntity()); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "document settings updated")
}

// GetCompanyProfile handles GET /settings/company.
func (h *TaxHandler) GetCompanyProfile(c *gin.Context) {
	profile := h.settings.CompanyProfile(c.Request.Context())
	h.OK(c, dto.CompanyProfileResponse{
		StateCode: profile.StateCode,
		Country:   profile.Country,
	})
}

// SetCompanyProfile handles PUT /settings/company.
func (h *TaxHandler) SetCompanyProfile(c *gin.Context) {
	var req dto.CompanyProfileRequest
	if !h.BindJSON(c, &req) {
		return
	}

	if err := h.settings.SetCompanyProfile(c.Request.Context(), req.ToEntity()); err != nil {
		h.Error(c, err)
		return
	}

	h.Success(c, "company profile updated")
}

// RegisterRoutes registers tax and settings routes.
func (h *TaxHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/tax/classify", h.Classify)
	rg.GET("/settings/documents", h.GetDocumentSettings)
	rg.PUT("/settings/documents", h.SetDocumentSettings)
	rg.GET("/settings/company", h.GetCompanyProfile)
	rg.PUT("/settings/company", h.SetCompanyProfile)
}
