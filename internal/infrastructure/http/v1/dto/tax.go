package dto

import (
	"billmint/internal/domain/settings"
	"billmint/internal/domain/tax"
)

// --- Tax classification ---

// ClassifyTaxRequest asks for a GST classification of a prospective sale.
type ClassifyTaxRequest struct {
	BuyerStateCode string `json:"buyerStateCode,omitempty"`
	BuyerCountry   string `json:"buyerCountry,omitempty"`

	// Subtotal, when present, also computes absolute component amounts
	Subtotal string `json:"subtotal,omitempty"`
}

// TaxBreakdownResponse holds per-component percentage rates.
type TaxBreakdownResponse struct {
	CGST string `json:"cgst"`
	SGST string `json:"sgst"`
	IGST string `json:"igst"`
}

// ClassifyTaxResponse is the classification outcome.
type ClassifyTaxResponse struct {
	Type      string               `json:"type"`
	Rate      string               `json:"rate"`
	Breakdown TaxBreakdownResponse `json:"breakdown"`

	// Amounts is present only when the request carried a subtotal
	Amounts *TaxSummaryResponse `json:"amounts,omitempty"`
}

// FromTaxResult converts a classification result to response DTO.
func FromTaxResult(r tax.Result) *ClassifyTaxResponse {
	return &ClassifyTaxResponse{
		Type: string(r.Type),
		Rate: r.Rate.String(),
		Breakdown: TaxBreakdownResponse{
			CGST: r.Breakdown.CGST.String(),
			SGST: r.Breakdown.SGST.String(),
			IGST: r.Breakdown.IGST.String(),
		},
	}
}

// --- Settings ---

// DocumentSettingsRequest configures number format templates.
type DocumentSettingsRequest struct {
	InvoiceFormat   string `json:"invoiceFormat"`
	QuotationFormat string `json:"quotationFormat"`
}

// ToEntity converts to the settings value.
func (r *DocumentSettingsRequest) ToEntity() settings.DocumentSettings {
	return settings.DocumentSettings{
		InvoiceFormat:   r.InvoiceFormat,
		QuotationFormat: r.QuotationFormat,
	}
}

// DocumentSettingsResponse mirrors the stored templates.
type DocumentSettingsResponse struct {
	InvoiceFormat   string `json:"invoiceFormat"`
	QuotationFormat string `json:"quotationFormat"`
}

// CompanyProfileRequest configures the seller's GST profile.
type CompanyProfileRequest struct {
	StateCode string `json:"stateCode" binding:"required"`
	Country   string `json:"country"`
}

// ToEntity converts to the tax profile.
func (r *CompanyProfileRequest) ToEntity() tax.Profile {
	country := r.Country
	if country == "" {
		country = "India"
	}
	return tax.Profile{StateCode: r.StateCode, Country: country}
}

// CompanyProfileResponse mirrors the stored profile.
type CompanyProfileResponse struct {
	StateCode string `json:"stateCode"`
	Country   string `json:"country"`
}
