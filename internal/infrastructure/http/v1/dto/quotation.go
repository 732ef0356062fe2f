package dto

import (
	"time"

	"billmint/internal/domain/documents/quotation"
)

// --- Request DTOs ---

// CreateQuotationRequest represents a request to create a quotation.
type CreateQuotationRequest struct {
	Number       string     `json:"number,omitempty"`
	ManualNumber bool       `json:"manualNumber,omitempty"`
	Date         time.Time  `json:"date" binding:"required"`
	ExpiryDate   *time.Time `json:"expiryDate,omitempty"`
	ClientID     string     `json:"clientId" binding:"required"`
	Currency     string     `json:"currency,omitempty"`

	// Place of supply used for GST classification
	BuyerStateCode string `json:"buyerStateCode,omitempty"`
	BuyerCountry   string `json:"buyerCountry,omitempty"`

	Subtotal   string `json:"subtotal" binding:"required"`
	GrandTotal string `json:"grandTotal" binding:"required"`

	Remarks string `json:"remarks,omitempty"`

	Lines []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity, rejecting malformed decimals
// and references. The tax snapshot is applied by the handler after
// classification.
func (r *CreateQuotationRequest) ToEntity() (*quotation.Quotation, error) {
	clientID, err := parseID(r.ClientID, "clientId")
	if err != nil {
		return nil, err
	}

	q := quotation.New(clientID)
	q.Number = r.Number
	q.ManualEntry = r.ManualNumber
	q.Date = r.Date
	q.ExpiryDate = r.ExpiryDate
	q.Remarks = r.Remarks

	if r.Currency != "" {
		q.Currency = r.Currency
	}

	if q.Subtotal, err = parseMoney(r.Subtotal, "subtotal"); err != nil {
		return nil, err
	}
	if q.GrandTotal, err = parseMoney(r.GrandTotal, "grandTotal"); err != nil {
		return nil, err
	}

	lines, err := toQuotationLines(r.Lines)
	if err != nil {
		return nil, err
	}
	q.Lines = lines

	return q, nil
}

func toQuotationLines(lines []DocumentLineRequest) ([]quotation.Line, error) {
	out := make([]quotation.Line, 0, len(lines))
	for i, line := range lines {
		quantity, err := parseLineMoney(line.Quantity, "quantity", i+1)
		if err != nil {
			return nil, err
		}
		rate, err := parseLineMoney(line.Rate, "rate", i+1)
		if err != nil {
			return nil, err
		}
		amount, err := parseLineMoney(line.Amount, "amount", i+1)
		if err != nil {
			return nil, err
		}
		out = append(out, quotation.Line{
			LineNo:      i + 1,
			Description: line.Description,
			HSNCode:     line.HSNCode,
			Quantity:    quantity,
			Rate:        rate,
			Amount:      amount,
		})
	}
	return out, nil
}

// UpdateQuotationRequest represents a request to update a quotation.
type UpdateQuotationRequest struct {
	Date       *time.Time `json:"date,omitempty"`
	ExpiryDate *time.Time `json:"expiryDate,omitempty"`

	ClientID *string `json:"clientId,omitempty"`
	Currency *string `json:"currency,omitempty"`

	BuyerStateCode *string `json:"buyerStateCode,omitempty"`
	BuyerCountry   *string `json:"buyerCountry,omitempty"`

	Subtotal   *string `json:"subtotal,omitempty"`
	GrandTotal *string `json:"grandTotal,omitempty"`

	Remarks *string `json:"remarks,omitempty"`

	Lines []DocumentLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity, rejecting malformed
// decimals and references.
func (r *UpdateQuotationRequest) ApplyTo(q *quotation.Quotation) error {
	if r.Date != nil {
		q.Date = *r.Date
	}
	if r.ExpiryDate != nil {
		q.ExpiryDate = r.ExpiryDate
	}
	if r.ClientID != nil {
		clientID, err := parseID(*r.ClientID, "clientId")
		if err != nil {
			return err
		}
		q.ClientID = clientID
	}
	if r.Currency != nil {
		q.Currency = *r.Currency
	}
	if r.Subtotal != nil {
		subtotal, err := parseMoney(*r.Subtotal, "subtotal")
		if err != nil {
			return err
		}
		q.Subtotal = subtotal
	}
	if r.GrandTotal != nil {
		grandTotal, err := parseMoney(*r.GrandTotal, "grandTotal")
		if err != nil {
			return err
		}
		q.GrandTotal = grandTotal
	}
	if r.Remarks != nil {
		q.Remarks = *r.Remarks
	}
	if r.Lines != nil {
		lines, err := toQuotationLines(r.Lines)
		if err != nil {
			return err
		}
		q.Lines = lines
	}
	return nil
}

// --- Response DTOs ---

// QuotationResponse represents a quotation in API responses.
type QuotationResponse struct {
	ID          string                 `json:"id"`
	Number      string                 `json:"number"`
	ManualEntry bool                   `json:"isManualEntry"`
	Date        time.Time              `json:"date"`
	ExpiryDate  *time.Time             `json:"expiryDate,omitempty"`
	ClientID    string                 `json:"clientId"`
	Status      string                 `json:"status"`
	Currency    string                 `json:"currency"`
	Subtotal    string                 `json:"subtotal"`
	Tax         TaxSummaryResponse     `json:"tax"`
	GrandTotal  string                 `json:"grandTotal"`
	Remarks     string                 `json:"remarks,omitempty"`
	Lines       []DocumentLineResponse `json:"lines,omitempty"`
	Version     int                    `json:"version"`
	CreatedAt   time.Time              `json:"createdAt"`
	UpdatedAt   time.Time              `json:"updatedAt"`
}

// FromQuotation converts domain entity to response DTO.
func FromQuotation(q *quotation.Quotation) *QuotationResponse {
	resp := &QuotationResponse{
		ID:          q.ID.String(),
		Number:      q.Number,
		ManualEntry: q.ManualEntry,
		Date:        q.Date,
		ExpiryDate:  q.ExpiryDate,
		ClientID:    q.ClientID.String(),
		Status:      string(q.Status),
		Currency:    q.Currency,
		Subtotal:    q.Subtotal.String(),
		Tax:         fromTaxSummary(q.Summary),
		GrandTotal:  q.GrandTotal.String(),
		Remarks:     q.Remarks,
		Version:     q.Version,
		CreatedAt:   q.CreatedAt,
		UpdatedAt:   q.UpdatedAt,
	}

	resp.Lines = make([]DocumentLineResponse, len(q.Lines))
	for i, line := range q.Lines {
		resp.Lines[i] = DocumentLineResponse{
			LineNo:      line.LineNo,
			Description: line.Description,
			HSNCode:     line.HSNCode,
			Quantity:    line.Quantity.String(),
			Rate:        line.Rate.String(),
			Amount:      line.Amount.String(),
		}
	}

	return resp
}

// QuotationListResponse represents a list of quotations.
type QuotationListResponse struct {
	Items      []*QuotationResponse `json:"items"`
	TotalCount int                  `json:"totalCount"`
	Limit      int                  `json:"limit"`
	Offset     int                  `json:"offset"`
}
