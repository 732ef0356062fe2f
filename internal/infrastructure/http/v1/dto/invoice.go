package dto

import (
	"time"

	"billmint/internal/domain/documents/invoice"
	"billmint/internal/domain/tax"
)

// --- Request DTOs ---

// DocumentLineRequest represents a line in create/update requests.
// Quantities, rates and amounts travel as decimal strings to avoid
// floating-point drift on the wire.
type DocumentLineRequest struct {
	Description string `json:"description" binding:"required"`
	HSNCode     string `json:"hsnCode,omitempty"`
	Quantity    string `json:"quantity" binding:"required"`
	Rate        string `json:"rate" binding:"required"`
	Amount      string `json:"amount" binding:"required"`
}

// CreateInvoiceRequest represents a request to create an invoice.
// Number is honored only together with manualNumber=true; otherwise the
// server assigns the next number from the fiscal-year sequence.
type CreateInvoiceRequest struct {
	Number       string     `json:"number,omitempty"`
	ManualNumber bool       `json:"manualNumber,omitempty"`
	Date         time.Time  `json:"date" binding:"required"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	ClientID     string     `json:"clientId" binding:"required"`
	Currency     string     `json:"currency,omitempty"`

	// Place of supply used for GST classification
	BuyerStateCode string `json:"buyerStateCode,omitempty"`
	BuyerCountry   string `json:"buyerCountry,omitempty"`

	Subtotal   string `json:"subtotal" binding:"required"`
	GrandTotal string `json:"grandTotal" binding:"required"`

	Remarks       string `json:"remarks,omitempty"`
	BankReference string `json:"bankReference,omitempty"`

	Lines []DocumentLineRequest `json:"lines" binding:"required,min=1,dive"`
}

// ToEntity converts request to domain entity, rejecting malformed decimals
// and references. The tax snapshot is applied by the handler after
// classification.
func (r *CreateInvoiceRequest) ToEntity() (*invoice.Invoice, error) {
	clientID, err := parseID(r.ClientID, "clientId")
	if err != nil {
		return nil, err
	}

	inv := invoice.New(clientID)
	inv.Number = r.Number
	inv.ManualEntry = r.ManualNumber
	inv.Date = r.Date
	inv.DueDate = r.DueDate
	inv.Remarks = r.Remarks
	inv.BankReference = r.BankReference

	if r.Currency != "" {
		inv.Currency = r.Currency
	}

	if inv.Subtotal, err = parseMoney(r.Subtotal, "subtotal"); err != nil {
		return nil, err
	}
	if inv.GrandTotal, err = parseMoney(r.GrandTotal, "grandTotal"); err != nil {
		return nil, err
	}

	lines, err := toInvoiceLines(r.Lines)
	if err != nil {
		return nil, err
	}
	inv.Lines = lines

	return inv, nil
}

func toInvoiceLines(lines []DocumentLineRequest) ([]invoice.Line, error) {
	out := make([]invoice.Line, 0, len(lines))
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
		out = append(out, invoice.Line{
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

// UpdateInvoiceRequest represents a request to update an invoice.
// Number and status are not updatable and have no fields here.
type UpdateInvoiceRequest struct {
	Date    *time.Time `json:"date,omitempty"`
	DueDate *time.Time `json:"dueDate,omitempty"`

	ClientID *string `json:"clientId,omitempty"`
	Currency *string `json:"currency,omitempty"`

	BuyerStateCode *string `json:"buyerStateCode,omitempty"`
	BuyerCountry   *string `json:"buyerCountry,omitempty"`

	Subtotal   *string `json:"subtotal,omitempty"`
	GrandTotal *string `json:"grandTotal,omitempty"`

	Remarks       *string `json:"remarks,omitempty"`
	BankReference *string `json:"bankReference,omitempty"`

	Lines []DocumentLineRequest `json:"lines,omitempty"`
}

// ApplyTo applies updates to an existing entity, rejecting malformed
// decimals and references.
func (r *UpdateInvoiceRequest) ApplyTo(inv *invoice.Invoice) error {
	if r.Date != nil {
		inv.Date = *r.Date
	}
	if r.DueDate != nil {
		inv.DueDate = r.DueDate
	}
	if r.ClientID != nil {
		clientID, err := parseID(*r.ClientID, "clientId")
		if err != nil {
			return err
		}
		inv.ClientID = clientID
	}
	if r.Currency != nil {
		inv.Currency = *r.Currency
	}
	if r.Subtotal != nil {
		subtotal, err := parseMoney(*r.Subtotal, "subtotal")
		if err != nil {
			return err
		}
		inv.Subtotal = subtotal
	}
	if r.GrandTotal != nil {
		grandTotal, err := parseMoney(*r.GrandTotal, "grandTotal")
		if err != nil {
			return err
		}
		inv.GrandTotal = grandTotal
	}
	if r.Remarks != nil {
		inv.Remarks = *r.Remarks
	}
	if r.BankReference != nil {
		inv.BankReference = *r.BankReference
	}
	if r.Lines != nil {
		lines, err := toInvoiceLines(r.Lines)
		if err != nil {
			return err
		}
		inv.Lines = lines
	}
	return nil
}

// --- Response DTOs ---

// TaxSummaryResponse is the persisted tax snapshot in API responses.
type TaxSummaryResponse struct {
	Type string `json:"type"`
	Rate string `json:"rate"`
	CGST string `json:"cgst"`
	SGST string `json:"sgst"`
	IGST string `json:"igst"`
}

func fromTaxSummary(s tax.Summary) TaxSummaryResponse {
	return TaxSummaryResponse{
		Type: string(s.Type),
		Rate: s.Rate.String(),
		CGST: s.CGST.String(),
		SGST: s.SGST.String(),
		IGST: s.IGST.String(),
	}
}

// DocumentLineResponse represents a line in API responses.
type DocumentLineResponse struct {
	LineNo      int    `json:"lineNo"`
	Description string `json:"description"`
	HSNCode     string `json:"hsnCode,omitempty"`
	Quantity    string `json:"quantity"`
	Rate        string `json:"rate"`
	Amount      string `json:"amount"`
}

func fromInvoiceLines(lines []invoice.Line) []DocumentLineResponse {
	out := make([]DocumentLineResponse, len(lines))
	for i, line := range lines {
		out[i] = DocumentLineResponse{
			LineNo:      line.LineNo,
			Description: line.Description,
			HSNCode:     line.HSNCode,
			Quantity:    line.Quantity.String(),
			Rate:        line.Rate.String(),
			Amount:      line.Amount.String(),
		}
	}
	return out
}

// InvoiceResponse represents an invoice in API responses.
type InvoiceResponse struct {
	ID            string                 `json:"id"`
	Number        string                 `json:"number"`
	ManualEntry   bool                   `json:"isManualEntry"`
	Date          time.Time              `json:"date"`
	DueDate       *time.Time             `json:"dueDate,omitempty"`
	ClientID      string                 `json:"clientId"`
	Status        string                 `json:"status"`
	Currency      string                 `json:"currency"`
	Subtotal      string                 `json:"subtotal"`
	Tax           TaxSummaryResponse     `json:"tax"`
	GrandTotal    string                 `json:"grandTotal"`
	Remarks       string                 `json:"remarks,omitempty"`
	BankReference string                 `json:"bankReference,omitempty"`
	Lines         []DocumentLineResponse `json:"lines,omitempty"`
	Version       int                    `json:"version"`
	CreatedAt     time.Time              `json:"createdAt"`
	UpdatedAt     time.Time              `json:"updatedAt"`
}

// FromInvoice converts domain entity to response DTO.
func FromInvoice(inv *invoice.Invoice) *InvoiceResponse {
	return &InvoiceResponse{
		ID:            inv.ID.String(),
		Number:        inv.Number,
		ManualEntry:   inv.ManualEntry,
		Date:          inv.Date,
		DueDate:       inv.DueDate,
		ClientID:      inv.ClientID.String(),
		Status:        string(inv.Status),
		Currency:      inv.Currency,
		Subtotal:      inv.Subtotal.String(),
		Tax:           fromTaxSummary(inv.Summary),
		GrandTotal:    inv.GrandTotal.String(),
		Remarks:       inv.Remarks,
		BankReference: inv.BankReference,
		Lines:         fromInvoiceLines(inv.Lines),
		Version:       inv.Version,
		CreatedAt:     inv.CreatedAt,
		UpdatedAt:     inv.UpdatedAt,
	}
}

// InvoiceListResponse represents a list of invoices.
type InvoiceListResponse struct {
	Items      []*InvoiceResponse `json:"items"`
	TotalCount int                `json:"totalCount"`
	Limit      int                `json:"limit"`
	Offset     int                `json:"offset"`
}
