// Package quotation provides the Quotation document: model, lifecycle rules
// and service operations. Quotations share the numbering and tax machinery
// with invoices but carry a simpler two-state lifecycle and no payment
// semantics.
package quotation

import (
	"context"
	"time"

	"billmint/internal/core/apperror"
	"billmint/internal/core/entity"
	"billmint/internal/core/id"
	"billmint/internal/core/types"
	"billmint/internal/domain/tax"
)

// Status is the quotation lifecycle state.
type Status string

const (
	StatusDraft Status = "DRAFT"
	StatusSent  Status = "SENT"
)

// Valid reports whether s is a known quotation status.
func (s Status) Valid() bool {
	return s == StatusDraft || s == StatusSent
}

// CanTransition reports whether from → to is an allowed status change.
// Sent quotations can be pulled back to draft for rework.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusDraft:
		return to == StatusSent
	case StatusSent:
		return to == StatusDraft
	}
	return false
}

// Quotation is a priced offer issued to a client. Accepted quotations are
// converted into invoices; the quotation itself never becomes payable.
type Quotation struct {
	entity.Document

	ClientID id.ID `db:"client_id" json:"clientId"`

	// ExpiryDate is the optional validity deadline of the offer
	ExpiryDate *time.Time `db:"expiry_date" json:"expiryDate,omitempty"`

	Status   Status `db:"status" json:"status"`
	Currency string `db:"currency" json:"currency"`

	Subtotal   types.Money `db:"subtotal" json:"subtotal"`
	GrandTotal types.Money `db:"grand_total" json:"grandTotal"`

	// Summary is the tax classification snapshot taken at creation/update
	// time. It is never recomputed after persistence.
	tax.Summary

	Remarks string `db:"remarks" json:"remarks,omitempty"`

	// Table part: quoted positions
	Lines []Line `db:"-" json:"lines"`
}

// Line is a quoted position.
type Line struct {
	LineNo      int    `db:"line_no" json:"lineNo"`
	Description string `db:"description" json:"description"`

	// HSNCode is the HSN/SAC classification, carried through but not validated
	HSNCode string `db:"hsn_sac_code" json:"hsnCode,omitempty"`

	Quantity types.Money `db:"quantity" json:"quantity"`
	Rate     types.Money `db:"rate" json:"rate"`
	Amount   types.Money `db:"amount" json:"amount"`
}

// New creates a draft quotation for a client.
func New(clientID id.ID) *Quotation {
	return &Quotation{
		Document: entity.NewDocument(),
		ClientID: clientID,
		Status:   StatusDraft,
		Currency: "INR",
		Lines:    make([]Line, 0),
	}
}

// Validate implements entity.Validatable.
func (q *Quotation) Validate(ctx context.Context) error {
	if err := q.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(q.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}

	if !q.Status.Valid() {
		return apperror.NewValidation("unknown status").
			WithDetail("field", "status").
			WithDetail("value", string(q.Status))
	}

	if len(q.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range q.Lines {
		if line.Quantity.Sign() <= 0 {
			return apperror.NewValidation("quantity must be positive").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
		if line.Rate.Sign() < 0 {
			return apperror.NewValidation("rate must not be negative").
				WithDetail("field", "lines").
				WithDetail("lineNo", i+1)
		}
	}

	return nil
}

// VerifyTotals re-derives line amounts and the subtotal, then checks the
// grand total against subtotal + tax components.
func (q *Quotation) VerifyTotals() error {
	subtotal := types.Zero()
	for i, line := range q.Lines {
		amount := types.Round2(line.Quantity.Mul(line.Rate))
		if !line.Amount.Equal(amount) {
			return apperror.NewValidation("line amount does not match quantity × rate").
				WithDetail("lineNo", i+1).
				WithDetail("expected", amount.String()).
				WithDetail("got", line.Amount.String())
		}
		subtotal = subtotal.Add(amount)
	}

	if !q.Subtotal.Equal(subtotal) {
		return apperror.NewValidation("subtotal does not match sum of line amounts").
			WithDetail("expected", subtotal.String()).
			WithDetail("got", q.Subtotal.String())
	}

	expected := subtotal.Add(q.Summary.Total())
	if !q.GrandTotal.Equal(expected) {
		return apperror.NewValidation("grand total does not match subtotal plus tax").
			WithDetail("expected", expected.String()).
			WithDetail("got", q.GrandTotal.String())
	}

	return nil
}

var _ entity.Validatable = (*Quotation)(nil)
