// Package invoice provides the Invoice document: model, lifecycle rules and
// service operations.
package invoice

import (
	"context"
	"time"

	"billmint/internal/core/apperror"
	"billmint/internal/core/entity"
	"billmint/internal/core/id"
	"billmint/internal/core/types"
	"billmint/internal/domain/tax"
)

// Status is the invoice lifecycle state.
type Status string

const (
	StatusDraft   Status = "DRAFT"
	StatusSent    Status = "SENT"
	StatusPaid    Status = "PAID"
	StatusOverdue Status = "OVERDUE"
	StatusShared  Status = "SHARED"
)

// Valid reports whether s is a known invoice status.
func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusSent, StatusPaid, StatusOverdue, StatusShared:
		return true
	}
	return false
}

// transitions maps each status to the statuses reachable from it.
// PAID is terminal for edits; OVERDUE and SHARED are side statuses of SENT.
var transitions = map[Status][]Status{
	StatusDraft:   {StatusSent},
	StatusSent:    {StatusPaid, StatusOverdue, StatusShared},
	StatusOverdue: {StatusPaid, StatusSent},
	StatusShared:  {StatusSent, StatusPaid},
}

// CanTransition reports whether from → to is an allowed status change.
func CanTransition(from, to Status) bool {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return true
		}
	}
	return false
}

// Invoice is a financial document issued to a client.
type Invoice struct {
	entity.Document

	// Client reference
	ClientID id.ID `db:"client_id" json:"clientId"`

	// DueDate is the optional payment deadline
	DueDate *time.Time `db:"due_date" json:"dueDate,omitempty"`

	Status   Status `db:"status" json:"status"`
	Currency string `db:"currency" json:"currency"`

	// Totals. Subtotal is the sum of line amounts; GrandTotal adds the tax
	// snapshot components. Both are verified against the lines on write.
	Subtotal   types.Money `db:"subtotal" json:"subtotal"`
	GrandTotal types.Money `db:"grand_total" json:"grandTotal"`

	// Summary is the tax classification snapshot taken at creation/update
	// time. It is never recomputed after persistence.
	tax.Summary

	Remarks       string `db:"remarks" json:"remarks,omitempty"`
	BankReference string `db:"bank_reference" json:"bankReference,omitempty"`

	// Table part: billed positions
	Lines []Line `db:"-" json:"lines"`
}

// Line is a billed position on an invoice.
type Line struct {
	LineNo      int    `db:"line_no" json:"lineNo"`
	Description string `db:"description" json:"description"`

	// HSNCode is the HSN/SAC classification, carried through but not validated
	HSNCode string `db:"hsn_sac_code" json:"hsnCode,omitempty"`

	Quantity types.Money `db:"quantity" json:"quantity"`
	Rate     types.Money `db:"rate" json:"rate"`
	Amount   types.Money `db:"amount" json:"amount"`
}

// New creates a draft invoice for a client.
func New(clientID id.ID) *Invoice {
	return &Invoice{
		Document: entity.NewDocument(),
		ClientID: clientID,
		Status:   StatusDraft,
		Currency: "INR",
		Lines:    make([]Line, 0),
	}
}

// Validate implements entity.Validatable.
func (inv *Invoice) Validate(ctx context.Context) error {
	if err := inv.Document.Validate(ctx); err != nil {
		return err
	}

	if id.IsNil(inv.ClientID) {
		return apperror.NewValidation("client is required").
			WithDetail("field", "clientId")
	}

	if !inv.Status.Valid() {
		return apperror.NewValidation("unknown status").
			WithDetail("field", "status").
			WithDetail("value", string(inv.Status))
	}

	if len(inv.Lines) == 0 {
		return apperror.NewValidation("at least one line is required").
			WithDetail("field", "lines")
	}

	for i, line := range inv.Lines {
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
// grand total against subtotal + tax components. Caller-supplied totals are
// never trusted as-is: a mismatch rejects the whole write.
func (inv *Invoice) VerifyTotals() error {
	subtotal := types.Zero()
	for i, line := range inv.Lines {
		amount := types.Round2(line.Quantity.Mul(line.Rate))
		if !line.Amount.Equal(amount) {
			return apperror.NewValidation("line amount does not match quantity × rate").
				WithDetail("lineNo", i+1).
				WithDetail("expected", amount.String()).
				WithDetail("got", line.Amount.String())
		}
		subtotal = subtotal.Add(amount)
	}

	if !inv.Subtotal.Equal(subtotal) {
		return apperror.NewValidation("subtotal does not match sum of line amounts").
			WithDetail("expected", subtotal.String()).
			WithDetail("got", inv.Subtotal.String())
	}

	expected := subtotal.Add(inv.Summary.Total())
	if !inv.GrandTotal.Equal(expected) {
		return apperror.NewValidation("grand total does not match subtotal plus tax").
			WithDetail("expected", expected.String()).
			WithDetail("got", inv.GrandTotal.String())
	}

	return nil
}

// CanModify checks the paid-immutability invariant: once an invoice is PAID
// its content is frozen and only status transitions remain possible.
func (inv *Invoice) CanModify() error {
	if inv.Status == StatusPaid {
		return apperror.NewDocumentLocked(inv.ID.String())
	}
	return nil
}

// Ensure interface compliance at compile time.
var _ entity.Validatable = (*Invoice)(nil)
