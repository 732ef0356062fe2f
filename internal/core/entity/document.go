// Package entity provides base types shared by financial documents.
package entity

import (
	"context"
	"time"

	"billmint/internal/core/apperror"
	"billmint/internal/core/id"
)

// Validatable is implemented by entities that support self-validation.
// Validation checks internal invariants (without database access).
type Validatable interface {
	// Validate checks entity invariants.
	// Returns nil if valid, AppError with details otherwise.
	Validate(ctx context.Context) error
}

// Document is the base type for financial documents (Invoice, Quotation).
type Document struct {
	// ID is the primary key (UUIDv7)
	ID id.ID `db:"id" json:"id"`

	// Number is the document number, unique within its type.
	// Assigned once at creation and immutable afterwards.
	Number string `db:"number" json:"number"`

	// Date is the issue date of the document
	Date time.Time `db:"date" json:"date"`

	// ManualEntry is true when the number was supplied by the user
	// rather than allocated from a sequence
	ManualEntry bool `db:"is_manual_entry" json:"isManualEntry"`

	// Version for optimistic locking (incremented on each update)
	Version int `db:"version" json:"version"`

	// Audit fields
	CreatedAt time.Time `db:"created_at" json:"createdAt"`
	UpdatedAt time.Time `db:"updated_at" json:"updatedAt"`
}

// NewDocument creates a new Document with generated ID.
func NewDocument() Document {
	now := time.Now().UTC()
	return Document{
		ID:        id.New(),
		Date:      now,
		Version:   1,
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Validate implements Validatable.
func (d *Document) Validate(ctx context.Context) error {
	if d.Date.IsZero() {
		return apperror.NewValidation("date is required").
			WithDetail("field", "date")
	}
	return nil
}

// Touch updates the UpdatedAt timestamp and increments version.
func (d *Document) Touch() {
	d.UpdatedAt = time.Now().UTC()
	d.Version++
}

// GetID returns the document ID.
func (d *Document) GetID() id.ID {
	return d.ID
}
