// Package invoice provides the Invoice document repository contract.
package invoice

import (
	"context"
	"time"

	"billmint/internal/core/id"
	"billmint/internal/domain"
)

// Repository defines persistence operations for invoices.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, inv *Invoice) error
	GetByID(ctx context.Context, docID id.ID) (*Invoice, error)
	GetByNumber(ctx context.Context, number string) (*Invoice, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	Update(ctx context.Context, inv *Invoice) error
	Delete(ctx context.Context, docID id.ID) error

	// SetStatus patches only the lifecycle status, leaving content untouched.
	SetStatus(ctx context.Context, docID id.ID, status Status) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Invoice], error)
}

// ListFilter for filtering invoices.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	ClientID *id.ID
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
}
