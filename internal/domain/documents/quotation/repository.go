package quotation

import (
	"context"
	"time"

	"billmint/internal/core/id"
	"billmint/internal/domain"
)

// Repository defines persistence operations for quotations.
type Repository interface {
	// CRUD operations
	Create(ctx context.Context, q *Quotation) error
	GetByID(ctx context.Context, docID id.ID) (*Quotation, error)
	GetByNumber(ctx context.Context, number string) (*Quotation, error)
	ExistsByNumber(ctx context.Context, number string) (bool, error)
	Update(ctx context.Context, q *Quotation) error
	Delete(ctx context.Context, docID id.ID) error

	// SetStatus patches only the lifecycle status, leaving content untouched.
	SetStatus(ctx context.Context, docID id.ID, status Status) error

	// Line operations
	GetLines(ctx context.Context, docID id.ID) ([]Line, error)
	SaveLines(ctx context.Context, docID id.ID, lines []Line) error

	// List operations
	List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quotation], error)
}

// ListFilter for filtering quotations.
type ListFilter struct {
	domain.ListFilter

	// Document-specific filters
	ClientID *id.ID
	Status   *Status
	DateFrom *time.Time
	DateTo   *time.Time
}
