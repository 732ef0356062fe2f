// Package sequence provides domain contracts for per-fiscal-year document
// counters. Implementations live in infrastructure layer.
package sequence

import (
	"context"
)

// DocumentType partitions counters between invoices and quotations.
type DocumentType string

const (
	Invoice   DocumentType = "INVOICE"
	Quotation DocumentType = "QUOTATION"
)

// Allocator issues the next integer for a (document type, fiscal year) pair.
// This is the domain contract - the PostgreSQL implementation lives in the
// infrastructure layer.
//
// Next must execute against the caller's active transaction: the counter row
// stays locked until commit, so two concurrent allocations for the same
// fiscal year can never observe the same value, and an aborted transaction
// rolls the increment back together with the document insert.
type Allocator interface {
	// Next returns last_count + 1 for the pair, creating the counter row
	// lazily on first allocation.
	Next(ctx context.Context, docType DocumentType, fiscalYear string) (int64, error)

	// SetNext sets the counter value directly (for migration purposes).
	SetNext(ctx context.Context, docType DocumentType, fiscalYear string, value int64) error
}
