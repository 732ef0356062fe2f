// Package sequence provides the PostgreSQL implementation of per-fiscal-year
// document counters. It implements core/sequence.Allocator.
package sequence

import (
	"context"
	"fmt"

	coresequence "billmint/internal/core/sequence"
	"billmint/internal/infrastructure/storage/postgres"
)

// QuerierProvider resolves the querier for the current context: the active
// transaction when one is present, the pool otherwise. *postgres.TxManager
// satisfies this.
type QuerierProvider interface {
	GetQuerier(ctx context.Context) postgres.Querier
}

// Allocator issues document numbers from the fiscal_sequences table.
//
// The UPSERT locks the counter row until the surrounding transaction commits,
// so concurrent allocations for the same (document type, fiscal year) pair
// queue up behind each other and an aborted transaction returns its value to
// the counter. No in-memory caching: a cached range would leak numbers on
// restart, and gap-free numbering is the whole point.
type Allocator struct {
	provider QuerierProvider
}

// Ensure compile-time interface compliance.
var _ coresequence.Allocator = (*Allocator)(nil)

// New creates a PostgreSQL-backed allocator.
func New(provider QuerierProvider) *Allocator {
	return &Allocator{provider: provider}
}

// Next returns last_count + 1 for the pair, creating the counter row lazily
// on first allocation within a fiscal year.
func (a *Allocator) Next(ctx context.Context, docType coresequence.DocumentType, fiscalYear string) (int64, error) {
	querier := a.provider.GetQuerier(ctx)

	var num int64
	err := querier.QueryRow(ctx, `
        INSERT INTO fiscal_sequences (document_type, fiscal_year, last_count)
        VALUES ($1, $2, 1)
        ON CONFLICT (document_type, fiscal_year)
        DO UPDATE SET last_count = fiscal_sequences.last_count + 1
        RETURNING last_count
	`, string(docType), fiscalYear).Scan(&num)
	if err != nil {
		return 0, fmt.Errorf("next sequence %s/%s: %w", docType, fiscalYear, err)
	}

	return num, nil
}

// SetNext sets the counter value directly (for migration purposes).
func (a *Allocator) SetNext(ctx context.Context, docType coresequence.DocumentType, fiscalYear string, value int64) error {
	querier := a.provider.GetQuerier(ctx)

	var result int64
	err := querier.QueryRow(ctx, `
        INSERT INTO fiscal_sequences (document_type, fiscal_year, last_count)
        VALUES ($1, $2, $3)
        ON CONFLICT (document_type, fiscal_year)
        DO UPDATE SET last_count = $3
        RETURNING last_count
	`, string(docType), fiscalYear, value).Scan(&result)
	if err != nil {
		return fmt.Errorf("set sequence %s/%s: %w", docType, fiscalYear, err)
	}

	return nil
}
