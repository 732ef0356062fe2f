package sequence

import (
	"context"
	"sync"
)

// MockAllocator is a test implementation of Allocator.
// Use in unit tests to avoid database dependencies.
type MockAllocator struct {
	NextFunc    func(ctx context.Context, docType DocumentType, fiscalYear string) (int64, error)
	SetNextFunc func(ctx context.Context, docType DocumentType, fiscalYear string, value int64) error

	mu       sync.Mutex
	counters map[string]int64
}

// Next implements Allocator. Without a NextFunc override it behaves like an
// in-memory counter table, which is enough for concurrency tests.
func (m *MockAllocator) Next(ctx context.Context, docType DocumentType, fiscalYear string) (int64, error) {
	if m.NextFunc != nil {
		return m.NextFunc(ctx, docType, fiscalYear)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}
	key := string(docType) + ":" + fiscalYear
	m.counters[key]++
	return m.counters[key], nil
}

// SetNext implements Allocator.
func (m *MockAllocator) SetNext(ctx context.Context, docType DocumentType, fiscalYear string, value int64) error {
	if m.SetNextFunc != nil {
		return m.SetNextFunc(ctx, docType, fiscalYear, value)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}
	m.counters[string(docType)+":"+fiscalYear] = value
	return nil
}

// Ensure compile-time interface compliance.
var _ Allocator = (*MockAllocator)(nil)
