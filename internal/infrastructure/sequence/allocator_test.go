package sequence

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coresequence "billmint/internal/core/sequence"
	"billmint/internal/infrastructure/storage/postgres"
)

// mockQuerier emulates the fiscal_sequences UPSERT against an in-memory map.
type mockQuerier struct {
	counters map[string]int64
	lastSQL  string
}

type mockRow struct {
	value int64
	err   error
}

func (r mockRow) Scan(dest ...any) error {
	if r.err != nil {
		return r.err
	}
	if len(dest) != 1 {
		return fmt.Errorf("expected 1 destination, got %d", len(dest))
	}
	ptr, ok := dest[0].(*int64)
	if !ok {
		return fmt.Errorf("expected *int64 destination, got %T", dest[0])
	}
	*ptr = r.value
	return nil
}

func (m *mockQuerier) Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}

func (m *mockQuerier) Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error) {
	return nil, nil
}

func (m *mockQuerier) QueryRow(ctx context.Context, sql string, args ...any) pgx.Row {
	m.lastSQL = sql
	if m.counters == nil {
		m.counters = make(map[string]int64)
	}

	key := fmt.Sprintf("%v:%v", args[0], args[1])
	if len(args) == 3 {
		m.counters[key] = args[2].(int64)
	} else {
		m.counters[key]++
	}
	return mockRow{value: m.counters[key]}
}

type mockProvider struct {
	querier *mockQuerier
}

func (p *mockProvider) GetQuerier(ctx context.Context) postgres.Querier {
	return p.querier
}

func TestNext_IncrementsPerPair(t *testing.T) {
	querier := &mockQuerier{}
	alloc := New(&mockProvider{querier: querier})
	ctx := context.Background()

	for want := int64(1); want <= 3; want++ {
		got, err := alloc.Next(ctx, coresequence.Invoice, "2425")
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}

	// Independent counters per document type and per fiscal year.
	got, err := alloc.Next(ctx, coresequence.Quotation, "2425")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)

	got, err = alloc.Next(ctx, coresequence.Invoice, "2526")
	require.NoError(t, err)
	assert.Equal(t, int64(1), got)
}

func TestNext_UsesRowLockingUpsert(t *testing.T) {
	querier := &mockQuerier{}
	alloc := New(&mockProvider{querier: querier})

	_, err := alloc.Next(context.Background(), coresequence.Invoice, "2425")
	require.NoError(t, err)

	assert.Contains(t, querier.lastSQL, "ON CONFLICT (document_type, fiscal_year)")
	assert.Contains(t, querier.lastSQL, "RETURNING last_count")
	assert.True(t, strings.Contains(querier.lastSQL, "last_count + 1"))
}

func TestSetNext_OverridesCounter(t *testing.T) {
	querier := &mockQuerier{}
	alloc := New(&mockProvider{querier: querier})
	ctx := context.Background()

	require.NoError(t, alloc.SetNext(ctx, coresequence.Invoice, "2425", 100))

	got, err := alloc.Next(ctx, coresequence.Invoice, "2425")
	require.NoError(t, err)
	assert.Equal(t, int64(101), got)
}
