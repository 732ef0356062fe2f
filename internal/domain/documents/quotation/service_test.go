package quotation

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmint/internal/core/apperror"
	"billmint/internal/core/id"
	"billmint/internal/core/sequence"
	"billmint/internal/core/types"
	"billmint/internal/domain"
	"billmint/internal/domain/settings"
)

type fakeRepo struct {
	mu    sync.Mutex
	docs  map[id.ID]*Quotation
	lines map[id.ID][]Line
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		docs:  make(map[id.ID]*Quotation),
		lines: make(map[id.ID][]Line),
	}
}

func (r *fakeRepo) Create(ctx context.Context, q *Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored := *q
	r.docs[q.ID] = &stored
	return nil
}

func (r *fakeRepo) GetByID(ctx context.Context, docID id.ID) (*Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.docs[docID]
	if !ok {
		return nil, apperror.NewNotFound("quotation", docID)
	}
	out := *q
	return &out, nil
}

func (r *fakeRepo) GetByNumber(ctx context.Context, number string) (*Quotation, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.docs {
		if q.Number == number {
			out := *q
			return &out, nil
		}
	}
	return nil, apperror.NewNotFound("quotation", number)
}

func (r *fakeRepo) ExistsByNumber(ctx context.Context, number string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, q := range r.docs {
		if q.Number == number {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeRepo) Update(ctx context.Context, q *Quotation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.docs[q.ID]; !ok {
		return apperror.NewNotFound("quotation", q.ID)
	}
	stored := *q
	r.docs[q.ID] = &stored
	return nil
}

func (r *fakeRepo) Delete(ctx context.Context, docID id.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.docs, docID)
	delete(r.lines, docID)
	return nil
}

func (r *fakeRepo) SetStatus(ctx context.Context, docID id.ID, status Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	q, ok := r.docs[docID]
	if !ok {
		return apperror.NewNotFound("quotation", docID)
	}
	q.Status = status
	return nil
}

func (r *fakeRepo) GetLines(ctx context.Context, docID id.ID) ([]Line, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.lines[docID], nil
}

func (r *fakeRepo) SaveLines(ctx context.Context, docID id.ID, lines []Line) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines[docID] = append([]Line(nil), lines...)
	return nil
}

func (r *fakeRepo) List(ctx context.Context, filter ListFilter) (domain.ListResult[*Quotation], error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := domain.ListResult[*Quotation]{Limit: filter.Limit, Offset: filter.Offset}
	for _, q := range r.docs {
		out := *q
		result.Items = append(result.Items, &out)
	}
	result.TotalCount = int64(len(result.Items))
	return result, nil
}

type fakeTxManager struct{}

func (fakeTxManager) RunInTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fakeSettingsStore struct {
	values map[string]json.RawMessage
}

func (f *fakeSettingsStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	return f.values[key], nil
}

func (f *fakeSettingsStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	if f.values == nil {
		f.values = make(map[string]json.RawMessage)
	}
	f.values[key] = value
	return nil
}

func newService() (*Service, *fakeRepo, *sequence.MockAllocator) {
	repo := newFakeRepo()
	allocator := &sequence.MockAllocator{}
	svc := NewService(repo, allocator, settings.NewService(&fakeSettingsStore{}), fakeTxManager{})
	return svc, repo, allocator
}

func validQuotation() *Quotation {
	q := New(id.New())
	q.Date = time.Date(2024, time.September, 5, 0, 0, 0, 0, time.UTC)
	q.Lines = []Line{{
		LineNo:      1,
		Description: "Annual support plan",
		Quantity:    types.MustMoney("1"),
		Rate:        types.MustMoney("25000.00"),
		Amount:      types.MustMoney("25000.00"),
	}}
	q.Subtotal = types.MustMoney("25000.00")
	q.GrandTotal = types.MustMoney("25000.00")
	return q
}

func TestCreate_AutoNumber(t *testing.T) {
	svc, _, _ := newService()

	q := validQuotation()
	require.NoError(t, svc.Create(context.Background(), q))

	assert.Equal(t, "QTN/2425/001", q.Number)
	assert.Equal(t, StatusDraft, q.Status)
}

func TestCreate_CounterIndependentFromInvoices(t *testing.T) {
	svc, _, allocator := newService()

	// Pre-consume invoice numbers for the same fiscal year. The quotation
	// counter must be unaffected.
	for i := 0; i < 5; i++ {
		_, err := allocator.Next(context.Background(), sequence.Invoice, "2425")
		require.NoError(t, err)
	}

	q := validQuotation()
	require.NoError(t, svc.Create(context.Background(), q))
	assert.Equal(t, "QTN/2425/001", q.Number)
}

func TestCreate_ManualNumberCollision(t *testing.T) {
	svc, repo, _ := newService()

	first := validQuotation()
	first.Number = "QTN/OLD/9"
	first.ManualEntry = true
	require.NoError(t, svc.Create(context.Background(), first))

	dup := validQuotation()
	dup.Number = "QTN/OLD/9"
	dup.ManualEntry = true
	err := svc.Create(context.Background(), dup)

	require.Error(t, err)
	assert.True(t, apperror.IsDuplicateNumber(err))

	repo.mu.Lock()
	assert.Len(t, repo.docs, 1)
	repo.mu.Unlock()
}

func TestCreate_TotalsMismatchRejected(t *testing.T) {
	svc, _, _ := newService()

	q := validQuotation()
	q.Subtotal = types.MustMoney("1.00")
	err := svc.Create(context.Background(), q)
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
}

func TestUpdate_NumberImmutable(t *testing.T) {
	svc, _, _ := newService()

	q := validQuotation()
	require.NoError(t, svc.Create(context.Background(), q))
	original := q.Number

	q.Number = "QTN/FAKE/1"
	q.Remarks = "revised pricing"
	require.NoError(t, svc.Update(context.Background(), q))

	stored, err := svc.GetByID(context.Background(), q.ID)
	require.NoError(t, err)
	assert.Equal(t, original, stored.Number)
	assert.Equal(t, "revised pricing", stored.Remarks)
}

func TestUpdate_AdvancesVersion(t *testing.T) {
	svc, _, _ := newService()

	q := validQuotation()
	require.NoError(t, svc.Create(context.Background(), q))
	require.Equal(t, 1, q.Version)

	q.Remarks = "valid 60 days"
	require.NoError(t, svc.Update(context.Background(), q))
	assert.Equal(t, 2, q.Version)
}

func TestGetByNumber(t *testing.T) {
	svc, _, _ := newService()

	q := validQuotation()
	require.NoError(t, svc.Create(context.Background(), q))

	found, err := svc.GetByNumber(context.Background(), q.Number)
	require.NoError(t, err)
	assert.Equal(t, q.ID, found.ID)
	assert.Len(t, found.Lines, 1)

	_, err = svc.GetByNumber(context.Background(), "QTN/0000/999")
	assert.True(t, apperror.IsNotFound(err))
}

func TestSetStatus_RoundTrip(t *testing.T) {
	svc, _, _ := newService()

	q := validQuotation()
	require.NoError(t, svc.Create(context.Background(), q))

	require.NoError(t, svc.SetStatus(context.Background(), q.ID, StatusSent))
	require.NoError(t, svc.SetStatus(context.Background(), q.ID, StatusDraft))

	err := svc.SetStatus(context.Background(), q.ID, Status("PAID"))
	require.Error(t, err)
}

func TestDelete_AnyStatus(t *testing.T) {
	svc, repo, _ := newService()

	q := validQuotation()
	require.NoError(t, svc.Create(context.Background(), q))
	require.NoError(t, svc.SetStatus(context.Background(), q.ID, StatusSent))
	require.NoError(t, svc.Delete(context.Background(), q.ID))

	repo.mu.Lock()
	assert.Empty(t, repo.docs)
	repo.mu.Unlock()
}
