package settings

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmint/internal/domain/tax"
)

func profileFixture() tax.Profile {
	return tax.Profile{StateCode: "27", Country: "India"}
}

type fakeStore struct {
	values map[string]json.RawMessage
	err    error
}

func (f *fakeStore) Get(ctx context.Context, key string) (json.RawMessage, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.values[key], nil
}

func (f *fakeStore) Set(ctx context.Context, key string, value json.RawMessage) error {
	if f.err != nil {
		return f.err
	}
	if f.values == nil {
		f.values = make(map[string]json.RawMessage)
	}
	f.values[key] = value
	return nil
}

func TestDocumentSettings_Configured(t *testing.T) {
	store := &fakeStore{values: map[string]json.RawMessage{
		KeyDocumentSettings: json.RawMessage(`{"invoice_format":"INV-{YYYY}-{SEQ:4}","quotation_format":"Q/{FY}/{SEQ}"}`),
	}}

	ds := NewService(store).DocumentSettings(context.Background())
	assert.Equal(t, "INV-{YYYY}-{SEQ:4}", ds.InvoiceFormat)
	assert.Equal(t, "Q/{FY}/{SEQ}", ds.QuotationFormat)
}

func TestDocumentSettings_MissingKey(t *testing.T) {
	ds := NewService(&fakeStore{}).DocumentSettings(context.Background())
	assert.Empty(t, ds.InvoiceFormat)
	assert.Empty(t, ds.QuotationFormat)
}

func TestDocumentSettings_StoreFailure(t *testing.T) {
	// Storage faults degrade to defaults instead of blocking creation.
	svc := NewService(&fakeStore{err: errors.New("connection refused")})
	assert.Empty(t, svc.DocumentSettings(context.Background()).InvoiceFormat)
}

func TestCompanyProfile_RoundTrip(t *testing.T) {
	store := &fakeStore{}
	svc := NewService(store)

	profile := svc.CompanyProfile(context.Background())
	assert.False(t, profile.Complete())

	require.NoError(t, svc.SetCompanyProfile(context.Background(), profileFixture()))

	profile = svc.CompanyProfile(context.Background())
	assert.True(t, profile.Complete())
	assert.Equal(t, "27", profile.StateCode)
	assert.Equal(t, "India", profile.Country)
}

func TestCompanyProfile_MalformedValue(t *testing.T) {
	store := &fakeStore{values: map[string]json.RawMessage{
		KeyCompanyProfile: json.RawMessage(`{broken`),
	}}
	profile := NewService(store).CompanyProfile(context.Background())
	assert.False(t, profile.Complete())
}
