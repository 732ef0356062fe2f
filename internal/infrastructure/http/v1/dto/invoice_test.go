package dto

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"billmint/internal/core/apperror"
	"billmint/internal/core/id"
	"billmint/internal/core/types"
	"billmint/internal/domain/documents/invoice"
)

func createRequestFixture() CreateInvoiceRequest {
	return CreateInvoiceRequest{
		Date:       time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		ClientID:   id.New().String(),
		Subtotal:   "1000.00",
		GrandTotal: "1000.00",
		Lines: []DocumentLineRequest{
			{Description: "Consulting", Quantity: "2", Rate: "500.00", Amount: "1000.00"},
		},
	}
}

func TestCreateInvoiceRequest_ToEntity(t *testing.T) {
	req := createRequestFixture()

	inv, err := req.ToEntity()
	require.NoError(t, err)

	assert.Equal(t, req.ClientID, inv.ClientID.String())
	assert.True(t, inv.Subtotal.Equal(types.MustMoney("1000.00")))
	require.Len(t, inv.Lines, 1)
	assert.Equal(t, 1, inv.Lines[0].LineNo)
	assert.True(t, inv.Lines[0].Rate.Equal(types.MustMoney("500.00")))
}

func TestCreateInvoiceRequest_ToEntity_RejectsMalformedDecimals(t *testing.T) {
	// A malformed decimal must fail the request, never degrade to zero:
	// rate="abc" parsed as 0 would sail through totals verification as a
	// zero-amount line.
	cases := []struct {
		name   string
		mutate func(r *CreateInvoiceRequest)
		field  string
	}{
		{"subtotal", func(r *CreateInvoiceRequest) { r.Subtotal = "abc" }, "subtotal"},
		{"grand total", func(r *CreateInvoiceRequest) { r.GrandTotal = "12,50" }, "grandTotal"},
		{"line quantity", func(r *CreateInvoiceRequest) { r.Lines[0].Quantity = "" }, "quantity"},
		{"line rate", func(r *CreateInvoiceRequest) { r.Lines[0].Rate = "abc" }, "rate"},
		{"line amount", func(r *CreateInvoiceRequest) { r.Lines[0].Amount = "xyz" }, "amount"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := createRequestFixture()
			tc.mutate(&req)

			_, err := req.ToEntity()
			require.Error(t, err)

			appErr, ok := apperror.AsAppError(err)
			require.True(t, ok)
			assert.Equal(t, apperror.CodeValidation, appErr.Code)
			assert.Equal(t, tc.field, appErr.Details["field"])
		})
	}
}

func TestCreateInvoiceRequest_ToEntity_RejectsBadClientID(t *testing.T) {
	req := createRequestFixture()
	req.ClientID = "not-a-uuid"

	_, err := req.ToEntity()
	require.Error(t, err)

	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "clientId", appErr.Details["field"])
}

func TestUpdateInvoiceRequest_ApplyTo_RejectsMalformedDecimals(t *testing.T) {
	inv := invoice.New(id.New())

	bad := "nonsense"
	err := (&UpdateInvoiceRequest{Subtotal: &bad}).ApplyTo(inv)
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "subtotal", appErr.Details["field"])

	err = (&UpdateInvoiceRequest{
		Lines: []DocumentLineRequest{{Description: "x", Quantity: "1", Rate: "oops", Amount: "0"}},
	}).ApplyTo(inv)
	require.Error(t, err)
	appErr, ok = apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, "rate", appErr.Details["field"])
	assert.Equal(t, 1, appErr.Details["lineNo"])
}

func TestCreateQuotationRequest_ToEntity_RejectsMalformedDecimals(t *testing.T) {
	bad := "1.2.3"
	req := CreateQuotationRequest{
		Date:       time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC),
		ClientID:   id.New().String(),
		Subtotal:   bad,
		GrandTotal: "100",
		Lines: []DocumentLineRequest{
			{Description: "x", Quantity: "1", Rate: "100", Amount: "100"},
		},
	}

	_, err := req.ToEntity()
	require.Error(t, err)
	appErr, ok := apperror.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, apperror.CodeValidation, appErr.Code)
	assert.Equal(t, "subtotal", appErr.Details["field"])
}
