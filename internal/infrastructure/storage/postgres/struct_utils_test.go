package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"billmint/internal/core/entity"
	"billmint/internal/core/id"
	"billmint/internal/core/types"
	"billmint/internal/domain/tax"
)

type mockDocument struct {
	entity.Document
	tax.Summary
	ClientID id.ID       `db:"client_id" json:"clientId"`
	Subtotal types.Money `db:"subtotal" json:"subtotal"`
	Lines    []string    `db:"-" json:"lines"`
}

func TestExtractDBColumns_EmbeddedStructs(t *testing.T) {
	cols := ExtractDBColumns[mockDocument]()

	expectedCols := []string{
		"id", "number", "date", "is_manual_entry", "version",
		"created_at", "updated_at",
		"tax_type", "tax_rate", "tax_cgst", "tax_sgst", "tax_igst",
		"client_id", "subtotal",
	}

	for _, expected := range expectedCols {
		assert.Contains(t, cols, expected)
	}
	assert.NotContains(t, cols, "-")
}

func TestStructToMap_EmbeddedStructs(t *testing.T) {
	now := time.Now().UTC()
	doc := mockDocument{
		Document: entity.Document{
			ID:          id.New(),
			Number:      "INV/2425/007",
			Date:        now,
			ManualEntry: true,
			Version:     3,
		},
		Summary: tax.Summary{
			Type: tax.TypeIGST,
			Rate: types.MustMoney("18"),
			IGST: types.MustMoney("180.00"),
		},
		ClientID: id.New(),
		Subtotal: types.MustMoney("1000.00"),
		Lines:    []string{"ignored"},
	}

	m := StructToMap(doc)

	assert.Equal(t, doc.ID, m["id"])
	assert.Equal(t, "INV/2425/007", m["number"])
	assert.Equal(t, true, m["is_manual_entry"])
	assert.Equal(t, 3, m["version"])
	assert.Equal(t, tax.TypeIGST, m["tax_type"])
	assert.Equal(t, doc.ClientID, m["client_id"])
	assert.NotContains(t, m, "-")
}
