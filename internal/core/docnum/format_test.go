package docnum

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestRender(t *testing.T) {
	issueDate := time.Date(2024, time.July, 5, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name     string
		template string
		values   Values
		want     string
	}{
		{
			name:     "explicit padding width",
			template: "INV/{FY}/{SEQ:4}",
			values:   Values{FiscalYear: "2425", Sequence: 7},
			want:     "INV/2425/0007",
		},
		{
			name:     "default padding width",
			template: "INV-{YYYY}-{SEQ}",
			values:   Values{Date: issueDate, Sequence: 42},
			want:     "INV-2024-042",
		},
		{
			name:     "no sequence token appends fallback suffix",
			template: "PLAIN",
			values:   Values{Sequence: 5},
			want:     "PLAIN-5",
		},
		{
			name:     "month and day placeholders zero padded",
			template: "{YYYY}{MM}{DD}-{SEQ:5}",
			values:   Values{Date: issueDate, Sequence: 12},
			want:     "20240705-00012",
		},
		{
			name:     "sequence wider than padding",
			template: "Q/{SEQ:2}",
			values:   Values{Sequence: 123},
			want:     "Q/123",
		},
		{
			name:     "default invoice template",
			template: DefaultInvoiceTemplate,
			values:   Values{FiscalYear: "2425", Sequence: 1},
			want:     "INV/2425/001",
		},
		{
			name:     "default quotation template",
			template: DefaultQuotationTemplate,
			values:   Values{FiscalYear: "2425", Sequence: 99},
			want:     "QTN/2425/099",
		},
		{
			name:     "date placeholders untouched without a date",
			template: "INV-{YYYY}-{SEQ}",
			values:   Values{Sequence: 3},
			want:     "INV-{YYYY}-003",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.template, tt.values))
		})
	}
}
