// Package tax classifies sales under India's GST split-tax model and
// produces the tax snapshot persisted on financial documents.
package tax

import (
	"strings"

	"github.com/shopspring/decimal"

	"billmint/internal/core/types"
)

// Type is the tax regime applied to a sale.
type Type string

const (
	// TypeNone marks zero-rated exports.
	TypeNone Type = "NONE"

	// TypeCGSTSGST marks intra-state sales (tax split between centre and state).
	TypeCGSTSGST Type = "CGST_SGST"

	// TypeIGST marks inter-state sales (integrated tax).
	TypeIGST Type = "IGST"
)

// Standard GST rate applied to all classifications. Per-item rates from the
// HSN master are carried on line items but not used for classification.
var (
	standardRate = decimal.NewFromInt(18)
	halfRate     = decimal.NewFromInt(9)
)

// Profile is the seller's registered GST profile, sourced from settings.
type Profile struct {
	StateCode string `json:"state_code"`
	Country   string `json:"country"`
}

// Complete reports whether the profile carries enough data to classify.
func (p Profile) Complete() bool {
	return strings.TrimSpace(p.StateCode) != ""
}

// Breakdown holds per-component percentage rates.
type Breakdown struct {
	CGST types.Money `json:"cgst"`
	SGST types.Money `json:"sgst"`
	IGST types.Money `json:"igst"`
}

// Result is a classification outcome. Rate and Breakdown are percentages;
// use Apply to convert them into absolute amounts for a given subtotal.
type Result struct {
	Type      Type      `json:"type"`
	Rate      types.Money `json:"rate"`
	Breakdown Breakdown `json:"breakdown"`
}

// Classify determines the tax regime for a sale.
//
// Decision order matters:
//  1. Foreign buyers are zero-rated regardless of seller configuration.
//     This check runs before any profile validation.
//  2. An incomplete seller profile falls back to IGST 18% - deliberately
//     over-taxing rather than under-taxing when configuration is broken.
//  3. Same state: CGST 9% + SGST 9%.
//  4. Different state: IGST 18%.
//
// Pure function: no state, no failure mode.
func Classify(seller Profile, buyerStateCode, buyerCountry string) Result {
	if country := strings.ToLower(strings.TrimSpace(buyerCountry)); country != "" && country != "india" {
		return Result{Type: TypeNone, Rate: decimal.Zero}
	}

	if !seller.Complete() {
		return interState()
	}

	if strings.TrimSpace(buyerStateCode) == strings.TrimSpace(seller.StateCode) {
		return Result{
			Type:      TypeCGSTSGST,
			Rate:      standardRate,
			Breakdown: Breakdown{CGST: halfRate, SGST: halfRate},
		}
	}

	return interState()
}

func interState() Result {
	return Result{
		Type:      TypeIGST,
		Rate:      standardRate,
		Breakdown: Breakdown{IGST: standardRate},
	}
}

// ResultFor reconstructs the percentage result for an already-classified
// regime. When a document's totals change without a change in the place of
// supply, the stored regime stands but its component amounts must track the
// new subtotal; re-applying this result keeps the snapshot consistent.
func ResultFor(t Type) Result {
	switch t {
	case TypeCGSTSGST:
		return Result{
			Type:      TypeCGSTSGST,
			Rate:      standardRate,
			Breakdown: Breakdown{CGST: halfRate, SGST: halfRate},
		}
	case TypeIGST:
		return interState()
	default:
		return Result{Type: TypeNone, Rate: decimal.Zero}
	}
}

// Summary is the snapshot persisted on a document: the regime plus absolute
// component amounts computed against the subtotal at creation/update time.
// It is never recomputed after persistence.
type Summary struct {
	Type Type        `db:"tax_type" json:"type"`
	Rate types.Money `db:"tax_rate" json:"rate"`
	CGST types.Money `db:"tax_cgst" json:"cgst"`
	SGST types.Money `db:"tax_sgst" json:"sgst"`
	IGST types.Money `db:"tax_igst" json:"igst"`
}

// Total returns the sum of the component amounts.
func (s Summary) Total() types.Money {
	return s.CGST.Add(s.SGST).Add(s.IGST)
}

// Apply converts the percentage result into a Summary for the given subtotal,
// rounding each component to currency precision.
func (r Result) Apply(subtotal types.Money) Summary {
	hundred := decimal.NewFromInt(100)
	return Summary{
		Type: r.Type,
		Rate: r.Rate,
		CGST: types.Round2(subtotal.Mul(r.Breakdown.CGST).Div(hundred)),
		SGST: types.Round2(subtotal.Mul(r.Breakdown.SGST).Div(hundred)),
		IGST: types.Round2(subtotal.Mul(r.Breakdown.IGST).Div(hundred)),
	}
}
