package tax

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"billmint/internal/core/types"
)

// Maharashtra seller used across the classification table.
var seller = Profile{StateCode: "27", Country: "India"}

func TestClassify_IntraState(t *testing.T) {
	got := Classify(seller, "27", "India")

	assert.Equal(t, TypeCGSTSGST, got.Type)
	assert.True(t, got.Rate.Equal(decimal.NewFromInt(18)))
	assert.True(t, got.Breakdown.CGST.Equal(decimal.NewFromInt(9)))
	assert.True(t, got.Breakdown.SGST.Equal(decimal.NewFromInt(9)))
	assert.True(t, got.Breakdown.IGST.IsZero())
}

func TestClassify_InterState(t *testing.T) {
	got := Classify(seller, "7", "India")

	assert.Equal(t, TypeIGST, got.Type)
	assert.True(t, got.Rate.Equal(decimal.NewFromInt(18)))
	assert.True(t, got.Breakdown.CGST.IsZero())
	assert.True(t, got.Breakdown.SGST.IsZero())
	assert.True(t, got.Breakdown.IGST.Equal(decimal.NewFromInt(18)))
}

func TestClassify_ExportZeroRated(t *testing.T) {
	got := Classify(seller, "7", "USA")

	assert.Equal(t, TypeNone, got.Type)
	assert.True(t, got.Rate.IsZero())
	assert.True(t, got.Breakdown.CGST.IsZero())
	assert.True(t, got.Breakdown.SGST.IsZero())
	assert.True(t, got.Breakdown.IGST.IsZero())
}

func TestClassify_ExportCaseInsensitive(t *testing.T) {
	assert.Equal(t, TypeNone, Classify(seller, "27", "  usa ").Type)
	assert.Equal(t, TypeCGSTSGST, Classify(seller, "27", "INDIA").Type)
	assert.Equal(t, TypeCGSTSGST, Classify(seller, "27", " India ").Type)
}

func TestClassify_MissingProfileFailsafe(t *testing.T) {
	// A broken seller profile over-taxes (IGST 18%) rather than under-taxes,
	// regardless of buyer state.
	for _, state := range []string{"27", "7", ""} {
		got := Classify(Profile{}, state, "India")
		assert.Equal(t, TypeIGST, got.Type)
		assert.True(t, got.Rate.Equal(decimal.NewFromInt(18)))
		assert.True(t, got.Breakdown.IGST.Equal(decimal.NewFromInt(18)))
	}
}

func TestClassify_ExportBeatsMissingProfile(t *testing.T) {
	// The export check runs before profile validation.
	got := Classify(Profile{}, "7", "Germany")
	assert.Equal(t, TypeNone, got.Type)
	assert.True(t, got.Rate.IsZero())
}

func TestClassify_Idempotent(t *testing.T) {
	first := Classify(seller, "7", "India")
	second := Classify(seller, "7", "India")
	assert.Equal(t, first, second)
}

func TestResult_Apply(t *testing.T) {
	subtotal := types.MustMoney("1000")

	intra := Classify(seller, "27", "India").Apply(subtotal)
	assert.True(t, intra.CGST.Equal(types.MustMoney("90")))
	assert.True(t, intra.SGST.Equal(types.MustMoney("90")))
	assert.True(t, intra.IGST.IsZero())
	assert.True(t, intra.Total().Equal(types.MustMoney("180")))

	inter := Classify(seller, "7", "India").Apply(subtotal)
	assert.True(t, inter.IGST.Equal(types.MustMoney("180")))
	assert.True(t, inter.Total().Equal(types.MustMoney("180")))

	export := Classify(seller, "7", "USA").Apply(subtotal)
	assert.True(t, export.Total().IsZero())
}

func TestResultFor_MatchesClassification(t *testing.T) {
	// Reconstructing the result from a snapshot's regime must reproduce the
	// original classification for every regime.
	cases := []Result{
		Classify(seller, "27", "India"),
		Classify(seller, "7", "India"),
		Classify(seller, "7", "USA"),
	}
	for _, want := range cases {
		assert.Equal(t, want, ResultFor(want.Type))
	}
}

func TestResultFor_TracksChangedSubtotal(t *testing.T) {
	// A document classified at subtotal 1000 gets its lines doubled without
	// touching the place of supply. Re-applying the stored regime must scale
	// the component amounts with the new subtotal, keeping the effective rate
	// at 18% instead of freezing the old absolute amounts.
	snapshot := Classify(seller, "7", "India").Apply(types.MustMoney("1000"))
	assert.True(t, snapshot.IGST.Equal(types.MustMoney("180")))

	reapplied := ResultFor(snapshot.Type).Apply(types.MustMoney("2000"))
	assert.Equal(t, TypeIGST, reapplied.Type)
	assert.True(t, reapplied.Rate.Equal(decimal.NewFromInt(18)))
	assert.True(t, reapplied.IGST.Equal(types.MustMoney("360")))
	assert.True(t, reapplied.Total().Equal(types.MustMoney("360")))

	intra := ResultFor(TypeCGSTSGST).Apply(types.MustMoney("500"))
	assert.True(t, intra.CGST.Equal(types.MustMoney("45")))
	assert.True(t, intra.SGST.Equal(types.MustMoney("45")))

	export := ResultFor(TypeNone).Apply(types.MustMoney("2000"))
	assert.True(t, export.Total().IsZero())
}

func TestResult_ApplyRounding(t *testing.T) {
	// 9% of 33.33 is 2.9997; components round to currency precision.
	got := Classify(seller, "27", "India").Apply(types.MustMoney("33.33"))
	assert.True(t, got.CGST.Equal(types.MustMoney("3.00")))
	assert.True(t, got.SGST.Equal(types.MustMoney("3.00")))
}
