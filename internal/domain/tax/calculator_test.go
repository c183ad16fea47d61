//go:build unit

package tax_test

import (
	"strconv"
	"testing"

	"gst-lifecycle/internal/domain/tax"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeItemTax(t *testing.T) {
	testCases := []struct {
		name     string
		input    tax.ItemInput
		expected tax.ItemTax
	}{
		{
			name:  "intrastate supply splits into CGST and SGST",
			input: tax.ItemInput{TaxableValue: "1000", CGSTRate: "9", SGSTRate: "9"},
			expected: tax.ItemTax{
				AssessableAmount: "1000.00",
				CGSTAmount:       "90.00",
				SGSTAmount:       "90.00",
				IGSTAmount:       "0.00",
				TotalItemValue:   "1180.00",
				EffectiveGSTRate: "18.00",
			},
		},
		{
			name:  "interstate supply uses IGST",
			input: tax.ItemInput{TaxableValue: "2500.50", IGSTRate: "12"},
			expected: tax.ItemTax{
				AssessableAmount: "2500.50",
				CGSTAmount:       "0.00",
				SGSTAmount:       "0.00",
				IGSTAmount:       "300.06",
				TotalItemValue:   "2800.56",
				EffectiveGSTRate: "12.00",
			},
		},
		{
			name:  "IGST rate wins the effective rate even when CGST is also set",
			input: tax.ItemInput{TaxableValue: "100", CGSTRate: "9", SGSTRate: "9", IGSTRate: "18"},
			expected: tax.ItemTax{
				AssessableAmount: "100.00",
				CGSTAmount:       "9.00",
				SGSTAmount:       "9.00",
				IGSTAmount:       "18.00",
				TotalItemValue:   "136.00",
				EffectiveGSTRate: "18.00",
			},
		},
		{
			name:  "missing, blank and non-numeric fields read as zero",
			input: tax.ItemInput{TaxableValue: "  ", CGSTRate: "abc", SGSTRate: ""},
			expected: tax.ItemTax{
				AssessableAmount: "0.00",
				CGSTAmount:       "0.00",
				SGSTAmount:       "0.00",
				IGSTAmount:       "0.00",
				TotalItemValue:   "0.00",
				EffectiveGSTRate: "0.00",
			},
		},
		{
			name:  "surrounding whitespace is tolerated",
			input: tax.ItemInput{TaxableValue: " 200 ", IGSTRate: " 5 "},
			expected: tax.ItemTax{
				AssessableAmount: "200.00",
				CGSTAmount:       "0.00",
				SGSTAmount:       "0.00",
				IGSTAmount:       "10.00",
				TotalItemValue:   "210.00",
				EffectiveGSTRate: "5.00",
			},
		},
		{
			name:  "half-cent rounds away from zero",
			input: tax.ItemInput{TaxableValue: "0.5", IGSTRate: "1"},
			expected: tax.ItemTax{
				AssessableAmount: "0.50",
				CGSTAmount:       "0.00",
				SGSTAmount:       "0.00",
				IGSTAmount:       "0.01",
				TotalItemValue:   "0.51",
				EffectiveGSTRate: "1.00",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tax.ComputeItemTax(tc.input))
		})
	}
}

func TestComputeUnitPrice(t *testing.T) {
	testCases := []struct {
		name     string
		total    string
		quantity string
		expected string
	}{
		{name: "zero quantity yields zero", total: "100", quantity: "0", expected: "0.00"},
		{name: "zero quantity with decimals yields zero", total: "100", quantity: "0.000", expected: "0.00"},
		{name: "missing quantity yields zero", total: "100", quantity: "", expected: "0.00"},
		{name: "non-numeric quantity yields zero", total: "100", quantity: "ten", expected: "0.00"},
		{name: "repeating decimal is rounded", total: "100", quantity: "3", expected: "33.33"},
		{name: "exact division", total: "1180", quantity: "4", expected: "295.00"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tax.ComputeUnitPrice(tc.total, tc.quantity))
		})
	}

	t.Run("any total over zero quantity is zero", func(t *testing.T) {
		for _, total := range []string{"0", "1", "-5", "99999999.99", "abc", ""} {
			assert.Equal(t, "0.00", tax.ComputeUnitPrice(total, "0"), "total=%q", total)
		}
	})
}

func TestComputeTotals(t *testing.T) {
	exactRateItems := []tax.ItemInput{
		{TaxableValue: "1000", CGSTRate: "9", SGSTRate: "9"},
		{TaxableValue: "455.55", IGSTRate: "12"},
		{TaxableValue: "99.99", CGSTRate: "2.5", SGSTRate: "2.5"},
		{TaxableValue: "12.34"},
		{TaxableValue: "7.77", IGSTRate: "18"},
	}

	t.Run("empty input yields zero totals", func(t *testing.T) {
		assert.Equal(t, tax.Totals{
			TotalAssessable:   "0.00",
			TotalCGST:         "0.00",
			TotalSGST:         "0.00",
			TotalIGST:         "0.00",
			TotalInvoiceValue: "0.00",
		}, tax.ComputeTotals(nil))
	})

	t.Run("totals match the sum of item outputs within rounding tolerance", func(t *testing.T) {
		totals := tax.ComputeTotals(exactRateItems)

		var assessable, cgst, sgst, igst, total decimal.Decimal
		for _, in := range exactRateItems {
			it := tax.ComputeItemTax(in)
			assessable = assessable.Add(tax.ParseAmount(it.AssessableAmount))
			cgst = cgst.Add(tax.ParseAmount(it.CGSTAmount))
			sgst = sgst.Add(tax.ParseAmount(it.SGSTAmount))
			igst = igst.Add(tax.ParseAmount(it.IGSTAmount))
			total = total.Add(tax.ParseAmount(it.TotalItemValue))
		}

		tolerance := decimal.RequireFromString("0.005").Mul(decimal.NewFromInt(int64(len(exactRateItems))))
		assertWithin(t, assessable, totals.TotalAssessable, tolerance)
		assertWithin(t, cgst, totals.TotalCGST, tolerance)
		assertWithin(t, sgst, totals.TotalSGST, tolerance)
		assertWithin(t, igst, totals.TotalIGST, tolerance)
		assertWithin(t, total, totals.TotalInvoiceValue, tolerance)
	})

	t.Run("reordering items does not change rounded totals", func(t *testing.T) {
		expected := tax.ComputeTotals(exactRateItems)

		permutations := [][]int{
			{4, 3, 2, 1, 0},
			{2, 0, 4, 1, 3},
			{1, 4, 0, 3, 2},
		}
		for _, perm := range permutations {
			reordered := make([]tax.ItemInput, 0, len(perm))
			for _, i := range perm {
				reordered = append(reordered, exactRateItems[i])
			}
			assert.Equal(t, expected, tax.ComputeTotals(reordered), "permutation %v", perm)
		}
	})

	t.Run("rounds once per field rather than per item", func(t *testing.T) {
		items := make([]tax.ItemInput, 300)
		for i := range items {
			items[i] = tax.ItemInput{TaxableValue: "0.01", CGSTRate: "33.33"}
		}

		// Each line's CGST is 0.003333 and rounds to 0.00 on its own; the sum is 0.9999.
		assert.Equal(t, "0.00", tax.ComputeItemTax(items[0]).CGSTAmount)
		totals := tax.ComputeTotals(items)
		assert.Equal(t, "1.00", totals.TotalCGST)
		assert.Equal(t, "3.00", totals.TotalAssessable)
		assert.Equal(t, "4.00", totals.TotalInvoiceValue)
	})

	t.Run("hundreds of repeating-decimal lines stay exact", func(t *testing.T) {
		items := make([]tax.ItemInput, 500)
		for i := range items {
			items[i] = tax.ItemInput{TaxableValue: "1234.57", IGSTRate: "33.33"}
		}

		totals := tax.ComputeTotals(items)
		assert.Equal(t, "617285.00", totals.TotalAssessable)
		assert.Equal(t, "205741.09", totals.TotalIGST)
		assert.Equal(t, "823026.09", totals.TotalInvoiceValue)

		// Recomputing must be stable.
		assert.Equal(t, totals, tax.ComputeTotals(items))
	})
}

func TestAdjustments(t *testing.T) {
	t.Run("round off", func(t *testing.T) {
		assert.Equal(t, "1180.00", tax.ApplyRoundOff("1180.40", "-0.40"))
		assert.Equal(t, "1180.40", tax.ApplyRoundOff("1180.40", ""))
	})

	t.Run("cess", func(t *testing.T) {
		assert.Equal(t, "1012.25", tax.ApplyCess("1000", "12.25"))
		assert.Equal(t, "1000.00", tax.ApplyCess("1000", "n/a"))
	})

	t.Run("final invoice value composes every adjustment additively", func(t *testing.T) {
		testCases := []struct {
			name     string
			base     string
			adj      tax.Adjustments
			expected string
		}{
			{name: "no adjustments", base: "1000", expected: "1000.00"},
			{name: "round off only", base: "999.60", adj: tax.Adjustments{RoundOff: "0.40"}, expected: "1000.00"},
			{name: "all adjustments", base: "1000", adj: tax.Adjustments{RoundOff: "0.5", Cess: "12.25", OtherCharges: "50"}, expected: "1062.75"},
			{name: "garbage adjustments read as zero", base: "10", adj: tax.Adjustments{RoundOff: "x", Cess: "", OtherCharges: "-"}, expected: "10.00"},
		}
		for _, tc := range testCases {
			t.Run(tc.name, func(t *testing.T) {
				assert.Equal(t, tc.expected, tax.ComputeFinalInvoiceValue(tc.base, tc.adj))
			})
		}
	})

	t.Run("composition equals stepwise application", func(t *testing.T) {
		stepwise := tax.ApplyCess(tax.ApplyRoundOff("1180.37", "-0.37"), "25.5")
		composed := tax.ComputeFinalInvoiceValue("1180.37", tax.Adjustments{RoundOff: "-0.37", Cess: "25.5"})
		assert.Equal(t, stepwise, composed)
	})
}

func TestFormatAmountRoundTrip(t *testing.T) {
	values := []string{"0", "1", "0.005", "0.015", "-0.005", "33.333333", "1180.4", "99999999.999", "1e3", "12.3456789"}
	for _, v := range values {
		t.Run(v, func(t *testing.T) {
			formatted := tax.FormatAmount(tax.ParseAmount(v))
			require.Len(t, formatted[len(formatted)-3:], 3)
			assert.Equal(t, ".", string(formatted[len(formatted)-3]))

			reparsed := tax.FormatAmount(tax.ParseAmount(formatted))
			assert.Equal(t, formatted, reparsed)

			f, err := strconv.ParseFloat(formatted, 64)
			require.NoError(t, err)
			assert.Equal(t, formatted, strconv.FormatFloat(f, 'f', 2, 64))
		})
	}

	t.Run("normalize is idempotent", func(t *testing.T) {
		assert.Equal(t, "12.35", tax.Normalize("12.345"))
		assert.Equal(t, tax.Normalize("12.345"), tax.Normalize(tax.Normalize("12.345")))
	})
}

func assertWithin(t *testing.T, expected decimal.Decimal, actual string, tolerance decimal.Decimal) {
	t.Helper()
	diff := expected.Sub(tax.ParseAmount(actual)).Abs()
	assert.Truef(t, diff.LessThanOrEqual(tolerance), "expected %s within %s of %s", actual, tolerance, expected)
}
