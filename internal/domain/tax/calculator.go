package tax

import (
	"github.com/shopspring/decimal"
)

// ItemInput is one invoice line as submitted by a form. Rates are percentages ("18" is 18%).
type ItemInput struct {
	TaxableValue string
	CGSTRate     string
	SGSTRate     string
	IGSTRate     string
}

type ItemTax struct {
	AssessableAmount string `json:"assessable_amount"`
	CGSTAmount       string `json:"cgst_amount"`
	SGSTAmount       string `json:"sgst_amount"`
	IGSTAmount       string `json:"igst_amount"`
	TotalItemValue   string `json:"total_item_value"`
	EffectiveGSTRate string `json:"effective_gst_rate"`
}

type Totals struct {
	TotalAssessable   string `json:"total_assessable"`
	TotalCGST         string `json:"total_cgst"`
	TotalSGST         string `json:"total_sgst"`
	TotalIGST         string `json:"total_igst"`
	TotalInvoiceValue string `json:"total_invoice_value"`
}

// Adjustments are optional additive corrections applied on top of the invoice total.
// An empty field contributes nothing.
type Adjustments struct {
	RoundOff     string
	Cess         string
	OtherCharges string
}

type itemAmounts struct {
	assessable decimal.Decimal
	cgst       decimal.Decimal
	sgst       decimal.Decimal
	igst       decimal.Decimal
	total      decimal.Decimal
}

func computeItemAmounts(in ItemInput) itemAmounts {
	value := ParseAmount(in.TaxableValue)
	cgst := value.Mul(ParseAmount(in.CGSTRate)).Div(hundred)
	sgst := value.Mul(ParseAmount(in.SGSTRate)).Div(hundred)
	igst := value.Mul(ParseAmount(in.IGSTRate)).Div(hundred)

	return itemAmounts{
		assessable: value,
		cgst:       cgst,
		sgst:       sgst,
		igst:       igst,
		total:      value.Add(cgst).Add(sgst).Add(igst),
	}
}

// EffectiveRate is the IGST rate for interstate supply and CGST+SGST otherwise.
// Whether a line mixes both regimes is a business rule, not a calculation concern.
func EffectiveRate(in ItemInput) decimal.Decimal {
	igst := ParseAmount(in.IGSTRate)
	if igst.GreaterThan(decimal.Zero) {
		return igst
	}
	return ParseAmount(in.CGSTRate).Add(ParseAmount(in.SGSTRate))
}

func ComputeItemTax(in ItemInput) ItemTax {
	a := computeItemAmounts(in)
	return ItemTax{
		AssessableAmount: FormatAmount(a.assessable),
		CGSTAmount:       FormatAmount(a.cgst),
		SGSTAmount:       FormatAmount(a.sgst),
		IGSTAmount:       FormatAmount(a.igst),
		TotalItemValue:   FormatAmount(a.total),
		EffectiveGSTRate: FormatAmount(EffectiveRate(in)),
	}
}

// ComputeUnitPrice never fails; a zero (or unparsable) quantity yields "0.00".
func ComputeUnitPrice(totalValue, quantity string) string {
	qty := ParseAmount(quantity)
	if qty.IsZero() {
		return FormatAmount(decimal.Zero)
	}
	return FormatAmount(ParseAmount(totalValue).Div(qty))
}

// ComputeTotals sums unrounded line amounts in input order and rounds each field once.
func ComputeTotals(items []ItemInput) Totals {
	var assessable, cgst, sgst, igst, total decimal.Decimal
	for _, in := range items {
		a := computeItemAmounts(in)
		assessable = assessable.Add(a.assessable)
		cgst = cgst.Add(a.cgst)
		sgst = sgst.Add(a.sgst)
		igst = igst.Add(a.igst)
		total = total.Add(a.total)
	}

	return Totals{
		TotalAssessable:   FormatAmount(assessable),
		TotalCGST:         FormatAmount(cgst),
		TotalSGST:         FormatAmount(sgst),
		TotalIGST:         FormatAmount(igst),
		TotalInvoiceValue: FormatAmount(total),
	}
}

func ApplyRoundOff(total, roundOff string) string {
	return FormatAmount(ParseAmount(total).Add(ParseAmount(roundOff)))
}

func ApplyCess(total, cess string) string {
	return FormatAmount(ParseAmount(total).Add(ParseAmount(cess)))
}

func ComputeFinalInvoiceValue(base string, adj Adjustments) string {
	final := ParseAmount(base).
		Add(ParseAmount(adj.RoundOff)).
		Add(ParseAmount(adj.Cess)).
		Add(ParseAmount(adj.OtherCharges))
	return FormatAmount(final)
}
