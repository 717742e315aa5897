// Package pricing computes quote totals. All arithmetic is done on
// exact decimals; rounding to two fractional digits happens only when a
// value is presented, so the summary identities hold exactly
// (afterDiscount + vatAmount == total).
package pricing

import "github.com/shopspring/decimal"

var oneHundred = decimal.NewFromInt(100)

// Line is the pricing view of a single quote line item
type Line struct {
	Qty          int
	UnitPrice    decimal.Decimal
	UnitDiscount decimal.Decimal
}

// LineTotal returns qty * (unitPrice - unitDiscount). A discount larger
// than the unit price yields a negative total; callers present it as-is.
func LineTotal(qty int, unitPrice, unitDiscount decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(int64(qty)).Mul(unitPrice.Sub(unitDiscount))
}

// Subtotal sums the line totals of all lines
func Subtotal(lines []Line) decimal.Decimal {
	sum := decimal.Zero
	for _, l := range lines {
		sum = sum.Add(LineTotal(l.Qty, l.UnitPrice, l.UnitDiscount))
	}
	return sum
}

// Summary holds the derived totals of a quote
type Summary struct {
	Subtotal        decimal.Decimal
	SpecialDiscount decimal.Decimal
	AfterDiscount   decimal.Decimal
	VATRate         decimal.Decimal
	VATAmount       decimal.Decimal
	Total           decimal.Decimal
}

// Summarize derives the full totals block from the line items, the
// quote-level special discount and the VAT rate (a percentage, e.g. 17).
func Summarize(lines []Line, specialDiscount, vatRate decimal.Decimal) Summary {
	subtotal := Subtotal(lines)
	afterDiscount := subtotal.Sub(specialDiscount)
	vatAmount := afterDiscount.Mul(vatRate).Div(oneHundred)
	return Summary{
		Subtotal:        subtotal,
		SpecialDiscount: specialDiscount,
		AfterDiscount:   afterDiscount,
		VATRate:         vatRate,
		VATAmount:       vatAmount,
		Total:           afterDiscount.Add(vatAmount),
	}
}
