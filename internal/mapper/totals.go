package mapper

import (
	"math"

	"github.com/imanage/imanage-api/internal/domain"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Line is the user-editable part of a document line
type Line struct {
	Quantity   float64
	UnitPrice  float64
	TaxPercent float64
}

// LineResult holds the derived amounts of one line
type LineResult struct {
	SerialNumber  int
	Quantity      float64
	UnitPrice     float64
	TaxPercent    float64
	GrossAmount   float64
	LineTaxAmount float64
	LineTotal     float64
}

// Totals is the output of ComputeTotals
type Totals struct {
	Lines    []LineResult
	SubTotal float64
	TotalTax float64
	Total    float64
}

// sanitize maps negative, NaN and infinite inputs to zero
func sanitize(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

// ComputeTotals derives per-line and document totals. Serial numbers are
// 1-based positions. Sums are taken in decimal so float noise does not
// accumulate across lines.
func ComputeTotals(lines []Line) Totals {
	sub := decimal.Zero
	tax := decimal.Zero
	results := make([]LineResult, len(lines))

	for i, l := range lines {
		qty := sanitize(l.Quantity)
		price := sanitize(l.UnitPrice)
		pct := sanitize(l.TaxPercent)

		gross := qty.Mul(price)
		lineTax := gross.Mul(pct).Div(hundred)

		results[i] = LineResult{
			SerialNumber:  i + 1,
			Quantity:      qty.InexactFloat64(),
			UnitPrice:     price.InexactFloat64(),
			TaxPercent:    pct.InexactFloat64(),
			GrossAmount:   gross.InexactFloat64(),
			LineTaxAmount: lineTax.InexactFloat64(),
			LineTotal:     gross.Add(lineTax).InexactFloat64(),
		}
		sub = sub.Add(gross)
		tax = tax.Add(lineTax)
	}

	return Totals{
		Lines:    results,
		SubTotal: sub.InexactFloat64(),
		TotalTax: tax.InexactFloat64(),
		Total:    sub.Add(tax).InexactFloat64(),
	}
}

// LinesFromRequests extracts the editable values from request lines
func LinesFromRequests(reqs []domain.LineItemRequest) []Line {
	lines := make([]Line, len(reqs))
	for i, r := range reqs {
		lines[i] = Line{Quantity: r.Quantity, UnitPrice: r.UnitPrice, TaxPercent: r.TaxPercent}
	}
	return lines
}

// LinesFromItems extracts the editable values from stored lines
func LinesFromItems(items []domain.LineItem) []Line {
	lines := make([]Line, len(items))
	for i, it := range items {
		lines[i] = Line{Quantity: it.Quantity, UnitPrice: it.UnitPrice, TaxPercent: it.TaxPercent}
	}
	return lines
}

// NewLineItem builds a stored line from a request line and its computed result
func NewLineItem(req domain.LineItemRequest, r LineResult) domain.LineItem {
	return domain.LineItem{
		SerialNumber:  r.SerialNumber,
		Description:   req.Description,
		Quantity:      r.Quantity,
		UnitPrice:     r.UnitPrice,
		TaxPercent:    r.TaxPercent,
		GrossAmount:   r.GrossAmount,
		LineTaxAmount: r.LineTaxAmount,
		LineTotal:     r.LineTotal,
	}
}

// BalanceDue is what remains to be paid on an invoice, never negative
func BalanceDue(total, received float64) float64 {
	d := decimal.NewFromFloat(total).Sub(decimal.NewFromFloat(received))
	if d.IsNegative() {
		return 0
	}
	return d.InexactFloat64()
}

// Sum adds amounts in decimal
func Sum(amounts ...float64) float64 {
	total := decimal.Zero
	for _, a := range amounts {
		total = total.Add(decimal.NewFromFloat(a))
	}
	return total.InexactFloat64()
}
