package mapper_test

import (
	"math"
	"testing"

	"github.com/imanage/imanage-api/internal/mapper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeTotals(t *testing.T) {
	lines := []mapper.Line{
		{Quantity: 2, UnitPrice: 150, TaxPercent: 10},
		{Quantity: 1, UnitPrice: 99.99, TaxPercent: 0},
		{Quantity: 3, UnitPrice: 12.5, TaxPercent: 18},
	}

	totals := mapper.ComputeTotals(lines)
	require.Len(t, totals.Lines, 3)

	assert.Equal(t, 1, totals.Lines[0].SerialNumber)
	assert.Equal(t, 2, totals.Lines[1].SerialNumber)
	assert.Equal(t, 3, totals.Lines[2].SerialNumber)

	assert.InDelta(t, 300.0, totals.Lines[0].GrossAmount, 1e-9)
	assert.InDelta(t, 30.0, totals.Lines[0].LineTaxAmount, 1e-9)
	assert.InDelta(t, 330.0, totals.Lines[0].LineTotal, 1e-9)
	assert.InDelta(t, 6.75, totals.Lines[2].LineTaxAmount, 1e-9)

	assert.InDelta(t, 437.49, totals.SubTotal, 1e-9)
	assert.InDelta(t, 36.75, totals.TotalTax, 1e-9)
	assert.InDelta(t, 474.24, totals.Total, 1e-9)
}

func TestComputeTotals_TotalMatchesGrossPlusTax(t *testing.T) {
	cases := [][]mapper.Line{
		nil,
		{{Quantity: 1, UnitPrice: 1, TaxPercent: 1}},
		{{Quantity: 7, UnitPrice: 3.33, TaxPercent: 7.5}, {Quantity: 0.5, UnitPrice: 1200, TaxPercent: 20}},
		{{Quantity: 100, UnitPrice: 0.01, TaxPercent: 33.3}, {Quantity: 12, UnitPrice: 45.67, TaxPercent: 5}, {Quantity: 1, UnitPrice: 0, TaxPercent: 100}},
	}

	for _, lines := range cases {
		var gross, tax float64
		for _, l := range lines {
			gross += l.Quantity * l.UnitPrice
			tax += l.Quantity * l.UnitPrice * l.TaxPercent / 100
		}

		totals := mapper.ComputeTotals(lines)
		assert.InDelta(t, gross+tax, totals.Total, 1e-6)
		assert.InDelta(t, totals.SubTotal+totals.TotalTax, totals.Total, 1e-9)

		again := mapper.ComputeTotals(lines)
		assert.Equal(t, totals, again)
	}
}

func TestComputeTotals_InvalidInputsCountAsZero(t *testing.T) {
	totals := mapper.ComputeTotals([]mapper.Line{
		{Quantity: -2, UnitPrice: 100, TaxPercent: 10},
		{Quantity: 1, UnitPrice: math.NaN(), TaxPercent: 10},
		{Quantity: 1, UnitPrice: 50, TaxPercent: -5},
		{Quantity: math.Inf(1), UnitPrice: 1, TaxPercent: 1},
	})

	assert.Equal(t, 0.0, totals.Lines[0].GrossAmount)
	assert.Equal(t, 0.0, totals.Lines[0].Quantity)
	assert.Equal(t, 0.0, totals.Lines[1].GrossAmount)
	assert.Equal(t, 50.0, totals.Lines[2].GrossAmount)
	assert.Equal(t, 0.0, totals.Lines[2].LineTaxAmount)
	assert.Equal(t, 0.0, totals.Lines[3].LineTotal)
	assert.Equal(t, 50.0, totals.Total)
	assert.False(t, math.IsNaN(totals.Total))
}

func TestBalanceDue(t *testing.T) {
	assert.InDelta(t, 70.1, mapper.BalanceDue(100.1, 30), 1e-9)
	assert.Equal(t, 0.0, mapper.BalanceDue(100, 150))
}
