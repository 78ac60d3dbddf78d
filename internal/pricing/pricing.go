// Package pricing converts token usage into USD cost.
package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/theirongolddev/ccdash/internal/model"
)

// Rates holds per-million-token prices. Cache reads are priced by
// retention tier; the write rate is tier-independent.
type Rates struct {
	InputPerMTok       float64
	CacheWritePerMTok  float64
	CacheRead5mPerMTok float64
	CacheRead1hPerMTok float64
	OutputPerMTok      float64
}

// DefaultRates returns the standard rate table.
func DefaultRates() Rates {
	return Rates{
		InputPerMTok:       3.00,
		CacheWritePerMTok:  3.75,
		CacheRead5mPerMTok: 0.30,
		CacheRead1hPerMTok: 0.15,
		OutputPerMTok:      15.00,
	}
}

var mTok = decimal.NewFromInt(1_000_000)

// Price computes the cost breakdown for one usage record. Negative
// counts price as 0; a zero-value usage yields an all-zero breakdown.
// Components and the total are each rounded to 4 decimal places, half
// away from zero; the total rounds the raw sum, not the rounded
// components.
func (r Rates) Price(u model.TokenUsage) model.CostBreakdown {
	readRate := r.CacheRead5mPerMTok
	if u.CacheTier == "1h" {
		readRate = r.CacheRead1hPerMTok
	}

	input := tokenCost(u.InputTokens, r.InputPerMTok)
	cacheWrite := tokenCost(u.CacheCreationInputTokens, r.CacheWritePerMTok)
	cacheRead := tokenCost(u.CacheReadInputTokens, readRate)
	output := tokenCost(u.OutputTokens, r.OutputPerMTok)
	total := input.Add(cacheWrite).Add(cacheRead).Add(output)

	return model.CostBreakdown{
		Input:      round4(input),
		CacheWrite: round4(cacheWrite),
		CacheRead:  round4(cacheRead),
		Output:     round4(output),
		Total:      round4(total),
	}
}

// TotalCost sums the priced totals of a usage sequence, rounded to
// 4 decimal places.
func (r Rates) TotalCost(usages []model.TokenUsage) float64 {
	sum := decimal.Zero
	for _, u := range usages {
		sum = sum.Add(decimal.NewFromFloat(r.Price(u).Total))
	}
	return round4(sum)
}

// RoundCost rounds an accumulated cost to 4 decimal places, half away
// from zero. Aggregators apply it when folding message costs.
func RoundCost(amount float64) float64 {
	return round4(decimal.NewFromFloat(amount))
}

// FormatCost renders a USD amount as a fixed-point currency string.
// decimals <= 0 means the default of 2: FormatCost(0.0086, 0) -> "$0.01",
// FormatCost(0.0086, 4) -> "$0.0086".
func FormatCost(amount float64, decimals int) string {
	if decimals <= 0 {
		decimals = 2
	}
	return "$" + decimal.NewFromFloat(amount).StringFixed(int32(decimals))
}

func tokenCost(count int64, ratePerMTok float64) decimal.Decimal {
	if count < 0 {
		count = 0
	}
	return decimal.NewFromInt(count).Mul(decimal.NewFromFloat(ratePerMTok)).Div(mTok)
}

func round4(d decimal.Decimal) float64 {
	f, _ := d.Round(4).Float64()
	return f
}
