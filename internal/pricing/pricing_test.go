package pricing

import (
	"testing"

	"github.com/theirongolddev/ccdash/internal/model"
)

func TestPrice_RateTable(t *testing.T) {
	r := DefaultRates()

	// 5*3.00/1M + 466*3.75/1M + 22661*0.30/1M + 6*15.00/1M
	// = 0.000015 + 0.0017475 + 0.0067983 + 0.00009 = 0.0086508
	u := model.TokenUsage{
		InputTokens:              5,
		CacheCreationInputTokens: 466,
		CacheReadInputTokens:     22661,
		OutputTokens:             6,
	}
	got := r.Price(u)

	if got.Input != 0.0000 {
		t.Errorf("Input = %v, want 0.0000", got.Input)
	}
	if got.CacheWrite != 0.0017 {
		t.Errorf("CacheWrite = %v, want 0.0017", got.CacheWrite)
	}
	if got.CacheRead != 0.0068 {
		t.Errorf("CacheRead = %v, want 0.0068", got.CacheRead)
	}
	if got.Output != 0.0001 {
		t.Errorf("Output = %v, want 0.0001", got.Output)
	}
	// The total rounds the raw sum 0.0086508, not the rounded
	// components (which would give 0.0086).
	if got.Total != 0.0087 {
		t.Errorf("Total = %v, want 0.0087", got.Total)
	}
}

func TestPrice_CacheTier(t *testing.T) {
	r := DefaultRates()
	u := model.TokenUsage{CacheReadInputTokens: 1_000_000}

	tests := []struct {
		name string
		tier string
		want float64
	}{
		{"default tier is 5m", "", 0.30},
		{"explicit 5m", "5m", 0.30},
		{"1h tier", "1h", 0.15},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u.CacheTier = tt.tier
			got := r.Price(u)
			if got.CacheRead != tt.want {
				t.Errorf("CacheRead = %v, want %v", got.CacheRead, tt.want)
			}
			if got.Total != tt.want {
				t.Errorf("Total = %v, want %v", got.Total, tt.want)
			}
		})
	}
}

func TestPrice_ZeroUsage(t *testing.T) {
	got := DefaultRates().Price(model.TokenUsage{})
	want := model.CostBreakdown{}
	if got != want {
		t.Errorf("Price(zero usage) = %+v, want all zeros", got)
	}
}

func TestPrice_NegativeCountsClampToZero(t *testing.T) {
	r := DefaultRates()
	got := r.Price(model.TokenUsage{
		InputTokens:              -1000,
		CacheCreationInputTokens: -466,
		CacheReadInputTokens:     -22661,
		OutputTokens:             1000,
	})

	// Only the output contributes: 1000*15.00/1M = 0.015.
	if got.Input != 0 || got.CacheWrite != 0 || got.CacheRead != 0 {
		t.Errorf("negative counts contributed: %+v", got)
	}
	if got.Total != 0.015 {
		t.Errorf("Total = %v, want 0.015", got.Total)
	}
}

func TestTotalCost(t *testing.T) {
	r := DefaultRates()

	// 1000*3/1M + 100*15/1M                      = 0.0045
	// 2000*3/1M + 5000*0.30/1M + 200*15/1M       = 0.0105
	// 8000*0.30/1M + 300*15/1M                   = 0.0069
	usages := []model.TokenUsage{
		{InputTokens: 1000, OutputTokens: 100},
		{InputTokens: 2000, CacheReadInputTokens: 5000, OutputTokens: 200},
		{CacheReadInputTokens: 8000, OutputTokens: 300},
	}

	got := r.TotalCost(usages)
	if got != 0.0219 {
		t.Errorf("TotalCost = %v, want 0.0219", got)
	}
}

func TestTotalCost_MatchesSummedTotals(t *testing.T) {
	r := DefaultRates()
	usages := []model.TokenUsage{
		{InputTokens: 5, CacheCreationInputTokens: 466, CacheReadInputTokens: 22661, OutputTokens: 6},
		{InputTokens: 123456, OutputTokens: 7890},
		{CacheReadInputTokens: 999999, CacheTier: "1h"},
	}

	var sum float64
	for _, u := range usages {
		sum += r.Price(u).Total
	}

	if got, want := r.TotalCost(usages), RoundCost(sum); got != want {
		t.Errorf("TotalCost = %v, want %v (sum of priced totals)", got, want)
	}

	if DefaultRates().TotalCost(nil) != 0 {
		t.Error("TotalCost(nil) != 0")
	}
}

func TestRoundCost(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{0.0086508, 0.0087},
		{0.00005, 0.0001}, // half rounds away from zero
		{0.00004, 0.0},
		{1.23455, 1.2346},
		{0, 0},
	}
	for _, tt := range tests {
		if got := RoundCost(tt.in); got != tt.want {
			t.Errorf("RoundCost(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestFormatCost(t *testing.T) {
	tests := []struct {
		amount   float64
		decimals int
		want     string
	}{
		{0.0086, 0, "$0.01"},
		{0.0086, 2, "$0.01"},
		{0.0086, 4, "$0.0086"},
		{1.005, 2, "$1.01"},
		{12.3, 2, "$12.30"},
		{0, 2, "$0.00"},
	}
	for _, tt := range tests {
		if got := FormatCost(tt.amount, tt.decimals); got != tt.want {
			t.Errorf("FormatCost(%v, %d) = %q, want %q", tt.amount, tt.decimals, got, tt.want)
		}
	}
}
