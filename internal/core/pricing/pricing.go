// Package pricing adjusts shop prices for alternate pricing modes
package pricing

import "paporium/internal/core/filter"

// Overcharge and discount rates of the ocdc mode, in percent
const (
	discountPct   = 76
	overchargePct = 124
)

// Prices is a buy/sell pair
type Prices struct {
	Buy  int64 `json:"buy"`
	Sell int64 `json:"sell"`
}

// Apply returns the prices under mode. Default mode returns them unchanged.
// ocdc buys at 76% (never below 1) and sells at 124%, both rounded down.
func Apply(mode filter.PricingMode, p Prices) Prices {
	if mode != filter.PricingOCDC {
		return p
	}
	return Prices{
		Buy:  max(1, floorPct(p.Buy, discountPct)),
		Sell: floorPct(p.Sell, overchargePct),
	}
}

// floorPct computes floor(v*pct/100) in integers
func floorPct(v, pct int64) int64 {
	n := v * pct
	q := n / 100
	if n%100 != 0 && n < 0 {
		q--
	}
	return q
}
