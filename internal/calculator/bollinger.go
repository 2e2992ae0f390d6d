package calculator

import "SilverSentinel/internal/model"

// Bands holds the three Bollinger lines, index-aligned with the input.
type Bands struct {
	Middle []model.Optional
	Upper  []model.Optional
	Lower  []model.Optional
}

// CalculateBollinger computes bands of k sample standard deviations around
// the period SMA. Undefined under the same rule as the SMA.
func CalculateBollinger(closes []float64, period int, k float64) Bands {
	b := Bands{
		Middle: make([]model.Optional, len(closes)),
		Upper:  make([]model.Optional, len(closes)),
		Lower:  make([]model.Optional, len(closes)),
	}
	if period <= 0 {
		return b
	}
	w := newWindow(period)
	for i, c := range closes {
		w.push(c)
		if !w.full() {
			continue
		}
		mid := w.mean()
		b.Middle[i] = model.Some(mid)
		spread := w.stddev()
		b.Upper[i] = model.Some(mid + k*spread)
		b.Lower[i] = model.Some(mid - k*spread)
	}
	return b
}
