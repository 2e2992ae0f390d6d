package calculator

import (
	"math"

	"SilverSentinel/internal/model"
)

// SessionRange returns the highest high and lowest low across bars. A bar
// without a usable high or low contributes its close instead. Both values are
// undefined when no bar has a finite price.
func SessionRange(bars []model.PriceBar) (high, low model.Optional) {
	hi, lo := math.Inf(-1), math.Inf(1)
	for _, b := range bars {
		h, l := b.High, b.Low
		if !usable(h) {
			h = b.Close
		}
		if !usable(l) {
			l = b.Close
		}
		if isFinite(h) && h > hi {
			hi = h
		}
		if isFinite(l) && l < lo {
			lo = l
		}
	}
	if math.IsInf(hi, -1) || math.IsInf(lo, 1) {
		return model.None(), model.None()
	}
	return model.Some(hi), model.Some(lo)
}

// RangePosition places current within [low, high] as a fraction clamped to
// 0..1. A flat range maps to 0.5.
func RangePosition(current float64, high, low model.Optional) model.Optional {
	h, okH := high.Get()
	l, okL := low.Get()
	if !okH || !okL || h < l || !isFinite(current) {
		return model.None()
	}
	if h == l {
		return model.Some(0.5)
	}
	return model.Some(math.Min(1, math.Max(0, (current-l)/(h-l))))
}

func usable(v float64) bool { return v != 0 && isFinite(v) }
