package calculator

import "SilverSentinel/internal/model"

// CalculateSMA computes the simple moving average of closes over period.
// Element i is undefined until period closes are available.
func CalculateSMA(closes []float64, period int) []model.Optional {
	out := make([]model.Optional, len(closes))
	if period <= 0 {
		return out
	}
	w := newWindow(period)
	for i, c := range closes {
		w.push(c)
		if w.full() {
			out[i] = model.Some(w.mean())
		}
	}
	return out
}

// CalculateEMA computes the exponential moving average with alpha = 2/(span+1),
// seeded by the first value. Every element is defined.
func CalculateEMA(values []float64, span int) []model.Optional {
	out := make([]model.Optional, len(values))
	if span <= 0 {
		return out
	}
	for i, v := range ema(values, span) {
		out[i] = model.Some(v)
	}
	return out
}

func ema(values []float64, span int) []float64 {
	out := make([]float64, len(values))
	if len(values) == 0 {
		return out
	}
	alpha := 2.0 / float64(span+1)
	out[0] = values[0]
	for i := 1; i < len(values); i++ {
		out[i] = alpha*values[i] + (1-alpha)*out[i-1]
	}
	return out
}
