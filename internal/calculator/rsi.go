package calculator

import (
	"math"

	"SilverSentinel/internal/model"
)

// CalculateRSI computes the RSI with simple (not Wilder) averaging of gains
// and losses over period deltas. Element i is defined from i >= period.
//
// When the average loss is zero the ratio is undefined: the RSI is 100 if
// there were gains and 50 if the window was completely flat.
func CalculateRSI(closes []float64, period int) []model.Optional {
	out := make([]model.Optional, len(closes))
	if period <= 0 {
		return out
	}
	gains, losses := newWindow(period), newWindow(period)
	for i := 1; i < len(closes); i++ {
		delta := closes[i] - closes[i-1]
		gains.push(math.Max(delta, 0))
		losses.push(math.Max(-delta, 0))
		if !gains.full() {
			continue
		}
		out[i] = rsiFromAverages(gains.mean(), losses.mean())
	}
	return out
}

func rsiFromAverages(avgGain, avgLoss float64) model.Optional {
	if !isFinite(avgGain) || !isFinite(avgLoss) {
		return model.None()
	}
	// rounding in the running sums can dip just below zero
	avgGain, avgLoss = math.Max(avgGain, 0), math.Max(avgLoss, 0)
	switch {
	case avgLoss == 0 && avgGain == 0:
		return model.Some(50)
	case avgLoss == 0:
		return model.Some(100)
	}
	rs := avgGain / avgLoss
	return model.Some(100 - 100/(1+rs))
}
