package calculator

import "SilverSentinel/internal/model"

// CalculateMACD returns the MACD line, EMA(fast) - EMA(slow), and its signal
// line, an EMA(signal) seeded on the first MACD value. Both are defined at
// every index.
func CalculateMACD(closes []float64, fast, slow, signal int) (macd, sig []model.Optional) {
	macd = make([]model.Optional, len(closes))
	sig = make([]model.Optional, len(closes))
	if fast <= 0 || slow <= 0 || signal <= 0 {
		return macd, sig
	}

	fastEMA := ema(closes, fast)
	slowEMA := ema(closes, slow)
	line := make([]float64, len(closes))
	for i := range closes {
		line[i] = fastEMA[i] - slowEMA[i]
	}
	signalLine := ema(line, signal)

	for i := range closes {
		macd[i] = model.Some(line[i])
		sig[i] = model.Some(signalLine[i])
	}
	return macd, sig
}
