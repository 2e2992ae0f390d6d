package strategy

import "SilverSentinel/internal/model"

// EvaluateTrend compares the close against the short SMA.
// Equal values give no trend.
func EvaluateTrend(p model.IndicatorPoint) model.Trend {
	sma, ok := p.SMAShort.Get()
	if !ok {
		return model.TrendUndefined
	}
	switch {
	case p.Close > sma:
		return model.TrendBullish
	case p.Close < sma:
		return model.TrendBearish
	default:
		return model.TrendUndefined
	}
}

// EvaluateRSIZone classifies the RSI. The thresholds themselves are neutral.
func EvaluateRSIZone(p model.IndicatorPoint, overbought, oversold float64) model.RSIZone {
	rsi, ok := p.RSI.Get()
	if !ok {
		return model.RSIUndefined
	}
	switch {
	case rsi > overbought:
		return model.RSIOverbought
	case rsi < oversold:
		return model.RSIOversold
	default:
		return model.RSINeutral
	}
}

// EvaluateCross compares the short SMA against the long SMA.
func EvaluateCross(p model.IndicatorPoint) model.Cross {
	short, ok1 := p.SMAShort.Get()
	long, ok2 := p.SMALong.Get()
	if !ok1 || !ok2 {
		return model.CrossUndefined
	}
	switch {
	case short > long:
		return model.CrossBuy
	case short < long:
		return model.CrossSell
	default:
		return model.CrossNeutral
	}
}

// EvaluateMACD compares the MACD line against its signal line.
func EvaluateMACD(p model.IndicatorPoint) model.MACDState {
	macd, ok1 := p.MACD.Get()
	sig, ok2 := p.Signal.Get()
	if !ok1 || !ok2 {
		return model.MACDUndefined
	}
	switch {
	case macd > sig:
		return model.MACDBullish
	case macd < sig:
		return model.MACDBearish
	default:
		return model.MACDNeutral
	}
}

// EvaluateBand locates the close relative to the Bollinger bands.
// Touching a band counts as inside.
func EvaluateBand(p model.IndicatorPoint) model.BandState {
	upper, ok1 := p.Upper.Get()
	lower, ok2 := p.Lower.Get()
	if !ok1 || !ok2 {
		return model.BandUndefined
	}
	switch {
	case p.Close > upper:
		return model.BandAboveUpper
	case p.Close < lower:
		return model.BandBelowLower
	default:
		return model.BandInside
	}
}
