package model

import (
	"math"
	"time"
)

// Optional is a float that may be absent, e.g. an SMA before its window fills.
// A NaN or infinity is never reported as valid.
type Optional struct {
	Value float64
	Valid bool
}

// Some wraps v. NaN and ±Inf collapse to None.
func Some(v float64) Optional {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Optional{}
	}
	return Optional{Value: v, Valid: true}
}

// None returns an undefined value.
func None() Optional { return Optional{} }

// Get returns the value and whether it is defined.
func (o Optional) Get() (float64, bool) { return o.Value, o.Valid }

// IndicatorPoint is one row of the indicator series, aligned with a PriceBar.
type IndicatorPoint struct {
	Time     time.Time
	Close    float64
	SMAShort Optional // SMA_5
	SMALong  Optional // SMA_20
	RSI      Optional
	MACD     Optional
	Signal   Optional // EMA of MACD
	Middle   Optional // band centre, same as SMALong
	Upper    Optional
	Lower    Optional
}

// Histogram is MACD minus its signal line.
func (p IndicatorPoint) Histogram() Optional {
	if !p.MACD.Valid || !p.Signal.Valid {
		return None()
	}
	return Some(p.MACD.Value - p.Signal.Value)
}

// IndicatorSeries is index-aligned with the input bars.
type IndicatorSeries []IndicatorPoint

// Last returns the terminal point, or false for an empty series.
func (s IndicatorSeries) Last() (IndicatorPoint, bool) {
	if len(s) == 0 {
		return IndicatorPoint{}, false
	}
	return s[len(s)-1], true
}
