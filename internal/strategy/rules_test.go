package strategy

import (
	"math"
	"testing"

	"SilverSentinel/internal/model"
)

func TestEvaluateRSIZone_Boundaries(t *testing.T) {
	tests := []struct {
		rsi  model.Optional
		want model.RSIZone
	}{
		{model.Some(85), model.RSIOverbought},
		{model.Some(70.01), model.RSIOverbought},
		{model.Some(70), model.RSINeutral},
		{model.Some(50), model.RSINeutral},
		{model.Some(30), model.RSINeutral},
		{model.Some(29.99), model.RSIOversold},
		{model.Some(0), model.RSIOversold},
		{model.None(), model.RSIUndefined},
		{model.Some(math.NaN()), model.RSIUndefined},
	}
	for _, tt := range tests {
		got := EvaluateRSIZone(model.IndicatorPoint{RSI: tt.rsi}, 70, 30)
		if got != tt.want {
			t.Errorf("RSI %+v: got %s, want %s", tt.rsi, got, tt.want)
		}
	}
}

func TestEvaluateTrend(t *testing.T) {
	tests := []struct {
		close float64
		sma   model.Optional
		want  model.Trend
	}{
		{20, model.Some(18), model.TrendBullish},
		{17, model.Some(18), model.TrendBearish},
		{18, model.Some(18), model.TrendUndefined},
		{18, model.None(), model.TrendUndefined},
		{math.NaN(), model.Some(18), model.TrendUndefined},
	}
	for _, tt := range tests {
		got := EvaluateTrend(model.IndicatorPoint{Close: tt.close, SMAShort: tt.sma})
		if got != tt.want {
			t.Errorf("close %v sma %+v: got %s, want %s", tt.close, tt.sma, got, tt.want)
		}
	}
}

func TestEvaluateCross(t *testing.T) {
	tests := []struct {
		short, long model.Optional
		want        model.Cross
	}{
		{model.Some(21), model.Some(20), model.CrossBuy},
		{model.Some(19), model.Some(20), model.CrossSell},
		{model.Some(20), model.Some(20), model.CrossNeutral},
		{model.Some(20), model.None(), model.CrossUndefined},
		{model.None(), model.Some(20), model.CrossUndefined},
	}
	for _, tt := range tests {
		got := EvaluateCross(model.IndicatorPoint{SMAShort: tt.short, SMALong: tt.long})
		if got != tt.want {
			t.Errorf("short %+v long %+v: got %s, want %s", tt.short, tt.long, got, tt.want)
		}
	}
}

func TestEvaluateMACD(t *testing.T) {
	tests := []struct {
		macd, sig model.Optional
		want      model.MACDState
	}{
		{model.Some(0.4), model.Some(0.1), model.MACDBullish},
		{model.Some(-0.4), model.Some(0.1), model.MACDBearish},
		{model.Some(0.1), model.Some(0.1), model.MACDNeutral},
		{model.None(), model.Some(0.1), model.MACDUndefined},
	}
	for _, tt := range tests {
		got := EvaluateMACD(model.IndicatorPoint{MACD: tt.macd, Signal: tt.sig})
		if got != tt.want {
			t.Errorf("macd %+v signal %+v: got %s, want %s", tt.macd, tt.sig, got, tt.want)
		}
	}
}

func TestEvaluateBand(t *testing.T) {
	upper, lower := model.Some(31), model.Some(29)
	tests := []struct {
		close float64
		want  model.BandState
	}{
		{32, model.BandAboveUpper},
		{31, model.BandInside},
		{30, model.BandInside},
		{29, model.BandInside},
		{28, model.BandBelowLower},
	}
	for _, tt := range tests {
		got := EvaluateBand(model.IndicatorPoint{Close: tt.close, Upper: upper, Lower: lower})
		if got != tt.want {
			t.Errorf("close %v: got %s, want %s", tt.close, got, tt.want)
		}
	}
	if got := EvaluateBand(model.IndicatorPoint{Close: 30}); got != model.BandUndefined {
		t.Errorf("missing bands: got %s, want UNDEFINED", got)
	}
}
