package strategy

import (
	"SilverSentinel/internal/calculator"
	"SilverSentinel/internal/model"
)

// Result is the output of one engine run.
type Result struct {
	Series  model.IndicatorSeries
	Signals model.SignalEvaluation
}

// Last returns the terminal indicator point, if any.
func (r Result) Last() (model.IndicatorPoint, bool) { return r.Series.Last() }

// Engine turns a price series into indicator columns and signal judgments.
// It holds no state between runs.
type Engine struct {
	params Params
}

// NewEngine creates an Engine. Params are expected to be validated by the caller.
func NewEngine(p Params) *Engine {
	return &Engine{params: p}
}

// Params returns the engine configuration.
func (e *Engine) Params() Params { return e.params }

// Run computes the indicator series for bars and evaluates the last point.
// Empty or short input never fails; missing values surface as undefined.
func (e *Engine) Run(bars []model.PriceBar) Result {
	series := e.Compute(bars)
	return Result{Series: series, Signals: e.Evaluate(series)}
}

// Compute builds the indicator series, index-aligned with bars.
func (e *Engine) Compute(bars []model.PriceBar) model.IndicatorSeries {
	if len(bars) == 0 {
		return model.IndicatorSeries{}
	}
	p := e.params
	closes := model.Closes(bars)

	smaShort := calculator.CalculateSMA(closes, p.ShortWindow)
	smaLong := calculator.CalculateSMA(closes, p.LongWindow)
	rsi := calculator.CalculateRSI(closes, p.RSIWindow)
	macd, sig := calculator.CalculateMACD(closes, p.MACDFast, p.MACDSlow, p.MACDSignal)
	bands := calculator.CalculateBollinger(closes, p.LongWindow, p.BandK)

	series := make(model.IndicatorSeries, len(bars))
	for i, b := range bars {
		series[i] = model.IndicatorPoint{
			Time:     b.Time,
			Close:    b.Close,
			SMAShort: smaShort[i],
			SMALong:  smaLong[i],
			RSI:      rsi[i],
			MACD:     macd[i],
			Signal:   sig[i],
			Middle:   bands.Middle[i],
			Upper:    bands.Upper[i],
			Lower:    bands.Lower[i],
		}
	}
	return series
}

// Evaluate applies every signal rule to the last point of series.
func (e *Engine) Evaluate(series model.IndicatorSeries) model.SignalEvaluation {
	last, ok := series.Last()
	if !ok {
		return model.UndefinedEvaluation()
	}
	return model.SignalEvaluation{
		Trend: EvaluateTrend(last),
		RSI:   EvaluateRSIZone(last, e.params.RSIOverbought, e.params.RSIOversold),
		Cross: EvaluateCross(last),
		MACD:  EvaluateMACD(last),
		Band:  EvaluateBand(last),
	}
}
