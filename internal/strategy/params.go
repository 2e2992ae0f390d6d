package strategy

import "fmt"

// Params configures window sizes and thresholds for the indicator engine.
type Params struct {
	ShortWindow   int     `yaml:"short_window"`
	LongWindow    int     `yaml:"long_window"` // also the Bollinger window
	RSIWindow     int     `yaml:"rsi_window"`
	MACDFast      int     `yaml:"macd_fast"`
	MACDSlow      int     `yaml:"macd_slow"`
	MACDSignal    int     `yaml:"macd_signal"`
	BandK         float64 `yaml:"bb_k"`
	RSIOverbought float64 `yaml:"rsi_overbought"`
	RSIOversold   float64 `yaml:"rsi_oversold"`
}

// DefaultParams returns the classic 5/20 SMA, RSI(14), MACD(12,26,9), BB(20,2) setup.
func DefaultParams() Params {
	return Params{
		ShortWindow:   5,
		LongWindow:    20,
		RSIWindow:     14,
		MACDFast:      12,
		MACDSlow:      26,
		MACDSignal:    9,
		BandK:         2,
		RSIOverbought: 70,
		RSIOversold:   30,
	}
}

// Validate checks that the windows and thresholds are usable.
func (p Params) Validate() error {
	if p.ShortWindow <= 0 {
		return fmt.Errorf("short_window must be positive")
	}
	if p.LongWindow < 2 {
		return fmt.Errorf("long_window must be at least 2")
	}
	if p.RSIWindow <= 0 {
		return fmt.Errorf("rsi_window must be positive")
	}
	if p.MACDFast <= 0 || p.MACDSlow <= 0 || p.MACDSignal <= 0 {
		return fmt.Errorf("macd windows must be positive")
	}
	if p.MACDFast >= p.MACDSlow {
		return fmt.Errorf("macd_fast (%d) must be below macd_slow (%d)", p.MACDFast, p.MACDSlow)
	}
	if p.BandK < 0 {
		return fmt.Errorf("bb_k must not be negative")
	}
	if p.RSIOversold >= p.RSIOverbought {
		return fmt.Errorf("rsi_oversold (%.1f) must be below rsi_overbought (%.1f)", p.RSIOversold, p.RSIOverbought)
	}
	if p.RSIOversold < 0 || p.RSIOverbought > 100 {
		return fmt.Errorf("rsi thresholds must lie within [0, 100]")
	}
	return nil
}
