package model

// TriggerType indicates what triggered a report.
type TriggerType string

const (
	TriggerScheduled TriggerType = "SCHEDULED"
	TriggerManual    TriggerType = "MANUAL"
	TriggerStartup   TriggerType = "STARTUP"
)

// Trend compares the close against the short SMA.
type Trend string

const (
	TrendUndefined Trend = "UNDEFINED"
	TrendBullish   Trend = "BULLISH"
	TrendBearish   Trend = "BEARISH"
)

// RSIZone classifies the RSI value.
type RSIZone string

const (
	RSIUndefined  RSIZone = "UNDEFINED"
	RSIOverbought RSIZone = "OVERBOUGHT"
	RSIOversold   RSIZone = "OVERSOLD"
	RSINeutral    RSIZone = "NEUTRAL"
)

// Cross compares the short SMA against the long SMA.
type Cross string

const (
	CrossUndefined Cross = "UNDEFINED"
	CrossBuy       Cross = "BUY"
	CrossSell      Cross = "SELL"
	CrossNeutral   Cross = "NEUTRAL"
)

// MACDState compares the MACD line against its signal line.
type MACDState string

const (
	MACDUndefined MACDState = "UNDEFINED"
	MACDBullish   MACDState = "BULLISH"
	MACDBearish   MACDState = "BEARISH"
	MACDNeutral   MACDState = "NEUTRAL"
)

// BandState locates the close relative to the Bollinger bands.
type BandState string

const (
	BandUndefined  BandState = "UNDEFINED"
	BandAboveUpper BandState = "ABOVE_UPPER"
	BandBelowLower BandState = "BELOW_LOWER"
	BandInside     BandState = "INSIDE"
)

// SignalEvaluation is the set of judgments taken from the last indicator point.
type SignalEvaluation struct {
	Trend Trend     `json:"trend"`
	RSI   RSIZone   `json:"rsi_zone"`
	Cross Cross     `json:"sma_cross"`
	MACD  MACDState `json:"macd"`
	Band  BandState `json:"band"`
}

// UndefinedEvaluation is what an empty series evaluates to.
func UndefinedEvaluation() SignalEvaluation {
	return SignalEvaluation{
		Trend: TrendUndefined,
		RSI:   RSIUndefined,
		Cross: CrossUndefined,
		MACD:  MACDUndefined,
		Band:  BandUndefined,
	}
}

// SignalDiff describes one judgment that changed between two evaluations.
type SignalDiff struct {
	Name string
	From string
	To   string
}

// Diff lists the judgments that differ between prev and e, in a fixed order.
func (e SignalEvaluation) Diff(prev SignalEvaluation) []SignalDiff {
	pairs := []struct {
		name     string
		from, to string
	}{
		{"trend", string(prev.Trend), string(e.Trend)},
		{"rsi_zone", string(prev.RSI), string(e.RSI)},
		{"sma_cross", string(prev.Cross), string(e.Cross)},
		{"macd", string(prev.MACD), string(e.MACD)},
		{"band", string(prev.Band), string(e.Band)},
	}
	var diffs []SignalDiff
	for _, p := range pairs {
		if p.from != p.to {
			diffs = append(diffs, SignalDiff{Name: p.name, From: p.from, To: p.to})
		}
	}
	return diffs
}
