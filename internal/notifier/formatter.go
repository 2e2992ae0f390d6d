package notifier

import (
	"fmt"
	"html"
	"strings"
	"time"

	"SilverSentinel/internal/collector"
	"SilverSentinel/internal/model"
	"SilverSentinel/internal/recorder"
	"SilverSentinel/internal/state"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

const notAvailable = "n/a"

// price renders v with two decimals, or n/a when v is not a finite number.
func price(v float64) string {
	return fixed(model.Some(v), 2)
}

func fixed(o model.Optional, places int32) string {
	v, ok := o.Get()
	if !ok {
		return notAvailable
	}
	return decimal.NewFromFloat(v).StringFixed(places)
}

// FormatReport renders the indicator values and signal panel for one analysis.
// Undefined judgments are shown as insufficient-data notices.
func FormatReport(a *collector.Analysis, now time.Time) string {
	var b strings.Builder

	b.WriteString(fmt.Sprintf("📊 <b>SilverSentinel</b> | %s | %s\n\n",
		html.EscapeString(a.Symbol), now.UTC().Format("2006-01-02 15:04 MST")))

	last, ok := a.Result.Last()
	if !ok {
		b.WriteString("⚠️ No price data available.\n")
		return b.String()
	}

	p := last
	b.WriteString(fmt.Sprintf("Price: %s (%s, %d bars via %s)\n",
		price(p.Close), humanize.RelTime(p.Time, now, "ago", "from now"), len(a.Bars), a.Source))
	if a.SessionHigh.Valid && a.SessionLow.Valid {
		b.WriteString(fmt.Sprintf("Session range: %s ~ %s", price(a.SessionLow.Value), price(a.SessionHigh.Value)))
		if pos, ok := a.RangePos.Get(); ok {
			b.WriteString(fmt.Sprintf(" (at %s%%)", decimal.NewFromFloat(pos*100).StringFixed(0)))
		}
		b.WriteString("\n")
	}
	b.WriteString(fmt.Sprintf("SMA5: %s | SMA20: %s\n", fixed(p.SMAShort, 2), fixed(p.SMALong, 2)))
	b.WriteString(fmt.Sprintf("RSI: %s\n", fixed(p.RSI, 2)))
	b.WriteString(fmt.Sprintf("MACD: %s | Signal: %s | Hist: %s\n",
		fixed(p.MACD, 4), fixed(p.Signal, 4), fixed(p.Histogram(), 4)))
	b.WriteString(fmt.Sprintf("Bollinger: %s ~ %s\n\n", fixed(p.Lower, 2), fixed(p.Upper, 2)))

	sig := a.Result.Signals
	b.WriteString("📈 <b>Signals:</b>\n")
	b.WriteString("  Trend: " + describeTrend(sig.Trend, p) + "\n")
	b.WriteString("  RSI: " + describeRSI(sig.RSI) + "\n")
	b.WriteString("  Buy/Sell: " + describeCross(sig.Cross) + "\n")
	b.WriteString("  MACD: " + describeMACD(sig.MACD) + "\n")
	b.WriteString("  Bollinger: " + describeBand(sig.Band) + "\n")
	return b.String()
}

func describeTrend(t model.Trend, p model.IndicatorPoint) string {
	switch t {
	case model.TrendBullish:
		return "🟢 Bullish (close above SMA5)"
	case model.TrendBearish:
		return "🔴 Bearish (close below SMA5)"
	}
	if sma, ok := p.SMAShort.Get(); ok && sma == p.Close {
		return "⚪ No trend (close = SMA5)"
	}
	return "⚠️ Not enough data for SMA trend analysis."
}

func describeRSI(z model.RSIZone) string {
	switch z {
	case model.RSIOverbought:
		return "🔴 Overbought, possible sell signal"
	case model.RSIOversold:
		return "🟢 Oversold, possible buy signal"
	case model.RSINeutral:
		return "⚪ Neutral"
	default:
		return "⚠️ Not enough data for RSI analysis."
	}
}

func describeCross(c model.Cross) string {
	switch c {
	case model.CrossBuy:
		return "🟢 Buy signal (SMA5 > SMA20)"
	case model.CrossSell:
		return "🔴 Sell signal (SMA5 < SMA20)"
	case model.CrossNeutral:
		return "⚪ No crossover (SMA5 = SMA20)"
	default:
		return "⚠️ Insufficient data for Buy/Sell signal."
	}
}

func describeMACD(m model.MACDState) string {
	switch m {
	case model.MACDBullish:
		return "🟢 MACD above signal line"
	case model.MACDBearish:
		return "🔴 MACD below signal line"
	case model.MACDNeutral:
		return "⚪ MACD on signal line"
	default:
		return "⚠️ Data not sufficient for MACD analysis."
	}
}

func describeBand(s model.BandState) string {
	switch s {
	case model.BandAboveUpper:
		return "🔴 Close above upper band"
	case model.BandBelowLower:
		return "🟢 Close below lower band"
	case model.BandInside:
		return "⚪ Close inside the bands"
	default:
		return "⚠️ Data not sufficient for Bollinger Bands analysis."
	}
}

// FormatNews renders a headline list.
func FormatNews(headlines []model.Headline, now time.Time) string {
	var b strings.Builder
	b.WriteString("📰 <b>Latest News</b>\n\n")
	if len(headlines) == 0 {
		b.WriteString("No headlines available.\n")
		return b.String()
	}
	for _, h := range headlines {
		b.WriteString(fmt.Sprintf("• <a href=\"%s\">%s</a>", html.EscapeString(h.URL), html.EscapeString(h.Title)))
		var meta []string
		if h.Source != "" {
			meta = append(meta, html.EscapeString(h.Source))
		}
		if !h.PublishedAt.IsZero() {
			meta = append(meta, humanize.RelTime(h.PublishedAt, now, "ago", "from now"))
		}
		if len(meta) > 0 {
			b.WriteString(" (" + strings.Join(meta, ", ") + ")")
		}
		b.WriteString("\n")
	}
	return b.String()
}

// FormatSignalChange renders the judgments that flipped since the last run.
func FormatSignalChange(symbol string, diffs []model.SignalDiff, close float64) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("🔔 <b>Signal change</b> | %s @ %s\n\n", html.EscapeString(symbol), price(close)))
	for _, d := range diffs {
		b.WriteString(fmt.Sprintf("  %s: %s → %s\n", d.Name, d.From, d.To))
	}
	return b.String()
}

// FormatStatus renders the tracker state for the /status command.
func FormatStatus(s state.Snapshot, now time.Time) string {
	var b strings.Builder
	b.WriteString("📦 <b>Status</b>\n\n")
	if !s.Initialized {
		b.WriteString("No analysis has run yet.\n")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Symbol: %s\n", html.EscapeString(s.Symbol)))
	b.WriteString(fmt.Sprintf("Runs: %s\n", humanize.Comma(int64(s.RunCount))))
	b.WriteString(fmt.Sprintf("Last run: %s\n", humanize.RelTime(s.LastRunAt, now, "ago", "from now")))
	b.WriteString(fmt.Sprintf("Last close: %s\n", price(s.LastClose)))
	if !s.LastChangeAt.IsZero() {
		b.WriteString(fmt.Sprintf("Last signal change: %s\n", humanize.RelTime(s.LastChangeAt, now, "ago", "from now")))
	}
	sig := s.Signals
	b.WriteString(fmt.Sprintf("Trend %s | RSI %s | Cross %s | MACD %s | Band %s\n",
		sig.Trend, sig.RSI, sig.Cross, sig.MACD, sig.Band))
	return b.String()
}

// FormatHistory renders recent runs, newest first.
func FormatHistory(runs []recorder.RunRecord, now time.Time) string {
	var b strings.Builder
	b.WriteString("🗂 <b>Recent runs</b>\n\n")
	if len(runs) == 0 {
		b.WriteString("No runs recorded.\n")
		return b.String()
	}
	for _, r := range runs {
		b.WriteString(fmt.Sprintf("• %s | %s | close %s | RSI %s | %s/%s/%s\n",
			humanize.RelTime(r.Timestamp, now, "ago", "from now"),
			strings.ToLower(string(r.Trigger)),
			fixed(r.Close, 2), fixed(r.RSI, 1),
			r.Signals.Trend, r.Signals.RSI, r.Signals.Cross))
	}
	return b.String()
}
