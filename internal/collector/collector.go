package collector

import (
	"context"
	"fmt"
	"time"

	"SilverSentinel/internal/calculator"
	"SilverSentinel/internal/metrics"
	"SilverSentinel/internal/model"
	"SilverSentinel/internal/strategy"

	"github.com/rs/zerolog"
)

// MockFetcher returns controllable fixed data for development and testing.
type MockFetcher struct {
	Price float64
	Count int
	Bars  []model.PriceBar
	Err   error
}

func (m *MockFetcher) Name() string { return "mock" }

func (m *MockFetcher) FetchBars(_ context.Context, _, _, _ string) ([]model.PriceBar, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Bars != nil {
		return m.Bars, nil
	}
	return generateMockBars(m.Price, m.Count), nil
}

func generateMockBars(basePrice float64, count int) []model.PriceBar {
	start := time.Date(2025, 1, 2, 14, 0, 0, 0, time.UTC)
	bars := make([]model.PriceBar, count)
	for i := 0; i < count; i++ {
		p := basePrice * (1 + float64(i-count/2)*0.001)
		bars[i] = model.PriceBar{
			Time:   start.Add(time.Duration(i) * 15 * time.Minute),
			Open:   p * 0.999,
			High:   p * 1.005,
			Low:    p * 0.995,
			Close:  p,
			Volume: 1000,
		}
	}
	return bars
}

// Analysis is the result of one collect-and-compute pass.
type Analysis struct {
	Symbol      string
	Source      string
	Bars        []model.PriceBar
	Result      strategy.Result
	SessionHigh model.Optional
	SessionLow  model.Optional
	RangePos    model.Optional // last close within [SessionLow, SessionHigh]
	FetchedAt   time.Time
}

// Empty reports whether the data source returned no bars.
func (a *Analysis) Empty() bool { return len(a.Bars) == 0 }

// Collector orchestrates data fetching and indicator computation.
type Collector struct {
	Fetcher  Fetcher
	News     HeadlineSource
	Engine   *strategy.Engine
	Symbol   string
	Interval string
	Range    string
	Query    string
	Limit    int

	log zerolog.Logger
}

// NewCollector creates a new Collector. news may be nil.
func NewCollector(fetcher Fetcher, news HeadlineSource, engine *strategy.Engine, symbol, interval, rng string, log zerolog.Logger) *Collector {
	return &Collector{
		Fetcher:  fetcher,
		News:     news,
		Engine:   engine,
		Symbol:   symbol,
		Interval: interval,
		Range:    rng,
		Query:    "silver price",
		Limit:    5,
		log:      log.With().Str("component", "collector").Logger(),
	}
}

// Collect fetches bars and runs the indicator engine. An empty series is not an error.
func (c *Collector) Collect(ctx context.Context) (*Analysis, error) {
	bars, err := c.Fetcher.FetchBars(ctx, c.Symbol, c.Interval, c.Range)
	if err != nil {
		metrics.FetchErrors.WithLabelValues(c.Fetcher.Name()).Inc()
		return nil, fmt.Errorf("fetch bars: %w", err)
	}

	start := time.Now()
	res := c.Engine.Run(bars)
	metrics.ComputeSeconds.Observe(time.Since(start).Seconds())

	a := &Analysis{
		Symbol:    c.Symbol,
		Source:    c.Fetcher.Name(),
		Bars:      bars,
		Result:    res,
		FetchedAt: time.Now(),
	}

	a.SessionHigh, a.SessionLow = calculator.SessionRange(bars)
	if len(bars) == 0 {
		c.log.Warn().Str("symbol", c.Symbol).Msg("no price data returned")
	}

	if last, ok := res.Last(); ok {
		a.RangePos = calculator.RangePosition(last.Close, a.SessionHigh, a.SessionLow)
		if rsi, ok := last.RSI.Get(); ok {
			metrics.LastRSI.WithLabelValues(c.Symbol).Set(rsi)
		}
	}

	c.log.Debug().
		Str("symbol", c.Symbol).
		Int("bars", len(bars)).
		Str("trend", string(res.Signals.Trend)).
		Str("rsi_zone", string(res.Signals.RSI)).
		Str("sma_cross", string(res.Signals.Cross)).
		Msg("analysis computed")
	return a, nil
}

// Headlines fetches news for display. Returns nil when no news source is configured.
func (c *Collector) Headlines(ctx context.Context) ([]model.Headline, error) {
	if c.News == nil {
		return nil, nil
	}
	hs, err := c.News.FetchHeadlines(ctx, c.Query, c.Limit)
	if err != nil {
		metrics.FetchErrors.WithLabelValues("news").Inc()
		return nil, fmt.Errorf("fetch headlines: %w", err)
	}
	return hs, nil
}
