package collector

import (
	"context"

	"SilverSentinel/internal/model"
)

// Fetcher defines the interface for fetching price bars.
// interval and rng use Yahoo-style notation ("15m", "1d").
type Fetcher interface {
	FetchBars(ctx context.Context, symbol, interval, rng string) ([]model.PriceBar, error)
	Name() string
}

// HeadlineSource supplies news headlines for display.
type HeadlineSource interface {
	FetchHeadlines(ctx context.Context, query string, limit int) ([]model.Headline, error)
}
