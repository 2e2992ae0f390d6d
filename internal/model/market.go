package model

import "time"

// PriceBar represents a single candlestick bar.
type PriceBar struct {
	Time   time.Time
	Open   float64
	High   float64
	Low    float64
	Close  float64
	Volume float64
}

// Closes projects the close prices of bars, preserving order.
func Closes(bars []PriceBar) []float64 {
	closes := make([]float64, len(bars))
	for i, b := range bars {
		closes[i] = b.Close
	}
	return closes
}

// Headline is a single news item shown next to the price report.
type Headline struct {
	Title       string
	URL         string
	Source      string
	PublishedAt time.Time
}
