package metrics

import (
	"errors"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

var (
	RunsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sentinel_runs_total", Help: "Analysis runs by result"},
		[]string{"result"},
	)
	FetchErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sentinel_fetch_errors_total", Help: "Failed upstream fetches"},
		[]string{"source"},
	)
	ComputeSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "sentinel_compute_seconds",
		Help:    "Indicator engine run duration",
		Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
	})
	LastRSI = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{Name: "sentinel_last_rsi", Help: "RSI of the most recent bar"},
		[]string{"symbol"},
	)
	SignalChanges = prometheus.NewCounterVec(
		prometheus.CounterOpts{Name: "sentinel_signal_changes_total", Help: "Judgment flips between runs"},
		[]string{"signal"},
	)
)

func init() {
	prometheus.MustRegister(RunsTotal, FetchErrors, ComputeSeconds, LastRSI, SignalChanges)
}

// Serve exposes /metrics on addr in the background. Listen failures, such as
// a port already in use, are logged; the bot keeps running without metrics.
func Serve(addr string, log zerolog.Logger) *http.Server {
	log = log.With().Str("component", "metrics").Logger()
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Str("addr", addr).Msg("metrics server failed")
		}
	}()
	return srv
}
