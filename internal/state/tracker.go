package state

import (
	"sync"
	"time"

	"SilverSentinel/internal/model"

	"github.com/rs/zerolog"
)

// Tracker remembers the last delivered signal evaluation so that only
// flips are alerted. Safe for concurrent use.
type Tracker struct {
	mu       sync.Mutex
	state    *Snapshot
	filePath string
	log      zerolog.Logger
}

// NewTracker creates a Tracker, loading state from disk if present.
func NewTracker(filePath string, log zerolog.Logger) (*Tracker, error) {
	s, err := LoadState(filePath)
	if err != nil {
		return nil, err
	}
	return &Tracker{
		state:    s,
		filePath: filePath,
		log:      log.With().Str("component", "state").Logger(),
	}, nil
}

// GetState returns a copy of the current snapshot.
func (t *Tracker) GetState() Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return *t.state
}

// Observe records eval as the latest evaluation and returns the judgments
// that changed. initial is true when there was nothing to compare against,
// including after a symbol switch.
func (t *Tracker) Observe(symbol string, eval model.SignalEvaluation, lastClose float64, at time.Time) (diffs []model.SignalDiff, initial bool) {
	t.mu.Lock()
	defer t.mu.Unlock()

	initial = !t.state.Initialized || t.state.Symbol != symbol
	if !initial {
		diffs = eval.Diff(t.state.Signals)
	}
	if initial {
		t.state.RunCount = 0
		t.state.LastChangeAt = time.Time{}
	}

	t.state.Initialized = true
	t.state.Symbol = symbol
	t.state.Signals = eval
	if model.Some(lastClose).Valid {
		t.state.LastClose = lastClose
	}
	t.state.RunCount++
	t.state.LastRunAt = at
	if len(diffs) > 0 {
		t.state.LastChangeAt = at
	}

	if err := t.save(); err != nil {
		t.log.Error().Err(err).Str("file", t.filePath).Msg("failed to save signal state")
	}
	return diffs, initial
}

func (t *Tracker) save() error {
	return SaveState(t.filePath, t.state)
}
