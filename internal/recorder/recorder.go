package recorder

import (
	"time"

	"SilverSentinel/internal/model"
)

// RunSnapshot holds all data for one analysis run record.
type RunSnapshot struct {
	Symbol  string
	Source  string
	Trigger model.TriggerType
	Bars    int
	Point   model.IndicatorPoint // last row of the series; zero when Bars == 0
	Signals model.SignalEvaluation
}

// SignalChange records a single judgment flip between two runs.
type SignalChange struct {
	RunID  string
	Symbol string
	Diff   model.SignalDiff
	Close  float64
}

// RunRecord is a persisted run as read back from storage.
type RunRecord struct {
	ID        string
	Timestamp time.Time
	Symbol    string
	Trigger   model.TriggerType
	Bars      int
	Close     model.Optional
	RSI       model.Optional
	Signals   model.SignalEvaluation
}

// Recorder persists historical data for analysis.
type Recorder interface {
	RecordRun(snap *RunSnapshot) (string, error)
	RecordSignalChange(evt *SignalChange) error
	RecentRuns(limit int) ([]RunRecord, error)
	Close() error
}
