package recorder

import "github.com/google/uuid"

// NoopRecorder is a no-op implementation used when SQLite is not configured.
type NoopRecorder struct{}

func NewNoopRecorder() *NoopRecorder { return &NoopRecorder{} }

func (n *NoopRecorder) RecordRun(_ *RunSnapshot) (string, error) { return uuid.NewString(), nil }
func (n *NoopRecorder) RecordSignalChange(_ *SignalChange) error { return nil }
func (n *NoopRecorder) RecentRuns(_ int) ([]RunRecord, error)    { return nil, nil }
func (n *NoopRecorder) Close() error                             { return nil }
