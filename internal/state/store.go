package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"SilverSentinel/internal/model"
)

// Snapshot is the persisted outcome of the most recent analysis run.
type Snapshot struct {
	Initialized  bool                   `json:"initialized"`
	Symbol       string                 `json:"symbol"`
	Signals      model.SignalEvaluation `json:"signals"`
	LastClose    float64                `json:"last_close"`
	RunCount     int                    `json:"run_count"`
	LastRunAt    time.Time              `json:"last_run_at"`
	LastChangeAt time.Time              `json:"last_change_at"`
	UpdatedAt    time.Time              `json:"updated_at"`
}

// LoadState reads the snapshot from a JSON file. Returns a zero snapshot if the file doesn't exist.
func LoadState(filePath string) (*Snapshot, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return &Snapshot{}, nil
		}
		return nil, err
	}
	var s Snapshot
	if err := json.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("decode state %s: %w", filePath, err)
	}
	return &s, nil
}

// SaveState writes the snapshot to a JSON file, creating parent directories.
func SaveState(filePath string, s *Snapshot) error {
	s.UpdatedAt = time.Now()
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return err
	}
	if dir := filepath.Dir(filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(filePath, data, 0o644)
}
