package recorder

import (
	"database/sql"
	"fmt"
	"sync"
	"time"

	"SilverSentinel/internal/model"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db  *sql.DB
	mu  sync.Mutex
	log zerolog.Logger
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string, log zerolog.Logger) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL lets dashboards read while the bot writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db, log: log.With().Str("component", "recorder").Logger()}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	r.log.Info().Str("path", dbPath).Msg("sqlite recorder opened")
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS analysis_runs (
			id           TEXT PRIMARY KEY,
			timestamp    INTEGER NOT NULL,
			symbol       TEXT NOT NULL,
			source       TEXT,
			trigger_type TEXT,
			bars         INTEGER,
			bar_time     INTEGER,
			close        REAL,
			sma_short    REAL,
			sma_long     REAL,
			rsi          REAL,
			macd         REAL,
			macd_signal  REAL,
			bb_middle    REAL,
			bb_upper     REAL,
			bb_lower     REAL,
			trend        TEXT,
			rsi_zone     TEXT,
			sma_cross    TEXT,
			macd_state   TEXT,
			band_state   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON analysis_runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS signal_changes (
			id          INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp   INTEGER NOT NULL,
			run_id      TEXT,
			symbol      TEXT NOT NULL,
			signal      TEXT NOT NULL,
			from_value  TEXT,
			to_value    TEXT,
			close       REAL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_changes_ts ON signal_changes(timestamp)`,
	}
	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return err
		}
	}
	return nil
}

// RecordRun stores one analysis run and returns its generated ID.
// Undefined indicator values are stored as NULL.
func (r *SQLiteRecorder) RecordRun(snap *RunSnapshot) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	id := uuid.NewString()
	p := snap.Point
	var barTime, closeVal any
	if snap.Bars > 0 {
		barTime = p.Time.Unix()
		closeVal = p.Close
	}
	sig := snap.Signals

	_, err := r.db.Exec(`INSERT INTO analysis_runs
		(id, timestamp, symbol, source, trigger_type, bars, bar_time, close,
		 sma_short, sma_long, rsi, macd, macd_signal, bb_middle, bb_upper, bb_lower,
		 trend, rsi_zone, sma_cross, macd_state, band_state)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		id, time.Now().Unix(), snap.Symbol, snap.Source, string(snap.Trigger), snap.Bars, barTime, closeVal,
		null(p.SMAShort), null(p.SMALong), null(p.RSI), null(p.MACD), null(p.Signal),
		null(p.Middle), null(p.Upper), null(p.Lower),
		string(sig.Trend), string(sig.RSI), string(sig.Cross), string(sig.MACD), string(sig.Band),
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *SQLiteRecorder) RecordSignalChange(evt *SignalChange) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	_, err := r.db.Exec(`INSERT INTO signal_changes
		(timestamp, run_id, symbol, signal, from_value, to_value, close)
		VALUES (?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.RunID, evt.Symbol,
		evt.Diff.Name, evt.Diff.From, evt.Diff.To, evt.Close,
	)
	return err
}

// RecentRuns returns up to limit runs, newest first.
func (r *SQLiteRecorder) RecentRuns(limit int) ([]RunRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows, err := r.db.Query(`SELECT id, timestamp, symbol, trigger_type, bars, close, rsi,
		trend, rsi_zone, sma_cross, macd_state, band_state
		FROM analysis_runs ORDER BY timestamp DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []RunRecord
	for rows.Next() {
		var (
			rec        RunRecord
			ts         int64
			trigger    string
			closeV     sql.NullFloat64
			rsi        sql.NullFloat64
			trend      string
			zone       string
			cross      string
			macd, band string
		)
		if err := rows.Scan(&rec.ID, &ts, &rec.Symbol, &trigger, &rec.Bars, &closeV, &rsi,
			&trend, &zone, &cross, &macd, &band); err != nil {
			return nil, err
		}
		rec.Timestamp = time.Unix(ts, 0)
		rec.Trigger = model.TriggerType(trigger)
		rec.Close = nullable(closeV)
		rec.RSI = nullable(rsi)
		rec.Signals = model.SignalEvaluation{
			Trend: model.Trend(trend),
			RSI:   model.RSIZone(zone),
			Cross: model.Cross(cross),
			MACD:  model.MACDState(macd),
			Band:  model.BandState(band),
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func null(o model.Optional) sql.NullFloat64 {
	return sql.NullFloat64{Float64: o.Value, Valid: o.Valid}
}

func nullable(v sql.NullFloat64) model.Optional {
	if !v.Valid {
		return model.None()
	}
	return model.Some(v.Float64)
}

func (r *SQLiteRecorder) Close() error {
	r.log.Info().Msg("closing sqlite recorder")
	return r.db.Close()
}
