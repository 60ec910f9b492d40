package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists historical data to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	if dir := filepath.Dir(dbPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id          TEXT PRIMARY KEY,
			timestamp   INTEGER NOT NULL,
			kind        TEXT NOT NULL,
			candidates  INTEGER,
			selected    INTEGER,
			sent        INTEGER,
			skipped     INTEGER,
			note        TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_ts ON runs(timestamp)`,

		`CREATE TABLE IF NOT EXISTS ideas (
			id          TEXT PRIMARY KEY,
			run_id      TEXT,
			timestamp   INTEGER NOT NULL,
			symbol      TEXT NOT NULL,
			timeframe   TEXT,
			direction   TEXT,
			strategy    TEXT,
			entry       REAL,
			stop        REAL,
			tp1         REAL,
			tp2         REAL,
			tp3         REAL,
			score       REAL,
			reason      TEXT,
			delivery    TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_ideas_symbol_ts ON ideas(symbol, timestamp)`,

		`CREATE TABLE IF NOT EXISTS hot_stocks (
			id           TEXT PRIMARY KEY,
			run_id       TEXT,
			timestamp    INTEGER NOT NULL,
			ticker       TEXT NOT NULL,
			sector       TEXT,
			entry        REAL,
			stop         REAL,
			tp1          REAL,
			tp2          REAL,
			tp3          REAL,
			change_pct   REAL,
			volume       REAL,
			volume_ratio REAL,
			strict       INTEGER,
			delivery     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_hot_stocks_ts ON hot_stocks(timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordRun(run *RunRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if run.ID == "" {
		run.ID = NewID()
	}
	_, err := r.db.Exec(`INSERT INTO runs
		(id, timestamp, kind, candidates, selected, sent, skipped, note)
		VALUES (?,?,?,?,?,?,?,?)`,
		run.ID, time.Now().Unix(), run.Kind,
		run.Candidates, run.Selected, run.Sent, run.Skipped, run.Note,
	)
	return err
}

func (r *SQLiteRecorder) RecordIdea(rec *IdeaRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	i := rec.Idea
	_, err := r.db.Exec(`INSERT INTO ideas
		(id, run_id, timestamp, symbol, timeframe, direction, strategy,
		 entry, stop, tp1, tp2, tp3, score, reason, delivery)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		NewID(), rec.RunID, time.Now().Unix(), i.Symbol, string(i.Timeframe), string(i.Direction), string(i.Strategy),
		i.Entry, i.Stop, i.Targets[0], i.Targets[1], i.Targets[2], i.Score, i.Reason, string(rec.Delivery),
	)
	return err
}

func (r *SQLiteRecorder) RecordHotStock(rec *HotStockRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	s := rec.Stock
	_, err := r.db.Exec(`INSERT INTO hot_stocks
		(id, run_id, timestamp, ticker, sector, entry, stop, tp1, tp2, tp3,
		 change_pct, volume, volume_ratio, strict, delivery)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		NewID(), rec.RunID, time.Now().Unix(), s.Ticker, s.Sector, s.Entry, s.Stop,
		s.Targets[0], s.Targets[1], s.Targets[2],
		s.ChangePct, s.Volume, s.VolumeRatio, s.Strict, string(rec.Delivery),
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	log.Println("[INFO] closing sqlite recorder")
	return r.db.Close()
}
