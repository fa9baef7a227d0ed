// Package runlog records completed simulation runs in a local SQLite
// database, so past runs can be listed, pruned, and their reports or charts
// regenerated from the stored inputs.
package runlog

import (
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/etnz/capsim"
	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// ErrNotFound reports a run id absent from the log.
var ErrNotFound = errors.New("run not found")

// Entry is one completed run. Amounts are exact decimal text, never floats,
// so a stored run replays to the same result.
type Entry struct {
	ID         string
	CreatedAt  time.Time
	Engine     string
	Currency   string
	InitialPot string
	WeeklyRate string
	TotalWeeks int
	Cap        string // empty for growth runs
	StartDate  string
	FinalPot   string
	VaultTotal string
	SpendTotal string
	CapHitWeek int
	OutputDir  string
}

// NewEntry builds the log entry for a completed run.
func NewEntry(res *capsim.Result, outputDir string) Entry {
	e := Entry{
		ID:         uuid.NewString(),
		CreatedAt:  time.Now(),
		Engine:     res.Strategy.String(),
		Currency:   res.Params.Currency(),
		InitialPot: res.Params.InitialPot.Amount().String(),
		WeeklyRate: res.Params.WeeklyRate.String(),
		TotalWeeks: res.Params.TotalWeeks,
		StartDate:  res.Params.StartDate().String(),
		FinalPot:   res.FinalPot().Amount().String(),
		VaultTotal: res.VaultTotal().Amount().String(),
		SpendTotal: res.SpendTotal().Amount().String(),
		CapHitWeek: res.CapHitWeek,
		OutputDir:  outputDir,
	}
	if res.Strategy == capsim.Harvest {
		e.Cap = res.Params.Cap.Amount().String()
	}
	return e
}

// Params rebuilds the run's inputs, so the run can be replayed or its
// reports regenerated.
func (e Entry) Params() (capsim.Strategy, capsim.Parameters, error) {
	s, err := capsim.ParseStrategy(e.Engine)
	if err != nil {
		return 0, capsim.Parameters{}, err
	}
	pot, err := capsim.ParseMoney(e.InitialPot, e.Currency)
	if err != nil {
		return 0, capsim.Parameters{}, err
	}
	rate, err := capsim.ParseRate(e.WeeklyRate)
	if err != nil {
		return 0, capsim.Parameters{}, err
	}
	start, err := capsim.ParseDate(e.StartDate)
	if err != nil {
		return 0, capsim.Parameters{}, err
	}
	p := capsim.Parameters{
		InitialPot: pot,
		WeeklyRate: rate,
		TotalWeeks: e.TotalWeeks,
		Start:      start,
	}
	if s == capsim.Harvest {
		p.Cap, err = capsim.ParseMoney(e.Cap, e.Currency)
		if err != nil {
			return 0, capsim.Parameters{}, err
		}
	}
	return s, p, nil
}

// Log persists run entries to a SQLite database.
type Log struct {
	db *sql.DB
	mu sync.Mutex
}

// Open opens (or creates) the SQLite database and runs migrations.
func Open(path string) (*Log, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so a long List does not block a Record from another process.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	l := &Log{db: db}
	if err := l.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}
	return l, nil
}

func (l *Log) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS runs (
			id           TEXT PRIMARY KEY,
			created_at   INTEGER NOT NULL,
			engine       TEXT NOT NULL,
			currency     TEXT NOT NULL,
			initial_pot  TEXT NOT NULL,
			weekly_rate  TEXT NOT NULL,
			total_weeks  INTEGER NOT NULL,
			engine_cap   TEXT,
			start_date   TEXT NOT NULL,
			final_pot    TEXT NOT NULL,
			vault_total  TEXT NOT NULL,
			spend_total  TEXT NOT NULL,
			cap_hit_week INTEGER,
			output_dir   TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_runs_created ON runs(created_at)`,
	}

	for _, s := range stmts {
		if _, err := l.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

// Record inserts a run entry.
func (l *Log) Record(e Entry) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.db.Exec(`INSERT INTO runs
		(id, created_at, engine, currency, initial_pot, weekly_rate,
		 total_weeks, engine_cap, start_date, final_pot, vault_total,
		 spend_total, cap_hit_week, output_dir)
		VALUES (?,?,?,?,?,?,?,?,?,?,?,?,?,?)`,
		e.ID, e.CreatedAt.Unix(), e.Engine, e.Currency, e.InitialPot,
		e.WeeklyRate, e.TotalWeeks, e.Cap, e.StartDate, e.FinalPot,
		e.VaultTotal, e.SpendTotal, e.CapHitWeek, e.OutputDir,
	)
	return err
}

const selectColumns = `id, created_at, engine, currency, initial_pot,
	weekly_rate, total_weeks, engine_cap, start_date, final_pot,
	vault_total, spend_total, cap_hit_week, output_dir`

func scanEntry(row interface{ Scan(...any) error }) (Entry, error) {
	var e Entry
	var createdAt int64
	err := row.Scan(&e.ID, &createdAt, &e.Engine, &e.Currency, &e.InitialPot,
		&e.WeeklyRate, &e.TotalWeeks, &e.Cap, &e.StartDate, &e.FinalPot,
		&e.VaultTotal, &e.SpendTotal, &e.CapHitWeek, &e.OutputDir)
	if err != nil {
		return Entry{}, err
	}
	e.CreatedAt = time.Unix(createdAt, 0)
	return e, nil
}

// List returns the most recent entries, newest first. A non-positive limit
// returns everything.
func (l *Log) List(limit int) ([]Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if limit <= 0 {
		limit = -1 // sqlite treats a negative LIMIT as unlimited
	}
	rows, err := l.db.Query(`SELECT `+selectColumns+`
		FROM runs ORDER BY created_at DESC, id LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns the entry with the given id, or one whose id starts with it
// when the prefix is unambiguous.
func (l *Log) Get(id string) (Entry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.db.Query(`SELECT `+selectColumns+`
		FROM runs WHERE id = ? OR id LIKE ? LIMIT 2`, id, id+"%")
	if err != nil {
		return Entry{}, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return Entry{}, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return Entry{}, err
	}
	switch len(entries) {
	case 0:
		return Entry{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	case 1:
		return entries[0], nil
	default:
		return Entry{}, fmt.Errorf("ambiguous run id %q", id)
	}
}

// Latest returns the most recent entry.
func (l *Log) Latest() (Entry, error) {
	entries, err := l.List(1)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, fmt.Errorf("%w: log is empty", ErrNotFound)
	}
	return entries[0], nil
}

// Prune deletes every entry and returns how many were removed.
func (l *Log) Prune() (int64, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	res, err := l.db.Exec(`DELETE FROM runs`)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func (l *Log) Close() error {
	return l.db.Close()
}
