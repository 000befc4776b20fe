// Package journal keeps an optional SQLite log of translation runs and of
// every record they processed, so skipped or kept records can be reviewed
// after a batch finishes.
package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// MemoryPath opens a private in-memory journal.
const MemoryPath = ":memory:"

// Record statuses.
const (
	StatusOK      = "ok"
	StatusSkipped = "skipped"
	StatusKept    = "kept"
	StatusFailed  = "failed"
)

// Run statuses.
const (
	RunRunning   = "running"
	RunCompleted = "completed"
	RunFailed    = "failed"
)

// Journal is a SQLite-backed run log.
type Journal struct {
	db   *sql.DB
	path string
}

// Run describes one translation run.
type Run struct {
	ID         string
	Source     string
	Target     string
	Policy     string
	StartedAt  time.Time
	FinishedAt time.Time
	Status     string
	Records    int
	Written    int
	Skipped    int
	Error      string
}

// Entry is the outcome of a single record.
type Entry struct {
	Index  int
	Status string
	Input  string
	Output string
	Error  string
}

// Open opens or creates the journal database at path.
func Open(path string) (*Journal, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("journal: open %s: %w", path, err)
	}
	// A single connection keeps ":memory:" databases shared and serialises
	// writers from the worker pool.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("journal: init schema: %w", err)
	}
	return &Journal{db: db, path: path}, nil
}

// Path returns the database path.
func (j *Journal) Path() string {
	return j.path
}

// Close closes the database.
func (j *Journal) Close() error {
	return j.db.Close()
}

// StartRun inserts a running run and returns its generated id.
func (j *Journal) StartRun(ctx context.Context, source, target, policy string) (string, error) {
	id := uuid.NewString()
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO runs (run_id, source, target, policy, started_at, status) VALUES (?, ?, ?, ?, ?, ?)`,
		id, source, target, policy, formatTime(time.Now()), RunRunning)
	if err != nil {
		return "", fmt.Errorf("journal: start run: %w", err)
	}
	return id, nil
}

// Record appends an entry to a run.
func (j *Journal) Record(ctx context.Context, runID string, entry Entry) error {
	_, err := j.db.ExecContext(ctx,
		`INSERT INTO records (run_id, record_index, status, input, output, error, created_at) VALUES (?, ?, ?, ?, ?, ?, ?)`,
		runID, entry.Index, entry.Status, entry.Input, entry.Output, entry.Error, formatTime(time.Now()))
	if err != nil {
		return fmt.Errorf("journal: record %d: %w", entry.Index, err)
	}
	return nil
}

// FinishRun stores the final counts of a run. A non-nil runErr marks the run
// as failed.
func (j *Journal) FinishRun(ctx context.Context, runID string, records, written, skipped int, runErr error) error {
	status := RunCompleted
	var message string
	if runErr != nil {
		status = RunFailed
		message = runErr.Error()
	}
	_, err := j.db.ExecContext(ctx,
		`UPDATE runs SET finished_at = ?, status = ?, records = ?, written = ?, skipped = ?, error = ? WHERE run_id = ?`,
		formatTime(time.Now()), status, records, written, skipped, message, runID)
	if err != nil {
		return fmt.Errorf("journal: finish run: %w", err)
	}
	return nil
}

// GetRun loads a run by id.
func (j *Journal) GetRun(ctx context.Context, runID string) (*Run, error) {
	var (
		run                       Run
		target, policy            sql.NullString
		finished, runErr          sql.NullString
		started                   string
		records, written, skipped sql.NullInt64
	)
	err := j.db.QueryRowContext(ctx,
		`SELECT run_id, source, target, policy, started_at, finished_at, status, records, written, skipped, error FROM runs WHERE run_id = ?`,
		runID).Scan(&run.ID, &run.Source, &target, &policy, &started, &finished, &run.Status, &records, &written, &skipped, &runErr)
	if err != nil {
		return nil, fmt.Errorf("journal: get run %s: %w", runID, err)
	}

	run.Target = target.String
	run.Policy = policy.String
	run.Error = runErr.String
	run.Records = int(records.Int64)
	run.Written = int(written.Int64)
	run.Skipped = int(skipped.Int64)
	run.StartedAt = parseTime(started)
	run.FinishedAt = parseTime(finished.String)
	return &run, nil
}

// Entries returns the entries of a run ordered by record index. An empty
// status returns every entry.
func (j *Journal) Entries(ctx context.Context, runID, status string) ([]Entry, error) {
	query := `SELECT record_index, status, input, output, error FROM records WHERE run_id = ?`
	args := []any{runID}
	if status != "" {
		query += ` AND status = ?`
		args = append(args, status)
	}
	query += ` ORDER BY record_index`

	rows, err := j.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("journal: query entries: %w", err)
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var (
			entry                 Entry
			input, output, errMsg sql.NullString
		)
		if err := rows.Scan(&entry.Index, &entry.Status, &input, &output, &errMsg); err != nil {
			return nil, fmt.Errorf("journal: scan entry: %w", err)
		}
		entry.Input = input.String
		entry.Output = output.String
		entry.Error = errMsg.String
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}
	}
	return t
}
