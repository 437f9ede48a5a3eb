package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// RunRecord is one batch translation outcome.
type RunRecord struct {
	RunToken     string
	InputPath    string
	OutputPath   string
	OK           bool
	Error        string
	WarningCount int
	StartedAt    time.Time
	FinishedAt   time.Time
}

// Summary aggregates a batch's outcomes.
type Summary struct {
	Total    int
	OK       int
	Failed   int
	Warnings int
}

// WriteRun inserts one run record. Re-reporting the same run token is
// idempotent: the first record wins and duplicates are silently ignored.
func (s *Store) WriteRun(ctx context.Context, rec RunRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs
		(run_token, input_path, output_path, ok, error, warning_count, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(run_token) WHERE run_token <> '' DO NOTHING
	`,
		rec.RunToken,
		rec.InputPath,
		rec.OutputPath,
		rec.OK,
		rec.Error,
		rec.WarningCount,
		rec.StartedAt.UTC().Format(time.RFC3339Nano),
		rec.FinishedAt.UTC().Format(time.RFC3339Nano),
	)
	if err != nil {
		return fmt.Errorf("write run: %w", err)
	}
	return nil
}

// Runs returns every recorded run in insertion order.
func (s *Store) Runs(ctx context.Context) ([]RunRecord, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token, input_path, output_path, ok, error, warning_count, started_at, finished_at
		FROM runs ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("read runs: %w", err)
	}
	defer rows.Close()

	var recs []RunRecord
	for rows.Next() {
		rec, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("read runs: %w", err)
	}
	return recs, nil
}

// RunByToken looks up one run. The second return reports whether a run
// with that token exists.
func (s *Store) RunByToken(ctx context.Context, token string) (RunRecord, bool, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT run_token, input_path, output_path, ok, error, warning_count, started_at, finished_at
		FROM runs WHERE run_token = ? LIMIT 1
	`, token)
	if err != nil {
		return RunRecord{}, false, fmt.Errorf("read run: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return RunRecord{}, false, rows.Err()
	}
	rec, err := scanRun(rows)
	if err != nil {
		return RunRecord{}, false, err
	}
	return rec, true, nil
}

// Summarize aggregates every recorded run.
func (s *Store) Summarize(ctx context.Context) (Summary, error) {
	var sum Summary
	err := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(ok), 0),
		       COALESCE(SUM(1 - ok), 0),
		       COALESCE(SUM(warning_count), 0)
		FROM runs
	`).Scan(&sum.Total, &sum.OK, &sum.Failed, &sum.Warnings)
	if err != nil {
		return Summary{}, fmt.Errorf("summarize runs: %w", err)
	}
	return sum, nil
}

func scanRun(rows *sql.Rows) (RunRecord, error) {
	var (
		rec               RunRecord
		started, finished string
	)
	if err := rows.Scan(
		&rec.RunToken, &rec.InputPath, &rec.OutputPath,
		&rec.OK, &rec.Error, &rec.WarningCount,
		&started, &finished,
	); err != nil {
		return RunRecord{}, fmt.Errorf("scan run: %w", err)
	}

	var err error
	if rec.StartedAt, err = time.Parse(time.RFC3339Nano, started); err != nil {
		return RunRecord{}, fmt.Errorf("scan run: started_at: %w", err)
	}
	if rec.FinishedAt, err = time.Parse(time.RFC3339Nano, finished); err != nil {
		return RunRecord{}, fmt.Errorf("scan run: finished_at: %w", err)
	}
	return rec, nil
}
