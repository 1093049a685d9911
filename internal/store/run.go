package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/roach88/eggir/internal/passes"
)

// Run is one recorded pass application.
type Run struct {
	ID             string `json:"id" yaml:"id"`
	Pass           string `json:"pass" yaml:"pass"`
	Source         string `json:"source" yaml:"source"`
	InputDigest    string `json:"input_digest" yaml:"input_digest"`
	OutputDigest   string `json:"output_digest" yaml:"output_digest"`
	InputCommands  int    `json:"input_commands" yaml:"input_commands"`
	OutputCommands int    `json:"output_commands" yaml:"output_commands"`
	Globals        int    `json:"globals" yaml:"globals"`
	References     int    `json:"references" yaml:"references"`
	Seq            int64  `json:"seq" yaml:"seq"`
}

// NewRun fills a run from pass statistics. The caller supplies the id.
func NewRun(id, pass, source, inputDigest, outputDigest string, stats passes.Stats) Run {
	return Run{
		ID:             id,
		Pass:           pass,
		Source:         source,
		InputDigest:    inputDigest,
		OutputDigest:   outputDigest,
		InputCommands:  stats.InputCommands,
		OutputCommands: stats.OutputCommands,
		Globals:        stats.Globals,
		References:     stats.References,
	}
}

// RecordRun appends a run and returns the seq it was stored under.
// Uses ON CONFLICT(id) DO NOTHING for idempotency - a duplicate id returns
// the seq of the original row and leaves it unchanged.
func (s *Store) RecordRun(ctx context.Context, run Run) (int64, error) {
	if run.ID == "" {
		return 0, fmt.Errorf("record run: id is required")
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pass_runs
		(id, pass, source, input_digest, output_digest, input_commands, output_commands, globals, refs)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING
	`,
		run.ID,
		run.Pass,
		run.Source,
		run.InputDigest,
		run.OutputDigest,
		run.InputCommands,
		run.OutputCommands,
		run.Globals,
		run.References,
	)
	if err != nil {
		return 0, fmt.Errorf("record run: %w", err)
	}

	var seq int64
	if err := s.db.QueryRowContext(ctx, `SELECT seq FROM pass_runs WHERE id = ?`, run.ID).Scan(&seq); err != nil {
		return 0, fmt.Errorf("record run: read seq: %w", err)
	}
	return seq, nil
}

// GetRun returns the run with the given id.
// Returns found=false if no such run exists.
func (s *Store) GetRun(ctx context.Context, id string) (Run, bool, error) {
	row := s.db.QueryRowContext(ctx, selectRuns+` WHERE id = ?`, id)
	run, err := scanRun(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Run{}, false, nil
	}
	if err != nil {
		return Run{}, false, fmt.Errorf("get run: %w", err)
	}
	return run, true, nil
}

// ListRuns returns every run in seq order.
// Returns an empty slice (not nil) if the log is empty.
func (s *Store) ListRuns(ctx context.Context) ([]Run, error) {
	return s.queryRuns(ctx, selectRuns+` ORDER BY seq ASC, id COLLATE BINARY ASC`)
}

// FindByInputDigest returns the runs whose input program had the digest.
func (s *Store) FindByInputDigest(ctx context.Context, digest string) ([]Run, error) {
	return s.queryRuns(ctx, selectRuns+` WHERE input_digest = ? ORDER BY seq ASC, id COLLATE BINARY ASC`, digest)
}

const selectRuns = `
	SELECT seq, id, pass, source, input_digest, output_digest,
	       input_commands, output_commands, globals, refs
	FROM pass_runs`

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (Run, error) {
	var r Run
	err := row.Scan(
		&r.Seq, &r.ID, &r.Pass, &r.Source, &r.InputDigest, &r.OutputDigest,
		&r.InputCommands, &r.OutputCommands, &r.Globals, &r.References,
	)
	return r, err
}

func (s *Store) queryRuns(ctx context.Context, query string, args ...any) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		runs = append(runs, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	return runs, nil
}
