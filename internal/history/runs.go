package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
)

// ErrAmbiguousID reports that a run ID prefix matches more than one run.
var ErrAmbiguousID = errors.New("run id prefix is ambiguous")

const runColumns = "id, source, destination, recursive, status, started_at, finished_at, considered, skipped, moved, failed, renamed, fallbacks, bytes, error_message"

func (s *Store) insertRun(ctx context.Context, run Run) error {
	err := s.exec(ctx,
		`INSERT INTO runs (id, source, destination, recursive, status, started_at, considered, skipped)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID,
		run.Source,
		run.Destination,
		boolToInt(run.Recursive),
		RunRunning,
		formatTime(run.StartedAt),
		run.Considered,
		run.Skipped,
	)
	if err != nil {
		return fmt.Errorf("insert run: %w", err)
	}
	return nil
}

func (s *Store) finishRun(ctx context.Context, run Run) error {
	err := s.exec(ctx,
		`UPDATE runs
         SET status = ?, finished_at = ?, recursive = ?, considered = ?, skipped = ?, moved = ?, failed = ?,
             renamed = ?, fallbacks = ?, bytes = ?, error_message = ?
         WHERE id = ?`,
		run.Status,
		formatTime(run.FinishedAt),
		boolToInt(run.Recursive),
		run.Considered,
		run.Skipped,
		run.Moved,
		run.Failed,
		run.Renamed,
		run.Fallbacks,
		run.Bytes,
		nullableString(run.Error),
		run.ID,
	)
	if err != nil {
		return fmt.Errorf("finish run: %w", err)
	}
	return nil
}

func (s *Store) insertPlacement(ctx context.Context, runID string, p Placement) error {
	err := s.exec(ctx,
		`INSERT INTO placements (run_id, seq, source_path, target_path, status, metadata_outcome, reason, error_message, recorded_at)
         VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		runID,
		p.Seq,
		p.Source,
		nullableString(p.Target),
		p.Status,
		nullableString(p.MetadataOutcome),
		nullableString(p.Reason),
		nullableString(p.Error),
		formatTime(p.RecordedAt),
	)
	if err != nil {
		return fmt.Errorf("insert placement: %w", err)
	}
	return nil
}

// ListRuns returns the most recent runs first. A limit of zero or less
// returns every run.
func (s *Store) ListRuns(ctx context.Context, limit int) ([]Run, error) {
	query := `SELECT ` + runColumns + ` FROM runs ORDER BY started_at DESC, id`
	args := []any{}
	if limit > 0 {
		query += ` LIMIT ?`
		args = append(args, limit)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list runs: %w", err)
	}
	defer rows.Close()

	var runs []Run
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

// GetRun fetches a run by its full ID or a unique prefix of it. It returns
// nil without error when nothing matches.
func (s *Store) GetRun(ctx context.Context, id string) (*Run, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+runColumns+` FROM runs WHERE substr(id, 1, ?) = ? ORDER BY id LIMIT 2`,
		len(id), id,
	)
	if err != nil {
		return nil, fmt.Errorf("get run: %w", err)
	}
	defer rows.Close()

	var matches []Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, fmt.Errorf("scan run: %w", err)
		}
		matches = append(matches, run)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate runs: %w", err)
	}
	switch len(matches) {
	case 0:
		return nil, nil
	case 1:
		return &matches[0], nil
	default:
		for i := range matches {
			if matches[i].ID == id {
				return &matches[i], nil
			}
		}
		return nil, fmt.Errorf("%w: %s", ErrAmbiguousID, id)
	}
}

// Placements returns the journaled files of a run in processing order.
func (s *Store) Placements(ctx context.Context, runID string) ([]Placement, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT seq, source_path, target_path, status, metadata_outcome, reason, error_message, recorded_at
         FROM placements WHERE run_id = ? ORDER BY seq, id`,
		runID,
	)
	if err != nil {
		return nil, fmt.Errorf("list placements: %w", err)
	}
	defer rows.Close()

	var out []Placement
	for rows.Next() {
		var (
			p          Placement
			target     sql.NullString
			status     string
			outcome    sql.NullString
			reason     sql.NullString
			errMessage sql.NullString
			recorded   string
		)
		if err := rows.Scan(&p.Seq, &p.Source, &target, &status, &outcome, &reason, &errMessage, &recorded); err != nil {
			return nil, fmt.Errorf("scan placement: %w", err)
		}
		p.Target = target.String
		p.Status = PlacementStatus(status)
		p.MetadataOutcome = outcome.String
		p.Reason = reason.String
		p.Error = errMessage.String
		if ts, err := parseTimeString(recorded); err == nil {
			p.RecordedAt = ts
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate placements: %w", err)
	}
	return out, nil
}

func scanRun(scanner interface{ Scan(dest ...any) error }) (Run, error) {
	var (
		run        Run
		recursive  int
		status     string
		startedRaw string
		finished   sql.NullString
		errMessage sql.NullString
	)
	if err := scanner.Scan(
		&run.ID,
		&run.Source,
		&run.Destination,
		&recursive,
		&status,
		&startedRaw,
		&finished,
		&run.Considered,
		&run.Skipped,
		&run.Moved,
		&run.Failed,
		&run.Renamed,
		&run.Fallbacks,
		&run.Bytes,
		&errMessage,
	); err != nil {
		return Run{}, err
	}
	run.Recursive = recursive != 0
	run.Status = RunStatus(status)
	run.Error = errMessage.String
	if started, err := parseTimeString(startedRaw); err == nil {
		run.StartedAt = started
	}
	if finished.Valid {
		if ts, err := parseTimeString(finished.String); err == nil {
			run.FinishedAt = ts
		}
	}
	return run, nil
}
