package store

import (
	"context"
	"fmt"
	"time"

	"fdehunt-engine/internal/domain"
)

// Load returns every surfaced id.
func (s *SeenStore) Load(ctx context.Context) (*domain.SeenSet, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT unique_id FROM seen_jobs;`)
	if err != nil {
		return nil, fmt.Errorf("load seen: %w", err)
	}
	defer rows.Close()

	seen := domain.NewSeenSet()
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan seen: %w", err)
		}
		seen.Add(id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load seen: %w", err)
	}
	return seen, nil
}

// Save writes the set back, inserting ids the table does not hold yet,
// stamped with the current time, in one transaction.
func (s *SeenStore) Save(ctx context.Context, seen *domain.SeenSet) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("save seen: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx,
		`INSERT OR IGNORE INTO seen_jobs (unique_id, first_seen) VALUES (?, ?);`)
	if err != nil {
		return fmt.Errorf("save seen: %w", err)
	}
	defer stmt.Close()

	now := time.Now().UTC().Format(time.RFC3339)
	for _, id := range seen.IDs() {
		if _, err := stmt.ExecContext(ctx, id, now); err != nil {
			return fmt.Errorf("save seen %q: %w", id, err)
		}
	}
	return tx.Commit()
}

// Reset drops every id. Used by the -reset-seen flag.
func (s *SeenStore) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM seen_jobs;`); err != nil {
		return fmt.Errorf("reset seen: %w", err)
	}
	return nil
}

// PruneOlderThan removes ids first seen more than age ago and reports
// how many went. RFC3339 UTC stamps compare lexicographically.
func (s *SeenStore) PruneOlderThan(ctx context.Context, age time.Duration) (int64, error) {
	cutoff := time.Now().UTC().Add(-age).Format(time.RFC3339)
	res, err := s.db.ExecContext(ctx, `DELETE FROM seen_jobs WHERE first_seen < ?;`, cutoff)
	if err != nil {
		return 0, fmt.Errorf("prune seen: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return n, nil
}

// Count returns the table size. The summary report logs it.
func (s *SeenStore) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM seen_jobs;`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count seen: %w", err)
	}
	return n, nil
}
