package store

import (
	"context"
	"os"
)

// Summary holds database-wide counts.
type Summary struct {
	DBPath        string          `json:"db_path"`
	DBSizeBytes   int64           `json:"db_size_bytes"`
	TotalProfiles int             `json:"total_profiles"`
	TotalEvents   int             `json:"total_events"`
	UnviewedCount int             `json:"unviewed_events"`
	Statuses      []StatusSummary `json:"statuses"`
}

// StatusSummary holds per-status profile counts.
type StatusSummary struct {
	Status string `json:"status" db:"status"`
	Count  int    `json:"count" db:"cnt"`
}

// Summary returns database-wide counts.
func (s *SQLiteStore) Summary(ctx context.Context, dbPath string) (*Summary, error) {
	st := &Summary{DBPath: dbPath, Statuses: []StatusSummary{}}

	if info, err := os.Stat(dbPath); err == nil {
		st.DBSizeBytes = info.Size()
	}

	if err := s.db.GetContext(ctx, &st.TotalProfiles, `SELECT COUNT(*) FROM profiles`); err != nil {
		return nil, err
	}
	if err := s.db.GetContext(ctx, &st.TotalEvents, `SELECT COUNT(*) FROM events`); err != nil {
		return nil, err
	}
	if err := s.db.GetContext(ctx, &st.UnviewedCount, `SELECT COUNT(*) FROM events WHERE viewed_at IS NULL`); err != nil {
		return nil, err
	}

	err := s.db.SelectContext(ctx, &st.Statuses, `
		SELECT status, COUNT(*) AS cnt
		FROM profiles GROUP BY status ORDER BY cnt DESC, status`)
	if err != nil {
		return nil, err
	}
	return st, nil
}
