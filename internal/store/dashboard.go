package store

import (
	"context"
	"fmt"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/stats"
)

// DefaultTrendDays is the window used when Trends is called with days <= 0.
const DefaultTrendDays = 30

// Dashboard assembles the overview for a profile from its row, its stats and
// its latest events.
func (s *SQLiteStore) Dashboard(ctx context.Context, profileID string) (*stats.Dashboard, error) {
	p, err := s.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	st, err := s.GetStats(ctx, profileID)
	if err != nil {
		return nil, err
	}
	page, err := s.ListEvents(ctx, ListEventsParams{ProfileID: profileID, Limit: stats.RecentWindow})
	if err != nil {
		return nil, err
	}
	d := stats.BuildDashboard(*p, *st, page.Events)
	return &d, nil
}

// Trends analyses the latest days of a profile's history.
func (s *SQLiteStore) Trends(ctx context.Context, profileID string, days int) (*stats.Trend, error) {
	if days <= 0 {
		days = DefaultTrendDays
	}
	if _, err := s.GetProfile(ctx, profileID); err != nil {
		return nil, err
	}
	page, err := s.ListEvents(ctx, ListEventsParams{ProfileID: profileID, Limit: days})
	if err != nil {
		return nil, err
	}
	t := stats.Analyze(page.Events)
	return &t, nil
}

// RebuildStats recomputes a profile's stats row from its full history in day
// order and stores the result.
func (s *SQLiteStore) RebuildStats(ctx context.Context, profileID string) (*model.ProfileStats, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if _, err := getProfile(ctx, tx, `WHERE id = ?`, profileID); err != nil {
		return nil, err
	}
	var rows []eventRow
	err = tx.SelectContext(ctx, &rows,
		`SELECT `+eventColumns+` FROM events WHERE profile_id = ? ORDER BY day_number`, profileID)
	if err != nil {
		return nil, err
	}
	events, err := eventsFromRows(rows)
	if err != nil {
		return nil, err
	}

	st := stats.FoldAll(profileID, events)
	if err := writeStats(ctx, tx, st, s.now().Format(timeLayout)); err != nil {
		return nil, fmt.Errorf("rebuild stats: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return &st, nil
}
