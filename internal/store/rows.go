package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/stats"
)

const profileColumns = `id, owner_id, character_name, main_trait, weakness, talent, daily_goal,
	seed, current_day, cumulative_score, status, created_at, updated_at`

const eventColumns = `id, profile_id, day_number, event_type, category, title, description,
	intensity, impact_score, details, generated_at, viewed_at`

const statsColumns = `profile_id, total_days, success_count, failure_count, social_count,
	financial_count, internal_count, idea_count, conflict_count, average_impact,
	current_streak, longest_streak, updated_at`

type profileRow struct {
	ID              string `db:"id"`
	OwnerID         string `db:"owner_id"`
	CharacterName   string `db:"character_name"`
	MainTrait       string `db:"main_trait"`
	Weakness        string `db:"weakness"`
	Talent          string `db:"talent"`
	DailyGoal       string `db:"daily_goal"`
	Seed            string `db:"seed"`
	CurrentDay      int    `db:"current_day"`
	CumulativeScore int    `db:"cumulative_score"`
	Status          string `db:"status"`
	CreatedAt       string `db:"created_at"`
	UpdatedAt       string `db:"updated_at"`
}

func (r profileRow) toModel() model.Profile {
	p := model.Profile{
		ID:              r.ID,
		OwnerID:         r.OwnerID,
		CharacterName:   r.CharacterName,
		MainTrait:       r.MainTrait,
		Weakness:        r.Weakness,
		Talent:          r.Talent,
		DailyGoal:       r.DailyGoal,
		Seed:            r.Seed,
		CurrentDay:      r.CurrentDay,
		CumulativeScore: r.CumulativeScore,
		Status:          model.Status(r.Status),
	}
	p.CreatedAt, _ = time.Parse(timeLayout, r.CreatedAt)
	p.UpdatedAt, _ = time.Parse(timeLayout, r.UpdatedAt)
	return p
}

type eventRow struct {
	ID          string         `db:"id"`
	ProfileID   string         `db:"profile_id"`
	DayNumber   int            `db:"day_number"`
	EventType   string         `db:"event_type"`
	Category    string         `db:"category"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	Intensity   int            `db:"intensity"`
	ImpactScore int            `db:"impact_score"`
	Details     string         `db:"details"`
	GeneratedAt string         `db:"generated_at"`
	ViewedAt    sql.NullString `db:"viewed_at"`
}

func (r eventRow) toModel() (model.Event, error) {
	ev := model.Event{
		ID:          r.ID,
		ProfileID:   r.ProfileID,
		DayNumber:   r.DayNumber,
		EventType:   model.EventType(r.EventType),
		Category:    model.Category(r.Category),
		Title:       r.Title,
		Description: r.Description,
		Intensity:   r.Intensity,
		ImpactScore: r.ImpactScore,
	}
	if err := json.Unmarshal([]byte(r.Details), &ev.Details); err != nil {
		return ev, fmt.Errorf("event %s: decode details: %w", r.ID, err)
	}
	ev.GeneratedAt, _ = time.Parse(timeLayout, r.GeneratedAt)
	if r.ViewedAt.Valid {
		t, _ := time.Parse(timeLayout, r.ViewedAt.String)
		ev.ViewedAt = &t
	}
	return ev, nil
}

func marshalDetails(d model.Details) (string, error) {
	b, err := json.Marshal(d)
	if err != nil {
		return "", fmt.Errorf("encode details: %w", err)
	}
	return string(b), nil
}

type statsRow struct {
	ProfileID      string  `db:"profile_id"`
	TotalDays      int     `db:"total_days"`
	SuccessCount   int     `db:"success_count"`
	FailureCount   int     `db:"failure_count"`
	SocialCount    int     `db:"social_count"`
	FinancialCount int     `db:"financial_count"`
	InternalCount  int     `db:"internal_count"`
	IdeaCount      int     `db:"idea_count"`
	ConflictCount  int     `db:"conflict_count"`
	AverageImpact  float64 `db:"average_impact"`
	CurrentStreak  int     `db:"current_streak"`
	LongestStreak  int     `db:"longest_streak"`
	UpdatedAt      string  `db:"updated_at"`
}

func (r statsRow) toModel() model.ProfileStats {
	s := model.ProfileStats{
		ProfileID:      r.ProfileID,
		TotalDays:      r.TotalDays,
		SuccessCount:   r.SuccessCount,
		FailureCount:   r.FailureCount,
		SocialCount:    r.SocialCount,
		FinancialCount: r.FinancialCount,
		InternalCount:  r.InternalCount,
		IdeaCount:      r.IdeaCount,
		ConflictCount:  r.ConflictCount,
		AverageImpact:  r.AverageImpact,
		CurrentStreak:  r.CurrentStreak,
		LongestStreak:  r.LongestStreak,
	}
	s.UpdatedAt, _ = time.Parse(timeLayout, r.UpdatedAt)
	return s
}

func getStats(ctx context.Context, q sqlx.QueryerContext, profileID string) (*model.ProfileStats, error) {
	var r statsRow
	err := sqlx.GetContext(ctx, q, &r, `SELECT `+statsColumns+` FROM profile_stats WHERE profile_id = ?`, profileID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("stats for %s: %w", profileID, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	s := r.toModel()
	return &s, nil
}

// foldStats folds ev into the profile's stats row inside tx. A missing row is
// treated as zero stats.
func foldStats(ctx context.Context, tx *sqlx.Tx, ev model.Event, now string) error {
	prev := model.ProfileStats{ProfileID: ev.ProfileID}
	cur, err := getStats(ctx, tx, ev.ProfileID)
	switch {
	case err == nil:
		prev = *cur
	case !errors.Is(err, ErrNotFound):
		return fmt.Errorf("read stats: %w", err)
	}

	return writeStats(ctx, tx, stats.Fold(prev, ev), now)
}

func writeStats(ctx context.Context, tx *sqlx.Tx, st model.ProfileStats, now string) error {
	_, err := tx.ExecContext(ctx,
		`INSERT INTO profile_stats (`+statsColumns+`)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(profile_id) DO UPDATE SET
			total_days = excluded.total_days,
			success_count = excluded.success_count,
			failure_count = excluded.failure_count,
			social_count = excluded.social_count,
			financial_count = excluded.financial_count,
			internal_count = excluded.internal_count,
			idea_count = excluded.idea_count,
			conflict_count = excluded.conflict_count,
			average_impact = excluded.average_impact,
			current_streak = excluded.current_streak,
			longest_streak = excluded.longest_streak,
			updated_at = excluded.updated_at`,
		st.ProfileID, st.TotalDays, st.SuccessCount, st.FailureCount, st.SocialCount,
		st.FinancialCount, st.InternalCount, st.IdeaCount, st.ConflictCount,
		st.AverageImpact, st.CurrentStreak, st.LongestStreak, now)
	if err != nil {
		return fmt.Errorf("upsert stats: %w", err)
	}
	return nil
}
