package store

import (
	"context"
	"errors"
	"testing"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/stats"
)

func TestDashboard(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	p := newTestProfile(t, s, "a")

	impacts := []int{-20, -10, 0, 10, 20, 30, 40, 50, 60}
	for i, impact := range impacts {
		s.RecordEvent(ctx, testEvent(p.ID, i+1, impact, model.EventSuccess))
	}

	d, err := s.Dashboard(ctx, p.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if d.Profile.CurrentDay != 9 || d.Profile.CumulativeScore != 180 {
		t.Errorf("unexpected profile summary: %+v", d.Profile)
	}
	if len(d.Recent.Impacts) != stats.RecentWindow {
		t.Fatalf("expected %d recent impacts, got %d", stats.RecentWindow, len(d.Recent.Impacts))
	}
	if d.Recent.Impacts[0] != 0 || d.Recent.Impacts[6] != 60 {
		t.Errorf("expected oldest-first window 0..60, got %v", d.Recent.Impacts)
	}
	if d.Recent.Direction != stats.DirectionUp {
		t.Errorf("expected up, got %s", d.Recent.Direction)
	}
	if len(d.Distribution) != len(model.EventTypes) || d.Distribution[0].Percentage != 100 {
		t.Errorf("unexpected distribution: %+v", d.Distribution)
	}
}

func TestDashboardEmptyProfile(t *testing.T) {
	s := newTestStore(t)
	p := newTestProfile(t, s, "a")

	d, err := s.Dashboard(context.Background(), p.ID)
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if len(d.Recent.Impacts) != 0 || len(d.Distribution) != 0 {
		t.Errorf("expected empty dashboard, got %+v", d)
	}
	if d.Recent.Direction != stats.DirectionStable {
		t.Errorf("expected stable, got %s", d.Recent.Direction)
	}
}

func TestTrends(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	p := newTestProfile(t, s, "a")

	s.RecordEvent(ctx, testEvent(p.ID, 1, 100, model.EventSuccess))
	s.RecordEvent(ctx, testEvent(p.ID, 2, 10, model.EventIdea))
	s.RecordEvent(ctx, testEvent(p.ID, 3, -10, model.EventConflict))
	s.RecordEvent(ctx, testEvent(p.ID, 4, 20, model.EventIdea))

	tr, err := s.Trends(ctx, p.ID, 3)
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	if tr.Days != 3 {
		t.Errorf("expected 3 days, got %d", tr.Days)
	}
	if tr.AverageImpact != 6.7 {
		t.Errorf("expected 6.7, got %v", tr.AverageImpact)
	}
	if tr.PositiveRatio != 67 {
		t.Errorf("expected 67, got %d", tr.PositiveRatio)
	}
	if tr.MostCommonType == nil || *tr.MostCommonType != model.EventIdea {
		t.Errorf("expected IDEA, got %v", tr.MostCommonType)
	}

	if _, err := s.Trends(ctx, "missing", 7); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestTrendsDefaultWindow(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	p := newTestProfile(t, s, "a")

	for day := 1; day <= DefaultTrendDays+5; day++ {
		if _, _, err := s.RecordEvent(ctx, testEvent(p.ID, day, 10, model.EventIdea)); err != nil {
			t.Fatalf("record day %d: %v", day, err)
		}
	}

	tr, err := s.Trends(ctx, p.ID, 0)
	if err != nil {
		t.Fatalf("trends: %v", err)
	}
	if tr.Days != 30 {
		t.Errorf("expected a 30 day window, got %d", tr.Days)
	}
}

func TestRebuildStats(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	p := newTestProfile(t, s, "a")

	for i, impact := range []int{40, -50, 10, 25} {
		if _, _, err := s.RecordEvent(ctx, testEvent(p.ID, i+1, impact, model.EventSocial)); err != nil {
			t.Fatalf("record day %d: %v", i+1, err)
		}
	}
	want, err := s.GetStats(ctx, p.ID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}

	if _, err := s.db.ExecContext(ctx, `UPDATE profile_stats SET total_days = 0, social_count = 0, longest_streak = 0 WHERE profile_id = ?`, p.ID); err != nil {
		t.Fatalf("corrupt stats: %v", err)
	}

	got, err := s.RebuildStats(ctx, p.ID)
	if err != nil {
		t.Fatalf("rebuild: %v", err)
	}
	if got.TotalDays != want.TotalDays || got.SocialCount != want.SocialCount ||
		got.CurrentStreak != want.CurrentStreak || got.LongestStreak != want.LongestStreak ||
		got.AverageImpact != want.AverageImpact {
		t.Errorf("rebuilt %+v, want %+v", got, want)
	}

	stored, err := s.GetStats(ctx, p.ID)
	if err != nil {
		t.Fatalf("get stats: %v", err)
	}
	if stored.TotalDays != 4 || stored.SocialCount != 4 {
		t.Errorf("rebuilt stats not stored: %+v", stored)
	}

	if _, err := s.RebuildStats(ctx, "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}
