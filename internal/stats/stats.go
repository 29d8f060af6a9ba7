// Package stats folds generated events into running per-profile statistics
// and derives dashboard and trend views from them.
package stats

import (
	"math"

	"github.com/kaenlabs/parallel-self-simulator/internal/engine"
	"github.com/kaenlabs/parallel-self-simulator/internal/model"
)

// StreakResetBelow is the impact under which the current streak resets.
// Impacts in [StreakResetBelow, 0] leave the streak unchanged.
const StreakResetBelow = -30

// Fold returns prev updated with ev. prev is not modified.
func Fold(prev model.ProfileStats, ev model.Event) model.ProfileStats {
	if prev.TotalDays == 0 {
		return first(prev.ProfileID, ev)
	}

	next := prev
	next.TotalDays = prev.TotalDays + 1
	next.Increment(ev.EventType)
	next.AverageImpact = (prev.AverageImpact*float64(prev.TotalDays) + float64(ev.ImpactScore)) / float64(next.TotalDays)

	switch {
	case ev.ImpactScore > 0:
		next.CurrentStreak++
		if next.CurrentStreak > next.LongestStreak {
			next.LongestStreak = next.CurrentStreak
		}
	case ev.ImpactScore < StreakResetBelow:
		next.CurrentStreak = 0
	}
	return next
}

// first initialises stats from a profile's first event.
func first(profileID string, ev model.Event) model.ProfileStats {
	s := model.ProfileStats{
		ProfileID:     profileID,
		TotalDays:     1,
		AverageImpact: float64(ev.ImpactScore),
	}
	s.Increment(ev.EventType)
	if ev.ImpactScore > 0 {
		s.CurrentStreak = 1
		s.LongestStreak = 1
	}
	return s
}

// FoldAll folds events in order starting from zero stats.
func FoldAll(profileID string, events []model.Event) model.ProfileStats {
	s := model.ProfileStats{ProfileID: profileID}
	for _, ev := range events {
		s = Fold(s, ev)
	}
	return s
}

// roundTo rounds x half up to the given number of decimals.
func roundTo(x float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return engine.Round(x*p) / p
}
