package stats

import (
	"math"
	"sort"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
)

// Direction summarises whether recent impacts are rising or falling.
type Direction string

const (
	DirectionUp     Direction = "up"
	DirectionDown   Direction = "down"
	DirectionStable Direction = "stable"
)

// trendThreshold is the minimum half-to-half change in mean impact that
// counts as a direction.
const trendThreshold = 5

// RecentWindow is how many of the latest days the dashboard trend covers.
const RecentWindow = 7

// TypeShare is one event type's share of a profile's history.
type TypeShare struct {
	Type       model.EventType `json:"type"`
	Count      int             `json:"count"`
	Percentage int             `json:"percentage"`
}

// ProfileSummary is the profile portion of a dashboard.
type ProfileSummary struct {
	CharacterName   string       `json:"character_name"`
	CurrentDay      int          `json:"current_day"`
	CumulativeScore int          `json:"cumulative_score"`
	Status          model.Status `json:"status"`
}

// RecentTrend is the last few days of impact, oldest first.
type RecentTrend struct {
	Impacts   []int     `json:"impacts"`
	Direction Direction `json:"direction"`
}

// Dashboard is the overview shown for a profile.
type Dashboard struct {
	Profile      ProfileSummary     `json:"profile"`
	Stats        model.ProfileStats `json:"stats"`
	Recent       RecentTrend        `json:"recent"`
	Distribution []TypeShare        `json:"distribution"`
}

// Trend is the analysis of a window of events.
type Trend struct {
	Days           int              `json:"days"`
	AverageImpact  float64          `json:"average_impact"`
	PositiveRatio  int              `json:"positive_ratio"`
	MostCommonType *model.EventType `json:"most_common_type"`
	Volatility     float64          `json:"volatility"`
}

// BuildDashboard assembles a dashboard. recent may be in any order; only the
// latest RecentWindow days are used.
func BuildDashboard(p model.Profile, s model.ProfileStats, recent []model.Event) Dashboard {
	events := append([]model.Event(nil), recent...)
	sort.Slice(events, func(i, j int) bool { return events[i].DayNumber < events[j].DayNumber })
	if len(events) > RecentWindow {
		events = events[len(events)-RecentWindow:]
	}

	impacts := make([]int, 0, len(events))
	for _, e := range events {
		impacts = append(impacts, e.ImpactScore)
	}

	return Dashboard{
		Profile: ProfileSummary{
			CharacterName:   p.CharacterName,
			CurrentDay:      p.CurrentDay,
			CumulativeScore: p.CumulativeScore,
			Status:          p.Status,
		},
		Stats:        s,
		Recent:       RecentTrend{Impacts: impacts, Direction: TrendDirection(impacts)},
		Distribution: Distribution(s),
	}
}

// TrendDirection compares the mean of the second half of scores with the
// first half. scores are oldest first.
func TrendDirection(scores []int) Direction {
	if len(scores) < 2 {
		return DirectionStable
	}
	mid := len(scores) / 2
	diff := mean(scores[mid:]) - mean(scores[:mid])
	switch {
	case diff > trendThreshold:
		return DirectionUp
	case diff < -trendThreshold:
		return DirectionDown
	default:
		return DirectionStable
	}
}

// Distribution returns each type's count and rounded percentage. It is empty
// for a profile with no days.
func Distribution(s model.ProfileStats) []TypeShare {
	if s.TotalDays == 0 {
		return []TypeShare{}
	}
	out := make([]TypeShare, 0, len(model.EventTypes))
	for _, t := range model.EventTypes {
		c := s.Count(t)
		out = append(out, TypeShare{
			Type:       t,
			Count:      c,
			Percentage: int(roundTo(float64(c)/float64(s.TotalDays)*100, 0)),
		})
	}
	return out
}

// Analyze summarises a window of events, newest first as returned by the
// store. Ties for the most common type go to the type seen first.
func Analyze(events []model.Event) Trend {
	if len(events) == 0 {
		return Trend{}
	}

	impacts := make([]int, len(events))
	positive := 0
	counts := make(map[model.EventType]int)
	var order []model.EventType
	for i, e := range events {
		impacts[i] = e.ImpactScore
		if e.ImpactScore > 0 {
			positive++
		}
		if counts[e.EventType] == 0 {
			order = append(order, e.EventType)
		}
		counts[e.EventType]++
	}

	common := order[0]
	for _, t := range order[1:] {
		if counts[t] > counts[common] {
			common = t
		}
	}

	avg := mean(impacts)
	var variance float64
	for _, v := range impacts {
		d := float64(v) - avg
		variance += d * d
	}
	variance /= float64(len(impacts))

	return Trend{
		Days:           len(events),
		AverageImpact:  roundTo(avg, 1),
		PositiveRatio:  int(roundTo(float64(positive)/float64(len(events))*100, 0)),
		MostCommonType: &common,
		Volatility:     roundTo(math.Sqrt(variance), 1),
	}
}

func mean(v []int) float64 {
	if len(v) == 0 {
		return 0
	}
	sum := 0
	for _, x := range v {
		sum += x
	}
	return float64(sum) / float64(len(v))
}
