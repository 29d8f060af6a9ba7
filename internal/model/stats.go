package model

import "time"

// ProfileStats are the running aggregates for one profile.
type ProfileStats struct {
	ProfileID      string    `json:"profile_id"`
	TotalDays      int       `json:"total_days"`
	SuccessCount   int       `json:"success_count"`
	FailureCount   int       `json:"failure_count"`
	SocialCount    int       `json:"social_count"`
	FinancialCount int       `json:"financial_count"`
	InternalCount  int       `json:"internal_count"`
	IdeaCount      int       `json:"idea_count"`
	ConflictCount  int       `json:"conflict_count"`
	AverageImpact  float64   `json:"average_impact"`
	CurrentStreak  int       `json:"current_streak"`
	LongestStreak  int       `json:"longest_streak"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// Count returns the counter for t.
func (s ProfileStats) Count(t EventType) int {
	switch t {
	case EventSuccess:
		return s.SuccessCount
	case EventFailure:
		return s.FailureCount
	case EventSocial:
		return s.SocialCount
	case EventFinancial:
		return s.FinancialCount
	case EventInternal:
		return s.InternalCount
	case EventIdea:
		return s.IdeaCount
	case EventConflict:
		return s.ConflictCount
	}
	return 0
}

// counter returns a pointer to the field holding the count for t.
func (s *ProfileStats) counter(t EventType) *int {
	switch t {
	case EventSuccess:
		return &s.SuccessCount
	case EventFailure:
		return &s.FailureCount
	case EventSocial:
		return &s.SocialCount
	case EventFinancial:
		return &s.FinancialCount
	case EventInternal:
		return &s.InternalCount
	case EventIdea:
		return &s.IdeaCount
	case EventConflict:
		return &s.ConflictCount
	}
	return nil
}

// Increment bumps the counter for t. Unknown types are ignored.
func (s *ProfileStats) Increment(t EventType) {
	if c := s.counter(t); c != nil {
		*c++
	}
}

// TypeTotal is the sum of the seven per-type counters.
func (s ProfileStats) TypeTotal() int {
	total := 0
	for _, t := range EventTypes {
		total += s.Count(t)
	}
	return total
}
