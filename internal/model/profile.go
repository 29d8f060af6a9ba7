// Package model defines the core simulation data types.
package model

import "time"

// Status is the lifecycle state of a profile.
type Status string

const (
	StatusActive    Status = "ACTIVE"
	StatusPaused    Status = "PAUSED"
	StatusCompleted Status = "COMPLETED"
)

// ValidStatuses are the allowed profile statuses.
var ValidStatuses = map[Status]bool{
	StatusActive:    true,
	StatusPaused:    true,
	StatusCompleted: true,
}

// Profile is a user's parallel-self character. Seed is derived from the five
// trait fields and must be recomputed whenever one of them changes.
type Profile struct {
	ID              string    `json:"id"`
	OwnerID         string    `json:"owner_id"`
	CharacterName   string    `json:"character_name"`
	MainTrait       string    `json:"main_trait"`
	Weakness        string    `json:"weakness"`
	Talent          string    `json:"talent"`
	DailyGoal       string    `json:"daily_goal"`
	Seed            string    `json:"seed"`
	CurrentDay      int       `json:"current_day"`
	CumulativeScore int       `json:"cumulative_score"`
	Status          Status    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// NextDay is the day a plain "advance" generates.
func (p Profile) NextDay() int {
	return p.CurrentDay + 1
}
