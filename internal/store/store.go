// Package store provides the simulation storage interface and SQLite
// implementation.
package store

import (
	"context"
	"errors"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
)

var (
	// ErrNotFound is returned when a profile, event or stats row is missing.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when an owner already has a profile.
	ErrConflict = errors.New("conflict")
	// ErrInvalidStatus is returned for an unknown profile status.
	ErrInvalidStatus = errors.New("invalid status")
)

// CreateProfileParams holds parameters for creating a profile.
type CreateProfileParams struct {
	OwnerID       string `json:"owner_id"`
	CharacterName string `json:"character_name"`
	MainTrait     string `json:"main_trait"`
	Weakness      string `json:"weakness"`
	Talent        string `json:"talent"`
	DailyGoal     string `json:"daily_goal"`
}

// UpdateProfileParams holds profile edits. Empty fields are left unchanged.
type UpdateProfileParams struct {
	CharacterName string
	MainTrait     string
	Weakness      string
	Talent        string
	DailyGoal     string
	Status        model.Status
}

// TraitsChanged reports whether any seed-bearing field is edited.
func (p UpdateProfileParams) TraitsChanged() bool {
	return p.CharacterName != "" || p.MainTrait != "" || p.Weakness != "" ||
		p.Talent != "" || p.DailyGoal != ""
}

// ListProfilesParams holds parameters for listing profiles.
type ListProfilesParams struct {
	Status model.Status // empty means any
	Limit  int
}

// ListEventsParams holds parameters for paging through a profile's events.
type ListEventsParams struct {
	ProfileID string
	Page      int // 1-based
	Limit     int
}

// EventPage is one page of a profile's history, newest day first.
type EventPage struct {
	Events []model.Event `json:"events"`
	Total  int           `json:"total"`
	Page   int           `json:"page"`
	Pages  int           `json:"pages"`
}

// SearchParams holds parameters for searching events.
type SearchParams struct {
	ProfileID string
	Query     string
	Limit     int
}

// Store defines the simulation storage interface.
type Store interface {
	// CreateProfile stores a new profile with its derived seed and zeroed
	// stats in one transaction.
	CreateProfile(ctx context.Context, p CreateProfileParams) (*model.Profile, error)

	// GetProfile retrieves a profile by ID.
	GetProfile(ctx context.Context, id string) (*model.Profile, error)

	// GetProfileByOwner retrieves the profile owned by ownerID.
	GetProfileByOwner(ctx context.Context, ownerID string) (*model.Profile, error)

	// UpdateProfile edits traits or status, recomputing the seed when a
	// trait changes.
	UpdateProfile(ctx context.Context, id string, p UpdateProfileParams) (*model.Profile, error)

	// DeleteProfile removes a profile with its events and stats.
	DeleteProfile(ctx context.Context, id string) error

	// ListProfiles lists profiles, optionally filtered by status.
	ListProfiles(ctx context.Context, p ListProfilesParams) ([]model.Profile, error)

	// GetEvent looks up the event for (profileID, day).
	GetEvent(ctx context.Context, profileID string, day int) (*model.Event, error)

	// GetEventByID looks up an event by ID.
	GetEventByID(ctx context.Context, id string) (*model.Event, error)

	// MarkViewed sets the viewed timestamp if it is unset and returns the event.
	MarkViewed(ctx context.Context, id string) (*model.Event, error)

	// ListEvents pages through a profile's events, newest day first.
	ListEvents(ctx context.Context, p ListEventsParams) (*EventPage, error)

	// SearchEvents finds events whose title or description contains a query.
	SearchEvents(ctx context.Context, p SearchParams) ([]model.Event, error)

	// RecordEvent atomically stores ev, advances its profile and folds it
	// into the profile's stats. If an event already exists for the same
	// (profile, day) nothing changes and the existing event is returned with
	// created=false.
	RecordEvent(ctx context.Context, ev model.Event) (stored *model.Event, created bool, err error)

	// GetStats returns a profile's running statistics.
	GetStats(ctx context.Context, profileID string) (*model.ProfileStats, error)

	// Close closes the store.
	Close() error
}
