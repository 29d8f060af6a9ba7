package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/seed"
)

// Bundle is a profile with its full history, as written by export.
type Bundle struct {
	Profile model.Profile      `json:"profile"`
	Stats   model.ProfileStats `json:"stats"`
	Events  []model.Event      `json:"events"`
}

// ExportProfile returns one profile with its events in day order.
func (s *SQLiteStore) ExportProfile(ctx context.Context, id string) (*Bundle, error) {
	p, err := s.GetProfile(ctx, id)
	if err != nil {
		return nil, err
	}
	st, err := s.GetStats(ctx, id)
	if err != nil {
		return nil, err
	}

	var rows []eventRow
	err = s.db.SelectContext(ctx, &rows,
		`SELECT `+eventColumns+` FROM events WHERE profile_id = ? ORDER BY day_number`, id)
	if err != nil {
		return nil, err
	}
	events, err := eventsFromRows(rows)
	if err != nil {
		return nil, err
	}
	return &Bundle{Profile: *p, Stats: *st, Events: events}, nil
}

// ExportAll returns a bundle for every profile, optionally filtered by status.
func (s *SQLiteStore) ExportAll(ctx context.Context, status model.Status) ([]Bundle, error) {
	profiles, err := s.ListProfiles(ctx, ListProfilesParams{Status: status})
	if err != nil {
		return nil, err
	}
	bundles := make([]Bundle, 0, len(profiles))
	for _, p := range profiles {
		b, err := s.ExportProfile(ctx, p.ID)
		if err != nil {
			return nil, err
		}
		bundles = append(bundles, *b)
	}
	return bundles, nil
}

// ImportProfiles recreates exported profiles from their trait definitions.
// Events are not imported: a profile's history is re-derived from its seed.
// Profiles whose owner already exists are skipped. A bundle carrying a
// malformed seed is rejected. It returns the number of profiles imported.
func (s *SQLiteStore) ImportProfiles(ctx context.Context, bundles []Bundle) (int, error) {
	imported := 0
	for _, b := range bundles {
		if b.Profile.Seed != "" && !seed.Valid(b.Profile.Seed) {
			return imported, fmt.Errorf("import %s: malformed seed %q", b.Profile.OwnerID, b.Profile.Seed)
		}
		p, err := s.CreateProfile(ctx, CreateProfileParams{
			OwnerID:       b.Profile.OwnerID,
			CharacterName: b.Profile.CharacterName,
			MainTrait:     b.Profile.MainTrait,
			Weakness:      b.Profile.Weakness,
			Talent:        b.Profile.Talent,
			DailyGoal:     b.Profile.DailyGoal,
		})
		if errors.Is(err, ErrConflict) {
			continue
		}
		if err != nil {
			return imported, fmt.Errorf("import %s: %w", b.Profile.OwnerID, err)
		}

		if b.Profile.Status != "" && b.Profile.Status != model.StatusActive {
			if _, err := s.UpdateProfile(ctx, p.ID, UpdateProfileParams{Status: b.Profile.Status}); err != nil {
				return imported, fmt.Errorf("import %s: %w", b.Profile.OwnerID, err)
			}
		}
		imported++
	}
	return imported, nil
}
