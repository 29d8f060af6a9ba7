package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/seed"
)

const timeLayout = time.RFC3339Nano

var _ Store = (*SQLiteStore)(nil)

// SQLiteStore implements Store using SQLite.
type SQLiteStore struct {
	db  *sqlx.DB
	now func() time.Time

	mu      sync.Mutex
	entropy *rand.Rand
}

// NewSQLiteStore opens or creates a SQLite database at the given path.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}

	db, err := sqlx.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=foreign_keys(on)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	s := &SQLiteStore{
		db:      db,
		now:     func() time.Time { return time.Now().UTC() },
		entropy: rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	if err := s.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

func (s *SQLiteStore) newID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return ulid.MustNew(ulid.Timestamp(time.Now()), s.entropy).String()
}

func (s *SQLiteStore) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS profiles (
		id               TEXT PRIMARY KEY,
		owner_id         TEXT NOT NULL UNIQUE,
		character_name   TEXT NOT NULL,
		main_trait       TEXT NOT NULL,
		weakness         TEXT NOT NULL,
		talent           TEXT NOT NULL,
		daily_goal       TEXT NOT NULL,
		seed             TEXT NOT NULL,
		current_day      INTEGER NOT NULL DEFAULT 0,
		cumulative_score INTEGER NOT NULL DEFAULT 0,
		status           TEXT NOT NULL DEFAULT 'ACTIVE',
		created_at       TEXT NOT NULL,
		updated_at       TEXT NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_profiles_status ON profiles(status);

	CREATE TABLE IF NOT EXISTS events (
		id           TEXT PRIMARY KEY,
		profile_id   TEXT NOT NULL REFERENCES profiles(id) ON DELETE CASCADE,
		day_number   INTEGER NOT NULL,
		event_type   TEXT NOT NULL,
		category     TEXT NOT NULL,
		title        TEXT NOT NULL,
		description  TEXT NOT NULL,
		intensity    INTEGER NOT NULL,
		impact_score INTEGER NOT NULL,
		details      TEXT NOT NULL,
		generated_at TEXT NOT NULL,
		viewed_at    TEXT,
		search_text  TEXT NOT NULL DEFAULT '',
		UNIQUE (profile_id, day_number)
	);
	CREATE INDEX IF NOT EXISTS idx_events_profile_day ON events(profile_id, day_number DESC);

	CREATE TABLE IF NOT EXISTS profile_stats (
		profile_id      TEXT PRIMARY KEY REFERENCES profiles(id) ON DELETE CASCADE,
		total_days      INTEGER NOT NULL DEFAULT 0,
		success_count   INTEGER NOT NULL DEFAULT 0,
		failure_count   INTEGER NOT NULL DEFAULT 0,
		social_count    INTEGER NOT NULL DEFAULT 0,
		financial_count INTEGER NOT NULL DEFAULT 0,
		internal_count  INTEGER NOT NULL DEFAULT 0,
		idea_count      INTEGER NOT NULL DEFAULT 0,
		conflict_count  INTEGER NOT NULL DEFAULT 0,
		average_impact  REAL NOT NULL DEFAULT 0,
		current_streak  INTEGER NOT NULL DEFAULT 0,
		longest_streak  INTEGER NOT NULL DEFAULT 0,
		updated_at      TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

func (s *SQLiteStore) CreateProfile(ctx context.Context, p CreateProfileParams) (*model.Profile, error) {
	now := s.now()
	prof := &model.Profile{
		ID:            s.newID(),
		OwnerID:       p.OwnerID,
		CharacterName: p.CharacterName,
		MainTrait:     p.MainTrait,
		Weakness:      p.Weakness,
		Talent:        p.Talent,
		DailyGoal:     p.DailyGoal,
		Seed:          seed.Derive(p.MainTrait, p.Weakness, p.Talent, p.DailyGoal, p.CharacterName),
		Status:        model.StatusActive,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if prof.OwnerID == "" {
		prof.OwnerID = prof.ID
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO profiles (id, owner_id, character_name, main_trait, weakness, talent, daily_goal,
		                       seed, current_day, cumulative_score, status, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, 0, 0, ?, ?, ?)
		 ON CONFLICT(owner_id) DO NOTHING`,
		prof.ID, prof.OwnerID, prof.CharacterName, prof.MainTrait, prof.Weakness, prof.Talent,
		prof.DailyGoal, prof.Seed, prof.Status, now.Format(timeLayout), now.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("insert profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, fmt.Errorf("owner %s already has a profile: %w", prof.OwnerID, ErrConflict)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO profile_stats (profile_id, updated_at) VALUES (?, ?)`,
		prof.ID, now.Format(timeLayout))
	if err != nil {
		return nil, fmt.Errorf("insert stats: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return prof, nil
}

func (s *SQLiteStore) GetProfile(ctx context.Context, id string) (*model.Profile, error) {
	return getProfile(ctx, s.db, `WHERE id = ?`, id)
}

func (s *SQLiteStore) GetProfileByOwner(ctx context.Context, ownerID string) (*model.Profile, error) {
	return getProfile(ctx, s.db, `WHERE owner_id = ?`, ownerID)
}

func (s *SQLiteStore) UpdateProfile(ctx context.Context, id string, p UpdateProfileParams) (*model.Profile, error) {
	if p.Status != "" && !model.ValidStatuses[p.Status] {
		return nil, fmt.Errorf("%w: %q", ErrInvalidStatus, p.Status)
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	prof, err := getProfile(ctx, tx, `WHERE id = ?`, id)
	if err != nil {
		return nil, err
	}

	set := func(dst *string, v string) {
		if v != "" {
			*dst = v
		}
	}
	set(&prof.CharacterName, p.CharacterName)
	set(&prof.MainTrait, p.MainTrait)
	set(&prof.Weakness, p.Weakness)
	set(&prof.Talent, p.Talent)
	set(&prof.DailyGoal, p.DailyGoal)
	if p.TraitsChanged() {
		prof.Seed = seed.Derive(prof.MainTrait, prof.Weakness, prof.Talent, prof.DailyGoal, prof.CharacterName)
	}
	if p.Status != "" {
		prof.Status = p.Status
	}
	prof.UpdatedAt = s.now()

	_, err = tx.ExecContext(ctx,
		`UPDATE profiles SET character_name = ?, main_trait = ?, weakness = ?, talent = ?, daily_goal = ?,
		                     seed = ?, status = ?, updated_at = ?
		 WHERE id = ?`,
		prof.CharacterName, prof.MainTrait, prof.Weakness, prof.Talent, prof.DailyGoal,
		prof.Seed, prof.Status, prof.UpdatedAt.Format(timeLayout), id)
	if err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return prof, nil
}

func (s *SQLiteStore) DeleteProfile(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM profiles WHERE id = ?`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("profile %s: %w", id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) ListProfiles(ctx context.Context, p ListProfilesParams) ([]model.Profile, error) {
	query := `SELECT ` + profileColumns + ` FROM profiles`
	var args []interface{}
	if p.Status != "" {
		query += ` WHERE status = ?`
		args = append(args, p.Status)
	}
	query += ` ORDER BY created_at, id`
	if p.Limit > 0 {
		query += ` LIMIT ?`
		args = append(args, p.Limit)
	}

	var rows []profileRow
	if err := s.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, err
	}
	profiles := make([]model.Profile, 0, len(rows))
	for _, r := range rows {
		profiles = append(profiles, r.toModel())
	}
	return profiles, nil
}

func (s *SQLiteStore) GetEvent(ctx context.Context, profileID string, day int) (*model.Event, error) {
	return getEvent(ctx, s.db, `WHERE profile_id = ? AND day_number = ?`, profileID, day)
}

func (s *SQLiteStore) GetEventByID(ctx context.Context, id string) (*model.Event, error) {
	return getEvent(ctx, s.db, `WHERE id = ?`, id)
}

func (s *SQLiteStore) MarkViewed(ctx context.Context, id string) (*model.Event, error) {
	_, err := s.db.ExecContext(ctx,
		`UPDATE events SET viewed_at = ? WHERE id = ? AND viewed_at IS NULL`,
		s.now().Format(timeLayout), id)
	if err != nil {
		return nil, err
	}
	return s.GetEventByID(ctx, id)
}

func (s *SQLiteStore) ListEvents(ctx context.Context, p ListEventsParams) (*EventPage, error) {
	page := p.Page
	if page <= 0 {
		page = 1
	}
	limit := p.Limit
	if limit <= 0 {
		limit = 20
	}

	var total int
	if err := s.db.GetContext(ctx, &total, `SELECT COUNT(*) FROM events WHERE profile_id = ?`, p.ProfileID); err != nil {
		return nil, err
	}

	var rows []eventRow
	err := s.db.SelectContext(ctx, &rows,
		`SELECT `+eventColumns+` FROM events WHERE profile_id = ?
		 ORDER BY day_number DESC LIMIT ? OFFSET ?`,
		p.ProfileID, limit, (page-1)*limit)
	if err != nil {
		return nil, err
	}

	events, err := eventsFromRows(rows)
	if err != nil {
		return nil, err
	}
	return &EventPage{
		Events: events,
		Total:  total,
		Page:   page,
		Pages:  (total + limit - 1) / limit,
	}, nil
}

func (s *SQLiteStore) RecordEvent(ctx context.Context, ev model.Event) (*model.Event, bool, error) {
	if ev.ID == "" {
		ev.ID = s.newID()
	}
	if ev.GeneratedAt.IsZero() {
		ev.GeneratedAt = s.now()
	}
	details, err := marshalDetails(ev.Details)
	if err != nil {
		return nil, false, err
	}

	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, false, err
	}
	defer tx.Rollback()

	// The insert is the first statement so the write lock is taken before
	// anything is read; a concurrent writer for the same day waits here.
	res, err := tx.ExecContext(ctx,
		`INSERT INTO events (id, profile_id, day_number, event_type, category, title, description,
		                     intensity, impact_score, details, generated_at, search_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(profile_id, day_number) DO NOTHING`,
		ev.ID, ev.ProfileID, ev.DayNumber, ev.EventType, ev.Category, ev.Title, ev.Description,
		ev.Intensity, ev.ImpactScore, details, ev.GeneratedAt.Format(timeLayout), searchText(ev))
	if err != nil {
		tx.Rollback()
		if _, perr := s.GetProfile(ctx, ev.ProfileID); errors.Is(perr, ErrNotFound) {
			return nil, false, perr
		}
		return nil, false, fmt.Errorf("insert event: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		existing, err := getEvent(ctx, tx, `WHERE profile_id = ? AND day_number = ?`, ev.ProfileID, ev.DayNumber)
		if err != nil {
			return nil, false, err
		}
		return existing, false, nil
	}

	now := s.now().Format(timeLayout)
	res, err = tx.ExecContext(ctx,
		`UPDATE profiles SET current_day = MAX(current_day, ?), cumulative_score = cumulative_score + ?, updated_at = ?
		 WHERE id = ?`,
		ev.DayNumber, ev.ImpactScore, now, ev.ProfileID)
	if err != nil {
		return nil, false, fmt.Errorf("advance profile: %w", err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return nil, false, fmt.Errorf("profile %s: %w", ev.ProfileID, ErrNotFound)
	}

	if err := foldStats(ctx, tx, ev, now); err != nil {
		return nil, false, err
	}

	if err := tx.Commit(); err != nil {
		return nil, false, err
	}
	return &ev, true, nil
}

func (s *SQLiteStore) GetStats(ctx context.Context, profileID string) (*model.ProfileStats, error) {
	return getStats(ctx, s.db, profileID)
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func getProfile(ctx context.Context, q sqlx.QueryerContext, where string, args ...interface{}) (*model.Profile, error) {
	var r profileRow
	err := sqlx.GetContext(ctx, q, &r, `SELECT `+profileColumns+` FROM profiles `+where, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("profile %v: %w", args[0], ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	p := r.toModel()
	return &p, nil
}

func getEvent(ctx context.Context, q sqlx.QueryerContext, where string, args ...interface{}) (*model.Event, error) {
	var r eventRow
	err := sqlx.GetContext(ctx, q, &r, `SELECT `+eventColumns+` FROM events `+where, args...)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("event %v: %w", args, ErrNotFound)
	}
	if err != nil {
		return nil, err
	}
	ev, err := r.toModel()
	if err != nil {
		return nil, err
	}
	return &ev, nil
}

func eventsFromRows(rows []eventRow) ([]model.Event, error) {
	events := make([]model.Event, 0, len(rows))
	for _, r := range rows {
		ev, err := r.toModel()
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	return events, nil
}
