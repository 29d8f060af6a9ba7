// Package generator materializes a profile's daily events: it derives the
// day's event from the profile seed, fills it from the template catalog and
// records it through the store exactly once per (profile, day).
package generator

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/kaenlabs/parallel-self-simulator/internal/catalog"
	"github.com/kaenlabs/parallel-self-simulator/internal/engine"
	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/seed"
	"github.com/kaenlabs/parallel-self-simulator/internal/store"
)

const tracerName = "github.com/kaenlabs/parallel-self-simulator/internal/generator"

// MaxPreviewDays bounds Preview.
const MaxPreviewDays = 365

var (
	// ErrConfiguration means the static data cannot serve a computed
	// (type, intensity) pair. It is never retried.
	ErrConfiguration = errors.New("configuration error")
	// ErrInvalidDay is returned for a negative day or an out of range preview.
	ErrInvalidDay = errors.New("invalid day")
)

// Store is the part of store.Store the generator needs.
type Store interface {
	GetProfile(ctx context.Context, id string) (*model.Profile, error)
	GetEvent(ctx context.Context, profileID string, day int) (*model.Event, error)
	RecordEvent(ctx context.Context, ev model.Event) (*model.Event, bool, error)
}

// Generator produces and records daily events.
type Generator struct {
	store   Store
	catalog *catalog.Catalog
	engine  *engine.Engine
	now     func() time.Time
	logger  *slog.Logger
	tracer  trace.Tracer
}

// Option configures a Generator.
type Option func(*Generator)

// WithCatalog replaces the embedded template catalog.
func WithCatalog(c *catalog.Catalog) Option {
	return func(g *Generator) { g.catalog = c }
}

// WithEngine replaces the default engine.
func WithEngine(e *engine.Engine) Option {
	return func(g *Generator) { g.engine = e }
}

// WithClock sets the clock used for GeneratedAt.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(g *Generator) { g.logger = l }
}

// WithTracer sets the tracer used for spans.
func WithTracer(t trace.Tracer) Option {
	return func(g *Generator) { g.tracer = t }
}

// New creates a Generator backed by s.
func New(s Store, opts ...Option) *Generator {
	g := &Generator{
		store:   s,
		catalog: catalog.Default(),
		engine:  engine.Default(),
		now:     func() time.Time { return time.Now().UTC() },
		logger:  slog.Default(),
		tracer:  otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate returns the event for (profileID, day), creating and recording it
// if needed. Day 0 means the profile's next day. Calling it again for the
// same day returns the stored event unchanged.
func (g *Generator) Generate(ctx context.Context, profileID string, day int) (ev *model.Event, err error) {
	ctx, span := g.tracer.Start(ctx, "generator.Generate", trace.WithAttributes(
		attribute.String("profile.id", profileID),
		attribute.Int("day.requested", day),
	))
	defer func() {
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		} else {
			span.SetStatus(codes.Ok, "")
		}
		span.End()
	}()

	if day < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}

	p, err := g.store.GetProfile(ctx, profileID)
	if err != nil {
		return nil, err
	}
	if day == 0 {
		day = p.NextDay()
	}
	span.SetAttributes(attribute.Int("day.number", day))

	existing, err := g.store.GetEvent(ctx, profileID, day)
	if err == nil {
		g.logger.Info("event already exists", "profile", profileID, "day", day)
		span.SetAttributes(attribute.Bool("event.created", false))
		return existing, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, err
	}

	built, err := g.Build(*p, day)
	if err != nil {
		g.logger.Error("build event", "profile", profileID, "day", day, "err", err)
		return nil, err
	}
	built.GeneratedAt = g.now()

	stored, created, err := g.store.RecordEvent(ctx, built)
	if err != nil {
		return nil, fmt.Errorf("record day %d: %w", day, err)
	}
	span.SetAttributes(attribute.Bool("event.created", created))
	if !created {
		g.logger.Info("event recorded concurrently", "profile", profileID, "day", day)
		return stored, nil
	}

	g.logger.Info("generated event",
		"profile", profileID,
		"day", day,
		"type", stored.EventType,
		"intensity", stored.Intensity,
		"impact", stored.ImpactScore,
		"title", stored.Title,
	)
	return stored, nil
}

// Today generates the profile's next day.
func (g *Generator) Today(ctx context.Context, profileID string) (*model.Event, error) {
	return g.Generate(ctx, profileID, 0)
}

// Build derives the event for p on day without touching storage. The
// returned event has no ID or GeneratedAt.
func (g *Generator) Build(p model.Profile, day int) (model.Event, error) {
	if day < 1 {
		return model.Event{}, fmt.Errorf("%w: %d", ErrInvalidDay, day)
	}

	et := engine.DetermineEventType(p.Seed, day)
	intensity := g.engine.CalculateIntensity(p, day, et)

	matching := g.catalog.Match(et, intensity)
	if len(matching) == 0 {
		return model.Event{}, fmt.Errorf("%w: %w: no template for %s intensity %d",
			ErrConfiguration, catalog.ErrCoverageGap, et, intensity)
	}
	tpl := matching[engine.SelectTemplateIndex(p.Seed, day, len(matching))]

	impact := g.engine.CalculateImpact(p, et, intensity)
	category := engine.DetermineCategory(impact)

	return model.Event{
		ProfileID:   p.ID,
		DayNumber:   day,
		EventType:   et,
		Category:    category,
		Title:       tpl.Title,
		Description: engine.FillTemplate(tpl.Description, p),
		Intensity:   intensity,
		ImpactScore: impact,
		Details: model.Details{
			TemplateID:         tpl.ID,
			TemplateTitle:      tpl.Title,
			TemplateBaseImpact: tpl.BaseImpact,
			Tags:               append([]string(nil), tpl.Tags...),
			Context: model.EventContext{
				Summary:       fmt.Sprintf("Day %d for %s", day, p.CharacterName),
				Day:           day,
				CharacterName: p.CharacterName,
				Mood:          strings.ToLower(string(category)),
				PreviousScore: p.CumulativeScore,
			},
		},
	}, nil
}

// Preview builds days 1..days for p from a fresh start without persisting
// anything. The seed is derived from the traits when p has none.
func (g *Generator) Preview(p model.Profile, days int) ([]model.Event, error) {
	if days < 0 || days > MaxPreviewDays {
		return nil, fmt.Errorf("%w: preview of %d days (max %d)", ErrInvalidDay, days, MaxPreviewDays)
	}
	if p.Seed == "" {
		p.Seed = seed.Derive(p.MainTrait, p.Weakness, p.Talent, p.DailyGoal, p.CharacterName)
	}
	p.CurrentDay = 0
	p.CumulativeScore = 0

	events := make([]model.Event, 0, days)
	for day := 1; day <= days; day++ {
		ev, err := g.Build(p, day)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
		p.CurrentDay = day
		p.CumulativeScore += ev.ImpactScore
	}
	return events, nil
}
