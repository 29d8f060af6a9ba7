// Package engine maps (seed, traits, day) to a reproducible event
// classification. Every function is pure and safe for concurrent use.
package engine

import (
	"math"
	"strings"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/seed"
)

// StreakFunc returns an impact adjustment derived from a profile's streak.
type StreakFunc func(p model.Profile) int

// NoStreak is the default streak hook. It contributes nothing.
func NoStreak(model.Profile) int { return 0 }

// Engine carries the pluggable parts of the calculation. The zero value is
// not usable; call New.
type Engine struct {
	streak StreakFunc
}

// Option configures an Engine.
type Option func(*Engine)

// WithStreak replaces the streak modifier hook.
func WithStreak(fn StreakFunc) Option {
	return func(e *Engine) {
		if fn != nil {
			e.streak = fn
		}
	}
}

// New creates an Engine.
func New(opts ...Option) *Engine {
	e := &Engine{streak: NoStreak}
	for _, o := range opts {
		o(e)
	}
	return e
}

var defaultEngine = New()

// Default returns the process-wide engine with the no-op streak hook.
func Default() *Engine { return defaultEngine }

// DetermineEventType picks the event type for a day.
func DetermineEventType(s string, day int) model.EventType {
	feature := int64(seed.MustFeature(s, 0, 8))
	combined := feature + int64(day)*Prime
	idx := combined % int64(len(model.EventTypes))
	if idx < 0 {
		idx += int64(len(model.EventTypes))
	}
	return model.EventTypes[idx]
}

// DayPattern is the smooth oscillation added to intensity.
func DayPattern(day int) float64 {
	return math.Sin(float64(day)/dayPatternPeriod) * dayPatternAmplitude
}

// TraitModifier combines the profile's trait tables for t. Explicit float64
// conversions keep each product rounded on its own so no architecture fuses
// them into an FMA.
func TraitModifier(p model.Profile, t model.EventType) float64 {
	main := traitModifiers.lookup(seed.Normalize(p.MainTrait), t)
	weak := weaknessModifiers.lookup(seed.Normalize(p.Weakness), t)
	talent := talentModifiers.lookup(seed.Normalize(p.Talent), t)
	return main + float64(weak*weaknessWeight) + float64(talent*talentWeight)
}

// CalculateIntensity returns the 1-10 intensity of a day's event.
func (e *Engine) CalculateIntensity(p model.Profile, day int, t model.EventType) int {
	base := float64(seed.MustFeature(p.Seed, 8, 8)%10 + 1)
	x := float64(base+TraitModifier(p, t)) + DayPattern(day)
	return clamp(int(Round(x)), 1, 10)
}

// CalculateImpact returns the signed -100..100 impact of an event.
func (e *Engine) CalculateImpact(p model.Profile, t model.EventType, intensity int) int {
	multiplier := float64(intensity) / 5
	scaled := float64(float64(BaseImpact(t)) * multiplier)
	x := scaled + float64(SynergyBonus(p, t)) + float64(e.streak(p))
	return clamp(int(Round(x)), -100, 100)
}

// CalculateIntensity uses the default engine.
func CalculateIntensity(p model.Profile, day int, t model.EventType) int {
	return defaultEngine.CalculateIntensity(p, day, t)
}

// CalculateImpact uses the default engine.
func CalculateImpact(p model.Profile, t model.EventType, intensity int) int {
	return defaultEngine.CalculateImpact(p, t, intensity)
}

// BaseImpact is the per-type impact at intensity 5.
func BaseImpact(t model.EventType) int {
	return baseImpact[t]
}

// SynergyBonus sums the bonuses of every rule matching the profile's main
// trait and talent for t.
func SynergyBonus(p model.Profile, t model.EventType) int {
	traits := [2]string{seed.Normalize(p.MainTrait), seed.Normalize(p.Talent)}
	has := func(s string) bool { return traits[0] == s || traits[1] == s }

	bonus := 0
	for _, syn := range Synergies {
		if syn.Type == t && has(syn.Traits[0]) && has(syn.Traits[1]) {
			bonus += syn.Bonus
		}
	}
	return bonus
}

// SelectTemplateIndex picks an index into a filtered template set of size
// count.
func SelectTemplateIndex(s string, day, count int) int {
	if count <= 0 {
		return 0
	}
	idx := int(math.Floor(seed.Uniform(s, day) * float64(count)))
	if idx >= count {
		idx = count - 1
	}
	return idx
}

// FillTemplate substitutes the five profile placeholders. Anything else in
// braces is left as is.
func FillTemplate(text string, p model.Profile) string {
	r := strings.NewReplacer(
		"{characterName}", p.CharacterName,
		"{mainTrait}", p.MainTrait,
		"{weakness}", p.Weakness,
		"{talent}", p.Talent,
		"{dailyGoal}", p.DailyGoal,
	)
	return r.Replace(text)
}

// DetermineCategory classifies an impact score.
func DetermineCategory(impact int) model.Category {
	switch {
	case impact > PositiveThreshold:
		return model.CategoryPositive
	case impact < NegativeThreshold:
		return model.CategoryNegative
	default:
		return model.CategoryNeutral
	}
}

// Round rounds half up, so -2.5 becomes -2 and 2.5 becomes 3.
func Round(x float64) float64 {
	return math.Floor(x + 0.5)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
