package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
	"github.com/kaenlabs/parallel-self-simulator/internal/seed"
)

func ayse() model.Profile {
	p := model.Profile{
		CharacterName: "Ayşe",
		MainTrait:     "cesur",
		Weakness:      "sabırsız",
		Talent:        "liderlik",
		DailyGoal:     "kitap yazmak",
	}
	p.Seed = seed.Derive(p.MainTrait, p.Weakness, p.Talent, p.DailyGoal, p.CharacterName)
	return p
}

func TestFirstWeek(t *testing.T) {
	want := []struct {
		typ       model.EventType
		intensity int
		impact    int
	}{
		{model.EventIdea, 1, 8},
		{model.EventSuccess, 4, 55},
		{model.EventSocial, 3, 21},
		{model.EventInternal, 2, 10},
		{model.EventConflict, 6, -54},
		{model.EventFailure, 5, -50},
		{model.EventFinancial, 3, 27},
	}

	p := ayse()
	for i, w := range want {
		day := i + 1
		typ := DetermineEventType(p.Seed, day)
		intensity := CalculateIntensity(p, day, typ)
		impact := CalculateImpact(p, typ, intensity)
		assert.Equal(t, w.typ, typ, "day %d type", day)
		assert.Equal(t, w.intensity, intensity, "day %d intensity", day)
		assert.Equal(t, w.impact, impact, "day %d impact", day)
	}
}

func TestRanges(t *testing.T) {
	profiles := []model.Profile{ayse()}
	for _, traits := range [][5]string{
		{"hırslı", "öfkeli", "liderlik", "zirve", "Mert"},
		{"sakin", "utangaç", "müzik", "beste", "Ela"},
		{"bilinmeyen", "yok", "hiç", "", ""},
	} {
		p := model.Profile{MainTrait: traits[0], Weakness: traits[1], Talent: traits[2], DailyGoal: traits[3], CharacterName: traits[4]}
		p.Seed = seed.Derive(traits[0], traits[1], traits[2], traits[3], traits[4])
		profiles = append(profiles, p)
	}

	for _, p := range profiles {
		for day := 1; day <= 10000; day++ {
			typ := DetermineEventType(p.Seed, day)
			require.True(t, typ.Valid())
			intensity := CalculateIntensity(p, day, typ)
			require.GreaterOrEqual(t, intensity, 1)
			require.LessOrEqual(t, intensity, 10)
			impact := CalculateImpact(p, typ, intensity)
			require.GreaterOrEqual(t, impact, -100)
			require.LessOrEqual(t, impact, 100)
			idx := SelectTemplateIndex(p.Seed, day, 3)
			require.GreaterOrEqual(t, idx, 0)
			require.Less(t, idx, 3)
		}
	}
}

func TestDeterministic(t *testing.T) {
	p := ayse()
	for day := 1; day <= 100; day++ {
		typ := DetermineEventType(p.Seed, day)
		assert.Equal(t, typ, DetermineEventType(p.Seed, day))
		assert.Equal(t, CalculateIntensity(p, day, typ), CalculateIntensity(p, day, typ))
	}
}

func TestDetermineCategory(t *testing.T) {
	cases := []struct {
		impact int
		want   model.Category
	}{
		{100, model.CategoryPositive},
		{21, model.CategoryPositive},
		{20, model.CategoryNeutral},
		{0, model.CategoryNeutral},
		{-20, model.CategoryNeutral},
		{-21, model.CategoryNegative},
		{-100, model.CategoryNegative},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, DetermineCategory(c.impact), "impact %d", c.impact)
	}
}

func TestSynergyBonus(t *testing.T) {
	p := ayse()
	assert.Equal(t, 15, SynergyBonus(p, model.EventSuccess))
	assert.Zero(t, SynergyBonus(p, model.EventIdea))

	p.MainTrait = "Hırslı"
	assert.Equal(t, 20, SynergyBonus(p, model.EventSuccess))

	creative := model.Profile{MainTrait: "yaratıcı", Talent: "sanat"}
	assert.Equal(t, 20, SynergyBonus(creative, model.EventIdea))
	assert.Zero(t, SynergyBonus(creative, model.EventSuccess))
}

func TestTraitModifier(t *testing.T) {
	p := ayse()
	assert.InDelta(t, 2.9, TraitModifier(p, model.EventSuccess), 1e-9)
	assert.InDelta(t, 2.4, TraitModifier(p, model.EventFailure), 1e-9)
	assert.Zero(t, TraitModifier(p, model.EventIdea))
	assert.Zero(t, TraitModifier(model.Profile{MainTrait: "bilinmeyen"}, model.EventSuccess))
}

func TestStreakHook(t *testing.T) {
	p := ayse()
	e := New(WithStreak(func(model.Profile) int { return 7 }))
	assert.Equal(t, CalculateImpact(p, model.EventSuccess, 4)+7, e.CalculateImpact(p, model.EventSuccess, 4))
	assert.Equal(t, 100, e.CalculateImpact(p, model.EventSuccess, 10), "clamped")

	assert.Equal(t, Default().CalculateImpact(p, model.EventIdea, 5), New(WithStreak(nil)).CalculateImpact(p, model.EventIdea, 5))
}

func TestRound(t *testing.T) {
	assert.Equal(t, 3.0, Round(2.5))
	assert.Equal(t, -2.0, Round(-2.5))
	assert.Equal(t, 2.0, Round(2.4999))
}

func TestSelectTemplateIndex(t *testing.T) {
	p := ayse()
	assert.Zero(t, SelectTemplateIndex(p.Seed, 1, 0))
	assert.Zero(t, SelectTemplateIndex(p.Seed, 1, 1))
	// Uniform(seed, 1) is about 0.094 and Uniform(seed, 7) about 0.939.
	assert.Equal(t, 0, SelectTemplateIndex(p.Seed, 1, 4))
	assert.Equal(t, 3, SelectTemplateIndex(p.Seed, 7, 4))
}

func TestFillTemplate(t *testing.T) {
	p := ayse()
	got := FillTemplate("{characterName} ({mainTrait}, {talent}) {dailyGoal} için çalıştı; {weakness} yanı ağır bastı. {unknown}", p)
	assert.Equal(t, "Ayşe (cesur, liderlik) kitap yazmak için çalıştı; sabırsız yanı ağır bastı. {unknown}", got)
}
