package engine

import "github.com/kaenlabs/parallel-self-simulator/internal/model"

// Prime spreads consecutive days across the seven event types. It must not
// divide 7 and must never change: every stored history depends on it.
const Prime = 7919

// Category thresholds, symmetric around zero.
const (
	PositiveThreshold = 20
	NegativeThreshold = -20
)

// Weights applied to the secondary trait modifiers.
const (
	weaknessWeight = 0.7
	talentWeight   = 0.8
)

// Day pattern constants: sin(day/dayPatternPeriod) * dayPatternAmplitude.
const (
	dayPatternPeriod    = 7
	dayPatternAmplitude = 2
)

// modifierTable maps a normalised trait to per-type intensity modifiers.
type modifierTable map[string]map[model.EventType]float64

// baseImpact is the per-type impact at intensity 5.
var baseImpact = map[model.EventType]int{
	model.EventSuccess:   50,
	model.EventFailure:   -50,
	model.EventSocial:    35,
	model.EventFinancial: 45,
	model.EventInternal:  25,
	model.EventIdea:      40,
	model.EventConflict:  -45,
}

var traitModifiers = modifierTable{
	"cesur": {
		model.EventSuccess:  2,
		model.EventConflict: 1,
		model.EventFailure:  1,
	},
	"yaratıcı": {
		model.EventIdea:     3,
		model.EventInternal: 1,
	},
	"analitik": {
		model.EventIdea:      2,
		model.EventFinancial: 1,
		model.EventSocial:    -1,
	},
	"sosyal": {
		model.EventSocial:   3,
		model.EventConflict: 1,
	},
	"hırslı": {
		model.EventSuccess:   2,
		model.EventFinancial: 2,
		model.EventConflict:  1,
	},
	"sakin": {
		model.EventConflict: -2,
		model.EventInternal: 2,
	},
	"meraklı": {
		model.EventIdea:     2,
		model.EventInternal: 1,
	},
	"disiplinli": {
		model.EventSuccess: 2,
		model.EventFailure: -1,
	},
}

var weaknessModifiers = modifierTable{
	"sabırsız": {
		model.EventConflict: 2,
		model.EventFailure:  2,
		model.EventSuccess:  -1,
	},
	"tembel": {
		model.EventFailure: 2,
		model.EventSuccess: -2,
	},
	"utangaç": {
		model.EventSocial:   -2,
		model.EventInternal: 2,
	},
	"kıskanç": {
		model.EventConflict: 3,
		model.EventSocial:   -1,
	},
	"dağınık": {
		model.EventFailure:   2,
		model.EventFinancial: -1,
	},
	"kararsız": {
		model.EventInternal: 2,
		model.EventIdea:     -1,
	},
	"öfkeli": {
		model.EventConflict: 3,
	},
	"mükemmeliyetçi": {
		model.EventInternal: 2,
		model.EventFailure:  1,
	},
}

var talentModifiers = modifierTable{
	"liderlik": {
		model.EventSuccess:  2,
		model.EventSocial:   1,
		model.EventConflict: 1,
	},
	"sanat": {
		model.EventIdea:     2,
		model.EventInternal: 2,
	},
	"teknoloji": {
		model.EventIdea:      2,
		model.EventFinancial: 1,
	},
	"iletişim": {
		model.EventSocial:   3,
		model.EventConflict: -1,
	},
	"müzik": {
		model.EventInternal: 2,
		model.EventSocial:   1,
	},
	"yazarlık": {
		model.EventIdea:     2,
		model.EventInternal: 1,
	},
	"spor": {
		model.EventSuccess:  1,
		model.EventInternal: 1,
	},
	"matematik": {
		model.EventIdea:      1,
		model.EventFinancial: 2,
	},
}

// Synergy grants Bonus impact on days of Type when both Traits are among a
// profile's main trait and talent.
type Synergy struct {
	Traits [2]string
	Type   model.EventType
	Bonus  int
}

// Synergies is the fixed rule set.
var Synergies = []Synergy{
	{Traits: [2]string{"cesur", "liderlik"}, Type: model.EventSuccess, Bonus: 15},
	{Traits: [2]string{"yaratıcı", "sanat"}, Type: model.EventIdea, Bonus: 20},
	{Traits: [2]string{"analitik", "teknoloji"}, Type: model.EventIdea, Bonus: 18},
	{Traits: [2]string{"sosyal", "iletişim"}, Type: model.EventSocial, Bonus: 15},
	{Traits: [2]string{"hırslı", "liderlik"}, Type: model.EventSuccess, Bonus: 20},
}

func (t modifierTable) lookup(trait string, et model.EventType) float64 {
	return t[trait][et]
}
