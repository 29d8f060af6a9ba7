package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
)

func TestDefaultCoversEveryIntensity(t *testing.T) {
	c := Default()
	require.NoError(t, c.Validate())
	assert.NotEmpty(t, c.Version)

	for _, et := range model.EventTypes {
		for i := MinIntensity; i <= MaxIntensity; i++ {
			matches := c.Match(et, i)
			require.NotEmpty(t, matches, "%s intensity %d", et, i)
			for _, tpl := range matches {
				assert.Equal(t, et, tpl.Type)
				assert.True(t, tpl.Contains(i))
			}
		}
	}
}

func TestDefaultCounts(t *testing.T) {
	c := Default()
	counts := c.CountByType()
	total := 0
	for _, et := range model.EventTypes {
		assert.Positive(t, counts[et], "%s", et)
		total += counts[et]
	}
	assert.Equal(t, c.Len(), total)
	assert.Len(t, c.Templates(), c.Len())
}

func TestMatchKeepsCatalogOrder(t *testing.T) {
	c := New("test", []Template{
		{ID: "a", Type: model.EventIdea, IntensityMin: 1, IntensityMax: 10, Title: "A", Description: "a"},
		{ID: "b", Type: model.EventIdea, IntensityMin: 3, IntensityMax: 5, Title: "B", Description: "b"},
		{ID: "c", Type: model.EventSocial, IntensityMin: 1, IntensityMax: 10, Title: "C", Description: "c"},
	})
	got := c.Match(model.EventIdea, 4)
	require.Len(t, got, 2)
	assert.Equal(t, "a", got[0].ID)
	assert.Equal(t, "b", got[1].ID)
	assert.Len(t, c.Match(model.EventIdea, 6), 1)
}

func fullCatalog() []Template {
	var out []Template
	for _, et := range model.EventTypes {
		out = append(out, Template{
			ID: string(et), Type: et, IntensityMin: 1, IntensityMax: 10, Title: "t", Description: "d",
		})
	}
	return out
}

func TestValidateCoverageGap(t *testing.T) {
	templates := fullCatalog()
	templates[2].IntensityMax = 9
	err := New("gap", templates).Validate()
	require.ErrorIs(t, err, ErrCoverageGap)
	assert.Contains(t, err.Error(), "SOCIAL intensity 10")
}

func TestValidateTemplates(t *testing.T) {
	cases := map[string]func(*Template){
		"missing id":    func(tpl *Template) { tpl.ID = "" },
		"unknown type":  func(tpl *Template) { tpl.Type = "DREAM" },
		"range":         func(tpl *Template) { tpl.IntensityMin, tpl.IntensityMax = 6, 4 },
		"out of bounds": func(tpl *Template) { tpl.IntensityMax = 11 },
		"no title":      func(tpl *Template) { tpl.Title = "" },
	}
	for name, mutate := range cases {
		t.Run(name, func(t *testing.T) {
			templates := fullCatalog()
			mutate(&templates[0])
			err := New("bad", templates).Validate()
			require.Error(t, err)
			assert.NotErrorIs(t, err, ErrCoverageGap)
		})
	}

	dup := append(fullCatalog(), fullCatalog()[0])
	assert.Error(t, New("dup", dup).Validate())
}

func TestParse(t *testing.T) {
	data := []byte(`
version: "t1"
templates:
  - id: only-idea
    type: IDEA
    intensity_min: 1
    intensity_max: 10
    title: Fikir
    description: "{characterName} bir fikir buldu"
    base_impact: 40
    tags: [fikir]
`)
	_, err := Parse(data)
	assert.ErrorIs(t, err, ErrCoverageGap)

	_, err = Parse([]byte("templates: [oops"))
	assert.Error(t, err)

	c, err := Parse(defaultData)
	require.NoError(t, err)
	assert.Equal(t, Default().Len(), c.Len())
}
