// Package catalog holds the narrative templates events are filled from.
package catalog

import (
	_ "embed"
	"errors"
	"fmt"
	"sync"

	"gopkg.in/yaml.v3"

	"github.com/kaenlabs/parallel-self-simulator/internal/model"
)

//go:embed templates.yaml
var defaultData []byte

// Intensity bounds every template range must sit within.
const (
	MinIntensity = 1
	MaxIntensity = 10
)

// ErrCoverageGap means some (type, intensity) pair has no template.
var ErrCoverageGap = errors.New("template coverage gap")

// Template is one narrative template.
type Template struct {
	ID           string          `yaml:"id" json:"id"`
	Type         model.EventType `yaml:"type" json:"type"`
	IntensityMin int             `yaml:"intensity_min" json:"intensity_min"`
	IntensityMax int             `yaml:"intensity_max" json:"intensity_max"`
	Title        string          `yaml:"title" json:"title"`
	Description  string          `yaml:"description" json:"description"`
	BaseImpact   int             `yaml:"base_impact" json:"base_impact"`
	Tags         []string        `yaml:"tags" json:"tags"`
}

// Contains reports whether intensity falls in the template's range.
func (t Template) Contains(intensity int) bool {
	return intensity >= t.IntensityMin && intensity <= t.IntensityMax
}

// Catalog is a read-only, validated template table.
type Catalog struct {
	Version   string
	templates []Template
}

type document struct {
	Version   string     `yaml:"version"`
	Templates []Template `yaml:"templates"`
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	c := New(doc.Version, doc.Templates)
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// New builds a catalog from templates without validating it.
func New(version string, templates []Template) *Catalog {
	return &Catalog{Version: version, templates: append([]Template(nil), templates...)}
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog, parsed once per process. An invalid
// embedded catalog is a build defect and panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		c, err := Parse(defaultData)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded templates: %v", err))
		}
		defaultCatalog = c
	})
	return defaultCatalog
}

// Validate checks every template and the coverage invariant: for each event
// type, every intensity 1..10 is matched by at least one template.
func (c *Catalog) Validate() error {
	seen := make(map[string]bool, len(c.templates))
	for i, t := range c.templates {
		switch {
		case t.ID == "":
			return fmt.Errorf("template %d: missing id", i)
		case seen[t.ID]:
			return fmt.Errorf("template %s: duplicate id", t.ID)
		case !t.Type.Valid():
			return fmt.Errorf("template %s: unknown event type %q", t.ID, t.Type)
		case t.IntensityMin < MinIntensity || t.IntensityMax > MaxIntensity || t.IntensityMin > t.IntensityMax:
			return fmt.Errorf("template %s: invalid intensity range [%d,%d]", t.ID, t.IntensityMin, t.IntensityMax)
		case t.Title == "" || t.Description == "":
			return fmt.Errorf("template %s: title and description are required", t.ID)
		}
		seen[t.ID] = true
	}

	for _, et := range model.EventTypes {
		for i := MinIntensity; i <= MaxIntensity; i++ {
			if len(c.Match(et, i)) == 0 {
				return fmt.Errorf("%w: %s intensity %d", ErrCoverageGap, et, i)
			}
		}
	}
	return nil
}

// Match returns the templates of type t whose range contains intensity, in
// catalog order.
func (c *Catalog) Match(t model.EventType, intensity int) []Template {
	var out []Template
	for _, tpl := range c.templates {
		if tpl.Type == t && tpl.Contains(intensity) {
			out = append(out, tpl)
		}
	}
	return out
}

// Templates returns a copy of every template.
func (c *Catalog) Templates() []Template {
	return append([]Template(nil), c.templates...)
}

// Len is the number of templates.
func (c *Catalog) Len() int { return len(c.templates) }

// CountByType counts templates per event type.
func (c *Catalog) CountByType() map[model.EventType]int {
	counts := make(map[model.EventType]int, len(model.EventTypes))
	for _, t := range c.templates {
		counts[t.Type]++
	}
	return counts
}
