package lesson

import (
	"io"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// DefaultFallbackCategory receives lessons a plan does not mention.
const DefaultFallbackCategory = "其他 (Others)"

type (
	// Category is one bucket of a Plan, its lessons in display order.
	Category struct {
		Name    string   `yaml:"name"`
		Lessons []string `yaml:"lessons"`
	}

	// Plan describes the course layout: ordered categories, where inserts go,
	// and how titles are numbered.
	Plan struct {
		Categories []Category  `yaml:"categories"`
		Fallback   string      `yaml:"fallback"`
		Sentinel   string      `yaml:"sentinel"`
		Titles     TitleScheme `yaml:"titles"`
	}
)

// LoadPlan decodes a YAML plan and fills unset parts with defaults.
func LoadPlan(r io.Reader) (Plan, error) {
	var p Plan
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&p); err != nil {
		return Plan{}, errors.Wrap(err, "decoding plan")
	}
	if p.Fallback == "" {
		p.Fallback = DefaultFallbackCategory
	}
	if p.Sentinel == "" {
		p.Sentinel = DefaultSentinel
	}
	if len(p.Titles.Rules) == 0 && p.Titles.Default == "" {
		p.Titles = DefaultTitleScheme
	}
	if err := p.Validate(); err != nil {
		return Plan{}, err
	}
	return p, nil
}

// Validate checks that category names are set and that no lesson id is planned twice.
func (p Plan) Validate() error {
	where := make(map[string]string)
	names := make(map[string]bool)
	for i, c := range p.Categories {
		if c.Name == "" {
			return errors.Errorf("plan: category %d has no name", i)
		}
		if names[c.Name] {
			return errors.Errorf("plan: category %q listed twice", c.Name)
		}
		names[c.Name] = true
		for _, id := range c.Lessons {
			if prev, dup := where[id]; dup {
				return errors.Errorf("plan: lesson %q listed in %q and %q", id, prev, c.Name)
			}
			where[id] = c.Name
		}
	}
	return errors.Wrap(p.Titles.Validate(), "plan")
}

// CategoryOf returns the planned category for id.
func (p Plan) CategoryOf(id string) (string, bool) {
	for _, c := range p.Categories {
		for _, lid := range c.Lessons {
			if lid == id {
				return c.Name, true
			}
		}
	}
	return "", false
}
