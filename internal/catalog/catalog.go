// Package catalog holds the built-in workout program templates and the
// goal and experience lookup tables used to personalize a profile.
package catalog

import (
	"errors"

	"github.com/claude/gymflow/internal/models"
)

// ErrTemplateNotFound is returned when a template id is not in the catalog.
var ErrTemplateNotFound = errors.New("program template not found")

// Catalog is a read-only, ordered set of program templates. Every accessor
// returns deep copies so callers can never change the stored entries.
type Catalog struct {
	templates []models.ProgramTemplate
	defaultID string
}

// New builds a catalog from templates, keeping their order. defaultID names
// the fallback template for Recommend; it need not exist.
func New(templates []models.ProgramTemplate, defaultID string) *Catalog {
	owned := make([]models.ProgramTemplate, len(templates))
	for i, t := range templates {
		owned[i] = t.Clone()
	}
	return &Catalog{templates: owned, defaultID: defaultID}
}

// Builtin returns the catalog shipped with the application.
func Builtin() *Catalog {
	return New(presets(), DefaultTemplateID)
}

// Len returns the number of templates.
func (c *Catalog) Len() int { return len(c.templates) }

// Templates returns every template in catalog order.
func (c *Catalog) Templates() []models.ProgramTemplate {
	out := make([]models.ProgramTemplate, len(c.templates))
	for i, t := range c.templates {
		out[i] = t.Clone()
	}
	return out
}

// Get returns the template with the given id.
func (c *Catalog) Get(id string) (models.ProgramTemplate, error) {
	for _, t := range c.templates {
		if t.ID == id {
			return t.Clone(), nil
		}
	}
	return models.ProgramTemplate{}, ErrTemplateNotFound
}

// ProgramFilter narrows the catalog. Zero-valued fields are ignored.
type ProgramFilter struct {
	Goal        models.ProgramGoal
	Level       models.ExperienceLevel
	DaysPerWeek int
}

// Filter returns the templates matching every set field of f, in catalog
// order. An empty result is not an error.
func (c *Catalog) Filter(f ProgramFilter) []models.ProgramTemplate {
	out := []models.ProgramTemplate{}
	for _, t := range c.templates {
		if f.Goal != "" && t.Goal != f.Goal {
			continue
		}
		if f.Level != "" && t.Level != f.Level {
			continue
		}
		if f.DaysPerWeek != 0 && t.DaysPerWeek != f.DaysPerWeek {
			continue
		}
		out = append(out, t.Clone())
	}
	return out
}
