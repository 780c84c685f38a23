package catalog

import "github.com/claude/gymflow/internal/models"

// goalAliases maps profile goals, including legacy tags still found in older
// stored profiles, to the program goal used by templates.
var goalAliases = map[models.Goal]models.ProgramGoal{
	models.GoalStrength:    models.ProgramGoalStrength,
	models.GoalMuscle:      models.ProgramGoalHypertrophy,
	models.GoalFatLoss:     models.ProgramGoalFatLoss,
	models.GoalMaintenance: models.ProgramGoalGeneral,
	"hipertrofia":          models.ProgramGoalHypertrophy,
	"perdida_grasa":        models.ProgramGoalFatLoss,
	"general":              models.ProgramGoalGeneral,
}

// ProgramGoalFor normalizes a profile goal. Unknown tags pass through as-is.
func ProgramGoalFor(g models.Goal) models.ProgramGoal {
	if pg, ok := goalAliases[g]; ok {
		return pg
	}
	return models.ProgramGoal(g)
}

// Recommend picks the best template for a level and goal. The first template
// matching both wins, then the first matching the goal alone, then the
// default template. It returns false only when the default is missing too.
func (c *Catalog) Recommend(level models.ExperienceLevel, goal models.Goal) (models.ProgramTemplate, bool) {
	pg := ProgramGoalFor(goal)

	for _, t := range c.templates {
		if t.Level == level && t.Goal == pg {
			return t.Clone(), true
		}
	}
	for _, t := range c.templates {
		if t.Goal == pg {
			return t.Clone(), true
		}
	}
	t, err := c.Get(c.defaultID)
	if err != nil {
		return models.ProgramTemplate{}, false
	}
	return t, true
}

// IsRecommended reports whether templateID is the recommendation for the
// given profile selections. Used to badge entries in program listings.
func (c *Catalog) IsRecommended(templateID string, level models.ExperienceLevel, goal models.Goal) bool {
	t, ok := c.Recommend(level, goal)
	return ok && t.ID == templateID
}
