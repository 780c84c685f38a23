package catalog

import (
	"time"

	"github.com/claude/gymflow/internal/models"
	"github.com/google/uuid"
)

// Activate copies t into a new user program with a fresh id. t is not
// modified and the result shares no slices with it, so activating the same
// template twice yields two independent programs.
func Activate(t models.ProgramTemplate, now time.Time) models.UserProgram {
	p := models.UserProgram{
		ProgramTemplate: t.Clone(),
		PresetID:        t.ID,
		IsPreset:        false,
		CreatedAt:       now,
	}
	p.ID = uuid.NewString()
	return p
}
