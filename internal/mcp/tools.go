package mcp

import (
	"context"
	"errors"
	"strings"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/claude/gymflow/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// parseProgramGoal accepts a profile goal (mapped to its template tag) or a
// raw template goal tag.
func parseProgramGoal(s string) models.ProgramGoal {
	if g, err := models.ParseGoal(s); err == nil {
		return catalog.ProgramGoalFor(g)
	}
	return models.ProgramGoal(strings.ToLower(strings.TrimSpace(s)))
}

// --- Tool definitions ---

var toolListPrograms = mcp.NewTool("list_programs",
	mcp.WithDescription("List built-in program templates, optionally filtered by goal, experience level and training days per week."),
	mcp.WithString("goal", mcp.Description("Goal (strength, muscle, fat_loss, maintenance) or template goal tag (fuerza, hipertrofia, definicion, general)")),
	mcp.WithString("level", mcp.Description("Experience level"), mcp.Enum("beginner", "intermediate", "advanced")),
	mcp.WithNumber("days", mcp.Description("Training days per week (1-7)")),
)

var toolGetProgram = mcp.NewTool("get_program",
	mcp.WithDescription("Get one program template by id, including its day-by-day exercises."),
	mcp.WithString("id", mcp.Required(), mcp.Description("Template id (e.g. fullbody-principiante, fuerza-5x5)")),
)

var toolRecommendProgram = mcp.NewTool("recommend_program",
	mcp.WithDescription("Recommend the best program template for an experience level and goal. When both are omitted the user's onboarding profile is used."),
	mcp.WithString("level", mcp.Description("Experience level"), mcp.Enum("beginner", "intermediate", "advanced")),
	mcp.WithString("goal", mcp.Description("Training goal"), mcp.Enum("strength", "muscle", "fat_loss", "maintenance")),
)

var toolGetProfile = mcp.NewTool("get_profile",
	mcp.WithDescription("Get the user's onboarding profile (name, level, goal, weights, derived defaults) and current settings."),
)

// --- Tool handlers ---

func (h *handlers) listPrograms(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var f catalog.ProgramFilter
	if v := req.GetString("goal", ""); v != "" {
		f.Goal = parseProgramGoal(v)
	}
	if v := req.GetString("level", ""); v != "" {
		level, err := models.ParseLevel(v)
		if err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		f.Level = level
	}
	if days := req.GetInt("days", 0); days != 0 {
		if days < 1 || days > 7 {
			return mcp.NewToolResultError("days must be between 1 and 7"), nil
		}
		f.DaysPerWeek = days
	}

	programs, err := h.ds.Programs(ctx, f)
	if err != nil {
		h.log.Error("mcp list_programs", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{"programs": programs})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := req.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	t, err := h.ds.Program(ctx, id)
	if errors.Is(err, catalog.ErrTemplateNotFound) {
		return mcp.NewToolResultError("program not found: " + id), nil
	}
	if err != nil {
		h.log.Error("mcp get_program", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(t)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) recommendProgram(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	levelStr := req.GetString("level", "")
	goalStr := req.GetString("goal", "")

	var level models.ExperienceLevel
	var goal models.Goal
	if levelStr == "" && goalStr == "" {
		p, err := h.ds.Profile(ctx)
		if err != nil {
			h.log.Error("mcp recommend_program: profile", "error", err)
			return mcp.NewToolResultError("query failed: " + err.Error()), nil
		}
		if p == nil {
			return mcp.NewToolResultError("onboarding not completed; pass level and goal"), nil
		}
		level, goal = p.Level, p.Goal
	} else {
		var err error
		if level, err = models.ParseLevel(levelStr); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
		if goal, err = models.ParseGoal(goalStr); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	}

	t, err := h.ds.Recommend(ctx, level, goal)
	if errors.Is(err, ErrNoProgram) {
		return mcp.NewToolResultError("no program available"), nil
	}
	if err != nil {
		h.log.Error("mcp recommend_program", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(map[string]any{
		"level":   level,
		"goal":    goal,
		"program": t,
	})
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getProfile(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	out, err := h.profileSummary(ctx)
	if err != nil {
		h.log.Error("mcp get_profile", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(out)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

// profileSummary pairs the profile with settings. Profile is nil before
// onboarding completes.
func (h *handlers) profileSummary(ctx context.Context) (map[string]any, error) {
	p, err := h.ds.Profile(ctx)
	if err != nil {
		return nil, err
	}
	settings, err := h.ds.Settings(ctx)
	if err != nil {
		return nil, err
	}
	return map[string]any{
		"user":     UserFromContext(ctx),
		"profile":  p,
		"settings": settings,
	}, nil
}
