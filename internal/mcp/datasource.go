package mcp

import (
	"context"
	"errors"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/claude/gymflow/internal/models"
)

// ErrNoProgram is returned when no template can be recommended.
var ErrNoProgram = errors.New("no program available")

// DataSource abstracts the data layer for MCP tools. Both Local (in-process)
// and HTTPClient (remote via REST API) satisfy this interface.
type DataSource interface {
	Programs(ctx context.Context, f catalog.ProgramFilter) ([]models.ProgramTemplate, error)
	Program(ctx context.Context, id string) (models.ProgramTemplate, error)
	Recommend(ctx context.Context, level models.ExperienceLevel, goal models.Goal) (models.ProgramTemplate, error)
	// Profile returns nil before onboarding completes.
	Profile(ctx context.Context) (*models.UserProfile, error)
	Settings(ctx context.Context) (models.Settings, error)
}

// ProfileReader is the part of a user store the MCP tools read.
type ProfileReader interface {
	User(ctx context.Context) (*models.UserProfile, error)
	Settings(ctx context.Context) (models.Settings, error)
}

// Local serves tools from the catalog and the store of the user in ctx.
type Local struct {
	Catalog *catalog.Catalog
	// Profiles resolves the store of the user returned by UserFromContext.
	Profiles func(ctx context.Context) (ProfileReader, error)
}

// Compile-time check: Local satisfies DataSource.
var _ DataSource = (*Local)(nil)

func (l *Local) Programs(_ context.Context, f catalog.ProgramFilter) ([]models.ProgramTemplate, error) {
	return l.Catalog.Filter(f), nil
}

func (l *Local) Program(_ context.Context, id string) (models.ProgramTemplate, error) {
	return l.Catalog.Get(id)
}

func (l *Local) Recommend(_ context.Context, level models.ExperienceLevel, goal models.Goal) (models.ProgramTemplate, error) {
	t, ok := l.Catalog.Recommend(level, goal)
	if !ok {
		return models.ProgramTemplate{}, ErrNoProgram
	}
	return t, nil
}

func (l *Local) Profile(ctx context.Context) (*models.UserProfile, error) {
	store, err := l.Profiles(ctx)
	if err != nil {
		return nil, err
	}
	return store.User(ctx)
}

func (l *Local) Settings(ctx context.Context) (models.Settings, error) {
	store, err := l.Profiles(ctx)
	if err != nil {
		return models.Settings{}, err
	}
	return store.Settings(ctx)
}
