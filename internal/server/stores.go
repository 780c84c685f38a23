package server

import (
	"context"
	"fmt"
	"sync"

	"github.com/claude/gymflow/internal/commit"
	"github.com/claude/gymflow/internal/models"
	"github.com/claude/gymflow/internal/slots"
	"github.com/claude/gymflow/internal/state"
	"github.com/claude/gymflow/internal/storage"
)

// Store is everything the handlers read and write for one user.
type Store interface {
	commit.ProgramStore
	Programs(ctx context.Context) ([]models.UserProgram, error)
	DeleteProgram(ctx context.Context, id string) error
	Settings(ctx context.Context) (models.Settings, error)
	BodyMetrics(ctx context.Context) ([]models.BodyMetric, error)
}

var (
	_ Store = (*state.Store)(nil)
	_ Store = (*storage.UserStore)(nil)
)

// SlotStore is the legacy slot store behind the import routes.
type SlotStore interface {
	commit.SlotStore
	Delete(ctx context.Context, key string) error
}

var _ SlotStore = (*slots.DB)(nil)

// StoreProvider hands out the store of the user behind a request.
type StoreProvider interface {
	StoreFor(ctx context.Context, u UserInfo) (Store, error)
}

// MemoryStores keeps one in-memory store per login for the process lifetime.
type MemoryStores struct {
	mu     sync.Mutex
	stores map[string]*state.Store
}

func NewMemoryStores() *MemoryStores {
	return &MemoryStores{stores: make(map[string]*state.Store)}
}

func (m *MemoryStores) StoreFor(_ context.Context, u UserInfo) (Store, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.stores[u.Login]
	if !ok {
		s = state.New()
		m.stores[u.Login] = s
	}
	return s, nil
}

// PostgresStores maps each login to a users row.
type PostgresStores struct {
	DB *storage.DB
}

func (p PostgresStores) StoreFor(ctx context.Context, u UserInfo) (Store, error) {
	id, err := p.DB.GetOrCreateUser(ctx, u.Login, u.DisplayName)
	if err != nil {
		return nil, fmt.Errorf("resolving user %s: %w", u.Login, err)
	}
	return p.DB.ForUser(id), nil
}

// slotKeysFor namespaces legacy slot keys for tailnet users so two people
// sharing a server never overwrite each other's containers.
func (s *Server) slotKeysFor(u UserInfo) []string {
	if u.Login == LocalUser.Login {
		return s.slotKeys
	}
	out := make([]string, len(s.slotKeys))
	for i, k := range s.slotKeys {
		out[i] = slotKey(u, k)
	}
	return out
}

func slotKey(u UserInfo, key string) string {
	if u.Login == LocalUser.Login {
		return key
	}
	return u.Login + "/" + key
}
