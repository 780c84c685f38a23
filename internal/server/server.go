package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/claude/gymflow/internal/timer"
	"github.com/go-chi/chi/v5"
)

// Config carries the settings the HTTP layer needs from the process config.
type Config struct {
	APIKey          string
	LegacySlots     []string
	TimerResolution time.Duration
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	catalog    *catalog.Catalog
	stores     StoreProvider
	slots      SlotStore
	slotKeys   []string
	resolution time.Duration
	clock      timer.Clock
	whois      WhoIsClient
	sessions   *sessionRegistry
	log        *slog.Logger
	apiKey     string
	router     chi.Router
}

// New creates a new Server with all routes configured. slots may be nil.
func New(cat *catalog.Catalog, stores StoreProvider, slots SlotStore, cfg Config, log *slog.Logger) *Server {
	s := &Server{
		catalog:    cat,
		stores:     stores,
		slots:      slots,
		slotKeys:   cfg.LegacySlots,
		resolution: cfg.TimerResolution,
		clock:      timer.RealClock,
		sessions:   newSessionRegistry(),
		log:        log,
		apiKey:     cfg.APIKey,
		router:     chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// SetTailscale switches request identity from the local dev user to the
// tailnet peer making the request.
func (s *Server) SetTailscale(lc WhoIsClient) {
	s.whois = lc
}

// MountMCP serves an MCP streamable HTTP handler at /mcp. The handler sees
// the same request identity as the REST routes; read it with RequestUser.
func (s *Server) MountMCP(h http.Handler) {
	s.router.Handle("/mcp", h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)
	s.router.Use(s.identity)

	s.router.Get("/api/v1/me", s.handleMe)

	// Mutating endpoints (API key required)
	s.router.Group(func(r chi.Router) {
		r.Use(APIKeyAuth(s.apiKey))

		r.Post("/api/v1/intake", s.handleIntakeStart)
		r.Route("/api/v1/intake/{id}", func(r chi.Router) {
			r.Post("/advance", s.handleIntakeAdvance)
			r.Post("/retreat", s.handleIntakeRetreat)
			r.Put("/name", s.handleIntakeName)
			r.Post("/experience", s.handleIntakeExperience)
			r.Post("/goal", s.handleIntakeGoal)
			r.Put("/metrics", s.handleIntakeMetrics)
			r.Post("/complete", s.handleIntakeComplete)
		})

		r.Post("/api/v1/programs/{id}/activate", s.handleActivateProgram)
		r.Delete("/api/v1/me/programs/{id}", s.handleDeleteProgram)
		r.Put("/api/v1/legacy-slots/{key}", s.handlePutLegacySlot)
		r.Delete("/api/v1/legacy-slots/{key}", s.handleDeleteLegacySlot)
	})

	// Read endpoints (no auth, tsnet handles access)
	s.router.Get("/api/v1/intake/{id}", s.handleIntakeGet)
	s.router.Get("/api/v1/programs", s.handleListPrograms)
	s.router.Get("/api/v1/programs/recommended", s.handleRecommendedProgram)
	s.router.Get("/api/v1/programs/{id}", s.handleGetProgram)
	s.router.Get("/api/v1/me/programs", s.handleUserPrograms)
	s.router.Get("/api/v1/profile", s.handleProfile)
	s.router.Get("/api/v1/settings", s.handleSettings)
	s.router.Get("/api/v1/body-metrics", s.handleBodyMetrics)
	s.router.Get("/api/v1/badges", s.handleBadges)
	s.router.Get("/api/v1/legacy-slots/{key}", s.handleGetLegacySlot)
	s.router.Get("/api/v1/rest-timer", s.handleRestTimer)
}
