package mcp

import (
	"context"
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

type contextKey int

const userLoginKey contextKey = iota

// LocalLogin is the user assumed when the transport supplies no identity.
const LocalLogin = "local"

// UserFromContext extracts the user login injected by the transport layer.
func UserFromContext(ctx context.Context) string {
	if login, ok := ctx.Value(userLoginKey).(string); ok && login != "" {
		return login
	}
	return LocalLogin
}

// WithUser returns a context carrying the given user login.
func WithUser(ctx context.Context, login string) context.Context {
	return context.WithValue(ctx, userLoginKey, login)
}

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("GymFlow", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("GymFlow training program server. Browse the built-in program catalog, get a recommendation for an experience level and goal, and read the onboarding profile and settings of the authenticated user."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolListPrograms, Handler: h.listPrograms},
		server.ServerTool{Tool: toolGetProgram, Handler: h.getProgram},
		server.ServerTool{Tool: toolRecommendProgram, Handler: h.recommendProgram},
		server.ServerTool{Tool: toolGetProfile, Handler: h.getProfile},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalogResource},
		server.ServerResource{Resource: resProfile, Handler: h.profileResource},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resCatalog = mcp.NewResource(
	"gymflow://catalog",
	"Program Catalog",
	mcp.WithResourceDescription("Every built-in program template with its goal, level, weekly schedule and exercises"),
	mcp.WithMIMEType("application/json"),
)

var resProfile = mcp.NewResource(
	"gymflow://profile",
	"Onboarding Profile",
	mcp.WithResourceDescription("The committed onboarding profile and current settings of the user, or null before onboarding"),
	mcp.WithMIMEType("application/json"),
)
