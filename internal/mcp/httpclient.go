package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/claude/gymflow/internal/models"
)

// HTTPClient implements DataSource by calling the gymflow REST API.
// Used for remote MCP mode where the binary runs locally (stdio) but
// the state lives on the server (accessed over Tailscale).
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// Compile-time check: HTTPClient satisfies DataSource.
var _ DataSource = (*HTTPClient)(nil)

// errNotFound marks a 404 from the API.
var errNotFound = errors.New("not found")

// NewHTTPClient creates an HTTPClient targeting the given base URL.
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *HTTPClient) get(ctx context.Context, path string, params url.Values, v any) error {
	u := c.baseURL + path
	if len(params) > 0 {
		u += "?" + params.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return fmt.Errorf("httpclient: create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("httpclient: %s: %w", path, err)
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("httpclient: read body: %w", err)
	}

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return fmt.Errorf("httpclient: %s: %w", path, errNotFound)
	case resp.StatusCode != http.StatusOK:
		return fmt.Errorf("httpclient: %s returned %d: %s", path, resp.StatusCode, body)
	}

	if err := json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("httpclient: decode %s: %w", path, err)
	}
	return nil
}

// filterParams encodes a filter the way the programs endpoint reads it.
func filterParams(f catalog.ProgramFilter) url.Values {
	v := url.Values{}
	if f.Goal != "" {
		v.Set("goal", string(f.Goal))
	}
	if f.Level != "" {
		v.Set("level", string(f.Level))
	}
	if f.DaysPerWeek != 0 {
		v.Set("days", strconv.Itoa(f.DaysPerWeek))
	}
	return v
}

func (c *HTTPClient) Programs(ctx context.Context, f catalog.ProgramFilter) ([]models.ProgramTemplate, error) {
	var out []models.ProgramTemplate
	if err := c.get(ctx, "/api/v1/programs", filterParams(f), &out); err != nil {
		return nil, err
	}
	return out, nil
}

func (c *HTTPClient) Program(ctx context.Context, id string) (models.ProgramTemplate, error) {
	var out models.ProgramTemplate
	err := c.get(ctx, "/api/v1/programs/"+url.PathEscape(id), nil, &out)
	if errors.Is(err, errNotFound) {
		return models.ProgramTemplate{}, catalog.ErrTemplateNotFound
	}
	return out, err
}

func (c *HTTPClient) Recommend(ctx context.Context, level models.ExperienceLevel, goal models.Goal) (models.ProgramTemplate, error) {
	params := url.Values{}
	params.Set("level", string(level))
	params.Set("goal", string(goal))

	var out models.ProgramTemplate
	err := c.get(ctx, "/api/v1/programs/recommended", params, &out)
	if errors.Is(err, errNotFound) {
		return models.ProgramTemplate{}, ErrNoProgram
	}
	return out, err
}

func (c *HTTPClient) Profile(ctx context.Context) (*models.UserProfile, error) {
	var out models.UserProfile
	err := c.get(ctx, "/api/v1/profile", nil, &out)
	if errors.Is(err, errNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (c *HTTPClient) Settings(ctx context.Context) (models.Settings, error) {
	var out models.Settings
	if err := c.get(ctx, "/api/v1/settings", nil, &out); err != nil {
		return models.Settings{}, err
	}
	return out, nil
}
