package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/gymflow/internal/catalog"
	"github.com/mark3labs/mcp-go/mcp"
)

func (h *handlers) catalogResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	programs, err := h.ds.Programs(ctx, catalog.ProgramFilter{})
	if err != nil {
		return nil, err
	}
	return jsonContents(req.Params.URI, programs)
}

func (h *handlers) profileResource(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	out, err := h.profileSummary(ctx)
	if err != nil {
		h.log.Warn("profile resource failed", "error", err)
		return nil, err
	}
	return jsonContents(req.Params.URI, out)
}

func jsonContents(uri string, v any) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
