package commit

import (
	"encoding/json"
	"fmt"

	"github.com/claude/gymflow/internal/models"
)

// Parsed is the outcome of ParseOrDefault.
type Parsed[T any] struct {
	Value T
	// Recovered is set when raw could not be decoded and Value is the fallback.
	Recovered bool
	Err       error
}

// ParseOrDefault decodes raw as JSON into T, returning fallback when it
// cannot be decoded.
func ParseOrDefault[T any](raw []byte, fallback T) Parsed[T] {
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		return Parsed[T]{Value: fallback, Recovered: true, Err: err}
	}
	return Parsed[T]{Value: v}
}

// emptyContainer is the shape every legacy slot is coerced into.
func emptyContainer() map[string]any {
	return map[string]any{"state": map[string]any{}}
}

// mergeUser writes p into state.user of the container in raw, keeping every
// other key. Containers that are malformed or of an unrelated shape are
// replaced by an empty one first. recovered reports that replacement.
func mergeUser(raw []byte, p models.UserProfile) (out []byte, recovered bool, err error) {
	parsed := ParseOrDefault(raw, emptyContainer())
	container := parsed.Value
	if container == nil {
		container = emptyContainer()
		parsed.Recovered = true
	}

	state, ok := container["state"].(map[string]any)
	if !ok {
		state = map[string]any{}
		parsed.Recovered = true
	}

	// Round-trip so state.user is a plain JSON object like the rest of the container.
	userJSON, err := json.Marshal(p)
	if err != nil {
		return nil, parsed.Recovered, fmt.Errorf("encoding profile: %w", err)
	}
	var user map[string]any
	if err := json.Unmarshal(userJSON, &user); err != nil {
		return nil, parsed.Recovered, fmt.Errorf("decoding profile: %w", err)
	}

	state["user"] = user
	container["state"] = state

	out, err = json.Marshal(container)
	if err != nil {
		return nil, parsed.Recovered, fmt.Errorf("encoding container: %w", err)
	}
	return out, parsed.Recovered, nil
}
