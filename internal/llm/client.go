// Package llm provides the LLM-backed itinerary generator and the provider
// clients behind it.
package llm

import (
	"context"
	"strings"
)

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Client defines the interface for LLM providers.
type Client interface {
	// Chat sends messages to the LLM and returns the response.
	Chat(ctx context.Context, messages []Message) (string, error)

	// ChatJSON sends messages and parses the response as JSON into the
	// provided type.
	ChatJSON(ctx context.Context, messages []Message, result any) error
}

// extractJSON strips an optional markdown code fence from a model response
// and returns the JSON body.
func extractJSON(s string) string {
	for _, fence := range []string{"```json", "```"} {
		idx := strings.Index(s, fence)
		if idx == -1 {
			continue
		}
		body := s[idx+len(fence):]
		if end := strings.Index(body, "```"); end != -1 {
			return strings.TrimSpace(body[:end])
		}
	}
	return strings.TrimSpace(s)
}
