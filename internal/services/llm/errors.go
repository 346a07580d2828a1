package llm

import (
	"fmt"
	"strings"

	"tagwise/internal/services"
)

var (
	// ErrMissingAPIKey is returned before any request when no key is configured.
	ErrMissingAPIKey = services.Wrap(services.ErrConfiguration, "llm", "generate", "api key required", nil)
	// ErrMissingEndpoint is returned when the custom provider has no endpoint.
	ErrMissingEndpoint = services.Wrap(services.ErrConfiguration, "llm", "generate", "endpoint required for custom provider", nil)
	// ErrNoResponse is returned when a 2xx payload carries no generated text.
	ErrNoResponse = services.Wrap(services.ErrTransport, "llm", "decode", "no response", nil)
)

// StatusError reports a non-2xx provider response.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("llm request: %s: http %d: %s", e.Provider, e.StatusCode, strings.TrimSpace(e.Body))
}

// Unwrap exposes the transport marker.
func (e *StatusError) Unwrap() error {
	return services.ErrTransport
}

func noResponse(provider, detail string) error {
	return fmt.Errorf("%w: %s: %s", ErrNoResponse, provider, detail)
}

func summarizePayloadSnippet(content string) string {
	trimmed := strings.TrimSpace(content)
	if trimmed == "" {
		return "<empty>"
	}
	clean := strings.Join(strings.Fields(trimmed), " ")
	const limit = 160
	runes := []rune(clean)
	if len(runes) > limit {
		clean = string(runes[:limit]) + "..."
	}
	return clean
}
