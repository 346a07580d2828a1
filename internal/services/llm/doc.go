// Package llm provides the text-generation clients used for tag suggestions.
//
// TextGenerator is the capability the analysis pipeline depends on. New picks
// one implementation from the configured provider at construction time:
//
//   - GeminiClient: Google Gemini generateContent API, key in the query string.
//   - ChatClient: OpenAI-compatible chat completions (OpenRouter, Groq,
//     Together AI, OpenAI, or a custom endpoint), bearer-token auth.
//
// # Errors
//
// A missing API key (ErrMissingAPIKey) or a custom provider without an
// endpoint (ErrMissingEndpoint) fails before any network call and carries the
// services.ErrConfiguration marker. Non-2xx responses return *StatusError with
// the response body; empty or malformed payloads return ErrNoResponse. Both
// carry services.ErrTransport. Callers are expected to treat every error from
// this package as recoverable.
//
// # Timeouts
//
// Each call is bounded by Config.TimeoutSeconds (30s by default), applied to
// both the http.Client and the request context. The clients never retry.
package llm
