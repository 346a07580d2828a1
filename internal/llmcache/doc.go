// Package llmcache persists provider responses in SQLite so repeated prompts
// skip the network.
//
// Entries are keyed by a SHA-256 of provider, model and prompt and expire
// after the configured TTL. Generator wraps any llm.TextGenerator; lookups and
// writes that fail are logged and fall through to the wrapped generator, so a
// broken cache never fails an analysis.
package llmcache
