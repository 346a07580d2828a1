// Package analysis runs the tagging pipeline for a track.
//
// AnalyzeTrack is linear: extract features, run the enabled rule
// classifiers, ask the configured LLM for suggestions, map everything onto
// the user's custom taxonomy, then aggregate confidence. Only extraction can
// fail a run. A failed LLM call is logged with event type
// llm_suggestions_failed and the result is returned without a description
// or suggestions.
//
// Batch fans AnalyzeTrack out over a bounded worker pool. Each track gets its
// own correlation ID and per-track failures are reported in the returned
// items rather than aborting the batch.
package analysis
