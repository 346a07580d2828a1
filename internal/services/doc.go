// Package services defines shared utilities consumed by the analysis pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp correlation identifiers and track paths for
//     logging.
//   - Structured error markers plus the Wrap helper that let callers tell
//     configuration problems apart from transport and extraction failures.
//
// Use these helpers when wiring new collaborators so error classification and
// observability stay uniform across the pipeline.
package services
