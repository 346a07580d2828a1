// Package taxonomy reconciles rule-based tags and free-form suggestions
// against the user's custom tag collections.
//
// Matching is case-insensitive using Unicode case folding. Vibes are treated
// as one more named collection.
package taxonomy
