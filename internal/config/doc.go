// Package config loads, normalizes, and validates tagwise configuration data.
//
// It supplies repository defaults (including the hand-tuned classifier rule
// thresholds), expands user paths, reads TOML files, and honours environment
// fallbacks such as TAGWISE_API_KEY or the provider-specific key variables.
// The AIConfig value returned by Config.AI is the read-only input to an
// analysis run; nothing in the pipeline mutates it.
//
// Always obtain settings through this package so downstream code receives
// canonical provider names, sanitized taxonomy lists, and clear validation
// errors.
package config
