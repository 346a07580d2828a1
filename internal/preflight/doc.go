// Package preflight provides readiness checks for the paths, binaries and
// provider that tagwise depends on.
//
// The CLI "tagwise check" command runs RunAll and renders the results. Each
// check is gated by its config toggle: the cache directory is only checked
// when response caching is on, and the provider only when an API key is set.
// Optional checks (ffprobe) never fail the run.
package preflight
