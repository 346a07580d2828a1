package llmcache

import (
	"context"
	"log/slog"
	"time"

	"tagwise/internal/logging"
	"tagwise/internal/services/llm"
)

// Generator serves cached responses and records fresh ones.
type Generator struct {
	next     llm.TextGenerator
	store    *Store
	settings Settings
	ttl      time.Duration
	logger   *slog.Logger
}

// NewGenerator wraps next with store. A nil store or a non-positive ttl
// returns next unchanged.
func NewGenerator(next llm.TextGenerator, store *Store, settings Settings, ttl time.Duration, logger *slog.Logger) llm.TextGenerator {
	if next == nil || store == nil || ttl <= 0 {
		return next
	}
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Generator{
		next:     next,
		store:    store,
		settings: settings,
		ttl:      ttl,
		logger:   logging.NewComponentLogger(logger, "llmcache"),
	}
}

// Generate implements llm.TextGenerator.
func (g *Generator) Generate(ctx context.Context, prompt string) (string, error) {
	key := Key(g.settings, prompt)
	logger := logging.WithContext(ctx, g.logger)

	entry, ok, err := g.store.Get(ctx, key)
	switch {
	case err != nil:
		logging.WarnWithContext(logger, "llm cache lookup failed", "llm_cache_lookup_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the cache database under paths.cache_dir"),
			logging.String(logging.FieldImpact, "request sent to provider"),
		)
	case ok:
		logger.Debug("llm cache hit", logging.String("cache_key", key), logging.String("provider", g.settings.Provider))
		return entry.Response, nil
	}

	response, err := g.next.Generate(ctx, prompt)
	if err != nil {
		return "", err
	}
	if err := g.store.Put(ctx, key, g.settings.Provider, g.settings.Model, response, g.ttl); err != nil {
		logging.WarnWithContext(logger, "llm cache write failed", "llm_cache_write_failed",
			logging.Error(err),
			logging.String(logging.FieldErrorHint, "check the cache database under paths.cache_dir"),
			logging.String(logging.FieldImpact, "response will not be reused"),
		)
	}
	return response, nil
}
