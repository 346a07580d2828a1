package main

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/spf13/cobra"

	"tagwise/internal/config"
	"tagwise/internal/llmcache"
	"tagwise/internal/logging"
	"tagwise/internal/ratelimit"
	"tagwise/internal/services/llm"
)

type commandContext struct {
	configFlag *string

	configOnce   sync.Once
	config       *config.Config
	configPath   string
	configExists bool
	configErr    error
}

func newCommandContext(configFlag *string) *commandContext {
	return &commandContext{configFlag: configFlag}
}

func (c *commandContext) ensureConfig() (*config.Config, error) {
	c.configOnce.Do(func() {
		var path string
		if c.configFlag != nil {
			path = strings.TrimSpace(*c.configFlag)
		}
		cfg, resolved, exists, err := config.Load(path)
		if err != nil {
			c.configErr = err
			return
		}
		if err := cfg.EnsureDirectories(); err != nil {
			c.configErr = err
			return
		}
		c.config = cfg
		c.configPath = resolved
		c.configExists = exists
	})
	return c.config, c.configErr
}

func (c *commandContext) logger(stderr io.Writer) (*slog.Logger, error) {
	cfg, err := c.ensureConfig()
	if err != nil {
		return nil, err
	}
	return logging.NewFromConfig(cfg, stderr)
}

// generatorStack owns the resources behind the text generator handed to the
// analyzer.
type generatorStack struct {
	generator llm.TextGenerator
	cache     *llmcache.Store
}

func (s *generatorStack) Close() error {
	if s == nil || s.cache == nil {
		return nil
	}
	return s.cache.Close()
}

// buildGenerator wires the provider client behind the rate gate and, when
// useCache is set and caching is enabled, the response cache. Cache hits
// bypass the rate gate.
func buildGenerator(cfg *config.Config, logger *slog.Logger, useCache bool) (*generatorStack, error) {
	stack := &generatorStack{}
	if !cfg.AI().HasAPIKey() {
		return stack, nil
	}

	clientCfg := llm.ConfigFromAPI(cfg.API)
	client, err := llm.New(clientCfg, llm.WithUserAgent("tagwise"))
	if err != nil {
		return nil, fmt.Errorf("build llm client: %w", err)
	}
	gen := ratelimit.PerMinute(client, cfg.API.RateLimitPerMinute, ratelimit.WithMaxWait(clientCfg.Timeout()))

	if useCache && cfg.API.CacheEnabled && cfg.API.CacheTTLSeconds > 0 {
		if path := cfg.CachePath(); path != "" {
			store, err := llmcache.Open(path)
			if err != nil {
				logging.WarnWithContext(logger, "llm response cache unavailable", "llm_cache_open_failed",
					logging.Error(err),
					logging.String("cache_path", path),
					logging.String(logging.FieldErrorHint, "delete the cache file or set api.cache_enabled = false"),
					logging.String(logging.FieldImpact, "every prompt is sent to the provider"),
				)
			} else {
				stack.cache = store
				info := llm.Info(cfg.API.Provider)
				settings := llmcache.Settings{
					Provider:    string(cfg.API.Provider),
					Model:       firstNonEmpty(cfg.API.Model, info.Model),
					Endpoint:    firstNonEmpty(cfg.API.Endpoint, info.Endpoint),
					Temperature: cfg.API.Temperature,
					MaxTokens:   cfg.API.MaxTokens,
				}
				ttl := time.Duration(cfg.API.CacheTTLSeconds) * time.Second
				gen = llmcache.NewGenerator(gen, store, settings, ttl, logger)
			}
		}
	}

	stack.generator = gen
	return stack, nil
}

func shouldSkipConfig(cmd *cobra.Command) bool {
	for c := cmd; c != nil; c = c.Parent() {
		if c.Annotations != nil && c.Annotations["skipConfigLoad"] == "true" {
			return true
		}
	}
	return false
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
