package config

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

func (c *Config) normalize() error {
	if err := c.normalizePaths(); err != nil {
		return err
	}
	if err := c.normalizeAPI(); err != nil {
		return err
	}
	c.normalizeCustomTags()
	c.normalizeLogging()
	if c.Batch.Workers <= 0 {
		c.Batch.Workers = defaultBatchWorkers
	}
	return nil
}

func (c *Config) normalizePaths() error {
	var err error
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		c.Paths.CacheDir = defaultCacheDir()
	}
	if c.Paths.CacheDir, err = expandPath(c.Paths.CacheDir); err != nil {
		return fmt.Errorf("paths.cache_dir: %w", err)
	}
	if c.Paths.LogDir, err = expandPath(strings.TrimSpace(c.Paths.LogDir)); err != nil {
		return fmt.Errorf("paths.log_dir: %w", err)
	}
	return nil
}

func (c *Config) normalizeAPI() error {
	provider, err := ParseProvider(string(c.API.Provider))
	if err != nil {
		return fmt.Errorf("api.provider: %w", err)
	}
	c.API.Provider = provider
	c.API.Endpoint = strings.TrimSpace(c.API.Endpoint)
	c.API.Model = strings.TrimSpace(c.API.Model)
	c.API.APIKey = strings.TrimSpace(c.API.APIKey)
	if c.API.APIKey == "" {
		c.API.APIKey = strings.TrimSpace(os.Getenv("TAGWISE_API_KEY"))
		if env := provider.APIKeyEnv(); c.API.APIKey == "" && env != "" {
			c.API.APIKey = strings.TrimSpace(os.Getenv(env))
		}
	}
	if c.API.TimeoutSeconds <= 0 {
		c.API.TimeoutSeconds = defaultTimeoutSeconds
	}
	if c.API.MaxTokens <= 0 {
		c.API.MaxTokens = defaultMaxTokens
	}
	if c.API.CacheTTLSeconds < 0 {
		c.API.CacheTTLSeconds = 0
	}
	if c.API.RateLimitPerMinute < 0 {
		c.API.RateLimitPerMinute = 0
	}
	return nil
}

func (c *Config) normalizeCustomTags() {
	c.CustomTags.Genres = normalizeTagList(c.CustomTags.Genres)
	c.CustomTags.Moods = normalizeTagList(c.CustomTags.Moods)
	c.CustomTags.Vibes = normalizeTagList(c.CustomTags.Vibes)
	if len(c.CustomTags.Collections) == 0 {
		return
	}
	names := make([]string, 0, len(c.CustomTags.Collections))
	for name := range c.CustomTags.Collections {
		names = append(names, name)
	}
	sort.Strings(names)
	collections := make(map[string][]string, len(names))
	for _, name := range names {
		key := strings.TrimSpace(name)
		if key == "" {
			continue
		}
		tags := normalizeTagList(c.CustomTags.Collections[name])
		if len(tags) == 0 {
			continue
		}
		collections[key] = append(collections[key], tags...)
	}
	c.CustomTags.Collections = collections
}

// normalizeTagList trims entries and drops blanks and case-insensitive
// duplicates while keeping the user's spelling of the first occurrence.
func normalizeTagList(values []string) []string {
	if len(values) == 0 {
		return nil
	}
	out := make([]string, 0, len(values))
	seen := make(map[string]struct{}, len(values))
	for _, value := range values {
		trimmed := strings.TrimSpace(value)
		if trimmed == "" {
			continue
		}
		key := strings.ToLower(trimmed)
		if _, exists := seen[key]; exists {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, trimmed)
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func (c *Config) normalizeLogging() {
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	switch c.Logging.Format {
	case "", "console":
		c.Logging.Format = "console"
	case "json":
	default:
		c.Logging.Format = "console"
	}
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	if c.Logging.Level == "" {
		c.Logging.Level = defaultLogLevel
	}
	if c.Logging.RetentionDays < 0 {
		c.Logging.RetentionDays = 0
	}
}
