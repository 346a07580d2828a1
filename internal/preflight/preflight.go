package preflight

import (
	"context"
	"strings"

	"tagwise/internal/config"
	"tagwise/internal/services/llm"
)

// Result reports the outcome of a single preflight check.
type Result struct {
	Name     string `json:"name"`
	Passed   bool   `json:"passed"`
	Optional bool   `json:"optional,omitempty"`
	Detail   string `json:"detail"`
}

// Options carries the collaborators RunAll cannot derive from config.
type Options struct {
	// Generator is probed when an API key is configured. Nil skips the probe.
	Generator llm.TextGenerator
	// FFprobeBinary defaults to "ffprobe".
	FFprobeBinary string
}

// RunAll executes every applicable check for cfg.
func RunAll(ctx context.Context, cfg *config.Config, opts Options) []Result {
	if cfg == nil {
		return nil
	}

	var results []Result

	if cfg.API.CacheEnabled && strings.TrimSpace(cfg.Paths.CacheDir) != "" {
		results = append(results, CheckDirectoryAccess("Cache directory", cfg.Paths.CacheDir))
	}
	if strings.TrimSpace(cfg.Paths.LogDir) != "" {
		results = append(results, CheckDirectoryAccess("Log directory", cfg.Paths.LogDir))
	}

	ffprobe := strings.TrimSpace(opts.FFprobeBinary)
	if ffprobe == "" {
		ffprobe = "ffprobe"
	}
	results = append(results, CheckBinary(Requirement{
		Name:        "FFprobe",
		Command:     ffprobe,
		Description: "Reads track duration when no features sidecar exists",
		Optional:    true,
	}))

	info := llm.Info(cfg.API.Provider)
	switch {
	case !cfg.AI().HasAPIKey():
		detail := "API key missing; LLM suggestions disabled"
		if info.KeyURL != "" {
			detail += " (get one at " + info.KeyURL + ")"
		}
		results = append(results, Result{Name: info.DisplayName, Optional: true, Detail: detail})
	case opts.Generator != nil:
		results = append(results, CheckLLM(ctx, info.DisplayName, opts.Generator))
	}

	return results
}

// Failed reports whether any required check did not pass.
func Failed(results []Result) bool {
	for _, r := range results {
		if !r.Passed && !r.Optional {
			return true
		}
	}
	return false
}
