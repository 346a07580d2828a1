package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate ensures the configuration is usable.
func (c *Config) Validate() error {
	if err := c.validateAnalysis(); err != nil {
		return err
	}
	if err := c.validateAPI(); err != nil {
		return err
	}
	if err := c.validateRules(); err != nil {
		return err
	}
	return nil
}

func (c *Config) validateAnalysis() error {
	if c.Analysis.ConfidenceThreshold < 0 || c.Analysis.ConfidenceThreshold > 1 {
		return errors.New("analysis.confidence_threshold must be between 0 and 1")
	}
	if c.Analysis.MaxTagsPerTrack < 0 {
		return errors.New("analysis.max_tags_per_track must be >= 0")
	}
	return nil
}

func (c *Config) validateAPI() error {
	if c.API.Temperature < 0 || c.API.Temperature > 2 {
		return errors.New("api.temperature must be between 0 and 2")
	}
	// A custom provider without an endpoint is only fatal to the LLM step, so
	// it is reported at call time rather than here; a malformed one is not.
	if endpoint := strings.TrimSpace(c.API.Endpoint); endpoint != "" {
		if !strings.HasPrefix(endpoint, "http://") && !strings.HasPrefix(endpoint, "https://") {
			return fmt.Errorf("api.endpoint must be an http(s) URL, got %q", endpoint)
		}
	}
	return nil
}

func (c *Config) validateRules() error {
	r := c.Rules
	ranges := []struct {
		key      string
		min, max float64
	}{
		{"rules.techno_bpm", r.TechnoBPMMin, r.TechnoBPMMax},
		{"rules.house_bpm", r.HouseBPMMin, r.HouseBPMMax},
		{"rules.progressive_bpm", r.ProgressiveBPMMin, r.ProgressiveBPMMax},
		{"rules.dance_bpm", r.DanceBPMMin, r.DanceBPMMax},
	}
	for _, rng := range ranges {
		if rng.min <= 0 || rng.max <= 0 {
			return fmt.Errorf("%s_min and %s_max must be positive", rng.key, rng.key)
		}
		if rng.min > rng.max {
			return fmt.Errorf("%s_min must not exceed %s_max", rng.key, rng.key)
		}
	}
	if r.LowEnergyRMS > r.HighEnergyRMS {
		return errors.New("rules.low_energy_rms must not exceed rules.high_energy_rms")
	}
	for key, score := range map[string]float64{
		"rules.dance_in_range_score":     r.DanceInRangeScore,
		"rules.dance_out_of_range_score": r.DanceOutOfRangeScore,
	} {
		if score < 0 || score > 1 {
			return fmt.Errorf("%s must be between 0 and 1", key)
		}
	}
	return nil
}
