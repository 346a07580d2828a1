package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Analysis contains the global and per-feature switches for an analysis run.
type Analysis struct {
	Enabled                   bool    `toml:"enabled"`
	EnableGenreClassification bool    `toml:"genre_classification"`
	EnableMoodDetection       bool    `toml:"mood_detection"`
	EnableEnergyAnalysis      bool    `toml:"energy_analysis"`
	EnableDuplicateDetection  bool    `toml:"duplicate_detection"`
	EnableQualityControl      bool    `toml:"quality_control"`
	EnableSmartPlaylists      bool    `toml:"smart_playlists"`
	ConfidenceThreshold       float64 `toml:"confidence_threshold"`
	MultiLabel                bool    `toml:"multi_label"`
	MaxTagsPerTrack           int     `toml:"max_tags_per_track"`
}

// APIConfig contains the text-generation provider settings.
//
// CacheEnabled/CacheTTLSeconds and RateLimitPerMinute are honoured by the
// optional cache and rate gate wrappers, never by the analysis core itself.
type APIConfig struct {
	Provider           Provider `toml:"provider"`
	APIKey             string   `toml:"api_key"`
	Endpoint           string   `toml:"endpoint"`
	Model              string   `toml:"model"`
	TimeoutSeconds     int      `toml:"timeout_seconds"`
	Temperature        float64  `toml:"temperature"`
	MaxTokens          int      `toml:"max_tokens"`
	CacheEnabled       bool     `toml:"cache_enabled"`
	CacheTTLSeconds    int      `toml:"cache_ttl_seconds"`
	RateLimitPerMinute int      `toml:"rate_limit_per_minute"`
}

// CustomTags is the user-defined tag taxonomy.
type CustomTags struct {
	Genres      []string            `toml:"genres"`
	Moods       []string            `toml:"moods"`
	Vibes       []string            `toml:"vibes"`
	Collections map[string][]string `toml:"collections"`
}

// Empty reports whether no taxonomy list carries a single tag.
func (c CustomTags) Empty() bool {
	if len(c.Genres) > 0 || len(c.Moods) > 0 || len(c.Vibes) > 0 {
		return false
	}
	for _, tags := range c.Collections {
		if len(tags) > 0 {
			return false
		}
	}
	return true
}

// Rules holds the classifier thresholds. The defaults are hand-tuned and have
// not been validated against a reference corpus.
type Rules struct {
	TechnoBPMMin         float64 `toml:"techno_bpm_min"`
	TechnoBPMMax         float64 `toml:"techno_bpm_max"`
	TechnoCentroidMin    float64 `toml:"techno_centroid_min"`
	PeakTimeRMSMin       float64 `toml:"peak_time_rms_min"`
	MinimalRMSMax        float64 `toml:"minimal_rms_max"`
	HouseBPMMin          float64 `toml:"house_bpm_min"`
	HouseBPMMax          float64 `toml:"house_bpm_max"`
	HouseZCRMax          float64 `toml:"house_zcr_max"`
	DeepHouseCentroidMax float64 `toml:"deep_house_centroid_max"`
	ProgressiveBPMMin    float64 `toml:"progressive_bpm_min"`
	ProgressiveBPMMax    float64 `toml:"progressive_bpm_max"`
	ProgressiveOnsetMin  float64 `toml:"progressive_onset_min"`
	HighEnergyRMS        float64 `toml:"high_energy_rms"`
	LowEnergyRMS         float64 `toml:"low_energy_rms"`
	HypnoticStability    float64 `toml:"hypnotic_stability"`
	DanceBPMMin          float64 `toml:"dance_bpm_min"`
	DanceBPMMax          float64 `toml:"dance_bpm_max"`
	DanceInRangeScore    float64 `toml:"dance_in_range_score"`
	DanceOutOfRangeScore float64 `toml:"dance_out_of_range_score"`
}

// Paths contains directory configuration.
type Paths struct {
	CacheDir string `toml:"cache_dir"`
	LogDir   string `toml:"log_dir"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format        string `toml:"format"`
	Level         string `toml:"level"`
	RetentionDays int    `toml:"retention_days"`
}

// Batch contains configuration for multi-track runs.
type Batch struct {
	Workers int `toml:"workers"`
}

// Config encapsulates all configuration values for tagwise.
//
// Configuration sections by subsystem:
//   - Analysis: global enable flag, feature toggles, threshold, label limits
//   - API: text-generation provider, credentials, cache and rate settings
//   - CustomTags: user taxonomy (genres, moods, vibes, named collections)
//   - Rules: classifier thresholds
//   - Paths: cache and log directories
//   - Logging: log format and level
//   - Batch: worker count for multi-track analysis
type Config struct {
	Analysis   Analysis   `toml:"analysis"`
	API        APIConfig  `toml:"api"`
	CustomTags CustomTags `toml:"custom_tags"`
	Rules      Rules      `toml:"rules"`
	Paths      Paths      `toml:"paths"`
	Logging    Logging    `toml:"logging"`
	Batch      Batch      `toml:"batch"`
}

// AIConfig is the read-only view of the settings an analysis run consumes.
type AIConfig struct {
	Analysis
	API        APIConfig
	CustomTags CustomTags
	Rules      Rules
}

// AI returns the analysis settings as a value detached from the file config.
func (c *Config) AI() AIConfig {
	return AIConfig{
		Analysis:   c.Analysis,
		API:        c.API,
		CustomTags: c.CustomTags.clone(),
		Rules:      c.Rules,
	}
}

// HasAPIKey reports whether a provider credential is configured.
func (c AIConfig) HasAPIKey() bool {
	return strings.TrimSpace(c.API.APIKey) != ""
}

func (c CustomTags) clone() CustomTags {
	out := CustomTags{
		Genres: append([]string(nil), c.Genres...),
		Moods:  append([]string(nil), c.Moods...),
		Vibes:  append([]string(nil), c.Vibes...),
	}
	if len(c.Collections) > 0 {
		out.Collections = make(map[string][]string, len(c.Collections))
		for name, tags := range c.Collections {
			out.Collections[name] = append([]string(nil), tags...)
		}
	}
	return out
}

// DefaultConfigPath returns the absolute path to the default configuration file location.
func DefaultConfigPath() (string, error) {
	return expandPath(defaultConfigPath)
}

// Load locates, parses, and validates a configuration file. The returned config has all
// path fields expanded and normalized.
func Load(path string) (*Config, string, bool, error) {
	cfg := Default()

	resolvedPath, exists, err := resolveConfigPath(path)
	if err != nil {
		return nil, "", false, err
	}

	if exists {
		file, err := os.Open(resolvedPath)
		if err != nil {
			return nil, "", false, fmt.Errorf("open config: %w", err)
		}
		defer file.Close()

		decoder := toml.NewDecoder(file)
		if err := decoder.Decode(&cfg); err != nil {
			return nil, "", false, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := cfg.normalize(); err != nil {
		return nil, "", false, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, "", false, err
	}

	return &cfg, resolvedPath, exists, nil
}

func resolveConfigPath(path string) (string, bool, error) {
	if path != "" {
		expanded, err := expandPath(path)
		if err != nil {
			return "", false, err
		}
		_, err = os.Stat(expanded)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return expanded, false, nil
			}
			return "", false, fmt.Errorf("stat config: %w", err)
		}
		return expanded, true, nil
	}

	defaultPath, err := expandPath(defaultConfigPath)
	if err != nil {
		return "", false, err
	}

	projectPath, err := filepath.Abs("tagwise.toml")
	if err != nil {
		return "", false, err
	}

	if info, err := os.Stat(defaultPath); err == nil && !info.IsDir() {
		return defaultPath, true, nil
	}
	if info, err := os.Stat(projectPath); err == nil && !info.IsDir() {
		return projectPath, true, nil
	}

	return defaultPath, false, nil
}

// EnsureDirectories creates the cache directory when response caching is on
// and the log directory when file logging is configured.
func (c *Config) EnsureDirectories() error {
	var dirs []string
	if c.API.CacheEnabled && strings.TrimSpace(c.Paths.CacheDir) != "" {
		dirs = append(dirs, c.Paths.CacheDir)
	}
	if strings.TrimSpace(c.Paths.LogDir) != "" {
		dirs = append(dirs, c.Paths.LogDir)
	}
	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %q: %w", dir, err)
		}
	}
	return nil
}

// CachePath returns the location of the LLM response cache database.
func (c *Config) CachePath() string {
	if strings.TrimSpace(c.Paths.CacheDir) == "" {
		return ""
	}
	return filepath.Join(c.Paths.CacheDir, "responses.db")
}

func expandPath(pathValue string) (string, error) {
	if pathValue == "" {
		return pathValue, nil
	}
	if strings.HasPrefix(pathValue, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		if pathValue == "~" {
			pathValue = home
		} else if len(pathValue) > 1 && (pathValue[1] == '/' || pathValue[1] == '\\') {
			pathValue = filepath.Join(home, pathValue[2:])
		}
	}
	cleaned := filepath.Clean(pathValue)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// ExpandPath exposes the repository path expansion rules for other packages.
func ExpandPath(pathValue string) (string, error) {
	return expandPath(pathValue)
}

func defaultCacheDir() string {
	if base, ok := os.LookupEnv("XDG_CACHE_HOME"); ok && strings.TrimSpace(base) != "" {
		return filepath.Join(base, "tagwise")
	}
	return "~/.cache/tagwise"
}

// CreateSample writes a sample configuration file to the specified location.
func CreateSample(path string) error {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}
