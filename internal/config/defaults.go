package config

const (
	defaultConfigPath          = "~/.config/tagwise/config.toml"
	defaultConfidenceThreshold = 0.7
	defaultMaxTagsPerTrack     = 5
	defaultProvider            = ProviderGemini
	defaultTimeoutSeconds      = 30
	defaultTemperature         = 0.7
	defaultMaxTokens           = 256
	defaultCacheTTLSeconds     = 7 * 24 * 60 * 60
	defaultRateLimitPerMinute  = 15
	defaultLogFormat           = "console"
	defaultLogLevel            = "info"
	defaultLogRetentionDays    = 14
	defaultBatchWorkers        = 4
)

// DefaultRules returns the stock classifier thresholds.
func DefaultRules() Rules {
	return Rules{
		TechnoBPMMin:         120,
		TechnoBPMMax:         135,
		TechnoCentroidMin:    1200,
		PeakTimeRMSMin:       0.75,
		MinimalRMSMax:        0.5,
		HouseBPMMin:          118,
		HouseBPMMax:          128,
		HouseZCRMax:          0.4,
		DeepHouseCentroidMax: 1000,
		ProgressiveBPMMin:    128,
		ProgressiveBPMMax:    140,
		ProgressiveOnsetMin:  0.6,
		HighEnergyRMS:        0.7,
		LowEnergyRMS:         0.4,
		HypnoticStability:    0.9,
		DanceBPMMin:          118,
		DanceBPMMax:          135,
		DanceInRangeScore:    0.9,
		DanceOutOfRangeScore: 0.5,
	}
}

// DefaultCustomTags returns the example DJ taxonomy shipped with tagwise.
func DefaultCustomTags() CustomTags {
	return CustomTags{
		Genres: []string{
			"deep-techno",
			"melodic-techno",
			"peak-time-techno",
			"minimal-techno",
			"progressive-house",
			"deep-house",
			"tech-house",
			"melodic-house",
		},
		Moods: []string{
			"dark",
			"uplifting",
			"melancholic",
			"euphoric",
			"hypnotic",
			"groovy",
		},
		Vibes: []string{
			"warehouse",
			"beach-sunset",
			"peak-time",
			"warm-up",
			"after-hours",
		},
	}
}

// Default returns a Config populated with repository defaults.
func Default() Config {
	return Config{
		Analysis: Analysis{
			Enabled:                   true,
			EnableGenreClassification: true,
			EnableMoodDetection:       true,
			EnableEnergyAnalysis:      true,
			EnableQualityControl:      true,
			ConfidenceThreshold:       defaultConfidenceThreshold,
			MultiLabel:                true,
			MaxTagsPerTrack:           defaultMaxTagsPerTrack,
		},
		API: APIConfig{
			Provider:           defaultProvider,
			TimeoutSeconds:     defaultTimeoutSeconds,
			Temperature:        defaultTemperature,
			MaxTokens:          defaultMaxTokens,
			CacheEnabled:       true,
			CacheTTLSeconds:    defaultCacheTTLSeconds,
			RateLimitPerMinute: defaultRateLimitPerMinute,
		},
		CustomTags: DefaultCustomTags(),
		Rules:      DefaultRules(),
		Paths: Paths{
			CacheDir: defaultCacheDir(),
		},
		Logging: Logging{
			Format:        defaultLogFormat,
			Level:         defaultLogLevel,
			RetentionDays: defaultLogRetentionDays,
		},
		Batch: Batch{
			Workers: defaultBatchWorkers,
		},
	}
}

// DefaultAI returns the analysis view of the repository defaults.
func DefaultAI() AIConfig {
	cfg := Default()
	return cfg.AI()
}
