package classify

import (
	"strings"

	"tagwise/internal/config"
	"tagwise/internal/features"
)

const (
	confDark        = 0.75
	confMelancholic = 0.70
	confUplifting   = 0.72
	confEuphoric    = 0.68
	confEnergetic   = 0.85
	confDriving     = 0.80
	confChill       = 0.78
	confAtmospheric = 0.75
	confHypnotic    = 0.80
)

// MoodClassifier applies the key-mode, energy, and tempo-stability rules.
// The rule groups are additive.
type MoodClassifier struct {
	rules     Rules
	threshold float64
}

// NewMoodClassifier builds a classifier from the analysis settings.
func NewMoodClassifier(cfg config.AIConfig) *MoodClassifier {
	return &MoodClassifier{rules: cfg.Rules, threshold: cfg.ConfidenceThreshold}
}

// Classify returns the moods whose rules fire, filtered by threshold.
func (c *MoodClassifier) Classify(rec features.Record) []Tag {
	r := c.rules
	var moods []Tag

	if key, ok := rec.KeyValue(); ok {
		if IsMinorKey(key) {
			moods = append(moods, NewTag("dark", confDark), NewTag("melancholic", confMelancholic))
		} else {
			moods = append(moods, NewTag("uplifting", confUplifting), NewTag("euphoric", confEuphoric))
		}
	}

	switch {
	case rec.RMSEnergy > r.HighEnergyRMS:
		moods = append(moods, NewTag("energetic", confEnergetic), NewTag("driving", confDriving))
	case rec.RMSEnergy < r.LowEnergyRMS:
		moods = append(moods, NewTag("chill", confChill), NewTag("atmospheric", confAtmospheric))
	}

	if rec.TempoStability > r.HypnoticStability {
		moods = append(moods, NewTag("hypnotic", confHypnotic))
	}

	return FilterByThreshold(moods, c.threshold)
}

// IsMinorKey reports whether key uses a minor-mode marker ("Am", "F#m",
// "A minor"). The "m" suffix is case-sensitive so "CM" stays major, and
// spellings containing "maj" in any case are major.
func IsMinorKey(key string) bool {
	folded := strings.ToLower(key)
	if strings.Contains(folded, "min") {
		return true
	}
	return strings.Contains(key, "m") && !strings.Contains(folded, "maj")
}
