package classify

import (
	"tagwise/internal/config"
	"tagwise/internal/features"
)

const (
	confTechno      = 0.85
	confPeakTime    = 0.80
	confMinimal     = 0.75
	confHouse       = 0.82
	confDeepHouse   = 0.78
	confProgressive = 0.80
)

// GenreClassifier applies BPM-gated genre rules. Rules are not mutually
// exclusive, so several genres may fire for one track.
type GenreClassifier struct {
	rules     Rules
	threshold float64
}

// NewGenreClassifier builds a classifier from the analysis settings.
func NewGenreClassifier(cfg config.AIConfig) *GenreClassifier {
	return &GenreClassifier{rules: cfg.Rules, threshold: cfg.ConfidenceThreshold}
}

// Classify returns the genres whose rules fire, filtered by threshold. An
// unknown BPM fires nothing.
func (c *GenreClassifier) Classify(rec features.Record) []Tag {
	bpm, ok := rec.BPMValue()
	if !ok {
		return []Tag{}
	}
	r := c.rules
	var genres []Tag

	if inRange(bpm, r.TechnoBPMMin, r.TechnoBPMMax) && rec.SpectralCentroid > r.TechnoCentroidMin {
		genres = append(genres, NewTag("techno", confTechno))
		switch {
		case rec.RMSEnergy > r.PeakTimeRMSMin:
			genres = append(genres, NewTag("peak-time-techno", confPeakTime))
		case rec.RMSEnergy < r.MinimalRMSMax:
			genres = append(genres, NewTag("minimal-techno", confMinimal))
		}
	}

	if inRange(bpm, r.HouseBPMMin, r.HouseBPMMax) && rec.ZeroCrossingRate < r.HouseZCRMax {
		genres = append(genres, NewTag("house", confHouse))
		if rec.SpectralCentroid < r.DeepHouseCentroidMax {
			genres = append(genres, NewTag("deep-house", confDeepHouse))
		}
	}

	if inRange(bpm, r.ProgressiveBPMMin, r.ProgressiveBPMMax) && rec.OnsetStrength > r.ProgressiveOnsetMin {
		genres = append(genres, NewTag("progressive", confProgressive))
	}

	return FilterByThreshold(genres, c.threshold)
}
