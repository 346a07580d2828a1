package classify

import (
	"tagwise/internal/config"
	"tagwise/internal/features"
)

// neutralDanceability is reported when BPM is unknown.
const neutralDanceability = 50.0

// Energy holds the three [0,100] intensity scores.
type Energy struct {
	Level        float64 `json:"energy_level"`
	Danceability float64 `json:"danceability"`
	Aggression   float64 `json:"aggression"`
}

// EnergyAnalyzer derives intensity scores from a record.
type EnergyAnalyzer struct {
	rules Rules
}

// NewEnergyAnalyzer builds an analyzer from the analysis settings.
func NewEnergyAnalyzer(cfg config.AIConfig) *EnergyAnalyzer {
	return &EnergyAnalyzer{rules: cfg.Rules}
}

// Analyze always succeeds.
func (a *EnergyAnalyzer) Analyze(rec features.Record) Energy {
	r := a.rules
	energy := Energy{
		Level:        clamp(rec.RMSEnergy*100, 0, 100),
		Danceability: neutralDanceability,
		Aggression:   clamp((rec.SpectralFlux+rec.ZeroCrossingRate)/2*100, 0, 100),
	}
	if bpm, ok := rec.BPMValue(); ok {
		bpmScore := r.DanceOutOfRangeScore
		if inRange(bpm, r.DanceBPMMin, r.DanceBPMMax) {
			bpmScore = r.DanceInRangeScore
		}
		energy.Danceability = clamp((bpmScore+rec.OnsetStrength)/2*100, 0, 100)
	}
	return energy
}
