package classify_test

import (
	"math"
	"testing"

	"tagwise/internal/classify"
	"tagwise/internal/config"
	"tagwise/internal/features"
)

func names(tags []classify.Tag) map[string]float64 {
	out := make(map[string]float64, len(tags))
	for _, tag := range tags {
		out[tag.Tag] = tag.Confidence
	}
	return out
}

func TestNewTagClampsConfidence(t *testing.T) {
	for input, want := range map[float64]float64{
		-0.5:       0,
		0.42:       0.42,
		1.7:        1,
		math.NaN(): 0,
		math.Inf(1): 1,
	} {
		got := classify.NewTag("x", input).Confidence
		if got != want {
			t.Fatalf("NewTag(%v) confidence = %v, want %v", input, got, want)
		}
	}
}

func TestGenreRulesRequireBPM(t *testing.T) {
	cfg := config.DefaultAI()
	cfg.ConfidenceThreshold = 0
	rec := features.Record{SpectralCentroid: 1500, RMSEnergy: 0.8, OnsetStrength: 0.9, ZeroCrossingRate: 0.1}

	genres := classify.NewGenreClassifier(cfg).Classify(rec)
	if len(genres) != 0 {
		t.Fatalf("expected no BPM-gated genres without BPM, got %v", genres)
	}
}

func TestGenreTechnoPeakTime(t *testing.T) {
	rec := features.Record{BPM: features.Float(128), SpectralCentroid: 1500, RMSEnergy: 0.8, ZeroCrossingRate: 0.5}

	got := names(classify.NewGenreClassifier(config.DefaultAI()).Classify(rec))
	if got["techno"] != 0.85 || got["peak-time-techno"] != 0.80 {
		t.Fatalf("expected techno and peak-time-techno, got %v", got)
	}
	if _, ok := got["house"]; ok {
		t.Fatalf("house should not fire with high zero-crossing rate: %v", got)
	}
}

func TestGenreRulesAreNotExclusive(t *testing.T) {
	cfg := config.DefaultAI()
	cfg.ConfidenceThreshold = 0.7
	rec := features.Record{BPM: features.Float(128), SpectralCentroid: 1300, RMSEnergy: 0.3, ZeroCrossingRate: 0.1, OnsetStrength: 0.7}

	got := classify.NewGenreClassifier(cfg).Classify(rec)
	want := []string{"techno", "minimal-techno", "house", "progressive"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i, name := range want {
		if got[i].Tag != name {
			t.Fatalf("position %d: expected %q, got %q", i, name, got[i].Tag)
		}
	}
}

func TestGenreDeepHouseAndThreshold(t *testing.T) {
	cfg := config.DefaultAI()
	rec := features.Record{BPM: features.Float(122), SpectralCentroid: 800, ZeroCrossingRate: 0.2}

	got := names(classify.NewGenreClassifier(cfg).Classify(rec))
	if got["house"] != 0.82 || got["deep-house"] != 0.78 {
		t.Fatalf("expected house and deep-house, got %v", got)
	}

	cfg.ConfidenceThreshold = 0.8
	got = names(classify.NewGenreClassifier(cfg).Classify(rec))
	if _, ok := got["deep-house"]; ok {
		t.Fatalf("expected deep-house filtered at 0.8, got %v", got)
	}
}

func TestGenreRulesHonourOverrides(t *testing.T) {
	cfg := config.DefaultAI()
	cfg.Rules.TechnoBPMMin = 130
	rec := features.Record{BPM: features.Float(125), SpectralCentroid: 1500, RMSEnergy: 0.6, ZeroCrossingRate: 0.5}
	if got := classify.NewGenreClassifier(cfg).Classify(rec); len(got) != 0 {
		t.Fatalf("expected overridden techno range to exclude 125 BPM, got %v", got)
	}
}

func TestMoodRules(t *testing.T) {
	cfg := config.DefaultAI()
	cfg.ConfidenceThreshold = 0

	minor := names(classify.NewMoodClassifier(cfg).Classify(features.Record{Key: features.String("Am"), RMSEnergy: 0.8, TempoStability: 0.95}))
	for _, want := range []string{"dark", "melancholic", "energetic", "driving", "hypnotic"} {
		if _, ok := minor[want]; !ok {
			t.Fatalf("expected %q in %v", want, minor)
		}
	}

	major := names(classify.NewMoodClassifier(cfg).Classify(features.Record{Key: features.String("C major"), RMSEnergy: 0.2}))
	for _, want := range []string{"uplifting", "euphoric", "chill", "atmospheric"} {
		if _, ok := major[want]; !ok {
			t.Fatalf("expected %q in %v", want, major)
		}
	}
	if _, ok := major["dark"]; ok {
		t.Fatalf("major key should not be dark: %v", major)
	}
}

func TestMoodThresholdFilter(t *testing.T) {
	moods := classify.NewMoodClassifier(config.DefaultAI()).Classify(features.Record{Key: features.String("8A"), RMSEnergy: 0.5})
	got := names(moods)
	if _, ok := got["euphoric"]; ok {
		t.Fatalf("euphoric (0.68) should be filtered at 0.7: %v", got)
	}
	if got["uplifting"] != 0.72 {
		t.Fatalf("expected uplifting at 0.72, got %v", got)
	}
	for _, tag := range moods {
		if tag.Confidence < 0.7 {
			t.Fatalf("tag below threshold: %+v", tag)
		}
	}
}

func TestIsMinorKey(t *testing.T) {
	for key, want := range map[string]bool{
		"Am":      true,
		"F#m":     true,
		"A Minor": true,
		"C":       false,
		"Cmaj":    false,
		"CMaj7":   false,
		"C major": false,
		"CM":      false,
		"EbM":     false,
		"8A":      false,
	} {
		if got := classify.IsMinorKey(key); got != want {
			t.Fatalf("IsMinorKey(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestEnergyLevelBounds(t *testing.T) {
	analyzer := classify.NewEnergyAnalyzer(config.DefaultAI())
	if got := analyzer.Analyze(features.Record{RMSEnergy: 1.0}).Level; got != 100.0 {
		t.Fatalf("rms 1.0 should give energy 100, got %v", got)
	}
	if got := analyzer.Analyze(features.Record{RMSEnergy: 0.0}).Level; got != 0.0 {
		t.Fatalf("rms 0.0 should give energy 0, got %v", got)
	}
	if got := analyzer.Analyze(features.Record{RMSEnergy: 3}).Level; got != 100.0 {
		t.Fatalf("energy should clamp to 100, got %v", got)
	}
}

func TestDanceabilityFallbackWithoutBPM(t *testing.T) {
	energy := classify.NewEnergyAnalyzer(config.DefaultAI()).Analyze(features.Record{OnsetStrength: 1})
	if energy.Danceability != 50.0 {
		t.Fatalf("expected danceability 50 without BPM, got %v", energy.Danceability)
	}
}

func TestDanceabilityAndAggression(t *testing.T) {
	analyzer := classify.NewEnergyAnalyzer(config.DefaultAI())

	inRange := analyzer.Analyze(features.Record{BPM: features.Float(125), OnsetStrength: 0.5, SpectralFlux: 0.4, ZeroCrossingRate: 0.2})
	if math.Abs(inRange.Danceability-70) > 1e-9 {
		t.Fatalf("expected danceability 70, got %v", inRange.Danceability)
	}
	if math.Abs(inRange.Aggression-30) > 1e-9 {
		t.Fatalf("expected aggression 30, got %v", inRange.Aggression)
	}

	outOfRange := analyzer.Analyze(features.Record{BPM: features.Float(90), OnsetStrength: 0.5})
	if math.Abs(outOfRange.Danceability-50) > 1e-9 {
		t.Fatalf("expected danceability 50 out of range, got %v", outOfRange.Danceability)
	}

	loud := analyzer.Analyze(features.Record{SpectralFlux: 5, ZeroCrossingRate: 1})
	if loud.Aggression != 100 {
		t.Fatalf("expected aggression clamped to 100, got %v", loud.Aggression)
	}
}
