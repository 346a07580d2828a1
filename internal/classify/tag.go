package classify

import (
	"math"

	"tagwise/internal/config"
)

// Tag is a tag name with a confidence in [0,1]. Identity is by name.
type Tag struct {
	Tag        string  `json:"tag"`
	Confidence float64 `json:"confidence"`
}

// NewTag returns a Tag with confidence clamped to [0,1]. NaN becomes 0.
func NewTag(name string, confidence float64) Tag {
	return Tag{Tag: name, Confidence: clamp(confidence, 0, 1)}
}

// Rules are the classifier thresholds.
type Rules = config.Rules

// DefaultRules returns the stock thresholds.
func DefaultRules() Rules {
	return config.DefaultRules()
}

// FilterByThreshold keeps tags whose confidence is at least threshold,
// preserving order.
func FilterByThreshold(tags []Tag, threshold float64) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, tag := range tags {
		if tag.Confidence >= threshold {
			out = append(out, tag)
		}
	}
	return out
}

// Names returns the tag names in order.
func Names(tags []Tag) []string {
	out := make([]string, len(tags))
	for i, tag := range tags {
		out[i] = tag.Tag
	}
	return out
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Min(math.Max(v, lo), hi)
}

func inRange(v, lo, hi float64) bool {
	return v >= lo && v <= hi
}
