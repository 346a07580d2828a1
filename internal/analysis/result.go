package analysis

import (
	"gonum.org/v1/gonum/stat"

	"tagwise/internal/classify"
	"tagwise/internal/features"
)

// neutralConfidence is reported when a run produced no tags.
const neutralConfidence = 0.5

// Result is the outcome of one AnalyzeTrack call.
type Result struct {
	Genres         []classify.Tag  `json:"genres"`
	Moods          []classify.Tag  `json:"moods"`
	CustomTags     []classify.Tag  `json:"custom_tags"`
	EnergyLevel    *float64        `json:"energy_level,omitempty"`
	Danceability   *float64        `json:"danceability,omitempty"`
	Aggression     *float64        `json:"aggression,omitempty"`
	Confidence     float64         `json:"confidence"`
	Features       features.Record `json:"features"`
	Description    string          `json:"description,omitempty"`
	LLMSuggestions []string        `json:"llm_suggestions"`
}

// TagCount returns the number of genre, mood and custom tags.
func (r Result) TagCount() int {
	return len(r.Genres) + len(r.Moods) + len(r.CustomTags)
}

func overallConfidence(groups ...[]classify.Tag) float64 {
	var values []float64
	for _, tags := range groups {
		for _, tag := range tags {
			values = append(values, tag.Confidence)
		}
	}
	if len(values) == 0 {
		return neutralConfidence
	}
	return stat.Mean(values, nil)
}

// strongest returns the highest-confidence tag; earlier tags win ties.
func strongest(tags []classify.Tag) []classify.Tag {
	if len(tags) <= 1 {
		return tags
	}
	best := tags[0]
	for _, tag := range tags[1:] {
		if tag.Confidence > best.Confidence {
			best = tag
		}
	}
	return []classify.Tag{best}
}

func capTags(tags []classify.Tag, limit int) []classify.Tag {
	if limit > 0 && len(tags) > limit {
		return tags[:limit]
	}
	return tags
}

func nonNil(tags []classify.Tag) []classify.Tag {
	if tags == nil {
		return []classify.Tag{}
	}
	return tags
}
