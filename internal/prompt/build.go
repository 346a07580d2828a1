package prompt

import (
	"fmt"
	"strings"

	"tagwise/internal/classify"
	"tagwise/internal/features"
)

const (
	promptIntro = "You are a DJ assistant analyzing electronic music tracks. " +
		"Based on the following audio characteristics, suggest 3-5 custom tags " +
		"that a DJ would use for categorization.\n\n"
	promptInstruction = "\nProvide 3-5 tags (comma-separated) that describe the vibe, context, or sub-genre. " +
		"Focus on tags a DJ would use to find this track later " +
		"(e.g., 'peak-time', 'warehouse-vibe', 'hypnotic', 'melodic-progressive').\n\n"
	promptSuffix = "Tags: "

	// summaryTags bounds how many genres and moods are listed.
	summaryTags = 3
)

// Input is the analysis state a prompt is rendered from.
type Input struct {
	Features     features.Record
	Genres       []classify.Tag
	Moods        []classify.Tag
	EnergyLevel  *float64
	CustomGenres []string
}

// Build renders the prompt for in.
func Build(in Input) string {
	var b strings.Builder
	b.WriteString(promptIntro)

	b.WriteString("Audio Features:\n")
	if bpm, ok := in.Features.BPMValue(); ok {
		fmt.Fprintf(&b, "- BPM: %.1f\n", bpm)
	}
	if key, ok := in.Features.KeyValue(); ok {
		fmt.Fprintf(&b, "- Key: %s\n", key)
	}

	if len(in.Genres) > 0 {
		fmt.Fprintf(&b, "\nDetected Genres: %s\n", joinTop(in.Genres))
	}
	if len(in.Moods) > 0 {
		fmt.Fprintf(&b, "Detected Moods: %s\n", joinTop(in.Moods))
	}
	if in.EnergyLevel != nil {
		fmt.Fprintf(&b, "Energy Level: %.0f/100\n", *in.EnergyLevel)
	}
	if len(in.CustomGenres) > 0 {
		fmt.Fprintf(&b, "\nAvailable custom genres: %s\n", strings.Join(in.CustomGenres, ", "))
	}

	b.WriteString(promptInstruction)
	b.WriteString(promptSuffix)
	return b.String()
}

func joinTop(tags []classify.Tag) string {
	if len(tags) > summaryTags {
		tags = tags[:summaryTags]
	}
	return strings.Join(classify.Names(tags), ", ")
}
