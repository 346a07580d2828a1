package taxonomy

import (
	"sort"
	"strings"

	"golang.org/x/text/cases"

	"tagwise/internal/classify"
	"tagwise/internal/config"
)

// SuggestionConfidence is assigned to suggestions that match a collection;
// generated text carries no score of its own.
const SuggestionConfidence = 0.8

// VibesCollection is the collection name the vibes list is registered under.
const VibesCollection = "vibes"

type set map[string]struct{}

// Mapper holds folded lookup sets built once from a CustomTags value. It is
// safe for concurrent use.
type Mapper struct {
	genres      set
	moods       set
	collections map[string]set
	names       []string
}

// NewMapper builds a mapper for tags.
func NewMapper(tags config.CustomTags) *Mapper {
	m := &Mapper{collections: make(map[string]set)}
	m.genres = m.setOf(tags.Genres)
	m.moods = m.setOf(tags.Moods)
	if len(tags.Vibes) > 0 {
		m.collections[VibesCollection] = m.setOf(tags.Vibes)
	}
	for name, values := range tags.Collections {
		if len(values) == 0 {
			continue
		}
		existing, ok := m.collections[name]
		if !ok {
			existing = make(set)
			m.collections[name] = existing
		}
		for key := range m.setOf(values) {
			existing[key] = struct{}{}
		}
	}
	for name := range m.collections {
		m.names = append(m.names, name)
	}
	sort.Strings(m.names)
	return m
}

func (m *Mapper) setOf(values []string) set {
	out := make(set, len(values))
	for _, value := range values {
		if key := m.key(value); key != "" {
			out[key] = struct{}{}
		}
	}
	return out
}

// key folds value. A Caser carries state, so each call gets its own.
func (m *Mapper) key(value string) string {
	return cases.Fold().String(strings.TrimSpace(value))
}

// Empty reports whether the mapper has nothing to match against.
func (m *Mapper) Empty() bool {
	return len(m.genres) == 0 && len(m.moods) == 0 && len(m.collections) == 0
}

// Map returns genres found in the custom genre list and moods found in the
// custom mood list with their original confidence, followed by each distinct
// suggestion found in any collection at SuggestionConfidence.
func (m *Mapper) Map(genres, moods []classify.Tag, suggestions []string) []classify.Tag {
	out := make([]classify.Tag, 0, len(genres)+len(moods)+len(suggestions))
	out = appendMatches(out, genres, m.genres, m.key)
	out = appendMatches(out, moods, m.moods, m.key)

	seen := make(set, len(suggestions))
	for _, suggestion := range suggestions {
		key := m.key(suggestion)
		if key == "" {
			continue
		}
		if _, dup := seen[key]; dup {
			continue
		}
		if _, ok := m.Collection(suggestion); ok {
			seen[key] = struct{}{}
			out = append(out, classify.NewTag(suggestion, SuggestionConfidence))
		}
	}
	return out
}

// Collection returns the first collection (in name order) containing tag.
func (m *Mapper) Collection(tag string) (string, bool) {
	key := m.key(tag)
	for _, name := range m.names {
		if _, ok := m.collections[name][key]; ok {
			return name, true
		}
	}
	return "", false
}

func appendMatches(dst, tags []classify.Tag, allowed set, key func(string) string) []classify.Tag {
	if len(allowed) == 0 {
		return dst
	}
	seen := make(set, len(tags))
	for _, tag := range tags {
		k := key(tag.Tag)
		if _, dup := seen[k]; dup {
			continue
		}
		if _, ok := allowed[k]; ok {
			seen[k] = struct{}{}
			dst = append(dst, tag)
		}
	}
	return dst
}
