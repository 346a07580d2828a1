package taxonomy_test

import (
	"testing"

	"tagwise/internal/classify"
	"tagwise/internal/config"
	"tagwise/internal/taxonomy"
)

func TestMapMatchesGenresCaseInsensitively(t *testing.T) {
	mapper := taxonomy.NewMapper(config.CustomTags{Genres: []string{"Techno"}})

	got := mapper.Map([]classify.Tag{classify.NewTag("techno", 0.85)}, nil, nil)
	if len(got) != 1 {
		t.Fatalf("expected exactly one custom tag, got %v", got)
	}
	if got[0].Tag != "techno" || got[0].Confidence != 0.85 {
		t.Fatalf("unexpected custom tag %+v", got[0])
	}
}

func TestMapKeepsMoodConfidenceAndOrder(t *testing.T) {
	mapper := taxonomy.NewMapper(config.CustomTags{
		Genres: []string{"house"},
		Moods:  []string{"DARK", "hypnotic"},
	})
	got := mapper.Map(
		[]classify.Tag{classify.NewTag("techno", 0.85), classify.NewTag("house", 0.82)},
		[]classify.Tag{classify.NewTag("hypnotic", 0.8), classify.NewTag("dark", 0.75), classify.NewTag("chill", 0.78)},
		nil,
	)
	want := []classify.Tag{
		classify.NewTag("house", 0.82),
		classify.NewTag("hypnotic", 0.8),
		classify.NewTag("dark", 0.75),
	}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("position %d: expected %+v, got %+v", i, want[i], got[i])
		}
	}
}

func TestMapSuggestionsAgainstCollections(t *testing.T) {
	mapper := taxonomy.NewMapper(config.CustomTags{
		Vibes:       []string{"Warehouse", "peak-time"},
		Collections: map[string][]string{"label": {"drumcode"}},
	})
	got := mapper.Map(nil, nil, []string{"warehouse", "peak-time", "unknown", "Drumcode", "warehouse"})

	if len(got) != 3 {
		t.Fatalf("expected three matched suggestions, got %v", got)
	}
	for _, tag := range got {
		if tag.Confidence != taxonomy.SuggestionConfidence {
			t.Fatalf("expected fixed suggestion confidence, got %+v", tag)
		}
	}
	if got[2].Tag != "Drumcode" {
		t.Fatalf("expected suggestion spelling preserved, got %q", got[2].Tag)
	}
	if name, ok := mapper.Collection("DRUMCODE"); !ok || name != "label" {
		t.Fatalf("expected label collection, got %q %v", name, ok)
	}
	if name, _ := mapper.Collection("warehouse"); name != taxonomy.VibesCollection {
		t.Fatalf("expected vibes collection, got %q", name)
	}
}

func TestMapUsesUnicodeFolding(t *testing.T) {
	mapper := taxonomy.NewMapper(config.CustomTags{Moods: []string{"STRASSE"}})
	got := mapper.Map(nil, []classify.Tag{classify.NewTag("straße", 0.9)}, nil)
	if len(got) != 1 {
		t.Fatalf("expected folded match, got %v", got)
	}
}

func TestEmpty(t *testing.T) {
	if !taxonomy.NewMapper(config.CustomTags{Genres: []string{" "}, Collections: map[string][]string{"x": nil}}).Empty() {
		t.Fatal("expected blank taxonomy to be empty")
	}
	if taxonomy.NewMapper(config.CustomTags{Vibes: []string{"warehouse"}}).Empty() {
		t.Fatal("expected vibes to make the mapper non-empty")
	}
	if got := taxonomy.NewMapper(config.CustomTags{}).Map([]classify.Tag{classify.NewTag("techno", 1)}, nil, []string{"x"}); len(got) != 0 {
		t.Fatalf("expected no matches from empty mapper, got %v", got)
	}
}
