package features

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/dhowden/tag"
)

// Tag names differ by container: ID3v2.3/2.4, ID3v2.2, Vorbis comments, MP4.
var (
	bpmTagNames = []string{"TBPM", "TBP", "BPM", "tmpo", "tempo"}
	keyTagNames = []string{"TKEY", "TKE", "INITIALKEY", "KEY", "initial_key"}
)

type embeddedTags struct {
	BPM *float64
	Key *string
}

func readEmbeddedTags(path string) (embeddedTags, error) {
	file, err := os.Open(path)
	if err != nil {
		return embeddedTags{}, err
	}
	defer func() { _ = file.Close() }()

	metadata, err := tag.ReadFrom(file)
	if err != nil {
		return embeddedTags{}, fmt.Errorf("read tags: %w", err)
	}
	raw := metadata.Raw()
	var out embeddedTags
	if value, ok := lookupRaw(raw, bpmTagNames); ok {
		if bpm := parseBPM(value); bpm > 0 {
			out.BPM = Float(bpm)
		}
	}
	if value, ok := lookupRaw(raw, keyTagNames); ok {
		if key := strings.TrimSpace(fmt.Sprint(value)); key != "" {
			out.Key = String(key)
		}
	}
	return out, nil
}

func lookupRaw(raw map[string]any, names []string) (any, bool) {
	for _, name := range names {
		for key, value := range raw {
			if strings.EqualFold(key, name) && value != nil {
				return value, true
			}
		}
	}
	return nil, false
}

func parseBPM(value any) float64 {
	switch v := value.(type) {
	case string:
		return parseBPMString(v)
	case int:
		return float64(v)
	case int64:
		return float64(v)
	case float64:
		return v
	default:
		return parseBPMString(fmt.Sprint(v))
	}
}

func parseBPMString(value string) float64 {
	cleaned := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(strings.ToLower(value)), "bpm"))
	bpm, err := strconv.ParseFloat(strings.ReplaceAll(cleaned, ",", "."), 64)
	if err != nil {
		return 0
	}
	return bpm
}
