package prompt

import "strings"

const (
	// MaxTags bounds the parsed suggestion list.
	MaxTags = 10
	// maxTagBytes rejects segments that read like prose rather than tags.
	maxTagBytes = 50
)

// Response is a parsed generator reply.
type Response struct {
	Description string
	Tags        []string
}

// Parse splits raw on commas, newlines, and semicolons. Segments are trimmed;
// empty segments and those of 50 bytes or more are dropped; the rest are
// lower-cased with spaces replaced by hyphens, up to MaxTags. Description is
// the first line of the trimmed reply.
func Parse(raw string) Response {
	cleaned := strings.TrimSpace(raw)
	resp := Response{Tags: []string{}}
	if cleaned == "" {
		return resp
	}

	resp.Description, _, _ = strings.Cut(cleaned, "\n")
	resp.Description = strings.TrimRight(resp.Description, "\r")

	segments := strings.FieldsFunc(cleaned, func(r rune) bool {
		return r == ',' || r == '\n' || r == ';'
	})
	for _, segment := range segments {
		if len(resp.Tags) == MaxTags {
			break
		}
		segment = strings.TrimSpace(segment)
		if segment == "" || len(segment) >= maxTagBytes {
			continue
		}
		resp.Tags = append(resp.Tags, strings.ReplaceAll(strings.ToLower(segment), " ", "-"))
	}
	return resp
}
