// Package prompt renders the tag-suggestion prompt sent to a text generator
// and parses the free-form reply back into normalized tags.
//
// Build is deterministic: identical inputs yield byte-identical prompts, which
// the response cache relies on. Parse never fails; text that does not look
// like a tag list degrades to fewer (or zero) tags.
package prompt
