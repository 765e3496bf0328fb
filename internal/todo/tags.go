package todo

import (
	"strings"

	"todolists/internal/models"
)

// SplitTags splits a comma separated tag field into its tokens.
// Empty tokens are dropped; tokens are otherwise kept verbatim.
func SplitTags(field string) []string {
	if field == "" {
		return nil
	}
	var tokens []string
	for _, tok := range strings.Split(field, ",") {
		if tok != "" {
			tokens = append(tokens, tok)
		}
	}
	return tokens
}

// JoinTags is the inverse of SplitTags.
func JoinTags(tokens []string) string {
	kept := make([]string, 0, len(tokens))
	for _, tok := range tokens {
		if tok != "" {
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, ",")
}

// BuildTagIndex returns the distinct tag tokens across items in first-seen
// order. Matching is case-sensitive.
func BuildTagIndex(items []*models.Item) []string {
	seen := make(map[string]struct{})
	index := []string{}
	for _, item := range items {
		for _, tok := range SplitTags(item.Tag) {
			if _, ok := seen[tok]; ok {
				continue
			}
			seen[tok] = struct{}{}
			index = append(index, tok)
		}
	}
	return index
}
