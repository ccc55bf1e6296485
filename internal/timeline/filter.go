package timeline

import (
	"sort"
	"strings"
)

// NormalizeHashtags canonicalizes a slice of user-entered hashtags: trims
// whitespace, strips a leading '#', lowercases, drops empties, and removes
// duplicates while preserving first-seen order. The result may be empty.
func NormalizeHashtags(tags []string) []string {
	seen := make(map[string]struct{}, len(tags))
	out := make([]string, 0, len(tags))
	for _, tag := range tags {
		t := strings.ToLower(strings.TrimPrefix(strings.TrimSpace(tag), "#"))
		if t == "" {
			continue
		}
		if _, dup := seen[t]; dup {
			continue
		}
		seen[t] = struct{}{}
		out = append(out, t)
	}
	return out
}

// Filter describes a normalized hashtag set to subscribe the stream on.
// Two filters over the same set of hashtags are interchangeable regardless
// of the order the tags were entered in.
type Filter struct {
	hashtags []string // normalized, sorted
}

// NewFilter builds a filter from raw hashtags. The input is normalized and
// sorted so that equivalent sets produce identical filters.
func NewFilter(tags []string) Filter {
	norm := NormalizeHashtags(tags)
	sort.Strings(norm)
	return Filter{hashtags: norm}
}

// Hashtags returns a copy of the filter's normalized, sorted hashtag set.
func (f Filter) Hashtags() []string {
	out := make([]string, len(f.hashtags))
	copy(out, f.hashtags)
	return out
}

// IsEmpty reports whether the filter matches no hashtags.
func (f Filter) IsEmpty() bool {
	return len(f.hashtags) == 0
}

// Key returns the canonical identity of the hashtag set. Filters with the
// same key share one relay subscription.
func (f Filter) Key() string {
	return strings.Join(f.hashtags, ",")
}
