// Package tags infers topical tags for aggregated items.
package tags

import (
	"regexp"
	"strings"
)

// rule maps a keyword pattern to the tag it implies. Patterns are matched
// case-insensitively against the item's title and summary.
type rule struct {
	tag     string
	pattern *regexp.Regexp
}

// rules is the fixed, ordered keyword rule list.
var rules = []rule{
	{"AI", regexp.MustCompile(`(?i)\b(ai|ml|machine learning|llm|transformer|prompt|openai|anthropic)\b`)},
	{"Web", regexp.MustCompile(`(?i)\b(react|vue|svelte|next\.js|frontend|css|web)\b`)},
	{"DevOps", regexp.MustCompile(`(?i)\b(kubernetes|docker|ci/cd|devops|terraform|cloud)\b`)},
	{"Security", regexp.MustCompile(`(?i)\b(security|vulnerability|cve|zero[- ]day|malware)\b`)},
	{"Data", regexp.MustCompile(`(?i)\b(data|analytics|warehouse|spark|dbt)\b`)},
	{"Mobile", regexp.MustCompile(`(?i)\b(android|ios|swift|kotlin|flutter|react native)\b`)},
	{"Backend", regexp.MustCompile(`(?i)\b(node\.js|golang|rust|python|java|api|backend)\b`)},
}

// Merge builds the comma-joined tag string for an item: the source's own
// declared tags, then tags the adapter attached to the candidate, then every
// keyword rule that matches the title+summary text. Duplicates are dropped,
// first-seen order is kept. Returns "" when nothing applies.
func Merge(sourceTags string, candidateTags []string, title, summary string) string {
	var merged []string
	seen := make(map[string]struct{})

	add := func(tag string) {
		if tag == "" {
			return
		}
		if _, ok := seen[tag]; ok {
			return
		}
		seen[tag] = struct{}{}
		merged = append(merged, tag)
	}

	for _, tag := range Split(sourceTags) {
		add(tag)
	}
	for _, tag := range candidateTags {
		add(strings.TrimSpace(tag))
	}

	text := strings.TrimSpace(title + " " + summary)
	if text != "" {
		for _, r := range rules {
			if r.pattern.MatchString(text) {
				add(r.tag)
			}
		}
	}

	if len(merged) == 0 {
		return ""
	}
	return strings.Join(merged, ",")
}

// Split parses a comma-joined tag string, trimming entries and dropping
// empty ones.
func Split(joined string) []string {
	if joined == "" {
		return nil
	}
	var out []string
	for _, tag := range strings.Split(joined, ",") {
		tag = strings.TrimSpace(tag)
		if tag != "" {
			out = append(out, tag)
		}
	}
	return out
}
