// Package normalize canonicalizes URLs and cleans up text before items
// are deduplicated and stored.
package normalize

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"regexp"
	"strings"
)

// summaryMaxChars is the stored summary length cap.
const summaryMaxChars = 260

// trackingParams are query parameters stripped during canonicalization.
var trackingParams = map[string]struct{}{
	"utm_source":   {},
	"utm_medium":   {},
	"utm_campaign": {},
	"utm_term":     {},
	"utm_content":  {},
	"ref":          {},
	"source":       {},
	"fbclid":       {},
	"gclid":        {},
}

var (
	htmlTagRe    = regexp.MustCompile(`<[^>]*>`)
	whitespaceRe = regexp.MustCompile(`\s+`)
)

// CanonicalURL strips known tracking parameters and the fragment from a URL.
// A URL that fails to parse is returned unchanged; this never fails.
func CanonicalURL(raw string) string {
	if raw == "" {
		return ""
	}

	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}

	q := u.Query()
	for key := range q {
		if _, ok := trackingParams[key]; ok {
			q.Del(key)
		}
	}
	u.RawQuery = q.Encode()
	u.Fragment = ""
	return u.String()
}

// URLHash derives the content identity key: the sha256 hex digest of the
// canonical URL. Unique across the whole item store.
func URLHash(canonical string) string {
	sum := sha256.Sum256([]byte(canonical))
	return hex.EncodeToString(sum[:])
}

// CleanText strips markup tags, collapses runs of whitespace to single
// spaces, and trims the result. Tags are replaced with a space so adjacent
// block elements do not run their words together.
func CleanText(raw string) string {
	if raw == "" {
		return ""
	}

	text := htmlTagRe.ReplaceAllString(raw, " ")
	text = whitespaceRe.ReplaceAllString(text, " ")
	return strings.TrimSpace(text)
}

// Truncate shortens s to max runes, replacing the tail with "..." when cut.
// Limits of 3 or fewer hard-cut without the marker; non-positive limits
// yield "".
func Truncate(s string, max int) string {
	if max <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	if max <= 3 {
		return string(runes[:max])
	}
	return string(runes[:max-3]) + "..."
}

// DetectLanguage returns "zh" when the text contains any CJK ideograph,
// "en" when it contains a Latin letter, and "" otherwise.
func DetectLanguage(text string) string {
	latin := false
	for _, r := range text {
		if r >= 0x4E00 && r <= 0x9FFF {
			return "zh"
		}
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') {
			latin = true
		}
	}
	if latin {
		return "en"
	}
	return ""
}

// PickSummary prefers the explicit summary over the full content, cleans it,
// and caps it at 260 characters (257 kept plus the ellipsis marker).
func PickSummary(summary, content string) string {
	base := summary
	if base == "" {
		base = content
	}
	if base == "" {
		return ""
	}

	text := CleanText(base)
	if len([]rune(text)) <= summaryMaxChars {
		return text
	}
	return Truncate(text, summaryMaxChars)
}
