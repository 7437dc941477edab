package normalize

import (
	"strings"
	"testing"
)

func TestCanonicalURLStripsTracking(t *testing.T) {
	got := CanonicalURL("https://example.com/a?utm_source=x&ref=y#frag")
	want := "https://example.com/a"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCanonicalURLKeepsRealParams(t *testing.T) {
	got := CanonicalURL("https://example.com/watch?v=abc123&utm_campaign=promo")
	want := "https://example.com/watch?v=abc123"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCanonicalURLUnparseable(t *testing.T) {
	raw := "http://exa mple.com/%zz"
	if got := CanonicalURL(raw); got != raw {
		t.Errorf("unparseable URL should pass through, got %q", got)
	}
}

func TestCanonicalURLCollapsesVariants(t *testing.T) {
	a := CanonicalURL("https://example.com/a?utm_source=tw&fbclid=123#top")
	b := CanonicalURL("https://example.com/a")
	if a != b {
		t.Errorf("variants should collapse: %q vs %q", a, b)
	}
}

func TestURLHash(t *testing.T) {
	h := URLHash("https://example.com/a")
	if len(h) != 64 {
		t.Errorf("expected 64 hex chars, got %d", len(h))
	}
	if h != URLHash("https://example.com/a") {
		t.Error("hash should be deterministic")
	}
	if h == URLHash("https://example.com/b") {
		t.Error("distinct URLs should not share a hash")
	}
}

func TestCleanText(t *testing.T) {
	got := CleanText("<p>Hello   <b>world</b></p>\n\t<p>again</p>")
	want := "Hello world again"
	if got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
}

func TestCleanTextPlain(t *testing.T) {
	if got := CleanText("  plain  text  "); got != "plain text" {
		t.Errorf("expected %q, got %q", "plain text", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("short", 10); got != "short" {
		t.Errorf("short string should pass through, got %q", got)
	}

	got := Truncate(strings.Repeat("a", 20), 10)
	if got != strings.Repeat("a", 7)+"..." {
		t.Errorf("unexpected truncation: %q", got)
	}

	if got := Truncate("abcdef", 3); got != "abc" {
		t.Errorf("limit<=3 should hard-cut, got %q", got)
	}

	if got := Truncate("abcdef", 0); got != "" {
		t.Errorf("zero limit should yield empty, got %q", got)
	}
	if got := Truncate("abcdef", -1); got != "" {
		t.Errorf("negative limit should yield empty, got %q", got)
	}
}

func TestDetectLanguage(t *testing.T) {
	tests := []struct {
		text string
		want string
	}{
		{"Kubernetes deployment guide", "en"},
		{"深度学习入门", "zh"},
		{"mixed 中文 and english", "zh"},
		{"12345 !!!", ""},
	}
	for _, tt := range tests {
		if got := DetectLanguage(tt.text); got != tt.want {
			t.Errorf("DetectLanguage(%q) = %q, want %q", tt.text, got, tt.want)
		}
	}
}

func TestPickSummaryPrefersSummary(t *testing.T) {
	if got := PickSummary("the summary", "the content"); got != "the summary" {
		t.Errorf("expected summary, got %q", got)
	}
	if got := PickSummary("", "the content"); got != "the content" {
		t.Errorf("expected content fallback, got %q", got)
	}
	if got := PickSummary("", ""); got != "" {
		t.Errorf("expected empty, got %q", got)
	}
}

func TestPickSummaryTruncates(t *testing.T) {
	long := strings.Repeat("x", 300)
	got := PickSummary(long, "")

	if len([]rune(got)) != 260 {
		t.Errorf("expected exactly 260 chars, got %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-5:])
	}
	if got[:257] != long[:257] {
		t.Error("first 257 chars should be preserved verbatim")
	}
}

func TestPickSummaryCleansMarkup(t *testing.T) {
	got := PickSummary("<b>bold</b> claim", "")
	if got != "bold claim" {
		t.Errorf("expected cleaned text, got %q", got)
	}
}
