package utils

import (
	"strings"
	"testing"
	"unicode/utf8"

	"go.uber.org/zap"
)

func TestTruncateText(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	short := "hello"
	if got := tp.TruncateText(short, 100); got != short {
		t.Errorf("short text must pass through unchanged, got %q", got)
	}
	if got := tp.TruncateText(short, 0); got != short {
		t.Errorf("zero limit disables truncation, got %q", got)
	}

	long := strings.Repeat("a", 200)
	got := tp.TruncateText(long, 50)
	if !strings.HasSuffix(got, "[... Content truncated due to size limits ...]") {
		t.Error("truncated text must carry the truncation marker")
	}
	if !strings.HasPrefix(got, strings.Repeat("a", 50)) {
		t.Error("truncated text must keep the leading bytes")
	}
}

func TestTruncateTextKeepsValidUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	// Truncation point lands inside a multi-byte rune
	text := strings.Repeat("é", 30)
	got := tp.TruncateText(text, 31)
	if !utf8.ValidString(got) {
		t.Error("truncated text must remain valid UTF-8")
	}
}

func TestSanitizeUTF8(t *testing.T) {
	tp := NewTextProcessor(zap.NewNop())

	clean := "plain ascii and é"
	if got := tp.SanitizeUTF8(clean); got != clean {
		t.Errorf("valid text must pass through unchanged, got %q", got)
	}

	dirty := "bad\xff\xfebytes"
	got := tp.SanitizeUTF8(dirty)
	if !utf8.ValidString(got) {
		t.Errorf("sanitized text must be valid UTF-8, got %q", got)
	}
	if !strings.Contains(got, "bad") || !strings.Contains(got, "bytes") {
		t.Errorf("sanitizing must keep the valid parts, got %q", got)
	}
}
