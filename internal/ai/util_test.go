package ai

import (
	"strings"
	"testing"
)

func TestCleanReply(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "March on.", "March on."},
		{"wrapping quotes", `"March on."`, "March on."},
		{"smart quotes", "“March on.”", "March on."},
		{"inner quotes kept", `Say "now" and go.`, `Say "now" and go.`},
		{"think block", "<think>reasoning here</think>March on.", "March on."},
		{"whitespace", "  March on.  ", "March on."},
		{"empty", "   ", ""},
	}

	for _, c := range cases {
		if got := CleanReply(c.in); got != c.want {
			t.Fatalf("%s: CleanReply(%q) = %q, want %q", c.name, c.in, got, c.want)
		}
	}
}

func TestCleanReplyTruncatesLongOutput(t *testing.T) {
	got := CleanReply(strings.Repeat("x", 3000))
	if len(got) > 2000 {
		t.Fatalf("len = %d, want Discord-safe length", len(got))
	}
	if !strings.HasSuffix(got, "[truncated]") {
		t.Fatal("long output should be marked truncated")
	}
}
