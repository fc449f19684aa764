package text

import (
	"reflect"
	"strings"
	"testing"
)

func TestPlain(t *testing.T) {
	cases := map[string]string{
		"":                                      "",
		"  Preheat   the oven  ":                "Preheat the oven",
		"Salt &amp; pepper":                     "Salt & pepper",
		"<b>Bake</b> for <em>20</em> minutes":   "Bake for 20 minutes",
		"Mix<br>well":                           "Mix well",
		"<p>One</p><p>Two</p>":                  "One Two",
		"Skip<script>alert(1)</script> scripts": "Skip scripts",
		"Fish & chips":                          "Fish & chips",
	}
	for in, want := range cases {
		if got := Plain(in); got != want {
			t.Fatalf("Plain(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestPlainAll_KeepsBlankPositions(t *testing.T) {
	got := PlainAll([]string{"Flour", "  ", "<i></i>", "Eggs &amp; milk"})
	want := []string{"Flour", "", "", "Eggs & milk"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected items: got=%v want=%v", got, want)
	}
}

func TestWrap(t *testing.T) {
	got := Wrap("Preheat the oven to 475°F and bake", 12)
	for _, line := range got {
		if len([]rune(line)) > 12 {
			t.Fatalf("line exceeds width: %q", line)
		}
	}
	if strings.Join(got, " ") != "Preheat the oven to 475°F and bake" {
		t.Fatalf("wrap lost words: %v", got)
	}

	long := Wrap("abcdefghij", 4)
	if !reflect.DeepEqual(long, []string{"abcd", "efgh", "ij"}) {
		t.Fatalf("unexpected split of long word: %v", long)
	}

	if got := Wrap("unchanged", 0); !reflect.DeepEqual(got, []string{"unchanged"}) {
		t.Fatalf("expected passthrough for zero width, got %v", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := Truncate("Classic Margherita Pizza", 10); got != "Classic..." {
		t.Fatalf("unexpected truncation: %q", got)
	}
	if got := Truncate("Soup", 10); got != "Soup" {
		t.Fatalf("unexpected passthrough: %q", got)
	}
	if got := Truncate("Soup", 2); got != ".." {
		t.Fatalf("unexpected tiny truncation: %q", got)
	}
}
