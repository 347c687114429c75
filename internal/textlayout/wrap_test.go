package textlayout

import (
	"reflect"
	"strings"
	"testing"
)

// runeMeasure charges 10px per rune, making expected widths easy to reason
// about in tests.
func runeMeasure(s string) float64 {
	return float64(len([]rune(s))) * 10
}

func TestWrapEmpty(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t"} {
		if lines := Wrap(text, 100, runeMeasure); lines != nil {
			t.Errorf("Wrap(%q) = %v, want nil", text, lines)
		}
	}
}

func TestWrapSingleLine(t *testing.T) {
	lines := Wrap("hello world", 1000, runeMeasure)
	if want := []string{"hello world"}; !reflect.DeepEqual(lines, want) {
		t.Errorf("got %v, want %v", lines, want)
	}
}

func TestWrapLinesFitAndReconstruct(t *testing.T) {
	text := "the quick brown fox jumps over the lazy sleeping dog"
	const maxWidth = 150
	lines := Wrap(text, maxWidth, runeMeasure)
	if len(lines) < 2 {
		t.Fatalf("expected multiple lines, got %v", lines)
	}
	for _, line := range lines {
		if w := runeMeasure(line); w >= maxWidth {
			t.Errorf("line %q measures %v, want < %v", line, w, maxWidth)
		}
	}
	got := strings.Fields(strings.Join(lines, " "))
	want := strings.Fields(text)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("word sequence not preserved: got %v, want %v", got, want)
	}
}

func TestWrapHyphenatesLongWord(t *testing.T) {
	// 45px fits 4 runes per line, so each hyphenated chunk carries 3 runes
	// plus the hyphen.
	lines := Wrap("abcdefghij", 45, runeMeasure)
	want := []string{"abc-", "def-", "ghi-", "j"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("got %v, want %v", lines, want)
	}
}

func TestWrapHyphenationMidSentence(t *testing.T) {
	lines := Wrap("a extraordinarily b", 80, runeMeasure)
	for _, line := range lines[:len(lines)-1] {
		if !strings.HasSuffix(line, "-") && runeMeasure(line) >= 80 {
			t.Errorf("line %q overflows", line)
		}
	}
	// The remainder must open a new line, not be dropped.
	joined := strings.Join(lines, "")
	if !strings.Contains(joined, "b") {
		t.Errorf("trailing word lost: %v", lines)
	}
}

func TestWrapNoPrefixFitsKeepsWordWhole(t *testing.T) {
	// At 15px not even one rune plus a hyphen fits; degraded behavior is
	// the whole word on its own line.
	lines := Wrap("abcdefghij", 15, runeMeasure)
	want := []string{"abcdefghij"}
	if !reflect.DeepEqual(lines, want) {
		t.Errorf("got %v, want %v", lines, want)
	}
}
