package tui

import (
	"testing"

	"github.com/verte-zerg/coderacer/internal/highlight"
	"github.com/verte-zerg/coderacer/internal/markup"
	"github.com/verte-zerg/coderacer/internal/model"
)

func render(t *testing.T, remaining, typed string, occ map[rune]int, status model.Status) string {
	t.Helper()
	code, err := markup.Render(highlight.Plain, remaining, typed, occ, status)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	return code
}

func TestBuildStyledRunesCursor(t *testing.T) {
	code := render(t, "b", "a", map[rune]int{'a': 1}, model.StatusFreeFlow)
	runes := buildStyledRunes(code, 1)
	if len(runes) != 2 {
		t.Fatalf("expected 2 runes, got %d", len(runes))
	}
	if runes[0].s != plainStyle.Render("a") {
		t.Fatalf("expected typed style for first rune")
	}
	if runes[1].s != freeFlowStyle.Render("b") || !runes[1].cursor {
		t.Fatalf("expected free-flow cursor for second rune")
	}
}

func TestBuildStyledRunesMessedUp(t *testing.T) {
	code := render(t, "bc", "a", map[rune]int{'a': 1}, model.StatusMessedUp)
	runes := buildStyledRunes(code, 1)
	if runes[1].s != messedUpStyle.Render("b") {
		t.Fatalf("expected messed-up style for target")
	}
	if runes[2].s != plainStyle.Faint(true).Render("c") {
		t.Fatalf("expected faint style for pending rune")
	}
}

func TestBuildStyledRunesNewlineCursor(t *testing.T) {
	code := render(t, "\nb", "a", map[rune]int{'a': 1}, model.StatusUntouched)
	runes := buildStyledRunes(code, 1)
	if len(runes) != 4 {
		t.Fatalf("expected a, glyph, newline, b; got %d runes", len(runes))
	}
	if runes[1].s != untouchedStyle.Render("↵") || !runes[1].cursor {
		t.Fatalf("expected return glyph at the cursor")
	}
	if !runes[2].isNewline || !runes[2].cursor {
		t.Fatalf("expected newline after the glyph")
	}
	if runes[3].s != plainStyle.Faint(true).Render("b") {
		t.Fatalf("rune after the glyph must still be pending")
	}
}

func TestTokenStyleFamilies(t *testing.T) {
	cases := map[string]string{
		"kd": keywordStyle.Render("x"),
		"s2": stringStyle.Render("x"),
		"c1": commentStyle.Render("x"),
		"mi": numberStyle.Render("x"),
		"nf": functionStyle.Render("x"),
		"nx": plainStyle.Render("x"),
		"":   plainStyle.Render("x"),
	}
	for class, want := range cases {
		if got := tokenStyle(class).Render("x"); got != want {
			t.Fatalf("class %q: unexpected style", class)
		}
	}
}

func TestWrapLinesHardBreaks(t *testing.T) {
	runes := buildStyledRunes("ab\ncd", 0)
	lines := wrapLines(runes, 0)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if len(lines[0]) != 3 || !lines[0][2].isNewline {
		t.Fatalf("expected newline to end the first line")
	}
}

func TestWrapLinesSoftWrapKeepsSpace(t *testing.T) {
	runes := buildStyledRunes("one two three", 0)
	lines := wrapLines(runes, 8)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lineWidthOf(lines[0]) != 8 || lineWidthOf(lines[1]) != 5 {
		t.Fatalf("unexpected widths %d / %d", lineWidthOf(lines[0]), lineWidthOf(lines[1]))
	}
}

func TestWrapLinesLongWord(t *testing.T) {
	runes := buildStyledRunes("abcdef", 0)
	lines := wrapLines(runes, 4)
	if len(lines) != 2 || len(lines[0]) != 4 || len(lines[1]) != 2 {
		t.Fatalf("unexpected wrap: %d lines", len(lines))
	}
}

func TestCursorLine(t *testing.T) {
	code := render(t, "c\nd", "a\nb\n", map[rune]int{'a': 1, 'b': 1, '\n': 2}, model.StatusFreeFlow)
	lines := wrapLines(buildStyledRunes(code, 4), 0)
	if got := cursorLine(lines); got != 2 {
		t.Fatalf("expected cursor on line 2, got %d", got)
	}
	if got := cursorLine(wrapLines(buildStyledRunes("abc", 0), 0)); got != -1 {
		t.Fatalf("expected no cursor, got %d", got)
	}
}
