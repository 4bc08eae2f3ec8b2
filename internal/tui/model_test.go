package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/verte-zerg/coderacer/internal/highlight"
	"github.com/verte-zerg/coderacer/internal/model"
	"github.com/verte-zerg/coderacer/internal/scripts"
)

func newTestModel(cfg model.Config, texts ...string) *Model {
	pool := make([]scripts.Script, len(texts))
	for i, text := range texts {
		pool[i] = scripts.Script{Name: "s" + string(rune('0'+i)), Text: text}
	}
	return NewModel(cfg, highlight.Plain, pool, scripts.NewPickerWithSeed(7))
}

func typeRunes(m *Model, s string) {
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)})
}

func TestUpdateJudgesRunes(t *testing.T) {
	m := newTestModel(model.Config{}, "ab c")
	typeRunes(m, "ax")
	if got := m.round.Session().Typed(); got != "a" {
		t.Fatalf("expected typed prefix a, got %q", got)
	}
	if m.round.Session().Errors()['b'] != 1 {
		t.Fatalf("expected error recorded against b")
	}
	typeRunes(m, "b")
	m.Update(tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if got := m.round.Session().Typed(); got != "ab " {
		t.Fatalf("expected space to be judged, got %q", got)
	}
}

func TestUpdateEnterMatchesNewline(t *testing.T) {
	m := newTestModel(model.Config{}, "a\nb")
	typeRunes(m, "a")
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if got := m.round.Session().Typed(); got != "a\n" {
		t.Fatalf("expected newline typed, got %q", got)
	}
}

func TestFinishRecordsResult(t *testing.T) {
	m := newTestModel(model.Config{FocusWeak: true, WeakTop: 3, WeakFactor: 2}, "a{")
	typeRunes(m, "a")
	typeRunes(m, "x")
	typeRunes(m, "{")
	if !m.round.Finished() {
		t.Fatalf("expected round to finish")
	}
	if m.rounds != 1 || !m.hasLast {
		t.Fatalf("expected result to be recorded once")
	}
	if m.errorTotals['{'] != 1 {
		t.Fatalf("expected error totals to include {")
	}
	if _, ok := m.weakSet['{']; !ok {
		t.Fatalf("expected { in weak set")
	}
	if !strings.Contains(m.View(), "Words per minute") {
		t.Fatalf("expected summary in view")
	}
	typeRunes(m, "zz")
	if m.rounds != 1 {
		t.Fatalf("keys after finishing must not record again")
	}
}

func TestCtrlNStartsNewRound(t *testing.T) {
	m := newTestModel(model.Config{}, "ab")
	typeRunes(m, "a")
	first := m.round
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlN})
	if m.round == first {
		t.Fatalf("expected a new round")
	}
	if m.round.Session().Typed() != "" {
		t.Fatalf("new round must start empty")
	}
}

func TestViewKeepsCursorVisible(t *testing.T) {
	text := strings.Repeat("x\n", 30) + "end"
	m := newTestModel(model.Config{}, text)
	m.Update(tea.WindowSizeMsg{Width: 40, Height: 6})
	for i := 0; i < 25; i++ {
		typeRunes(m, "x")
		m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	}
	if m.viewport.YOffset == 0 {
		t.Fatalf("expected viewport to scroll with the cursor")
	}
	if !strings.Contains(m.viewport.View(), "x") {
		t.Fatalf("expected visible code")
	}
}

func TestQuitKeys(t *testing.T) {
	m := newTestModel(model.Config{}, "a")
	if _, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEsc}); cmd == nil {
		t.Fatalf("expected quit command")
	}
}

func TestUpdateIgnoresPasteAndAlt(t *testing.T) {
	m := newTestModel(model.Config{}, "abc")
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("abc"), Paste: true})
	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a"), Alt: true})
	if got := m.round.Session().Typed(); got != "" {
		t.Fatalf("expected nothing typed, got %q", got)
	}
	if len(m.round.Session().Errors()) != 0 {
		t.Fatalf("expected no errors recorded")
	}
	typeRunes(m, "a")
	if got := m.round.Session().Typed(); got != "a" {
		t.Fatalf("expected plain runes to be judged, got %q", got)
	}
}
