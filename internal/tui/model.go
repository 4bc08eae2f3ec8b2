// Package tui provides the Bubble Tea racing interface.
package tui

import (
	"fmt"
	"math"
	"os"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/coderacer/internal/highlight"
	"github.com/verte-zerg/coderacer/internal/model"
	"github.com/verte-zerg/coderacer/internal/race"
	"github.com/verte-zerg/coderacer/internal/scripts"
	statsPkg "github.com/verte-zerg/coderacer/internal/stats"
	"github.com/verte-zerg/coderacer/internal/tracker"
)

const trendRounds = 12

// Model implements the Bubble Tea racing UI.
type Model struct {
	config      model.Config
	highlighter highlight.Highlighter
	picker      *scripts.Picker
	pool        []scripts.Script

	width    int
	height   int
	viewport viewport.Model
	content  string

	script   scripts.Script
	round    *race.Round
	recorded bool
	errShown bool

	rounds      int
	errorTotals map[rune]int
	weakSet     map[rune]struct{}
	wpmHistory  []float64

	lastWPM float64
	lastAcc float64
	hasLast bool
}

var (
	plainStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	keywordStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#C678DD"))
	stringStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#98C379"))
	commentStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#7F848E")).Italic(true)
	numberStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#D19A66"))
	functionStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#61AFEF"))
	operatorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#56B6C2"))
	punctStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ABB2BF"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	untouchedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#C89A3A")).Underline(true)
	freeFlowStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#101010")).Background(lipgloss.Color("#C89A3A"))
	messedUpStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0")).Background(lipgloss.Color("#FF4D4F"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a racing TUI model. Rounds draw their text from pool.
func NewModel(cfg model.Config, h highlight.Highlighter, pool []scripts.Script, picker *scripts.Picker) *Model {
	m := &Model{
		config:      cfg,
		highlighter: h,
		picker:      picker,
		pool:        pool,
		viewport:    viewport.New(0, 0),
		errorTotals: map[rune]int{},
		weakSet:     map[rune]struct{}{},
	}
	m.newRound()
	return m
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.refresh()
		return m, nil
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyCtrlN:
			m.newRound()
		case tea.KeyPgUp:
			m.viewport.SetYOffset(m.viewport.YOffset - m.viewport.Height)
			return m, nil
		case tea.KeyPgDown:
			m.viewport.SetYOffset(m.viewport.YOffset + m.viewport.Height)
			return m, nil
		case tea.KeyEnter:
			m.press(tracker.KeyEnter)
		case tea.KeySpace:
			m.press(tracker.RuneKey(' '))
		case tea.KeyTab:
			m.press(tracker.RuneKey('\t'))
		case tea.KeyRunes:
			if msg.Alt || msg.Paste {
				return m, nil
			}
			for _, r := range msg.Runes {
				m.press(tracker.RuneKey(r))
			}
		default:
			return m, nil
		}
		m.refresh()
		return m, nil
	default:
		return m, nil
	}
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.width == 0 || m.height == 0 {
		return m.content
	}
	body := lipgloss.Place(m.width, m.bodyHeight(), lipgloss.Center, lipgloss.Center, m.viewport.View())
	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return body
	}
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) press(key tracker.Key) {
	if m.round.Finished() {
		return
	}
	m.round.Press(key)
	if err := m.round.Err(); err != nil && !m.errShown {
		logErrf("failed to highlight %s: %v\n", m.script.Name, err)
		m.errShown = true
	}
	if m.round.Finished() && !m.recorded {
		m.recordResult()
	}
}

func (m *Model) newRound() {
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		m.script = m.picker.PickWeighted(m.pool, m.weakSet, m.config.WeakFactor)
	} else {
		m.script = m.picker.Pick(m.pool)
	}
	m.round = race.New(m.script.Text, m.highlighter)
	m.recorded = false
	m.errShown = false
	m.viewport.GotoTop()
	m.refresh()
}

func (m *Model) recordResult() {
	res, ok := m.round.Result()
	if !ok {
		return
	}
	m.recorded = true
	m.rounds++
	m.lastWPM = res.WPM
	m.lastAcc = res.Accuracy
	m.hasLast = true
	if res.WPM != math.MaxFloat64 {
		m.wpmHistory = append(m.wpmHistory, res.WPM)
		if len(m.wpmHistory) > trendRounds {
			m.wpmHistory = m.wpmHistory[len(m.wpmHistory)-trendRounds:]
		}
	}
	statsPkg.MergeErrors(m.errorTotals, res.Errors)
	if m.config.FocusWeak {
		m.weakSet = statsPkg.SelectWeakChars(statsPkg.RankErrors(m.errorTotals), m.config.WeakTop)
	}
}

// refresh re-renders the round into the viewport and scrolls the status
// span into view.
func (m *Model) refresh() {
	typed, _ := m.round.Session().Progress()
	if m.round.Finished() {
		typed = math.MaxInt
	}
	runes := buildStyledRunes(m.round.Code(), typed)
	lines := wrapLines(runes, m.contentWidth())
	m.content = renderLines(lines)

	if m.width == 0 || m.height == 0 {
		return
	}
	m.viewport.Width = m.contentWidth()
	m.viewport.Height = min(m.bodyHeight(), len(lines))
	m.viewport.SetContent(m.content)
	if line := cursorLine(lines); line >= 0 {
		switch {
		case line < m.viewport.YOffset:
			m.viewport.SetYOffset(line)
		case line >= m.viewport.YOffset+m.viewport.Height:
			m.viewport.SetYOffset(line - m.viewport.Height + 1)
		}
	}
}

func (m *Model) contentWidth() int {
	if m.width == 0 {
		return 0
	}
	return max(int(float64(m.width)*0.70), 1)
}

func (m *Model) bodyHeight() int {
	if m.height < 3 {
		return max(m.height, 1)
	}
	return m.height - 1
}

func (m *Model) renderFooter() string {
	typed, total := m.round.Session().Progress()
	progress := 100
	if total > 0 {
		progress = int(float64(typed) / float64(total) * 100)
	}
	segments := []string{m.script.Name, fmt.Sprintf("Progress %d%%", progress)}
	if m.hasLast {
		segments = append(segments, fmt.Sprintf("Last %s WPM · %s%%", statsPkg.FormatNumber(m.lastWPM), statsPkg.FormatNumber(m.lastAcc)))
	}
	if m.rounds > 0 {
		segments = append(segments, fmt.Sprintf("Rounds %d", m.rounds))
	}
	if len(m.wpmHistory) > 1 {
		segments = append(segments, "Trend "+statsPkg.Sparkline(m.wpmHistory))
	}
	if m.config.FocusWeak && len(m.weakSet) > 0 {
		segments = append(segments, "Focus "+weakLabel(m.weakSet))
	}
	segments = append(segments, "ctrl+n new · esc quit")
	return footerStyle.Render(strings.Join(segments, "  "))
}

func weakLabel(weakSet map[rune]struct{}) string {
	chars := make([]string, 0, len(weakSet))
	for ch := range weakSet {
		chars = append(chars, statsPkg.CharLabel(ch))
	}
	sort.Strings(chars)
	return strings.Join(chars, "")
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
