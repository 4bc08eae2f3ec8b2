package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-runewidth"

	"github.com/verte-zerg/coderacer/internal/markup"
	"github.com/verte-zerg/coderacer/internal/model"
)

const tabGlyph = '⇥'

type styledRune struct {
	s         string
	width     int
	isSpace   bool
	isNewline bool
	cursor    bool
}

// buildStyledRunes converts highlighted markup into terminal cells. The first
// typed logical characters are drawn at full strength, the rest faint.
func buildStyledRunes(code string, typed int) []styledRune {
	chars := markup.Chars(code)
	out := make([]styledRune, 0, len(chars))
	pos := 0
	for _, c := range chars {
		status, isCursor := statusOf(c)
		style := tokenStyle(c.Class())
		if isCursor {
			style = statusStyle(status)
		} else if pos >= typed {
			style = style.Faint(true)
		}
		if !isCursor || c.Rune != '↵' {
			pos++
		}

		if c.Rune == '\n' {
			out = append(out, styledRune{isNewline: true, cursor: isCursor})
			continue
		}
		displayed := c.Rune
		if displayed == '\t' {
			displayed = tabGlyph
		}
		out = append(out, styledRune{
			s:       style.Render(string(displayed)),
			width:   runewidth.RuneWidth(displayed),
			isSpace: c.Rune == ' ',
			cursor:  isCursor,
		})
	}
	return out
}

func statusOf(c markup.Char) (model.Status, bool) {
	for _, st := range []model.Status{model.StatusUntouched, model.StatusFreeFlow, model.StatusMessedUp} {
		if c.HasClass(string(st)) {
			return st, true
		}
	}
	return "", false
}

func statusStyle(st model.Status) lipgloss.Style {
	switch st {
	case model.StatusFreeFlow:
		return freeFlowStyle
	case model.StatusMessedUp:
		return messedUpStyle
	default:
		return untouchedStyle
	}
}

// tokenStyle maps a chroma token class to a style by its family letter.
func tokenStyle(class string) lipgloss.Style {
	switch {
	case class == "":
		return plainStyle
	case class == "err":
		return incorrectStyle
	case class == "nf" || class == "fm":
		return functionStyle
	case strings.HasPrefix(class, "k"):
		return keywordStyle
	case strings.HasPrefix(class, "s"):
		return stringStyle
	case strings.HasPrefix(class, "c"):
		return commentStyle
	case strings.HasPrefix(class, "m"):
		return numberStyle
	case strings.HasPrefix(class, "o"):
		return operatorStyle
	case strings.HasPrefix(class, "p"):
		return punctStyle
	default:
		return plainStyle
	}
}

// RenderANSI renders markup as styled terminal text soft-wrapped at width.
// The first typed logical characters are drawn at full strength.
func RenderANSI(code string, typed, width int) string {
	return renderLines(wrapLines(buildStyledRunes(code, typed), width))
}
