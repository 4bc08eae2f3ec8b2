// Package markup wraps the next character to type inside highlighted markup.
//
// Highlighted markup mixes tags with entity-encoded text, so occurrences are
// counted over logical characters: tag bodies are copied without counting and
// an entity such as &lt; counts as the single character it stands for.
package markup

import (
	"html"
	"strings"
	"unicode/utf8"

	"github.com/verte-zerg/coderacer/internal/highlight"
	"github.com/verte-zerg/coderacer/internal/model"
)

// maxEntityLen bounds how far past '&' a terminating ';' is searched for.
const maxEntityLen = 5

// noChar is the logical character of an entity that does not decode to one rune.
const noChar rune = -1

type mode int

const (
	modeLiteral mode = iota
	modeTag
	modeEntity
)

// Render highlights typed+remaining and wraps the next untyped occurrence of
// the target character (the first rune of remaining) in a status span.
// A highlighter error falls back to plain escaped text; the error is returned
// alongside the still usable markup.
func Render(h highlight.Highlighter, remaining, typed string, occurrences map[rune]int, status model.Status) (string, error) {
	text := typed + remaining
	out, err := h.Highlight(text)
	if err != nil {
		out, _ = highlight.Plain.Highlight(text)
	}
	target, size := utf8.DecodeRuneInString(remaining)
	if size == 0 {
		return out, err
	}
	wrapped, _ := ReplaceNthOccurrence(out, target, occurrences[target]+1, StatusSpan(status, target))
	return wrapped, err
}

// StatusSpan returns the wrapper emitted in place of the target character.
func StatusSpan(status model.Status, char rune) string {
	return `<span class="` + string(status) + `">` + EncodeChar(char) + `</span>`
}

// EncodeChar returns the markup form of a single character. Newlines become a
// return glyph followed by a line break tag.
func EncodeChar(r rune) string {
	if r == '\n' {
		return "↵<br>"
	}
	return html.EscapeString(string(r))
}

// ReplaceNthOccurrence replaces the n-th (1-based) logical occurrence of char
// in text with replacement. Everything else, tags and entities included, is
// copied byte for byte. It reports false and returns text unchanged when
// there is no n-th occurrence.
func ReplaceNthOccurrence(text string, char rune, n int, replacement string) (string, bool) {
	var out strings.Builder
	out.Grow(len(text) + len(replacement))

	count := 0
	found := false
	emit := func(raw string, r rune) {
		if found || r != char {
			out.WriteString(raw)
			return
		}
		count++
		if count == n {
			out.WriteString(replacement)
			found = true
			return
		}
		out.WriteString(raw)
	}

	m := modeLiteral
	start := 0
	for i := 0; i < len(text); {
		switch m {
		case modeTag:
			if text[i] == '>' {
				out.WriteString(text[start : i+1])
				m = modeLiteral
			}
			i++
		case modeEntity:
			i++
			if text[i-1] == ';' {
				raw := text[start:i]
				emit(raw, decodeEntity(raw))
				m = modeLiteral
			}
		default:
			switch {
			case text[i] == '<':
				start = i
				m = modeTag
				i++
			case text[i] == '&' && entityEnd(text, i) > 0:
				start = i
				m = modeEntity
				i++
			default:
				r, size := utf8.DecodeRuneInString(text[i:])
				emit(text[i:i+size], r)
				i += size
			}
		}
	}
	if m == modeTag {
		out.WriteString(text[start:])
	}

	if !found {
		return text, false
	}
	return out.String(), true
}

// entityEnd returns the index of the ';' closing an entity that starts at
// text[i], or -1.
func entityEnd(text string, i int) int {
	for j := i + 1; j <= i+maxEntityLen && j < len(text); j++ {
		if text[j] == ';' {
			return j
		}
	}
	return -1
}

func decodeEntity(raw string) rune {
	decoded := html.UnescapeString(raw)
	r, size := utf8.DecodeRuneInString(decoded)
	if size == 0 || size != len(decoded) {
		return noChar
	}
	return r
}
