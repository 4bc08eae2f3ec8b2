package markup

import (
	"html"
	"strings"
	"unicode/utf8"
)

// Char is one logical character of markup together with the classes of the
// spans enclosing it, outermost first.
type Char struct {
	Rune    rune
	Classes []string
}

// Class returns the innermost class, or "".
func (c Char) Class() string {
	if len(c.Classes) == 0 {
		return ""
	}
	return c.Classes[len(c.Classes)-1]
}

// HasClass reports whether any enclosing span carries class.
func (c Char) HasClass(class string) bool {
	for _, cl := range c.Classes {
		if cl == class {
			return true
		}
	}
	return false
}

// Chars decodes markup into logical characters. <br> yields a newline, span
// tags open and close classes, other tags are dropped.
func Chars(text string) []Char {
	var out []Char
	var stack []string
	var classes []string
	for i := 0; i < len(text); {
		switch {
		case text[i] == '<':
			end := strings.IndexByte(text[i:], '>')
			if end < 0 {
				return out
			}
			tag := text[i+1 : i+end]
			i += end + 1
			switch name := tagName(tag); {
			case name == "br":
				out = append(out, Char{Rune: '\n', Classes: classes})
			case name == "span" && strings.HasPrefix(tag, "/"):
				if len(stack) > 0 {
					stack = stack[:len(stack)-1]
					classes = append([]string(nil), stack...)
				}
			case name == "span":
				stack = append(stack, classAttr(tag))
				classes = append([]string(nil), stack...)
			}
		case text[i] == '&' && entityEnd(text, i) > 0:
			end := entityEnd(text, i)
			for _, r := range html.UnescapeString(text[i : end+1]) {
				out = append(out, Char{Rune: r, Classes: classes})
			}
			i = end + 1
		default:
			r, size := utf8.DecodeRuneInString(text[i:])
			out = append(out, Char{Rune: r, Classes: classes})
			i += size
		}
	}
	return out
}

// Text returns the logical text of markup.
func Text(text string) string {
	var b strings.Builder
	for _, c := range Chars(text) {
		b.WriteRune(c.Rune)
	}
	return b.String()
}

func tagName(tag string) string {
	tag = strings.TrimPrefix(tag, "/")
	tag = strings.TrimSuffix(tag, "/")
	if i := strings.IndexAny(tag, " \t\n"); i >= 0 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}

func classAttr(tag string) string {
	const key = `class="`
	i := strings.Index(tag, key)
	if i < 0 {
		return ""
	}
	rest := tag[i+len(key):]
	if j := strings.IndexByte(rest, '"'); j >= 0 {
		return rest[:j]
	}
	return rest
}
