// Package highlight turns plain source text into HTML-like markup.
package highlight

import (
	"fmt"
	"html"
	"io"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
)

// Highlighter converts text to markup: nested <span class="..."> tags with
// <, >, &, ' and " entity-encoded. Newlines stay literal.
type Highlighter interface {
	Highlight(text string) (string, error)
}

// Func adapts a function to Highlighter.
type Func func(text string) (string, error)

// Highlight implements Highlighter.
func (f Func) Highlight(text string) (string, error) {
	return f(text)
}

// Plain escapes text without adding any tags.
var Plain = Func(func(text string) (string, error) {
	return html.EscapeString(text), nil
})

// Chroma highlights with a chroma lexer and the class-based HTML formatter.
type Chroma struct {
	lexer     chroma.Lexer
	style     *chroma.Style
	formatter *chromahtml.Formatter
}

// New returns a highlighter for the given chroma language name or alias.
// Unknown styles fall back to chroma's default style.
func New(lang, style string) (*Chroma, error) {
	lexer := lexers.Get(lang)
	if lexer == nil {
		return nil, fmt.Errorf("unknown language %q", lang)
	}
	return &Chroma{
		lexer: chroma.Coalesce(lexer),
		style: styles.Get(style),
		formatter: chromahtml.New(
			chromahtml.WithClasses(true),
			chromahtml.PreventSurroundingPre(true),
		),
	}, nil
}

// Highlight implements Highlighter.
func (c *Chroma) Highlight(text string) (string, error) {
	it, err := c.lexer.Tokenise(nil, text)
	if err != nil {
		return "", fmt.Errorf("failed to tokenise: %w", err)
	}
	var b strings.Builder
	if err := c.formatter.Format(&b, c.style, it); err != nil {
		return "", fmt.Errorf("failed to format: %w", err)
	}
	return b.String(), nil
}

// WriteCSS writes the stylesheet matching the classes in Highlight output.
func (c *Chroma) WriteCSS(w io.Writer) error {
	return c.formatter.WriteCSS(w, c.style)
}

// Languages lists the names of all registered lexers.
func Languages() []string {
	names := lexers.Names(false)
	sort.Strings(names)
	return names
}
