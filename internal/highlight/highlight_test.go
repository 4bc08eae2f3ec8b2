package highlight

import (
	"bytes"
	"html"
	"regexp"
	"strings"
	"testing"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

func TestPlainEscapes(t *testing.T) {
	got, err := Plain.Highlight(`a < b && c > "d"`)
	if err != nil {
		t.Fatalf("plain: %v", err)
	}
	want := "a &lt; b &amp;&amp; c &gt; &#34;d&#34;"
	if got != want {
		t.Fatalf("unexpected output: %q", got)
	}
}

func TestChromaKeepsText(t *testing.T) {
	h, err := New("typescript", "monokai")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	src := "function f<T>(a: T[]): T {\n  return a[0] && a[1];\n}"
	out, err := h.Highlight(src)
	if err != nil {
		t.Fatalf("highlight: %v", err)
	}
	if !strings.Contains(out, `<span class="`) {
		t.Fatalf("expected class spans: %s", out)
	}
	if !strings.Contains(out, "&lt;") || !strings.Contains(out, "&amp;&amp;") {
		t.Fatalf("expected escaped reserved characters: %s", out)
	}
	plain := html.UnescapeString(tagPattern.ReplaceAllString(out, ""))
	if strings.TrimSuffix(plain, "\n") != src {
		t.Fatalf("text changed by highlighting:\n%q\n%q", plain, src)
	}
}

func TestChromaIsDeterministic(t *testing.T) {
	h, err := New("ts", "")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	a, _ := h.Highlight("const x = 1;")
	b, _ := h.Highlight("const x = 1;")
	if a != b {
		t.Fatalf("expected identical output")
	}
}

func TestUnknownLanguage(t *testing.T) {
	if _, err := New("definitely-not-a-language", ""); err == nil {
		t.Fatalf("expected error")
	}
}

func TestWriteCSS(t *testing.T) {
	h, err := New("typescript", "monokai")
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	var buf bytes.Buffer
	if err := h.WriteCSS(&buf); err != nil {
		t.Fatalf("css: %v", err)
	}
	if !strings.Contains(buf.String(), ".k") {
		t.Fatalf("expected keyword class in css")
	}
}

func TestLanguagesSorted(t *testing.T) {
	langs := Languages()
	if len(langs) == 0 {
		t.Fatalf("expected languages")
	}
	for i := 1; i < len(langs); i++ {
		if langs[i-1] > langs[i] {
			t.Fatalf("languages not sorted at %d", i)
		}
	}
}
