// Package scripts provides the reference texts to race against.
package scripts

import (
	"embed"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"
)

//go:embed snippets/*.ts
var snippetFS embed.FS

// Script is a named reference text.
type Script struct {
	Name string
	Text string
}

// All returns the embedded scripts sorted by name.
func All() []Script {
	entries, err := snippetFS.ReadDir("snippets")
	if err != nil {
		return nil
	}
	out := make([]Script, 0, len(entries))
	for _, entry := range entries {
		data, err := snippetFS.ReadFile(path.Join("snippets", entry.Name()))
		if err != nil {
			continue
		}
		out = append(out, Script{
			Name: strings.TrimSuffix(entry.Name(), path.Ext(entry.Name())),
			Text: Normalize(string(data)),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out
}

// Names lists the embedded script names.
func Names() []string {
	all := All()
	names := make([]string, len(all))
	for i, s := range all {
		names[i] = s.Name
	}
	return names
}

// Get returns the embedded script with the given name.
func Get(name string) (Script, error) {
	for _, s := range All() {
		if s.Name == name {
			return s, nil
		}
	}
	return Script{}, fmt.Errorf("unknown script %q (available: %s)", name, strings.Join(Names(), ", "))
}

// Load reads a reference text from a file.
func Load(p string) (Script, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return Script{}, err
	}
	text := Normalize(string(data))
	if text == "" {
		return Script{}, fmt.Errorf("script file is empty")
	}
	return Script{Name: strings.TrimSuffix(filepath.Base(p), filepath.Ext(p)), Text: text}, nil
}

// Normalize converts CRLF and lone CR line endings to LF and drops a single
// trailing newline, so the last character to type is visible.
func Normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	return strings.TrimSuffix(text, "\n")
}
