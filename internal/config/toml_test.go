package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoadConfigMissingFile(t *testing.T) {
	cfg, err := LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	if err != nil {
		t.Fatalf("missing file must not fail: %v", err)
	}
	if cfg.Practice.Lang != nil {
		t.Fatalf("expected unset values")
	}
}

func TestLoadConfigValues(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	data := `[practice]
lang = "go"
focus-weak = true
weak-top = 4
weak-factor = 1.5
`
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	p := cfg.Practice
	if p.Lang == nil || *p.Lang != "go" {
		t.Fatalf("unexpected lang: %v", p.Lang)
	}
	if p.FocusWeak == nil || !*p.FocusWeak || p.WeakTop == nil || *p.WeakTop != 4 || p.WeakFactor == nil || *p.WeakFactor != 1.5 {
		t.Fatalf("unexpected weak settings: %+v", p)
	}
	if p.Style != nil || p.File != nil || p.Script != nil {
		t.Fatalf("expected unset optional values")
	}
}

func TestLoadConfigUnknownKey(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("[practice]\nwords = 10\n"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	_, err := LoadConfig(path)
	if err == nil || !strings.Contains(err.Error(), "practice.words") {
		t.Fatalf("expected unknown key error, got %v", err)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	if _, err := LoadConfig(""); err == nil {
		t.Fatalf("expected error for empty path")
	}
}

func TestDefaultConfigPathUsesXDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	if got := DefaultConfigPath(); got != filepath.Join("/tmp/xdg", "coderacer", "config.toml") {
		t.Fatalf("unexpected path %q", got)
	}
}
