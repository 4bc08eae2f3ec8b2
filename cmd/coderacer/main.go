// Package main provides the CLI entrypoint for coderacer.
package main

import (
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/verte-zerg/coderacer/internal/config"
	"github.com/verte-zerg/coderacer/internal/highlight"
	"github.com/verte-zerg/coderacer/internal/markup"
	"github.com/verte-zerg/coderacer/internal/model"
	"github.com/verte-zerg/coderacer/internal/race"
	"github.com/verte-zerg/coderacer/internal/scripts"
	"github.com/verte-zerg/coderacer/internal/stats"
	"github.com/verte-zerg/coderacer/internal/tracker"
	"github.com/verte-zerg/coderacer/internal/tui"
)

const (
	defaultLang       = "typescript"
	defaultStyle      = "monokai"
	defaultWeakTop    = 5
	defaultWeakFactor = 2.0
)

const (
	formatMarkup = "markup"
	formatANSI   = "ansi"
	formatText   = "text"
)

var (
	practiceLang       string
	practiceStyle      string
	practiceScript     string
	practiceFile       string
	practiceFocusWeak  bool
	practiceWeakTop    int
	practiceWeakFactor float64

	replayKeys   string
	replayFormat string
	replayTable  bool
)

func main() {
	rootCmd := newRootCmd()
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "coderacer",
		Short:         "Race against the clock typing source code",
		SilenceUsage:  true,
		SilenceErrors: false,
		RunE:          runRaceCmd,
	}

	rootCmd.PersistentFlags().StringVar(&practiceLang, "lang", defaultLang, "highlighter language")
	rootCmd.PersistentFlags().StringVar(&practiceStyle, "style", defaultStyle, "highlighter style for css output")
	rootCmd.PersistentFlags().StringVar(&practiceScript, "script", "", "embedded script name (default: random)")
	rootCmd.PersistentFlags().StringVar(&practiceFile, "file", "", "race against the contents of a file")
	rootCmd.Flags().BoolVar(&practiceFocusWeak, "focus-weak", false, "bias script choice toward characters mistyped in earlier rounds")
	rootCmd.Flags().IntVar(&practiceWeakTop, "weak-top", defaultWeakTop, "number of weak characters to focus on")
	rootCmd.Flags().Float64Var(&practiceWeakFactor, "weak-factor", defaultWeakFactor, "weight factor for weak characters")

	rootCmd.AddCommand(newConfigCmd())
	rootCmd.AddCommand(newLangsCmd())
	rootCmd.AddCommand(newScriptsCmd())
	rootCmd.AddCommand(newReplayCmd())
	rootCmd.AddCommand(newCSSCmd())

	return rootCmd
}

func runRaceCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	h, err := highlight.New(cfg.Lang, cfg.Style)
	if err != nil {
		return fmt.Errorf("failed to create highlighter: %w", err)
	}
	pool, err := resolvePool(cfg)
	if err != nil {
		return err
	}

	m := tui.NewModel(cfg, h, pool, scripts.NewPicker())
	program := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := program.Run(); err != nil {
		return fmt.Errorf("failed to run TUI: %w", err)
	}
	return nil
}

func loadPracticeConfig(cmd *cobra.Command) (model.Config, error) {
	fileCfg, err := config.LoadConfig(config.DefaultConfigPath())
	if err != nil {
		return model.Config{}, fmt.Errorf("failed to load config: %w", err)
	}
	applyStringConfig(cmd, "lang", &practiceLang, fileCfg.Practice.Lang)
	applyStringConfig(cmd, "style", &practiceStyle, fileCfg.Practice.Style)
	applyStringConfig(cmd, "script", &practiceScript, fileCfg.Practice.Script)
	applyStringConfig(cmd, "file", &practiceFile, fileCfg.Practice.File)
	applyBoolConfig(cmd, "focus-weak", &practiceFocusWeak, fileCfg.Practice.FocusWeak)
	applyIntConfig(cmd, "weak-top", &practiceWeakTop, fileCfg.Practice.WeakTop)
	applyFloatConfig(cmd, "weak-factor", &practiceWeakFactor, fileCfg.Practice.WeakFactor)

	cfg := model.Config{
		Lang:       practiceLang,
		Style:      practiceStyle,
		Script:     practiceScript,
		File:       practiceFile,
		FocusWeak:  practiceFocusWeak,
		WeakTop:    practiceWeakTop,
		WeakFactor: practiceWeakFactor,
	}
	if err := validateConfig(cfg); err != nil {
		return model.Config{}, err
	}
	return cfg, nil
}

func resolvePool(cfg model.Config) ([]scripts.Script, error) {
	switch {
	case cfg.File != "":
		s, err := scripts.Load(cfg.File)
		if err != nil {
			return nil, fmt.Errorf("failed to load script file: %w", err)
		}
		return []scripts.Script{s}, nil
	case cfg.Script != "":
		s, err := scripts.Get(cfg.Script)
		if err != nil {
			return nil, err
		}
		return []scripts.Script{s}, nil
	default:
		all := scripts.All()
		if len(all) == 0 {
			return nil, fmt.Errorf("no embedded scripts found")
		}
		return all, nil
	}
}

func newConfigCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Create/open config file",
		Args:  cobra.NoArgs,
		RunE:  runConfigCmd,
	}
}

func runConfigCmd(_ *cobra.Command, _ []string) error {
	path := config.DefaultConfigPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}
	if _, err := os.Stat(path); err != nil {
		if !os.IsNotExist(err) {
			return fmt.Errorf("failed to stat config: %w", err)
		}
		if err := os.WriteFile(path, []byte(defaultConfigTemplate()), 0o644); err != nil {
			return fmt.Errorf("failed to write config: %w", err)
		}
	}

	editor := strings.TrimSpace(os.Getenv("EDITOR"))
	if editor == "" {
		editor = "vi"
	}
	parts := strings.Fields(editor)
	if len(parts) == 0 {
		return fmt.Errorf("editor command is empty")
	}
	cmd := exec.Command(parts[0], append(parts[1:], path)...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("failed to open editor: %w", err)
	}
	return nil
}

func newLangsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "langs",
		Short: "List highlighter languages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printLines(cmd.OutOrStdout(), highlight.Languages())
		},
	}
}

func newScriptsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "scripts",
		Short: "List embedded scripts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printLines(cmd.OutOrStdout(), scripts.Names())
		},
	}
}

func newCSSCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "css",
		Short: "Print the stylesheet for highlighted markup",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadPracticeConfig(cmd)
			if err != nil {
				return err
			}
			h, err := highlight.New(cfg.Lang, cfg.Style)
			if err != nil {
				return fmt.Errorf("failed to create highlighter: %w", err)
			}
			if err := h.WriteCSS(cmd.OutOrStdout()); err != nil {
				return fmt.Errorf("failed to write css: %w", err)
			}
			return nil
		},
	}
}

func newReplayCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "replay",
		Short: "Feed a key sequence into a round and print the result",
		Args:  cobra.NoArgs,
		RunE:  runReplayCmd,
	}
	cmd.Flags().StringVar(&replayKeys, "keys", "", `keys to press, Go-escaped ("\n" presses Enter)`)
	cmd.Flags().StringVar(&replayFormat, "format", "", "output format: markup, ansi or text (default: ansi on a terminal, markup otherwise)")
	cmd.Flags().BoolVar(&replayTable, "table", false, "print a per-character error table")
	return cmd
}

func runReplayCmd(cmd *cobra.Command, _ []string) error {
	cfg, err := loadPracticeConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.File == "" && cfg.Script == "" {
		return fmt.Errorf("replay needs --script or --file")
	}
	keys, err := parseKeys(replayKeys)
	if err != nil {
		return err
	}
	h, err := highlight.New(cfg.Lang, cfg.Style)
	if err != nil {
		return fmt.Errorf("failed to create highlighter: %w", err)
	}
	pool, err := resolvePool(cfg)
	if err != nil {
		return err
	}

	round := race.New(pool[0].Text, h)
	for _, k := range keys {
		round.Press(k)
	}
	if err := round.Err(); err != nil {
		logErrf("failed to highlight: %v\n", err)
	}

	out := cmd.OutOrStdout()
	format, width := resolveFormat(replayFormat, out)
	if err := writeReplay(out, round, format, width); err != nil {
		return err
	}
	if replayTable {
		if err := stats.RenderErrorTable(out, round.Session().Errors()); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func writeReplay(w io.Writer, round *race.Round, format string, width int) error {
	var rendered string
	switch format {
	case formatMarkup:
		rendered = round.Code()
	case formatText:
		rendered = markup.Text(round.Code())
	case formatANSI:
		typed, _ := round.Session().Progress()
		if round.Finished() {
			typed = math.MaxInt
		}
		rendered = tui.RenderANSI(round.Code(), typed, width)
	default:
		return fmt.Errorf("unknown --format %q (use markup, ansi or text)", format)
	}
	if _, err := fmt.Fprintln(w, rendered); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	return nil
}

// resolveFormat picks the replay output format and wrap width. An unset
// format means ansi on a terminal and markup otherwise.
func resolveFormat(format string, w io.Writer) (string, int) {
	f, ok := w.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		if format == "" {
			format = formatMarkup
		}
		return format, 0
	}
	if format == "" {
		format = formatANSI
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return format, 0
	}
	return format, width
}

// parseKeys unquotes a Go-escaped key sequence; newlines become Enter.
func parseKeys(raw string) ([]tracker.Key, error) {
	text, err := strconv.Unquote(`"` + strings.ReplaceAll(raw, `"`, `\"`) + `"`)
	if err != nil {
		return nil, fmt.Errorf("invalid --keys value: %w", err)
	}
	keys := make([]tracker.Key, 0, len(text))
	for _, r := range text {
		if r == '\n' {
			keys = append(keys, tracker.KeyEnter)
			continue
		}
		keys = append(keys, tracker.RuneKey(r))
	}
	return keys, nil
}

func printLines(w io.Writer, lines []string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return fmt.Errorf("failed to write output: %w", err)
		}
	}
	return nil
}

func applyStringConfig(cmd *cobra.Command, name string, target, value *string) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyIntConfig(cmd *cobra.Command, name string, target, value *int) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyFloatConfig(cmd *cobra.Command, name string, target, value *float64) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func applyBoolConfig(cmd *cobra.Command, name string, target, value *bool) {
	if value == nil {
		return
	}
	if cmd.Flags().Changed(name) {
		return
	}
	*target = *value
}

func defaultConfigTemplate() string {
	return fmt.Sprintf(`# coderacer configuration
# Uncomment a value to enable it. CLI flags override config values.

[practice]
# lang = %q        # Highlighter language (see: coderacer langs)
# style = %q          # Highlighter style used by: coderacer css
# script = "app"             # Embedded script (see: coderacer scripts)
# file = "/path/to/snippet"  # Race against a file instead
# focus-weak = false         # Bias script choice toward weak characters
# weak-top = %d              # Number of weak characters to focus on
# weak-factor = %.1f         # Weight factor for weak characters
`,
		defaultLang,
		defaultStyle,
		defaultWeakTop,
		defaultWeakFactor,
	)
}

func validateConfig(cfg model.Config) error {
	if strings.TrimSpace(cfg.Lang) == "" {
		return fmt.Errorf("--lang must not be empty")
	}
	if cfg.Script != "" && cfg.File != "" {
		return fmt.Errorf("--script and --file are mutually exclusive")
	}
	if cfg.WeakTop < 0 {
		return fmt.Errorf("--weak-top must be >= 0")
	}
	if cfg.WeakFactor < 0 {
		return fmt.Errorf("--weak-factor must be >= 0")
	}
	return nil
}

func logErrf(format string, args ...any) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		// Best-effort logging to stderr.
		_ = err
	}
}
