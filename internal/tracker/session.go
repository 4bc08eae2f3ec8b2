// Package tracker judges keystrokes against a reference text.
package tracker

import (
	"time"

	"github.com/verte-zerg/coderacer/internal/model"
)

// Key identifies a pressed key: a single character, or a named key such as KeyEnter.
type Key string

// KeyEnter matches a newline in the reference text.
const KeyEnter Key = "Enter"

// RuneKey returns the key for a typed character.
func RuneKey(r rune) Key {
	return Key(string(r))
}

// Judgment is the outcome of a single keystroke.
type Judgment struct {
	Status   model.Status
	Target   rune
	Finished bool
	// Ignored is set when the session was already finished.
	Ignored bool
}

// Option customizes a Session.
type Option func(*Session)

// WithClock replaces time.Now as the session clock.
func WithClock(now func() time.Time) Option {
	return func(s *Session) {
		s.now = now
	}
}

// Session tracks typing progress over one reference text. A finished session
// never changes again; start a new round with a new Session.
type Session struct {
	reference []rune
	typed     []rune
	remaining []rune

	startedAt  time.Time
	finishedAt time.Time

	occurrences map[rune]int
	errors      map[rune]int

	now func() time.Time
}

// New creates a session for text. An empty text yields an already finished session.
func New(text string, opts ...Option) *Session {
	s := &Session{
		reference:   []rune(text),
		occurrences: map[rune]int{},
		errors:      map[rune]int{},
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.remaining = append([]rune(nil), s.reference...)
	s.typed = make([]rune, 0, len(s.reference))
	if len(s.reference) == 0 {
		s.finishedAt = s.now()
	}
	return s
}

// Judge applies one keystroke. Only a matching key advances the cursor and
// bumps the occurrence count of the target; a mismatch is recorded against
// the expected character.
func (s *Session) Judge(key Key) Judgment {
	if s.Finished() {
		return Judgment{Status: model.StatusUntouched, Finished: true, Ignored: true}
	}
	if s.startedAt.IsZero() {
		s.startedAt = s.now()
	}

	target := s.remaining[0]
	if !matches(key, target) {
		s.errors[target]++
		return Judgment{Status: model.StatusMessedUp, Target: target}
	}

	s.occurrences[target]++
	s.typed = append(s.typed, target)
	s.remaining = s.remaining[1:]

	j := Judgment{Status: model.StatusFreeFlow, Target: target}
	if len(s.remaining) == 0 {
		s.finishedAt = s.now()
		j.Finished = true
	}
	return j
}

func matches(key Key, target rune) bool {
	if key == KeyEnter {
		return target == '\n'
	}
	return key == RuneKey(target)
}

// Finished reports whether the whole text has been typed.
func (s *Session) Finished() bool {
	return !s.finishedAt.IsZero()
}

// Reference returns the full text.
func (s *Session) Reference() string {
	return string(s.reference)
}

// Typed returns the correctly typed prefix.
func (s *Session) Typed() string {
	return string(s.typed)
}

// Remaining returns the text still to type.
func (s *Session) Remaining() string {
	return string(s.remaining)
}

// Target returns the next character to type, or false once finished.
func (s *Session) Target() (rune, bool) {
	if len(s.remaining) == 0 {
		return 0, false
	}
	return s.remaining[0], true
}

// Progress returns typed and total character counts.
func (s *Session) Progress() (typed, total int) {
	return len(s.typed), len(s.reference)
}

// StartedAt returns the time of the first keystroke, zero before it.
func (s *Session) StartedAt() time.Time {
	return s.startedAt
}

// FinishedAt returns the completion time, zero while running.
func (s *Session) FinishedAt() time.Time {
	return s.finishedAt
}

// Occurrences returns a copy of the per-character count of typed-past occurrences.
func (s *Session) Occurrences() map[rune]int {
	return copyCounts(s.occurrences)
}

// Errors returns a copy of the per-character mismatch counts.
func (s *Session) Errors() map[rune]int {
	return copyCounts(s.errors)
}

func copyCounts(in map[rune]int) map[rune]int {
	out := make(map[rune]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}
