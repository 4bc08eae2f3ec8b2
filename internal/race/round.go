// Package race runs one typing round: judge a key, then re-render.
package race

import (
	"github.com/verte-zerg/coderacer/internal/highlight"
	"github.com/verte-zerg/coderacer/internal/markup"
	"github.com/verte-zerg/coderacer/internal/model"
	"github.com/verte-zerg/coderacer/internal/stats"
	"github.com/verte-zerg/coderacer/internal/tracker"
)

// Round couples a session with its rendered markup. It is not safe for
// concurrent use; keys are handled one at a time in arrival order.
type Round struct {
	session     *tracker.Session
	highlighter highlight.Highlighter

	code   string
	status model.Status
	err    error
}

// New starts a round over text. The initial code marks the first character
// as untouched; an empty text starts out finished with its summary shown.
func New(text string, h highlight.Highlighter, opts ...tracker.Option) *Round {
	r := &Round{
		session:     tracker.New(text, opts...),
		highlighter: h,
		status:      model.StatusUntouched,
	}
	if r.session.Finished() {
		r.publishSummary()
	} else {
		r.render(model.StatusUntouched)
	}
	return r
}

// Press feeds one key into the round and returns the code to display.
// Keys after completion change nothing.
func (r *Round) Press(key tracker.Key) string {
	j := r.session.Judge(key)
	if j.Ignored {
		return r.code
	}
	r.status = j.Status
	if j.Finished {
		r.publishSummary()
		return r.code
	}
	r.render(j.Status)
	return r.code
}

// Code returns the current markup.
func (r *Round) Code() string {
	return r.code
}

// Status returns the status of the last judged key.
func (r *Round) Status() model.Status {
	return r.status
}

// Session exposes the underlying session for read-only inspection.
func (r *Round) Session() *tracker.Session {
	return r.session
}

// Finished reports whether the round is over.
func (r *Round) Finished() bool {
	return r.session.Finished()
}

// Result returns the round statistics once finished.
func (r *Round) Result() (model.Result, bool) {
	if !r.session.Finished() {
		return model.Result{}, false
	}
	s := r.session
	return stats.Summarize(s.Reference(), s.StartedAt(), s.FinishedAt(), s.Errors()), true
}

// Err returns the last highlighter error. Rendering falls back to plain
// escaped text when it is set.
func (r *Round) Err() error {
	return r.err
}

func (r *Round) render(status model.Status) {
	s := r.session
	r.code, r.err = markup.Render(r.highlighter, s.Remaining(), s.Typed(), s.Occurrences(), status)
}

func (r *Round) publishSummary() {
	s := r.session
	summary := stats.FormatResult(s.Reference(), s.StartedAt(), s.FinishedAt(), s.Errors())
	code, err := r.highlighter.Highlight(summary)
	if err != nil {
		code, _ = highlight.Plain.Highlight(summary)
	}
	r.code, r.err = code, err
}
