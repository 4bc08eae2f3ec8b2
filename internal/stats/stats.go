// Package stats contains statistics calculations and reporting.
package stats

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/verte-zerg/coderacer/internal/model"
)

const sparkChars = " .:-=+*#%@"

const closingRemark = "Press ctrl+n to race again!"

// WordsPerMinute returns whitespace-delimited words per elapsed minute,
// rounded to one decimal. Zero elapsed time saturates to math.MaxFloat64.
func WordsPerMinute(text string, startedAt, finishedAt time.Time) float64 {
	words := len(strings.Fields(text))
	if words == 0 {
		return 0
	}
	minutes := finishedAt.Sub(startedAt).Minutes()
	if minutes <= 0 {
		return math.MaxFloat64
	}
	return math.Round(float64(words)/minutes*10) / 10
}

// AccuracyPercentage returns the share of characters typed without a
// mistake, in percent with two decimals, clamped to [0, 100].
func AccuracyPercentage(text string, errors map[rune]int) float64 {
	length := utf8.RuneCountInString(text)
	if length == 0 {
		return 100
	}
	acc := math.Round(float64(length-TotalErrors(errors))/float64(length)*10000) / 100
	return math.Max(0, math.Min(100, acc))
}

// TotalErrors sums all per-character error counts.
func TotalErrors(errors map[rune]int) int {
	total := 0
	for _, n := range errors {
		total += n
	}
	return total
}

// Summarize builds the result of a finished round.
func Summarize(text string, startedAt, finishedAt time.Time, errors map[rune]int) model.Result {
	return model.Result{
		StartedAt:  startedAt,
		FinishedAt: finishedAt,
		WPM:        WordsPerMinute(text, startedAt, finishedAt),
		Accuracy:   AccuracyPercentage(text, errors),
		Errors:     errors,
	}
}

// FormatResult renders the result of a round as a doc comment, so it can be
// highlighted like the code it replaces.
func FormatResult(text string, startedAt, finishedAt time.Time, errors map[rune]int) string {
	res := Summarize(text, startedAt, finishedAt, errors)
	var b strings.Builder
	b.WriteString("/**\n")
	fmt.Fprintf(&b, " * Words per minute: %s\n", FormatNumber(res.WPM))
	b.WriteString(" *\n")
	fmt.Fprintf(&b, " * Accuracy: %s%%\n", FormatNumber(res.Accuracy))
	b.WriteString(" *\n")
	b.WriteString(" * Error count per character:\n")
	ranked := RankErrors(errors)
	if len(ranked) == 0 {
		b.WriteString(" * none\n")
	}
	for _, e := range ranked {
		fmt.Fprintf(&b, " * `%s`: %d\n", CharLabel(e.Char), e.Count)
	}
	b.WriteString(" *\n")
	fmt.Fprintf(&b, " * %s\n", closingRemark)
	b.WriteString(" */")
	return b.String()
}

// FormatNumber prints v with the shortest exact decimal form; the saturated
// WPM prints as ∞.
func FormatNumber(v float64) string {
	if v == math.MaxFloat64 || math.IsInf(v, 1) {
		return "∞"
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// CharLabel makes invisible characters printable.
func CharLabel(r rune) string {
	switch r {
	case '\n':
		return "↵"
	case '\t':
		return "⇥"
	}
	return string(r)
}

// Sparkline renders a single-line ASCII sparkline for the values.
func Sparkline(values []float64) string {
	if len(values) == 0 {
		return ""
	}
	minVal := values[0]
	maxVal := values[0]
	for _, v := range values[1:] {
		if v < minVal {
			minVal = v
		}
		if v > maxVal {
			maxVal = v
		}
	}
	if math.Abs(maxVal-minVal) < 1e-9 {
		return strings.Repeat(string(sparkChars[len(sparkChars)/2]), len(values))
	}
	var b strings.Builder
	for _, v := range values {
		pos := (v - minVal) / (maxVal - minVal)
		idx := int(math.Round(pos * float64(len(sparkChars)-1)))
		if idx < 0 {
			idx = 0
		}
		if idx >= len(sparkChars) {
			idx = len(sparkChars) - 1
		}
		b.WriteByte(sparkChars[idx])
	}
	return b.String()
}
