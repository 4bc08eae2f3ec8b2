// Package model defines shared data structures.
package model

import "time"

// Status marks how the current target character is highlighted.
type Status string

const (
	StatusUntouched Status = "untouched"
	StatusFreeFlow  Status = "free-flow"
	StatusMessedUp  Status = "messed-up"
)

// Config defines practice settings.
type Config struct {
	Lang       string
	Style      string
	Script     string
	File       string
	FocusWeak  bool
	WeakTop    int
	WeakFactor float64
}

// Result captures a finished round.
type Result struct {
	StartedAt  time.Time
	FinishedAt time.Time
	WPM        float64
	Accuracy   float64
	Errors     map[rune]int
}

// CharErrors is the error count recorded against one expected character.
type CharErrors struct {
	Char  rune
	Count int
}
