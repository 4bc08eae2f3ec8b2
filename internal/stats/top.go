// Package stats contains statistics calculations and reporting.
package stats

import (
	"sort"

	"github.com/verte-zerg/coderacer/internal/model"
)

// RankErrors returns characters with at least one error, most errors first.
func RankErrors(errors map[rune]int) []model.CharErrors {
	items := make([]model.CharErrors, 0, len(errors))
	for ch, n := range errors {
		if n <= 0 {
			continue
		}
		items = append(items, model.CharErrors{Char: ch, Count: n})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Count == items[j].Count {
			return items[i].Char < items[j].Char
		}
		return items[i].Count > items[j].Count
	})
	return items
}
