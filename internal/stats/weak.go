package stats

import "github.com/verte-zerg/coderacer/internal/model"

// SelectWeakChars selects the most mistyped characters. Whitespace is never weak.
func SelectWeakChars(ranked []model.CharErrors, top int) map[rune]struct{} {
	weakSet := map[rune]struct{}{}
	if top <= 0 || top > len(ranked) {
		top = len(ranked)
	}
	for _, e := range ranked {
		if len(weakSet) == top {
			break
		}
		switch e.Char {
		case ' ', '\n', '\t':
			continue
		}
		weakSet[e.Char] = struct{}{}
	}
	return weakSet
}

// MergeErrors adds src counts into dst.
func MergeErrors(dst, src map[rune]int) {
	for ch, n := range src {
		dst[ch] += n
	}
}
