package match

import (
	"cmp"
	"slices"
	"strings"
	"unicode/utf8"
)

// Score bands. Every prefix match scores 0, every substring match scores in
// [1, 2) and every other candidate scores in [2, 3].
const (
	prefixScore    = 0.0
	substringFloor = 1.0
	distanceFloor  = 2.0
)

// Rank returns candidates reordered by similarity to query.
// The result is always a new slice holding the same elements.
// An empty or whitespace-only query keeps the original order.
func Rank(candidates []string, query string) []string {
	out := make([]string, len(candidates))
	copy(out, candidates)

	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return out
	}

	type scored struct {
		value string
		score float64
		index int
	}
	items := make([]scored, len(candidates))
	for i, c := range candidates {
		items[i] = scored{value: c, score: score(strings.ToLower(c), q), index: i}
	}

	slices.SortStableFunc(items, func(a, b scored) int {
		if c := cmp.Compare(a.score, b.score); c != 0 {
			return c
		}
		return cmp.Compare(a.index, b.index)
	})

	for i, it := range items {
		out[i] = it.value
	}
	return out
}

// Score returns the ranking score of candidate for query, lower is better.
// Comparison is case-insensitive and ignores surrounding whitespace in query.
func Score(candidate, query string) float64 {
	return score(strings.ToLower(candidate), strings.ToLower(strings.TrimSpace(query)))
}

// score expects both arguments already lowercased.
func score(candidate, query string) float64 {
	if strings.HasPrefix(candidate, query) {
		return prefixScore
	}

	// pos/(pos+1) grows with pos and stays below 1, so equal positions tie
	// and the band never reaches the distance floor.
	if idx := strings.Index(candidate, query); idx >= 0 {
		pos := float64(utf8.RuneCountInString(candidate[:idx]))
		return substringFloor + pos/(pos+1)
	}

	longest := max(utf8.RuneCountInString(candidate), utf8.RuneCountInString(query), 1)
	return distanceFloor + float64(Levenshtein(candidate, query))/float64(longest)
}
