// Package suggest proposes the closest known member name for a misspelled
// path segment.
package suggest

import (
	"strings"
)

// MinScore is the similarity a candidate needs to be suggested.
const MinScore = 0.5

// Closest returns the candidate most similar to name. Ties keep the earlier
// candidate. ok is false when no candidate reaches MinScore.
func Closest(name string, candidates []string) (best string, ok bool) {
	bestScore := MinScore

	for _, c := range candidates {
		score := Similarity(name, c)
		if score > bestScore || (score == bestScore && !ok) {
			best, bestScore, ok = c, score, true
		}
	}

	return best, ok
}

// Similarity scores two names between 0 and 1 after folding case and
// dropping underscores, so "FullName" and "full_name" are identical.
func Similarity(a, b string) float64 {
	a, b = fold(a), fold(b)
	if len(a) == 0 && len(b) == 0 {
		return 1.0
	}

	return 1.0 - float64(Levenshtein(a, b))/float64(max(len(a), len(b)))
}

func fold(s string) string {
	return strings.ReplaceAll(strings.ToLower(s), "_", "")
}

// Levenshtein computes the edit distance between a and b.
//
// Time complexity: O(len(a) * len(b))
// Space complexity: O(min(len(a), len(b))).
func Levenshtein(a, b string) int {
	if a == b {
		return 0
	}

	if len(a) == 0 {
		return len(b)
	}

	if len(b) == 0 {
		return len(a)
	}

	if len(a) > len(b) {
		a, b = b, a
	}

	prev := make([]int, len(a)+1)
	curr := make([]int, len(a)+1)

	for i := range prev {
		prev[i] = i
	}

	for j := 1; j <= len(b); j++ {
		curr[0] = j

		for i := 1; i <= len(a); i++ {
			cost := 0
			if a[i-1] != b[j-1] {
				cost = 1
			}

			curr[i] = min(
				prev[i]+1,      // deletion
				curr[i-1]+1,    // insertion
				prev[i-1]+cost, // substitution
			)
		}

		prev, curr = curr, prev
	}

	return prev[len(a)]
}
