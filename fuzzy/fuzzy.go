// Package fuzzy implements the subsequence matching, scoring, and ranking
// used to filter candidate strings as a user types. It is a pure in-process
// library: no I/O, no configuration beyond the candidate set itself.
package fuzzy

import (
	"sort"
	"strings"
)

// Scoring weights. A matched candidate character earns both bonuses; every
// other candidate character costs the penalty. The sequence bonus fires on
// every match, not only on runs of adjacent matches.
const (
	charMatchBonus   = 10
	sequenceBonus    = 5
	unmatchedPenalty = 1
)

// Score rates how well query matches candidate. It returns a positive score
// when every query character appears in candidate in order (a case-insensitive
// subsequence) and 0 otherwise. Shorter candidates with fewer unmatched
// characters score higher.
//
// Matching is case-insensitive via a simple lowercase fold; there is no
// locale-aware handling. An empty query scores 0 — callers that want the
// "no filter" behavior should use Search, which special-cases it.
func Score(candidate, query string) int {
	if len(query) == 0 {
		return 0
	}

	cand := strings.ToLower(candidate)
	q := strings.ToLower(query)

	score := 0
	cursor := 0
	for i := 0; i < len(cand); i++ {
		if cursor < len(q) && cand[i] == q[cursor] {
			score += charMatchBonus + sequenceBonus
			cursor++
		} else {
			score -= unmatchedPenalty
		}
	}

	// Not a subsequence: the accumulated points are meaningless.
	if cursor < len(q) {
		return 0
	}

	// A genuine match on a very long candidate can be penalized below zero.
	// Keep it positive so "matches" and "score > 0" stay the same thing.
	if score < 1 {
		return 1
	}
	return score
}

// scoredCandidate pairs a candidate with its score during ranking.
type scoredCandidate struct {
	value string
	score int
}

// Search filters candidates down to those matching query and returns them
// ordered by descending score. Candidates with equal scores keep their
// relative order from the input. The input slice is never mutated.
//
// An empty query returns the input slice unchanged without scoring anything.
func Search(candidates []string, query string) []string {
	if len(query) == 0 {
		return candidates
	}

	scored := make([]scoredCandidate, 0, len(candidates))
	for _, candidate := range candidates {
		if s := Score(candidate, query); s > 0 {
			scored = append(scored, scoredCandidate{value: candidate, score: s})
		}
	}

	// SliceStable guarantees the tie-break: equal scores preserve input order.
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})

	results := make([]string, len(scored))
	for i, sc := range scored {
		results[i] = sc.value
	}
	return results
}
