// Package search finds actions by fuzzy-matching a query against their
// titles and names.
//
// A candidate matches when every query rune appears in order in its text,
// case-insensitively. Scores favor consecutive runs, word starts, prefix
// matches and short texts, and penalize gaps:
//
//	results := search.Match("zin", candidates, 5)
//	// "Zoom in" scores above "Scroll to middle left"
package search

import (
	"slices"
	"strings"
	"unicode"
)

// Candidate is an action that can be found.
type Candidate struct {
	// Name is the action name.
	Name string

	// Title is the text shown to the user, possibly localized.
	Title string
}

// Result is a matched candidate.
type Result struct {
	Candidate

	// Score ranks the match; higher is better.
	Score int

	// Matches are the rune indices of the matched characters in Title.
	// Nil when only Name matched.
	Matches []int
}

// Scoring weights.
const (
	baseScore        = 100
	consecutiveBonus = 20
	boundaryBonus    = 15
	startBonus       = 25
	prefixBonus      = 50
	gapPenalty       = 2
	shortTextLimit   = 20
)

// Match returns the candidates matching query, best first, at most limit
// of them (limit <= 0 means all). Ties are broken by title. An empty query
// returns the candidates in their given order.
func Match(query string, candidates []Candidate, limit int) []Result {
	query = strings.TrimSpace(query)
	if query == "" {
		n := len(candidates)
		if limit > 0 {
			n = min(n, limit)
		}
		results := make([]Result, n)
		for i := range n {
			results[i] = Result{Candidate: candidates[i]}
		}
		return results
	}

	q := lowerRunes(query)
	results := make([]Result, 0, len(candidates))
	for _, c := range candidates {
		titleScore, matches := score(q, c.Title)
		if nameScore, _ := score(q, c.Name); nameScore > titleScore {
			results = append(results, Result{Candidate: c, Score: nameScore})
			continue
		}
		if titleScore > 0 {
			results = append(results, Result{Candidate: c, Score: titleScore, Matches: matches})
		}
	}

	slices.SortStableFunc(results, func(a, b Result) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		return strings.Compare(a.Title, b.Title)
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results
}

// score matches q greedily left to right against text. It returns 0 when
// some rune of q is missing.
func score(q []rune, text string) (int, []int) {
	if text == "" || len(q) == 0 {
		return 0, nil
	}

	original := []rune(text)
	lower := lowerRunes(text)

	matches := make([]int, 0, len(q))
	for i := 0; i < len(lower) && len(matches) < len(q); i++ {
		if lower[i] == q[len(matches)] {
			matches = append(matches, i)
		}
	}
	if len(matches) != len(q) {
		return 0, nil
	}

	s := baseScore
	for i, idx := range matches {
		if i > 0 && idx == matches[i-1]+1 {
			s += consecutiveBonus
		}
		if isWordStart(original, idx) {
			s += boundaryBonus
		}
	}

	first, last := matches[0], matches[len(matches)-1]
	if first == 0 {
		s += startBonus
	}
	s -= first
	s -= (last - first + 1 - len(matches)) * gapPenalty

	if len(lower) < shortTextLimit {
		s += shortTextLimit - len(lower)
	}
	if len(lower) >= len(q) && slices.Equal(lower[:len(q)], q) {
		s += prefixBonus
	}

	return max(s, 1), matches
}

// lowerRunes lowers s rune by rune, so indices match []rune(s).
func lowerRunes(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

// isWordStart reports whether the rune at idx begins a word: the first
// rune, one after a space or punctuation, or an upper case rune after a
// lower case one.
func isWordStart(runes []rune, idx int) bool {
	if idx == 0 {
		return true
	}
	if idx >= len(runes) {
		return false
	}
	prev, cur := runes[idx-1], runes[idx]
	return unicode.IsSpace(prev) || unicode.IsPunct(prev) ||
		(unicode.IsLower(prev) && unicode.IsUpper(cur))
}

// Highlight wraps the matched runes of a result's title with mark.
func Highlight(r Result, mark func(string) string) string {
	if len(r.Matches) == 0 {
		return r.Title
	}

	var sb strings.Builder
	runes := []rune(r.Title)
	next := 0
	for i := 0; i < len(runes); {
		if next < len(r.Matches) && r.Matches[next] == i {
			j := i
			for next < len(r.Matches) && r.Matches[next] == j {
				next++
				j++
			}
			sb.WriteString(mark(string(runes[i:j])))
			i = j
			continue
		}
		sb.WriteRune(runes[i])
		i++
	}
	return sb.String()
}
