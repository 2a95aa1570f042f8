// Package match implements the fuzzy subsequence scoring used to rank
// bookmarks and highlight history and suggestion titles.
package match

import (
	"unicode"
	"unicode/utf8"
)

const (
	boundaryBonus = 5
	prefixBonus   = 15
	exactBonus    = 50
)

// Outcome is a successful match: its score and the rune indices into the
// matched text, strictly increasing.
type Outcome struct {
	Score     int
	Positions []int
}

// Match reports whether query is a case-insensitive subsequence of text.
//
// Every matched character scores 1 plus the length of the current run of
// consecutive matches, plus a boundary bonus when it starts the text or
// follows a non-word character. A text starting with the query earns a
// prefix bonus and an equal text an additional exact bonus.
func Match(text, query string) (Outcome, bool) {
	if query == "" {
		return Outcome{Positions: []int{}}, true
	}

	t := fold(text)
	q := fold(query)

	var (
		score int
		run   int
		qi    int
		pos   = make([]int, 0, len(q))
	)

	for ti := 0; ti < len(t) && qi < len(q); ti++ {
		if t[ti] != q[qi] {
			run = 0
			continue
		}

		pos = append(pos, ti)
		run++
		score += 1 + run
		if ti == 0 || !isWord(t[ti-1]) {
			score += boundaryBonus
		}
		qi++
	}

	if qi < len(q) {
		return Outcome{}, false
	}

	if hasPrefix(t, q) {
		score += prefixBonus
		if len(t) == len(q) {
			score += exactBonus
		}
	}

	return Outcome{Score: score, Positions: pos}, true
}

// fold lower-cases s rune by rune so indices stay aligned with the original text.
func fold(s string) []rune {
	runes := []rune(s)
	for i, r := range runes {
		runes[i] = unicode.ToLower(r)
	}
	return runes
}

func hasPrefix(t, q []rune) bool {
	if len(q) > len(t) {
		return false
	}
	for i := range q {
		if t[i] != q[i] {
			return false
		}
	}
	return true
}

// isWord follows the ASCII \w class, so accented letters count as boundaries.
func isWord(r rune) bool {
	return r == '_' || r < utf8.RuneSelf && (unicode.IsLetter(r) || unicode.IsDigit(r))
}
