// Package similarity scores lexical overlap between free-text action
// descriptions. It is a cheap token-set heuristic: "ate junk food" and
// "had fast food" share only one word and will not cluster.
package similarity

import (
	"strings"
	"unicode"

	"github.com/julianstephens/worthit/internal/constants"
)

// DefaultThreshold is the similarity at or above which two actions are
// considered the same behavior.
const DefaultThreshold = constants.DefaultSimilarityThreshold

// Normalize lower-cases s, drops every rune that is not an ASCII letter,
// ASCII digit or whitespace, collapses whitespace runs to one space and
// trims the result. U+0085 is not whitespace here; U+FEFF is.
func Normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case isSpace(r):
			b.WriteByte(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}

func isSpace(r rune) bool {
	switch r {
	case '\u0085':
		return false
	case '\ufeff':
		return true
	}
	return unicode.IsSpace(r)
}

// Tokens returns the set of words in the normalized form of s.
func Tokens(s string) map[string]struct{} {
	words := strings.Fields(Normalize(s))
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[w] = struct{}{}
	}
	return set
}

// Jaccard returns |A∩B| / |A∪B| over the token sets of a and b, or 0 when
// both are empty.
func Jaccard(a, b string) float64 {
	ta, tb := Tokens(a), Tokens(b)

	intersection := 0
	for w := range ta {
		if _, ok := tb[w]; ok {
			intersection++
		}
	}
	union := len(ta) + len(tb) - intersection
	if union == 0 {
		return 0
	}
	return float64(intersection) / float64(union)
}

// Similar reports whether a and b score at least threshold.
func Similar(a, b string, threshold float64) bool {
	return Jaccard(a, b) >= threshold
}
