package typing

import (
	"slices"
	"unicode"
)

// KeySet is a set of characters whose labels the keyboard diagram shows.
type KeySet map[rune]struct{}

// VisibleKeys derives the focus-mode key set for a target: its distinct
// alphabetic characters, lower-cased, plus the space bar if it occurs.
func VisibleKeys(target string) KeySet {
	set := make(KeySet)
	for _, r := range target {
		switch {
		case r == ' ':
			set[r] = struct{}{}
		case isAlphabetic(r):
			set[unicode.ToLower(r)] = struct{}{}
		}
	}
	return set
}

// isAlphabetic matches the Unicode Alphabetic property: letters, letter
// numbers and the combining marks that belong to words.
func isAlphabetic(r rune) bool {
	return unicode.In(r, unicode.Letter, unicode.Nl, unicode.Other_Alphabetic)
}

// Contains reports whether r is in the set. A nil set contains every key,
// which keeps all labels visible when no step is active.
func (k KeySet) Contains(r rune) bool {
	if k == nil {
		return true
	}
	_, ok := k[r]
	return ok
}

// Sorted returns the members in ascending order.
func (k KeySet) Sorted() []rune {
	out := make([]rune, 0, len(k))
	for r := range k {
		out = append(out, r)
	}
	slices.Sort(out)
	return out
}

func (k KeySet) String() string {
	return string(k.Sorted())
}
