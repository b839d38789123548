// Package typing compares what the learner typed against a target text.
// Every function here is pure; the progression controller owns all state.
package typing

import (
	"strings"
	"unicode/utf8"
)

// Decision is the outcome of validating an attempted insertion.
type Decision struct {
	// Accepted is true when the typed text plus the fragment is still a
	// prefix of the target.
	Accepted bool

	// CorrectedPrefix is the text the buffer must be reverted to when the
	// insertion is rejected: everything up to and including the last space
	// before the mismatch, or "" when no word has been completed yet.
	CorrectedPrefix string
}

// Status classifies a typed buffer against its target.
type Status int

const (
	StatusInProgress Status = iota
	StatusComplete
)

func (s Status) String() string {
	switch s {
	case StatusComplete:
		return "complete"
	default:
		return "in-progress"
	}
}

// ValidateInsertion decides whether fragment may be appended to typedSoFar.
// Multi-character fragments (paste, autocomplete) are validated as a unit,
// but a correct word completed inside a rejected fragment is kept.
func ValidateInsertion(typedSoFar, fragment, target string) Decision {
	attempt := typedSoFar + fragment
	if strings.HasPrefix(target, attempt) {
		return Decision{Accepted: true}
	}
	return Decision{CorrectedPrefix: WordBoundaryPrefix(matchedPrefix(attempt, target))}
}

// matchedPrefix returns the longest prefix of s that is also a prefix of
// target, cut on a rune boundary.
func matchedPrefix(s, target string) string {
	n := 0
	for n < len(s) && n < len(target) {
		r, size := utf8.DecodeRuneInString(s[n:])
		t, tsize := utf8.DecodeRuneInString(target[n:])
		if r != t || size != tsize {
			break
		}
		n += size
	}
	return s[:n]
}

// WordBoundaryPrefix returns s up to and including its last space character,
// or "" if s has no space.
func WordBoundaryPrefix(s string) string {
	i := strings.LastIndexByte(s, ' ')
	if i < 0 {
		return ""
	}
	return s[:i+1]
}

// Classify reports StatusComplete iff typed equals a non-empty target.
func Classify(typed, target string) Status {
	if target != "" && typed == target {
		return StatusComplete
	}
	return StatusInProgress
}

// NextExpected returns the character the learner should type next, measured
// in runes so that accented targets behave.
func NextExpected(typed, target string) (rune, bool) {
	n := utf8.RuneCountInString(typed)
	i := 0
	for _, r := range target {
		if i == n {
			return r, true
		}
		i++
	}
	return 0, false
}

// CursorPosition returns the rune offset of the cursor after typed.
func CursorPosition(typed string) int {
	return utf8.RuneCountInString(typed)
}
