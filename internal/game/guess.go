package game

import "strings"

// MatchGuess reports whether guess matches the secret word. Matching is
// exact after trimming surrounding whitespace and folding case; an empty
// secret (no round active) never matches anything.
func MatchGuess(secret, guess string) bool {
	if secret == "" {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(guess), strings.TrimSpace(secret))
}

// Award computes the score for a correct guess from the seconds still left
// on the round clock. More time left means a bigger reward; the value is
// derived only from the tracked countdown, never from timer internals.
// A correct guess always awards at least one point.
func Award(secondsLeft int) int {
	if secondsLeft < 1 {
		return 1
	}
	return secondsLeft
}
