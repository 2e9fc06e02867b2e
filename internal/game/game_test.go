package game

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchGuess(t *testing.T) {
	cases := []struct {
		name   string
		secret string
		guess  string
		want   bool
	}{
		{name: "exact match", secret: "apple", guess: "apple", want: true},
		{name: "case insensitive", secret: "apple", guess: "APPLE", want: true},
		{name: "surrounding whitespace trimmed", secret: "apple", guess: " Apple ", want: true},
		{name: "different word", secret: "apple", guess: "banana", want: false},
		{name: "prefix is not a match", secret: "apple", guess: "app", want: false},
		{name: "no active word never matches", secret: "", guess: "", want: false},
		{name: "interior whitespace is significant", secret: "apple", guess: "ap ple", want: false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, MatchGuess(tc.secret, tc.guess))
		})
	}
}

func TestAwardIsMonotoneAndBounded(t *testing.T) {
	prev := Award(60)
	for s := 59; s >= -5; s-- {
		cur := Award(s)
		assert.LessOrEqual(t, cur, prev, "award must not grow as time runs out (s=%d)", s)
		assert.GreaterOrEqual(t, cur, 1, "a correct guess always scores (s=%d)", s)
		prev = cur
	}
	assert.Equal(t, 60, Award(60))
	assert.Equal(t, 1, Award(0))
}

func TestRandomWordDrawsFromVocabulary(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 50; i++ {
		assert.Contains(t, Words, RandomWord(rng, Words))
	}
	assert.Equal(t, "", RandomWord(rng, nil))
}

func TestVocabularyHasNoDuplicates(t *testing.T) {
	seen := map[string]bool{}
	for _, w := range Words {
		assert.False(t, seen[w], "duplicate word %q", w)
		seen[w] = true
	}
}
