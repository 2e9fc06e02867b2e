package game

import "math/rand"

// Words is the fixed vocabulary secret words are drawn from.
var Words = []string{
	"apple", "banana", "cat", "dog", "elephant",
	"fish", "giraffe", "house", "igloo", "jacket",
	"kite", "lion", "monkey", "orange", "piano",
	"rabbit", "sun", "tree", "umbrella", "zebra",
}

// RandomWord picks uniformly from words. Callers inject the rand source so
// round setup stays deterministic in tests.
func RandomWord(rng *rand.Rand, words []string) string {
	if len(words) == 0 {
		return ""
	}
	return words[rng.Intn(len(words))]
}
