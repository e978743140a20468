// Package shuffle permutes answer options for display while keeping a map
// back to the original positions.
package shuffle

import "math/rand/v2"

// Result is one presentation's option order.
type Result struct {
	// Options holds the options in display order.
	Options []string

	// Correct is the display index of the correct option.
	Correct int

	// Map[i] is the original index of the option shown at display index i.
	Map []int
}

// Shuffle permutes options with a Fisher-Yates shuffle over an index array.
// The input slice is not modified. correct must be a valid index into
// options.
func Shuffle(rng *rand.Rand, options []string, correct int) Result {
	n := len(options)
	m := make([]int, n)
	for i := range m {
		m[i] = i
	}
	for i := n - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		m[i], m[j] = m[j], m[i]
	}

	shuffled := make([]string, n)
	shuffledCorrect := -1
	for k, orig := range m {
		shuffled[k] = options[orig]
		if orig == correct {
			shuffledCorrect = k
		}
	}

	return Result{Options: shuffled, Correct: shuffledCorrect, Map: m}
}

// ToOriginalIndex translates a display index back to the original option
// index. Out-of-range input returns -1.
func ToOriginalIndex(shuffledIndex int, shuffleMap []int) int {
	if shuffledIndex < 0 || shuffledIndex >= len(shuffleMap) {
		return -1
	}
	return shuffleMap[shuffledIndex]
}

// Original is ToOriginalIndex on r's own map.
func (r Result) Original(shuffledIndex int) int {
	return ToOriginalIndex(shuffledIndex, r.Map)
}

// NewRand returns a PCG-backed source. A zero seed draws a random seed.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}
