package shuffle

import (
	"slices"
	"testing"
)

func TestShuffle_Properties(t *testing.T) {
	rng := NewRand(7)
	for n := 1; n <= 6; n++ {
		options := make([]string, n)
		for i := range options {
			options[i] = string(rune('A' + i))
		}
		orig := slices.Clone(options)

		for correct := 0; correct < n; correct++ {
			for trial := 0; trial < 50; trial++ {
				r := Shuffle(rng, options, correct)

				sorted := slices.Clone(r.Map)
				slices.Sort(sorted)
				for i, v := range sorted {
					if v != i {
						t.Fatalf("n=%d: Map %v is not a permutation", n, r.Map)
					}
				}
				if r.Options[r.Correct] != options[correct] {
					t.Fatalf("n=%d: Options[%d] = %q, want %q", n, r.Correct, r.Options[r.Correct], options[correct])
				}
				if got := ToOriginalIndex(r.Correct, r.Map); got != correct {
					t.Fatalf("ToOriginalIndex(%d) = %d, want %d", r.Correct, got, correct)
				}
				for k := range r.Options {
					if r.Options[k] != options[r.Map[k]] {
						t.Fatalf("Options[%d] = %q, want options[Map[%d]] = %q", k, r.Options[k], k, options[r.Map[k]])
					}
				}
			}
		}
		if !slices.Equal(options, orig) {
			t.Errorf("input mutated: %v, want %v", options, orig)
		}
	}
}

func TestShuffle_Deterministic(t *testing.T) {
	opts := []string{"a", "b", "c", "d"}
	r1 := Shuffle(NewRand(99), opts, 2)
	r2 := Shuffle(NewRand(99), opts, 2)
	if !slices.Equal(r1.Map, r2.Map) {
		t.Errorf("same seed produced %v and %v", r1.Map, r2.Map)
	}
}

func TestShuffle_Uniform(t *testing.T) {
	rng := NewRand(12345)
	opts := []string{"a", "b", "c"}
	counts := make(map[string]int)
	const trials = 60000
	for i := 0; i < trials; i++ {
		r := Shuffle(rng, opts, 0)
		counts[r.Options[0]+r.Options[1]+r.Options[2]]++
	}
	if len(counts) != 6 {
		t.Fatalf("saw %d orderings, want 6", len(counts))
	}
	want := trials / 6
	for order, c := range counts {
		if c < want*9/10 || c > want*11/10 {
			t.Errorf("ordering %s seen %d times, want about %d", order, c, want)
		}
	}
}

func TestToOriginalIndex_OutOfRange(t *testing.T) {
	m := []int{2, 0, 1}
	for _, i := range []int{-1, 3} {
		if got := ToOriginalIndex(i, m); got != -1 {
			t.Errorf("ToOriginalIndex(%d) = %d, want -1", i, got)
		}
	}
	if got := (Result{Map: m}).Original(0); got != 2 {
		t.Errorf("Original(0) = %d, want 2", got)
	}
}
