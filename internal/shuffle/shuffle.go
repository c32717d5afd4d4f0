// Package shuffle provides the deterministic seeded permutation used by
// every random choice in session selection.
package shuffle

import "math/rand/v2"

// Rand returns a PCG source for seed. The same seed always yields the same
// sequence.
func Rand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), uint64(seed)^0x9e3779b97f4a7c15))
}

// Slice returns a shuffled copy of in. The input is left untouched.
func Slice[T any](in []T, seed int64) []T {
	out := make([]T, len(in))
	copy(out, in)
	r := Rand(seed)
	r.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}
