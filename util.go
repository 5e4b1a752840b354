package viterbi

import (
	"math"
	"math/rand"
)

// sampleIndex samples an index from the list, given the
// probability of each index.
func sampleIndex(gen *rand.Rand, probs []float64) int {
	if len(probs) == 0 {
		panic("cannot sample from empty list")
	}
	var offset float64
	if gen == nil {
		offset = rand.Float64()
	} else {
		offset = gen.Float64()
	}
	for i, p := range probs {
		offset -= p
		if offset < 0 {
			return i
		}
	}
	return len(probs) - 1
}

// randomDist generates a random probability distribution
// with strictly positive entries.
func randomDist(gen *rand.Rand, n int) []float64 {
	res := make([]float64, n)
	var sum float64
	for i := range res {
		var val float64
		if gen == nil {
			val = rand.NormFloat64()
		} else {
			val = gen.NormFloat64()
		}
		res[i] = math.Exp(val)
		sum += res[i]
	}
	for i := range res {
		res[i] /= sum
	}
	return res
}
