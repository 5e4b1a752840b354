package viterbi

import (
	"math"
	"math/rand"
	"runtime"

	"golang.org/x/net/context"
)

func testingModel() *Model {
	return &Model{
		States: []State{"A", "B", "C"},
		Start: map[State]float64{
			"A": 0.4,
			"B": 0.1,
			"C": 0.5,
		},
		Trans: map[State]map[State]float64{
			"A": {"A": 0.3, "B": 0.2, "C": 0.5},
			"B": {"A": 0.5, "B": 0.1, "C": 0.4},
			"C": {"A": 0.3, "B": 0.6, "C": 0.1},
		},
		Emit: map[State]map[Obs]float64{
			"A": {"x": 0.3, "y": 0.05, "z": 0.65},
			"B": {"x": 0.01, "y": 0.69, "z": 0.3},
			"C": {"x": 0.8, "y": 0.1, "z": 0.1},
		},
	}
}

func randomTestingModel(gen *rand.Rand, numStates, numObs int) (*Model, []Obs) {
	states := make([]State, numStates)
	for i := range states {
		states[i] = i
	}
	obs := make([]Obs, numObs)
	for i := range obs {
		obs[i] = string(rune('a' + i))
	}
	return RandomModel(gen, states, obs), obs
}

// exhaustiveMostLikely scores every possible path and
// returns the best one.
// Ties go to the path found first, which enumerates
// states in model order from the first timestep.
func exhaustiveMostLikely(m *Model, obs []Obs) (float64, []State) {
	n := len(m.States)
	idxs := make([]int, len(obs))
	bestScore := math.Inf(-1)
	var bestPath []State
	for {
		score := math.Log10(m.Start[m.States[idxs[0]]]) +
			math.Log10(m.Emit[m.States[idxs[0]]][obs[0]])
		for t := 1; t < len(obs); t++ {
			from, to := m.States[idxs[t-1]], m.States[idxs[t]]
			score += math.Log10(m.Trans[from][to]) + math.Log10(m.Emit[to][obs[t]])
		}
		if score > bestScore {
			bestScore = score
			bestPath = make([]State, len(obs))
			for t, i := range idxs {
				bestPath[t] = m.States[i]
			}
		}

		// Advance idxs like an odometer.
		t := len(idxs) - 1
		for t >= 0 && idxs[t] == n-1 {
			idxs[t] = 0
			t--
		}
		if t < 0 {
			return bestScore, bestPath
		}
		idxs[t]++
	}
}

func stateSeqsEqual(s1, s2 []State) bool {
	if len(s1) != len(s2) {
		return false
	}
	for i, x := range s1 {
		if x != s2[i] {
			return false
		}
	}
	return true
}

// sampleSequences feeds observation sequences of length
// n, sampled from m, until ctx is done.
func sampleSequences(ctx context.Context, m *Model, n int) <-chan []Obs {
	res := make(chan []Obs, runtime.GOMAXPROCS(0))
	for i := 0; i < runtime.GOMAXPROCS(0); i++ {
		go func() {
			gen := rand.New(rand.NewSource(rand.Int63()))
			for {
				_, obs := m.SampleLen(gen, n)
				select {
				case res <- obs:
				case <-ctx.Done():
					return
				}
			}
		}()
	}
	return res
}
