package viterbi

import "github.com/unixpickle/essentials"

// A Trellis records the best path score for every state
// at every timestep of a decode.
//
// Scores are base-10 log probabilities.
// A Trellis is filled in one timestep at a time and is
// never modified after a decode returns.
type Trellis struct {
	// States is the row order of the trellis.
	States []State

	// LogProbs[t][i] is the log10 probability of the most
	// likely path that ends in state i at time t.
	LogProbs [][]float64

	// Back[t][i] is the index of the predecessor of state
	// i on that path.
	// Back[0] is nil.
	Back [][]int

	s2i map[State]int
}

func newTrellis(states []State, capacity int) *Trellis {
	return &Trellis{
		States:   append([]State{}, states...),
		LogProbs: make([][]float64, 0, capacity),
		Back:     make([][]int, 0, capacity),
		s2i:      statesToIndices(states),
	}
}

// Len returns the number of timesteps.
func (t *Trellis) Len() int {
	if t == nil {
		return 0
	}
	return len(t.LogProbs)
}

// At converts timestep step into a native map.
// It returns false if step is out of range.
func (t *Trellis) At(step int) (map[State]float64, bool) {
	if step < 0 || step >= t.Len() {
		return nil, false
	}
	res := make(map[State]float64, len(t.States))
	for i, state := range t.States {
		res[state] = t.LogProbs[step][i]
	}
	return res, true
}

// LogProb returns the score of state at timestep step.
func (t *Trellis) LogProb(step int, state State) (float64, bool) {
	idx, ok := t.index(step, state)
	if !ok {
		return 0, false
	}
	return t.LogProbs[step][idx], true
}

// Predecessor returns the state preceding state on the
// best path that ends in state at timestep step.
//
// There is no predecessor at the first timestep.
func (t *Trellis) Predecessor(step int, state State) (State, bool) {
	idx, ok := t.index(step, state)
	if !ok || step == 0 {
		return nil, false
	}
	return t.States[t.Back[step][idx]], true
}

func (t *Trellis) index(step int, state State) (int, bool) {
	if step < 0 || step >= t.Len() || !isComparable(state) {
		return 0, false
	}
	idx, ok := t.s2i[state]
	return idx, ok
}

func (t *Trellis) push(logProbs []float64, back []int) {
	t.LogProbs = append(t.LogProbs, logProbs)
	t.Back = append(t.Back, back)
}

// backtrack recovers the path ending in state final at
// the last timestep.
func (t *Trellis) backtrack(final int) []State {
	path := make([]State, 0, t.Len())
	idx := final
	for step := t.Len() - 1; step >= 0; step-- {
		path = append(path, t.States[idx])
		if step > 0 {
			idx = t.Back[step][idx]
		}
	}
	essentials.Reverse(path)
	return path
}
