package viterbi

import "math"

// logTables caches the model's probabilities in the
// base-10 log domain, indexed by state position rather
// than by state.
//
// The model must be valid for every observation passed
// to Emission.
type logTables struct {
	Model *Model
	S2I   map[State]int

	// Start[i] is log10 of the start probability of
	// state i.
	Start []float64

	// Trans[i][j] is log10 of the probability of moving
	// from state i to state j.
	Trans [][]float64

	emit map[Obs][]float64
}

func newLogTables(m *Model) *logTables {
	n := len(m.States)
	res := &logTables{
		Model: m,
		S2I:   statesToIndices(m.States),
		Start: make([]float64, n),
		Trans: make([][]float64, n),
		emit:  map[Obs][]float64{},
	}
	for i, from := range m.States {
		res.Start[i] = math.Log10(m.Start[from])
		res.Trans[i] = make([]float64, n)
		for j, to := range m.States {
			res.Trans[i][j] = math.Log10(m.Trans[from][to])
		}
	}
	return res
}

// statesToIndices creates a mapping from states to their
// indices in a list of states.
func statesToIndices(states []State) map[State]int {
	res := make(map[State]int, len(states))
	for i, state := range states {
		res[state] = i
	}
	return res
}

// Emission returns the log10 probability of obs for
// each state.
// Columns are cached, and the caller should not modify
// the result.
func (l *logTables) Emission(obs Obs) []float64 {
	if col, ok := l.emit[obs]; ok {
		return col
	}
	col := make([]float64, len(l.Model.States))
	for i, state := range l.Model.States {
		col[i] = math.Log10(l.Model.Emit[state][obs])
	}
	l.emit[obs] = col
	return col
}

// Candidates writes, for every predecessor state i, the
// score of the best path that passes through i at the
// previous step and ends in state to.
func (l *logTables) Candidates(prev []float64, to int, emit []float64, dst []float64) {
	for from, p := range prev {
		dst[from] = p + l.Trans[from][to] + emit[to]
	}
}
