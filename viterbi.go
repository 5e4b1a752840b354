package viterbi

import (
	"errors"
	"math"

	"github.com/unixpickle/essentials"
	"gonum.org/v1/gonum/floats"
)

// Result is the outcome of decoding an observation
// sequence.
type Result struct {
	// Prob is the joint probability of Path and the
	// observations.
	Prob float64

	// LogProb is the base-10 logarithm of Prob.
	// Prefer it over Prob for ranking, since Prob
	// underflows to 0 for long sequences.
	LogProb float64

	// Path is the most likely sequence of hidden states.
	// It has one entry per observation.
	Path []State

	// Trellis holds the intermediate scores.
	Trellis *Trellis
}

// Decode returns the most likely sequence of hidden
// states for obs and its joint probability.
//
// It builds a Model from the tables and is otherwise
// identical to Model.MostLikely.
func Decode(obs []Obs, states []State, start map[State]float64,
	trans map[State]map[State]float64, emit map[State]map[Obs]float64) (prob float64,
	path []State, err error) {
	m := &Model{States: states, Start: start, Trans: trans, Emit: emit}
	res, err := m.MostLikely(obs)
	if err != nil {
		return 0, nil, err
	}
	return res.Prob, res.Path, nil
}

// MostLikely returns the most probable sequence of states
// given the observation sequence.
//
// When several paths are equally likely, the one whose
// states come earliest in m.States wins, comparing from
// the last timestep backward.
//
// The model is checked with Validate first, and no
// partial result is returned on failure.
func (m *Model) MostLikely(obs []Obs) (res *Result, err error) {
	defer essentials.AddCtxTo("viterbi", &err)
	if err := m.Validate(obs); err != nil {
		return nil, err
	}

	tables := newLogTables(m)
	trellis := newTrellis(m.States, len(obs))

	emit := tables.Emission(obs[0])
	first := make([]float64, len(m.States))
	for i := range first {
		first[i] = tables.Start[i] + emit[i]
	}
	trellis.push(first, nil)

	for _, o := range obs[1:] {
		viterbiStep(tables, trellis, tables.Emission(o))
	}

	last := trellis.LogProbs[trellis.Len()-1]
	best := floats.MaxIdx(last)
	return &Result{
		Prob:    math.Pow(10, last[best]),
		LogProb: last[best],
		Path:    trellis.backtrack(best),
		Trellis: trellis,
	}, nil
}

// Candidates returns the scores that were compared to
// pick the predecessor of state at timestep step of a
// trellis produced by m.MostLikely(obs).
// The scores are ordered like m.States.
func (m *Model) Candidates(t *Trellis, obs []Obs, step int, state State) (scores []float64,
	err error) {
	defer essentials.AddCtxTo("viterbi candidates", &err)
	if err := m.Validate(obs); err != nil {
		return nil, err
	}
	if step < 1 || step >= t.Len() || step >= len(obs) {
		return nil, errors.New("timestep out of range")
	} else if len(t.States) != len(m.States) {
		return nil, errors.New("trellis does not match model")
	}
	tables := newLogTables(m)
	to, ok := tables.S2I[state]
	if !ok {
		return nil, errors.New("unknown state")
	}
	scores = make([]float64, len(m.States))
	tables.Candidates(t.LogProbs[step-1], to, tables.Emission(obs[step]), scores)
	return scores, nil
}

func viterbiStep(tables *logTables, trellis *Trellis, emit []float64) {
	prev := trellis.LogProbs[trellis.Len()-1]
	scores := make([]float64, len(prev))
	back := make([]int, len(prev))
	candidates := make([]float64, len(prev))
	for to := range scores {
		tables.Candidates(prev, to, emit, candidates)
		back[to] = floats.MaxIdx(candidates)
		scores[to] = candidates[back[to]]
	}
	trellis.push(scores, back)
}
