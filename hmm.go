package viterbi

import (
	"errors"
	"fmt"
	"math/rand"
	"reflect"

	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
)

func init() {
	serializer.RegisterTypedDeserializer((&Model{}).SerializerType(), DeserializeModel)
	serializer.RegisterTypedDeserializer(plainString("").SerializerType(),
		deserializePlainString)
	serializer.RegisterTypedDeserializer(plainInt(0).SerializerType(), deserializePlainInt)
}

// State is a hidden state in a Model.
// States must be comparable with the == operator.
type State interface{}

// An Obs is an observation for a single timestep.
// Observations must be comparable with the == operator.
type Obs interface{}

// Model is a hidden Markov model with discrete
// observations.
//
// All tables store plain (not logarithmic)
// probabilities, each of which must be in (0, 1].
// Use Validate to check that a Model is complete.
type Model struct {
	// States lists every hidden state.
	// The order of States is used to break ties between
	// equally likely paths: earlier states win.
	States []State

	// Start maps each state to the probability of
	// beginning in that state.
	Start map[State]float64

	// Trans maps a current state to the distribution over
	// next states.
	Trans map[State]map[State]float64

	// Emit maps each state to the distribution over the
	// observations it produces.
	Emit map[State]map[Obs]float64
}

// DeserializeModel deserializes a Model.
//
// States and observations come back with the types they
// had when serialized, including plain strings and ints.
func DeserializeModel(d []byte) (m *Model, err error) {
	defer essentials.AddCtxTo("deserialize Model", &err)

	var states []serializer.Serializer
	var startProbs []float64
	var transStates []serializer.Serializer
	var transProbs []float64
	var emitStates []serializer.Serializer
	var emitObs []serializer.Serializer
	var emitProbs []float64
	err = serializer.DeserializeAny(d, &states, &startProbs, &transStates, &transProbs,
		&emitStates, &emitObs, &emitProbs)
	if err != nil {
		return nil, err
	}
	if len(startProbs) != len(states) || len(transStates)%2 != 0 ||
		len(transProbs) != len(transStates)/2 || len(emitStates) != len(emitObs) ||
		len(emitProbs) != len(emitObs) {
		return nil, errors.New("invalid slice size")
	} else if !serializersComparable(states, transStates, emitStates, emitObs) {
		return nil, errors.New("State or Obs not comparable")
	}

	m = &Model{
		Start: map[State]float64{},
		Trans: map[State]map[State]float64{},
		Emit:  map[State]map[Obs]float64{},
	}
	for i, state := range states {
		s := fromSerializer(state)
		m.States = append(m.States, s)
		m.Start[s] = startProbs[i]
	}
	for i, prob := range transProbs {
		from := fromSerializer(transStates[i*2])
		to := fromSerializer(transStates[i*2+1])
		if _, ok := m.Trans[from]; !ok {
			m.Trans[from] = map[State]float64{}
		}
		m.Trans[from][to] = prob
	}
	for i, prob := range emitProbs {
		state := fromSerializer(emitStates[i])
		if _, ok := m.Emit[state]; !ok {
			m.Emit[state] = map[Obs]float64{}
		}
		m.Emit[state][fromSerializer(emitObs[i])] = prob
	}
	return m, nil
}

// RandomModel creates a Model with random, strictly
// positive parameters over the given states and
// observations.
// Every table is complete, so the result passes
// Validate for any sequence drawn from obs.
//
// If gen is non-nil, it is used to generate all of the
// random parameters.
func RandomModel(gen *rand.Rand, states []State, obs []Obs) *Model {
	res := &Model{
		States: append([]State{}, states...),
		Start:  map[State]float64{},
		Trans:  map[State]map[State]float64{},
		Emit:   map[State]map[Obs]float64{},
	}
	for i, prob := range randomDist(gen, len(states)) {
		res.Start[states[i]] = prob
	}
	for _, state := range states {
		res.Trans[state] = map[State]float64{}
		for i, prob := range randomDist(gen, len(states)) {
			res.Trans[state][states[i]] = prob
		}
		res.Emit[state] = map[Obs]float64{}
		for i, prob := range randomDist(gen, len(obs)) {
			res.Emit[state][obs[i]] = prob
		}
	}
	return res
}

// SampleLen samples a sequence of n hidden states and
// the observations they emit.
//
// The model must be valid for sampling; in particular,
// every state needs a transition row and an emission
// row.
//
// If gen is not nil, it may be used instead of the
// global routines in package rand.
// However, even if gen is not nil, there is no
// guarantee that sequences are reproducible across
// runs, since emission rows are stored in maps.
func (m *Model) SampleLen(gen *rand.Rand, n int) ([]State, []Obs) {
	var states []State
	var obs []Obs
	if n <= 0 {
		return states, obs
	}

	probs := make([]float64, len(m.States))
	for i, state := range m.States {
		probs[i] = m.Start[state]
	}
	state := m.States[sampleIndex(gen, probs)]

	for i := 0; i < n; i++ {
		states = append(states, state)
		obs = append(obs, m.sampleEmission(gen, state))
		row := m.Trans[state]
		if len(row) == 0 {
			panic(fmt.Sprintf("no transitions from state %v", state))
		}
		for j, to := range m.States {
			probs[j] = row[to]
		}
		state = m.States[sampleIndex(gen, probs)]
	}
	return states, obs
}

func (m *Model) sampleEmission(gen *rand.Rand, state State) Obs {
	if len(m.Emit[state]) == 0 {
		panic(fmt.Sprintf("no emissions for state %v", state))
	}
	var obses []Obs
	var probs []float64
	for obs, prob := range m.Emit[state] {
		obses = append(obses, obs)
		probs = append(probs, prob)
	}
	return obses[sampleIndex(gen, probs)]
}

// SerializerType returns the unique ID used to serialize
// a Model with the serializer package.
func (m *Model) SerializerType() string {
	return "github.com/wiseman/viterbi.Model"
}

// Serialize serializes the Model.
//
// This requires that every state and observation either
// implements serializer.Serializer or is a string or an
// int.
func (m *Model) Serialize() (data []byte, err error) {
	defer essentials.AddCtxTo("serialize Model", &err)

	var states []serializer.Serializer
	var startProbs []float64
	var transStates []serializer.Serializer
	var transProbs []float64
	var emitStates []serializer.Serializer
	var emitObs []serializer.Serializer
	var emitProbs []float64

	for _, state := range m.States {
		stateSer, err := toSerializer(state)
		if err != nil {
			return nil, err
		}
		states = append(states, stateSer)
		startProbs = append(startProbs, m.Start[state])
	}
	for i, from := range m.States {
		for to, prob := range m.Trans[from] {
			toSer, err := toSerializer(to)
			if err != nil {
				return nil, err
			}
			transStates = append(transStates, states[i], toSer)
			transProbs = append(transProbs, prob)
		}
		for obs, prob := range m.Emit[from] {
			obsSer, err := toSerializer(obs)
			if err != nil {
				return nil, err
			}
			emitStates = append(emitStates, states[i])
			emitObs = append(emitObs, obsSer)
			emitProbs = append(emitProbs, prob)
		}
	}
	return serializer.SerializeAny(states, startProbs, transStates, transProbs,
		emitStates, emitObs, emitProbs)
}

func toSerializer(x interface{}) (serializer.Serializer, error) {
	switch x := x.(type) {
	case serializer.Serializer:
		return x, nil
	case string:
		return plainString(x), nil
	case int:
		return plainInt(x), nil
	default:
		return nil, fmt.Errorf("not a Serializer: %T", x)
	}
}

func fromSerializer(s serializer.Serializer) interface{} {
	switch s := s.(type) {
	case plainString:
		return string(s)
	case plainInt:
		return int(s)
	default:
		return s
	}
}

// plainString encodes a state or observation that was a
// string rather than a serializer.String, so that it is
// decoded back into a string.
type plainString string

func deserializePlainString(d []byte) (plainString, error) {
	return plainString(d), nil
}

func (p plainString) Serialize() ([]byte, error) {
	return []byte(p), nil
}

func (p plainString) SerializerType() string {
	return "github.com/wiseman/viterbi.plainString"
}

// plainInt is the int counterpart of plainString.
type plainInt int

func deserializePlainInt(d []byte) (plainInt, error) {
	x, err := serializer.DeserializeInt(d)
	return plainInt(x), err
}

func (p plainInt) Serialize() ([]byte, error) {
	return serializer.Int(p).Serialize()
}

func (p plainInt) SerializerType() string {
	return "github.com/wiseman/viterbi.plainInt"
}

func serializersComparable(lists ...[]serializer.Serializer) bool {
	for _, list := range lists {
		for _, x := range list {
			if !isComparable(x) {
				return false
			}
		}
	}
	return true
}

// isComparable reports whether x can be used as a map
// key without panicking.
func isComparable(x interface{}) bool {
	return x != nil && reflect.TypeOf(x).Comparable()
}
