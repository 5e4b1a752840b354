package viterbi

import (
	"errors"
	"fmt"
	"math"

	"github.com/hashicorp/go-multierror"
)

// A ConfigError describes one way in which a Model or an
// observation sequence cannot be decoded.
type ConfigError struct {
	Msg string
}

func configErrorf(format string, args ...interface{}) *ConfigError {
	return &ConfigError{Msg: fmt.Sprintf(format, args...)}
}

// Error returns the problem description.
func (c *ConfigError) Error() string {
	return c.Msg
}

// IsConfigError checks if any error in the chain of err
// is a *ConfigError.
func IsConfigError(err error) bool {
	var c *ConfigError
	return errors.As(err, &c)
}

// Validate checks that the model can decode obs.
//
// Every state needs a start probability, a transition
// probability to every state, and an emission
// probability for every symbol in obs.
// Each of these must be in (0, 1].
//
// All problems are reported together in one error; each
// of them is a *ConfigError.
func (m *Model) Validate(obs []Obs) error {
	var errs *multierror.Error
	add := func(format string, args ...interface{}) {
		errs = multierror.Append(errs, configErrorf(format, args...))
	}

	if len(m.States) == 0 {
		add("no states")
	}
	if len(obs) == 0 {
		add("empty observation sequence")
	}

	var symbols []Obs
	seenSymbols := map[Obs]bool{}
	for i, o := range obs {
		if !isComparable(o) {
			add("observation %d (%v) is not comparable", i, o)
		} else if !seenSymbols[o] {
			seenSymbols[o] = true
			symbols = append(symbols, o)
		}
	}

	var states []State
	seenStates := map[State]bool{}
	for i, s := range m.States {
		if !isComparable(s) {
			add("state %d (%v) is not comparable", i, s)
		} else if seenStates[s] {
			add("duplicate state %v", s)
		} else {
			seenStates[s] = true
			states = append(states, s)
		}
	}

	for _, from := range states {
		if p, ok := m.Start[from]; !ok {
			add("missing start probability for %v", from)
		} else if msg := checkProb(p); msg != "" {
			add("start probability for %v %s", from, msg)
		}

		if row, ok := m.Trans[from]; !ok {
			add("no transitions from %v", from)
		} else {
			for _, to := range states {
				if p, ok := row[to]; !ok {
					add("missing transition %v -> %v", from, to)
				} else if msg := checkProb(p); msg != "" {
					add("transition %v -> %v %s", from, to, msg)
				}
			}
		}

		if row, ok := m.Emit[from]; !ok {
			add("no emissions for %v", from)
		} else {
			for _, o := range symbols {
				if p, ok := row[o]; !ok {
					add("state %v cannot emit %v", from, o)
				} else if msg := checkProb(p); msg != "" {
					add("emission of %v by %v %s", o, from, msg)
				}
			}
		}
	}

	return errs.ErrorOrNil()
}

func checkProb(p float64) string {
	switch {
	case math.IsNaN(p):
		return "is NaN"
	case p <= 0:
		return fmt.Sprintf("is %v, not positive", p)
	case p > 1:
		return fmt.Sprintf("is %v, greater than 1", p)
	}
	return ""
}
