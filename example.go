package viterbi

// ExampleModel returns a small model of a patient who is
// either Healthy or has a Fever, and who reports feeling
// normal, cold, or dizzy.
func ExampleModel() *Model {
	return &Model{
		States: []State{"Healthy", "Fever"},
		Start: map[State]float64{
			"Healthy": 0.6,
			"Fever":   0.4,
		},
		Trans: map[State]map[State]float64{
			"Healthy": {"Healthy": 0.7, "Fever": 0.3},
			"Fever":   {"Healthy": 0.4, "Fever": 0.6},
		},
		Emit: map[State]map[Obs]float64{
			"Healthy": {"normal": 0.5, "cold": 0.4, "dizzy": 0.1},
			"Fever":   {"normal": 0.1, "cold": 0.3, "dizzy": 0.6},
		},
	}
}

// ExampleObservations returns the symptoms reported over
// three days.
func ExampleObservations() []Obs {
	return []Obs{"normal", "cold", "dizzy"}
}

// Example decodes ExampleObservations with ExampleModel.
// The most likely path is Healthy, Healthy, Fever, with
// a probability of about 0.01512.
func Example() (*Result, error) {
	return ExampleModel().MostLikely(ExampleObservations())
}
