package main

import (
	"bytes"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/wiseman/viterbi"
)

func TestRandomInputs(t *testing.T) {
	model, obs := randomInputs(1, 3, 2, 5)
	if len(model.States) != 3 {
		t.Errorf("expected 3 states but got %d", len(model.States))
	}
	if len(obs) != 5 {
		t.Fatalf("expected 5 observations but got %d", len(obs))
	}
	res, err := model.MostLikely(obs)
	if err != nil {
		t.Fatal(err)
	}
	if len(res.Path) != len(obs) {
		t.Errorf("expected path length %d but got %d", len(obs), len(res.Path))
	}
}

func TestParseObs(t *testing.T) {
	actual := parseObs("normal, cold ,dizzy")
	expected := []viterbi.Obs{"normal", "cold", "dizzy"}
	if !reflect.DeepEqual(actual, expected) {
		t.Errorf("expected %v but got %v", expected, actual)
	}
}

func TestRunSaveLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model")

	var saved bytes.Buffer
	if err := run(options{SavePath: path}, &saved); err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(saved.String(), "path: [Healthy Healthy Fever]") {
		t.Errorf("unexpected output: %s", saved.String())
	}

	model, obs, err := loadInputs(options{ModelPath: path, ObsList: "normal,cold,dizzy"})
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(model, viterbi.ExampleModel()) {
		t.Errorf("expected %v but got %v", viterbi.ExampleModel(), model)
	}
	if !reflect.DeepEqual(obs, viterbi.ExampleObservations()) {
		t.Errorf("expected %v but got %v", viterbi.ExampleObservations(), obs)
	}

	var loaded bytes.Buffer
	if err := run(options{ModelPath: path, ObsList: "normal,cold,dizzy"}, &loaded); err != nil {
		t.Fatal(err)
	}
	if loaded.String() != saved.String() {
		t.Errorf("expected %q but got %q", saved.String(), loaded.String())
	}
}

func TestRunErrors(t *testing.T) {
	var out bytes.Buffer
	if err := run(options{ModelPath: "x", RandomStates: 2}, &out); err == nil {
		t.Error("expected an error for -random with -model")
	}
	missing := filepath.Join(t.TempDir(), "missing")
	if err := run(options{ModelPath: missing}, &out); err == nil {
		t.Error("expected an error for a missing model file")
	}
	if err := run(options{ObsList: "normal,sneezing"}, &out); !viterbi.IsConfigError(err) {
		t.Errorf("expected a config error but got %v", err)
	}
}

func TestTraceSteps(t *testing.T) {
	res, err := viterbi.Example()
	if err != nil {
		t.Fatal(err)
	}
	model := viterbi.ExampleModel()
	if err := traceSteps(model, viterbi.ExampleObservations(), res.Trellis); err != nil {
		t.Fatal(err)
	}
	if err := traceSteps(model, viterbi.ExampleObservations()[:1], res.Trellis); err == nil {
		t.Error("expected an error for a trellis longer than the observations")
	}
}
