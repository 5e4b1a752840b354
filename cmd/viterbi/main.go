// Command viterbi decodes an observation sequence and
// prints the trellis and the most likely hidden path.
//
// With no flags it decodes the Healthy/Fever example.
// Run with -v=1 -logtostderr to trace every timestep.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"

	"github.com/golang/glog"
	"github.com/unixpickle/essentials"
	"github.com/unixpickle/serializer"
	"github.com/wiseman/viterbi"
)

type options struct {
	ModelPath     string
	ObsList       string
	SavePath      string
	PlotPath      string
	RandomStates  int
	RandomSymbols int
	SampleLen     int
	Seed          int64
}

func main() {
	var opts options
	flag.StringVar(&opts.ModelPath, "model", "", "serialized model file (default: example model)")
	flag.StringVar(&opts.ObsList, "obs", "", "comma-separated observations")
	flag.StringVar(&opts.SavePath, "save", "", "write the model to this file")
	flag.StringVar(&opts.PlotPath, "plot", "", "write a chart of the trellis to this file")
	flag.IntVar(&opts.RandomStates, "random", 0, "decode a random model with this many states")
	flag.IntVar(&opts.RandomSymbols, "symbols", 3, "number of symbols for -random")
	flag.IntVar(&opts.SampleLen, "len", 10, "sampled sequence length for -random")
	flag.Int64Var(&opts.Seed, "seed", 1, "random seed for -random")
	flag.Parse()
	defer glog.Flush()

	if err := run(opts, os.Stdout); err != nil {
		glog.Exit(err)
	}
}

func run(opts options, w io.Writer) error {
	model, obs, err := loadInputs(opts)
	if err != nil {
		return err
	}

	if opts.SavePath != "" {
		if err := serializer.SaveAny(opts.SavePath, model); err != nil {
			return err
		}
		glog.Infof("saved model to %s", opts.SavePath)
	}

	res, err := model.MostLikely(obs)
	if err != nil {
		return err
	}
	if glog.V(1) {
		if err := traceSteps(model, obs, res.Trellis); err != nil {
			return err
		}
	}

	if err := res.Trellis.WriteTable(w); err != nil {
		return err
	}
	fmt.Fprintf(w, "probability: %g (log10 %f)\n", res.Prob, res.LogProb)
	fmt.Fprintf(w, "path: %v\n", res.Path)

	if opts.PlotPath != "" {
		if err := res.Trellis.SavePlot(opts.PlotPath); err != nil {
			return err
		}
		glog.Infof("wrote trellis chart to %s", opts.PlotPath)
	}
	return nil
}

func loadInputs(opts options) (model *viterbi.Model, obs []viterbi.Obs, err error) {
	switch {
	case opts.RandomStates > 0 && opts.ModelPath != "":
		return nil, nil, errors.New("-random and -model are mutually exclusive")
	case opts.RandomStates > 0:
		model, obs = randomInputs(opts.Seed, opts.RandomStates, opts.RandomSymbols,
			opts.SampleLen)
	case opts.ModelPath != "":
		if err := serializer.LoadAny(opts.ModelPath, &model); err != nil {
			return nil, nil, essentials.AddCtx("load model", err)
		}
	default:
		model = viterbi.ExampleModel()
		obs = viterbi.ExampleObservations()
	}
	if opts.ObsList != "" {
		obs = parseObs(opts.ObsList)
	}
	return model, obs, nil
}

func parseObs(list string) []viterbi.Obs {
	var obs []viterbi.Obs
	for _, o := range strings.Split(list, ",") {
		obs = append(obs, strings.TrimSpace(o))
	}
	return obs
}

func randomInputs(seed int64, numStates, numSymbols, n int) (*viterbi.Model, []viterbi.Obs) {
	gen := rand.New(rand.NewSource(seed))
	states := make([]viterbi.State, numStates)
	for i := range states {
		states[i] = fmt.Sprintf("s%d", i)
	}
	symbols := make([]viterbi.Obs, numSymbols)
	for i := range symbols {
		symbols[i] = fmt.Sprintf("o%d", i)
	}
	model := viterbi.RandomModel(gen, states, symbols)
	hidden, obs := model.SampleLen(gen, n)
	glog.V(1).Infof("sampled hidden path: %v", hidden)
	return model, obs
}

func traceSteps(model *viterbi.Model, obs []viterbi.Obs, t *viterbi.Trellis) error {
	first, _ := t.At(0)
	glog.Infof("T=0 scores: %v", first)
	for step := 1; step < t.Len(); step++ {
		for _, state := range model.States {
			candidates, err := model.Candidates(t, obs, step, state)
			if err != nil {
				return err
			}
			pred, _ := t.Predecessor(step, state)
			score, _ := t.LogProb(step, state)
			glog.Infof("T=%d candidates for state %v: %v", step, state, candidates)
			glog.Infof("T=%d best candidate for state %v: (%f, %v)", step, state, score, pred)
		}
	}
	return nil
}
