package viterbi

import (
	"errors"
	"fmt"

	"github.com/unixpickle/essentials"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Plot charts the trellis with one line per state,
// plotting each score against its timestep.
func (t *Trellis) Plot() (p *plot.Plot, err error) {
	defer essentials.AddCtxTo("plot trellis", &err)
	if t.Len() == 0 {
		return nil, errors.New("empty trellis")
	}

	p = plot.New()
	p.Title.Text = "Viterbi trellis"
	p.X.Label.Text = "Timestep"
	p.Y.Label.Text = "log10 probability"

	for i, state := range t.States {
		points := make(plotter.XYs, t.Len())
		for step, row := range t.LogProbs {
			points[step].X = float64(step)
			points[step].Y = row[i]
		}
		line, err := plotter.NewLine(points)
		if err != nil {
			return nil, err
		}
		line.Color = plotutil.Color(i)
		line.Dashes = plotutil.Dashes(i)
		p.Add(line)
		p.Legend.Add(fmt.Sprint(state), line)
	}
	return p, nil
}

// SavePlot writes the chart from Plot to a file.
// The image format is picked from the extension of path,
// e.g. ".png" or ".svg".
func (t *Trellis) SavePlot(path string) error {
	p, err := t.Plot()
	if err != nil {
		return err
	}
	return p.Save(6*vg.Inch, 4*vg.Inch, path)
}
