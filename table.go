package viterbi

import (
	"fmt"
	"io"
	"strings"
)

const (
	tableLabelWidth = 5
	tableCellWidth  = 7
)

// Render formats the trellis as a text table with one
// column per timestep and one row per state.
//
// Labels are cut to 5 characters and scores to 7.
// A nil or empty trellis renders as "".
func Render(t *Trellis) string {
	if t.Len() == 0 {
		return ""
	}
	var b strings.Builder
	b.WriteString(strings.Repeat(" ", tableLabelWidth+2))
	for step := 0; step < t.Len(); step++ {
		if step > 0 {
			b.WriteByte(' ')
		}
		fmt.Fprintf(&b, "%*d", tableCellWidth, step)
	}
	b.WriteByte('\n')
	for i, state := range t.States {
		fmt.Fprintf(&b, "%-*.*s: ", tableLabelWidth, tableLabelWidth, fmt.Sprint(state))
		for step, row := range t.LogProbs {
			if step > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%*.*s", tableCellWidth, tableCellWidth, fmt.Sprintf("%f", row[i]))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String is equivalent to Render(t).
func (t *Trellis) String() string {
	return Render(t)
}

// WriteTable writes Render(t) to w.
func (t *Trellis) WriteTable(w io.Writer) error {
	_, err := io.WriteString(w, Render(t))
	return err
}
