package report

import (
	"encoding/csv"
	"fmt"
	"io"
)

// CSVReporter writes every Sample as one CSV row (series,time,value),
// replacing link_sim.py's per-series in-memory arrays plus the final
// plt.plot/plt.hist calls with a single flat, greppable log any downstream
// tool (a notebook, a spreadsheet, a second Go program) can consume.
type CSVReporter struct {
	w       *csv.Writer
	wrote   bool
	closeFn func() error
}

// NewCSVReporter wraps w. The caller remains responsible for closing w
// itself if it implements io.Closer; CSVReporter.Close only flushes.
func NewCSVReporter(w io.Writer) *CSVReporter {
	return &CSVReporter{w: csv.NewWriter(w)}
}

func (r *CSVReporter) Record(s Sample) {
	if !r.wrote {
		_ = r.w.Write([]string{"series", "time_ns", "value"})
		r.wrote = true
	}
	_ = r.w.Write([]string{s.Series, fmt.Sprintf("%.2f", float64(s.At)), fmt.Sprintf("%g", s.Value)})
}

func (r *CSVReporter) Close() error {
	r.w.Flush()
	return r.w.Error()
}
