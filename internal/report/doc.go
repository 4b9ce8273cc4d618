// Package report replaces SimPy_Examples/link_sim.py's matplotlib section:
// the Python original accumulates per-cycle sample arrays (link_state,
// buffer_fullness, consumer_bw, ...) and hands them to pyplot at the end of
// a run. This package keeps the sampling contract (a Reporter records one
// named sample at a time) but renders to CSV instead of a plot window,
// since a plotting library has no place in a headless simulation CLI.
package report
