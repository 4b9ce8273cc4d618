// Package linkcore is the port of SimPy_Examples/link_sim.py: a single
// producer/link/consumer chain modeling a narrow-to-wide "pack" link that
// upscales its transfer width under sustained demand and downgrades it
// under sustained idleness, with a fixed control-plane delay between a
// decision and its effect.
//
// Unlike internal/fabriccore (many actors, routed through the scheduler's
// registry by ActorID), this package is a small, tightly coupled chain:
// exactly one Producer, one Link, and one Consumer (or two of each, for
// DualRun's side-by-side gated/bypass comparison), wired directly by Go
// pointer rather than through the registry. Nothing here is looked up by
// name, so there is no risk of the reference-cycle problem
// internal/fabriccore's ActorID indirection exists to solve.
package linkcore
