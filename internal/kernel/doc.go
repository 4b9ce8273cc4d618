// Package kernel implements the discrete-event scheduling backbone shared by
// the fabric (internal/fabriccore) and link (internal/linkcore) simulation
// models: a monotonic simulated clock, a time-ordered event queue, named
// actors addressed by a stable ActorID, inter-actor interrupts, and bounded
// FIFO stores with blocking put/get semantics.
//
// Every component in the two models above is reshaped from the generator/
// coroutine control flow of the Python original into a pair of hooks: a
// self-rescheduling tick callback (for periodic, timeout-driven behavior)
// and a Handler.HandleInterrupt method (for asynchronous, message-passing
// behavior). The scheduler never runs two of these concurrently — it is a
// single-threaded cooperative kernel, matching the "Concurrency & Resource
// Model" of the spec this package implements: correctness depends on
// deterministic event ordering, not on real parallelism.
package kernel
