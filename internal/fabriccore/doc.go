// Package fabriccore implements the F-core traffic model: bandwidth-
// generating Procedures feed bounded Queues, a round-robin Arbiter grants
// one Socket per fabric slot, and the Fabric routes granted requests to
// Targets and relays their acknowledgements back. It is a direct, typed
// port of original_source/Fabric*.py, Initiator_*.py and Target_process.py
// onto internal/kernel: every simpy.Interrupt("cause", ...) tuple becomes a
// concrete kernel.Cause type, and every cross-component reference that was
// a live Python object reference is a kernel.ActorID looked up through the
// owning *kernel.Scheduler instead.
package fabriccore
