package fabriccore

import (
	"fmt"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Queue is the port of Initiator_queue.py: a FIFO with byte-accounted
// capacity, no blocking (enqueue against a full queue is rejected
// outright, matching spec.md §4.2 — this is why it's a plain slice rather
// than a kernel.Store).
type Queue struct {
	name  string
	aux   *simlog.Auxiliary
	depth int
	width int

	items      []Request
	fullness   int
	overflows  int
	underflows int

	procedures map[string]kernel.ActorID
}

// NewQueue constructs a Queue from its configuration.
func NewQueue(name string, p config.QueueParams, aux *simlog.Auxiliary) *Queue {
	q := &Queue{
		name:       name,
		aux:        aux,
		depth:      p.Depth,
		width:      p.Width,
		procedures: make(map[string]kernel.ActorID),
	}
	aux.Debug(q.name, fmt.Sprintf("Created with params: %+v", p))
	return q
}

// Capacity returns DEPTH*WIDTH in bytes.
func (q *Queue) Capacity() int { return q.depth * q.width }

// Fullness returns the current resident byte count.
func (q *Queue) Fullness() int { return q.fullness }

// Overflows returns the number of Enqueue calls rejected for lack of
// capacity so far, the counted form of the "not fatal ... must be counted,
// not raised" requirement spec.md §7 places on capacity conditions.
func (q *Queue) Overflows() int { return q.overflows }

// Underflows returns the number of Dequeue calls made against an empty
// queue so far.
func (q *Queue) Underflows() int { return q.underflows }

// recordCapacityEvent bumps the matching counter for a non-fatal capacity
// condition and logs it; label is the human-readable log prefix ("Overflow"
// or "Underflow") for ev.Kind ("overflow"/"underflow").
func (q *Queue) recordCapacityEvent(ev kernel.CapacityEvent, label, detail string) {
	switch ev.Kind {
	case "overflow":
		q.overflows++
	case "underflow":
		q.underflows++
	}
	q.aux.Debug(q.name, fmt.Sprintf("%s: %s", label, detail))
}

// BindProcedure registers the ActorID that should receive a Grant when a
// request is dequeued. The key must be the procedure's own configured
// queue name (config.ProcedureParams.Queue) — the same value every
// Request it enqueues carries in Src.Queue — not the procedure's own
// name: Initiator_queue.py.dequeue looks a Grant target up by
// `request['src'][1]`, which is that queue-name field, not a procedure
// identifier. Two procedures sharing one queue (Initiator_process.py's
// docstring calls this out as supported) will both bind under the same
// key, so the later bind wins; this mirrors the original's own behavior
// rather than inventing per-request provenance it never tracked.
func (q *Queue) BindProcedure(key string, id kernel.ActorID) {
	q.procedures[key] = id
}

// Enqueue appends req if capacity allows, returning "OK" or "OVF" exactly
// as Initiator_queue.py.enqueue does. No partial enqueue: size must be
// admissible against remaining capacity as a whole (spec.md §4.2
// invariant).
func (q *Queue) Enqueue(req Request) string {
	if q.fullness+req.Size > q.Capacity() {
		q.recordCapacityEvent(kernel.CapacityEvent{Component: q.name, Kind: "overflow"},
			"Overflow", fmt.Sprintf("fullness=%d, request=%d", q.fullness, req.Size))
		return "OVF"
	}
	q.fullness += req.Size
	q.items = append(q.items, req)

	q.aux.Debug(q.name, fmt.Sprintf("Enqueue: %+v", req))
	q.aux.Debug(q.name, fmt.Sprintf("Items currently in queue (%d)", len(q.items)))
	return "OK"
}

// Dequeue pulls the head request (if any), raises a Grant on the owning
// Procedure, and raises InitiatorDequeue(req) on caller — the Fabric,
// identified by its ActorID. Mirrors Initiator_queue.py.dequeue.
func (q *Queue) Dequeue(sch *kernel.Scheduler, caller kernel.ActorID) {
	if len(q.items) == 0 {
		q.recordCapacityEvent(kernel.CapacityEvent{Component: q.name, Kind: "underflow"},
			"Underflow", fmt.Sprintf("fullness=%d", q.fullness))
		return
	}

	q.aux.Debug(q.name, "Dequeue started")
	req := q.items[0]
	q.items = q.items[1:]
	q.aux.Debug(q.name, fmt.Sprintf("Dequeue completed: %+v", req))
	q.aux.Debug(q.name, fmt.Sprintf("Items currently in queue (%d)", len(q.items)))

	q.fullness -= req.Size

	if id, ok := q.procedures[req.Src.Queue]; ok {
		q.aux.Debug(q.name, fmt.Sprintf("Sending Grant to procedure %q", req.Src.Queue))
		sch.Interrupt(id, Grant{})
	}

	sch.Interrupt(caller, InitiatorDequeue{Req: req})
}
