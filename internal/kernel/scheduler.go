package kernel

import "container/heap"

// event is a single scheduled callback. seq is assigned in submission order
// and breaks ties between events scheduled for the same Time, giving the
// FIFO-at-equal-time ordering spec.md §4.1/§5 requires: "a process that
// yields Timeout(0) re-enters the ready queue behind peers at the same
// instant".
type event struct {
	at  Time
	seq uint64
	fn  func(s *Scheduler)
}

// eventQueue is a container/heap min-heap ordered by (at, seq), the same
// pattern as eventloop/loop.go's timerHeap.
type eventQueue []event

func (q eventQueue) Len() int { return len(q) }
func (q eventQueue) Less(i, j int) bool {
	if q[i].at != q[j].at {
		return q[i].at < q[j].at
	}
	return q[i].seq < q[j].seq
}
func (q eventQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }
func (q *eventQueue) Push(x any)   { *q = append(*q, x.(event)) }
func (q *eventQueue) Pop() any {
	old := *q
	n := len(old)
	x := old[n-1]
	*q = old[:n-1]
	return x
}

// Scheduler is the single-threaded cooperative discrete-event kernel
// described in spec.md §4.1. It owns simulated time, the event queue, and
// the actor registry; no component in internal/fabriccore or
// internal/linkcore holds a direct reference to another — everything is
// resolved through the Scheduler by ActorID or name.
type Scheduler struct {
	now      Time
	queue    eventQueue
	seq      uint64
	registry *registry
	rng      *RNG
	logger   Logger
	fatal    error
}

// Option configures a Scheduler at construction time, following the
// functional-options shape of eventloop/options.go.
type Option func(*Scheduler)

// WithSeed seeds the scheduler's deterministic RNG (spec.md §9: "Global
// mutable clock and RNG ... Determinism requires a seedable RNG threaded
// through actor construction").
func WithSeed(seed uint64) Option {
	return func(s *Scheduler) { s.rng = NewRNG(seed) }
}

// WithLogger attaches a Logger used for kernel-level diagnostics (actor
// registration, fatal aborts). Components log their own domain-level
// messages through internal/simlog, not through this logger.
func WithLogger(l Logger) Option {
	return func(s *Scheduler) { s.logger = l }
}

// NewScheduler constructs a Scheduler at time 0.
func NewScheduler(opts ...Option) *Scheduler {
	s := &Scheduler{
		registry: newRegistry(),
		rng:      NewRNG(1),
		logger:   NopLogger{},
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Now returns the current simulated time.
func (s *Scheduler) Now() Time { return s.now }

// RNG returns the scheduler's deterministic random source.
func (s *Scheduler) RNG() *RNG { return s.rng }

// Spawn registers a named actor and returns its stable ActorID. Actors are
// never unregistered: spec.md §3 states the whole testbench is created at
// init and lives for the entire run.
func (s *Scheduler) Spawn(name string, h Handler) (ActorID, error) {
	return s.registry.register(name, h)
}

// Lookup resolves a registered actor's name to its ActorID.
func (s *Scheduler) Lookup(name string) (ActorID, bool) {
	return s.registry.lookup(name)
}

// NameOf returns the registered name of id, for logging.
func (s *Scheduler) NameOf(id ActorID) string {
	return s.registry.nameOf(id)
}

// Schedule runs fn after d has elapsed (a Timeout(d) event).
func (s *Scheduler) Schedule(d Duration, fn func(s *Scheduler)) {
	s.ScheduleAt(s.now.Add(d), fn)
}

// ScheduleAt runs fn at absolute time at, which must be >= Now(). Scheduling
// at the current time is how interrupts are delivered "at the next yield
// boundary, in send order" without actually suspending a goroutine: the
// callback simply runs after every event already queued for this instant.
func (s *Scheduler) ScheduleAt(at Time, fn func(s *Scheduler)) {
	s.seq++
	heap.Push(&s.queue, event{at: at, seq: s.seq, fn: fn})
}

// Interrupt delivers cause to target's Handler. Per spec.md §4.1/§5, this is
// scheduled for the current instant, after every already-queued event at
// that instant (FIFO): two interrupts sent in order A then B are always
// observed by their (possibly different) targets in that order relative to
// each other and to any tick already queued for now.
func (s *Scheduler) Interrupt(target ActorID, cause Cause) {
	s.ScheduleAt(s.now, func(s *Scheduler) {
		h, ok := s.registry.handler(target)
		if !ok {
			return
		}
		h.HandleInterrupt(s, cause)
	})
}

// InterruptByName resolves name and delivers cause to it. Returns false if
// name is not registered (callers typically treat this as a
// ProtocolViolation/fatal condition at the call site).
func (s *Scheduler) InterruptByName(name string, cause Cause) bool {
	id, ok := s.registry.lookup(name)
	if !ok {
		return false
	}
	s.Interrupt(id, cause)
	return true
}

// Abort records a fatal condition raised by some component (the Go
// equivalent of Auxiliary.py.error's sys.exit()). Only the first Abort call
// is retained; Run checks for it before popping each event, so it returns
// as soon as the event handler that called Abort itself returns — any
// sibling event already queued for that same instant is left unrun, the
// same way Python's os.exit() would tear the whole process down the moment
// that component's generator called it, without waiting for other
// generators scheduled at the same env.now to get their turn.
func (s *Scheduler) Abort(err error) {
	if err == nil || s.fatal != nil {
		return
	}
	s.fatal = err
}

// Err returns the fatal error recorded via Abort, or nil if the run
// completed cleanly.
func (s *Scheduler) Err() error { return s.fatal }

// Run drains the event queue until it is empty, Now() >= until, or Abort
// has been called.
func (s *Scheduler) Run(until Time) {
	for len(s.queue) > 0 {
		if s.fatal != nil {
			return
		}
		next := s.queue[0]
		if next.at >= until {
			s.now = until
			return
		}
		heap.Pop(&s.queue)
		s.now = next.at
		next.fn(s)
	}
	if s.now < until {
		s.now = until
	}
}

// Recurring schedules fn to run every period, starting at now+period, until
// the scheduler stops advancing time (Run returns). This is the
// self-rescheduling replacement for a Python "while True: yield
// env.timeout(period); ..." loop: every tick callback re-submits itself
// before returning, so ticks never pile up faster than real simulated time.
func Recurring(s *Scheduler, period Duration, fn func(s *Scheduler)) {
	var tick func(s *Scheduler)
	tick = func(s *Scheduler) {
		fn(s)
		s.Schedule(period, tick)
	}
	s.Schedule(period, tick)
}
