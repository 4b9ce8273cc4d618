package kernel

// CapacityEvent records a non-fatal capacity condition — a full queue
// rejecting an Enqueue, or an empty queue/buffer rejecting a Dequeue.
// Unlike ConfigError/ProtocolViolation/UnknownInterrupt it is not an error
// and never aborts a run: spec.md §7 requires it "not fatal ... must be
// counted, not raised". Components expose the count through their own
// Overflows()/Underflows() accessors rather than returning CapacityEvent
// values directly; it exists as a named type so every such site reports the
// same shape.
type CapacityEvent struct {
	Component string
	Kind      string // "overflow" or "underflow"
}
