package kernel

// causeSealed is embedded (via the exported CauseBase alias) by every
// concrete interrupt payload type defined outside this package. It is the
// standard Go "sealed interface" trick: Cause can only be satisfied by
// types that embed CauseBase, because isCause is unexported and declared
// here.
//
// This is the Go-native replacement for spec.md's "closed sum type Cause"
// design note (§9, "Dynamic string-tagged interrupts"): instead of matching
// on a string tag at runtime, callers type-switch on the concrete Cause
// value, and the compiler (not a runtime default case) enforces that every
// Cause implementation is deliberately declared as one.
type causeSealed struct{}

func (causeSealed) isCause() {}

// CauseBase must be embedded by every concrete Cause implementation.
type CauseBase = causeSealed

// Cause is the payload carried by an Interrupt. Besides Tick below, the
// concrete causes are defined by internal/fabriccore (Grant,
// InitiatorDequeue, SocketGranted, MessageForTarget, DeliverToTarget,
// AckFromTarget and the unexported setGrant); internal/linkcore defines none.
type Cause interface {
	isCause()
}

// Tick is the cause used for periodic, self-scheduled wakeups; components
// that drive their own recurring behavior via Recurring (see scheduler.go)
// don't need it, but it is useful for components that model both a timed
// tick and named interrupts behind a single Handler (e.g. tests that want
// to inject an explicit tick out of band).
type Tick struct{ CauseBase }
