package fabriccore

import "github.com/sgino209/uarch-simtb/internal/kernel"

// Causes ported from the string/tuple interrupt causes in
// original_source/Fabric.py, Fabric_socket.py, Initiator_queue.py and
// Target_process.py. Each satisfies kernel.Cause via the sealed
// kernel.CauseBase embed (see spec.md §9 "Cyclic references" /
// kernel/cause.go), so a handler's type switch is exhaustive by
// construction within this package.
type (
	// Grant is raised by Queue.Dequeue on the owning Procedure, equivalent
	// to Initiator_queue.py's `procedures[...].action.interrupt('Grant')`.
	Grant struct{ kernel.CauseBase }

	// SocketGranted is raised by a Socket on the Fabric each tick it is
	// both an initiator socket and currently granted.
	SocketGranted struct {
		kernel.CauseBase
		Initiator string
	}

	// InitiatorDequeue is raised by Queue.Dequeue on the Fabric (the
	// "caller" in Initiator_queue.py.dequeue) once an item is pulled.
	InitiatorDequeue struct {
		kernel.CauseBase
		Req Request
	}

	// MessageForTarget is raised by the Fabric on a target Socket, and
	// forwarded unchanged back to the Fabric by that Socket — mirroring
	// Fabric_socket.py's `self.parent.action.interrupt(int_cause)`.
	MessageForTarget struct {
		kernel.CauseBase
		Req Request
	}

	// DeliverToTarget is raised by the Fabric on the actual Target
	// process, once a MessageForTarget has made its round trip through the
	// target Socket. It carries the Fabric's own ActorID so the Target can
	// address its acknowledgement without holding a direct reference.
	DeliverToTarget struct {
		kernel.CauseBase
		Req      Request
		FabricID kernel.ActorID
	}

	// AckFromTarget is raised by a Target on the Fabric, and relayed by the
	// Fabric to the originating Initiator process.
	AckFromTarget struct {
		kernel.CauseBase
		Target    string
		Initiator string
	}
)
