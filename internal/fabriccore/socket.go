package fabriccore

import (
	"fmt"

	"github.com/sgino209/uarch-simtb/internal/config"
	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Socket is the port of Fabric_socket.py: one per testbench leg (initiator
// or target), ticking every clock and either flagging the Fabric that its
// owning initiator currently holds the grant, or forwarding a
// MessageForTarget on to the Fabric when it is a target leg.
type Socket struct {
	key    string // the socket's configuration key, e.g. matching an initiator name
	name   string // display name, "Fabric_socket_<key>"
	aux    *simlog.Auxiliary
	params config.SocketParams
	clk    kernel.Duration

	fabric  kernel.ActorID
	granted bool
}

// NewSocket constructs a Socket. Per Fabric_socket.py.__init__, a target
// socket starts granted (it never needs the Arbiter's permission to
// receive), and only an initiator socket starts ungranted, waiting for the
// Arbiter's first rotation.
func NewSocket(key string, p config.SocketParams, clk kernel.Duration, fabric kernel.ActorID, aux *simlog.Auxiliary) *Socket {
	s := &Socket{
		key:     key,
		name:    "Fabric_socket_" + key,
		aux:     aux,
		params:  p,
		clk:     clk,
		fabric:  fabric,
		granted: p.InitTgt != config.InitTgtInitiator,
	}
	aux.Debug(s.name, fmt.Sprintf("Created with params: %+v", p))
	return s
}

// IsInitiator reports whether this socket models the initiator side of its
// leg.
func (s *Socket) IsInitiator() bool { return s.params.InitTgt == config.InitTgtInitiator }

// SetGrant records whether this socket's initiator currently holds the
// fabric's grant, logging the edge exactly as Fabric_socket.py.set_grant
// does (only on the false->true transition, not on every tick).
func (s *Socket) SetGrant(granted bool) {
	if !s.granted && granted {
		s.aux.Debug(s.name, fmt.Sprintf("%q has been granted by Fabric Arbiter", s.name))
	}
	s.granted = granted
}

// Start schedules the socket's recurring tick.
func (s *Socket) Start(sch *kernel.Scheduler) {
	kernel.Recurring(sch, s.clk, s.tick)
}

func (s *Socket) tick(sch *kernel.Scheduler) {
	if s.IsInitiator() && s.granted {
		sch.Interrupt(s.fabric, SocketGranted{Initiator: s.key})
	}
}

// HandleInterrupt implements kernel.Handler. A Socket receives two causes
// out of band, both from the Fabric: setGrant on every Fabric tick, and
// MessageForTarget when a request is forwarded to it; an initiator socket
// receiving MessageForTarget is a protocol violation (fatal, per
// Fabric_socket.py.run's own error() call).
func (s *Socket) HandleInterrupt(sch *kernel.Scheduler, cause kernel.Cause) {
	switch c := cause.(type) {
	case setGrant:
		s.SetGrant(c.granted)
	case MessageForTarget:
		if s.IsInitiator() {
			sch.Abort(s.aux.Error(s.name, "An Initiator socket cannot receive Target messages"))
			return
		}
		sch.Interrupt(s.fabric, c)
	default:
		sch.Abort(s.aux.Error(s.name, fmt.Sprintf("Unknown interrupt: %v", cause)))
	}
}
