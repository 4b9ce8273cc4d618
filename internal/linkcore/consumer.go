package linkcore

import (
	"fmt"

	"github.com/sgino209/uarch-simtb/internal/kernel"
	"github.com/sgino209/uarch-simtb/internal/simlog"
)

// Consumer is the port of link_sim.py's consumer process: waits for the
// link's current can_dequeue() timeout (skipped entirely in bypass mode),
// then drains an item and records its instantaneous rate — unless the FSM
// is IDLE and this isn't the bypass link, in which case the buffer is left
// alone and the loop waits again.
type Consumer struct {
	name  string
	aux   *simlog.Auxiliary
	link  *Link
	stats *Stats

	// lastDequeueAt is link_sim.py's consumer()'s persistent `t`: updated
	// only inside drain's dequeue callback, after the rate for *this*
	// dequeue has been computed from the *previous* one. It must not be a
	// local reset at the top of drain — Store.Get invokes its callback
	// synchronously when an item is already resident, which is exactly the
	// high-throughput backlog case this rate measures, and a local
	// sch.Now()-at-entry would always equal sch.Now()-in-callback there.
	lastDequeueAt kernel.Time
}

// NewConsumer builds a Consumer draining link, recording to stats.
func NewConsumer(name string, link *Link, stats *Stats, aux *simlog.Auxiliary) *Consumer {
	return &Consumer{name: name, aux: aux, link: link, stats: stats}
}

// Start begins the consumer's wait/dequeue loop.
func (c *Consumer) Start(sch *kernel.Scheduler) {
	c.tick(sch)
}

func (c *Consumer) tick(sch *kernel.Scheduler) {
	if c.link.dummy {
		c.drain(sch)
		return
	}
	sch.Schedule(c.link.CanDequeue(), func(sch *kernel.Scheduler) {
		if c.link.state == StateIdle {
			c.tick(sch)
			return
		}
		c.drain(sch)
	})
}

// drain performs one dequeue and its rate sample, then continues the loop
// via a zero-delay reschedule rather than a direct recursive call — Store
// may resolve Get synchronously when an item is already resident, and a
// long run draining many buffered items back-to-back must not grow the Go
// call stack by one frame per item.
func (c *Consumer) drain(sch *kernel.Scheduler) {
	c.link.Dequeue(sch, func(v uint64) {
		dt := sch.Now().Sub(c.lastDequeueAt)
		rate := 0.0
		if dt > 0 {
			rate = (1000.0 / 8.0) / float64(dt)
		}
		c.lastDequeueAt = sch.Now()
		c.stats.recordDequeue(c.name, sch.Now(), rate)
		c.aux.Debug(c.name, fmt.Sprintf("dequeued msg=%d rate=%.3f Gbps", v, rate))
		sch.Schedule(0, c.tick)
	})
}
