// Package timer provides a background interval timer whose ticks carry
// absolute wall-clock timestamps. Consumers derive elapsed time from those
// timestamps, so delayed or skipped ticks never accumulate drift.
package timer

import (
	"context"
	"time"
)

// Kind identifies a worker message.
type Kind string

const (
	KindStart Kind = "START"
	KindStop  Kind = "STOP"
	KindTick  Kind = "TICK"
)

// Message is the only thing exchanged between a Worker and its consumer.
// Timestamp is set on TICK messages.
type Message struct {
	Kind      Kind
	Timestamp time.Time
}

// DefaultResolution is the reporting granularity when none is configured.
const DefaultResolution = time.Second

// Worker owns the emission source. It runs on its own goroutine and talks to
// the consumer only through messages.
type Worker struct {
	clock   Clock
	cadence time.Duration
	in      chan Message
	out     chan Message
	stopped chan struct{}
}

// NewWorker returns a worker that, while started, emits ticks at half the
// given resolution.
func NewWorker(clock Clock, resolution time.Duration) *Worker {
	if resolution <= 0 {
		resolution = DefaultResolution
	}
	return &Worker{
		clock:   clock,
		cadence: resolution / 2,
		in:      make(chan Message),
		out:     make(chan Message, 1),
		stopped: make(chan struct{}),
	}
}

// Cadence returns the emission interval.
func (w *Worker) Cadence() time.Duration { return w.cadence }

// Post delivers an inbound message. It returns once the worker has received
// it, or immediately if the worker has exited.
func (w *Worker) Post(msg Message) {
	select {
	case w.in <- msg:
	case <-w.stopped:
	}
}

// Ticks returns the outbound channel.
func (w *Worker) Ticks() <-chan Message { return w.out }

// Run processes messages until ctx is cancelled.
func (w *Worker) Run(ctx context.Context) {
	defer close(w.stopped)

	var ticker Ticker
	stop := func() {
		if ticker != nil {
			ticker.Stop()
			ticker = nil
		}
	}
	defer stop()

	for {
		var tc <-chan time.Time
		if ticker != nil {
			tc = ticker.C()
		}

		select {
		case <-ctx.Done():
			return
		case msg := <-w.in:
			switch msg.Kind {
			case KindStart:
				stop()
				ticker = w.clock.NewTicker(w.cadence)
			case KindStop:
				stop()
			}
		case <-tc:
			tick := Message{Kind: KindTick, Timestamp: w.clock.Now()}
			// A consumer that has not drained the previous tick gets the
			// fresher one instead.
			select {
			case w.out <- tick:
			default:
				select {
				case <-w.out:
				default:
				}
				select {
				case w.out <- tick:
				default:
				}
			}
		}
	}
}
