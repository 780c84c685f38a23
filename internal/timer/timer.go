package timer

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// State is the consumer-side timer state.
type State int

const (
	Idle State = iota
	Running
)

func (s State) String() string {
	if s == Running {
		return "running"
	}
	return "idle"
}

// Timer drives a Worker and hands its ticks to a callback. The running flag
// is the only state shared with the worker side.
type Timer struct {
	worker  *Worker
	onTick  func(time.Time)
	running atomic.Bool
	cancel  context.CancelFunc
	wg      sync.WaitGroup
}

// New starts the worker and dispatch goroutines. The timer begins idle; call
// Close to release the goroutines.
func New(clock Clock, resolution time.Duration, onTick func(time.Time)) *Timer {
	ctx, cancel := context.WithCancel(context.Background())
	t := &Timer{
		worker: NewWorker(clock, resolution),
		onTick: onTick,
		cancel: cancel,
	}
	t.wg.Add(2)
	go func() {
		defer t.wg.Done()
		t.worker.Run(ctx)
	}()
	go func() {
		defer t.wg.Done()
		t.dispatch(ctx)
	}()
	return t
}

func (t *Timer) dispatch(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case msg := <-t.worker.Ticks():
			t.deliver(msg)
		}
	}
}

// deliver passes a tick to the callback. A tick already in flight when Stop
// returned lands here while idle and is dropped.
func (t *Timer) deliver(msg Message) bool {
	if msg.Kind != KindTick || !t.running.Load() {
		return false
	}
	t.onTick(msg.Timestamp)
	return true
}

// Start begins emitting ticks. Starting a running timer replaces its
// emission source.
func (t *Timer) Start() {
	t.running.Store(true)
	t.worker.Post(Message{Kind: KindStart})
}

// Stop halts emission. Once it returns the worker emits no new ticks.
func (t *Timer) Stop() {
	t.running.Store(false)
	t.worker.Post(Message{Kind: KindStop})
}

// State reports whether the timer is running.
func (t *Timer) State() State {
	if t.running.Load() {
		return Running
	}
	return Idle
}

// Close stops the timer and waits for its goroutines to exit.
func (t *Timer) Close() {
	t.running.Store(false)
	t.cancel()
	t.wg.Wait()
}

// Elapsed is the wall-clock time between a reference and a tick timestamp,
// never negative.
func Elapsed(ref, tick time.Time) time.Duration {
	if d := tick.Sub(ref); d > 0 {
		return d
	}
	return 0
}

// Countdown is a fixed-length interval measured from an absolute start.
type Countdown struct {
	Start    time.Time
	Duration time.Duration
}

// Remaining returns the time left at tick, clamped at zero.
func (c Countdown) Remaining(tick time.Time) time.Duration {
	if r := c.Duration - Elapsed(c.Start, tick); r > 0 {
		return r
	}
	return 0
}

// Done reports whether the countdown has expired at tick.
func (c Countdown) Done(tick time.Time) bool {
	return c.Remaining(tick) == 0
}

// RemainingSeconds rounds the time left up to whole seconds, the way a rest
// timer displays it.
func (c Countdown) RemainingSeconds(tick time.Time) int {
	r := c.Remaining(tick)
	return int((r + time.Second - 1) / time.Second)
}
