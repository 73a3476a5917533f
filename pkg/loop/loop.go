// Package loop runs the single event loop that raw events and frame
// callbacks are delivered on.
//
// Drivers that receive platform events on their own goroutines hand them
// over with Post. Everything reaching the devices and the step scheduler
// then happens on the goroutine that called Run.
package loop

import (
	"context"
	"sync"
	"time"

	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/raw"
	"github.com/thelolagemann/goinput/pkg/steps"
)

// DefaultRefreshRate is the frame rate used when none is configured.
const DefaultRefreshRate = 60

type frameRequest struct {
	h  steps.Handle
	fn func(ts float64)
}

// Loop is a frame clock and a serialised raw event source.
type Loop struct {
	bus     *raw.Bus
	log     log.Logger
	refresh float64

	posted   chan func()
	quit     chan struct{}
	quitOnce sync.Once

	// owned by the loop goroutine
	requests []*frameRequest
	due      []*frameRequest
	next     steps.Handle
	pollers  []func()
	started  time.Time
}

// Opt configures a Loop.
type Opt func(l *Loop)

// WithRefreshRate sets the number of frames per second.
func WithRefreshRate(hz float64) Opt {
	return func(l *Loop) {
		if hz > 0 {
			l.refresh = hz
		}
	}
}

func WithLogger(logger log.Logger) Opt {
	return func(l *Loop) {
		l.log = logger
	}
}

// New returns a Loop that is not yet running.
func New(opts ...Opt) *Loop {
	l := &Loop{
		bus:     raw.NewBus(),
		log:     log.NewNullLogger(),
		refresh: DefaultRefreshRate,
		posted:  make(chan func(), 256),
		quit:    make(chan struct{}),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Source returns the raw event source devices attach to.
func (l *Loop) Source() raw.Source {
	return l.bus
}

// Bus returns the underlying bus, for observers such as the recorder.
func (l *Loop) Bus() *raw.Bus {
	return l.bus
}

// Logger returns the logger the loop was configured with, for drivers to
// share.
func (l *Loop) Logger() log.Logger {
	return l.log
}

// RefreshRate returns the configured frames per second.
func (l *Loop) RefreshRate() float64 {
	return l.refresh
}

// Post queues ev for delivery on the loop goroutine. It is safe to call
// from any goroutine and blocks only while the queue is full.
func (l *Loop) Post(ev raw.Event) {
	l.Do(func() { l.bus.Emit(ev) })
}

// Do queues fn to run on the loop goroutine.
func (l *Loop) Do(fn func()) {
	select {
	case l.posted <- fn:
	case <-l.quit:
	}
}

// Emit delivers ev immediately. It must only be called on the loop
// goroutine, from pollers or queued functions.
func (l *Loop) Emit(ev raw.Event) {
	l.bus.Emit(ev)
}

// AddPoller registers fn to run at the start of every frame, before the
// frame callbacks. Call it before Run or from the loop goroutine.
func (l *Loop) AddPoller(fn func()) {
	l.pollers = append(l.pollers, fn)
}

// Request implements steps.Clock. fn runs on the next frame with the
// milliseconds elapsed since Run started.
func (l *Loop) Request(fn func(ts float64)) steps.Handle {
	l.next++
	l.requests = append(l.requests, &frameRequest{h: l.next, fn: fn})
	return l.next
}

// Cancel implements steps.Clock. A callback canceled while a frame is
// running does not run, even if it was due in that frame.
func (l *Loop) Cancel(h steps.Handle) {
	for i, r := range l.requests {
		if r.h == h {
			r.fn = nil
			l.requests = append(l.requests[:i:i], l.requests[i+1:]...)
			return
		}
	}
	for _, r := range l.due {
		if r.h == h {
			r.fn = nil
			return
		}
	}
}

// Quit stops Run. It may be called from any goroutine, more than once.
func (l *Loop) Quit() {
	l.quitOnce.Do(func() { close(l.quit) })
}

// Run processes queued functions and frames until Quit is called or ctx
// is done.
func (l *Loop) Run(ctx context.Context) error {
	l.started = time.Now()
	ticker := time.NewTicker(time.Duration(float64(time.Second) / l.refresh))
	defer ticker.Stop()

	l.log.Debugf("loop: running at %.2fHz", l.refresh)

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-l.quit:
			l.log.Debugf("loop: quit")
			return nil
		case fn := <-l.posted:
			fn()
		case now := <-ticker.C:
			l.frame(now)
		}
	}
}

// frame runs the pollers and then the frame callbacks requested before
// the frame began.
func (l *Loop) frame(now time.Time) {
	for _, p := range l.pollers {
		p()
	}

	l.due, l.requests = l.requests, nil
	ts := float64(now.Sub(l.started)) / float64(time.Millisecond)
	for _, r := range l.due {
		if fn := r.fn; fn != nil {
			r.fn = nil
			fn(ts)
		}
	}
	l.due = nil
}
