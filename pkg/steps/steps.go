// Package steps drives a repeating simulation step at the display's
// refresh cadence.
package steps

import (
	"errors"

	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/log"
)

// Step is the channel dispatched once per frame.
const Step hooks.Channel = "step"

// fallbackDelta is the elapsed time assumed for the first tick, one frame
// at 60Hz.
const fallbackDelta = 1000.0 / 60

// ErrNoClock is returned by New when no clock is given.
var ErrNoClock = errors.New("steps: no frame clock")

// Handle identifies a pending frame callback.
type Handle uint64

// Clock schedules a single callback for the next frame. The callback is
// given a monotonically increasing timestamp in milliseconds.
type Clock interface {
	Request(fn func(ts float64)) Handle
	Cancel(h Handle)
}

// StepEvent is dispatched on Step.
type StepEvent struct {
	// Delta is the time since the previous step in milliseconds.
	Delta float64
	// Frame counts the steps since the scheduler was last started,
	// starting at 1.
	Frame uint64
}

func (StepEvent) Channel() hooks.Channel { return Step }

// Handler receives step notifications.
type Handler = hooks.Handler[*Steps, StepEvent]

type config struct {
	enabled bool
	logger  log.Logger
}

// Opt configures a Steps at construction.
type Opt func(c *config)

// EnabledByDefault controls whether the scheduler starts when it is
// constructed. It does by default.
func EnabledByDefault(enabled bool) Opt {
	return func(c *config) {
		c.enabled = enabled
	}
}

func WithLogger(l log.Logger) Opt {
	return func(c *config) {
		c.logger = l
	}
}

// Steps dispatches Step once per frame while running.
type Steps struct {
	clock Clock
	hooks *hooks.Registry[*Steps, StepEvent]
	log   log.Logger

	pending bool
	handle  Handle
	running bool

	prev    float64
	hasPrev bool
	rate    float64
	hasRate bool
	frame   uint64
}

// New returns a Steps driven by clock.
func New(clock Clock, opts ...Opt) (*Steps, error) {
	if clock == nil {
		return nil, ErrNoClock
	}
	cfg := config{enabled: true, logger: log.NewNullLogger()}
	for _, opt := range opts {
		opt(&cfg)
	}

	s := &Steps{clock: clock, log: cfg.logger}
	s.hooks = hooks.New[*Steps, StepEvent](s, Step)
	if cfg.enabled {
		s.Start()
	}
	return s, nil
}

// Start schedules the first tick. It does nothing while running.
func (s *Steps) Start() {
	if s.running {
		return
	}
	s.running = true
	s.frame = 0
	s.schedule()
	s.log.Debugf("steps: started")
}

// Enable is an alias of Start.
func (s *Steps) Enable() { s.Start() }

// Stop cancels the pending tick and clears the rate. A tick that is
// running completes its dispatch but does not schedule another.
func (s *Steps) Stop() {
	if !s.pending && !s.running {
		return
	}
	if s.pending {
		s.clock.Cancel(s.handle)
		s.pending = false
	}
	s.running = false
	s.hasPrev, s.hasRate = false, false
	s.prev, s.rate = 0, 0
	s.log.Debugf("steps: stopped")
}

// Disable is an alias of Stop.
func (s *Steps) Disable() { s.Stop() }

// IsRunning reports whether ticks are being scheduled.
func (s *Steps) IsRunning() bool {
	return s.running
}

// Rate returns the instantaneous step rate in steps per second. It
// reports false while idle and before the first tick.
func (s *Steps) Rate() (float64, bool) {
	return s.rate, s.hasRate
}

// Frame returns the number of the last dispatched step.
func (s *Steps) Frame() uint64 {
	return s.frame
}

func (s *Steps) schedule() {
	s.handle = s.clock.Request(s.tick)
	s.pending = true
}

func (s *Steps) tick(ts float64) {
	s.pending = false
	if !s.running {
		return
	}

	delta := fallbackDelta
	if s.hasPrev {
		delta = ts - s.prev
	}
	s.prev, s.hasPrev = ts, true
	if delta > 0 {
		s.rate, s.hasRate = 1000/delta, true
	}
	s.frame++

	if err := s.hooks.Dispatch(StepEvent{Delta: delta, Frame: s.frame}); err != nil {
		s.log.Errorf("steps: %v", err)
	}

	if s.running && !s.pending {
		s.schedule()
	}
}

func (s *Steps) Subscribe(ch hooks.Channel, fn Handler) hooks.Token {
	return s.hooks.Subscribe(ch, fn)
}

func (s *Steps) Unsubscribe(ch hooks.Channel, tok hooks.Token) bool {
	return s.hooks.Unsubscribe(ch, tok)
}

func (s *Steps) UnsubscribeAll(ch hooks.Channel) {
	s.hooks.UnsubscribeAll(ch)
}
