package steps

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// manualClock runs requested callbacks when told to.
type manualClock struct {
	next     Handle
	pending  map[Handle]func(float64)
	canceled int
}

func newManualClock() *manualClock {
	return &manualClock{pending: make(map[Handle]func(float64))}
}

func (c *manualClock) Request(fn func(float64)) Handle {
	c.next++
	c.pending[c.next] = fn
	return c.next
}

func (c *manualClock) Cancel(h Handle) {
	if _, ok := c.pending[h]; ok {
		c.canceled++
		delete(c.pending, h)
	}
}

// frame runs every callback requested before the call.
func (c *manualClock) frame(ts float64) {
	fns := c.pending
	c.pending = make(map[Handle]func(float64))
	for _, fn := range fns {
		fn(ts)
	}
}

func TestNoClock(t *testing.T) {
	_, err := New(nil)
	assert.True(t, errors.Is(err, ErrNoClock))
}

func TestStartTwice(t *testing.T) {
	clock := newManualClock()
	s, err := New(clock, EnabledByDefault(false))
	require.NoError(t, err)
	assert.False(t, s.IsRunning())
	assert.Empty(t, clock.pending)

	s.Start()
	s.Start()
	s.Enable()
	assert.True(t, s.IsRunning())
	assert.Len(t, clock.pending, 1)
}

func TestStopWhileIdle(t *testing.T) {
	clock := newManualClock()
	s, err := New(clock, EnabledByDefault(false))
	require.NoError(t, err)

	s.Stop()
	s.Disable()
	assert.False(t, s.IsRunning())
	assert.Zero(t, clock.canceled)
}

func TestTicks(t *testing.T) {
	clock := newManualClock()
	s, err := New(clock)
	require.NoError(t, err)
	assert.True(t, s.IsRunning())

	_, ok := s.Rate()
	assert.False(t, ok)

	var events []StepEvent
	s.Subscribe(Step, func(_ *Steps, ev StepEvent) { events = append(events, ev) })

	clock.frame(1000)
	clock.frame(1020)
	clock.frame(1020)

	require.Len(t, events, 3)
	assert.InDelta(t, 1000.0/60, events[0].Delta, 1e-9)
	assert.Equal(t, 20.0, events[1].Delta)
	assert.Equal(t, uint64(2), events[1].Frame)

	// zero elapsed time leaves the previous rate
	assert.Zero(t, events[2].Delta)
	rate, ok := s.Rate()
	assert.True(t, ok)
	assert.Equal(t, 50.0, rate)
	assert.Equal(t, uint64(3), s.Frame())
}

func TestStopCancelsPending(t *testing.T) {
	clock := newManualClock()
	s, err := New(clock)
	require.NoError(t, err)

	clock.frame(10)
	s.Stop()
	assert.Equal(t, 1, clock.canceled)
	assert.Empty(t, clock.pending)
	_, ok := s.Rate()
	assert.False(t, ok)

	// restarting uses the fallback again
	var delta float64
	s.Subscribe(Step, func(_ *Steps, ev StepEvent) { delta = ev.Delta })
	s.Start()
	clock.frame(5000)
	assert.InDelta(t, 1000.0/60, delta, 1e-9)
}

func TestStopDuringTick(t *testing.T) {
	clock := newManualClock()
	s, err := New(clock)
	require.NoError(t, err)

	var calls []string
	s.Subscribe(Step, func(s *Steps, _ StepEvent) {
		calls = append(calls, "first")
		s.Stop()
	})
	s.Subscribe(Step, func(*Steps, StepEvent) { calls = append(calls, "second") })

	clock.frame(0)
	assert.Equal(t, []string{"first", "second"}, calls)
	assert.False(t, s.IsRunning())
	assert.Empty(t, clock.pending)
}

func TestRestartDuringTick(t *testing.T) {
	clock := newManualClock()
	s, err := New(clock)
	require.NoError(t, err)

	s.Subscribe(Step, func(s *Steps, ev StepEvent) {
		if ev.Frame == 1 {
			s.Stop()
			s.Start()
		}
	})

	clock.frame(0)
	assert.True(t, s.IsRunning())
	assert.Len(t, clock.pending, 1)
}
