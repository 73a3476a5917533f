package input

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/raw"
)

// movingTarget is a target whose offset can change between events.
type movingTarget struct {
	left, top float64
}

func (m *movingTarget) Offset() (float64, float64) { return m.left, m.top }

type fakeLocker struct {
	requests, exits int
}

func (f *fakeLocker) RequestLock() { f.requests++ }
func (f *fakeLocker) ExitLock()    { f.exits++ }

func TestConstructionErrors(t *testing.T) {
	_, err := NewKeyboard(nil)
	assert.True(t, errors.Is(err, ErrNoSource))

	_, err = NewMouse(raw.NewBus(), nil)
	assert.True(t, errors.Is(err, ErrNoTarget))

	_, err = NewTouch(nil, raw.Origin)
	assert.True(t, errors.Is(err, ErrNoSource))

	_, err = NewOrientation(nil)
	assert.True(t, errors.Is(err, ErrNoSource))
}

func TestEnabledByDefault(t *testing.T) {
	bus := raw.NewBus()

	k, err := NewKeyboard(bus, EnabledByDefault(false))
	require.NoError(t, err)
	assert.False(t, k.IsEnabled())
	assert.Zero(t, bus.Listening(raw.KindKeyDown))

	bus.Emit(raw.Key{Code: 65})
	assert.False(t, k.Held("A"))

	require.NoError(t, k.Enable())
	require.NoError(t, k.Enable())
	assert.Equal(t, 1, bus.Listening(raw.KindKeyDown))

	bus.Emit(raw.Key{Code: 65})
	assert.True(t, k.Held("A"))

	// disabling keeps live state
	require.NoError(t, k.Disable())
	assert.True(t, k.Held("A"))
	assert.Zero(t, bus.Listening(raw.KindKeyDown))
}

func TestKeyboardDownSuppression(t *testing.T) {
	bus := raw.NewBus()
	k, err := NewKeyboard(bus, WithSteps())
	require.NoError(t, err)

	var downs, ups int
	k.Subscribe(Down, func(_ *Keyboard, ev KeyEvent) {
		downs++
		assert.Equal(t, "A", ev.Key)
		assert.Equal(t, 65, ev.Code)
	})
	k.Subscribe(Up, func(*Keyboard, KeyEvent) { ups++ })

	bus.Emit(raw.Key{Code: 65})
	bus.Emit(raw.Key{Code: 65})
	assert.Equal(t, 1, downs)
	assert.Equal(t, map[string]bool{"A": true}, k.Pressed)

	bus.Emit(raw.Key{Code: 65, Released: true})
	bus.Emit(raw.Key{Code: 65})
	assert.Equal(t, 2, downs)
	assert.Equal(t, 1, ups)
	assert.True(t, k.Released["A"])

	k.StepClear()
	k.StepClear()
	assert.Empty(t, k.Pressed)
	assert.Empty(t, k.Released)
	assert.True(t, k.Held("A"))
}

func TestKeyboardUpWithoutDown(t *testing.T) {
	bus := raw.NewBus()
	k, err := NewKeyboard(bus)
	require.NoError(t, err)

	var got []KeyEvent
	k.Subscribe(hooks.Wildcard, func(_ *Keyboard, ev KeyEvent) { got = append(got, ev) })

	bus.Emit(raw.Key{Code: 186, Released: true})
	require.Len(t, got, 1)
	assert.Equal(t, Up, got[0].Type)
	assert.Equal(t, "semicolon", got[0].Key)
	assert.False(t, k.Held("colon"))

	// step logs stay empty outside step mode
	assert.Empty(t, k.Released)
}

func TestKeyNames(t *testing.T) {
	assert.Equal(t, "space", KeyName(32))
	assert.Equal(t, "Z", KeyName(90))
	assert.Equal(t, "7", KeyName(55))
	assert.Equal(t, "code250", KeyName(250))
	assert.Equal(t, 186, Codes["colon"])
	assert.Equal(t, 186, Codes["semicolon"])
	assert.Equal(t, "semicolon", canonical("colon"))
}

func TestKeyboardReentrantDispatchIsReported(t *testing.T) {
	bus := raw.NewBus()
	var reported error
	k, err := NewKeyboard(bus, WithErrorHandler(func(err error) { reported = err }))
	require.NoError(t, err)

	k.Subscribe(Down, func(k *Keyboard, ev KeyEvent) {
		if ev.Key == "enter" {
			bus.Emit(raw.Key{Code: Codes["space"]})
		}
	})

	bus.Emit(raw.Key{Code: Codes["enter"]})
	assert.True(t, errors.Is(reported, hooks.ErrReentrant))
	assert.True(t, k.Held("space"))

	// the channel is usable again
	reported = nil
	bus.Emit(raw.Key{Code: Codes["tab"]})
	assert.NoError(t, reported)
}

func TestMouseButtonsAndPosition(t *testing.T) {
	bus := raw.NewBus()
	target := &movingTarget{left: 10, top: 20}
	m, err := NewMouse(bus, target, WithSteps())
	require.NoError(t, err)
	assert.Equal(t, float64(-10000), m.X)
	assert.Equal(t, float64(-10000), m.Y)

	var events []MouseEvent
	m.Subscribe(hooks.Wildcard, func(_ *Mouse, ev MouseEvent) { events = append(events, ev) })

	bus.Emit(raw.Button{Code: ButtonLeft, ClientX: 15, ClientY: 25})
	bus.Emit(raw.Button{Code: ButtonLeft, ClientX: 15, ClientY: 25})
	require.Len(t, events, 1)
	assert.Equal(t, "left", events[0].Button)
	assert.Equal(t, 5.0, events[0].X)
	assert.Equal(t, 5.0, events[0].Y)
	assert.True(t, m.Held("left"))

	// the target moved; offsets are not cached
	target.left, target.top = 0, 0
	bus.Emit(raw.Button{Code: ButtonLeft, Released: true, ClientX: 15, ClientY: 25})
	assert.Equal(t, 15.0, m.X)
	assert.Equal(t, 25.0, m.Y)
	assert.False(t, m.Held("left"))
	assert.True(t, m.Pressed["left"])
	assert.True(t, m.Released["left"])
}

func TestMouseMotionAndWheel(t *testing.T) {
	bus := raw.NewBus()
	m, err := NewMouse(bus, raw.Origin)
	require.NoError(t, err)

	bus.Emit(raw.Motion{ClientX: 100, ClientY: 100})
	m.StepClear()

	bus.Emit(raw.Motion{ClientX: 110, ClientY: 95})
	bus.Emit(raw.Motion{ClientX: 110, ClientY: 95, MovementX: 3, MovementY: -4, Relative: true})
	assert.Equal(t, 13.0, m.XDelta)
	assert.Equal(t, -9.0, m.YDelta)
	assert.Equal(t, 110.0, m.X)

	bus.Emit(raw.Wheel{DX: 0, DY: 120, D: 120})
	bus.Emit(raw.Wheel{DX: -120, DY: 120, D: 120})
	assert.Equal(t, WheelDelta{X: -120, Y: 240, Total: 240}, m.WheelDelta)
	assert.Equal(t, 240.0, m.Wheel)
	assert.Equal(t, -120.0, m.XWheel)

	m.StepClear()
	m.StepClear()
	assert.Zero(t, m.XDelta)
	assert.Zero(t, m.YDelta)
	assert.Zero(t, m.Wheel)
	assert.Zero(t, m.YWheel)
	assert.Equal(t, WheelDelta{}, m.WheelDelta)
	assert.Equal(t, 110.0, m.X)
	assert.Equal(t, 95.0, m.Y)
}

func TestMousePointerLock(t *testing.T) {
	bus := raw.NewBus()
	locker := &fakeLocker{}
	m, err := NewMouse(bus, raw.Origin, WithPointerLocker(locker))
	require.NoError(t, err)

	var locks []MouseEvent
	m.Subscribe(PointerLock, func(_ *Mouse, ev MouseEvent) { locks = append(locks, ev) })

	bus.Emit(raw.Button{Code: ButtonLeft})
	assert.Zero(t, locker.requests)

	m.SetPointerLock(true)
	assert.True(t, m.PointerLock())
	bus.Emit(raw.Button{Code: ButtonRight})
	assert.Equal(t, 1, locker.requests)
	assert.False(t, m.PointerLocked())

	bus.Emit(raw.Lock{Locked: true})
	assert.True(t, m.PointerLocked())

	// already locked, nothing more to request
	bus.Emit(raw.Button{Code: ButtonMiddle})
	assert.Equal(t, 1, locker.requests)

	m.SetPointerLock(false)
	assert.Equal(t, 1, locker.exits)

	bus.Emit(raw.Lock{Locked: false})
	bus.Emit(raw.Lock{Failed: true})
	require.Len(t, locks, 3)
	assert.True(t, locks[0].PointerLocked)
	assert.False(t, locks[1].PointerLocked)
	assert.True(t, locks[2].Failed)
}

func TestMouseLockWithoutLocker(t *testing.T) {
	bus := raw.NewBus()
	m, err := NewMouse(bus, raw.Origin)
	require.NoError(t, err)
	m.SetPointerLock(true)

	var order []hooks.Channel
	var failed bool
	m.Subscribe(hooks.Wildcard, func(_ *Mouse, ev MouseEvent) {
		order = append(order, ev.Type)
		if ev.Type == PointerLock {
			failed = ev.Failed
		}
	})

	bus.Emit(raw.Button{Code: ButtonLeft})
	assert.Equal(t, []hooks.Channel{Down, PointerLock}, order)
	assert.True(t, failed)
	assert.False(t, m.PointerLocked())

	// a press of a held button still requests the lock
	order = nil
	bus.Emit(raw.Button{Code: ButtonLeft})
	assert.Equal(t, []hooks.Channel{PointerLock}, order)
}
