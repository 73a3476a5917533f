package input

import (
	"strconv"

	"github.com/thelolagemann/goinput/internal/gate"
	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/raw"
)

// Mouse button codes.
const (
	ButtonLeft   = 1
	ButtonMiddle = 2
	ButtonRight  = 3
)

// ButtonCodes maps button names to codes.
var ButtonCodes = map[string]int{"left": ButtonLeft, "middle": ButtonMiddle, "right": ButtonRight}

// ButtonName returns the name of a button code, "button<N>" for buttons
// other than left, middle and right.
func ButtonName(code int) string {
	switch code {
	case ButtonLeft:
		return "left"
	case ButtonMiddle:
		return "middle"
	case ButtonRight:
		return "right"
	}
	return "button" + strconv.Itoa(code)
}

// offscreen is the position of a pointer that has not been seen yet.
const offscreen = -10000

// WheelDelta is the wheel movement accumulated since the last StepClear.
type WheelDelta struct {
	X, Y, Total float64
}

// MouseEvent is dispatched on Down, Up, Move, Wheel and PointerLock. Only
// the fields relevant to the channel are set.
type MouseEvent struct {
	Type hooks.Channel
	X, Y float64

	Code   int
	Button string

	XDelta, YDelta float64

	Wheel, XWheel, YWheel float64

	PointerLocked bool
	Failed        bool

	Original raw.Event
}

func (e MouseEvent) Channel() hooks.Channel { return e.Type }

// MouseHandler receives mouse notifications.
type MouseHandler = hooks.Handler[*Mouse, MouseEvent]

// Mouse tracks buttons, position, motion and wheel of a pointer relative
// to a target.
type Mouse struct {
	device
	hooks  *hooks.Registry[*Mouse, MouseEvent]
	target raw.Target
	locker raw.Locker

	held map[string]bool

	// X and Y are the last known position relative to the target.
	X, Y float64
	// XDelta and YDelta accumulate motion since the last StepClear.
	XDelta, YDelta float64

	WheelDelta            WheelDelta
	XWheel, YWheel, Wheel float64

	Pressed  map[string]bool
	Released map[string]bool
	Steps    bool

	lock, locked bool
}

// NewMouse returns a Mouse listening to src, with positions relative to
// target.
func NewMouse(src raw.Source, target raw.Target, opts ...Opt) (*Mouse, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if target == nil {
		return nil, ErrNoTarget
	}
	cfg := newConfig(opts)

	m := &Mouse{
		device:   device{name: "mouse", gate: gate.New(src)},
		target:   target,
		locker:   cfg.locker,
		held:     make(map[string]bool),
		X:        offscreen,
		Y:        offscreen,
		Pressed:  make(map[string]bool),
		Released: make(map[string]bool),
		Steps:    cfg.steps,
	}
	m.hooks = hooks.New[*Mouse, MouseEvent](m, Down, Up, Move, Wheel, PointerLock)

	m.gate.Listen(raw.KindButtonDown, m.buttonDown)
	m.gate.Listen(raw.KindButtonUp, m.buttonUp)
	m.gate.Listen(raw.KindMotion, m.motion)
	m.gate.Listen(raw.KindWheel, m.wheel)
	m.gate.Listen(raw.KindLockChange, m.lockEvent)
	m.gate.Listen(raw.KindLockError, m.lockEvent)

	if err := m.init(cfg); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Mouse) position(clientX, clientY float64) (float64, float64) {
	left, top := m.target.Offset()
	return clientX - left, clientY - top
}

func (m *Mouse) buttonDown(ev raw.Event) {
	b := ev.(raw.Button)
	// the lock is requested after the down notification, so that without a
	// locker the failure is observed after the press
	if m.lock && !m.locked {
		defer m.requestLock()
	}

	name := ButtonName(b.Code)
	if m.held[name] {
		return
	}
	m.held[name] = true
	if m.Steps {
		m.Pressed[name] = true
	}
	m.X, m.Y = m.position(b.ClientX, b.ClientY)
	m.report(m.hooks.Dispatch(MouseEvent{
		Type: Down, X: m.X, Y: m.Y, Code: b.Code, Button: name, PointerLocked: m.locked, Original: b,
	}))
}

func (m *Mouse) buttonUp(ev raw.Event) {
	b := ev.(raw.Button)
	name := ButtonName(b.Code)
	m.held[name] = false
	if m.Steps {
		m.Released[name] = true
	}
	m.X, m.Y = m.position(b.ClientX, b.ClientY)
	m.report(m.hooks.Dispatch(MouseEvent{
		Type: Up, X: m.X, Y: m.Y, Code: b.Code, Button: name, PointerLocked: m.locked, Original: b,
	}))
}

func (m *Mouse) motion(ev raw.Event) {
	mo := ev.(raw.Motion)
	x, y := m.position(mo.ClientX, mo.ClientY)

	dx, dy := x-m.X, y-m.Y
	if mo.Relative {
		dx, dy = mo.MovementX, mo.MovementY
	}
	m.XDelta += dx
	m.YDelta += dy
	m.X, m.Y = x, y

	m.report(m.hooks.Dispatch(MouseEvent{
		Type: Move, X: m.X, Y: m.Y, XDelta: dx, YDelta: dy, PointerLocked: m.locked, Original: mo,
	}))
}

func (m *Mouse) wheel(ev raw.Event) {
	w := ev.(raw.Wheel)

	m.XWheel += w.DX
	m.YWheel += w.DY
	m.Wheel += w.D
	m.WheelDelta.X += w.DX
	m.WheelDelta.Y += w.DY
	m.WheelDelta.Total += w.D

	m.report(m.hooks.Dispatch(MouseEvent{
		Type: Wheel, X: m.X, Y: m.Y, Wheel: w.D, XWheel: w.DX, YWheel: w.DY, PointerLocked: m.locked, Original: w,
	}))
}

func (m *Mouse) lockEvent(ev raw.Event) {
	l := ev.(raw.Lock)
	if l.Failed {
		m.log.Infof("mouse: failed to obtain pointer lock")
	} else {
		m.locked = l.Locked
	}
	m.report(m.hooks.Dispatch(MouseEvent{
		Type: PointerLock, X: m.X, Y: m.Y, PointerLocked: m.locked, Failed: l.Failed, Original: l,
	}))
}

// requestLock asks the locker for pointer lock. The outcome arrives as a
// lock raw event; with no locker the request fails at once.
func (m *Mouse) requestLock() {
	if m.locker == nil {
		m.lockEvent(raw.Lock{Failed: true})
		return
	}
	m.locker.RequestLock()
}

// Held reports whether the named button is down.
func (m *Mouse) Held(button string) bool {
	return m.held[button]
}

// SetPointerLock sets whether pressing a button requests pointer lock.
// Turning it off while locked exits the lock.
func (m *Mouse) SetPointerLock(on bool) {
	m.lock = on
	if !on && m.locked {
		m.ExitPointerLock()
	}
}

// PointerLock reports whether pressing a button requests pointer lock.
func (m *Mouse) PointerLock() bool {
	return m.lock
}

// PointerLocked reports whether the platform has confirmed the lock.
func (m *Mouse) PointerLocked() bool {
	return m.locked
}

// ExitPointerLock asks the platform to release the lock. The change is
// observed later through a pointerlock notification.
func (m *Mouse) ExitPointerLock() {
	if m.locked && m.locker != nil {
		m.locker.ExitLock()
	}
}

// StepClear zeroes the motion and wheel deltas and empties the logs. The
// position and held buttons are kept.
func (m *Mouse) StepClear() {
	m.Pressed = make(map[string]bool)
	m.Released = make(map[string]bool)
	m.WheelDelta = WheelDelta{}
	m.XWheel, m.YWheel, m.Wheel = 0, 0, 0
	m.XDelta, m.YDelta = 0, 0
}

func (m *Mouse) Subscribe(ch hooks.Channel, fn MouseHandler) hooks.Token {
	return m.hooks.Subscribe(ch, fn)
}

func (m *Mouse) Unsubscribe(ch hooks.Channel, tok hooks.Token) bool {
	return m.hooks.Unsubscribe(ch, tok)
}

func (m *Mouse) UnsubscribeAll(ch hooks.Channel) {
	m.hooks.UnsubscribeAll(ch)
}
