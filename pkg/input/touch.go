package input

import (
	"sort"

	"github.com/thelolagemann/goinput/internal/gate"
	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/raw"
)

// TouchEvent is dispatched on Start, Move and End with the fingers the raw
// event changed.
type TouchEvent struct {
	Type    hooks.Channel
	Fingers []*Finger
	// Canceled is set on End when the platform canceled the contacts.
	Canceled bool
	// Forced is set on End when the contacts were terminated by Clear.
	Forced   bool
	Original raw.Event
}

func (e TouchEvent) Channel() hooks.Channel { return e.Type }

// TouchHandler receives touch notifications.
type TouchHandler = hooks.Handler[*Touch, TouchEvent]

// Touch tracks the live contact points on a target.
type Touch struct {
	device
	hooks  *hooks.Registry[*Touch, TouchEvent]
	target raw.Target

	fingers map[int]*Finger

	// Pressed and Released log the fingers that started or ended since the
	// last StepClear, while Steps is set.
	Pressed  []*Finger
	Released []*Finger
	Steps    bool
}

// NewTouch returns a Touch listening to src, with positions relative to
// target.
func NewTouch(src raw.Source, target raw.Target, opts ...Opt) (*Touch, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	if target == nil {
		return nil, ErrNoTarget
	}
	cfg := newConfig(opts)

	t := &Touch{
		device:  device{name: "touch", gate: gate.New(src)},
		target:  target,
		fingers: make(map[int]*Finger),
		Steps:   cfg.steps,
	}
	t.hooks = hooks.New[*Touch, TouchEvent](t, Start, Move, End)

	t.gate.Listen(raw.KindTouchStart, t.start)
	t.gate.Listen(raw.KindTouchMove, t.move)
	t.gate.Listen(raw.KindTouchEnd, t.end)
	t.gate.Listen(raw.KindTouchCancel, t.end)

	if err := t.init(cfg); err != nil {
		return nil, err
	}
	return t, nil
}

func (t *Touch) start(ev raw.Event) {
	batch := ev.(raw.Touches)
	left, top := t.target.Offset()

	var displaced []*Finger
	fingers := make([]*Finger, 0, len(batch.Changed))
	for _, c := range batch.Changed {
		if old, ok := t.fingers[c.ID]; ok {
			// the platform reused a live identifier; the old contact is gone
			t.log.Debugf("touch: identifier %d restarted", c.ID)
			t.terminate(old, Forced, 0, 0, ev)
			displaced = append(displaced, old)
		}
		f := newFinger(c.ID, c.ClientX-left, c.ClientY-top)
		t.fingers[c.ID] = f
		if t.Steps {
			t.Pressed = append(t.Pressed, f)
		}
		fingers = append(fingers, f)
	}

	if len(displaced) > 0 {
		t.report(t.hooks.Dispatch(TouchEvent{Type: End, Fingers: displaced, Forced: true, Original: ev}))
	}
	t.report(t.hooks.Dispatch(TouchEvent{Type: Start, Fingers: fingers, Original: ev}))
}

func (t *Touch) move(ev raw.Event) {
	batch := ev.(raw.Touches)
	left, top := t.target.Offset()

	var fingers []*Finger
	for _, c := range batch.Changed {
		f, ok := t.fingers[c.ID]
		if !ok {
			continue
		}
		fingers = append(fingers, f)
		t.report(f.move(c.ClientX-left, c.ClientY-top, ev))
	}
	if len(fingers) == 0 {
		return
	}

	t.report(t.hooks.Dispatch(TouchEvent{Type: Move, Fingers: fingers, Original: ev}))
}

func (t *Touch) end(ev raw.Event) {
	batch := ev.(raw.Touches)
	left, top := t.target.Offset()

	outcome := Ended
	if batch.Phase == raw.KindTouchCancel {
		outcome = Canceled
	}

	var fingers []*Finger
	for _, c := range batch.Changed {
		f, ok := t.fingers[c.ID]
		if !ok {
			continue
		}
		fingers = append(fingers, f)
		t.terminate(f, outcome, c.ClientX-left, c.ClientY-top, ev)
	}
	if len(fingers) == 0 {
		return
	}

	t.report(t.hooks.Dispatch(TouchEvent{Type: End, Fingers: fingers, Canceled: outcome == Canceled, Original: ev}))
}

func (t *Touch) terminate(f *Finger, o Outcome, x, y float64, ev raw.Event) {
	delete(t.fingers, f.ID)
	if t.Steps {
		t.Released = append(t.Released, f)
	}
	t.report(f.end(o, x, y, ev))
}

// Fingers returns the live fingers ordered by identifier.
func (t *Touch) Fingers() []*Finger {
	fingers := make([]*Finger, 0, len(t.fingers))
	for _, f := range t.fingers {
		fingers = append(fingers, f)
	}
	sort.Slice(fingers, func(i, j int) bool { return fingers[i].ID < fingers[j].ID })
	return fingers
}

// Finger returns the live finger with the given identifier.
func (t *Touch) Finger(id int) (*Finger, bool) {
	f, ok := t.fingers[id]
	return f, ok
}

// Clear terminates every live finger with the Forced outcome, keeping
// their last positions, and dispatches one End notification for them.
func (t *Touch) Clear() {
	fingers := t.Fingers()
	if len(fingers) == 0 {
		return
	}
	for _, f := range fingers {
		t.terminate(f, Forced, 0, 0, nil)
	}
	t.report(t.hooks.Dispatch(TouchEvent{Type: End, Fingers: fingers, Forced: true}))
}

// StepClear empties the Pressed and Released logs.
func (t *Touch) StepClear() {
	t.Pressed = nil
	t.Released = nil
}

func (t *Touch) Subscribe(ch hooks.Channel, fn TouchHandler) hooks.Token {
	return t.hooks.Subscribe(ch, fn)
}

func (t *Touch) Unsubscribe(ch hooks.Channel, tok hooks.Token) bool {
	return t.hooks.Unsubscribe(ch, tok)
}

func (t *Touch) UnsubscribeAll(ch hooks.Channel) {
	t.hooks.UnsubscribeAll(ch)
}
