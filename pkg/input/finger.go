package input

import (
	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/raw"
)

// Outcome is the lifecycle state of a Finger.
type Outcome uint8

const (
	// Active fingers are touching the target.
	Active Outcome = iota
	// Ended fingers were lifted.
	Ended
	// Canceled fingers were interrupted by the platform.
	Canceled
	// Forced fingers were terminated by Touch.Clear.
	Forced
)

func (o Outcome) String() string {
	switch o {
	case Active:
		return "active"
	case Ended:
		return "ended"
	case Canceled:
		return "canceled"
	case Forced:
		return "forced"
	}
	return "unknown"
}

// FingerEvent is dispatched on a Finger's Move and End channels.
type FingerEvent struct {
	Type    hooks.Channel
	ID      int
	X, Y    float64
	Outcome Outcome
	// Canceled is set on End when the platform canceled the contact.
	Canceled bool
	// Forced is set on End when the contact was terminated by Clear.
	Forced   bool
	Original raw.Event
}

func (e FingerEvent) Channel() hooks.Channel { return e.Type }

// FingerHandler receives finger notifications.
type FingerHandler = hooks.Handler[*Finger, FingerEvent]

// Finger is one contact point. Once ended it never changes again.
type Finger struct {
	hooks *hooks.Registry[*Finger, FingerEvent]

	ID      int
	X, Y    float64
	Ended   bool
	Outcome Outcome
}

func newFinger(id int, x, y float64) *Finger {
	f := &Finger{ID: id, X: x, Y: y}
	f.hooks = hooks.New[*Finger, FingerEvent](f)
	f.hooks.Extend(Move, End)
	return f
}

func (f *Finger) move(x, y float64, ev raw.Event) error {
	if f.Ended {
		return nil
	}
	f.X, f.Y = x, y
	return f.hooks.Dispatch(FingerEvent{Type: Move, ID: f.ID, X: x, Y: y, Outcome: f.Outcome, Original: ev})
}

// end terminates the finger. The position is only updated for natural
// ends and cancels; a forced end keeps the last known position.
func (f *Finger) end(o Outcome, x, y float64, ev raw.Event) error {
	if f.Ended {
		return nil
	}
	if o != Forced {
		f.X, f.Y = x, y
	}
	f.Ended = true
	f.Outcome = o
	return f.hooks.Dispatch(FingerEvent{
		Type:     End,
		ID:       f.ID,
		X:        f.X,
		Y:        f.Y,
		Outcome:  o,
		Canceled: o == Canceled,
		Forced:   o == Forced,
		Original: ev,
	})
}

func (f *Finger) Subscribe(ch hooks.Channel, fn FingerHandler) hooks.Token {
	return f.hooks.Subscribe(ch, fn)
}

func (f *Finger) Unsubscribe(ch hooks.Channel, tok hooks.Token) bool {
	return f.hooks.Unsubscribe(ch, tok)
}

func (f *Finger) UnsubscribeAll(ch hooks.Channel) {
	f.hooks.UnsubscribeAll(ch)
}
