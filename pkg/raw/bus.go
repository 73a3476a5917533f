package raw

import (
	"errors"
	"fmt"
)

// ErrInvalidKind is returned when attaching to a kind that does not exist.
var ErrInvalidKind = errors.New("invalid raw event kind")

type attachment struct {
	l        Listener
	detached bool
}

// Bus is an in-process Source. Drivers (or the event loop on their behalf)
// Emit events; devices Attach listeners through their enable gates.
//
// A Bus is not safe for concurrent use. Use loop.Loop to hand events over
// from other goroutines.
type Bus struct {
	listeners [numKinds][]*attachment
	taps      []*attachment
}

// NewBus returns an empty Bus.
func NewBus() *Bus {
	return &Bus{}
}

// Attach implements the Source interface.
func (b *Bus) Attach(kind Kind, l Listener) (Detach, error) {
	if !kind.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, kind)
	}
	if l == nil {
		return nil, fmt.Errorf("raw: nil listener for %v", kind)
	}

	a := &attachment{l: l}
	b.listeners[kind] = append(b.listeners[kind], a)

	return func() error {
		if a.detached {
			return fmt.Errorf("raw: %v listener already detached", kind)
		}
		a.detached = true
		b.listeners[kind] = remove(b.listeners[kind], a)
		return nil
	}, nil
}

// Tap registers an observer that sees every emitted event before the
// listeners of its kind. Used by the recorder.
func (b *Bus) Tap(l Listener) Detach {
	a := &attachment{l: l}
	b.taps = append(b.taps, a)
	return func() error {
		a.detached = true
		b.taps = remove(b.taps, a)
		return nil
	}
}

// Listening returns the number of listeners attached for kind.
func (b *Bus) Listening(kind Kind) int {
	if !kind.Valid() {
		return 0
	}
	return len(b.listeners[kind])
}

// Emit delivers ev to the taps and to every listener attached for its
// kind, in attach order. Listeners detached while the event is being
// delivered do not receive it; listeners attached meanwhile do not either.
func (b *Bus) Emit(ev Event) {
	kind := ev.Kind()
	if !kind.Valid() {
		return
	}

	deliver(b.taps, ev)
	deliver(b.listeners[kind], ev)
}

func deliver(list []*attachment, ev Event) {
	if len(list) == 0 {
		return
	}
	snapshot := make([]*attachment, len(list))
	copy(snapshot, list)
	for _, a := range snapshot {
		if !a.detached {
			a.l(ev)
		}
	}
}

func remove(list []*attachment, a *attachment) []*attachment {
	for i, o := range list {
		if o == a {
			// copy so that snapshots taken by Emit are not disturbed
			n := make([]*attachment, 0, len(list)-1)
			n = append(n, list[:i]...)
			return append(n, list[i+1:]...)
		}
	}
	return list
}
