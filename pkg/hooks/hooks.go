// Package hooks provides the channel registry every device uses to notify
// its subscribers.
//
// A Registry owns a fixed set of named channels plus the Wildcard channel.
// Dispatching an event runs the subscribers of the event's channel in
// subscription order, then the wildcard subscribers. Subscribers may
// subscribe and unsubscribe (themselves or others) while a dispatch is in
// progress:
//
//   - a subscriber added during a dispatch is not invoked by that dispatch
//   - a subscriber removed before its turn is not invoked
//   - no remaining subscriber is skipped or invoked twice
//
// Dispatching a channel from inside one of its own subscribers is refused
// with ErrReentrant. Dispatching a different channel, or the same channel of
// a different Registry, is always allowed, including from a wildcard
// subscriber: the nested dispatch runs the wildcard subscribers again.
//
// A Registry is not safe for concurrent use. All dispatches are expected to
// happen on one event loop.
package hooks

import (
	"errors"
	"fmt"
)

// Channel names a notification category.
type Channel string

// Wildcard is the reserved channel whose subscribers receive every event.
const Wildcard Channel = "*"

var (
	// ErrReentrant is returned by Dispatch when the channel is already being
	// dispatched on the same Registry.
	ErrReentrant = errors.New("hook dispatched recursively")

	// ErrUnknownChannel is returned by Dispatch for a channel the Registry
	// does not declare.
	ErrUnknownChannel = errors.New("unknown hook channel")
)

// Event is anything that names the channel it is dispatched on.
type Event interface {
	Channel() Channel
}

// Handler receives an event together with the owner of the Registry.
type Handler[O any, E Event] func(owner O, ev E)

// Token identifies one subscription. The zero Token is never issued.
type Token uint64

type subscription[O any, E Event] struct {
	tok Token
	fn  Handler[O, E]
}

// iteration is the cursor of an in-flight dispatch over one channel.
type iteration struct {
	i int // index of the subscriber being invoked
	l int // number of subscribers still to consider
}

// Registry is a per-owner publish/subscribe hub.
type Registry[O any, E Event] struct {
	owner    O
	channels map[Channel][]subscription[O, E]
	active   map[Channel]*iteration
	wildcard []*iteration // nested wildcard passes, innermost last
	next     Token
}

// New returns a Registry for owner declaring the given channels. The
// Wildcard channel is always declared.
func New[O any, E Event](owner O, channels ...Channel) *Registry[O, E] {
	r := &Registry[O, E]{
		owner:    owner,
		channels: map[Channel][]subscription[O, E]{Wildcard: nil},
		active:   make(map[Channel]*iteration),
	}
	r.Extend(channels...)
	return r
}

// Extend declares additional channels. Channels that already exist keep
// their subscribers.
func (r *Registry[O, E]) Extend(channels ...Channel) {
	for _, ch := range channels {
		if _, ok := r.channels[ch]; !ok {
			r.channels[ch] = nil
		}
	}
}

// Has reports whether the channel is declared.
func (r *Registry[O, E]) Has(ch Channel) bool {
	_, ok := r.channels[ch]
	return ok
}

// Len returns the number of subscribers of the channel.
func (r *Registry[O, E]) Len(ch Channel) int {
	return len(r.channels[ch])
}

// Subscribe appends fn to the channel's subscribers and returns the token
// that unsubscribes it. Unknown channels and nil handlers are ignored and
// yield the zero Token.
func (r *Registry[O, E]) Subscribe(ch Channel, fn Handler[O, E]) Token {
	subs, ok := r.channels[ch]
	if !ok || fn == nil {
		return 0
	}
	r.next++
	r.channels[ch] = append(subs, subscription[O, E]{tok: r.next, fn: fn})
	return r.next
}

// Unsubscribe removes the subscription identified by tok from the channel.
// It returns false if no such subscription exists.
//
// If the channel is being dispatched the cursor of that dispatch is
// adjusted so that the remaining subscribers each run exactly once.
func (r *Registry[O, E]) Unsubscribe(ch Channel, tok Token) bool {
	subs, ok := r.channels[ch]
	if !ok || tok == 0 {
		return false
	}

	for p, s := range subs {
		if s.tok != tok {
			continue
		}

		r.channels[ch] = append(subs[:p], subs[p+1:]...)

		for _, it := range r.iterations(ch) {
			if p < it.l {
				it.l--
				if p <= it.i {
					it.i--
				}
			}
		}
		return true
	}

	return false
}

// UnsubscribeAll removes every subscriber of the channel. A dispatch in
// progress over the channel stops after the current subscriber returns.
// For the Wildcard channel this holds for every nested pass.
func (r *Registry[O, E]) UnsubscribeAll(ch Channel) {
	if _, ok := r.channels[ch]; !ok {
		return
	}
	r.channels[ch] = nil
	for _, it := range r.iterations(ch) {
		it.i, it.l = 0, 0
	}
}

// iterations returns the in-flight cursors over ch.
func (r *Registry[O, E]) iterations(ch Channel) []*iteration {
	if ch == Wildcard {
		return r.wildcard
	}
	if it := r.active[ch]; it != nil {
		return []*iteration{it}
	}
	return nil
}

// Dispatch notifies the subscribers of ev's channel and then the wildcard
// subscribers.
func (r *Registry[O, E]) Dispatch(ev E) error {
	ch := ev.Channel()
	if ch == Wildcard {
		return fmt.Errorf("%w: %q cannot be dispatched directly", ErrUnknownChannel, ch)
	}
	if _, ok := r.channels[ch]; !ok {
		return fmt.Errorf("%w: %q", ErrUnknownChannel, ch)
	}

	if err := r.run(ch, ev); err != nil {
		return err
	}
	return r.run(Wildcard, ev)
}

func (r *Registry[O, E]) run(ch Channel, ev E) error {
	it := &iteration{l: len(r.channels[ch])}

	if ch == Wildcard {
		r.wildcard = append(r.wildcard, it)
		defer func() {
			r.wildcard[len(r.wildcard)-1] = nil
			r.wildcard = r.wildcard[:len(r.wildcard)-1]
		}()
	} else {
		if _, busy := r.active[ch]; busy {
			return fmt.Errorf("%w: %q", ErrReentrant, ch)
		}
		r.active[ch] = it
		defer delete(r.active, ch)
	}

	for it.i = 0; it.i < it.l; it.i++ {
		r.channels[ch][it.i].fn(r.owner, ev)
	}

	return nil
}
