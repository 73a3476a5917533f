package input

import (
	"github.com/thelolagemann/goinput/internal/gate"
	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/raw"
)

// KeyEvent is dispatched on Down and Up.
type KeyEvent struct {
	Type     hooks.Channel
	Code     int
	Key      string
	Original raw.Key
}

func (e KeyEvent) Channel() hooks.Channel { return e.Type }

// KeyHandler receives keyboard notifications.
type KeyHandler = hooks.Handler[*Keyboard, KeyEvent]

// Keyboard tracks which keys are held.
type Keyboard struct {
	device
	hooks *hooks.Registry[*Keyboard, KeyEvent]

	held map[string]bool

	// Pressed and Released log the keys that went down or up since the
	// last StepClear, while Steps is set.
	Pressed  map[string]bool
	Released map[string]bool
	Steps    bool
}

// NewKeyboard returns a Keyboard listening to src.
func NewKeyboard(src raw.Source, opts ...Opt) (*Keyboard, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	cfg := newConfig(opts)

	k := &Keyboard{
		device:   device{name: "keyboard", gate: gate.New(src)},
		held:     make(map[string]bool),
		Pressed:  make(map[string]bool),
		Released: make(map[string]bool),
		Steps:    cfg.steps,
	}
	k.hooks = hooks.New[*Keyboard, KeyEvent](k, Down, Up)

	k.gate.Listen(raw.KindKeyDown, k.keyDown)
	k.gate.Listen(raw.KindKeyUp, k.keyUp)

	if err := k.init(cfg); err != nil {
		return nil, err
	}
	return k, nil
}

func (k *Keyboard) keyDown(ev raw.Event) {
	key := ev.(raw.Key)
	name := KeyName(key.Code)
	if k.held[name] {
		return
	}
	k.held[name] = true
	if k.Steps {
		k.Pressed[name] = true
	}
	k.report(k.hooks.Dispatch(KeyEvent{Type: Down, Code: key.Code, Key: name, Original: key}))
}

func (k *Keyboard) keyUp(ev raw.Event) {
	key := ev.(raw.Key)
	name := KeyName(key.Code)
	k.held[name] = false
	if k.Steps {
		k.Released[name] = true
	}
	k.report(k.hooks.Dispatch(KeyEvent{Type: Up, Code: key.Code, Key: name, Original: key}))
}

// Held reports whether the named key is down. Aliases are accepted.
func (k *Keyboard) Held(name string) bool {
	return k.held[canonical(name)]
}

// HeldCode reports whether the key with the given code is down.
func (k *Keyboard) HeldCode(code int) bool {
	return k.held[KeyName(code)]
}

// StepClear empties the Pressed and Released logs.
func (k *Keyboard) StepClear() {
	k.Pressed = make(map[string]bool)
	k.Released = make(map[string]bool)
}

func (k *Keyboard) Subscribe(ch hooks.Channel, fn KeyHandler) hooks.Token {
	return k.hooks.Subscribe(ch, fn)
}

func (k *Keyboard) Unsubscribe(ch hooks.Channel, tok hooks.Token) bool {
	return k.hooks.Unsubscribe(ch, tok)
}

func (k *Keyboard) UnsubscribeAll(ch hooks.Channel) {
	k.hooks.UnsubscribeAll(ch)
}
