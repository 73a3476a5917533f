package input

import (
	"github.com/thelolagemann/goinput/internal/gate"
	"github.com/thelolagemann/goinput/internal/orient"
	"github.com/thelolagemann/goinput/pkg/hooks"
	"github.com/thelolagemann/goinput/pkg/raw"
)

// OrientationEvent is dispatched on Rotate and Move.
type OrientationEvent struct {
	Type hooks.Channel

	Alpha, Beta, Gamma float64

	Acceleration raw.Vec3
	Gravity      raw.Vec3
	// Unavailable is set on Move when the platform reported neither
	// acceleration vector. The device state is left unchanged.
	Unavailable bool

	Original raw.Event
}

func (e OrientationEvent) Channel() hooks.Channel { return e.Type }

// OrientationHandler receives orientation notifications.
type OrientationHandler = hooks.Handler[*Orientation, OrientationEvent]

// Orientation tracks the rotation and acceleration of the device.
type Orientation struct {
	device
	hooks *hooks.Registry[*Orientation, OrientationEvent]

	// Alpha, Beta and Gamma are the last rotation angles, in degrees.
	Alpha, Beta, Gamma float64

	// Gravity is the acceleration including gravity, Acceleration the
	// acceleration without it.
	Gravity      raw.Vec3
	Acceleration raw.Vec3

	orient.Basis

	Steps bool
}

// NewOrientation returns an Orientation listening to src.
func NewOrientation(src raw.Source, opts ...Opt) (*Orientation, error) {
	if src == nil {
		return nil, ErrNoSource
	}
	cfg := newConfig(opts)

	o := &Orientation{
		device: device{name: "orientation", gate: gate.New(src)},
		Steps:  cfg.steps,
	}
	o.hooks = hooks.New[*Orientation, OrientationEvent](o, Rotate, Move)

	o.gate.Listen(raw.KindRotation, o.rotation)
	o.gate.Listen(raw.KindAcceleration, o.acceleration)

	if err := o.init(cfg); err != nil {
		return nil, err
	}
	return o, nil
}

func (o *Orientation) rotation(ev raw.Event) {
	r := ev.(raw.Rotation)
	o.Alpha, o.Beta, o.Gamma = r.Alpha, r.Beta, r.Gamma
	o.Basis = orient.Compute(r.Alpha, r.Beta, r.Gamma)

	o.report(o.hooks.Dispatch(OrientationEvent{
		Type: Rotate, Alpha: o.Alpha, Beta: o.Beta, Gamma: o.Gamma, Original: r,
	}))
}

func (o *Orientation) acceleration(ev raw.Event) {
	a := ev.(raw.Acceleration)
	if a.Acceleration == nil && a.Gravity == nil {
		o.report(o.hooks.Dispatch(OrientationEvent{
			Type: Move, Acceleration: o.Acceleration, Gravity: o.Gravity, Unavailable: true, Original: a,
		}))
		return
	}

	g := o.ZReal.Scale(orient.Gravity)
	switch {
	case a.Gravity == nil:
		o.Acceleration = *a.Acceleration
		o.Gravity = a.Acceleration.Add(g)
	case a.Acceleration == nil:
		o.Gravity = *a.Gravity
		o.Acceleration = a.Gravity.Sub(g)
	default:
		o.Acceleration = *a.Acceleration
		o.Gravity = *a.Gravity
	}

	o.report(o.hooks.Dispatch(OrientationEvent{
		Type: Move, Acceleration: o.Acceleration, Gravity: o.Gravity, Original: a,
	}))
}

// StepClear does nothing; orientation state does not accumulate.
func (o *Orientation) StepClear() {}

func (o *Orientation) Subscribe(ch hooks.Channel, fn OrientationHandler) hooks.Token {
	return o.hooks.Subscribe(ch, fn)
}

func (o *Orientation) Unsubscribe(ch hooks.Channel, tok hooks.Token) bool {
	return o.hooks.Unsubscribe(ch, tok)
}

func (o *Orientation) UnsubscribeAll(ch hooks.Channel) {
	o.hooks.UnsubscribeAll(ch)
}
