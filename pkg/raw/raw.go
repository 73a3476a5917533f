// Package raw defines the platform boundary of the input devices: the
// typed raw events a driver produces, and the capabilities (event source,
// target geometry, pointer lock) a device is constructed with.
//
// Drivers resolve every platform quirk (key tables, wheel scale, vendor
// specific movement fields) before an event is emitted, so the devices only
// ever see the normalised payloads defined here.
package raw

// Kind identifies the type of a raw event.
type Kind uint8

const (
	_ Kind = iota
	KindKeyDown
	KindKeyUp
	KindButtonDown
	KindButtonUp
	KindMotion
	KindWheel
	KindLockChange
	KindLockError
	KindTouchStart
	KindTouchMove
	KindTouchEnd
	KindTouchCancel
	KindRotation
	KindAcceleration
	KindResize

	numKinds
)

var kindNames = [numKinds]string{
	KindKeyDown:      "keydown",
	KindKeyUp:        "keyup",
	KindButtonDown:   "mousedown",
	KindButtonUp:     "mouseup",
	KindMotion:       "mousemove",
	KindWheel:        "wheel",
	KindLockChange:   "pointerlockchange",
	KindLockError:    "pointerlockerror",
	KindTouchStart:   "touchstart",
	KindTouchMove:    "touchmove",
	KindTouchEnd:     "touchend",
	KindTouchCancel:  "touchcancel",
	KindRotation:     "deviceorientation",
	KindAcceleration: "devicemotion",
	KindResize:       "resize",
}

func (k Kind) String() string {
	if k == 0 || k >= numKinds {
		return "unknown"
	}
	return kindNames[k]
}

// Valid reports whether k is one of the declared kinds.
func (k Kind) Valid() bool {
	return k > 0 && k < numKinds
}

// Event is a raw platform event.
type Event interface {
	Kind() Kind
}

// Key is a key press or release. Code is a DOM keyCode; drivers translate
// their native key identifiers into that table.
type Key struct {
	Code     int
	Released bool
}

func (e Key) Kind() Kind {
	if e.Released {
		return KindKeyUp
	}
	return KindKeyDown
}

// Button is a mouse button press or release. Code follows the DOM "which"
// numbering: 1 left, 2 middle, 3 right.
type Button struct {
	Code             int
	Released         bool
	ClientX, ClientY float64
}

func (e Button) Kind() Kind {
	if e.Released {
		return KindButtonUp
	}
	return KindButtonDown
}

// Motion is a pointer movement. When Relative is set MovementX/Y hold the
// platform supplied movement (valid under pointer lock); otherwise the
// device derives the movement from successive positions.
type Motion struct {
	ClientX, ClientY     float64
	MovementX, MovementY float64
	Relative             bool
}

func (Motion) Kind() Kind { return KindMotion }

// Wheel carries wheel deltas already normalised by the driver. Positive
// values scroll up/left, one notch is 120.
type Wheel struct {
	DX, DY float64
	D      float64
}

func (Wheel) Kind() Kind { return KindWheel }

// Lock reports a change of pointer lock state, or a failed lock request.
type Lock struct {
	Locked bool
	Failed bool
}

func (e Lock) Kind() Kind {
	if e.Failed {
		return KindLockError
	}
	return KindLockChange
}

// Touch is one changed contact point of a Touches event.
type Touch struct {
	ID               int
	ClientX, ClientY float64
}

// Touches is a batch of changed contact points. Phase must be one of the
// touch kinds.
type Touches struct {
	Phase   Kind
	Changed []Touch
}

func (e Touches) Kind() Kind { return e.Phase }

// Vec3 is a three component vector.
type Vec3 struct {
	X, Y, Z float64
}

// Add returns v+o.
func (v Vec3) Add(o Vec3) Vec3 { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }

// Sub returns v-o.
func (v Vec3) Sub(o Vec3) Vec3 { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }

// Scale returns v*s.
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// Rotation is a device orientation reading in degrees.
type Rotation struct {
	Alpha, Beta, Gamma float64
}

func (Rotation) Kind() Kind { return KindRotation }

// Acceleration is a device motion reading. Either vector is nil when the
// platform does not provide it.
type Acceleration struct {
	Acceleration *Vec3
	Gravity      *Vec3
}

func (Acceleration) Kind() Kind { return KindAcceleration }

// Resize reports a new size of the event target.
type Resize struct {
	Width, Height int
}

func (Resize) Kind() Kind { return KindResize }

// Listener receives raw events of the kind it was attached for.
type Listener func(Event)

// Detach removes a listener previously attached to a Source.
type Detach func() error

// Source delivers raw events to attached listeners.
type Source interface {
	Attach(kind Kind, l Listener) (Detach, error)
}

// Target reports the current layout offset of the element events are
// relative to. Devices call Offset on every event; implementations must
// not cache a stale answer.
type Target interface {
	Offset() (left, top float64)
}

// TargetFunc adapts a function to the Target interface.
type TargetFunc func() (left, top float64)

func (f TargetFunc) Offset() (float64, float64) { return f() }

// Origin is the Target of a whole window: client coordinates are already
// target relative.
var Origin Target = TargetFunc(func() (float64, float64) { return 0, 0 })

// Locker is the pointer lock capability of a platform. Both methods are
// fire-and-forget; the outcome arrives later as a Lock event.
type Locker interface {
	RequestLock()
	ExitLock()
}
