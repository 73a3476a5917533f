package raw

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"
)

// The wire form of a raw event is its kind byte followed by a little endian
// payload. It is what the browser client of the web driver sends, and what
// the recorder stores. Coordinates travel as float32.
//
//	key            code u16
//	button         code u8, x f32, y f32
//	motion         flags u8 (bit0 relative), x, y, movementX, movementY f32
//	wheel          dx, dy, d f32
//	lock           locked u8
//	touch*         count u8, count * (id i32, x f32, y f32)
//	rotation       alpha, beta, gamma f32
//	acceleration   flags u8 (bit0 acceleration, bit1 gravity), present vectors 3*f32
//	resize         width u32, height u32

// ErrShortPayload is returned by Unmarshal when the payload is truncated.
var ErrShortPayload = errors.New("raw: short payload")

const (
	motionRelative = 1 << 0

	accelPresent   = 1 << 0
	gravityPresent = 1 << 1
)

// Marshal encodes ev in wire form.
func Marshal(ev Event) ([]byte, error) {
	w := writer{b: []byte{byte(ev.Kind())}}

	switch e := ev.(type) {
	case Key:
		w.u16(uint16(e.Code))
	case Button:
		w.u8(uint8(e.Code))
		w.f32(e.ClientX)
		w.f32(e.ClientY)
	case Motion:
		var flags uint8
		if e.Relative {
			flags |= motionRelative
		}
		w.u8(flags)
		w.f32(e.ClientX)
		w.f32(e.ClientY)
		w.f32(e.MovementX)
		w.f32(e.MovementY)
	case Wheel:
		w.f32(e.DX)
		w.f32(e.DY)
		w.f32(e.D)
	case Lock:
		w.bool(e.Locked)
	case Touches:
		if !isTouchKind(e.Phase) {
			return nil, fmt.Errorf("raw: invalid touch phase %v", e.Phase)
		}
		if len(e.Changed) > math.MaxUint8 {
			return nil, fmt.Errorf("raw: too many touches (%d)", len(e.Changed))
		}
		w.u8(uint8(len(e.Changed)))
		for _, t := range e.Changed {
			w.u32(uint32(int32(t.ID)))
			w.f32(t.ClientX)
			w.f32(t.ClientY)
		}
	case Rotation:
		w.f32(e.Alpha)
		w.f32(e.Beta)
		w.f32(e.Gamma)
	case Acceleration:
		var flags uint8
		if e.Acceleration != nil {
			flags |= accelPresent
		}
		if e.Gravity != nil {
			flags |= gravityPresent
		}
		w.u8(flags)
		if e.Acceleration != nil {
			w.vec(*e.Acceleration)
		}
		if e.Gravity != nil {
			w.vec(*e.Gravity)
		}
	case Resize:
		w.u32(uint32(e.Width))
		w.u32(uint32(e.Height))
	default:
		return nil, fmt.Errorf("raw: cannot marshal %T", ev)
	}

	return w.b, nil
}

// Unmarshal decodes an event in wire form.
func Unmarshal(b []byte) (Event, error) {
	if len(b) == 0 {
		return nil, ErrShortPayload
	}

	kind := Kind(b[0])
	r := reader{b: b[1:]}

	var ev Event
	switch kind {
	case KindKeyDown, KindKeyUp:
		ev = Key{Code: int(r.u16()), Released: kind == KindKeyUp}
	case KindButtonDown, KindButtonUp:
		ev = Button{Code: int(r.u8()), ClientX: r.f32(), ClientY: r.f32(), Released: kind == KindButtonUp}
	case KindMotion:
		flags := r.u8()
		ev = Motion{
			ClientX:   r.f32(),
			ClientY:   r.f32(),
			MovementX: r.f32(),
			MovementY: r.f32(),
			Relative:  flags&motionRelative != 0,
		}
	case KindWheel:
		ev = Wheel{DX: r.f32(), DY: r.f32(), D: r.f32()}
	case KindLockChange, KindLockError:
		ev = Lock{Locked: r.u8() != 0, Failed: kind == KindLockError}
	case KindTouchStart, KindTouchMove, KindTouchEnd, KindTouchCancel:
		n := int(r.u8())
		t := Touches{Phase: kind, Changed: make([]Touch, 0, n)}
		for i := 0; i < n && r.err == nil; i++ {
			t.Changed = append(t.Changed, Touch{ID: int(int32(r.u32())), ClientX: r.f32(), ClientY: r.f32()})
		}
		ev = t
	case KindRotation:
		ev = Rotation{Alpha: r.f32(), Beta: r.f32(), Gamma: r.f32()}
	case KindAcceleration:
		flags := r.u8()
		var a Acceleration
		if flags&accelPresent != 0 {
			v := r.vec()
			a.Acceleration = &v
		}
		if flags&gravityPresent != 0 {
			v := r.vec()
			a.Gravity = &v
		}
		ev = a
	case KindResize:
		ev = Resize{Width: int(r.u32()), Height: int(r.u32())}
	default:
		return nil, fmt.Errorf("%w: %d", ErrInvalidKind, b[0])
	}

	if r.err != nil {
		return nil, fmt.Errorf("%v: %w", kind, r.err)
	}

	return ev, nil
}

func isTouchKind(k Kind) bool {
	return k >= KindTouchStart && k <= KindTouchCancel
}

type writer struct {
	b []byte
}

func (w *writer) u8(v uint8) { w.b = append(w.b, v) }

func (w *writer) bool(v bool) {
	if v {
		w.u8(1)
	} else {
		w.u8(0)
	}
}

func (w *writer) u16(v uint16) { w.b = binary.LittleEndian.AppendUint16(w.b, v) }
func (w *writer) u32(v uint32) { w.b = binary.LittleEndian.AppendUint32(w.b, v) }
func (w *writer) f32(v float64) { w.u32(math.Float32bits(float32(v))) }

func (w *writer) vec(v Vec3) {
	w.f32(v.X)
	w.f32(v.Y)
	w.f32(v.Z)
}

// reader decodes little endian values, remembering the first short read.
type reader struct {
	b   []byte
	err error
}

func (r *reader) take(n int) []byte {
	if r.err != nil {
		return nil
	}
	if len(r.b) < n {
		r.err = ErrShortPayload
		return nil
	}
	v := r.b[:n]
	r.b = r.b[n:]
	return v
}

func (r *reader) u8() uint8 {
	if v := r.take(1); v != nil {
		return v[0]
	}
	return 0
}

func (r *reader) u16() uint16 {
	if v := r.take(2); v != nil {
		return binary.LittleEndian.Uint16(v)
	}
	return 0
}

func (r *reader) u32() uint32 {
	if v := r.take(4); v != nil {
		return binary.LittleEndian.Uint32(v)
	}
	return 0
}

func (r *reader) f32() float64 {
	return float64(math.Float32frombits(r.u32()))
}

func (r *reader) vec() Vec3 {
	return Vec3{X: r.f32(), Y: r.f32(), Z: r.f32()}
}
