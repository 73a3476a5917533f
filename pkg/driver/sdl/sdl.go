// Package sdl is a driver that opens an SDL window and delivers its
// keyboard, mouse, touch and window events. The window runs on the main
// thread, so Start must be called from main.
package sdl

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"github.com/thelolagemann/goinput/pkg/driver"
	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/loop"
	"github.com/thelolagemann/goinput/pkg/raw"
	"github.com/veandco/go-sdl2/sdl"
)

// notch is the raw.Wheel delta of one wheel click.
const notch = 120

func init() {
	// SDL: events must be pumped from the thread that created the window
	runtime.LockOSThread()

	d := &sdlDriver{}
	driver.Install("sdl", d, []driver.DriverOption{
		{
			Name:        "width",
			Default:     640,
			Value:       &d.width,
			Type:        "int",
			Description: "Initial window width",
		},
		{
			Name:        "height",
			Default:     480,
			Value:       &d.height,
			Type:        "int",
			Description: "Initial window height",
		},
		{
			Name:        "fullscreen",
			Default:     false,
			Value:       &d.fullscreen,
			Type:        "bool",
			Description: "Run in fullscreen mode",
		},
	})
}

// sdlDriver implements a driver using an SDL window.
type sdlDriver struct {
	width, height int
	fullscreen    bool

	loop   *loop.Loop
	log    log.Logger
	window *sdl.Window

	// owned by the loop goroutine
	size    sizer
	pending []raw.Event
	locked  bool
}

func (d *sdlDriver) Initialize(l *loop.Loop) error {
	d.loop = l
	d.log = l.Logger()
	return nil
}

// Start opens the window and runs the loop until ctx is done or the window
// is closed.
func (d *sdlDriver) Start(ctx context.Context) error {
	if d.loop == nil {
		return errors.New("sdl: driver not initialized")
	}

	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return fmt.Errorf("sdl: %w", err)
	}

	// touches are delivered as touches only
	sdl.SetHint("SDL_TOUCH_MOUSE_EVENTS", "0")

	flags := uint32(sdl.WINDOW_SHOWN | sdl.WINDOW_RESIZABLE)
	if d.fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}
	window, err := sdl.CreateWindow("goinput", sdl.WINDOWPOS_CENTERED, sdl.WINDOWPOS_CENTERED,
		int32(d.width), int32(d.height), flags)
	if err != nil {
		sdl.Quit()
		return fmt.Errorf("sdl: %w", err)
	}
	d.window = window
	defer d.Stop()

	w, h := window.GetSize()
	d.size = sizer{w: w, h: h}

	d.loop.AddPoller(d.poll)

	err = d.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// poll drains the SDL event queue. It runs on the loop goroutine at the
// start of every frame.
func (d *sdlDriver) poll() {
	for _, ev := range d.pending {
		d.loop.Emit(ev)
	}
	d.pending = d.pending[:0]

	for ev := sdl.PollEvent(); ev != nil; ev = sdl.PollEvent() {
		if _, ok := ev.(*sdl.QuitEvent); ok {
			d.loop.Quit()
			return
		}
		if r := translate(ev, &d.size); r != nil {
			d.loop.Emit(r)
		}
	}

	d.clear()
}

// clear paints the window black.
func (d *sdlDriver) clear() {
	surface, err := d.window.GetSurface()
	if err != nil {
		return
	}
	surface.FillRect(nil, 0)
	d.window.UpdateSurface()
}

// sizer tracks the window size, which touch coordinates are scaled to.
type sizer struct {
	w, h int32
}

// translate converts an SDL event to a raw event. It returns nil for
// events that have no raw counterpart.
func translate(ev sdl.Event, size *sizer) raw.Event {
	switch ev := ev.(type) {
	case *sdl.KeyboardEvent:
		if ev.Repeat != 0 {
			return nil
		}
		code := keyCode(ev.Keysym.Sym)
		if code == 0 {
			return nil
		}
		return raw.Key{Code: code, Released: ev.Type == sdl.KEYUP}

	case *sdl.MouseButtonEvent:
		code := buttonCode(ev.Button)
		if code == 0 {
			return nil
		}
		return raw.Button{
			Code:     code,
			Released: ev.Type == sdl.MOUSEBUTTONUP,
			ClientX:  float64(ev.X),
			ClientY:  float64(ev.Y),
		}

	case *sdl.MouseMotionEvent:
		return raw.Motion{
			ClientX:   float64(ev.X),
			ClientY:   float64(ev.Y),
			MovementX: float64(ev.XRel),
			MovementY: float64(ev.YRel),
			Relative:  true,
		}

	case *sdl.MouseWheelEvent:
		x, y := float64(ev.X), float64(ev.Y)
		if ev.Direction == sdl.MOUSEWHEEL_FLIPPED {
			x, y = -x, -y
		}
		// SDL scrolls right for positive x
		return raw.Wheel{DX: -x * notch, DY: y * notch, D: y * notch}

	case *sdl.TouchFingerEvent:
		var phase raw.Kind
		switch ev.Type {
		case sdl.FINGERDOWN:
			phase = raw.KindTouchStart
		case sdl.FINGERMOTION:
			phase = raw.KindTouchMove
		case sdl.FINGERUP:
			phase = raw.KindTouchEnd
		default:
			return nil
		}
		return raw.Touches{Phase: phase, Changed: []raw.Touch{{
			ID:      int(ev.FingerID),
			ClientX: float64(ev.X) * float64(size.w),
			ClientY: float64(ev.Y) * float64(size.h),
		}}}

	case *sdl.WindowEvent:
		if ev.Event != sdl.WINDOWEVENT_SIZE_CHANGED {
			return nil
		}
		size.w, size.h = ev.Data1, ev.Data2
		return raw.Resize{Width: int(ev.Data1), Height: int(ev.Data2)}
	}
	return nil
}

// Stop closes the window and shuts SDL down.
func (d *sdlDriver) Stop() error {
	if d.window == nil {
		return nil
	}
	err := d.window.Destroy()
	d.window = nil
	sdl.Quit()
	return err
}

func (d *sdlDriver) Target() raw.Target {
	return raw.Origin
}

func (d *sdlDriver) Locker() raw.Locker {
	return (*sdlLocker)(d)
}

// sdlLocker implements pointer lock with SDL's relative mouse mode. The
// outcome is emitted at the start of the next frame.
type sdlLocker sdlDriver

func (l *sdlLocker) RequestLock() {
	d := (*sdlDriver)(l)
	if d.window == nil {
		d.pending = append(d.pending, raw.Lock{Failed: true})
		return
	}
	if sdl.SetRelativeMouseMode(true) < 0 {
		d.log.Errorf("sdl: relative mouse mode: %v", sdl.GetError())
		d.pending = append(d.pending, raw.Lock{Locked: d.locked, Failed: true})
		return
	}
	d.window.SetGrab(true)
	d.locked = true
	d.pending = append(d.pending, raw.Lock{Locked: true})
}

func (l *sdlLocker) ExitLock() {
	d := (*sdlDriver)(l)
	if !d.locked {
		return
	}
	sdl.SetRelativeMouseMode(false)
	if d.window != nil {
		d.window.SetGrab(false)
	}
	d.locked = false
	d.pending = append(d.pending, raw.Lock{Locked: false})
}
