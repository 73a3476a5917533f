// Package glfw is a barebones driver using a GLFW window and the OpenGL
// API. GLFW invokes the input callbacks from PollEvents, which the driver
// calls at the start of every frame on the loop goroutine.
package glfw

import (
	"context"
	"errors"
	"runtime"

	"github.com/go-gl/gl/v4.6-core/gl"
	"github.com/go-gl/glfw/v3.3/glfw"
	"github.com/thelolagemann/goinput/pkg/driver"
	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/loop"
	"github.com/thelolagemann/goinput/pkg/raw"
)

const notch = 120

func init() {
	// GLFW: this is needed to arrange for main to run on main thread
	runtime.LockOSThread()

	d := &glfwDriver{}
	driver.Install("glfw", d, []driver.DriverOption{
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

type glfwDriver struct {
	width, height int
	fullscreen    bool

	loop   *loop.Loop
	log    log.Logger
	window *glfw.Window

	// owned by the loop goroutine
	cursor  cursor
	pending []raw.Event
	locked  bool
}

func (g *glfwDriver) Initialize(l *loop.Loop) error {
	g.loop = l
	g.log = l.Logger()
	return nil
}

// Start opens the window and runs the loop until ctx is done or the window
// is closed.
func (g *glfwDriver) Start(ctx context.Context) error {
	if g.loop == nil {
		return errors.New("glfw: driver not initialized")
	}
	if err := glfw.Init(); err != nil {
		return err
	}

	var mon *glfw.Monitor
	width, height := g.width, g.height
	if g.fullscreen {
		mon = glfw.GetPrimaryMonitor()
		mode := mon.GetVideoMode()
		width, height = mode.Width, mode.Height
	}

	window, err := glfw.CreateWindow(width, height, "goinput", mon, nil)
	if err != nil {
		glfw.Terminate()
		return err
	}
	g.window = window
	defer g.Stop()

	window.MakeContextCurrent()

	// initialize OpenGL
	if err := gl.Init(); err != nil {
		return err
	}
	gl.ClearColor(0, 0, 0, 1)

	g.attach(window)
	g.loop.AddPoller(g.poll)

	err = g.loop.Run(ctx)
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// attach installs the input callbacks of the window.
func (g *glfwDriver) attach(window *glfw.Window) {
	window.SetKeyCallback(func(_ *glfw.Window, key glfw.Key, _ int, action glfw.Action, _ glfw.ModifierKey) {
		if action == glfw.Repeat {
			return
		}
		if code := keyCode(key); code != 0 {
			g.loop.Emit(raw.Key{Code: code, Released: action == glfw.Release})
		}
	})

	window.SetMouseButtonCallback(func(w *glfw.Window, button glfw.MouseButton, action glfw.Action, _ glfw.ModifierKey) {
		code := buttonCode(button)
		if code == 0 {
			return
		}
		x, y := w.GetCursorPos()
		g.loop.Emit(raw.Button{Code: code, Released: action == glfw.Release, ClientX: x, ClientY: y})
	})

	window.SetCursorPosCallback(func(_ *glfw.Window, x, y float64) {
		g.loop.Emit(g.cursor.move(x, y))
	})

	window.SetScrollCallback(func(_ *glfw.Window, xoff, yoff float64) {
		g.loop.Emit(scroll(xoff, yoff))
	})

	window.SetSizeCallback(func(_ *glfw.Window, w, h int) {
		gl.Viewport(0, 0, int32(w), int32(h))
		g.loop.Emit(raw.Resize{Width: w, Height: h})
	})
}

// poll delivers the pending lock notifications and the window events, then
// draws the frame.
func (g *glfwDriver) poll() {
	for _, ev := range g.pending {
		g.loop.Emit(ev)
	}
	g.pending = g.pending[:0]

	glfw.PollEvents()
	if g.window.ShouldClose() {
		g.loop.Quit()
		return
	}

	gl.Clear(gl.COLOR_BUFFER_BIT)
	g.window.SwapBuffers()
}

// cursor derives movement from successive cursor positions. With the
// cursor disabled GLFW reports virtual, unbounded positions, so the
// difference is the relative movement.
type cursor struct {
	x, y float64
	seen bool
}

func (c *cursor) move(x, y float64) raw.Motion {
	m := raw.Motion{ClientX: x, ClientY: y, Relative: true}
	if c.seen {
		m.MovementX, m.MovementY = x-c.x, y-c.y
	}
	c.x, c.y, c.seen = x, y, true
	return m
}

// scroll converts GLFW scroll offsets, positive up and right.
func scroll(xoff, yoff float64) raw.Wheel {
	return raw.Wheel{DX: -xoff * notch, DY: yoff * notch, D: yoff * notch}
}

// Stop stops the display driver.
func (g *glfwDriver) Stop() error {
	if g.window == nil {
		return nil
	}
	g.window.Destroy()
	g.window = nil
	glfw.Terminate()

	return nil
}

func (g *glfwDriver) Target() raw.Target {
	return raw.Origin
}

func (g *glfwDriver) Locker() raw.Locker {
	return (*glfwLocker)(g)
}

// glfwLocker implements pointer lock by disabling the cursor. The outcome
// is emitted at the start of the next frame.
type glfwLocker glfwDriver

func (l *glfwLocker) RequestLock() {
	g := (*glfwDriver)(l)
	if g.window == nil {
		g.pending = append(g.pending, raw.Lock{Failed: true})
		return
	}
	g.window.SetInputMode(glfw.CursorMode, glfw.CursorDisabled)
	if glfw.RawMouseMotionSupported() {
		g.window.SetInputMode(glfw.RawMouseMotion, glfw.True)
	}
	g.locked = true
	g.pending = append(g.pending, raw.Lock{Locked: true})
}

func (l *glfwLocker) ExitLock() {
	g := (*glfwDriver)(l)
	if !g.locked || g.window == nil {
		return
	}
	g.window.SetInputMode(glfw.CursorMode, glfw.CursorNormal)
	g.locked = false
	g.pending = append(g.pending, raw.Lock{Locked: false})
}
