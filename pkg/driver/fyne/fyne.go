// Package fyne is a driver using a fyne window. Key events come from the
// desktop canvas and mouse events from a surface widget filling the
// window. Fyne has no pointer lock, every lock request fails.
package fyne

import (
	"context"
	"errors"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/thelolagemann/goinput/pkg/driver"
	"github.com/thelolagemann/goinput/pkg/log"
	"github.com/thelolagemann/goinput/pkg/loop"
	"github.com/thelolagemann/goinput/pkg/raw"
)

func init() {
	d := &fyneDriver{}
	driver.Install("fyne", d, []driver.DriverOption{
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
	})
}

type fyneDriver struct {
	width, height int

	loop *loop.Loop
	log  log.Logger
	app  fyne.App

	// owned by the loop goroutine
	pending []raw.Event
}

func (f *fyneDriver) Initialize(l *loop.Loop) error {
	f.loop = l
	f.log = l.Logger()
	return nil
}

// Start shows the window and blocks in the fyne event loop, running the
// input loop in a goroutine. Closing the window quits the loop and a
// finished loop closes the window.
func (f *fyneDriver) Start(ctx context.Context) error {
	if f.loop == nil {
		return errors.New("fyne: driver not initialized")
	}

	a := app.New()
	a.Settings().SetTheme(&defaultTheme{})
	f.app = a

	window := a.NewWindow("goinput")
	window.SetPadded(false)
	window.SetMaster()
	window.SetContent(newSurface(f.loop.Post))
	window.Resize(fyne.NewSize(float32(f.width), float32(f.height)))

	if desk, ok := window.Canvas().(desktop.Canvas); ok {
		desk.SetOnKeyDown(func(e *fyne.KeyEvent) {
			if code := keyCode(e.Name); code != 0 {
				f.loop.Post(raw.Key{Code: code})
			}
		})
		desk.SetOnKeyUp(func(e *fyne.KeyEvent) {
			if code := keyCode(e.Name); code != 0 {
				f.loop.Post(raw.Key{Code: code, Released: true})
			}
		})
	} else {
		f.log.Errorf("fyne: canvas has no keyboard, key events disabled")
	}

	f.loop.AddPoller(f.poll)

	done := make(chan error, 1)
	go func() {
		done <- f.loop.Run(ctx)
		a.Quit()
	}()

	window.ShowAndRun()

	// the window was closed, or the loop finished and quit the app
	f.loop.Quit()
	err := <-done
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (f *fyneDriver) poll() {
	for _, ev := range f.pending {
		f.loop.Emit(ev)
	}
	f.pending = f.pending[:0]
}

func (f *fyneDriver) Stop() error {
	if f.app != nil {
		f.app.Quit()
		f.app = nil
	}
	return nil
}

func (f *fyneDriver) Target() raw.Target {
	return raw.Origin
}

func (f *fyneDriver) Locker() raw.Locker {
	return (*fyneLocker)(f)
}

type fyneLocker fyneDriver

func (l *fyneLocker) RequestLock() {
	l.pending = append(l.pending, raw.Lock{Failed: true})
}

func (l *fyneLocker) ExitLock() {}
