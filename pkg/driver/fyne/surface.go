package fyne

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"github.com/thelolagemann/goinput/pkg/raw"
)

var (
	_ desktop.Mouseable = (*surface)(nil)
	_ desktop.Hoverable = (*surface)(nil)
	_ fyne.Scrollable   = (*surface)(nil)
)

const (
	notch = 120

	// scrollStep is the fyne scroll delta of one wheel notch.
	scrollStep = 10
)

// surface is a blank widget filling the window that forwards the mouse
// events it receives as raw events. Positions are relative to the widget.
type surface struct {
	widget.BaseWidget
	post func(raw.Event)
}

func newSurface(post func(raw.Event)) *surface {
	s := &surface{post: post}
	s.ExtendBaseWidget(s)
	return s
}

func (s *surface) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(canvas.NewRectangle(color.Black))
}

func (s *surface) Resize(size fyne.Size) {
	s.BaseWidget.Resize(size)
	s.post(raw.Resize{Width: int(size.Width), Height: int(size.Height)})
}

func (s *surface) MouseDown(e *desktop.MouseEvent) { s.button(e, false) }
func (s *surface) MouseUp(e *desktop.MouseEvent)   { s.button(e, true) }

func (s *surface) button(e *desktop.MouseEvent, released bool) {
	code := buttonCode(e.Button)
	if code == 0 {
		return
	}
	s.post(raw.Button{
		Code:     code,
		Released: released,
		ClientX:  float64(e.Position.X),
		ClientY:  float64(e.Position.Y),
	})
}

func (s *surface) MouseIn(e *desktop.MouseEvent) { s.MouseMoved(e) }
func (s *surface) MouseOut()                     {}

func (s *surface) MouseMoved(e *desktop.MouseEvent) {
	s.post(raw.Motion{ClientX: float64(e.Position.X), ClientY: float64(e.Position.Y)})
}

func (s *surface) Scrolled(e *fyne.ScrollEvent) {
	s.post(scroll(e.Scrolled))
}

// scroll converts a fyne scroll delta, positive up and right.
func scroll(d fyne.Delta) raw.Wheel {
	dx := -float64(d.DX) * notch / scrollStep
	dy := float64(d.DY) * notch / scrollStep
	return raw.Wheel{DX: dx, DY: dy, D: dy}
}
