package fyne

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/goinput/pkg/raw"
)

func TestKeyCode(t *testing.T) {
	assert.Equal(t, 65, keyCode(fyne.KeyA))
	assert.Equal(t, 48, keyCode(fyne.Key0))
	assert.Equal(t, 13, keyCode(fyne.KeyReturn))
	assert.Equal(t, 16, keyCode(desktop.KeyShiftRight))
	assert.Equal(t, 122, keyCode(fyne.KeyF11))
	assert.Equal(t, 221, keyCode(fyne.KeyRightBracket))
	assert.Zero(t, keyCode(fyne.KeyName("Menu")))
}

func TestButtonCode(t *testing.T) {
	assert.Equal(t, 1, buttonCode(desktop.MouseButtonPrimary))
	assert.Equal(t, 2, buttonCode(desktop.MouseButtonTertiary))
	assert.Equal(t, 3, buttonCode(desktop.MouseButtonSecondary))
}

func TestScroll(t *testing.T) {
	assert.Equal(t, raw.Wheel{DX: 0, DY: 120, D: 120}, scroll(fyne.NewDelta(0, 10)))
	assert.Equal(t, raw.Wheel{DX: -60, DY: 0, D: 0}, scroll(fyne.NewDelta(5, 0)))
}

func TestSurface(t *testing.T) {
	var got []raw.Event
	s := &surface{post: func(ev raw.Event) { got = append(got, ev) }}

	s.MouseDown(&desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(3, 4)},
		Button:     desktop.MouseButtonSecondary,
	})
	s.MouseMoved(&desktop.MouseEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(5, 6)}})
	s.MouseUp(&desktop.MouseEvent{Button: desktop.MouseButton(64)})

	assert.Equal(t, []raw.Event{
		raw.Button{Code: 3, ClientX: 3, ClientY: 4},
		raw.Motion{ClientX: 5, ClientY: 6},
	}, got)
}

func TestLockFails(t *testing.T) {
	f := &fyneDriver{}
	f.Locker().RequestLock()
	f.Locker().ExitLock()
	assert.Equal(t, []raw.Event{raw.Lock{Failed: true}}, f.pending)
}
