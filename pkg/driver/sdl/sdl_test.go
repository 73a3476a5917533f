package sdl

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/goinput/pkg/raw"
	"github.com/veandco/go-sdl2/sdl"
)

func TestKeyCode(t *testing.T) {
	assert.Equal(t, 'A', rune(keyCode(sdl.K_a)))
	assert.Equal(t, 'Z', rune(keyCode(sdl.K_z)))
	assert.Equal(t, '7', rune(keyCode(sdl.K_7)))
	assert.Equal(t, 13, keyCode(sdl.K_RETURN))
	assert.Equal(t, 37, keyCode(sdl.K_LEFT))
	assert.Equal(t, 16, keyCode(sdl.K_RSHIFT))
	assert.Equal(t, 123, keyCode(sdl.K_F12))
	assert.Equal(t, 105, keyCode(sdl.K_KP_9))
	assert.Equal(t, 222, keyCode(sdl.K_QUOTE))
	assert.Zero(t, keyCode(sdl.K_AUDIOPLAY))
}

func TestTranslate(t *testing.T) {
	size := &sizer{w: 200, h: 100}

	t.Run("key", func(t *testing.T) {
		ev := &sdl.KeyboardEvent{Type: sdl.KEYUP, Keysym: sdl.Keysym{Sym: sdl.K_SPACE}}
		assert.Equal(t, raw.Key{Code: 32, Released: true}, translate(ev, size))

		ev = &sdl.KeyboardEvent{Type: sdl.KEYDOWN, Repeat: 1, Keysym: sdl.Keysym{Sym: sdl.K_SPACE}}
		assert.Nil(t, translate(ev, size))
	})

	t.Run("button", func(t *testing.T) {
		ev := &sdl.MouseButtonEvent{Type: sdl.MOUSEBUTTONDOWN, Button: sdl.BUTTON_RIGHT, X: 4, Y: 5}
		assert.Equal(t, raw.Button{Code: 3, ClientX: 4, ClientY: 5}, translate(ev, size))
	})

	t.Run("motion", func(t *testing.T) {
		ev := &sdl.MouseMotionEvent{X: 10, Y: 20, XRel: -2, YRel: 3}
		assert.Equal(t, raw.Motion{ClientX: 10, ClientY: 20, MovementX: -2, MovementY: 3, Relative: true}, translate(ev, size))
	})

	t.Run("wheel", func(t *testing.T) {
		ev := &sdl.MouseWheelEvent{X: 1, Y: 1}
		assert.Equal(t, raw.Wheel{DX: -120, DY: 120, D: 120}, translate(ev, size))

		ev = &sdl.MouseWheelEvent{Y: 1, Direction: sdl.MOUSEWHEEL_FLIPPED}
		assert.Equal(t, raw.Wheel{DX: 0, DY: -120, D: -120}, translate(ev, size))
	})

	t.Run("touch", func(t *testing.T) {
		ev := &sdl.TouchFingerEvent{Type: sdl.FINGERDOWN, FingerID: 3, X: 0.5, Y: 0.25}
		assert.Equal(t, raw.Touches{
			Phase:   raw.KindTouchStart,
			Changed: []raw.Touch{{ID: 3, ClientX: 100, ClientY: 25}},
		}, translate(ev, size))
	})

	t.Run("resize", func(t *testing.T) {
		s := &sizer{w: 200, h: 100}
		ev := &sdl.WindowEvent{Event: sdl.WINDOWEVENT_SIZE_CHANGED, Data1: 400, Data2: 300}
		assert.Equal(t, raw.Resize{Width: 400, Height: 300}, translate(ev, s))
		assert.Equal(t, sizer{w: 400, h: 300}, *s)

		touch := &sdl.TouchFingerEvent{Type: sdl.FINGERUP, X: 1, Y: 1}
		assert.Equal(t, raw.Touches{
			Phase:   raw.KindTouchEnd,
			Changed: []raw.Touch{{ClientX: 400, ClientY: 300}},
		}, translate(touch, s))
	})
}
