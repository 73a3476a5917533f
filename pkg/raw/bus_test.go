package raw

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBusAttachInvalid(t *testing.T) {
	b := NewBus()

	_, err := b.Attach(0, func(Event) {})
	assert.True(t, errors.Is(err, ErrInvalidKind))

	_, err = b.Attach(numKinds, func(Event) {})
	assert.True(t, errors.Is(err, ErrInvalidKind))

	_, err = b.Attach(KindKeyDown, nil)
	assert.Error(t, err)
}

func TestBusEmitByKind(t *testing.T) {
	b := NewBus()

	var keys, buttons int
	_, err := b.Attach(KindKeyDown, func(Event) { keys++ })
	require.NoError(t, err)
	_, err = b.Attach(KindButtonDown, func(Event) { buttons++ })
	require.NoError(t, err)

	b.Emit(Key{Code: 65})
	b.Emit(Key{Code: 65, Released: true})
	b.Emit(Button{Code: 1})

	assert.Equal(t, 1, keys)
	assert.Equal(t, 1, buttons)
}

func TestBusDetachTwice(t *testing.T) {
	b := NewBus()

	detach, err := b.Attach(KindWheel, func(Event) {})
	require.NoError(t, err)
	assert.Equal(t, 1, b.Listening(KindWheel))

	assert.NoError(t, detach())
	assert.Error(t, detach())
	assert.Zero(t, b.Listening(KindWheel))
}

func TestBusDetachDuringEmit(t *testing.T) {
	b := NewBus()

	var calls []string
	var second Detach
	_, err := b.Attach(KindMotion, func(Event) {
		calls = append(calls, "first")
		_ = second()
		_, _ = b.Attach(KindMotion, func(Event) { calls = append(calls, "late") })
	})
	require.NoError(t, err)
	second, err = b.Attach(KindMotion, func(Event) { calls = append(calls, "second") })
	require.NoError(t, err)

	b.Emit(Motion{})
	assert.Equal(t, []string{"first"}, calls)

	calls = nil
	b.Emit(Motion{})
	assert.Equal(t, []string{"first", "late"}, calls)
}

func TestBusTapSeesEverythingFirst(t *testing.T) {
	b := NewBus()

	var seen []Kind
	untap := b.Tap(func(ev Event) { seen = append(seen, ev.Kind()) })
	_, err := b.Attach(KindResize, func(Event) { seen = append(seen, 0) })
	require.NoError(t, err)

	b.Emit(Resize{Width: 1, Height: 1})
	b.Emit(Wheel{})
	assert.Equal(t, []Kind{KindResize, 0, KindWheel}, seen)

	require.NoError(t, untap())
	b.Emit(Wheel{})
	assert.Len(t, seen, 3)
}

func TestBusIgnoresInvalidTouchPhase(t *testing.T) {
	b := NewBus()

	var n int
	b.Tap(func(Event) { n++ })
	b.Emit(Touches{})
	assert.Zero(t, n)
}
