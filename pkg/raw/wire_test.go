package raw

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWireEvents(t *testing.T) {
	gravity := Vec3{X: 0.5, Y: -9.75, Z: 0.25}

	for _, ev := range []Event{
		Key{Code: 38},
		Key{Code: 222, Released: true},
		Button{Code: 3, ClientX: 12.5, ClientY: 40},
		Motion{ClientX: 1, ClientY: 2, MovementX: -3, MovementY: 4, Relative: true},
		Wheel{DX: 0, DY: -120, D: -120},
		Lock{Locked: true},
		Lock{Failed: true},
		Touches{Phase: KindTouchMove, Changed: []Touch{{ID: 7, ClientX: 10, ClientY: 20}, {ID: -1, ClientX: 0.5}}},
		Rotation{Alpha: 90, Beta: 45.5, Gamma: -30},
		Acceleration{Gravity: &gravity},
		Resize{Width: 640, Height: 480},
	} {
		t.Run(ev.Kind().String(), func(t *testing.T) {
			b, err := Marshal(ev)
			require.NoError(t, err)
			assert.Equal(t, byte(ev.Kind()), b[0])

			got, err := Unmarshal(b)
			require.NoError(t, err)
			assert.Equal(t, ev, got)
		})
	}
}

func TestWireTruncated(t *testing.T) {
	b, err := Marshal(Touches{Phase: KindTouchStart, Changed: []Touch{{ID: 1}, {ID: 2}}})
	require.NoError(t, err)

	for n := 0; n < len(b); n++ {
		_, err := Unmarshal(b[:n])
		assert.True(t, errors.Is(err, ErrShortPayload), "length %d", n)
	}
}

func TestWireAccelerationFlags(t *testing.T) {
	b, err := Marshal(Acceleration{})
	require.NoError(t, err)
	assert.Equal(t, []byte{byte(KindAcceleration), 0}, b)

	// flags promise a vector that is not there
	_, err = Unmarshal([]byte{byte(KindAcceleration), accelPresent})
	assert.True(t, errors.Is(err, ErrShortPayload))
}

func TestWireUnknownKind(t *testing.T) {
	_, err := Unmarshal([]byte{0xff, 1, 2})
	assert.True(t, errors.Is(err, ErrInvalidKind))

	_, err = Unmarshal([]byte{0})
	assert.True(t, errors.Is(err, ErrInvalidKind))
}

func TestWireRejectsBadTouchPhase(t *testing.T) {
	_, err := Marshal(Touches{Phase: KindWheel})
	assert.Error(t, err)
}
