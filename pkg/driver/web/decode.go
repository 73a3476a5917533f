package web

import (
	"encoding/binary"
	"errors"
	"fmt"
	"math"

	"github.com/thelolagemann/goinput/pkg/raw"
)

var errShortMessage = errors.New("web: short message")

// offset is the page position of the client's input element.
type offset struct {
	left, top float64
}

// decode parses a client message into a raw.Event or an offset.
func decode(message []byte, wheel wheelNormaliser) (any, error) {
	if len(message) == 0 {
		return nil, errShortMessage
	}

	switch message[0] {
	case Event:
		return raw.Unmarshal(message[1:])
	case WheelEvent:
		f, err := floats(message[1:], 5)
		if err != nil {
			return nil, err
		}
		return wheel(browserWheel{
			DeltaX: f[0], DeltaY: f[1],
			WheelDeltaX: f[2], WheelDeltaY: f[3], WheelDelta: f[4],
		}), nil
	case Offset:
		f, err := floats(message[1:], 2)
		if err != nil {
			return nil, err
		}
		return offset{left: f[0], top: f[1]}, nil
	}

	return nil, fmt.Errorf("web: unknown message type %d", message[0])
}

func floats(b []byte, n int) ([]float64, error) {
	if len(b) < n*4 {
		return nil, errShortMessage
	}
	f := make([]float64, n)
	for i := range f {
		f[i] = float64(math.Float32frombits(binary.LittleEndian.Uint32(b[i*4:])))
	}
	return f, nil
}
