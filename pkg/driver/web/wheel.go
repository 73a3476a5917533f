package web

import (
	"strings"

	"github.com/thelolagemann/goinput/pkg/raw"
)

// browserWheel is what the client page reports for a wheel event. Only the
// fields the browser supports are meaningful.
type browserWheel struct {
	DeltaX, DeltaY                      float64
	WheelDeltaX, WheelDeltaY, WheelDelta float64
}

// wheelNormaliser converts browser wheel deltas to raw.Wheel: positive
// scrolls up or left, one notch is 120.
type wheelNormaliser func(w browserWheel) raw.Wheel

// wheelFor picks the normaliser for a browser once, from its user agent.
// Firefox only reports the standard deltas, in lines, pointing the other
// way.
func wheelFor(userAgent string) (string, wheelNormaliser) {
	if strings.Contains(userAgent, "Firefox/") {
		return "firefox", firefoxWheel
	}
	return "wheelDelta", legacyWheel
}

func firefoxWheel(w browserWheel) raw.Wheel {
	return raw.Wheel{DX: -w.DeltaX * 24, DY: -w.DeltaY * 24, D: -w.DeltaY * 24}
}

func legacyWheel(w browserWheel) raw.Wheel {
	return raw.Wheel{DX: w.WheelDeltaX, DY: w.WheelDeltaY, D: w.WheelDelta}
}
