// Package orient computes the device and world bases of a device
// orientation reading.
package orient

import (
	"math"

	"github.com/thelolagemann/goinput/pkg/raw"
)

// Gravity is the standard acceleration due to gravity, in m/s².
const Gravity = 9.81

const degToRad = math.Pi / 180

// Basis holds the device axes expressed in world coordinates (Orient) and
// the world axes expressed in device coordinates (Real).
type Basis struct {
	XOrient, YOrient, ZOrient raw.Vec3
	XReal, YReal, ZReal       raw.Vec3
}

// Compute returns the bases for the given orientation angles in degrees.
// Alpha is applied as roll, beta as pitch and gamma as yaw.
func Compute(alpha, beta, gamma float64) Basis {
	roll, pitch, yaw := alpha*degToRad, beta*degToRad, gamma*degToRad

	cr, sr := math.Cos(roll), math.Sin(roll)
	cp, sp := math.Cos(pitch), math.Sin(pitch)
	cy, sy := math.Cos(yaw), math.Sin(yaw)

	var b Basis
	b.XOrient = raw.Vec3{X: cy * cp, Y: cp * sy, Z: -sp}
	b.YOrient = raw.Vec3{X: cy*sp*sr - cr*sy, Y: cy*cr + sy*sp*sr, Z: cp * sr}
	b.ZOrient = raw.Vec3{X: sy*sr + cy*cr*sp, Y: cr*sy*sp - cy*sr, Z: cp * cr}

	// inverse rotation
	sr, sp, sy = -sr, -sp, -sy

	b.XReal = raw.Vec3{X: cp * cy, Y: cr*sy + cy*sr*sp, Z: sr*sy - cr*cy*sp}
	b.YReal = raw.Vec3{X: -cp * sy, Y: cr*cy - sr*sp*sy, Z: cy*sr + cr*sp*sy}
	b.ZReal = raw.Vec3{X: sp, Y: -cp * sr, Z: cr * cp}

	return b
}
