package orient

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/thelolagemann/goinput/pkg/raw"
)

const epsilon = 1e-9

func assertVec(t *testing.T, want, got raw.Vec3, name string) {
	t.Helper()
	assert.InDelta(t, want.X, got.X, epsilon, name+".X")
	assert.InDelta(t, want.Y, got.Y, epsilon, name+".Y")
	assert.InDelta(t, want.Z, got.Z, epsilon, name+".Z")
}

func TestIdentity(t *testing.T) {
	b := Compute(0, 0, 0)

	x, y, z := raw.Vec3{X: 1}, raw.Vec3{Y: 1}, raw.Vec3{Z: 1}
	assertVec(t, x, b.XOrient, "XOrient")
	assertVec(t, y, b.YOrient, "YOrient")
	assertVec(t, z, b.ZOrient, "ZOrient")
	assertVec(t, x, b.XReal, "XReal")
	assertVec(t, y, b.YReal, "YReal")
	assertVec(t, z, b.ZReal, "ZReal")
}

func TestQuarterYaw(t *testing.T) {
	b := Compute(0, 0, 90)

	assertVec(t, raw.Vec3{Y: 1}, b.XOrient, "XOrient")
	assertVec(t, raw.Vec3{X: -1}, b.YOrient, "YOrient")
	assertVec(t, raw.Vec3{X: 0, Y: -1}, b.XReal, "XReal")
	assertVec(t, raw.Vec3{X: 1}, b.YReal, "YReal")
}

func TestBasesAreOrthonormal(t *testing.T) {
	dot := func(a, b raw.Vec3) float64 { return a.X*b.X + a.Y*b.Y + a.Z*b.Z }

	for _, angles := range [][3]float64{{10, 20, 30}, {-45, 80, 170}, {359, -12.5, 3}} {
		b := Compute(angles[0], angles[1], angles[2])
		for _, set := range [][3]raw.Vec3{
			{b.XOrient, b.YOrient, b.ZOrient},
			{b.XReal, b.YReal, b.ZReal},
		} {
			for i := 0; i < 3; i++ {
				assert.InDelta(t, 1, math.Sqrt(dot(set[i], set[i])), epsilon)
				assert.InDelta(t, 0, dot(set[i], set[(i+1)%3]), epsilon)
			}
		}
	}
}
