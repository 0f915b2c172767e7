// Package lorentz converts between the Poincaré ball and the Lorentz
// (hyperboloid) model of hyperbolic space.
//
// The hyperboloid coordinates are numerically stabler near the unit-ball
// boundary: the direct stereographic formulas suffer catastrophic
// cancellation in 1−‖x‖² as ‖x‖ → 1, while the Lorentz time coordinate
// grows smoothly. The geo package switches to this representation whenever a
// point's norm exceeds its stabilization radius.
//
// Round-trip law: FromLorentz(ToLorentz(x)) == x within floating tolerance
// for every valid ball point x.
package lorentz

import (
	"math"

	"github.com/hupe1980/hyperball/gyro"
)

// Point is a point on the hyperboloid t² − ‖x‖² = 1, t > 0. T is the time
// coordinate; X holds the spatial coordinates.
type Point struct {
	T float64
	X gyro.Vector
}

// ToLorentz lifts a Poincaré ball point onto the hyperboloid:
//
//	t  = (1+‖x‖²)/(1−‖x‖²)
//	xᵢ = 2xᵢ/(1−‖x‖²)
//
// The denominator is kept away from zero for inputs at the boundary; callers
// repair such inputs via gyro.Space.ProjectToBall first when exactness
// matters.
func ToLorentz(x gyro.Vector) Point {
	n := gyro.Norm(x)
	denom := 1 - n*n
	if denom < math.SmallestNonzeroFloat64 {
		denom = math.SmallestNonzeroFloat64
	}
	out := make(gyro.Vector, len(x))
	for i, xi := range x {
		out[i] = 2 * xi / denom
	}
	return Point{
		T: (1 + n*n) / denom,
		X: out,
	}
}

// FromLorentz projects a hyperboloid point back onto the Poincaré ball:
// xᵢ = Xᵢ/(1+t).
func FromLorentz(p Point) gyro.Vector {
	out := make(gyro.Vector, len(p.X))
	for i, xi := range p.X {
		out[i] = xi / (1 + p.T)
	}
	return out
}

// Sphere maps a two-dimensional hyperboloid point to the unit-sphere
// intermediate used by the stereographic projector. The ratios Xᵢ/t and
// −1/t equal the direct inverse-stereographic formulas without forming the
// cancellation-prone 1−‖x‖² term:
//
//	sphereX = X₀/t = 2x/(1+‖x‖²)
//	sphereY = X₁/t = 2y/(1+‖x‖²)
//	sphereZ = −1/t = (‖x‖²−1)/(1+‖x‖²)
func Sphere(p Point) (sx, sy, sz float64) {
	return p.X[0] / p.T, p.X[1] / p.T, -1 / p.T
}
