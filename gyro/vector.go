package gyro

import (
	"math"
	"slices"
)

// Vector is a fixed-dimension ordered sequence of reals.
//
// A Vector plays two semantic roles that are not separate types: a point on
// the Poincaré ball (norm < 1, within the boundary margin) and a tangent
// vector (unconstrained). Vectors are treated as values; operations never
// mutate their inputs.
type Vector []float64

// Zero returns the zero vector of the given dimension.
func Zero(dim int) Vector {
	return make(Vector, dim)
}

// Dim returns the dimension of the vector.
func (v Vector) Dim() int {
	return len(v)
}

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	return slices.Clone(v)
}

// Norm returns the Euclidean (L2) norm of v.
func Norm(v Vector) float64 {
	var sum float64
	for _, x := range v {
		sum += x * x
	}
	return math.Sqrt(sum)
}

// Dot returns the Euclidean inner product of u and v.
// Fails fast with *DimensionMismatchError when dimensions differ.
func Dot(u, v Vector) (float64, error) {
	if len(u) != len(v) {
		return 0, &DimensionMismatchError{Expected: len(u), Actual: len(v)}
	}
	var sum float64
	for i := range u {
		sum += u[i] * v[i]
	}
	return sum, nil
}

// Equal reports whether u and v have the same dimension and are equal
// component-wise within tol. Vector equality is floating-point-approximate,
// never exact.
func Equal(u, v Vector, tol float64) bool {
	if len(u) != len(v) {
		return false
	}
	for i := range u {
		if math.Abs(u[i]-v[i]) > tol {
			return false
		}
	}
	return true
}

// scale returns c*v as a new vector.
func scale(c float64, v Vector) Vector {
	out := make(Vector, len(v))
	for i, x := range v {
		out[i] = c * x
	}
	return out
}

// neg returns -v as a new vector.
func neg(v Vector) Vector {
	return scale(-1, v)
}
