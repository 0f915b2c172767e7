package lorentz

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/hupe1980/hyperball/gyro"
)

func TestToLorentz(t *testing.T) {
	tests := []struct {
		name  string
		x     gyro.Vector
		wantT float64
		wantX gyro.Vector
	}{
		{"Origin", gyro.Vector{0, 0}, 1, gyro.Vector{0, 0}},
		{"Axis", gyro.Vector{0.5, 0}, 1.25 / 0.75, gyro.Vector{1 / 0.75, 0}},
		{"Generic", gyro.Vector{0.3, 0.4}, 1.25 / 0.75, gyro.Vector{0.6 / 0.75, 0.8 / 0.75}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ToLorentz(tt.x)
			assert.InDelta(t, tt.wantT, p.T, 1e-12)
			for i := range tt.wantX {
				assert.InDelta(t, tt.wantX[i], p.X[i], 1e-12)
			}
		})
	}
}

func TestHyperboloidConstraint(t *testing.T) {
	// Every lifted point satisfies t² − ‖X‖² = 1.
	for _, x := range []gyro.Vector{
		{0.1, 0.2},
		{0.9, 0},
		{0.55, -0.7},
		{0.1, 0.2, -0.3},
	} {
		p := ToLorentz(x)
		assert.InDelta(t, 1, p.T*p.T-gyro.Norm(p.X)*gyro.Norm(p.X), 1e-9)
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		x    gyro.Vector
	}{
		{"Origin", gyro.Vector{0, 0}},
		{"Small", gyro.Vector{0.01, -0.02}},
		{"Generic", gyro.Vector{0.3, 0.4}},
		{"NearBoundary", gyro.Vector{0.9999, 0}},
		{"VeryNearBoundary", gyro.Vector{0.999999, 0.0000005}},
		{"3D", gyro.Vector{0.2, -0.5, 0.6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			back := FromLorentz(ToLorentz(tt.x))
			assert.True(t, gyro.Equal(tt.x, back, 1e-9),
				"expected %v, got %v", tt.x, back)
		})
	}
}

func TestSphere(t *testing.T) {
	t.Run("MatchesDirectFormula", func(t *testing.T) {
		x := gyro.Vector{0.3, 0.4}
		s := 0.3*0.3 + 0.4*0.4
		sx, sy, sz := Sphere(ToLorentz(x))
		assert.InDelta(t, 2*0.3/(1+s), sx, 1e-12)
		assert.InDelta(t, 2*0.4/(1+s), sy, 1e-12)
		assert.InDelta(t, (s-1)/(1+s), sz, 1e-12)
	})

	t.Run("OnUnitSphere", func(t *testing.T) {
		sx, sy, sz := Sphere(ToLorentz(gyro.Vector{0.99999, 0.000001}))
		assert.InDelta(t, 1, sx*sx+sy*sy+sz*sz, 1e-9)
	})

	t.Run("OriginIsSouthPole", func(t *testing.T) {
		sx, sy, sz := Sphere(ToLorentz(gyro.Vector{0, 0}))
		assert.InDelta(t, 0, sx, 1e-12)
		assert.InDelta(t, 0, sy, 1e-12)
		assert.InDelta(t, -1, sz, 1e-12)
	})

	t.Run("NoOverflowAtBoundary", func(t *testing.T) {
		sx, sy, sz := Sphere(ToLorentz(gyro.Vector{1 - 1e-9, 0}))
		for _, v := range []float64{sx, sy, sz} {
			assert.False(t, math.IsNaN(v))
			assert.False(t, math.IsInf(v, 0))
		}
	})
}
