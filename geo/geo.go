// Package geo implements the stereographic projector between Poincaré ball
// coordinates and planar geographic (longitude/latitude) coordinates.
//
// The direct path maps a ball point through a unit-sphere intermediate:
//
//	sphereX = 2x/(1+‖p‖²)
//	sphereY = 2y/(1+‖p‖²)
//	sphereZ = (‖p‖²−1)/(1+‖p‖²)
//	longitude = atan2(sphereY, sphereX), latitude = asin(sphereZ)
//
// both converted to degrees. Near the boundary the 1−‖p‖² terms cancel
// catastrophically, so points with norm above MaxPoincareRadius are routed
// through the Lorentz model instead and produce equivalent results within
// tolerance.
//
// Origin convention: the ball origin projects to longitude 0°, latitude −90°
// (the south pole; sphereZ = −1 under the formula above). This is an
// artifact of the stereographic convention, preserved deliberately —
// existing consumers place the origin there.
package geo

import (
	"math"

	"github.com/hupe1980/hyperball/gyro"
	"github.com/hupe1980/hyperball/lorentz"
)

// MaxPoincareRadius is the norm above which the projector switches to the
// Lorentz-stabilized path.
const MaxPoincareRadius = 1 - 1e-6

// Geographic is a planar coordinate pair in degrees.
type Geographic struct {
	Lon float64
	Lat float64
}

// Projector maps between ball and geographic coordinates. It is immutable
// and safe for concurrent use.
type Projector struct {
	space     *gyro.Space
	maxRadius float64
}

// Option customizes a Projector.
type Option func(*Projector)

// WithSpace sets the gyrovector space used for hyperbolic distances and
// boundary repair. Defaults to gyro.New().
func WithSpace(s *gyro.Space) Option {
	return func(p *Projector) { p.space = s }
}

// WithMaxRadius overrides the Lorentz stabilization radius.
func WithMaxRadius(r float64) Option {
	return func(p *Projector) { p.maxRadius = r }
}

// NewProjector creates a Projector with the given options.
func NewProjector(opts ...Option) *Projector {
	p := &Projector{
		space:     gyro.New(),
		maxRadius: MaxPoincareRadius,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Space returns the underlying gyrovector space.
func (p *Projector) Space() *gyro.Space {
	return p.space
}

// ValidateProjection checks the projection precondition ‖coords‖ < 1 and
// that coords is two-dimensional.
func (p *Projector) ValidateProjection(coords gyro.Vector) error {
	if coords.Dim() != 2 {
		return &gyro.DimensionMismatchError{Expected: 2, Actual: coords.Dim()}
	}
	if gyro.Norm(coords) >= 1 {
		return ErrOutsideBall
	}
	return nil
}

// HyperbolicPoint is the projection-facing intermediate: the unit-sphere
// coordinates (X, Y, Z) of a ball point, plus the Lorentz time coordinate W
// when the stabilized path produced them (W is zero on the direct path).
type HyperbolicPoint struct {
	X, Y, Z, W float64
}

// ToHyperbolic maps a two-dimensional ball point to its sphere
// intermediate, selecting the Lorentz-stabilized path past the
// stabilization radius. Points at or past the boundary are repaired first,
// never rejected.
func (p *Projector) ToHyperbolic(coords gyro.Vector) (HyperbolicPoint, error) {
	if coords.Dim() != 2 {
		return HyperbolicPoint{}, &gyro.DimensionMismatchError{Expected: 2, Actual: coords.Dim()}
	}
	coords = p.space.ProjectToBall(coords)

	var h HyperbolicPoint
	if gyro.Norm(coords) > p.maxRadius {
		l := lorentz.ToLorentz(coords)
		h.X, h.Y, h.Z = lorentz.Sphere(l)
		h.W = l.T
	} else {
		x, y := coords[0], coords[1]
		s := x*x + y*y
		h.X = 2 * x / (1 + s)
		h.Y = 2 * y / (1 + s)
		h.Z = (s - 1) / (1 + s)
	}

	// asin is only defined on [-1,1]; the sphere intermediate can overshoot
	// by a few ulps.
	h.Z = math.Max(-1, math.Min(1, h.Z))
	return h, nil
}

// PoincareToGeographic projects a two-dimensional ball point to geographic
// coordinates. Points past the stabilization radius are routed through the
// Lorentz model and produce an equivalent result within tolerance.
func (p *Projector) PoincareToGeographic(coords gyro.Vector) (Geographic, error) {
	h, err := p.ToHyperbolic(coords)
	if err != nil {
		return Geographic{}, err
	}
	return Geographic{
		Lon: math.Atan2(h.Y, h.X) * 180 / math.Pi,
		Lat: math.Asin(h.Z) * 180 / math.Pi,
	}, nil
}

// GeographicToPoincare inverts PoincareToGeographic: spherical coordinates
// back through the stereographic projection onto the disk. Latitudes that
// invert outside the disk (the northern hemisphere maps beyond the
// boundary) are repaired via ProjectToBall rather than rejected.
func (p *Projector) GeographicToPoincare(g Geographic) gyro.Vector {
	lon := g.Lon * math.Pi / 180
	lat := g.Lat * math.Pi / 180

	sx := math.Cos(lat) * math.Cos(lon)
	sy := math.Cos(lat) * math.Sin(lon)
	sz := math.Sin(lat)

	denom := 1 - sz
	if denom < 1e-12 {
		denom = 1e-12
	}
	return p.space.ProjectToBall(gyro.Vector{sx / denom, sy / denom})
}

// HyperbolicDistance returns the curved-metric distance between two ball
// points at fixed curvature K=−1, via Möbius subtraction and artanh. It is
// independent of any Euclidean projected distance.
func (p *Projector) HyperbolicDistance(u, v gyro.Vector) (float64, error) {
	return p.space.Distance(u, v)
}

// ProjectionQuality measures how well the planar projection preserves
// hyperbolic distance for the pair (u,v): min(dₕ/dₑ, dₑ/dₕ), where dₕ is
// the hyperbolic distance between the originals and dₑ the Euclidean
// distance between their projections.
//
// Diagnostic only. When dₑ is zero the ratio is undefined; the documented
// fallback is 1 if dₕ is also negligible (both degenerate, trivially
// faithful) and 0 otherwise (the projection collapsed distinct points).
func (p *Projector) ProjectionQuality(u, v gyro.Vector, pu, pv Geographic) (float64, error) {
	dh, err := p.space.Distance(u, v)
	if err != nil {
		return 0, err
	}
	dLon := pu.Lon - pv.Lon
	dLat := pu.Lat - pv.Lat
	de := math.Sqrt(dLon*dLon + dLat*dLat)

	if de == 0 {
		if dh < p.space.Config().Eps {
			return 1, nil
		}
		return 0, nil
	}
	if dh == 0 {
		return 0, nil
	}
	return math.Min(dh/de, de/dh), nil
}
