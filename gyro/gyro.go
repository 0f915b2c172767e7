package gyro

import "math"

// Default numerical tolerances. They are read-only for the life of the
// process; override per Space via options.
const (
	// DefaultEps is the zero guard: norms below it are treated as zero to
	// avoid division by zero in direction normalization.
	DefaultEps = 1e-10

	// DefaultBoundaryEps is the boundary margin: ProjectToBall rescales to
	// norm 1−DefaultBoundaryEps, and artanh arguments are clamped to
	// ±(1−DefaultBoundaryEps).
	DefaultBoundaryEps = 1e-6
)

// Config holds the numerical tolerances of a Space.
type Config struct {
	// Eps is the zero guard for near-zero norms.
	Eps float64
	// BoundaryEps is the margin kept between repaired points and the unit
	// sphere.
	BoundaryEps float64
}

// DefaultConfig returns the default tolerances.
func DefaultConfig() Config {
	return Config{
		Eps:         DefaultEps,
		BoundaryEps: DefaultBoundaryEps,
	}
}

// Option customizes a Space.
type Option func(*Config)

// WithEps overrides the zero guard.
func WithEps(eps float64) Option {
	return func(c *Config) { c.Eps = eps }
}

// WithBoundaryEps overrides the boundary margin.
func WithBoundaryEps(eps float64) Option {
	return func(c *Config) { c.BoundaryEps = eps }
}

// Space is a Poincaré ball with fixed numerical tolerances. The zero-cost
// way to share one across goroutines is by value of the pointer; a Space is
// immutable after construction.
type Space struct {
	cfg Config
}

// New creates a Space with the given options applied over DefaultConfig.
func New(opts ...Option) *Space {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Space{cfg: cfg}
}

// Config returns the tolerances the Space was built with.
func (s *Space) Config() Config {
	return s.cfg
}

// artanh is the clamped inverse hyperbolic tangent. The argument is pulled
// into (−1+BoundaryEps, 1−BoundaryEps) before evaluation: the domain
// legitimately approaches ±1 under floating-point accumulation, and the
// contract is tolerance, not rejection.
func (s *Space) artanh(x float64) float64 {
	limit := 1 - s.cfg.BoundaryEps
	if x > limit {
		x = limit
	} else if x < -limit {
		x = -limit
	}
	return math.Atanh(x)
}

// conformal returns the conformal factor λ_p = 2/(1−‖p‖²) at p.
func (s *Space) conformal(p Vector) float64 {
	n := Norm(p)
	denom := 1 - n*n
	if denom < s.cfg.BoundaryEps {
		denom = s.cfg.BoundaryEps
	}
	return 2 / denom
}

// ProjectToBall repairs drift from repeated operations: a no-op for vectors
// already inside the unit ball, otherwise v is rescaled along its direction
// to norm 1−BoundaryEps. This is the engine's primary self-healing
// mechanism, not an error path.
func (s *Space) ProjectToBall(v Vector) Vector {
	n := Norm(v)
	if n < 1 {
		return v
	}
	return scale((1-s.cfg.BoundaryEps)/n, v)
}

// MobiusAdd computes the gyrogroup addition
//
//	u⊕v = [(1+2⟨u,v⟩+‖v‖²)u + (1−‖u‖²)v] / (1+2⟨u,v⟩+‖u‖²‖v‖²)
//
// It is non-commutative and non-associative in general; only u⊕0 = u and
// (−u)⊕u = 0 hold universally.
func (s *Space) MobiusAdd(u, v Vector) (Vector, error) {
	uv, err := Dot(u, v)
	if err != nil {
		return nil, err
	}
	nu := Norm(u)
	nv := Norm(v)
	u2 := nu * nu
	v2 := nv * nv

	denom := 1 + 2*uv + u2*v2
	if math.Abs(denom) < s.cfg.Eps {
		denom = s.cfg.Eps
	}
	cu := (1 + 2*uv + v2) / denom
	cv := (1 - u2) / denom

	out := make(Vector, len(u))
	for i := range u {
		out[i] = cu*u[i] + cv*v[i]
	}
	return s.ProjectToBall(out), nil
}

// MobiusScalarMult computes r⊗v = tanh(r·artanh(‖v‖))·v/‖v‖.
// Returns the zero vector when ‖v‖ is below the zero guard.
func (s *Space) MobiusScalarMult(r float64, v Vector) Vector {
	n := Norm(v)
	if n < s.cfg.Eps {
		return Zero(len(v))
	}
	t := math.Tanh(r * s.artanh(n))
	return scale(t/n, v)
}

// Distance returns the hyperbolic distance d(u,v) = artanh(‖(−u)⊕v‖).
// It is symmetric, zero on u == v and satisfies the triangle inequality.
func (s *Space) Distance(u, v Vector) (float64, error) {
	diff, err := s.MobiusAdd(neg(u), v)
	if err != nil {
		return 0, err
	}
	return s.artanh(Norm(diff)), nil
}

// ExpMap maps the tangent vector v at point p onto the manifold:
//
//	exp_p(v) = p ⊕ (tanh(λ_p·‖v‖/4)·v/‖v‖)
//
// with λ_p the conformal factor at p. Returns p unchanged when ‖v‖ is below
// the zero guard.
func (s *Space) ExpMap(p, v Vector) (Vector, error) {
	if len(p) != len(v) {
		return nil, &DimensionMismatchError{Expected: len(p), Actual: len(v)}
	}
	n := Norm(v)
	if n < s.cfg.Eps {
		return p.Clone(), nil
	}
	t := math.Tanh(s.conformal(p) * n / 4)
	return s.MobiusAdd(p, scale(t/n, v))
}

// LogMap is the inverse of ExpMap: it maps the point q into the tangent
// space at p. Returns the zero tangent vector when p == q (within the zero
// guard).
func (s *Space) LogMap(p, q Vector) (Vector, error) {
	w, err := s.MobiusAdd(neg(p), q)
	if err != nil {
		return nil, err
	}
	n := Norm(w)
	if n < s.cfg.Eps {
		return Zero(len(p)), nil
	}
	t := 4 / s.conformal(p) * s.artanh(n)
	return scale(t/n, w), nil
}

// Gyration computes gyr[a,b]w = −(a⊕b) ⊕ (a ⊕ (b⊕w)), the gyrogroup
// automorphism correcting for the non-associativity of Möbius addition.
func (s *Space) Gyration(a, b, w Vector) (Vector, error) {
	bw, err := s.MobiusAdd(b, w)
	if err != nil {
		return nil, err
	}
	abw, err := s.MobiusAdd(a, bw)
	if err != nil {
		return nil, err
	}
	ab, err := s.MobiusAdd(a, b)
	if err != nil {
		return nil, err
	}
	return s.MobiusAdd(neg(ab), abw)
}

// ParallelTransport moves the tangent vector v from the frame at p to the
// frame at q along the geodesic:
//
//	P_{p→q}(v) = (λ_p/λ_q)·gyr[q, −p]v
//
// The scale factor makes the transport an isometry of the tangent metric:
// the metric norm λ·‖v‖ is preserved. Used by consumers that re-center
// computations (mean/variance-style aggregation).
func (s *Space) ParallelTransport(p, q, v Vector) (Vector, error) {
	if len(p) != len(v) {
		return nil, &DimensionMismatchError{Expected: len(p), Actual: len(v)}
	}
	n := Norm(v)
	if n < s.cfg.Eps {
		if len(p) != len(q) {
			return nil, &DimensionMismatchError{Expected: len(p), Actual: len(q)}
		}
		return Zero(len(v)), nil
	}

	// Gyration is a linear map, but its Möbius-composition form needs its
	// argument inside the ball. Evaluate on a scaled copy and undo after.
	c := 1.0
	if n >= 0.5 {
		c = 0.25 / n
	}
	g, err := s.Gyration(q, neg(p), scale(c, v))
	if err != nil {
		return nil, err
	}
	return scale(s.conformal(p)/s.conformal(q)/c, g), nil
}
