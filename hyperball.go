package hyperball

import (
	"github.com/hupe1980/hyperball/embedding"
	"github.com/hupe1980/hyperball/geo"
	"github.com/hupe1980/hyperball/gyro"
	"github.com/hupe1980/hyperball/payload"
)

type options struct {
	spaceOpts []gyro.Option
	maxRadius float64
	logger    *Logger
}

// Option configures an Engine.
type Option func(*options)

// WithEps overrides the zero guard of the underlying gyrovector space.
func WithEps(eps float64) Option {
	return func(o *options) { o.spaceOpts = append(o.spaceOpts, gyro.WithEps(eps)) }
}

// WithBoundaryEps overrides the boundary margin of the underlying
// gyrovector space.
func WithBoundaryEps(eps float64) Option {
	return func(o *options) { o.spaceOpts = append(o.spaceOpts, gyro.WithBoundaryEps(eps)) }
}

// WithMaxRadius overrides the Lorentz stabilization radius of the projector.
func WithMaxRadius(r float64) Option {
	return func(o *options) { o.maxRadius = r }
}

// WithLogger sets the logger used at the payload/file boundary.
// If nil is passed, NoopLogger() is used.
func WithLogger(l *Logger) Option {
	return func(o *options) {
		if l == nil {
			l = NoopLogger()
		}
		o.logger = l
	}
}

// Engine ties the gyrovector space, the geographic projector and the
// payload codec together behind one handle. It is immutable and safe for
// concurrent use.
type Engine struct {
	space  *gyro.Space
	proj   *geo.Projector
	logger *Logger
}

// New creates an Engine with the given options.
func New(opts ...Option) *Engine {
	o := options{
		maxRadius: geo.MaxPoincareRadius,
		logger:    NoopLogger(),
	}
	for _, opt := range opts {
		opt(&o)
	}
	space := gyro.New(o.spaceOpts...)
	return &Engine{
		space:  space,
		proj:   geo.NewProjector(geo.WithSpace(space), geo.WithMaxRadius(o.maxRadius)),
		logger: o.logger,
	}
}

// Space returns the underlying gyrovector space.
func (e *Engine) Space() *gyro.Space { return e.space }

// Projector returns the underlying geographic projector.
func (e *Engine) Projector() *geo.Projector { return e.proj }

// MobiusAdd computes the gyrogroup addition u⊕v.
func (e *Engine) MobiusAdd(u, v gyro.Vector) (gyro.Vector, error) {
	return e.space.MobiusAdd(u, v)
}

// MobiusScalarMult computes r⊗v.
func (e *Engine) MobiusScalarMult(r float64, v gyro.Vector) gyro.Vector {
	return e.space.MobiusScalarMult(r, v)
}

// Distance returns the hyperbolic distance between u and v.
func (e *Engine) Distance(u, v gyro.Vector) (float64, error) {
	return e.space.Distance(u, v)
}

// ExpMap maps the tangent vector v at p onto the manifold.
func (e *Engine) ExpMap(p, v gyro.Vector) (gyro.Vector, error) {
	return e.space.ExpMap(p, v)
}

// LogMap maps the point q into the tangent space at p.
func (e *Engine) LogMap(p, q gyro.Vector) (gyro.Vector, error) {
	return e.space.LogMap(p, q)
}

// ParallelTransport moves the tangent vector v from the frame at p to the
// frame at q.
func (e *Engine) ParallelTransport(p, q, v gyro.Vector) (gyro.Vector, error) {
	return e.space.ParallelTransport(p, q, v)
}

// ProjectToBall repairs a drifted vector back inside the unit ball.
func (e *Engine) ProjectToBall(v gyro.Vector) gyro.Vector {
	return e.space.ProjectToBall(v)
}

// PoincareToGeographic projects a two-dimensional ball point to geographic
// coordinates.
func (e *Engine) PoincareToGeographic(coords gyro.Vector) (geo.Geographic, error) {
	return e.proj.PoincareToGeographic(coords)
}

// GeographicToPoincare inverts PoincareToGeographic.
func (e *Engine) GeographicToPoincare(g geo.Geographic) gyro.Vector {
	return e.proj.GeographicToPoincare(g)
}

// BatchProject projects a batch of embeddings with per-element diagnostics.
func (e *Engine) BatchProject(embs []embedding.Embedding) ([]geo.Projected, error) {
	return e.proj.Batch(embs)
}

// EncodePayload serializes an embedding batch into the wire format.
func (e *Engine) EncodePayload(p *payload.Payload) ([]byte, error) {
	buf, err := payload.Encode(p)
	if err != nil {
		e.logger.Error("payload encode failed", "error", err)
		return nil, err
	}
	e.logger.Debug("payload encoded",
		"count", p.Header.Count, "dim", p.Header.Dim, "bytes", len(buf))
	return buf, nil
}

// DecodePayload deserializes a wire-format buffer. Version-skewed buffers
// are decoded best-effort and logged; see payload.Decode.
func (e *Engine) DecodePayload(buf []byte) (*payload.Payload, error) {
	p, err := payload.Decode(buf)
	switch {
	case p != nil && err != nil:
		e.logger.Warn("payload decoded with schema version skew",
			"version", p.Header.Version, "supported", payload.SchemaVersion)
	case err != nil:
		e.logger.Error("payload decode failed", "error", err)
	}
	return p, err
}
