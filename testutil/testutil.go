// Package testutil provides seeded generators for hyperbolic test data:
// points inside the unit ball, embedding batches and payload fixtures.
package testutil

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/hupe1980/hyperball/embedding"
	"github.com/hupe1980/hyperball/gyro"
)

// RNG encapsulates a seeded random number generator. It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), // nolint gosec
		seed: seed,
	}
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// BallVector generates a random point inside the unit ball with norm at
// most maxNorm. Direction is uniform on the sphere (Gaussian trick), radius
// uniform in [0, maxNorm).
func (r *RNG) BallVector(dim int, maxNorm float64) gyro.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ballVectorLocked(dim, maxNorm)
}

func (r *RNG) ballVectorLocked(dim int, maxNorm float64) gyro.Vector {
	v := make(gyro.Vector, dim)
	var norm float64
	for i := range v {
		x := r.rand.NormFloat64()
		v[i] = x
		norm += x * x
	}
	norm = math.Sqrt(norm)
	if norm == 0 {
		norm = 1
	}
	radius := r.rand.Float64() * maxNorm
	for i := range v {
		v[i] = v[i] / norm * radius
	}
	return v
}

// BallVectors generates num random points inside the unit ball.
func (r *RNG) BallVectors(num, dim int, maxNorm float64) []gyro.Vector {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]gyro.Vector, num)
	for i := range out {
		out[i] = r.ballVectorLocked(dim, maxNorm)
	}
	return out
}

// BoundaryVector generates a point at exactly the given norm, arbitrarily
// close to (or past) the unit-ball boundary.
func (r *RNG) BoundaryVector(dim int, norm float64) gyro.Vector {
	v := r.BallVector(dim, 0.5)
	n := gyro.Norm(v)
	if n == 0 {
		v[0] = 1
		n = 1
	}
	out := make(gyro.Vector, dim)
	for i := range v {
		out[i] = v[i] / n * norm
	}
	return out
}

// Embeddings generates a batch of two-dimensional embedding records spread
// over clusterCount clusters.
func (r *RNG) Embeddings(num, clusterCount int) []embedding.Embedding {
	out := make([]embedding.Embedding, num)
	for i := range out {
		out[i] = embedding.Embedding{
			ID:     uint64(i + 1),
			Vector: r.BallVector(2, 0.9),
			Meta: embedding.Metadata{
				Label:      "node",
				ClusterID:  uint32(i % clusterCount),
				Confidence: float32(r.Float64()),
				Timestamp:  time.Unix(1700000000+int64(i), 0),
			},
		}
	}
	return out
}

// Floats generates a flat row-major float32 block of count×dim values in
// (−maxAbs, maxAbs), suitable for payload fixtures.
func (r *RNG) Floats(count, dim int, maxAbs float32) []float32 {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]float32, count*dim)
	for i := range out {
		out[i] = (r.rand.Float32()*2 - 1) * maxAbs
	}
	return out
}
