package testutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hyperball/gyro"
)

func TestBallVectors(t *testing.T) {
	rng := NewRNG(42)
	vectors := rng.BallVectors(100, 3, 0.9)
	require.Len(t, vectors, 100)

	for _, v := range vectors {
		assert.Equal(t, 3, v.Dim())
		assert.Less(t, gyro.Norm(v), 0.9)
	}
}

func TestBoundaryVector(t *testing.T) {
	rng := NewRNG(42)
	v := rng.BoundaryVector(2, 0.999999)
	assert.InDelta(t, 0.999999, gyro.Norm(v), 1e-9)

	past := rng.BoundaryVector(2, 1.5)
	assert.InDelta(t, 1.5, gyro.Norm(past), 1e-9)
}

func TestDeterminism(t *testing.T) {
	a := NewRNG(7).BallVectors(10, 2, 0.5)
	b := NewRNG(7).BallVectors(10, 2, 0.5)
	assert.Equal(t, a, b)
	assert.Equal(t, int64(7), NewRNG(7).Seed())
}

func TestEmbeddings(t *testing.T) {
	rng := NewRNG(1)
	embs := rng.Embeddings(20, 4)
	require.Len(t, embs, 20)

	for i, e := range embs {
		assert.Equal(t, uint64(i+1), e.ID)
		assert.Less(t, e.Meta.ClusterID, uint32(4))
		assert.Equal(t, 2, e.Vector.Dim())
		assert.Less(t, gyro.Norm(e.Vector), 0.9)
	}
}

func TestFloats(t *testing.T) {
	rng := NewRNG(3)
	floats := rng.Floats(10, 4, 0.5)
	require.Len(t, floats, 40)
	for _, f := range floats {
		assert.Less(t, f, float32(0.5))
		assert.Greater(t, f, float32(-0.5))
	}
}
