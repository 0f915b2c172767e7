package hyperball

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/hyperball/gyro"
	"github.com/hupe1980/hyperball/payload"
	"github.com/hupe1980/hyperball/testutil"
)

func TestEngineArithmetic(t *testing.T) {
	e := New()

	t.Run("MobiusAddIdentity", func(t *testing.T) {
		got, err := e.MobiusAdd(gyro.Zero(2), gyro.Vector{0.5, 0})
		require.NoError(t, err)
		assert.True(t, gyro.Equal(gyro.Vector{0.5, 0}, got, 1e-12))
	})

	t.Run("DistanceZero", func(t *testing.T) {
		u := gyro.Vector{0.3, 0.4}
		d, err := e.Distance(u, u)
		require.NoError(t, err)
		assert.InDelta(t, 0, d, 1e-12)
	})

	t.Run("ExpLogInverse", func(t *testing.T) {
		p := gyro.Vector{0.2, -0.1}
		q := gyro.Vector{-0.4, 0.3}
		v, err := e.LogMap(p, q)
		require.NoError(t, err)
		back, err := e.ExpMap(p, v)
		require.NoError(t, err)
		assert.True(t, gyro.Equal(q, back, 1e-9))
	})

	t.Run("TransportedNormFinite", func(t *testing.T) {
		got, err := e.ParallelTransport(gyro.Vector{0.1, 0}, gyro.Vector{0, 0.2}, gyro.Vector{0.4, 0.4})
		require.NoError(t, err)
		assert.False(t, math.IsNaN(gyro.Norm(got)))
	})

	t.Run("ProjectToBall", func(t *testing.T) {
		got := e.ProjectToBall(gyro.Vector{5, 0})
		assert.Less(t, gyro.Norm(got), 1.0)
	})
}

func TestEngineProjection(t *testing.T) {
	e := New(WithLogger(NoopLogger()))

	g, err := e.PoincareToGeographic(gyro.Vector{0, 0})
	require.NoError(t, err)
	assert.InDelta(t, -90, g.Lat, 1e-9)

	back := e.GeographicToPoincare(g)
	assert.True(t, gyro.Equal(gyro.Vector{0, 0}, back, 1e-9))
}

func TestEngineBatchProject(t *testing.T) {
	e := New()
	rng := testutil.NewRNG(11)
	embs := rng.Embeddings(50, 3)

	got, err := e.BatchProject(embs)
	require.NoError(t, err)
	require.Len(t, got, 50)
	for i := range got {
		assert.Equal(t, embs[i].ID, got[i].ID)
	}
}

func TestEnginePayloadRoundTrip(t *testing.T) {
	e := New()

	p, err := payload.New(-1.0, 2, []float32{0.1, 0.2, 0.3, 0.4}, payload.Metadata{Epoch: 3})
	require.NoError(t, err)

	buf, err := e.EncodePayload(p)
	require.NoError(t, err)

	got, err := e.DecodePayload(buf)
	require.NoError(t, err)
	assert.Equal(t, p.Header, got.Header)
	assert.Equal(t, p.Embeddings, got.Embeddings)
}

func TestEngineOptions(t *testing.T) {
	e := New(WithBoundaryEps(1e-4), WithMaxRadius(0.99))
	assert.Equal(t, 1e-4, e.Space().Config().BoundaryEps)

	got := e.ProjectToBall(gyro.Vector{1, 1})
	assert.InDelta(t, 1-1e-4, gyro.Norm(got), 1e-12)
}

func TestErrorAliases(t *testing.T) {
	e := New()

	_, err := e.MobiusAdd(gyro.Vector{0.1}, gyro.Vector{0.1, 0.2})
	var dm *DimensionMismatchError
	assert.ErrorAs(t, err, &dm)

	_, err = e.DecodePayload([]byte{1, 2, 3, 4})
	assert.ErrorIs(t, err, ErrInvalidFormat)
}
