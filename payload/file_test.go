package payload

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func repetitiveFixture(t *testing.T) *Payload {
	t.Helper()
	floats := make([]float32, 256*8)
	for i := range floats {
		floats[i] = float32(i % 4)
	}
	p, err := New(-1.0, 8, floats, Metadata{Epoch: 12, TotalLoss: 0.25})
	require.NoError(t, err)
	return p
}

func TestWriteOpenFile(t *testing.T) {
	for _, c := range []Compression{CompressionNone, CompressionLZ4, CompressionZSTD} {
		t.Run(c.String(), func(t *testing.T) {
			p := repetitiveFixture(t)
			path := filepath.Join(t.TempDir(), "batch.hrgn")

			require.NoError(t, WriteFile(path, p, c))

			f, err := OpenFile(path)
			require.NoError(t, err)
			defer f.Close()

			assert.Equal(t, p.Header, f.Payload.Header)
			assert.Equal(t, p.Metadata, f.Payload.Metadata)
			assert.Equal(t, p.Embeddings, f.Payload.Embeddings)
		})
	}
}

func TestOpenFileZeroCopy(t *testing.T) {
	p := repetitiveFixture(t)
	path := filepath.Join(t.TempDir(), "batch.hrgn")
	require.NoError(t, WriteFile(path, p, CompressionNone))

	f, err := OpenFile(path)
	require.NoError(t, err)

	// Embeddings must be usable until Close, then released with the map.
	assert.Equal(t, p.Embeddings, f.Payload.Embeddings)
	require.NoError(t, f.Close())
	require.NoError(t, f.Close()) // idempotent
}

func TestOpenFileInvalid(t *testing.T) {
	dir := t.TempDir()

	t.Run("Missing", func(t *testing.T) {
		_, err := OpenFile(filepath.Join(dir, "nope.hrgn"))
		assert.Error(t, err)
	})

	t.Run("TooShort", func(t *testing.T) {
		path := filepath.Join(dir, "short.hrgn")
		require.NoError(t, os.WriteFile(path, []byte{1, 2, 3}, 0o644))
		_, err := OpenFile(path)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("BadMagic", func(t *testing.T) {
		p := repetitiveFixture(t)
		path := filepath.Join(dir, "badmagic.hrgn")
		require.NoError(t, WriteFile(path, p, CompressionNone))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		raw[0] ^= 0xFF
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		_, err = OpenFile(path)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})

	t.Run("SizeMismatch", func(t *testing.T) {
		p := repetitiveFixture(t)
		path := filepath.Join(dir, "sizelie.hrgn")
		require.NoError(t, WriteFile(path, p, CompressionNone))

		raw, err := os.ReadFile(path)
		require.NoError(t, err)
		binary.LittleEndian.PutUint64(raw[8:16], 12345)
		require.NoError(t, os.WriteFile(path, raw, 0o644))

		_, err = OpenFile(path)
		assert.ErrorIs(t, err, ErrInvalidFormat)
	})
}

func TestOpenFileSchemaVersionSkew(t *testing.T) {
	p := repetitiveFixture(t)
	path := filepath.Join(t.TempDir(), "skew.hrgn")
	require.NoError(t, WriteFile(path, p, CompressionZSTD))

	// Rewrite with a bumped schema version inside the compressed payload.
	encoded, err := Encode(p)
	require.NoError(t, err)
	binary.LittleEndian.PutUint16(encoded[4:6], SchemaVersion+1)
	compressed, err := compress(encoded, CompressionZSTD)
	require.NoError(t, err)

	buf := make([]byte, fileHeaderSize+len(compressed))
	binary.LittleEndian.PutUint32(buf[0:4], FileMagic)
	buf[4] = byte(CompressionZSTD)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(len(encoded)))
	copy(buf[fileHeaderSize:], compressed)
	require.NoError(t, os.WriteFile(path, buf, 0o644))

	f, err := OpenFile(path)
	require.ErrorIs(t, err, ErrSchemaVersion)
	require.NotNil(t, f)
	assert.Equal(t, SchemaVersion+1, f.Payload.Header.Version)
	assert.Equal(t, p.Embeddings, f.Payload.Embeddings)
}

func TestWriteFileIncompressible(t *testing.T) {
	// Near-random float bits defeat LZ4 block compression; the container
	// must fall back to storing raw bytes and still open cleanly.
	floats := make([]float32, 64)
	seed := uint32(2463534242)
	for i := range floats {
		seed ^= seed << 13
		seed ^= seed >> 17
		seed ^= seed << 5
		floats[i] = float32(seed) / float32(1<<32)
	}
	p, err := New(-1.0, 8, floats, Metadata{})
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "rand.hrgn")
	require.NoError(t, WriteFile(path, p, CompressionLZ4))

	f, err := OpenFile(path)
	require.NoError(t, err)
	defer f.Close()
	assert.Equal(t, p.Embeddings, f.Payload.Embeddings)
}
