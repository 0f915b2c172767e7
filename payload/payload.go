// Package payload implements the binary wire format for distributing
// batches of hyperbolic embeddings: a fixed 32-byte header, a flat
// row-major float32 block, and a fixed 64-byte training-metadata block.
//
// The format is designed for zero-copy hand-off between processes and
// threads: Decode constructs the embeddings view directly over the input
// buffer (when alignment permits), so large batches transfer without
// duplication. Buffers are never mutated after construction, which makes
// sharing a decoded view across goroutines safe.
//
// Byte order is little-endian. The zero-copy fast path additionally assumes
// a little-endian host and reads floats through their in-memory
// representation; misaligned or exotic buffers fall back to a copying
// decode with identical results.
package payload

import (
	"encoding/binary"
	"fmt"
	"math"
	"time"
	"unsafe"

	"github.com/hupe1980/hyperball/gyro"
)

// Payload is a decoded (or to-be-encoded) embedding batch.
//
// After Decode, Embeddings may alias the decode buffer; treat it as
// read-only and keep the buffer alive for as long as the view is used.
type Payload struct {
	Header     Header
	Embeddings []float32
	Metadata   Metadata
}

// New builds a payload over the given flat row-major embeddings block.
// len(embeddings) must equal dim*count.
func New(curvature float32, dim int, embeddings []float32, meta Metadata) (*Payload, error) {
	if dim <= 0 || dim > math.MaxUint16 {
		return nil, fmt.Errorf("%w: embedding dimension %d out of range", ErrInvalidFormat, dim)
	}
	if len(embeddings)%dim != 0 {
		return nil, fmt.Errorf("%w: %d floats is not a multiple of dimension %d", ErrInvalidFormat, len(embeddings), dim)
	}
	count := len(embeddings) / dim
	if uint64(count) > math.MaxUint32 {
		return nil, fmt.Errorf("%w: embedding count %d out of range", ErrInvalidFormat, count)
	}
	return &Payload{
		Header: Header{
			Magic:     MagicNumber,
			Version:   SchemaVersion,
			Curvature: curvature,
			Dim:       uint16(dim),
			Count:     uint32(count),
			Timestamp: uint64(time.Now().UnixMilli()),
		},
		Embeddings: embeddings,
		Metadata:   meta,
	}, nil
}

// Row returns the i-th embedding row as a view into the embeddings block.
func (p *Payload) Row(i int) []float32 {
	dim := int(p.Header.Dim)
	return p.Embeddings[i*dim : (i+1)*dim]
}

// Vector returns the i-th embedding row widened to a gyro.Vector. The
// returned vector is an independent copy.
func (p *Payload) Vector(i int) gyro.Vector {
	row := p.Row(i)
	out := make(gyro.Vector, len(row))
	for j, x := range row {
		out[j] = float64(x)
	}
	return out
}

// Size returns the exact encoded size of the payload in bytes.
func (p *Payload) Size() int {
	return Size(int(p.Header.Dim), int(p.Header.Count))
}

// Encode serializes the payload: header, flat float block, metadata. The
// total size is exactly HeaderSize + 4·dim·count + MetadataSize.
func Encode(p *Payload) ([]byte, error) {
	dim := int(p.Header.Dim)
	count := int(p.Header.Count)
	if len(p.Embeddings) != dim*count {
		return nil, fmt.Errorf("%w: header declares %d×%d floats, got %d",
			ErrInvalidFormat, count, dim, len(p.Embeddings))
	}

	buf := make([]byte, p.Size())
	putHeader(buf, p.Header)

	// Embeddings block. The backing array of a []float32 is always 4-byte
	// aligned, so the unsafe view is valid; on a little-endian host the raw
	// copy equals the per-element LittleEndian encoding.
	if len(p.Embeddings) > 0 {
		src := unsafe.Slice((*byte)(unsafe.Pointer(&p.Embeddings[0])), len(p.Embeddings)*4)
		copy(buf[HeaderSize:], src)
	}

	putMetadata(buf[HeaderSize+dim*count*4:], p.Metadata)
	return buf, nil
}

// Decode deserializes a payload buffer. The magic number is validated
// before any other field is read; truncated or mis-sized buffers fail with
// ErrInvalidFormat and nothing past the declared bounds is ever read.
//
// The embeddings view aliases buf when the float region is 4-byte aligned
// (the common case); otherwise the floats are copied out. Either way the
// caller must not mutate buf while the payload is in use.
//
// A buffer with an unrecognized schema version is not rejected: Decode
// returns the payload populated from the known header fields together with
// an error wrapping ErrSchemaVersion. Callers that tolerate version skew
// check errors.Is(err, ErrSchemaVersion) and proceed; every other non-nil
// error comes with a nil payload.
func Decode(buf []byte) (*Payload, error) {
	if len(buf) < 4 {
		return nil, fmt.Errorf("%w: buffer too short for magic number (%d bytes)", ErrInvalidFormat, len(buf))
	}
	magic := binary.LittleEndian.Uint32(buf[0:4])
	if magic != MagicNumber {
		return nil, fmt.Errorf("%w: bad magic number 0x%08x", ErrInvalidFormat, magic)
	}
	if len(buf) < HeaderSize {
		return nil, fmt.Errorf("%w: buffer too short for header (%d bytes)", ErrInvalidFormat, len(buf))
	}

	h := getHeader(buf)
	dim := int(h.Dim)
	count := int(h.Count)
	want := Size(dim, count)
	if len(buf) != want {
		return nil, fmt.Errorf("%w: buffer size %d does not match declared %d×%d payload (want %d)",
			ErrInvalidFormat, len(buf), count, dim, want)
	}

	p := &Payload{
		Header:     h,
		Embeddings: floatView(buf[HeaderSize : HeaderSize+dim*count*4]),
		Metadata:   getMetadata(buf[HeaderSize+dim*count*4:]),
	}

	if h.Version != SchemaVersion {
		return p, fmt.Errorf("%w: got %d, built for %d", ErrSchemaVersion, h.Version, SchemaVersion)
	}
	return p, nil
}

// floatView reinterprets raw bytes as a float32 slice without copying when
// the region is 4-byte aligned, falling back to a copy otherwise.
func floatView(raw []byte) []float32 {
	if len(raw) == 0 {
		return nil
	}
	if uintptr(unsafe.Pointer(&raw[0]))%4 == 0 {
		return unsafe.Slice((*float32)(unsafe.Pointer(&raw[0])), len(raw)/4)
	}
	out := make([]float32, len(raw)/4)
	for i := range out {
		out[i] = math.Float32frombits(binary.LittleEndian.Uint32(raw[i*4:]))
	}
	return out
}

func putHeader(buf []byte, h Header) {
	binary.LittleEndian.PutUint32(buf[0:4], h.Magic)
	binary.LittleEndian.PutUint16(buf[4:6], h.Version)
	binary.LittleEndian.PutUint32(buf[6:10], math.Float32bits(h.Curvature))
	binary.LittleEndian.PutUint16(buf[10:12], h.Dim)
	binary.LittleEndian.PutUint32(buf[12:16], h.Count)
	binary.LittleEndian.PutUint64(buf[16:24], h.Timestamp)
	// buf[24:32] reserved, already zero
}

func getHeader(buf []byte) Header {
	return Header{
		Magic:     binary.LittleEndian.Uint32(buf[0:4]),
		Version:   binary.LittleEndian.Uint16(buf[4:6]),
		Curvature: math.Float32frombits(binary.LittleEndian.Uint32(buf[6:10])),
		Dim:       binary.LittleEndian.Uint16(buf[10:12]),
		Count:     binary.LittleEndian.Uint32(buf[12:16]),
		Timestamp: binary.LittleEndian.Uint64(buf[16:24]),
	}
}

func putMetadata(buf []byte, m Metadata) {
	binary.LittleEndian.PutUint32(buf[0:4], m.Epoch)
	binary.LittleEndian.PutUint32(buf[4:8], math.Float32bits(m.TotalLoss))
	binary.LittleEndian.PutUint32(buf[8:12], math.Float32bits(m.ManifoldLoss))
	binary.LittleEndian.PutUint32(buf[12:16], math.Float32bits(m.TopologicalLoss))
	binary.LittleEndian.PutUint32(buf[16:20], math.Float32bits(m.HyperbolicLoss))
	// buf[20:64] reserved, already zero
}

func getMetadata(buf []byte) Metadata {
	return Metadata{
		Epoch:           binary.LittleEndian.Uint32(buf[0:4]),
		TotalLoss:       math.Float32frombits(binary.LittleEndian.Uint32(buf[4:8])),
		ManifoldLoss:    math.Float32frombits(binary.LittleEndian.Uint32(buf[8:12])),
		TopologicalLoss: math.Float32frombits(binary.LittleEndian.Uint32(buf[12:16])),
		HyperbolicLoss:  math.Float32frombits(binary.LittleEndian.Uint32(buf[16:20])),
	}
}
