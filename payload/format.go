package payload

import "errors"

// Wire format constants.
const (
	// MagicNumber identifies embedding payload buffers (ASCII: "HRGN").
	MagicNumber uint32 = 0x4852474E
	// SchemaVersion is the current schema version.
	SchemaVersion uint16 = 1

	// HeaderSize is the fixed size of the header block in bytes.
	HeaderSize = 32
	// MetadataSize is the fixed size of the trailing metadata block in bytes.
	MetadataSize = 64
)

// Header layout (little-endian):
//
//	offset 0  magic          uint32
//	offset 4  schema version uint16
//	offset 6  curvature      float32
//	offset 10 embedding dim  uint16
//	offset 12 count          uint32
//	offset 16 timestamp      uint64
//	offset 24 reserved       8 bytes (written zero, ignored on read)
//
// The magic number must be validated before any other field is read.
type Header struct {
	Magic     uint32
	Version   uint16
	Curvature float32
	Dim       uint16
	Count     uint32
	// Timestamp is Unix milliseconds at encode time.
	Timestamp uint64
}

// Metadata is the trailing training-metadata block (64 bytes on the wire):
//
//	offset 0  training epoch   uint32
//	offset 4  total loss       float32
//	offset 8  manifold loss    float32
//	offset 12 topological loss float32
//	offset 16 hyperbolic loss  float32
//	offset 20 reserved         44 bytes (written zero, ignored on read)
type Metadata struct {
	Epoch           uint32
	TotalLoss       float32
	ManifoldLoss    float32
	TopologicalLoss float32
	HyperbolicLoss  float32
}

var (
	// ErrInvalidFormat indicates a buffer that fails magic-number or size
	// validation. Fatal for that buffer: the caller must discard it.
	ErrInvalidFormat = errors.New("invalid payload format")

	// ErrSchemaVersion indicates a decodable buffer written by a different
	// schema version. Recoverable: Decode still returns the payload, and
	// callers that tolerate version skew check errors.Is and proceed.
	ErrSchemaVersion = errors.New("unrecognized schema version")
)

// Size returns the exact encoded size in bytes for the given dimension and
// count: HeaderSize + 4·dim·count + MetadataSize.
func Size(dim, count int) int {
	return HeaderSize + 4*dim*count + MetadataSize
}
