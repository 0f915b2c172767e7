package payload

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/hupe1980/hyperball/internal/mmap"
)

// File container constants. The container wraps an encoded payload with a
// compression marker so files are self-describing.
const (
	// FileMagic identifies payload container files (ASCII: "HRGF").
	FileMagic uint32 = 0x48524746
	// fileHeaderSize is the container header: magic u32, compression u8,
	// 3 reserved bytes, uncompressed size u64. The 16-byte size keeps the
	// payload region 4-byte aligned inside a page-aligned mapping.
	fileHeaderSize = 16
)

// WriteFile encodes the payload and writes it to path inside a container,
// optionally compressed. An LZ4-incompressible payload is stored raw with
// the compression marker reset to none.
func WriteFile(path string, p *Payload, c Compression) error {
	encoded, err := Encode(p)
	if err != nil {
		return err
	}

	data, err := compress(encoded, c)
	if err != nil {
		return err
	}
	if data == nil {
		// incompressible
		data, c = encoded, CompressionNone
	}

	buf := make([]byte, fileHeaderSize+len(data))
	binary.LittleEndian.PutUint32(buf[0:4], FileMagic)
	buf[4] = byte(c)
	binary.LittleEndian.PutUint64(buf[8:16], uint64(len(encoded)))
	copy(buf[fileHeaderSize:], data)

	return os.WriteFile(path, buf, 0o644)
}

// File is a payload opened from disk. For uncompressed containers the
// payload's embeddings view aliases the memory mapping, so the File must be
// kept open (and Close called) for as long as the payload is in use.
// Compressed containers are decompressed into memory and carry no mapping.
type File struct {
	Payload *Payload
	m       *mmap.File
}

// Close releases the mapping, if any. The payload must not be used after
// Close when it was opened from an uncompressed container.
func (f *File) Close() error {
	if f == nil || f.m == nil {
		return nil
	}
	m := f.m
	f.m = nil
	return m.Close()
}

// OpenFile opens a payload container written by WriteFile. Uncompressed
// containers decode zero-copy over a read-only memory mapping.
//
// A version-skewed payload is returned together with an error wrapping
// ErrSchemaVersion, mirroring Decode.
func OpenFile(path string) (*File, error) {
	m, err := mmap.Open(path)
	if err != nil {
		return nil, err
	}

	buf := m.Data
	if len(buf) < fileHeaderSize {
		m.Close()
		return nil, fmt.Errorf("%w: container too short (%d bytes)", ErrInvalidFormat, len(buf))
	}
	if magic := binary.LittleEndian.Uint32(buf[0:4]); magic != FileMagic {
		m.Close()
		return nil, fmt.Errorf("%w: bad container magic 0x%08x", ErrInvalidFormat, magic)
	}
	c := Compression(buf[4])
	size := binary.LittleEndian.Uint64(buf[8:16])

	if c == CompressionNone {
		if uint64(len(buf)-fileHeaderSize) != size {
			m.Close()
			return nil, fmt.Errorf("%w: container declares %d payload bytes, has %d",
				ErrInvalidFormat, size, len(buf)-fileHeaderSize)
		}
		p, err := Decode(buf[fileHeaderSize:])
		if p == nil {
			m.Close()
			return nil, err
		}
		return &File{Payload: p, m: m}, err
	}

	defer m.Close()
	data, err := decompress(buf[fileHeaderSize:], c, int(size))
	if err != nil {
		return nil, err
	}
	p, err := Decode(data)
	if p == nil {
		return nil, err
	}
	return &File{Payload: p}, err
}
