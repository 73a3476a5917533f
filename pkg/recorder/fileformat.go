package recorder

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// A recording is a fixed header followed by the brotli compressed body.
//
//	magic    4 bytes "GIRC"
//	version  u8
//	count    u32, number of entries
//	digest   u64, xxhash of the uncompressed body
//
// The body is a sequence of entries, each the frame it was recorded on
// (u32), the length of the event (u8) and the event in raw wire form.
const (
	magic      = "GIRC"
	version    = 1
	headerSize = len(magic) + 1 + 4 + 8
)

var (
	// ErrNotRecording is returned by Parse for data that is not a recording.
	ErrNotRecording = errors.New("recorder: not a recording")

	// ErrVersion is returned by Parse for a recording of an unsupported
	// version.
	ErrVersion = errors.New("recorder: unsupported version")

	// ErrDigestMismatch is returned by Parse when the body does not match
	// the digest of the header.
	ErrDigestMismatch = errors.New("recorder: digest mismatch")

	// ErrCorrupt is returned by Parse for a body that cannot be decoded.
	ErrCorrupt = errors.New("recorder: corrupt body")
)

type header struct {
	count  uint32
	digest uint64
}

func (h header) marshal() []byte {
	b := make([]byte, 0, headerSize)
	b = append(b, magic...)
	b = append(b, version)
	b = binary.LittleEndian.AppendUint32(b, h.count)
	return binary.LittleEndian.AppendUint64(b, h.digest)
}

func parseHeader(b []byte) (header, error) {
	if len(b) < headerSize || string(b[:len(magic)]) != magic {
		return header{}, ErrNotRecording
	}
	b = b[len(magic):]
	if b[0] != version {
		return header{}, fmt.Errorf("%w: %d", ErrVersion, b[0])
	}
	return header{
		count:  binary.LittleEndian.Uint32(b[1:]),
		digest: binary.LittleEndian.Uint64(b[5:]),
	}, nil
}
