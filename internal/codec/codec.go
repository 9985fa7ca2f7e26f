// Package codec implements the NECMP framed container: a 5-byte magic, a
// 2-byte [major, minor] version, a 4-byte little-endian uncompressed
// length, and a gzip stream inflating to a msgpack-encoded payload.
package codec

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"

	"github.com/klauspost/compress/gzip"
	"github.com/vmihailenco/msgpack/v5"

	"github.com/newechoes/necmp/internal/indexmodel"
)

// Magic is the 5-byte file signature ("NewEchoes Compressed").
var Magic = [5]byte{'N', 'E', 'C', 'M', 'P'}

const headerLen = 5 + 2 + 4

// Version is a [major, minor] pair written into the frame header.
type Version [2]byte

// Encode serializes obj with msgpack, gzips it, and wraps the result in a
// NECMP frame stamped with version.
func Encode(obj any, version Version) ([]byte, error) {
	payload, err := msgpack.Marshal(obj)
	if err != nil {
		return nil, fmt.Errorf("codec: marshal payload: %w", err)
	}

	var buf bytes.Buffer
	buf.Write(Magic[:])
	buf.Write(version[:])

	var lenBytes [4]byte
	binary.LittleEndian.PutUint32(lenBytes[:], uint32(len(payload)))
	buf.Write(lenBytes[:])

	gw := gzip.NewWriter(&buf)
	if _, err := gw.Write(payload); err != nil {
		_ = gw.Close()
		return nil, fmt.Errorf("codec: gzip payload: %w", err)
	}
	if err := gw.Close(); err != nil {
		return nil, fmt.Errorf("codec: close gzip stream: %w", err)
	}

	return buf.Bytes(), nil
}

// Decode validates the NECMP frame in data, enforces maxMajor, inflates the
// gzip stream, and unmarshals the msgpack payload into out (a pointer).
func Decode(data []byte, maxMajor byte, out any) error {
	if len(data) < headerLen {
		return fmt.Errorf("%w: short buffer (%d bytes)", indexmodel.ErrDecodeFailure, len(data))
	}
	if !bytes.Equal(data[:5], Magic[:]) {
		return fmt.Errorf("%w: magic mismatch", indexmodel.ErrDecodeFailure)
	}

	major := data[5]
	if major > maxMajor {
		return fmt.Errorf("%w: unsupported version %d.%d", indexmodel.ErrDecodeFailure, major, data[6])
	}

	wantLen := binary.LittleEndian.Uint32(data[7:11])

	gr, err := gzip.NewReader(bytes.NewReader(data[headerLen:]))
	if err != nil {
		return fmt.Errorf("%w: open gzip stream: %v", indexmodel.ErrDecodeFailure, err)
	}
	defer gr.Close()

	payload, err := io.ReadAll(gr)
	if err != nil {
		return fmt.Errorf("%w: inflate: %v", indexmodel.ErrDecodeFailure, err)
	}
	if uint32(len(payload)) != wantLen {
		return fmt.Errorf("%w: inflated length mismatch (want %d, got %d)", indexmodel.ErrDecodeFailure, wantLen, len(payload))
	}

	if err := msgpack.Unmarshal(payload, out); err != nil {
		return fmt.Errorf("%w: unmarshal payload: %v", indexmodel.ErrDecodeFailure, err)
	}
	return nil
}
