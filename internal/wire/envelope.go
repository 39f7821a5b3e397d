// Package wire frames and parses the three protocol messages (WorkerRequest,
// FragmentTask, FragmentResult) against the two-length-prefix envelope that
// wraps every message on the stream.
package wire

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Header is the coupled (TotalSize, JSONSize) pair. NewHeader sets
// TotalSize to JSONSize plus the binary payload length, and WriteMessage
// builds every outgoing header through it.
type Header struct {
	TotalSize uint32
	JSONSize  uint32
}

// NewHeader builds a Header from the lengths of the two sections it frames.
func NewHeader(jsonLen, binaryLen int) Header {
	jsonSize := uint32(jsonLen)
	return Header{TotalSize: jsonSize + uint32(binaryLen), JSONSize: jsonSize}
}

// BinaryLen returns the binary section length implied by this header.
func (h Header) BinaryLen() int {
	return int(h.TotalSize - h.JSONSize)
}

// WriteMessage frames jsonBody and binaryBody behind a Header and writes
// them to w as a single envelope: total_size, json_size, json_body,
// binary_body, all big-endian.
func WriteMessage(w io.Writer, jsonBody, binaryBody []byte) error {
	h := NewHeader(len(jsonBody), len(binaryBody))

	var lengths [8]byte
	binary.BigEndian.PutUint32(lengths[0:4], h.TotalSize)
	binary.BigEndian.PutUint32(lengths[4:8], h.JSONSize)

	if _, err := w.Write(lengths[:]); err != nil {
		return fmt.Errorf("wire: writing envelope lengths: %w", err)
	}
	if len(jsonBody) > 0 {
		if _, err := w.Write(jsonBody); err != nil {
			return fmt.Errorf("wire: writing json body: %w", err)
		}
	}
	if len(binaryBody) > 0 {
		if _, err := w.Write(binaryBody); err != nil {
			return fmt.Errorf("wire: writing binary body: %w", err)
		}
	}
	return nil
}

// ReadMessage reads one envelope from r: 4 bytes total_size, 4 bytes
// json_size, then json_size bytes of JSON, then the remaining
// total_size-json_size bytes as the binary section.
func ReadMessage(r io.Reader) (jsonBody, binaryBody []byte, err error) {
	var lengths [8]byte
	if _, err := io.ReadFull(r, lengths[:]); err != nil {
		return nil, nil, fmt.Errorf("wire: reading envelope lengths: %w", err)
	}
	totalSize := binary.BigEndian.Uint32(lengths[0:4])
	jsonSize := binary.BigEndian.Uint32(lengths[4:8])

	if jsonSize > totalSize {
		return nil, nil, fmt.Errorf("wire: json_size %d exceeds total_size %d", jsonSize, totalSize)
	}

	jsonBody = make([]byte, jsonSize)
	if jsonSize > 0 {
		if _, err := io.ReadFull(r, jsonBody); err != nil {
			return nil, nil, fmt.Errorf("wire: reading json body: %w", err)
		}
	}

	binaryLen := totalSize - jsonSize
	binaryBody = make([]byte, binaryLen)
	if binaryLen > 0 {
		if _, err := io.ReadFull(r, binaryBody); err != nil {
			return nil, nil, fmt.Errorf("wire: reading binary body: %w", err)
		}
	}

	return jsonBody, binaryBody, nil
}
