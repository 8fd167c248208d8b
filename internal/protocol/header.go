// Package protocol defines the wire format of a transfer: raw file-name
// bytes, an 8-byte big-endian payload size, the payload itself, and a
// fixed-size checksum trailer.
package protocol

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"
)

const (
	// MaxNameBytes is the most name bytes a receiver accepts in the
	// single header read.
	MaxNameBytes = 256

	// DigestSize is the length of the checksum trailer that follows the
	// payload.
	DigestSize = 32

	sizeFieldBytes = 8
)

// Header describes the file that follows it on the stream. Size is
// authoritative: exactly Size payload bytes follow, then the trailer.
type Header struct {
	Name string
	Size uint64
}

// WriteHeader writes the raw name bytes followed by the big-endian size.
// The name carries no length prefix or terminator, so it must fit in the
// single read the receiver is willing to make (MaxNameBytes).
func WriteHeader(w io.Writer, h Header) error {
	if len(h.Name) == 0 {
		return fmt.Errorf("file name is empty")
	}
	if len(h.Name) > MaxNameBytes {
		return fmt.Errorf("file name is %d bytes, limit is %d", len(h.Name), MaxNameBytes)
	}
	if _, err := io.WriteString(w, h.Name); err != nil {
		return fmt.Errorf("write file name: %w", err)
	}
	var size [sizeFieldBytes]byte
	binary.BigEndian.PutUint64(size[:], h.Size)
	if _, err := w.Write(size[:]); err != nil {
		return fmt.Errorf("write file size: %w", err)
	}
	return nil
}

// ReadHeader reads the name with a single opportunistic read of up to
// MaxNameBytes, then exactly sizeFieldBytes for the size. Invalid UTF-8
// in the name is replaced and surrounding whitespace trimmed.
//
// The name has no length on the wire, so one read is all the receiver
// gets: if the stream fragments the name across reads, the remainder is
// misread as the size field; if the peer's size bytes land in the same
// segment, they are swallowed into the name. Both are properties of the
// wire format, kept for compatibility. A length-prefixed variant only
// needs to replace this function and WriteHeader together.
func ReadHeader(r io.Reader) (Header, error) {
	buf := make([]byte, MaxNameBytes)
	n, err := r.Read(buf)
	if n == 0 {
		if err == nil {
			err = io.ErrUnexpectedEOF
		}
		return Header{}, fmt.Errorf("read file name: %w", err)
	}
	name := strings.TrimSpace(strings.ToValidUTF8(string(buf[:n]), "�"))

	var size [sizeFieldBytes]byte
	if _, err := io.ReadFull(r, size[:]); err != nil {
		return Header{}, fmt.Errorf("read file size: %w", err)
	}
	return Header{Name: name, Size: binary.BigEndian.Uint64(size[:])}, nil
}
