package transfer

import (
	"crypto/sha256"
	"hash"
)

// Checksum accumulates a SHA-256 digest over the payload as it moves
// through the pump. Both ends feed it the same bytes in stream order, so
// equal digests mean the payload arrived intact.
type Checksum struct {
	h hash.Hash
}

// NewChecksum creates an empty accumulator.
func NewChecksum() *Checksum {
	return &Checksum{h: sha256.New()}
}

// Update feeds payload bytes in transmission order.
func (c *Checksum) Update(p []byte) {
	c.h.Write(p)
}

// Sum returns the 32-byte digest of everything fed so far.
func (c *Checksum) Sum() []byte {
	return c.h.Sum(nil)
}
