package transfer

import (
	"fmt"
	"io"
)

// DefaultChunkSize bounds a single read while pumping payload bytes.
const DefaultChunkSize = 1 << 20 // 1 MiB

// pump moves up to total bytes from src to dst in chunks of at most
// chunkSize, feeding every byte to sum and reporting the cumulative
// count after each chunk. It stops at total, or early when src reaches
// EOF; callers detect a short transfer by comparing the returned count
// to total. There is no retry: any read or write error aborts.
func pump(dst io.Writer, src io.Reader, total uint64, chunkSize int, sum *Checksum, progress Progress) (uint64, error) {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	buf := make([]byte, chunkSize)
	var moved uint64
	for moved < total {
		chunk := buf
		if remaining := total - moved; remaining < uint64(len(chunk)) {
			chunk = buf[:remaining]
		}
		n, err := src.Read(chunk)
		if n > 0 {
			if _, werr := dst.Write(chunk[:n]); werr != nil {
				return moved, fmt.Errorf("write chunk: %w", werr)
			}
			sum.Update(chunk[:n])
			moved += uint64(n)
			progress.Update(moved, total)
		}
		if err == io.EOF {
			break
		}
		if err != nil {
			return moved, fmt.Errorf("read chunk: %w", err)
		}
	}
	return moved, nil
}
