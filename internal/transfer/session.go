// Package transfer implements one file transfer session end to end:
// header exchange, chunked payload streaming with an incremental
// checksum, and digest trailer comparison.
package transfer

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/KIRKR101/Streamline/internal/protocol"
)

// Outcome summarizes one completed session. It is immutable once
// produced.
type Outcome struct {
	FileName   string
	Bytes      uint64
	Elapsed    time.Duration
	Throughput float64 // bytes per second
	Verified   bool
	DestPath   string // receive side only
}

// ShortTransferError reports a stream that closed before the announced
// payload size arrived.
type ShortTransferError struct {
	Got, Want uint64
}

func (e *ShortTransferError) Error() string {
	return fmt.Sprintf("stream closed after %d of %d payload bytes", e.Got, e.Want)
}

// Options tune a single session.
type Options struct {
	ChunkSize int      // payload chunk size, DefaultChunkSize when zero
	Progress  Progress // nil disables reporting
}

func (o Options) progress() Progress {
	if o.Progress == nil {
		return NopProgress{}
	}
	return o.Progress
}

// Send streams the file at path over conn: header, payload, digest
// trailer. The session never reads from conn.
func Send(conn io.Writer, path string, opts Options) (*Outcome, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	stat, err := file.Stat()
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
	header := protocol.Header{Name: filepath.Base(path), Size: uint64(stat.Size())}
	if err := protocol.WriteHeader(conn, header); err != nil {
		return nil, err
	}

	progress := opts.progress()
	progress.Start(header.Name, header.Size)
	defer progress.Done()

	sum := NewChecksum()
	start := time.Now()
	moved, err := pump(conn, file, header.Size, opts.ChunkSize, sum, progress)
	if err != nil {
		return nil, err
	}
	if moved < header.Size {
		return nil, &ShortTransferError{Got: moved, Want: header.Size}
	}
	if _, err := conn.Write(sum.Sum()); err != nil {
		return nil, fmt.Errorf("write digest trailer: %w", err)
	}

	elapsed := time.Since(start)
	return &Outcome{
		FileName:   header.Name,
		Bytes:      moved,
		Elapsed:    elapsed,
		Throughput: throughput(moved, elapsed),
		Verified:   true,
	}, nil
}

// Receive reads one file from conn into destDir: header, payload, digest
// trailer. A digest mismatch does not fail the session; the file stays
// on disk and Verified carries the comparison result. A session that
// fails mid-stream leaves the truncated destination file behind. The
// session never writes to conn.
func Receive(conn io.Reader, destDir string, opts Options) (*Outcome, error) {
	header, err := protocol.ReadHeader(conn)
	if err != nil {
		return nil, err
	}
	destPath := header.Name
	if destDir != "" {
		destPath = filepath.Join(destDir, header.Name)
	}
	file, err := os.OpenFile(destPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return nil, fmt.Errorf("create %s: %w", destPath, err)
	}
	defer file.Close()

	progress := opts.progress()
	progress.Start(header.Name, header.Size)
	defer progress.Done()

	sum := NewChecksum()
	start := time.Now()
	moved, err := pump(file, conn, header.Size, opts.ChunkSize, sum, progress)
	if err != nil {
		return nil, err
	}
	if moved < header.Size {
		return nil, &ShortTransferError{Got: moved, Want: header.Size}
	}

	trailer := make([]byte, protocol.DigestSize)
	if _, err := io.ReadFull(conn, trailer); err != nil {
		return nil, fmt.Errorf("read digest trailer: %w", err)
	}

	elapsed := time.Since(start)
	return &Outcome{
		FileName:   header.Name,
		Bytes:      moved,
		Elapsed:    elapsed,
		Throughput: throughput(moved, elapsed),
		Verified:   bytes.Equal(sum.Sum(), trailer),
		DestPath:   destPath,
	}, nil
}

func throughput(moved uint64, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(moved) / elapsed.Seconds()
}
