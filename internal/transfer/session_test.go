package transfer

import (
	"crypto/sha256"
	"encoding/binary"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sendResult struct {
	outcome *Outcome
	err     error
}

func writeSourceFile(t *testing.T, name string, payload []byte) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, payload, 0o644))
	return path
}

// roundTrip runs Send and Receive against the two ends of a pipe and
// returns both outcomes.
func roundTrip(t *testing.T, srcPath, destDir string) (*Outcome, *Outcome) {
	t.Helper()
	client, server := net.Pipe()

	sendCh := make(chan sendResult, 1)
	go func() {
		outcome, err := Send(client, srcPath, Options{})
		client.Close()
		sendCh <- sendResult{outcome, err}
	}()

	recvOutcome, err := Receive(server, destDir, Options{})
	require.NoError(t, err)
	sent := <-sendCh
	require.NoError(t, sent.err)
	return sent.outcome, recvOutcome
}

func TestSendReceiveRoundTrip(t *testing.T) {
	payload := randomPayload(t, 3<<20)
	srcPath := writeSourceFile(t, "report.bin", payload)
	destDir := t.TempDir()

	sendOutcome, recvOutcome := roundTrip(t, srcPath, destDir)

	assert.Equal(t, "report.bin", sendOutcome.FileName)
	assert.Equal(t, uint64(len(payload)), sendOutcome.Bytes)
	assert.True(t, sendOutcome.Verified)

	assert.Equal(t, "report.bin", recvOutcome.FileName)
	assert.Equal(t, uint64(len(payload)), recvOutcome.Bytes)
	assert.True(t, recvOutcome.Verified)
	assert.Equal(t, filepath.Join(destDir, "report.bin"), recvOutcome.DestPath)

	got, err := os.ReadFile(recvOutcome.DestPath)
	require.NoError(t, err)
	assert.Equal(t, payload, got)
}

func TestSendReceiveEmptyFile(t *testing.T) {
	srcPath := writeSourceFile(t, "empty.bin", nil)
	destDir := t.TempDir()

	sendOutcome, recvOutcome := roundTrip(t, srcPath, destDir)

	assert.Zero(t, sendOutcome.Bytes)
	assert.Zero(t, recvOutcome.Bytes)
	assert.True(t, recvOutcome.Verified)

	info, err := os.Stat(recvOutcome.DestPath)
	require.NoError(t, err)
	assert.Zero(t, info.Size())
}

func TestReceiveShortTransfer(t *testing.T) {
	destDir := t.TempDir()
	payload := randomPayload(t, 400)
	client, server := net.Pipe()

	go func() {
		client.Write([]byte("short.bin"))
		var size [8]byte
		binary.BigEndian.PutUint64(size[:], 1000)
		client.Write(size[:])
		client.Write(payload) // only 400 of the announced 1000 bytes
		client.Close()
	}()

	_, err := Receive(server, destDir, Options{})
	var short *ShortTransferError
	require.ErrorAs(t, err, &short)
	assert.Equal(t, uint64(400), short.Got)
	assert.Equal(t, uint64(1000), short.Want)

	// The truncated file stays behind.
	info, statErr := os.Stat(filepath.Join(destDir, "short.bin"))
	require.NoError(t, statErr)
	assert.Equal(t, int64(400), info.Size())
}

func TestReceiveCorruptedPayload(t *testing.T) {
	destDir := t.TempDir()
	payload := randomPayload(t, 64<<10)
	corrupted := append([]byte(nil), payload...)
	corrupted[100] ^= 0x01
	digest := sha256.Sum256(payload)

	client, server := net.Pipe()
	go func() {
		client.Write([]byte("data.bin"))
		var size [8]byte
		binary.BigEndian.PutUint64(size[:], uint64(len(corrupted)))
		client.Write(size[:])
		client.Write(corrupted)
		client.Write(digest[:])
		client.Close()
	}()

	// Corruption is a warning, not a failure: the session completes and
	// the corrupted file stays on disk for inspection.
	outcome, err := Receive(server, destDir, Options{})
	require.NoError(t, err)
	assert.False(t, outcome.Verified)
	assert.Equal(t, uint64(len(corrupted)), outcome.Bytes)

	got, err := os.ReadFile(outcome.DestPath)
	require.NoError(t, err)
	assert.Equal(t, corrupted, got)
}

func TestSendReportsProgress(t *testing.T) {
	payload := randomPayload(t, 1<<10)
	srcPath := writeSourceFile(t, "progress.bin", payload)

	client, server := net.Pipe()
	go func() {
		// Drain everything the sender writes.
		buf := make([]byte, 64<<10)
		for {
			if _, err := server.Read(buf); err != nil {
				return
			}
		}
	}()

	progress := &recordingProgress{}
	outcome, err := Send(client, srcPath, Options{Progress: progress})
	client.Close()
	require.NoError(t, err)

	assert.Equal(t, "progress.bin", progress.name)
	assert.Equal(t, uint64(len(payload)), progress.total)
	assert.True(t, progress.done)
	require.NotEmpty(t, progress.updates)
	assert.Equal(t, outcome.Bytes, progress.updates[len(progress.updates)-1])
}

func TestSendMissingFile(t *testing.T) {
	_, err := Send(io.Discard, filepath.Join(t.TempDir(), "nope.bin"), Options{})
	require.Error(t, err)
}
