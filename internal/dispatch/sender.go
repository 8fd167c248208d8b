// Package dispatch fans transfer sessions out over TCP: a sender bounded
// by a concurrency budget and an unbounded accept loop.
package dispatch

import (
	"context"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/KIRKR101/Streamline/internal/config"
	"github.com/KIRKR101/Streamline/internal/transfer"

	"github.com/charmbracelet/log"
	"golang.org/x/sync/semaphore"
)

// Result is the per-file outcome of a SendAll call.
type Result struct {
	Path    string
	Outcome *transfer.Outcome
	Err     error
}

// ProgressFactory builds one Progress observer per session; nil disables
// reporting.
type ProgressFactory func() transfer.Progress

// Sender dispatches sending sessions, at most MaxParallel at a time.
type Sender struct {
	cfg         *config.Config
	log         *log.Logger
	newProgress ProgressFactory
}

// NewSender creates a sending dispatcher.
func NewSender(cfg *config.Config, logger *log.Logger, newProgress ProgressFactory) *Sender {
	return &Sender{cfg: cfg, log: logger, newProgress: newProgress}
}

// SendAll transfers every path to address, each on its own connection.
// Results come back in input order; completion order is not guaranteed.
// One file failing never aborts the others.
func (s *Sender) SendAll(ctx context.Context, address string, paths []string) []Result {
	sem := semaphore.NewWeighted(int64(s.cfg.Transfer.MaxParallel))
	results := make([]Result, len(paths))

	var wg sync.WaitGroup
	for i, path := range paths {
		wg.Add(1)
		go func(i int, path string) {
			defer wg.Done()
			outcome, err := s.sendOne(ctx, sem, address, path)
			results[i] = Result{Path: path, Outcome: outcome, Err: err}
		}(i, path)
	}
	wg.Wait()
	return results
}

// sendOne holds one budget unit for the lifetime of the session,
// acquired before connecting and released on every exit path.
func (s *Sender) sendOne(ctx context.Context, sem *semaphore.Weighted, address, path string) (*transfer.Outcome, error) {
	if err := sem.Acquire(ctx, 1); err != nil {
		return nil, fmt.Errorf("acquire transfer slot: %w", err)
	}
	defer sem.Release(1)

	var dialer net.Dialer
	conn, err := dialer.DialContext(ctx, "tcp", address)
	if err != nil {
		return nil, fmt.Errorf("connect to %s: %w", address, err)
	}
	defer conn.Close()

	opts := transfer.Options{ChunkSize: s.cfg.Transfer.ChunkSize}
	if s.newProgress != nil {
		opts.Progress = s.newProgress()
	}
	outcome, err := transfer.Send(conn, path, opts)
	if err != nil {
		s.log.Error("send failed", "file", path, "address", address, "err", err)
		return nil, err
	}
	s.log.Debug("send complete",
		"file", outcome.FileName,
		"bytes", outcome.Bytes,
		"elapsed", outcome.Elapsed.Round(time.Millisecond),
	)
	return outcome, nil
}
