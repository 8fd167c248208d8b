package dispatch

import (
	"context"
	"fmt"
	"net"
	"time"

	"github.com/KIRKR101/Streamline/internal/config"
	"github.com/KIRKR101/Streamline/internal/transfer"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
)

// Server accepts connections and runs one receiving session per
// connection, uncapped: every accepted connection is served
// immediately. A failed session is logged and never disturbs the
// listener or its siblings.
type Server struct {
	cfg         *config.Config
	log         *log.Logger
	newProgress ProgressFactory
}

// NewServer creates a receiving dispatcher.
func NewServer(cfg *config.Config, logger *log.Logger, newProgress ProgressFactory) *Server {
	return &Server{cfg: cfg, log: logger, newProgress: newProgress}
}

// Serve binds address and accepts until ctx is cancelled or the
// listener fails. Received files land in destDir, or the current
// directory when destDir is empty.
func (s *Server) Serve(ctx context.Context, address, destDir string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("bind %s: %w", address, err)
	}
	return s.ServeListener(ctx, listener, destDir)
}

// ServeListener accepts on an existing listener. The listener is closed
// when ctx is cancelled.
func (s *Server) ServeListener(ctx context.Context, listener net.Listener, destDir string) error {
	defer listener.Close()
	s.log.Info("listening", "address", listener.Addr(), "dest", destDir)

	go func() {
		<-ctx.Done()
		listener.Close()
	}()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			return fmt.Errorf("accept: %w", err)
		}
		go s.receiveOne(conn, destDir)
	}
}

func (s *Server) receiveOne(conn net.Conn, destDir string) {
	defer conn.Close()

	logger := s.log.With("session", uuid.NewString()[:8], "remote", conn.RemoteAddr())

	opts := transfer.Options{ChunkSize: s.cfg.Transfer.ChunkSize}
	if s.newProgress != nil {
		opts.Progress = s.newProgress()
	}
	outcome, err := transfer.Receive(conn, destDir, opts)
	if err != nil {
		logger.Error("receive failed", "err", err)
		return
	}

	logger.Info("file received",
		"file", outcome.FileName,
		"path", outcome.DestPath,
		"size", humanize.Bytes(outcome.Bytes),
		"elapsed", outcome.Elapsed.Round(time.Millisecond),
		"throughput", humanize.Bytes(uint64(outcome.Throughput))+"/s",
	)
	if !outcome.Verified {
		logger.Warn("integrity check failed, keeping file for inspection", "path", outcome.DestPath)
	}
}
