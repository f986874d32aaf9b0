// Package ipc serves the gateway over stdio. Frames are newline-delimited
// JSON-RPC 2.0 following the Model Context Protocol method set: the host
// process writes requests to stdin and reads responses from stdout, which
// is why nothing else in the process may print to stdout.
package ipc

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"

	"github.com/kylelegare/cu-MCP/internal/config"
)

type Server struct {
	cfg     config.ServerConfig
	log     *slog.Logger
	handler *Handler
	in      io.Reader
	out     io.Writer
	writeMu sync.Mutex
	wg      sync.WaitGroup
	pool    *ants.Pool // bounds concurrent request handlers (nil = unbounded)
}

func NewServer(cfg config.ServerConfig, h *Handler, log *slog.Logger, in io.Reader, out io.Writer) *Server {
	return &Server{
		cfg:     cfg,
		log:     log,
		handler: h,
		in:      in,
		out:     out,
	}
}

// Run reads frames until stdin closes or ctx is canceled, dispatching
// each to the handler. In-flight requests are drained before return.
func (s *Server) Run(ctx context.Context) error {
	if s.cfg.MaxConcurrent > 0 {
		pool, err := ants.NewPool(s.cfg.MaxConcurrent, ants.WithPanicHandler(func(v any) {
			s.log.Error("request handler panic", "panic", v)
		}))
		if err != nil {
			return err
		}
		s.pool = pool
		defer func() {
			_ = s.pool.ReleaseTimeout(3 * time.Second)
			s.pool = nil
		}()
	}

	lines := make(chan []byte)
	readErr := make(chan error, 1)
	go s.readLoop(lines, readErr)

	s.log.Info("gateway listening on stdio", "max_concurrent", s.cfg.MaxConcurrent)

	for {
		select {
		case <-ctx.Done():
			s.wg.Wait()
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				s.wg.Wait()
				if err := <-readErr; err != nil {
					return err
				}
				s.log.Info("stdin closed, shutting down")
				return nil
			}
			s.dispatch(ctx, line)
		}
	}
}

// readLoop feeds trimmed non-empty lines to the dispatcher. It owns the
// scanner buffer, so every delivered line is a copy.
func (s *Server) readLoop(lines chan<- []byte, readErr chan<- error) {
	scanner := bufio.NewScanner(s.in)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxFrameSize)
	for scanner.Scan() {
		raw := bytes.TrimSpace(scanner.Bytes())
		if len(raw) == 0 {
			continue
		}
		line := make([]byte, len(raw))
		copy(line, raw)
		lines <- line
	}
	readErr <- scanner.Err()
	close(lines)
}

func (s *Server) dispatch(ctx context.Context, line []byte) {
	var req Request
	if err := json.Unmarshal(line, &req); err != nil {
		s.log.Warn("undecodable frame", "error", err)
		s.writeResponse(errorResponse(nil, codeParseError, "parse error"))
		return
	}

	rctx := WithRequestID(ctx, uuid.NewString())

	s.wg.Add(1)
	task := func() {
		defer s.wg.Done()
		defer func() {
			if v := recover(); v != nil {
				s.log.Error("request handler panic", "panic", v, "method", req.Method)
				if !req.Notification() {
					s.writeResponse(errorResponse(req.ID, codeInternalError, "internal error"))
				}
			}
		}()
		if resp := s.handler.Handle(rctx, &req); resp != nil {
			s.writeResponse(resp)
		}
	}

	if s.pool != nil {
		if err := s.pool.Submit(task); err != nil {
			s.log.Error("failed to submit request handler", "error", err)
			task()
		}
		return
	}
	go task()
}

// writeResponse serializes one frame. The mutex keeps concurrent handler
// completions from interleaving bytes on the shared stream.
func (s *Server) writeResponse(resp *Response) {
	data, err := json.Marshal(resp)
	if err != nil {
		s.log.Error("failed to encode response", "error", err)
		return
	}
	data = append(data, '\n')

	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if _, err := s.out.Write(data); err != nil {
		s.log.Error("failed to write response", "error", err)
	}
}
