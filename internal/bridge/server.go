package bridge

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/goliatone/go-mdstudio/internal/logging"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

// PingCommand is answered by the server itself with "pong".
const PingCommand = "ping"

// DefaultMaxInFlight bounds concurrently executing requests.
const DefaultMaxInFlight = 4

// Config sizes the server.
type Config struct {
	MaxMessageBytes int
	MaxInFlight     int
}

// Server reads requests from one stream and writes responses to another.
// Requests may complete out of order; responses carry the request id.
type Server struct {
	registry  *Registry
	cfg       Config
	logger    interfaces.Logger
	mapError  ErrorMapper
	newID     func() string
	writeLock sync.Mutex
}

// ServerOption customises a Server.
type ServerOption func(*Server)

// WithLogger sets the server logger.
func WithLogger(logger interfaces.Logger) ServerOption {
	return func(s *Server) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithErrorMapper replaces DefaultErrorMapper.
func WithErrorMapper(mapper ErrorMapper) ServerOption {
	return func(s *Server) {
		if mapper != nil {
			s.mapError = mapper
		}
	}
}

// WithIDGenerator replaces the uuid generator used for requests without an id.
func WithIDGenerator(fn func() string) ServerOption {
	return func(s *Server) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// NewServer builds a server over registry.
func NewServer(registry *Registry, cfg Config, opts ...ServerOption) *Server {
	if registry == nil {
		registry = NewRegistry()
	}
	if cfg.MaxMessageBytes <= 0 {
		cfg.MaxMessageBytes = DefaultMaxMessageBytes
	}
	if cfg.MaxInFlight <= 0 {
		cfg.MaxInFlight = DefaultMaxInFlight
	}
	s := &Server{
		registry: registry,
		cfg:      cfg,
		logger:   logging.NoOp(),
		mapError: DefaultErrorMapper,
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Registry returns the registry the server dispatches to.
func (s *Server) Registry() *Registry {
	return s.registry
}

// Serve handles frames from r until it reaches end of stream, ctx is
// cancelled, or a response cannot be written. Malformed frames and failed
// commands are answered with error responses and do not stop the loop.
// A clean end of stream returns nil after in-flight requests finish.
func (s *Server) Serve(ctx context.Context, r io.Reader, w io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(s.cfg.MaxInFlight)

	s.logger.Info("bridge.serve.started", "max_in_flight", s.cfg.MaxInFlight)

	var readErr error
	for groupCtx.Err() == nil {
		payload, err := ReadFrame(r, s.cfg.MaxMessageBytes)
		if err == io.EOF {
			break
		}
		if err != nil {
			if isRecoverableFrameError(err) {
				s.logger.Warn("bridge.frame.rejected", "error", err)
				if werr := s.write(w, s.failure("", CodeInvalidRequest, err.Error())); werr != nil {
					readErr = werr
					break
				}
				continue
			}
			readErr = err
			break
		}

		req, err := DecodeRequest(payload)
		if err != nil {
			s.logger.Warn("bridge.request.malformed", "error", err)
			if werr := s.write(w, s.failure("", CodeInvalidRequest, err.Error())); werr != nil {
				readErr = werr
				break
			}
			continue
		}
		if req.ID == "" {
			req.ID = s.newID()
		}

		group.Go(func() error {
			return s.write(w, s.Handle(groupCtx, req))
		})
	}

	waitErr := group.Wait()
	err := errors.Join(readErr, waitErr)
	if err == nil && ctx.Err() != nil {
		err = ctx.Err()
	}
	if err != nil {
		s.logger.Error("bridge.serve.stopped", "error", err)
		return err
	}
	s.logger.Info("bridge.serve.completed")
	return nil
}

// Handle runs a single request and always returns a response.
func (s *Server) Handle(ctx context.Context, req *Request) (resp *Response) {
	if req == nil {
		return s.failure("", CodeInvalidRequest, "request is required")
	}

	id := req.ID
	logger := logging.WithFields(s.logger, map[string]any{
		"request_id": id,
		"command":    req.Command,
	})
	started := time.Now()

	defer func() {
		if recovered := recover(); recovered != nil {
			logger.Error("bridge.request.panic", "panic", fmt.Sprint(recovered))
			resp = s.failure(id, CodeInternal, fmt.Sprintf("command panicked: %v", recovered))
		}
	}()

	if req.Command == PingCommand {
		return s.success(id, "pong")
	}

	result, err := s.registry.Invoke(ctx, req.Command, req.Args)
	if err != nil {
		wireErr := s.mapError(err)
		if wireErr == nil {
			wireErr = DefaultErrorMapper(err)
		}
		logger.Warn("bridge.request.failed",
			"duration_ms", time.Since(started).Milliseconds(),
			"code", wireErr.Code,
			"error", wireErr.Message,
		)
		return &Response{ID: id, Error: wireErr}
	}

	encoded, err := json.Marshal(result)
	if err != nil {
		logger.Error("bridge.response.encode_failed", "error", err)
		return s.failure(id, CodeInternal, err.Error())
	}

	logger.Debug("bridge.request.completed", "duration_ms", time.Since(started).Milliseconds())
	return s.success(id, json.RawMessage(encoded))
}

func (s *Server) success(id string, result any) *Response {
	return &Response{ID: id, Success: true, Result: result}
}

func (s *Server) failure(id, code, message string) *Response {
	return &Response{ID: id, Error: &ResponseError{Code: code, Message: message}}
}

func (s *Server) write(w io.Writer, resp *Response) error {
	s.writeLock.Lock()
	defer s.writeLock.Unlock()
	return WriteResponse(w, resp)
}
