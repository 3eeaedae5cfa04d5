// Package fileio reads and writes whole Markdown documents on behalf of the
// front-end. Every call is independent: no caching, no handle reuse, and no
// locking against other calls on the same path.
package fileio

import (
	"context"
	"io/fs"
	"path/filepath"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/goliatone/go-mdstudio/internal/logging"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

const defaultFileMode fs.FileMode = 0o644

// Config controls read limits and write strategy.
type Config struct {
	// AtomicWrites replaces the target through a temp file and rename.
	AtomicWrites bool
	// MaxReadBytes rejects larger files on read. Zero means unlimited.
	MaxReadBytes int64
	// FileMode is used when a write creates a file.
	FileMode fs.FileMode
}

// Service performs full-file reads and writes.
type Service struct {
	fs     FileSystem
	cfg    Config
	logger interfaces.Logger
}

var _ interfaces.DocumentService = (*Service)(nil)

// Option customises a Service.
type Option func(*Service)

// WithFileSystem swaps the filesystem implementation.
func WithFileSystem(filesystem FileSystem) Option {
	return func(s *Service) {
		if filesystem != nil {
			s.fs = filesystem
		}
	}
}

// WithLogger sets the service logger.
func WithLogger(logger interfaces.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewService builds a Service backed by the host filesystem unless overridden.
func NewService(cfg Config, opts ...Option) *Service {
	if cfg.FileMode == 0 {
		cfg.FileMode = defaultFileMode
	}
	s := &Service{
		fs:     OS{},
		cfg:    cfg,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	return s
}

// Read normalises path and returns the whole file decoded as UTF-8 text.
// Failures are reported as *IOError.
func (s *Service) Read(ctx context.Context, path string) (string, error) {
	if err := contextErr(ctx); err != nil {
		return "", err
	}

	target := NormalizePath(path)
	logger := logging.WithFileContext(s.logger, target, "read")

	if s.cfg.MaxReadBytes > 0 {
		info, err := s.fs.Stat(target)
		if err != nil {
			return "", s.fail(logger, "read", newIOError("open", target, err))
		}
		if info.Size() > s.cfg.MaxReadBytes {
			return "", s.fail(logger, "read", newIOError("read", target, ErrFileTooLarge))
		}
	}

	data, err := s.fs.ReadFile(target)
	if err != nil {
		return "", s.fail(logger, "read", newIOError("open", target, err))
	}
	if !utf8.Valid(data) {
		return "", s.fail(logger, "read", newIOError("read", target, ErrInvalidText))
	}

	logger.Debug("fileio.read.completed", "bytes", len(data))
	return string(data), nil
}

// Write normalises path and replaces the file's content with contents,
// creating the file when it does not exist. Failures are reported as *IOError.
func (s *Service) Write(ctx context.Context, path string, contents string) error {
	if err := contextErr(ctx); err != nil {
		return err
	}

	target := NormalizePath(path)
	logger := logging.WithFileContext(s.logger, target, "write")

	var ioErr *IOError
	if s.cfg.AtomicWrites {
		ioErr = s.writeAtomic(target, []byte(contents))
	} else if err := s.fs.WriteFile(target, []byte(contents), s.cfg.FileMode); err != nil {
		ioErr = newIOError("open", target, err)
	}
	if ioErr != nil {
		return s.fail(logger, "write", ioErr)
	}

	logger.Debug("fileio.write.completed", "bytes", len(contents), "atomic", s.cfg.AtomicWrites)
	return nil
}

// ReadDocument satisfies interfaces.DocumentService.
func (s *Service) ReadDocument(ctx context.Context, path string) (string, error) {
	return s.Read(ctx, path)
}

// WriteDocument satisfies interfaces.DocumentService.
func (s *Service) WriteDocument(ctx context.Context, path string, contents string) error {
	return s.Write(ctx, path, contents)
}

// writeAtomic keeps the mode of an existing target.
func (s *Service) writeAtomic(target string, data []byte) *IOError {
	mode := s.cfg.FileMode
	if info, err := s.fs.Stat(target); err == nil {
		if info.IsDir() {
			return newIOError("open", target, fs.ErrInvalid)
		}
		mode = info.Mode().Perm()
	}

	dir, base := filepath.Split(target)
	tmp := filepath.Join(dir, "."+base+"."+uuid.NewString()+".tmp")

	if err := s.fs.WriteFile(tmp, data, mode); err != nil {
		return newIOError("open", target, err)
	}
	if err := s.fs.Rename(tmp, target); err != nil {
		_ = s.fs.Remove(tmp)
		return newIOError("rename", target, err)
	}
	return nil
}

func (s *Service) fail(logger interfaces.Logger, action string, err *IOError) error {
	logger.Warn("fileio."+action+".failed", "op", err.Op, "error", err.Error())
	return err
}

func contextErr(ctx context.Context) error {
	if ctx == nil {
		return nil
	}
	return ctx.Err()
}
