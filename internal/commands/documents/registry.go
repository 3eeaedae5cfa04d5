package documentscmd

import (
	"errors"
	"time"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdstudio/internal/commands"
	"github.com/goliatone/go-mdstudio/internal/logging"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

// CommandRegistry is the minimal registration contract expected when wiring command handlers.
type CommandRegistry interface {
	RegisterCommand(handler any) error
}

// Services groups the collaborators the document handlers run against.
// Renderer may be nil, in which case no render handler is built.
type Services struct {
	OpenFiles interfaces.OpenFilesService
	Documents interfaces.DocumentService
	Renderer  interfaces.MarkdownRenderer
}

// HandlerSet groups the handlers produced by RegisterDocumentCommands.
type HandlerSet struct {
	TakeOpenFiles *TakeOpenFilesHandler
	ReadFile      *ReadMarkdownFileHandler
	WriteFile     *WriteMarkdownFileHandler
	Render        *RenderMarkdownHandler
}

// Option customises handler wiring during registration.
type Option func(*options)

type options struct {
	timeout    *time.Duration
	takeOpts   []commands.HandlerOption[TakeOpenFilesCommand]
	readOpts   []commands.HandlerOption[ReadMarkdownFileCommand]
	writeOpts  []commands.HandlerOption[WriteMarkdownFileCommand]
	renderOpts []commands.HandlerOption[RenderMarkdownCommand]
}

// WithTimeout applies one execution timeout to every handler. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(cfg *options) {
		cfg.timeout = &timeout
	}
}

// WithTakeHandlerOptions forwards options to the TakeOpenFilesHandler constructor.
func WithTakeHandlerOptions(opts ...commands.HandlerOption[TakeOpenFilesCommand]) Option {
	return func(cfg *options) {
		cfg.takeOpts = append(cfg.takeOpts, opts...)
	}
}

// WithReadHandlerOptions forwards options to the ReadMarkdownFileHandler constructor.
func WithReadHandlerOptions(opts ...commands.HandlerOption[ReadMarkdownFileCommand]) Option {
	return func(cfg *options) {
		cfg.readOpts = append(cfg.readOpts, opts...)
	}
}

// WithWriteHandlerOptions forwards options to the WriteMarkdownFileHandler constructor.
func WithWriteHandlerOptions(opts ...commands.HandlerOption[WriteMarkdownFileCommand]) Option {
	return func(cfg *options) {
		cfg.writeOpts = append(cfg.writeOpts, opts...)
	}
}

// WithRenderHandlerOptions forwards options to the RenderMarkdownHandler constructor.
func WithRenderHandlerOptions(opts ...commands.HandlerOption[RenderMarkdownCommand]) Option {
	return func(cfg *options) {
		cfg.renderOpts = append(cfg.renderOpts, opts...)
	}
}

// RegisterDocumentCommands builds the document handlers and registers them
// with reg when it is non-nil. The HandlerSet is returned so callers can
// bind the handlers to the bridge or the dispatcher.
func RegisterDocumentCommands(reg CommandRegistry, services Services, provider interfaces.LoggerProvider, gates FeatureGates, opts ...Option) (*HandlerSet, error) {
	if services.OpenFiles == nil {
		return nil, errors.New("documents command registration: open files service is nil")
	}
	if services.Documents == nil {
		return nil, errors.New("documents command registration: document service is nil")
	}

	cfg := options{}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	logger := logging.CommandLogger(provider, "documents")

	set := &HandlerSet{
		TakeOpenFiles: NewTakeOpenFilesHandler(services.OpenFiles, logger,
			withTimeout[TakeOpenFilesCommand](cfg.timeout, cfg.takeOpts)...),
		ReadFile: NewReadMarkdownFileHandler(services.Documents, logger,
			withTimeout[ReadMarkdownFileCommand](cfg.timeout, cfg.readOpts)...),
		WriteFile: NewWriteMarkdownFileHandler(services.Documents, logger,
			withTimeout[WriteMarkdownFileCommand](cfg.timeout, cfg.writeOpts)...),
	}
	if services.Renderer != nil {
		set.Render = NewRenderMarkdownHandler(services.Renderer, logger, gates,
			withTimeout[RenderMarkdownCommand](cfg.timeout, cfg.renderOpts)...)
	}

	if reg != nil {
		for _, handler := range set.handlers() {
			if err := reg.RegisterCommand(handler); err != nil {
				return nil, err
			}
		}
	}

	return set, nil
}

// Subscribe registers every handler in the set with the go-command
// dispatcher. Release the returned subscriptions with commands.UnsubscribeAll.
func (s *HandlerSet) Subscribe(maxRetries int) []commands.Subscription {
	if s == nil {
		return nil
	}
	subs := []commands.Subscription{
		commands.Subscribe[TakeOpenFilesCommand](s.TakeOpenFiles, maxRetries),
		commands.Subscribe[ReadMarkdownFileCommand](s.ReadFile, maxRetries),
		commands.Subscribe[WriteMarkdownFileCommand](s.WriteFile, maxRetries),
	}
	if s.Render != nil {
		subs = append(subs, commands.Subscribe[RenderMarkdownCommand](s.Render, maxRetries))
	}
	return subs
}

func (s *HandlerSet) handlers() []any {
	handlers := []any{s.TakeOpenFiles, s.ReadFile, s.WriteFile}
	if s.Render != nil {
		handlers = append(handlers, s.Render)
	}
	return handlers
}

func withTimeout[T command.Message](timeout *time.Duration, opts []commands.HandlerOption[T]) []commands.HandlerOption[T] {
	if timeout == nil {
		return opts
	}
	return append([]commands.HandlerOption[T]{commands.WithTimeout[T](*timeout)}, opts...)
}
