package documentscmd

import (
	"context"
	"errors"

	command "github.com/goliatone/go-command"

	"github.com/goliatone/go-mdstudio/internal/commands"
	"github.com/goliatone/go-mdstudio/internal/fileio"
	"github.com/goliatone/go-mdstudio/internal/logging"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

const (
	takeOperation   = "documents.take_open_files"
	readOperation   = "documents.read_markdown_file"
	writeOperation  = "documents.write_markdown_file"
	renderOperation = "documents.render_markdown"
)

// ErrRenderFeatureDisabled is returned when preview rendering is switched off.
var ErrRenderFeatureDisabled = errors.New("documents command: render feature disabled")

var (
	_ command.Commander[TakeOpenFilesCommand]     = (*TakeOpenFilesHandler)(nil)
	_ command.Commander[ReadMarkdownFileCommand]  = (*ReadMarkdownFileHandler)(nil)
	_ command.Commander[WriteMarkdownFileCommand] = (*WriteMarkdownFileHandler)(nil)
	_ command.Commander[RenderMarkdownCommand]    = (*RenderMarkdownHandler)(nil)
)

// TakeOpenFilesHandler hands the launch-time paths to the front-end.
type TakeOpenFilesHandler struct {
	inner *commands.Handler[TakeOpenFilesCommand]
}

// NewTakeOpenFilesHandler binds the handler to the open-files queue.
func NewTakeOpenFilesHandler(service interfaces.OpenFilesService, logger interfaces.Logger, opts ...commands.HandlerOption[TakeOpenFilesCommand]) *TakeOpenFilesHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg TakeOpenFilesCommand) error {
		paths, err := service.TakeOpenFiles(ctx)
		if paths == nil {
			paths = []string{}
		}
		*msg.Result = paths
		if err != nil {
			return err
		}
		logging.WithFields(baseLogger, map[string]any{
			"count": len(paths),
		}).Info("documents.command.take_open_files.completed")
		return nil
	}

	handlerOpts := []commands.HandlerOption[TakeOpenFilesCommand]{
		commands.WithLogger[TakeOpenFilesCommand](baseLogger),
		commands.WithOperation[TakeOpenFilesCommand](takeOperation),
		commands.WithTelemetry(commands.DefaultTelemetry[TakeOpenFilesCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &TakeOpenFilesHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[TakeOpenFilesCommand].
func (h *TakeOpenFilesHandler) Execute(ctx context.Context, msg TakeOpenFilesCommand) error {
	return h.inner.Execute(ctx, msg)
}

// ReadMarkdownFileHandler loads a whole document.
type ReadMarkdownFileHandler struct {
	inner *commands.Handler[ReadMarkdownFileCommand]
}

// NewReadMarkdownFileHandler binds the handler to the document service.
func NewReadMarkdownFileHandler(service interfaces.DocumentService, logger interfaces.Logger, opts ...commands.HandlerOption[ReadMarkdownFileCommand]) *ReadMarkdownFileHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg ReadMarkdownFileCommand) error {
		contents, err := service.ReadDocument(ctx, msg.Path)
		if err != nil {
			return err
		}
		*msg.Result = contents
		return nil
	}

	handlerOpts := []commands.HandlerOption[ReadMarkdownFileCommand]{
		commands.WithLogger[ReadMarkdownFileCommand](baseLogger),
		commands.WithOperation[ReadMarkdownFileCommand](readOperation),
		commands.WithMessageFields(func(msg ReadMarkdownFileCommand) map[string]any {
			return map[string]any{"path": fileio.NormalizePath(msg.Path)}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[ReadMarkdownFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &ReadMarkdownFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[ReadMarkdownFileCommand].
func (h *ReadMarkdownFileHandler) Execute(ctx context.Context, msg ReadMarkdownFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// WriteMarkdownFileHandler persists a whole document.
type WriteMarkdownFileHandler struct {
	inner *commands.Handler[WriteMarkdownFileCommand]
}

// NewWriteMarkdownFileHandler binds the handler to the document service.
func NewWriteMarkdownFileHandler(service interfaces.DocumentService, logger interfaces.Logger, opts ...commands.HandlerOption[WriteMarkdownFileCommand]) *WriteMarkdownFileHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg WriteMarkdownFileCommand) error {
		return service.WriteDocument(ctx, msg.Path, msg.Contents)
	}

	handlerOpts := []commands.HandlerOption[WriteMarkdownFileCommand]{
		commands.WithLogger[WriteMarkdownFileCommand](baseLogger),
		commands.WithOperation[WriteMarkdownFileCommand](writeOperation),
		commands.WithMessageFields(func(msg WriteMarkdownFileCommand) map[string]any {
			return map[string]any{
				"path":  fileio.NormalizePath(msg.Path),
				"bytes": len(msg.Contents),
			}
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[WriteMarkdownFileCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &WriteMarkdownFileHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[WriteMarkdownFileCommand].
func (h *WriteMarkdownFileHandler) Execute(ctx context.Context, msg WriteMarkdownFileCommand) error {
	return h.inner.Execute(ctx, msg)
}

// RenderMarkdownHandler produces preview HTML for an editor buffer.
type RenderMarkdownHandler struct {
	inner *commands.Handler[RenderMarkdownCommand]
}

// NewRenderMarkdownHandler binds the handler to the preview renderer.
func NewRenderMarkdownHandler(renderer interfaces.MarkdownRenderer, logger interfaces.Logger, gates FeatureGates, opts ...commands.HandlerOption[RenderMarkdownCommand]) *RenderMarkdownHandler {
	baseLogger := commands.EnsureLogger(logger)

	exec := func(ctx context.Context, msg RenderMarkdownCommand) error {
		if !gates.renderEnabled() {
			return ErrRenderFeatureDisabled
		}
		preview, err := renderer.RenderPreview(ctx, []byte(msg.Markdown), msg.Options)
		if err != nil {
			return err
		}
		*msg.Result = *preview
		return nil
	}

	handlerOpts := []commands.HandlerOption[RenderMarkdownCommand]{
		commands.WithLogger[RenderMarkdownCommand](baseLogger),
		commands.WithOperation[RenderMarkdownCommand](renderOperation),
		commands.WithMessageFields(func(msg RenderMarkdownCommand) map[string]any {
			fields := map[string]any{"bytes": len(msg.Markdown)}
			if len(msg.Options.Extensions) > 0 {
				fields["extensions"] = msg.Options.Extensions
			}
			return fields
		}),
		commands.WithTelemetry(commands.DefaultTelemetry[RenderMarkdownCommand](baseLogger)),
	}
	handlerOpts = append(handlerOpts, opts...)

	return &RenderMarkdownHandler{
		inner: commands.NewHandler(exec, handlerOpts...),
	}
}

// Execute satisfies command.Commander[RenderMarkdownCommand].
func (h *RenderMarkdownHandler) Execute(ctx context.Context, msg RenderMarkdownCommand) error {
	return h.inner.Execute(ctx, msg)
}
