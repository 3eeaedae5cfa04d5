// Package mdstudio is the backend of a desktop Markdown editor. It hands the
// files named at launch to the front-end exactly once, reads and writes whole
// documents, renders previews, and serves those operations over a stdio
// bridge.
package mdstudio

import (
	"context"

	"github.com/goliatone/go-mdstudio/internal/bridge"
	documentscmd "github.com/goliatone/go-mdstudio/internal/commands/documents"
	"github.com/goliatone/go-mdstudio/internal/di"
	"github.com/goliatone/go-mdstudio/internal/fileio"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

// OpenFilesService exports the launch-file queue contract.
type OpenFilesService = interfaces.OpenFilesService

// DocumentService exports the document read/write contract.
type DocumentService = interfaces.DocumentService

// MarkdownRenderer exports the preview renderer contract.
type MarkdownRenderer = interfaces.MarkdownRenderer

// Preview exports the rendered preview DTO.
type Preview = interfaces.Preview

// ParseOptions exports the Markdown parse overrides.
type ParseOptions = interfaces.ParseOptions

// IOError exports the document I/O failure type.
type IOError = fileio.IOError

// CommandHandlers exports the document command handler set.
type CommandHandlers = *documentscmd.HandlerSet

// BridgeServer exports the stdio bridge server.
type BridgeServer = *bridge.Server

// Option customises module wiring.
type Option = di.Option

var (
	// WithLoggerProvider overrides the provider selected from Config.Logging.
	WithLoggerProvider = di.WithLoggerProvider
	// WithLaunchArgs seeds the open-files queue from raw launch arguments.
	WithLaunchArgs = di.WithLaunchArgs
	// WithOpenFiles replaces the launch-file queue.
	WithOpenFiles = di.WithOpenFiles
	// WithFileSystem swaps the filesystem behind document reads and writes.
	WithFileSystem = di.WithFileSystem
	// WithDocumentService replaces the document service.
	WithDocumentService = di.WithDocumentService
	// WithMarkdownParser replaces the parser behind previews.
	WithMarkdownParser = di.WithMarkdownParser
	// WithCommandRegistry registers the handlers with a go-command registry.
	WithCommandRegistry = di.WithCommandRegistry
)

// Module represents the top level studio runtime façade.
type Module struct {
	container *di.Container
}

// New constructs a module using the provided configuration and optional overrides.
func New(cfg Config, opts ...Option) (*Module, error) {
	container, err := di.NewContainer(cfg, opts...)
	if err != nil {
		return nil, err
	}
	return &Module{container: container}, nil
}

// Container exposes the underlying DI container for advanced integrations.
func (m *Module) Container() *di.Container {
	return m.container
}

// OpenFiles returns the launch-file queue.
func (m *Module) OpenFiles() OpenFilesService {
	return m.container.OpenFilesService()
}

// Documents returns the document service.
func (m *Module) Documents() DocumentService {
	return m.container.DocumentService()
}

// Markdown returns the preview renderer.
func (m *Module) Markdown() MarkdownRenderer {
	return m.container.MarkdownRenderer()
}

// Commands returns the document command handlers.
func (m *Module) Commands() CommandHandlers {
	return m.container.CommandHandlers()
}

// Bridge returns the stdio bridge server.
func (m *Module) Bridge() BridgeServer {
	return m.container.BridgeServer()
}

// TakeOpenFiles drains the launch-file queue through the command handler.
// The first call returns the launch paths; later calls return an empty slice.
func (m *Module) TakeOpenFiles(ctx context.Context) ([]string, error) {
	var paths []string
	err := m.Commands().TakeOpenFiles.Execute(ctx, documentscmd.TakeOpenFilesCommand{Result: &paths})
	return paths, err
}

// ReadMarkdownFile returns the whole document at path.
func (m *Module) ReadMarkdownFile(ctx context.Context, path string) (string, error) {
	var contents string
	if err := m.Commands().ReadFile.Execute(ctx, documentscmd.ReadMarkdownFileCommand{Path: path, Result: &contents}); err != nil {
		return "", err
	}
	return contents, nil
}

// WriteMarkdownFile replaces the document at path with contents.
func (m *Module) WriteMarkdownFile(ctx context.Context, path, contents string) error {
	return m.Commands().WriteFile.Execute(ctx, documentscmd.WriteMarkdownFileCommand{Path: path, Contents: contents})
}

// RenderMarkdown renders a buffer for the preview pane.
func (m *Module) RenderMarkdown(ctx context.Context, markdown string, opts ParseOptions) (*Preview, error) {
	var preview Preview
	err := m.Commands().Render.Execute(ctx, documentscmd.RenderMarkdownCommand{
		Markdown: markdown,
		Options:  opts,
		Result:   &preview,
	})
	if err != nil {
		return nil, err
	}
	return &preview, nil
}
