package di

import (
	"fmt"
	"strings"

	"github.com/goliatone/go-mdstudio/internal/bridge"
	documentscmd "github.com/goliatone/go-mdstudio/internal/commands/documents"
	"github.com/goliatone/go-mdstudio/internal/fileio"
	"github.com/goliatone/go-mdstudio/internal/logging"
	"github.com/goliatone/go-mdstudio/internal/logging/console"
	"github.com/goliatone/go-mdstudio/internal/logging/gologger"
	"github.com/goliatone/go-mdstudio/internal/markdown"
	"github.com/goliatone/go-mdstudio/internal/openfiles"
	"github.com/goliatone/go-mdstudio/internal/runtimeconfig"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

// Container wires module dependencies. Services supplied through options win
// over the defaults built from Config.
type Container struct {
	Config runtimeconfig.Config

	loggerProvider interfaces.LoggerProvider
	launchArgs     []string
	filesystem     fileio.FileSystem

	openFiles interfaces.OpenFilesService
	documents interfaces.DocumentService
	parser    interfaces.MarkdownParser
	renderer  interfaces.MarkdownRenderer

	commandRegistry documentscmd.CommandRegistry
	handlers        *documentscmd.HandlerSet

	bridgeRegistry *bridge.Registry
	bridgeServer   *bridge.Server
}

// Option mutates the container before it is finalised.
type Option func(*Container)

// WithLoggerProvider overrides the provider selected from Config.Logging.
func WithLoggerProvider(provider interfaces.LoggerProvider) Option {
	return func(c *Container) {
		if provider != nil {
			c.loggerProvider = provider
		}
	}
}

// WithLaunchArgs seeds the open-files queue from raw launch arguments. The
// arguments are filtered with Config.Files.Extensions.
func WithLaunchArgs(args []string) Option {
	return func(c *Container) {
		c.launchArgs = append([]string(nil), args...)
	}
}

// WithOpenFiles replaces the launch-file queue. WithLaunchArgs is ignored
// when this is set.
func WithOpenFiles(svc interfaces.OpenFilesService) Option {
	return func(c *Container) {
		if svc != nil {
			c.openFiles = svc
		}
	}
}

// WithFileSystem swaps the filesystem used by the default document service.
func WithFileSystem(filesystem fileio.FileSystem) Option {
	return func(c *Container) {
		if filesystem != nil {
			c.filesystem = filesystem
		}
	}
}

// WithDocumentService replaces the document service entirely.
func WithDocumentService(svc interfaces.DocumentService) Option {
	return func(c *Container) {
		if svc != nil {
			c.documents = svc
		}
	}
}

// WithMarkdownParser replaces the goldmark parser behind the preview renderer.
func WithMarkdownParser(parser interfaces.MarkdownParser) Option {
	return func(c *Container) {
		if parser != nil {
			c.parser = parser
		}
	}
}

// WithCommandRegistry registers the document handlers with an external
// go-command registry.
func WithCommandRegistry(reg documentscmd.CommandRegistry) Option {
	return func(c *Container) {
		if reg != nil {
			c.commandRegistry = reg
		}
	}
}

// NewContainer validates cfg, applies opts and builds every service.
func NewContainer(cfg runtimeconfig.Config, opts ...Option) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Container{Config: cfg}
	for _, opt := range opts {
		if opt != nil {
			opt(c)
		}
	}

	if err := c.configureLogger(); err != nil {
		return nil, err
	}
	c.configureServices()
	if err := c.configureCommands(); err != nil {
		return nil, err
	}
	if err := c.configureBridge(); err != nil {
		return nil, err
	}

	logging.ModuleLogger(c.loggerProvider, "mdstudio").Debug("container.configured",
		"logging_provider", strings.ToLower(strings.TrimSpace(cfg.Logging.Provider)),
		"render_enabled", cfg.Markdown.Enabled,
		"atomic_writes", cfg.Files.AtomicWrites,
	)

	return c, nil
}

func (c *Container) configureLogger() error {
	if c.loggerProvider != nil {
		return nil
	}

	logCfg := c.Config.Logging
	switch strings.ToLower(strings.TrimSpace(logCfg.Provider)) {
	case "gologger":
		provider, err := gologger.NewProvider(gologger.Config{
			Level:     logCfg.Level,
			Format:    logCfg.Format,
			AddSource: logCfg.AddSource,
			Focus:     logCfg.Focus,
		})
		if err != nil {
			return fmt.Errorf("di: configure gologger provider: %w", err)
		}
		c.loggerProvider = provider
	default:
		opts := console.Options{}
		if level, ok := console.ParseLevel(logCfg.Level); ok {
			opts.MinLevel = &level
		}
		c.loggerProvider = console.NewProvider(opts)
	}
	return nil
}

func (c *Container) configureServices() {
	if c.openFiles == nil {
		c.openFiles = openfiles.NewQueueFromArgs(
			c.launchArgs,
			c.Config.Files.NormalizedExtensions(),
			openfiles.WithLogger(logging.OpenFilesLogger(c.loggerProvider)),
		)
	}

	if c.documents == nil {
		c.documents = fileio.NewService(
			fileio.Config{
				AtomicWrites: c.Config.Files.AtomicWrites,
				MaxReadBytes: c.Config.Files.MaxReadBytes,
				FileMode:     c.Config.Files.FileMode,
			},
			fileio.WithFileSystem(c.filesystem),
			fileio.WithLogger(logging.FileIOLogger(c.loggerProvider)),
		)
	}

	if c.parser == nil {
		c.parser = markdown.NewGoldmarkParser(c.Config.Markdown.Parser)
	}
	if c.renderer == nil {
		c.renderer = markdown.NewRenderer(c.parser,
			markdown.WithRendererLogger(logging.MarkdownLogger(c.loggerProvider)))
	}
}

func (c *Container) configureCommands() error {
	gates := documentscmd.FeatureGates{
		RenderEnabled: func() bool { return c.Config.Markdown.Enabled },
	}

	handlers, err := documentscmd.RegisterDocumentCommands(
		c.commandRegistry,
		documentscmd.Services{
			OpenFiles: c.openFiles,
			Documents: c.documents,
			Renderer:  c.renderer,
		},
		c.loggerProvider,
		gates,
		documentscmd.WithTimeout(c.Config.Commands.Timeout),
	)
	if err != nil {
		return fmt.Errorf("di: register document commands: %w", err)
	}
	c.handlers = handlers
	return nil
}

func (c *Container) configureBridge() error {
	c.bridgeRegistry = bridge.NewRegistry()
	if err := c.handlers.BindBridge(c.bridgeRegistry); err != nil {
		return fmt.Errorf("di: bind bridge commands: %w", err)
	}

	c.bridgeServer = bridge.NewServer(
		c.bridgeRegistry,
		bridge.Config{
			MaxMessageBytes: c.Config.Bridge.MaxMessageBytes,
			MaxInFlight:     c.Config.Bridge.MaxInFlight,
		},
		bridge.WithLogger(logging.BridgeLogger(c.loggerProvider)),
		bridge.WithErrorMapper(documentscmd.MapBridgeError),
	)
	return nil
}

// LoggerProvider returns the provider every module logger is drawn from.
func (c *Container) LoggerProvider() interfaces.LoggerProvider {
	return c.loggerProvider
}

// OpenFilesService returns the launch-file queue.
func (c *Container) OpenFilesService() interfaces.OpenFilesService {
	return c.openFiles
}

// DocumentService returns the document read/write service.
func (c *Container) DocumentService() interfaces.DocumentService {
	return c.documents
}

// MarkdownRenderer returns the preview renderer.
func (c *Container) MarkdownRenderer() interfaces.MarkdownRenderer {
	return c.renderer
}

// CommandHandlers returns the document command handlers.
func (c *Container) CommandHandlers() *documentscmd.HandlerSet {
	return c.handlers
}

// BridgeServer returns the stdio bridge server bound to the command handlers.
func (c *Container) BridgeServer() *bridge.Server {
	return c.bridgeServer
}
