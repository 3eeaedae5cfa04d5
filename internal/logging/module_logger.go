package logging

import (
	"context"
	"strings"

	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

const (
	rootModule      = "mdstudio"
	openFilesModule = "mdstudio.openfiles"
	fileIOModule    = "mdstudio.fileio"
	markdownModule  = "mdstudio.markdown"
	bridgeModule    = "mdstudio.bridge"
	commandsModule  = "mdstudio.commands"
)

const (
	fieldFilePath   = "file_path"
	fieldFileAction = "file_action"
	fieldCommandSet = "command_set"
)

// ModuleLogger returns a module-scoped logger, defaulting to a no-op
// implementation when no provider is supplied. The module name is attached
// as the "module" field.
func ModuleLogger(provider interfaces.LoggerProvider, module string) interfaces.Logger {
	if module == "" {
		module = rootModule
	}

	logger := NoOp()
	if provider != nil {
		if provided := provider.GetLogger(module); provided != nil {
			logger = provided
		}
	}

	return WithFields(logger, map[string]any{
		"module": module,
	})
}

// OpenFilesLogger returns the logger for the launch-file hand-off queue.
func OpenFilesLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, openFilesModule)
}

// FileIOLogger returns the logger for document reads and writes.
func FileIOLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, fileIOModule)
}

// MarkdownLogger returns the logger for preview rendering.
func MarkdownLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, markdownModule)
}

// BridgeLogger returns the logger for the front-end host bridge.
func BridgeLogger(provider interfaces.LoggerProvider) interfaces.Logger {
	return ModuleLogger(provider, bridgeModule)
}

// CommandLogger returns the logger for one set of command handlers, e.g.
// "documents". The set name is appended to the module and kept as a field.
func CommandLogger(provider interfaces.LoggerProvider, set string) interfaces.Logger {
	set = strings.ToLower(strings.TrimSpace(set))
	if set == "" {
		return ModuleLogger(provider, commandsModule)
	}
	return WithFields(ModuleLogger(provider, commandsModule+"."+set), map[string]any{
		fieldCommandSet: set,
	})
}

// WithFileContext adds the file path and action fields. Blank values are skipped.
func WithFileContext(logger interfaces.Logger, path, action string) interfaces.Logger {
	fields := map[string]any{}
	if trimmed := strings.TrimSpace(path); trimmed != "" {
		fields[fieldFilePath] = trimmed
	}
	if trimmed := strings.TrimSpace(action); trimmed != "" {
		fields[fieldFileAction] = trimmed
	}
	return WithFields(logger, fields)
}

// NoOp returns a logger that drops every entry.
func NoOp() interfaces.Logger {
	return noopLogger{}
}

type noopLogger struct{}

var _ interfaces.Logger = noopLogger{}

func (noopLogger) Trace(string, ...any) {}
func (noopLogger) Debug(string, ...any) {}
func (noopLogger) Info(string, ...any)  {}
func (noopLogger) Warn(string, ...any)  {}
func (noopLogger) Error(string, ...any) {}
func (noopLogger) Fatal(string, ...any) {}

func (n noopLogger) WithFields(map[string]any) interfaces.Logger {
	return n
}

func (n noopLogger) WithContext(context.Context) interfaces.Logger {
	return n
}
