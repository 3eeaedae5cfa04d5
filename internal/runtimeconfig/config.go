package runtimeconfig

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

var ErrFileExtensionsRequired = errors.New("mdstudio config: at least one launch file extension is required")
var ErrFileExtensionInvalid = errors.New("mdstudio config: launch file extensions must start with a dot")
var ErrMaxReadBytesInvalid = errors.New("mdstudio config: max read bytes must be zero or positive")
var ErrFileModeInvalid = errors.New("mdstudio config: file mode must grant the owner write permission")
var ErrCommandTimeoutInvalid = errors.New("mdstudio config: command timeout must be zero or positive")
var ErrBridgeMessageSizeInvalid = errors.New("mdstudio config: bridge max message bytes must be positive")
var ErrBridgeInFlightInvalid = errors.New("mdstudio config: bridge max in-flight requests must be positive")
var ErrLoggingProviderRequired = errors.New("mdstudio config: logging provider is required")
var ErrLoggingProviderUnknown = errors.New("mdstudio config: logging provider is invalid")
var ErrLoggingLevelInvalid = errors.New("mdstudio config: logging level is invalid")
var ErrLoggingFormatInvalid = errors.New("mdstudio config: logging format is invalid")

// Config aggregates the runtime options of the studio backend. It is built in
// code; nothing is read from the environment or from disk.
type Config struct {
	Files    FilesConfig
	Commands CommandsConfig
	Markdown MarkdownConfig
	Bridge   BridgeConfig
	Logging  LoggingConfig
}

// FilesConfig controls launch argument filtering and document I/O.
type FilesConfig struct {
	// Extensions lists the lowercase suffixes a launch argument must end with
	// to be queued for opening.
	Extensions []string
	// AtomicWrites writes into a sibling temp file and renames it over the
	// target instead of truncating in place.
	AtomicWrites bool
	// MaxReadBytes rejects larger documents on read. Zero disables the check.
	MaxReadBytes int64
	// FileMode is applied to files created by a write.
	FileMode os.FileMode
}

// CommandsConfig captures command handler behaviour.
type CommandsConfig struct {
	Timeout time.Duration
}

// MarkdownConfig toggles the preview renderer.
type MarkdownConfig struct {
	Enabled bool
	Parser  interfaces.ParseOptions
}

// BridgeConfig sizes the stdio host bridge.
type BridgeConfig struct {
	MaxMessageBytes int
	MaxInFlight     int
}

// LoggingConfig captures provider-specific options for runtime logging.
type LoggingConfig struct {
	Provider  string
	Level     string
	Format    string
	AddSource bool
	Focus     []string
}

// DefaultConfig returns the configuration the desktop host runs with.
func DefaultConfig() Config {
	return Config{
		Files: FilesConfig{
			Extensions: []string{".md", ".markdown"},
			FileMode:   0o644,
		},
		Commands: CommandsConfig{
			Timeout: 30 * time.Second,
		},
		Markdown: MarkdownConfig{
			Enabled: true,
			Parser: interfaces.ParseOptions{
				Extensions: []string{"gfm", "linkify", "tasklist"},
			},
		},
		Bridge: BridgeConfig{
			MaxMessageBytes: 64 << 20,
			MaxInFlight:     4,
		},
		Logging: LoggingConfig{
			Provider: "console",
			Level:    "info",
		},
	}
}

// Validate performs consistency checks.
func (cfg Config) Validate() error {
	if len(cfg.Files.Extensions) == 0 {
		return ErrFileExtensionsRequired
	}
	for _, ext := range cfg.Files.Extensions {
		if !strings.HasPrefix(strings.TrimSpace(ext), ".") {
			return fmt.Errorf("%w: %q", ErrFileExtensionInvalid, ext)
		}
	}
	if cfg.Files.MaxReadBytes < 0 {
		return ErrMaxReadBytesInvalid
	}
	if cfg.Files.FileMode != 0 && cfg.Files.FileMode.Perm()&0o200 == 0 {
		return fmt.Errorf("%w: %v", ErrFileModeInvalid, cfg.Files.FileMode)
	}
	if cfg.Commands.Timeout < 0 {
		return ErrCommandTimeoutInvalid
	}
	if cfg.Bridge.MaxMessageBytes <= 0 {
		return ErrBridgeMessageSizeInvalid
	}
	if cfg.Bridge.MaxInFlight <= 0 {
		return ErrBridgeInFlightInvalid
	}

	provider := normalizeProvider(cfg.Logging.Provider)
	if provider == "" {
		return ErrLoggingProviderRequired
	}
	if !isSupportedProvider(provider) {
		return fmt.Errorf("%w: %s", ErrLoggingProviderUnknown, provider)
	}
	if level := strings.TrimSpace(cfg.Logging.Level); level != "" && !isSupportedLevel(level) {
		return fmt.Errorf("%w: %s", ErrLoggingLevelInvalid, level)
	}
	if provider == "gologger" {
		if format := strings.TrimSpace(cfg.Logging.Format); format != "" && !isSupportedFormat(format) {
			return fmt.Errorf("%w: %s", ErrLoggingFormatInvalid, format)
		}
	}
	return nil
}

// NormalizedExtensions returns the configured extensions trimmed and lowercased.
func (cfg FilesConfig) NormalizedExtensions() []string {
	out := make([]string, 0, len(cfg.Extensions))
	for _, ext := range cfg.Extensions {
		if trimmed := strings.ToLower(strings.TrimSpace(ext)); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

func normalizeProvider(provider string) string {
	return strings.ToLower(strings.TrimSpace(provider))
}

func isSupportedProvider(provider string) bool {
	switch provider {
	case "console", "gologger":
		return true
	default:
		return false
	}
}

func isSupportedLevel(level string) bool {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace", "debug", "info", "warn", "warning", "error", "fatal":
		return true
	default:
		return false
	}
}

func isSupportedFormat(format string) bool {
	switch strings.ToLower(strings.TrimSpace(format)) {
	case "json", "console", "pretty":
		return true
	default:
		return false
	}
}
