// Package bootstrap builds the studio module for the command line entry points.
package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	mdstudio "github.com/goliatone/go-mdstudio"
	"github.com/goliatone/go-mdstudio/internal/logging/console"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

// LogDirName is the directory under the user cache dir that holds host logs.
const LogDirName = "mdstudio"

// Options captures configuration for CLI bootstraps.
type Options struct {
	// LaunchArgs are the raw arguments after the program name.
	LaunchArgs []string
	// LogWriter receives console log lines when LoggerProvider is nil.
	LogWriter io.Writer
	// LogLevel is the minimum console level. Blank keeps the config default.
	LogLevel       string
	LoggerProvider interfaces.LoggerProvider
	// Configure may adjust the default config before the module is built.
	Configure func(*mdstudio.Config)
}

// BuildModule constructs a studio module from opts.
func BuildModule(opts Options) (*mdstudio.Module, error) {
	cfg := mdstudio.DefaultConfig()
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.Logging.Level = level
	}
	if opts.Configure != nil {
		opts.Configure(&cfg)
	}

	provider := opts.LoggerProvider
	if provider == nil && opts.LogWriter != nil {
		consoleOpts := console.Options{Writer: opts.LogWriter}
		if level, ok := console.ParseLevel(cfg.Logging.Level); ok {
			consoleOpts.MinLevel = &level
		}
		provider = console.NewProvider(consoleOpts)
	}

	moduleOpts := []mdstudio.Option{mdstudio.WithLaunchArgs(opts.LaunchArgs)}
	if provider != nil {
		moduleOpts = append(moduleOpts, mdstudio.WithLoggerProvider(provider))
	}

	module, err := mdstudio.New(cfg, moduleOpts...)
	if err != nil {
		return nil, fmt.Errorf("initialise mdstudio module: %w", err)
	}
	return module, nil
}

// OpenLogFile opens name for appending inside <UserCacheDir>/mdstudio, falling
// back to the temp dir when no cache dir is known. The directory is created
// 0700 and the file 0600.
func OpenLogFile(name string) (*os.File, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		cacheDir = os.TempDir()
	}
	return OpenLogFileIn(filepath.Join(cacheDir, LogDirName), name)
}

// OpenLogFileIn opens name for appending inside dir.
func OpenLogFileIn(dir, name string) (*os.File, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	return os.OpenFile(filepath.Join(dir, name), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
}

// SplitList parses a comma separated list into a trimmed slice.
func SplitList(value string) []string {
	if strings.TrimSpace(value) == "" {
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
