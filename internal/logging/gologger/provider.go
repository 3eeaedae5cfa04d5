// Package gologger backs the studio logging contract with
// github.com/goliatone/go-logger. It is selected when logging.provider is
// "gologger"; the console package is the default.
package gologger

import (
	"context"
	"fmt"
	"maps"
	"strings"

	glog "github.com/goliatone/go-logger/glog"

	"github.com/goliatone/go-mdstudio/internal/logging"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

// Config mirrors runtimeconfig.LoggingConfig for the go-logger backend.
type Config struct {
	Level     string
	Format    string
	AddSource bool
	// Focus limits output to the named modules, e.g. "mdstudio.bridge".
	Focus []string
}

var formats = map[string]func() glog.Option{
	"":        glog.WithLoggerTypeJSON,
	"json":    glog.WithLoggerTypeJSON,
	"console": glog.WithLoggerTypeConsole,
	"pretty":  glog.WithLoggerTypePretty,
}

var levels = map[string]string{
	"trace":   glog.Trace,
	"debug":   glog.Debug,
	"info":    glog.Info,
	"warn":    glog.Warn,
	"warning": glog.Warn,
	"error":   glog.Error,
	"fatal":   glog.Fatal,
}

// Provider hands out module loggers derived from one go-logger root. go-logger
// keeps one child per name, so asking twice yields equal loggers.
type Provider struct {
	root *glog.BaseLogger
}

// NewProvider builds the go-logger root from cfg. Unknown formats and levels
// are rejected.
func NewProvider(cfg Config) (*Provider, error) {
	opts, err := rootOptions(cfg)
	if err != nil {
		return nil, err
	}

	root := glog.NewLogger(opts...)
	var focus []string
	for _, module := range cfg.Focus {
		if module = strings.TrimSpace(module); module != "" {
			focus = append(focus, module)
		}
	}
	if len(focus) > 0 {
		root.Focus(focus...)
	}
	return &Provider{root: root}, nil
}

func rootOptions(cfg Config) ([]glog.Option, error) {
	format := strings.ToLower(strings.TrimSpace(cfg.Format))
	withFormat, ok := formats[format]
	if !ok {
		return nil, fmt.Errorf("gologger: unsupported format %q", cfg.Format)
	}
	opts := []glog.Option{withFormat()}

	if name := strings.ToLower(strings.TrimSpace(cfg.Level)); name != "" {
		level, ok := levels[name]
		if !ok {
			return nil, fmt.Errorf("gologger: unsupported level %q", cfg.Level)
		}
		opts = append(opts, glog.WithLevel(level))
	}
	if cfg.AddSource {
		opts = append(opts, glog.WithAddSource(true))
	}
	return opts, nil
}

// GetLogger satisfies interfaces.LoggerProvider. A nil provider yields a
// no-op logger.
func (p *Provider) GetLogger(name string) interfaces.Logger {
	if p == nil || p.root == nil {
		return logging.NoOp()
	}
	if name = strings.TrimSpace(name); name != "" {
		return adapt(p.root.GetLogger(name))
	}
	return adapt(p.root)
}

func adapt(inner glog.Logger) interfaces.Logger {
	if inner == nil {
		return logging.NoOp()
	}
	return moduleLogger{inner}
}

type moduleLogger struct {
	glog.Logger
}

// WithFields is a no-op when the backend does not implement glog.FieldsLogger.
func (l moduleLogger) WithFields(fields map[string]any) interfaces.Logger {
	fl, ok := l.Logger.(glog.FieldsLogger)
	if !ok || len(fields) == 0 {
		return l
	}
	return adapt(fl.WithFields(maps.Clone(fields)))
}

func (l moduleLogger) WithContext(ctx context.Context) interfaces.Logger {
	if ctx == nil {
		return l
	}
	return adapt(l.Logger.WithContext(ctx))
}
