// Package fixtures holds test doubles shared by command package tests.
package fixtures

import (
	"context"
	"maps"
	"sync"

	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

// RecordingRegistry captures command handlers passed to RegisterCommand.
type RecordingRegistry struct {
	mu       sync.Mutex
	Handlers []any
	Err      error
}

// NewRecordingRegistry constructs an empty registry recorder.
func NewRecordingRegistry() *RecordingRegistry {
	return &RecordingRegistry{
		Handlers: make([]any, 0),
	}
}

// RegisterCommand records handler, or returns Err when it is set.
func (r *RecordingRegistry) RegisterCommand(handler any) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.Err != nil {
		return r.Err
	}
	r.Handlers = append(r.Handlers, handler)
	return nil
}

// CaptureLogger records messages and fields for assertions.
type CaptureLogger struct {
	mu       sync.Mutex
	Fields   []map[string]any
	Messages []string
}

func (c *CaptureLogger) record(msg string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Messages = append(c.Messages, msg)
}

func (c *CaptureLogger) Trace(msg string, _ ...any) { c.record(msg) }
func (c *CaptureLogger) Debug(msg string, _ ...any) { c.record(msg) }
func (c *CaptureLogger) Info(msg string, _ ...any)  { c.record(msg) }
func (c *CaptureLogger) Warn(msg string, _ ...any)  { c.record(msg) }
func (c *CaptureLogger) Error(msg string, _ ...any) { c.record(msg) }
func (c *CaptureLogger) Fatal(msg string, _ ...any) { c.record(msg) }

// WithFields records fields and returns the same logger.
func (c *CaptureLogger) WithFields(fields map[string]any) interfaces.Logger {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Fields = append(c.Fields, maps.Clone(fields))
	return c
}

func (c *CaptureLogger) WithContext(context.Context) interfaces.Logger { return c }

var (
	_ interfaces.Logger       = (*CaptureLogger)(nil)
	_ interfaces.FieldsLogger = (*CaptureLogger)(nil)
)

// HasMessage reports whether msg was logged at any level.
func (c *CaptureLogger) HasMessage(msg string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, m := range c.Messages {
		if m == msg {
			return true
		}
	}
	return false
}

// FieldValue returns the most recent value recorded for key.
func (c *CaptureLogger) FieldValue(key string) (any, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := len(c.Fields) - 1; i >= 0; i-- {
		if v, ok := c.Fields[i][key]; ok {
			return v, true
		}
	}
	return nil, false
}
