package openfiles

import (
	"context"
	"slices"
	"sync"

	"github.com/goliatone/go-mdstudio/internal/logging"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

// Queue holds launch-time paths until they are taken. It is safe for
// concurrent use; every held path is returned by at most one Take.
type Queue struct {
	mu        sync.Mutex
	paths     []string
	corrupted bool

	logger interfaces.Logger
	// snapshot copies the held paths under the lock.
	snapshot func([]string) []string
}

var _ interfaces.OpenFilesService = (*Queue)(nil)

// Option customises a Queue.
type Option func(*Queue)

// WithLogger sets the logger used to report takes.
func WithLogger(logger interfaces.Logger) Option {
	return func(q *Queue) {
		if logger != nil {
			q.logger = logger
		}
	}
}

// NewQueue returns a queue holding a copy of paths in their given order.
func NewQueue(paths []string, opts ...Option) *Queue {
	q := &Queue{
		paths:    slices.Clone(paths),
		logger:   logging.NoOp(),
		snapshot: func(paths []string) []string { return slices.Clone(paths) },
	}
	for _, opt := range opts {
		if opt != nil {
			opt(q)
		}
	}
	return q
}

// NewQueueFromArgs filters raw launch arguments with FilterLaunchArgs and
// seeds a queue with the result.
func NewQueueFromArgs(args []string, extensions []string, opts ...Option) *Queue {
	return NewQueue(FilterLaunchArgs(args, extensions...), opts...)
}

// Take returns the held paths and empties the queue. The result is never nil.
// Once the queue is corrupted Take keeps returning an empty slice together
// with an error matching ErrQueueCorrupted.
func (q *Queue) Take() ([]string, error) {
	paths, err := q.take()
	if err != nil {
		q.logger.Error("openfiles.take.failed", "error", err)
		return paths, err
	}
	q.logger.Debug("openfiles.take.completed", "count", len(paths))
	return paths, nil
}

// TakeOpenFiles satisfies interfaces.OpenFilesService.
func (q *Queue) TakeOpenFiles(ctx context.Context) ([]string, error) {
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}
	return q.Take()
}

// Len reports how many paths are still held.
func (q *Queue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.paths)
}

func (q *Queue) take() (paths []string, err error) {
	q.mu.Lock()
	defer q.mu.Unlock()
	defer func() {
		if r := recover(); r != nil {
			q.corrupted = true
			q.paths = nil
			paths, err = []string{}, corruptionError(r)
		}
	}()

	if q.corrupted {
		return []string{}, corruptionError(nil)
	}

	paths = q.snapshot(q.paths)
	if paths == nil {
		paths = []string{}
	}
	q.paths = nil
	return paths, nil
}
