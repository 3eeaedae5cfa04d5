package documentscmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-mdstudio/internal/commands"
	"github.com/goliatone/go-mdstudio/internal/commands/fixtures"
	"github.com/goliatone/go-mdstudio/internal/fileio"
	"github.com/goliatone/go-mdstudio/internal/logging"
	"github.com/goliatone/go-mdstudio/internal/markdown"
	"github.com/goliatone/go-mdstudio/internal/openfiles"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

type stubOpenFiles struct {
	paths []string
	err   error
	calls int
}

func (s *stubOpenFiles) TakeOpenFiles(context.Context) ([]string, error) {
	s.calls++
	return s.paths, s.err
}

type stubRenderer struct {
	calls int
}

func (s *stubRenderer) RenderPreview(context.Context, []byte, interfaces.ParseOptions) (*interfaces.Preview, error) {
	s.calls++
	return &interfaces.Preview{Title: "stub"}, nil
}

func TestTakeOpenFilesHandlerDrainsQueue(t *testing.T) {
	queue := openfiles.NewQueue([]string{"/a.md", "/b.MD"})
	logger := &fixtures.CaptureLogger{}
	handler := NewTakeOpenFilesHandler(queue, logger)

	var first []string
	if err := handler.Execute(context.Background(), TakeOpenFilesCommand{Result: &first}); err != nil {
		t.Fatalf("take: %v", err)
	}
	if len(first) != 2 || first[0] != "/a.md" || first[1] != "/b.MD" {
		t.Fatalf("unexpected paths %v", first)
	}

	var second []string
	if err := handler.Execute(context.Background(), TakeOpenFilesCommand{Result: &second}); err != nil {
		t.Fatalf("second take: %v", err)
	}
	if second == nil || len(second) != 0 {
		t.Fatalf("expected empty non-nil slice, got %#v", second)
	}

	if !logger.HasMessage("documents.command.take_open_files.completed") {
		t.Fatalf("expected summary log, got %v", logger.Messages)
	}
	if count, ok := logger.FieldValue("count"); !ok || count != 0 {
		t.Fatalf("expected latest count field 0, got %v", count)
	}
}

// lateQueue drains its queue and then outlives the command deadline.
type lateQueue struct {
	queue *openfiles.Queue
}

func (l lateQueue) TakeOpenFiles(ctx context.Context) ([]string, error) {
	paths, err := l.queue.TakeOpenFiles(ctx)
	<-ctx.Done()
	return paths, err
}

func TestTakeOpenFilesHandlerKeepsPathsDrainedBeforeDeadline(t *testing.T) {
	queue := openfiles.NewQueue([]string{"/a.md"})
	handler := NewTakeOpenFilesHandler(lateQueue{queue: queue}, logging.NoOp(),
		commands.WithTimeout[TakeOpenFilesCommand](5*time.Millisecond))

	var paths []string
	if err := handler.Execute(context.Background(), TakeOpenFilesCommand{Result: &paths}); err != nil {
		t.Fatalf("expected drained paths to be delivered, got %v", err)
	}
	if len(paths) != 1 || paths[0] != "/a.md" {
		t.Fatalf("unexpected paths %v", paths)
	}
	if queue.Len() != 0 {
		t.Fatalf("expected queue to stay drained, got %d entries", queue.Len())
	}
}

func TestTakeOpenFilesHandlerSurfacesCorruption(t *testing.T) {
	corrupted := goerrors.Wrap(openfiles.ErrQueueCorrupted, goerrors.CategoryInternal, "open files queue corrupted").
		WithTextCode(openfiles.CodeQueueCorrupted)
	service := &stubOpenFiles{err: corrupted}
	handler := NewTakeOpenFilesHandler(service, logging.NoOp())

	var paths []string
	err := handler.Execute(context.Background(), TakeOpenFilesCommand{Result: &paths})
	if !errors.Is(err, openfiles.ErrQueueCorrupted) {
		t.Fatalf("expected corruption error, got %v", err)
	}
	if commands.TextCode(err) != openfiles.CodeQueueCorrupted {
		t.Fatalf("expected corruption code to survive, got %q", commands.TextCode(err))
	}
	if paths == nil || len(paths) != 0 {
		t.Fatalf("expected empty result alongside the error, got %#v", paths)
	}
}

func TestReadWriteHandlersRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "x.md")
	service := fileio.NewService(fileio.Config{})
	write := NewWriteMarkdownFileHandler(service, logging.NoOp())
	read := NewReadMarkdownFileHandler(service, logging.NoOp())

	if err := write.Execute(context.Background(), WriteMarkdownFileCommand{Path: `"` + path + `"`, Contents: "hello"}); err != nil {
		t.Fatalf("write: %v", err)
	}

	var contents string
	if err := read.Execute(context.Background(), ReadMarkdownFileCommand{Path: path, Result: &contents}); err != nil {
		t.Fatalf("read: %v", err)
	}
	if contents != "hello" {
		t.Fatalf("expected hello, got %q", contents)
	}
}

func TestReadHandlerWrapsIOError(t *testing.T) {
	read := NewReadMarkdownFileHandler(fileio.NewService(fileio.Config{}), logging.NoOp())

	var contents string
	err := read.Execute(context.Background(), ReadMarkdownFileCommand{Path: "/does/not/exist.md", Result: &contents})

	var ioErr *fileio.IOError
	if !errors.As(err, &ioErr) {
		t.Fatalf("expected IOError in chain, got %v", err)
	}
	if ioErr.Error() == "" {
		t.Fatal("expected non-empty OS message")
	}
	if !goerrors.IsCategory(err, goerrors.CategoryCommand) {
		t.Fatalf("expected command category, got %v", err)
	}
	if contents != "" {
		t.Fatalf("expected result untouched, got %q", contents)
	}
}

func TestReadHandlerRejectsMissingResult(t *testing.T) {
	read := NewReadMarkdownFileHandler(fileio.NewService(fileio.Config{}), logging.NoOp())

	err := read.Execute(context.Background(), ReadMarkdownFileCommand{Path: "/tmp/a.md"})
	if !goerrors.IsCategory(err, goerrors.CategoryValidation) {
		t.Fatalf("expected validation category, got %v", err)
	}
}

func TestWriteHandlerLogsPathField(t *testing.T) {
	dir := t.TempDir()
	logger := &fixtures.CaptureLogger{}
	write := NewWriteMarkdownFileHandler(fileio.NewService(fileio.Config{}), logger)

	target := filepath.Join(dir, "notes.md")
	if err := write.Execute(context.Background(), WriteMarkdownFileCommand{Path: `"` + target + `"`, Contents: "abc"}); err != nil {
		t.Fatalf("write: %v", err)
	}
	if got, ok := logger.FieldValue("path"); !ok || got != target {
		t.Fatalf("expected normalised path field, got %v", got)
	}
	if _, err := os.Stat(target); err != nil {
		t.Fatalf("expected file to exist: %v", err)
	}
}

func TestRenderHandlerProducesPreview(t *testing.T) {
	handler := NewRenderMarkdownHandler(markdown.NewRenderer(nil), logging.NoOp(), FeatureGates{})

	var preview interfaces.Preview
	err := handler.Execute(context.Background(), RenderMarkdownCommand{
		Markdown: "---\ntitle: Notes\n---\n# Heading\n\n~~old~~\n",
		Result:   &preview,
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if preview.Title != "Notes" {
		t.Fatalf("expected title from front matter, got %q", preview.Title)
	}
	if preview.HTML == "" {
		t.Fatal("expected html")
	}
}

func TestRenderHandlerFeatureDisabled(t *testing.T) {
	renderer := &stubRenderer{}
	handler := NewRenderMarkdownHandler(renderer, logging.NoOp(), FeatureGates{
		RenderEnabled: func() bool { return false },
	})

	var preview interfaces.Preview
	err := handler.Execute(context.Background(), RenderMarkdownCommand{Markdown: "# x", Result: &preview})
	if !errors.Is(err, ErrRenderFeatureDisabled) {
		t.Fatalf("expected feature disabled error, got %v", err)
	}
	if renderer.calls != 0 {
		t.Fatalf("expected renderer not to run, got %d calls", renderer.calls)
	}
}

func TestHandlersHonourCancelledContext(t *testing.T) {
	service := &stubOpenFiles{paths: []string{"/a.md"}}
	handler := NewTakeOpenFilesHandler(service, logging.NoOp())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var paths []string
	err := handler.Execute(ctx, TakeOpenFilesCommand{Result: &paths})
	if commands.TextCode(err) != commands.CodeContextCanceled {
		t.Fatalf("expected cancellation code, got %v", err)
	}
	if service.calls != 0 {
		t.Fatal("expected service not to be called")
	}
}
