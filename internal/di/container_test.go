package di_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-mdstudio/internal/bridge"
	documentscmd "github.com/goliatone/go-mdstudio/internal/commands/documents"
	"github.com/goliatone/go-mdstudio/internal/commands/fixtures"
	"github.com/goliatone/go-mdstudio/internal/di"
	"github.com/goliatone/go-mdstudio/internal/fileio"
	"github.com/goliatone/go-mdstudio/internal/openfiles"
	"github.com/goliatone/go-mdstudio/internal/runtimeconfig"
)

func quietContainer(t *testing.T, opts ...di.Option) *di.Container {
	t.Helper()
	opts = append([]di.Option{di.WithLoggerProvider(newRecordingProvider())}, opts...)
	container, err := di.NewContainer(runtimeconfig.DefaultConfig(), opts...)
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}
	return container
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Bridge.MaxInFlight = 0

	if _, err := di.NewContainer(cfg); !errors.Is(err, runtimeconfig.ErrBridgeInFlightInvalid) {
		t.Fatalf("expected in-flight validation error, got %v", err)
	}
}

func TestContainerFiltersLaunchArgs(t *testing.T) {
	container := quietContainer(t, di.WithLaunchArgs([]string{"--flag", "/a.md", "/b.txt", "/c.MARKDOWN"}))

	paths, err := container.OpenFilesService().TakeOpenFiles(context.Background())
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if len(paths) != 2 || paths[0] != "/a.md" || paths[1] != "/c.MARKDOWN" {
		t.Fatalf("unexpected paths %v", paths)
	}
}

func TestContainerPrefersSuppliedOpenFiles(t *testing.T) {
	queue := openfiles.NewQueue([]string{"/override.md"})
	container := quietContainer(t, di.WithOpenFiles(queue), di.WithLaunchArgs([]string{"/ignored.md"}))

	paths, err := container.OpenFilesService().TakeOpenFiles(context.Background())
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if len(paths) != 1 || paths[0] != "/override.md" {
		t.Fatalf("unexpected paths %v", paths)
	}
}

func TestContainerRegistersWithCommandRegistry(t *testing.T) {
	reg := fixtures.NewRecordingRegistry()
	container := quietContainer(t, di.WithCommandRegistry(reg))

	if len(reg.Handlers) != 4 {
		t.Fatalf("expected 4 registered handlers, got %d", len(reg.Handlers))
	}
	if container.CommandHandlers().Render == nil {
		t.Fatal("expected render handler")
	}
}

func TestContainerUsesSuppliedFileSystem(t *testing.T) {
	counting := &countingFS{}
	container := quietContainer(t, di.WithFileSystem(counting))
	path := filepath.Join(t.TempDir(), "doc.md")

	if err := container.DocumentService().WriteDocument(context.Background(), path, "x"); err != nil {
		t.Fatalf("write: %v", err)
	}
	if counting.writes != 1 {
		t.Fatalf("expected the supplied filesystem to be used, got %d writes", counting.writes)
	}
}

func TestContainerBridgeServesDocumentCommands(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "a.md")
	container := quietContainer(t, di.WithLaunchArgs([]string{path}))

	var in bytes.Buffer
	writeRequest(t, &in, bridge.Request{ID: "1", Command: documentscmd.TakeOpenFilesCommandName})
	writeRequest(t, &in, bridge.Request{ID: "2", Command: documentscmd.ReadMarkdownFileCommandName,
		Args: json.RawMessage(`{"path":"/missing/dir/file.md"}`)})

	var out bytes.Buffer
	if err := container.BridgeServer().Serve(context.Background(), &in, &out); err != nil {
		t.Fatalf("serve: %v", err)
	}

	responses := readResponses(t, &out)
	take := responses["1"]
	if !take.Success {
		t.Fatalf("expected take to succeed, got %+v", take.Error)
	}
	read := responses["2"]
	if read.Success || read.Error == nil || read.Error.Code != fileio.CodeIOError {
		t.Fatalf("expected IO_ERROR, got %+v", read)
	}
}

func TestContainerRenderDisabledByConfig(t *testing.T) {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Markdown.Enabled = false
	container, err := di.NewContainer(cfg, di.WithLoggerProvider(newRecordingProvider()))
	if err != nil {
		t.Fatalf("NewContainer returned error: %v", err)
	}

	resp := container.BridgeServer().Handle(context.Background(), &bridge.Request{
		ID:      "r",
		Command: documentscmd.RenderMarkdownCommandName,
		Args:    json.RawMessage(`{"markdown":"# x"}`),
	})
	if resp.Success || resp.Error.Code != documentscmd.CodeRenderDisabled {
		t.Fatalf("expected RENDER_DISABLED, got %+v", resp)
	}
}

type countingFS struct {
	fileio.OS
	writes int
}

func (f *countingFS) WriteFile(name string, data []byte, perm fs.FileMode) error {
	f.writes++
	return f.OS.WriteFile(name, data, perm)
}

func writeRequest(t *testing.T, w *bytes.Buffer, req bridge.Request) {
	t.Helper()
	payload, err := json.Marshal(req)
	if err != nil {
		t.Fatalf("marshal request: %v", err)
	}
	if err := bridge.WriteFrame(w, payload); err != nil {
		t.Fatalf("write frame: %v", err)
	}
}

func readResponses(t *testing.T, r *bytes.Buffer) map[string]bridge.Response {
	t.Helper()
	out := map[string]bridge.Response{}
	for r.Len() > 0 {
		payload, err := bridge.ReadFrame(r, bridge.DefaultMaxMessageBytes)
		if err != nil {
			t.Fatalf("read frame: %v", err)
		}
		var resp bridge.Response
		if err := json.Unmarshal(payload, &resp); err != nil {
			t.Fatalf("decode response: %v", err)
		}
		out[resp.ID] = resp
	}
	return out
}
