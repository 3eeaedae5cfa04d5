package bootstrap

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	mdstudio "github.com/goliatone/go-mdstudio"
)

func TestBuildModuleSeedsLaunchArgs(t *testing.T) {
	var logs bytes.Buffer
	module, err := BuildModule(Options{
		LaunchArgs: []string{"/a.md", "/b.txt"},
		LogWriter:  &logs,
		LogLevel:   "debug",
	})
	if err != nil {
		t.Fatalf("BuildModule returned error: %v", err)
	}

	paths, err := module.TakeOpenFiles(context.Background())
	if err != nil {
		t.Fatalf("take: %v", err)
	}
	if len(paths) != 1 || paths[0] != "/a.md" {
		t.Fatalf("unexpected paths %v", paths)
	}
	if !strings.Contains(logs.String(), "openfiles.take.completed") {
		t.Fatalf("expected debug log in writer, got %q", logs.String())
	}
}

func TestBuildModuleAppliesConfigure(t *testing.T) {
	_, err := BuildModule(Options{
		LogWriter: &bytes.Buffer{},
		Configure: func(cfg *mdstudio.Config) {
			cfg.Bridge.MaxInFlight = -1
		},
	})
	if err == nil {
		t.Fatal("expected invalid config to be reported")
	}
}

func TestOpenLogFileInRestrictsPermissions(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	file, err := OpenLogFileIn(dir, "host.log")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer file.Close()

	info, err := os.Stat(file.Name())
	if err != nil {
		t.Fatalf("stat: %v", err)
	}
	if perm := info.Mode().Perm(); perm&0o077 != 0 {
		t.Fatalf("expected owner-only permissions, got %v", perm)
	}
}

func TestSplitList(t *testing.T) {
	got := SplitList(" gfm, ,linkify ")
	if len(got) != 2 || got[0] != "gfm" || got[1] != "linkify" {
		t.Fatalf("unexpected list %v", got)
	}
	if SplitList("  ") != nil {
		t.Fatal("expected nil for blank input")
	}
}
