package documentscmd

import (
	"testing"

	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

func TestTakeOpenFilesCommandRequiresResult(t *testing.T) {
	if err := (TakeOpenFilesCommand{}).Validate(); err == nil {
		t.Fatal("expected error when result sink missing")
	}
	var paths []string
	if err := (TakeOpenFilesCommand{Result: &paths}).Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestReadMarkdownFileCommandAllowsEmptyPath(t *testing.T) {
	if err := (ReadMarkdownFileCommand{Path: "/tmp/a.md"}).Validate(); err == nil {
		t.Fatal("expected error when result sink missing")
	}
	var contents string
	if err := (ReadMarkdownFileCommand{Result: &contents}).Validate(); err != nil {
		t.Fatalf("empty path should be left to the filesystem, got %v", err)
	}
}

func TestRenderMarkdownCommandValidatesExtensions(t *testing.T) {
	var preview interfaces.Preview

	cmd := RenderMarkdownCommand{
		Markdown: "# hi",
		Options:  interfaces.ParseOptions{Extensions: []string{"gfm", "Footnote"}},
		Result:   &preview,
	}
	if err := cmd.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	cmd.Options.Extensions = append(cmd.Options.Extensions, "mermaid")
	if err := cmd.Validate(); err == nil {
		t.Fatal("expected unknown extension to be rejected")
	}

	if err := (RenderMarkdownCommand{}).Validate(); err == nil {
		t.Fatal("expected error when result sink missing")
	}
}

func TestMessageTypes(t *testing.T) {
	types := map[string]string{
		TakeOpenFilesCommand{}.Type():     takeOpenFilesMessageType,
		ReadMarkdownFileCommand{}.Type():  readMarkdownFileMessageType,
		WriteMarkdownFileCommand{}.Type(): writeMarkdownFileMessageType,
		RenderMarkdownCommand{}.Type():    renderMarkdownMessageType,
	}
	if len(types) != 4 {
		t.Fatalf("expected four distinct message types, got %v", types)
	}
}
