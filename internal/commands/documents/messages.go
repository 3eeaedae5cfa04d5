package documentscmd

import (
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdstudio/internal/markdown"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

const (
	takeOpenFilesMessageType     = "mdstudio.documents.take_open_files"
	readMarkdownFileMessageType  = "mdstudio.documents.read_markdown_file"
	writeMarkdownFileMessageType = "mdstudio.documents.write_markdown_file"
	renderMarkdownMessageType    = "mdstudio.documents.render_markdown"
)

// TakeOpenFilesCommand drains the launch-file queue into Result.
type TakeOpenFilesCommand struct {
	// Result receives the drained paths. It is always set to a non-nil slice
	// on success.
	Result *[]string `json:"-"`
}

// Type implements command.Message.
func (TakeOpenFilesCommand) Type() string { return takeOpenFilesMessageType }

// Validate ensures the caller supplied a result sink.
func (cmd TakeOpenFilesCommand) Validate() error {
	return validation.Errors{
		"result": resultSink(cmd.Result == nil),
	}.Filter()
}

// ReadMarkdownFileCommand reads the document at Path into Result. Path may
// be wrapped in double quotes.
type ReadMarkdownFileCommand struct {
	Path   string  `json:"path"`
	Result *string `json:"-"`
}

// Type implements command.Message.
func (ReadMarkdownFileCommand) Type() string { return readMarkdownFileMessageType }

// Validate ensures the caller supplied a result sink. An empty path is left
// for the filesystem to reject.
func (cmd ReadMarkdownFileCommand) Validate() error {
	return validation.Errors{
		"result": resultSink(cmd.Result == nil),
	}.Filter()
}

// WriteMarkdownFileCommand replaces the document at Path with Contents.
type WriteMarkdownFileCommand struct {
	Path     string `json:"path"`
	Contents string `json:"contents"`
}

// Type implements command.Message.
func (WriteMarkdownFileCommand) Type() string { return writeMarkdownFileMessageType }

// RenderMarkdownCommand renders an in-memory buffer for the preview pane.
type RenderMarkdownCommand struct {
	Markdown string                  `json:"markdown"`
	Options  interfaces.ParseOptions `json:"options"`
	Result   *interfaces.Preview     `json:"-"`
}

// Type implements command.Message.
func (RenderMarkdownCommand) Type() string { return renderMarkdownMessageType }

// Validate rejects unknown extension names and a missing result sink.
func (cmd RenderMarkdownCommand) Validate() error {
	return validation.Errors{
		"result": resultSink(cmd.Result == nil),
		"options.extensions": validation.Validate(cmd.Options.Extensions, validation.Each(validation.By(func(value any) error {
			name, _ := value.(string)
			if !markdown.KnownExtension(name) {
				return validation.NewError("mdstudio.documents.render_markdown.extension_unknown",
					"unknown markdown extension "+strings.TrimSpace(name))
			}
			return nil
		}))),
	}.Filter()
}

// resultSink reports a missing result pointer. ozzo's NotNil follows the
// pointer, so a sink pointing at a nil slice would be rejected.
func resultSink(missing bool) error {
	if missing {
		return validation.NewError("mdstudio.documents.result_required", "a result sink is required")
	}
	return nil
}
