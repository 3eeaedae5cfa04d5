package documentscmd

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/goliatone/go-mdstudio/internal/bridge"
	"github.com/goliatone/go-mdstudio/internal/fileio"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

// Wire command names understood by the front-end.
const (
	TakeOpenFilesCommandName     = "take_open_files"
	ReadMarkdownFileCommandName  = "read_markdown_file"
	WriteMarkdownFileCommandName = "write_markdown_file"
	RenderMarkdownCommandName    = "render_markdown"
)

// CodeRenderDisabled is reported when render_markdown is switched off.
const CodeRenderDisabled = "RENDER_DISABLED"

const readArgsSchema = `{
	"type": "object",
	"properties": {"path": {"type": "string"}},
	"required": ["path"]
}`

const writeArgsSchema = `{
	"type": "object",
	"properties": {
		"path": {"type": "string"},
		"contents": {"type": "string"}
	},
	"required": ["path", "contents"]
}`

const renderArgsSchema = `{
	"type": "object",
	"properties": {
		"markdown": {"type": "string"},
		"options": {
			"type": "object",
			"properties": {
				"extensions": {"type": "array", "items": {"type": "string"}},
				"sanitize": {"type": "boolean"},
				"hard_wraps": {"type": "boolean"},
				"safe_mode": {"type": "boolean"}
			}
		}
	},
	"required": ["markdown"]
}`

type readArgs struct {
	Path string `json:"path"`
}

type writeArgs struct {
	Path     string `json:"path"`
	Contents string `json:"contents"`
}

type renderArgs struct {
	Markdown string                  `json:"markdown"`
	Options  interfaces.ParseOptions `json:"options"`
}

// BindBridge exposes the handler set on reg under the snake_case wire names
// and their kebab-case aliases.
func (s *HandlerSet) BindBridge(reg *bridge.Registry) error {
	if s == nil || reg == nil {
		return errors.New("documents bridge binding: handler set and registry are required")
	}

	err := reg.Register(TakeOpenFilesCommandName, bridge.ObjectSchema,
		func(ctx context.Context, _ json.RawMessage) (any, error) {
			var paths []string
			err := s.TakeOpenFiles.Execute(ctx, TakeOpenFilesCommand{Result: &paths})
			return paths, err
		}, "take-open-files")
	if err != nil {
		return err
	}

	err = reg.Register(ReadMarkdownFileCommandName, readArgsSchema,
		func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := bridge.DecodeArgs[readArgs](raw)
			if err != nil {
				return nil, err
			}
			var contents string
			if err := s.ReadFile.Execute(ctx, ReadMarkdownFileCommand{Path: args.Path, Result: &contents}); err != nil {
				return nil, err
			}
			return contents, nil
		}, "read-markdown-file")
	if err != nil {
		return err
	}

	err = reg.Register(WriteMarkdownFileCommandName, writeArgsSchema,
		func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := bridge.DecodeArgs[writeArgs](raw)
			if err != nil {
				return nil, err
			}
			return nil, s.WriteFile.Execute(ctx, WriteMarkdownFileCommand{Path: args.Path, Contents: args.Contents})
		}, "write-markdown-file")
	if err != nil {
		return err
	}

	if s.Render == nil {
		return nil
	}
	return reg.Register(RenderMarkdownCommandName, renderArgsSchema,
		func(ctx context.Context, raw json.RawMessage) (any, error) {
			args, err := bridge.DecodeArgs[renderArgs](raw)
			if err != nil {
				return nil, err
			}
			var preview interfaces.Preview
			if err := s.Render.Execute(ctx, RenderMarkdownCommand{Markdown: args.Markdown, Options: args.Options, Result: &preview}); err != nil {
				return nil, err
			}
			return &preview, nil
		}, "render-markdown")
}

// MapBridgeError reports file failures as IO_ERROR carrying the operating
// system's message and defers everything else to bridge.DefaultErrorMapper.
func MapBridgeError(err error) *bridge.ResponseError {
	var ioErr *fileio.IOError
	if errors.As(err, &ioErr) {
		return &bridge.ResponseError{Code: fileio.CodeIOError, Message: ioErr.Error()}
	}
	if errors.Is(err, ErrRenderFeatureDisabled) {
		return &bridge.ResponseError{Code: CodeRenderDisabled, Message: ErrRenderFeatureDisabled.Error()}
	}
	return bridge.DefaultErrorMapper(err)
}
