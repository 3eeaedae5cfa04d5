package markdown

import (
	"context"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/goliatone/go-mdstudio/internal/logging"
	"github.com/goliatone/go-mdstudio/pkg/interfaces"
)

// Renderer produces previews for in-memory Markdown buffers.
type Renderer struct {
	parser interfaces.MarkdownParser
	logger interfaces.Logger
	blocks parser.Parser
}

var _ interfaces.MarkdownRenderer = (*Renderer)(nil)

// RendererOption customises a Renderer.
type RendererOption func(*Renderer)

// WithRendererLogger sets the logger used for render diagnostics.
func WithRendererLogger(logger interfaces.Logger) RendererOption {
	return func(r *Renderer) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// NewRenderer wraps parser. A nil parser falls back to a GoldmarkParser
// using the default extension set.
func NewRenderer(markdownParser interfaces.MarkdownParser, opts ...RendererOption) *Renderer {
	if markdownParser == nil {
		markdownParser = NewGoldmarkParser(interfaces.ParseOptions{})
	}
	r := &Renderer{
		parser: markdownParser,
		logger: logging.NoOp(),
		blocks: parser.NewParser(
			parser.WithBlockParsers(parser.DefaultBlockParsers()...),
			parser.WithInlineParsers(parser.DefaultInlineParsers()...),
			parser.WithParagraphTransformers(parser.DefaultParagraphTransformers()...),
		),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(r)
		}
	}
	return r
}

// RenderPreview strips front matter from markdown, renders the body and
// resolves the preview title. Zero-valued opts use the parser defaults.
func (r *Renderer) RenderPreview(ctx context.Context, markdown []byte, opts interfaces.ParseOptions) (*interfaces.Preview, error) {
	if r == nil || r.parser == nil {
		return nil, renderError(ErrRendererUnavailable, "markdown renderer unavailable")
	}
	if ctx != nil {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
	}

	meta, body, err := ParseFrontMatter(markdown)
	if err != nil {
		r.logger.Warn("markdown.render.frontmatter_failed", "error", err)
		return nil, renderError(err, "markdown front matter is invalid")
	}

	var html []byte
	if isZeroOptions(opts) {
		html, err = r.parser.Parse(body)
	} else {
		html, err = r.parser.ParseWithOptions(body, opts)
	}
	if err != nil {
		r.logger.Warn("markdown.render.failed", "error", err)
		return nil, renderError(err, "markdown render failed")
	}

	title := strings.TrimSpace(meta.Title)
	if title == "" {
		title = r.FirstHeading(body)
	}

	r.logger.Debug("markdown.render.completed", "bytes", len(markdown), "html_bytes", len(html))
	return &interfaces.Preview{
		Title:       title,
		HTML:        string(html),
		FrontMatter: meta,
		Body:        body,
	}, nil
}

// FirstHeading returns the plain text of the first level-one heading in
// body, or an empty string when there is none.
func (r *Renderer) FirstHeading(body []byte) string {
	doc := r.blocks.Parse(text.NewReader(body))

	var title string
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		heading, ok := n.(*ast.Heading)
		if !ok {
			return ast.WalkContinue, nil
		}
		if heading.Level != 1 {
			return ast.WalkSkipChildren, nil
		}
		title = strings.TrimSpace(inlineText(heading, body))
		return ast.WalkStop, nil
	})
	return title
}

func inlineText(node ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch v := n.(type) {
		case *ast.Text:
			b.Write(v.Segment.Value(source))
			if v.SoftLineBreak() || v.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(v.Value)
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}

func isZeroOptions(opts interfaces.ParseOptions) bool {
	return len(opts.Extensions) == 0 && !opts.Sanitize && !opts.HardWraps && !opts.SafeMode
}
