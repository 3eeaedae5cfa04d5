package interfaces

import (
	"context"
	"time"
)

// MarkdownParser converts raw Markdown bytes into HTML.
type MarkdownParser interface {
	// Parse converts Markdown into HTML using the parser's default settings.
	Parse(markdown []byte) ([]byte, error)
	// ParseWithOptions converts Markdown into HTML using the supplied overrides.
	ParseWithOptions(markdown []byte, opts ParseOptions) ([]byte, error)
}

// ParseOptions customises Markdown parsing behaviour. Field names stay
// readable so the bridge can accept them straight from the front-end.
type ParseOptions struct {
	Extensions []string `json:"extensions,omitempty"`
	Sanitize   bool     `json:"sanitize,omitempty"`
	HardWraps  bool     `json:"hard_wraps,omitempty"`
	SafeMode   bool     `json:"safe_mode,omitempty"`
}

// MarkdownRenderer produces the editor preview for a Markdown buffer.
type MarkdownRenderer interface {
	RenderPreview(ctx context.Context, markdown []byte, opts ParseOptions) (*Preview, error)
}

// Preview is the rendered form of an in-memory Markdown buffer.
type Preview struct {
	Title       string      `json:"title"`
	HTML        string      `json:"html"`
	FrontMatter FrontMatter `json:"front_matter"`
	Body        []byte      `json:"-"`
}

// FrontMatter models the metadata block at the top of a Markdown document.
// Unknown keys land in Custom; Raw keeps every key that was present.
type FrontMatter struct {
	Title   string         `yaml:"title" json:"title,omitempty"`
	Summary string         `yaml:"summary" json:"summary,omitempty"`
	Tags    []string       `yaml:"tags" json:"tags,omitempty"`
	Author  string         `yaml:"author" json:"author,omitempty"`
	Date    time.Time      `yaml:"date" json:"date,omitzero"`
	Draft   bool           `yaml:"draft" json:"draft,omitempty"`
	Custom  map[string]any `yaml:",inline" json:"custom,omitempty"`
	Raw     map[string]any `yaml:"-" json:"raw,omitempty"`
}
