package markdown

import (
	"errors"

	goerrors "github.com/goliatone/go-errors"
)

// CodeRenderFailed is the text code carried by preview failures.
const CodeRenderFailed = "RENDER_FAILED"

// ErrRendererUnavailable is returned when no parser has been configured.
var ErrRendererUnavailable = errors.New("markdown: renderer not configured")

func renderError(err error, message string) error {
	return goerrors.Wrap(err, goerrors.CategoryBadInput, message).
		WithTextCode(CodeRenderFailed)
}
