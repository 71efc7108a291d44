package markdown

import (
	"errors"
	"fmt"
)

// ErrRender matches every RenderError via errors.Is.
var ErrRender = errors.New("markdown render failed")

// Operation names reported by RenderError.
const (
	OpParseMetadata = "parse-metadata"
	OpParseBody     = "parse-body"
	OpRenderHTML    = "render-html"
)

// RenderError wraps a failure raised while splitting metadata, running a
// stage, or writing HTML. Op names the failing operation.
type RenderError struct {
	Op    string
	Cause error
}

func (e *RenderError) Error() string {
	if e.Cause == nil {
		return fmt.Sprintf("markdown %s failed", e.Op)
	}
	return fmt.Sprintf("markdown %s: %v", e.Op, e.Cause)
}

func (e *RenderError) Is(target error) bool {
	return target == ErrRender
}

func (e *RenderError) Unwrap() error {
	return e.Cause
}

func renderError(op string, cause error) error {
	var existing *RenderError
	if errors.As(cause, &existing) {
		return existing
	}
	return &RenderError{Op: op, Cause: cause}
}
