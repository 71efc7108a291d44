package interfaces

// RenderOptions customises Markdown rendering per call.
type RenderOptions struct {
	// AllowRawMarkup keeps embedded HTML in the output. Raw markup is escaped
	// when false, which is the default.
	AllowRawMarkup bool
}

// RenderResult carries the split metadata block, the Markdown body and the
// rendered HTML for a single source document.
type RenderResult struct {
	Metadata map[string]any
	Body     string
	HTML     string
}

// MarkdownRenderer converts a source document with an optional leading
// metadata block into sanitized HTML.
type MarkdownRenderer interface {
	Render(source string, opts RenderOptions) (*RenderResult, error)
}
