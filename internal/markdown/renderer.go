package markdown

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/folio-press/folio/internal/logging"
	"github.com/folio-press/folio/pkg/interfaces"
)

// Options and Result are the public rendering contract.
type (
	Options = interfaces.RenderOptions
	Result  = interfaces.RenderResult
)

// Config tunes the goldmark engine. The zero value renders GFM tables with
// linkify and typographer disabled; DefaultConfig mirrors the site defaults.
type Config struct {
	// HighlightStyle names the chroma style. Class-based output only uses it
	// for the generated stylesheet.
	HighlightStyle string
	Typographer    bool
	Linkify        bool
	HardWraps      bool
	Logger         interfaces.Logger
}

// DefaultConfig returns the configuration used by the site build.
func DefaultConfig() Config {
	return Config{
		HighlightStyle: "github",
		Typographer:    true,
		Linkify:        true,
	}
}

// Renderer converts source text into metadata, body and HTML. It is safe for
// concurrent use.
type Renderer struct {
	safe   goldmark.Markdown
	unsafe goldmark.Markdown
	stages []Stage
	style  string
	logger interfaces.Logger
}

var _ interfaces.MarkdownRenderer = (*Renderer)(nil)

// NewRenderer builds a renderer for cfg.
func NewRenderer(cfg Config) *Renderer {
	return &Renderer{
		safe:   newEngine(cfg, false),
		unsafe: newEngine(cfg, true),
		stages: Pipeline(),
		style:  cfg.HighlightStyle,
		logger: logging.OrNoOp(cfg.Logger),
	}
}

func newEngine(cfg Config, allowRaw bool) goldmark.Markdown {
	exts := []goldmark.Extender{extension.Table, extension.Strikethrough, extension.TaskList}
	if cfg.Linkify {
		exts = append(exts, extension.Linkify)
	}
	if cfg.Typographer {
		exts = append(exts, extension.Typographer)
	}

	rendererOptions := []renderer.Option{
		renderer.WithNodeRenderers(util.Prioritized(&codeRenderer{}, 500)),
	}
	if cfg.HardWraps {
		rendererOptions = append(rendererOptions, html.WithHardWraps())
	}
	if allowRaw {
		rendererOptions = append(rendererOptions, html.WithUnsafe())
	}

	return goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithRendererOptions(rendererOptions...),
	)
}

// Render splits metadata from source and renders the body. Any failure is
// reported as a *RenderError.
func (r *Renderer) Render(source string, opts Options) (*Result, error) {
	meta, body, err := SplitFrontMatter([]byte(source))
	if err != nil {
		r.logger.Warn("markdown.render.metadata_failed", "error", err)
		return nil, err
	}

	rendered, err := r.RenderBody(body, opts)
	if err != nil {
		r.logger.Warn("markdown.render.failed", "error", err)
		return nil, err
	}

	return &Result{
		Metadata: meta,
		Body:     string(body),
		HTML:     rendered,
	}, nil
}

// RenderBody renders markdown without metadata handling.
func (r *Renderer) RenderBody(body []byte, opts Options) (out string, err error) {
	engine := r.safe
	if opts.AllowRawMarkup {
		engine = r.unsafe
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			out = ""
			err = renderError(OpRenderHTML, fmt.Errorf("panic: %v", recovered))
		}
	}()

	doc := &Document{
		Root:    engine.Parser().Parse(text.NewReader(body)),
		Source:  body,
		Options: opts,
		Style:   r.style,
	}
	if err := runStages(doc, r.stages); err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := engine.Renderer().Render(&buf, body, doc.Root); err != nil {
		return "", renderError(OpRenderHTML, err)
	}

	r.logger.Debug("markdown.render.completed", "bytes", buf.Len(), "stages", len(r.stages))
	return buf.String(), nil
}

// nodeText concatenates the literal text beneath n.
func nodeText(n ast.Node, source []byte) string {
	var b strings.Builder
	_ = ast.Walk(n, func(child ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch typed := child.(type) {
		case *ast.Text:
			b.Write(typed.Segment.Value(source))
			if typed.SoftLineBreak() || typed.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			if !typed.IsCode() {
				b.Write(typed.Value)
			}
		}
		return ast.WalkContinue, nil
	})
	return b.String()
}
