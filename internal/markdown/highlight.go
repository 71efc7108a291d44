package markdown

import (
	"bytes"
	"html"
	"io"
	"strings"

	"github.com/alecthomas/chroma/v2"
	chromahtml "github.com/alecthomas/chroma/v2/formatters/html"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// KindHighlightedCode identifies code blocks already rendered by highlightCode.
var KindHighlightedCode = ast.NewNodeKind("HighlightedCode")

// HighlightedCode replaces a fenced code block once it has been highlighted.
type HighlightedCode struct {
	ast.BaseBlock
	Language string
	HTML     []byte
}

func (n *HighlightedCode) Kind() ast.NodeKind {
	return KindHighlightedCode
}

func (n *HighlightedCode) IsRaw() bool {
	return true
}

func (n *HighlightedCode) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Language": n.Language}, nil)
}

// highlightCode replaces fenced code blocks with highlighted markup. Blocks
// with an unknown tag fall back to content analysis; blocks no lexer claims
// are emitted escaped.
func highlightCode(doc *Document) error {
	nodes, err := collect(doc.Root, func(n ast.Node) bool {
		return n.Kind() == ast.KindFencedCodeBlock
	})
	if err != nil {
		return err
	}

	formatter := chromahtml.New(chromahtml.WithClasses(true), chromahtml.PreventSurroundingPre(true))
	style := styles.Get(doc.Style)

	for _, n := range nodes {
		block := n.(*ast.FencedCodeBlock)

		var code bytes.Buffer
		lines := block.Lines()
		for i := 0; i < lines.Len(); i++ {
			segment := lines.At(i)
			code.Write(segment.Value(doc.Source))
		}

		tag := strings.ToLower(strings.TrimSpace(string(block.Language(doc.Source))))
		lexer, name := resolveLexer(tag, code.String())

		var out bytes.Buffer
		out.WriteString(`<pre class="chroma"><code class="hljs`)
		if name != "" {
			out.WriteString(" language-")
			out.WriteString(html.EscapeString(name))
		}
		out.WriteString(`">`)

		if lexer == nil {
			out.WriteString(html.EscapeString(code.String()))
		} else {
			iterator, err := chroma.Coalesce(lexer).Tokenise(nil, code.String())
			if err != nil {
				return err
			}
			if err := formatter.Format(&out, style, iterator); err != nil {
				return err
			}
		}
		out.WriteString("</code></pre>\n")

		replacement := &HighlightedCode{Language: name, HTML: out.Bytes()}
		parent := block.Parent()
		parent.ReplaceChild(parent, block, replacement)
	}
	return nil
}

// resolveLexer returns the lexer for tag, or the best guess for code when tag
// is empty or unknown. The returned name is the tag when it resolved, else the
// guessed lexer's primary alias.
func resolveLexer(tag, code string) (chroma.Lexer, string) {
	if tag != "" {
		if lexer := lexers.Get(tag); lexer != nil {
			return lexer, tag
		}
	}
	lexer := lexers.Analyse(code)
	if lexer == nil {
		return nil, tag
	}
	config := lexer.Config()
	if config == nil {
		return lexer, tag
	}
	if len(config.Aliases) > 0 {
		return lexer, config.Aliases[0]
	}
	return lexer, strings.ToLower(config.Name)
}

// codeRenderer writes HighlightedCode nodes verbatim.
type codeRenderer struct{}

func (r *codeRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindHighlightedCode, r.render)
}

func (r *codeRenderer) render(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.Write(n.(*HighlightedCode).HTML)
	return ast.WalkSkipChildren, nil
}

// WriteStylesheet writes the CSS for the configured highlight style. The
// rendered code blocks only carry class names.
func (r *Renderer) WriteStylesheet(w io.Writer) error {
	formatter := chromahtml.New(chromahtml.WithClasses(true))
	return formatter.WriteCSS(w, styles.Get(r.style))
}
