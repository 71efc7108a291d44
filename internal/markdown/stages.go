package markdown

import (
	"bytes"
	"fmt"
	"regexp"

	"github.com/yuin/goldmark/ast"

	"github.com/folio-press/folio/internal/slugs"
)

// Document is the intermediate tree handed to every stage.
type Document struct {
	Root    ast.Node
	Source  []byte
	Options Options
	Style   string
}

// Stage transforms the document tree in place.
type Stage struct {
	Name  string
	Apply func(doc *Document) error
}

// Stage names in pipeline order.
const (
	StageSanitize       = "sanitize"
	StageAnchorHeadings = "anchor-headings"
	StageExternalLinks  = "tag-external-links"
	StageLazyImages     = "lazy-image-attributes"
	StageHighlightCode  = "highlight-code"
)

// Pipeline returns the stages in the order they must run.
func Pipeline() []Stage {
	return []Stage{
		{Name: StageSanitize, Apply: sanitize},
		{Name: StageAnchorHeadings, Apply: anchorHeadings},
		{Name: StageExternalLinks, Apply: tagExternalLinks},
		{Name: StageLazyImages, Apply: lazyImages},
		{Name: StageHighlightCode, Apply: highlightCode},
	}
}

func runStages(doc *Document, stages []Stage) error {
	for _, stage := range stages {
		if err := runStage(doc, stage); err != nil {
			return err
		}
	}
	return nil
}

func runStage(doc *Document, stage Stage) (err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = &RenderError{Op: stage.Name, Cause: fmt.Errorf("panic: %v", recovered)}
		}
	}()
	if err := stage.Apply(doc); err != nil {
		return &RenderError{Op: stage.Name, Cause: err}
	}
	return nil
}

// collect gathers every node accepted by match. Stages mutate the tree only
// after walking it.
func collect(root ast.Node, match func(ast.Node) bool) ([]ast.Node, error) {
	var nodes []ast.Node
	err := ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if entering && match(n) {
			nodes = append(nodes, n)
		}
		return ast.WalkContinue, nil
	})
	return nodes, err
}

func setAttr(n ast.Node, name, value string) {
	n.SetAttribute([]byte(name), []byte(value))
}

// sanitize turns embedded raw markup into literal text unless the caller
// opted into raw output.
func sanitize(doc *Document) error {
	if doc.Options.AllowRawMarkup {
		return nil
	}
	nodes, err := collect(doc.Root, func(n ast.Node) bool {
		switch n.Kind() {
		case ast.KindRawHTML, ast.KindHTMLBlock:
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	for _, n := range nodes {
		parent := n.Parent()
		if parent == nil {
			continue
		}
		switch typed := n.(type) {
		case *ast.RawHTML:
			var raw bytes.Buffer
			for i := 0; i < typed.Segments.Len(); i++ {
				segment := typed.Segments.At(i)
				raw.Write(segment.Value(doc.Source))
			}
			parent.ReplaceChild(parent, n, ast.NewString(raw.Bytes()))
		case *ast.HTMLBlock:
			var raw bytes.Buffer
			lines := typed.Lines()
			for i := 0; i < lines.Len(); i++ {
				segment := lines.At(i)
				raw.Write(segment.Value(doc.Source))
			}
			if typed.HasClosure() {
				raw.Write(typed.ClosureLine.Value(doc.Source))
			}
			paragraph := ast.NewParagraph()
			paragraph.AppendChild(paragraph, ast.NewString(bytes.TrimRight(raw.Bytes(), "\n")))
			parent.ReplaceChild(parent, n, paragraph)
		}
	}
	return nil
}

// anchorHeadings assigns a slug id to every heading and appends a permalink.
func anchorHeadings(doc *Document) error {
	nodes, err := collect(doc.Root, func(n ast.Node) bool {
		return n.Kind() == ast.KindHeading
	})
	if err != nil {
		return err
	}

	ids := slugs.NewUnique()
	for _, n := range nodes {
		base := slugs.Make(nodeText(n, doc.Source))
		if base == "" {
			base = "section"
		}
		id := ids.Next(base)
		setAttr(n, "id", id)

		permalink := ast.NewLink()
		permalink.Destination = []byte("#" + id)
		setAttr(permalink, "class", "header-anchor")
		permalink.AppendChild(permalink, ast.NewString([]byte("#")))
		n.AppendChild(n, ast.NewString([]byte(" ")))
		n.AppendChild(n, permalink)
	}
	return nil
}

var httpURL = regexp.MustCompile(`(?i)^(?:https?:)?//`)

// tagExternalLinks opens absolute links in a new context without leaking the
// opener or the referrer.
func tagExternalLinks(doc *Document) error {
	nodes, err := collect(doc.Root, func(n ast.Node) bool {
		switch n.Kind() {
		case ast.KindLink, ast.KindAutoLink:
			return true
		}
		return false
	})
	if err != nil {
		return err
	}

	for _, n := range nodes {
		var destination []byte
		switch typed := n.(type) {
		case *ast.Link:
			destination = typed.Destination
		case *ast.AutoLink:
			if typed.AutoLinkType != ast.AutoLinkURL {
				continue
			}
			destination = typed.URL(doc.Source)
		}
		if !httpURL.Match(bytes.TrimSpace(destination)) {
			continue
		}
		setAttr(n, "target", "_blank")
		setAttr(n, "rel", "noopener noreferrer")
	}
	return nil
}

// lazyImages adds loading hints to every image and a referrer policy to
// remote ones.
func lazyImages(doc *Document) error {
	nodes, err := collect(doc.Root, func(n ast.Node) bool {
		return n.Kind() == ast.KindImage
	})
	if err != nil {
		return err
	}

	for _, n := range nodes {
		image := n.(*ast.Image)
		setAttr(image, "loading", "lazy")
		setAttr(image, "decoding", "async")
		if httpURL.Match(bytes.TrimSpace(image.Destination)) {
			setAttr(image, "referrerpolicy", "no-referrer")
		}
	}
	return nil
}
