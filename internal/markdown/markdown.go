// Package markdown renders note content to HTML for previews.
package markdown

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"
)

// Renderer converts note markdown to HTML. Raw HTML in notes is omitted.
type Renderer struct {
	md goldmark.Markdown
}

// New returns a Renderer with GitHub-flavoured extensions and [[Title]] links.
func New() *Renderer {
	return &Renderer{
		md: goldmark.New(
			goldmark.WithExtensions(extension.GFM, WikiLinks),
			goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		),
	}
}

// Render returns the HTML for content.
func (r *Renderer) Render(content string) (string, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(content), &buf); err != nil {
		return "", fmt.Errorf("failed to render markdown: %w", err)
	}
	return buf.String(), nil
}

// KindWikiLink is the node kind for [[Title]] references.
var KindWikiLink = ast.NewNodeKind("WikiLink")

// WikiLink is an inline reference to another note by title.
type WikiLink struct {
	ast.BaseInline
	Title []byte
}

// Kind implements ast.Node.
func (n *WikiLink) Kind() ast.NodeKind { return KindWikiLink }

// Dump implements ast.Node.
func (n *WikiLink) Dump(source []byte, level int) {
	ast.DumpHelper(n, source, level, map[string]string{"Title": string(n.Title)}, nil)
}

type wikiLinkParser struct{}

func (p *wikiLinkParser) Trigger() []byte { return []byte{'['} }

func (p *wikiLinkParser) Parse(parent ast.Node, block text.Reader, pc parser.Context) ast.Node {
	line, _ := block.PeekLine()
	if len(line) < 5 || line[1] != '[' {
		return nil
	}
	end := bytes.Index(line[2:], []byte("]]"))
	if end <= 0 {
		return nil
	}
	title := bytes.TrimSpace(line[2 : 2+end])
	if len(title) == 0 || bytes.ContainsAny(title, "[]") {
		return nil
	}
	block.Advance(end + 4)
	return &WikiLink{Title: append([]byte(nil), title...)}
}

type wikiLinkRenderer struct{}

func (r *wikiLinkRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(KindWikiLink, r.render)
}

func (r *wikiLinkRenderer) render(w util.BufWriter, _ []byte, n ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	_, _ = w.WriteString(`<span class="wikilink">`)
	_, _ = w.Write(util.EscapeHTML(n.(*WikiLink).Title))
	_, _ = w.WriteString("</span>")
	return ast.WalkSkipChildren, nil
}

type wikiLinks struct{}

// WikiLinks is a goldmark extension for [[Title]] references. It runs ahead
// of the standard link parser.
var WikiLinks goldmark.Extender = &wikiLinks{}

func (e *wikiLinks) Extend(m goldmark.Markdown) {
	m.Parser().AddOptions(parser.WithInlineParsers(util.Prioritized(&wikiLinkParser{}, 199)))
	m.Renderer().AddOptions(renderer.WithNodeRenderers(util.Prioritized(&wikiLinkRenderer{}, 199)))
}
