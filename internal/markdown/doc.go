package markdown

import (
	"bytes"
	"sort"
	"strings"

	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"

	"git.home.luguber.info/inful/devlog/internal/document"
)

// Doc is a parsed body: the goldmark AST plus the neutral tree bound to it.
type Doc struct {
	engine   *Engine
	source   []byte
	root     ast.Node
	tree     *document.Node
	bindings map[*document.Node]ast.Node
	lineAt   []int // byte offset of each line start
}

// Parse parses body and builds the neutral tree.
func (e *Engine) Parse(body []byte) *Doc {
	d := &Doc{
		engine:   e,
		source:   body,
		root:     e.md.Parser().Parse(text.NewReader(body)),
		bindings: make(map[*document.Node]ast.Node),
		lineAt:   lineOffsets(body),
	}
	d.tree = d.build(d.root, 0)
	return d
}

// Tree returns the neutral tree. Visitors may modify destinations,
// attributes and code block languages; Render writes them back.
func (d *Doc) Tree() *document.Node { return d.tree }

// Render syncs the neutral tree into the goldmark AST and renders HTML.
func (d *Doc) Render() ([]byte, error) {
	d.sync()
	var buf bytes.Buffer
	if err := d.engine.md.Renderer().Render(&buf, d.source, d.root); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func (d *Doc) build(n ast.Node, line int) *document.Node {
	if l := d.blockLine(n); l > 0 {
		line = l
	}

	var out *document.Node
	switch v := n.(type) {
	case *ast.Text:
		t := string(v.Segment.Value(d.source))
		if v.SoftLineBreak() {
			t += " "
		}
		return &document.Node{Kind: document.KindText, Text: t, Line: line}
	case *ast.String:
		return &document.Node{Kind: document.KindText, Text: string(v.Value), Line: line}
	case *ast.Heading:
		out = &document.Node{Kind: document.KindHeading, Level: v.Level}
		if id, ok := v.AttributeString("id"); ok {
			if b, ok := id.([]byte); ok {
				out.Anchor = string(b)
			}
		}
	case *ast.FencedCodeBlock:
		out = &document.Node{Kind: document.KindCodeBlock, Text: d.linesText(v)}
		if v.Info != nil {
			out.Info = strings.TrimSpace(string(v.Info.Segment.Value(d.source)))
		}
		if line > 1 {
			line-- // the fence line precedes the first content line
		}
		out.Line = line
		d.bindings[out] = n
		return out
	case *ast.CodeBlock:
		out = &document.Node{Kind: document.KindCodeBlock, Text: d.linesText(v), Line: line}
		d.bindings[out] = n
		return out
	case *ast.Image:
		out = &document.Node{
			Kind:        document.KindImage,
			Destination: string(v.Destination),
			Title:       string(v.Title),
		}
	case *ast.Link:
		out = &document.Node{
			Kind:        document.KindLink,
			Destination: string(v.Destination),
			Title:       string(v.Title),
		}
	case *ast.AutoLink:
		out = &document.Node{
			Kind:        document.KindLink,
			Destination: string(v.URL(d.source)),
			ReadOnly:    true,
		}
		out.Append(&document.Node{Kind: document.KindText, Text: string(v.Label(d.source)), Line: line})
	default:
		out = &document.Node{Kind: document.KindContainer}
	}

	out.Line = line
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		out.Append(d.build(c, line))
	}
	switch out.Kind {
	case document.KindHeading:
		out.Text = out.PlainText()
	case document.KindImage:
		out.Alt = out.PlainText()
	}
	if out.Kind != document.KindContainer {
		d.bindings[out] = n
	}
	return out
}

// sync writes visitor changes back into the goldmark nodes.
func (d *Doc) sync() {
	for node, gm := range d.bindings {
		switch v := gm.(type) {
		case *ast.Image:
			v.Destination = []byte(node.Destination)
		case *ast.Link:
			v.Destination = []byte(node.Destination)
		case *ast.FencedCodeBlock, *ast.CodeBlock:
			if node.Language != "" {
				gm.SetAttributeString(LanguageAttribute, []byte(node.Language))
			}
			continue
		}
		names := make([]string, 0, len(node.Attributes))
		for name := range node.Attributes {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			gm.SetAttributeString(name, []byte(node.Attributes[name]))
		}
	}
}

func (d *Doc) linesText(n ast.Node) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(d.source))
	}
	return b.String()
}

// blockLine returns the 1-based line of a block node's first content line.
func (d *Doc) blockLine(n ast.Node) int {
	if n.Type() != ast.TypeBlock {
		return 0
	}
	lines := n.Lines()
	if lines == nil || lines.Len() == 0 {
		return 0
	}
	return d.lineOf(lines.At(0).Start)
}

func (d *Doc) lineOf(offset int) int {
	lo, hi := 0, len(d.lineAt)
	for lo < hi {
		mid := (lo + hi) / 2
		if d.lineAt[mid] <= offset {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	return lo
}

func lineOffsets(src []byte) []int {
	offsets := []int{0}
	for i, b := range src {
		if b == '\n' {
			offsets = append(offsets, i+1)
		}
	}
	return offsets
}
