// Package document defines a markup-neutral tree for compiled post bodies.
//
// Dialect adapters (see internal/markdown) build the tree from their own AST
// and write visitor changes back before rendering, so the compiler's passes
// never depend on a particular Markdown library.
package document

import "strings"

// Kind identifies what a Node represents.
type Kind int

const (
	KindContainer Kind = iota
	KindText
	KindHeading
	KindCodeBlock
	KindImage
	KindLink
)

func (k Kind) String() string {
	switch k {
	case KindContainer:
		return "container"
	case KindText:
		return "text"
	case KindHeading:
		return "heading"
	case KindCodeBlock:
		return "code-block"
	case KindImage:
		return "image"
	case KindLink:
		return "link"
	default:
		return "unknown"
	}
}

// Node is one element of the tree. Which fields are meaningful depends on Kind.
type Node struct {
	Kind     Kind
	Children []*Node

	// Text is the literal text of a text node, the plain text of a heading,
	// or the verbatim content of a code block.
	Text string

	Level  int    // heading level 1-6
	Anchor string // heading id

	Info     string // raw code fence info string
	Language string // code block language tag

	Destination string // link or image target
	Title       string
	Alt         string // image alternative text

	// ReadOnly marks destinations the adapter cannot write back (autolinks).
	ReadOnly bool
	External bool

	// Attributes are rendered onto the element (links and images).
	Attributes map[string]string

	// Line is the 1-based source line where known, 0 otherwise.
	Line int
}

// NewNode returns a node of kind k.
func NewNode(k Kind) *Node {
	return &Node{Kind: k}
}

// Append adds children and returns n.
func (n *Node) Append(children ...*Node) *Node {
	n.Children = append(n.Children, children...)
	return n
}

// SetAttribute sets a rendered attribute.
func (n *Node) SetAttribute(name, value string) {
	if n.Attributes == nil {
		n.Attributes = make(map[string]string)
	}
	n.Attributes[name] = value
}

// PlainText concatenates the text of n and its descendants.
func (n *Node) PlainText() string {
	if n.Kind == KindText || n.Kind == KindCodeBlock {
		return n.Text
	}
	var b strings.Builder
	for _, c := range n.Children {
		b.WriteString(c.PlainText())
	}
	return b.String()
}

// Find returns every node of kind k in document order, n included.
func (n *Node) Find(k Kind) []*Node {
	var out []*Node
	_ = Walk(n, VisitorFunc(func(c *Node) error {
		if c.Kind == k {
			out = append(out, c)
		}
		return nil
	}))
	return out
}
