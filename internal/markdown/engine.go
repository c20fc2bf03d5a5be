// Package markdown adapts goldmark to the neutral document tree.
package markdown

import (
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/renderer/html"
	"github.com/yuin/goldmark/util"
)

// Options controls parsing and rendering.
type Options struct {
	// Safe drops raw HTML and dangerous URLs from the output.
	Safe bool
	// Extensions names goldmark extensions: gfm, footnote, typographer, definition_list.
	Extensions []string
}

// Engine parses and renders Markdown bodies. It is safe for concurrent use.
type Engine struct {
	md goldmark.Markdown
}

var extensionsByName = map[string]goldmark.Extender{
	"gfm":             extension.GFM,
	"footnote":        extension.Footnote,
	"typographer":     extension.Typographer,
	"definition_list": extension.DefinitionList,
}

// New builds an engine. Unknown extension names are ignored; config validation rejects them earlier.
func New(opts Options) *Engine {
	exts := make([]goldmark.Extender, 0, len(opts.Extensions))
	for _, name := range opts.Extensions {
		if ext, ok := extensionsByName[name]; ok {
			exts = append(exts, ext)
		}
	}

	rendererOpts := []renderer.Option{
		renderer.WithNodeRenderers(util.Prioritized(&codeBlockRenderer{}, 100)),
	}
	if !opts.Safe {
		rendererOpts = append(rendererOpts, html.WithUnsafe())
	}

	md := goldmark.New(
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(rendererOpts...),
	)
	return &Engine{md: md}
}
