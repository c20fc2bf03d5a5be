// Package compiler turns a post body into render-ready content.
//
// The body is parsed into the neutral document tree, a fixed set of
// visitors rewrite and collect over it, and the result is rendered to HTML.
// A failure compiles nothing: the error wraps ErrCompilation and the caller
// drops the post.
package compiler

import (
	"fmt"
	"io/fs"
	"sort"

	cerrors "git.home.luguber.info/inful/devlog/internal/content/errors"
	"git.home.luguber.info/inful/devlog/internal/document"
	"git.home.luguber.info/inful/devlog/internal/markdown"
)

// Options configures a Compiler.
type Options struct {
	PublicPath   string // URL segment assets are namespaced under, e.g. "post"
	SiteHost     string // host of the site; links elsewhere are external
	VerifyAssets bool
	Markdown     markdown.Options
}

// Heading is one outline entry.
type Heading struct {
	Level  int    `json:"level"`
	Text   string `json:"text"`
	Anchor string `json:"anchor"`
}

// Content is a compiled body.
type Content struct {
	HTML          string         `json:"html"`
	Tree          *document.Node `json:"-"`
	Outline       []Heading      `json:"outline"`
	Languages     []string       `json:"languages"`
	Images        []string       `json:"images"`
	Assets        []string       `json:"assets"` // post-relative paths of referenced local files
	ExternalLinks []string       `json:"external_links"`
}

// Compiler compiles bodies. It holds no per-document state and is safe for
// concurrent use.
type Compiler struct {
	engine *markdown.Engine
	opts   Options
}

// New creates a Compiler.
func New(opts Options) *Compiler {
	return &Compiler{engine: markdown.New(opts.Markdown), opts: opts}
}

// Compile compiles body for post id. assets is the post's asset directory and
// may be nil when asset verification is off.
func (c *Compiler) Compile(id string, body []byte, assets fs.FS) (*Content, error) {
	doc := c.engine.Parse(body)
	if err := doc.CheckFences(); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", cerrors.ErrCompilation, id, err)
	}
	tree := doc.Tree()

	resolver := NewAssetResolver(c.opts.PublicPath, id, assets, c.opts.VerifyAssets)
	marker := NewLinkMarker(c.opts.SiteHost)
	tagger := &CodeTagger{}
	outline := &OutlineCollector{}
	if err := document.WalkAll(tree, resolver, marker, tagger, outline); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", cerrors.ErrCompilation, id, err)
	}

	html, err := doc.Render()
	if err != nil {
		return nil, fmt.Errorf("%w: %s: render: %w", cerrors.ErrCompilation, id, err)
	}

	return &Content{
		HTML:          string(html),
		Tree:          tree,
		Outline:       outline.Headings,
		Languages:     tagger.Languages(),
		Images:        resolver.Images,
		Assets:        resolver.Assets,
		ExternalLinks: marker.External,
	}, nil
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for k := range set {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
