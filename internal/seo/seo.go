// Package seo enumerates routes, per-post metadata, the sitemap and the
// robots policy from an index. It never touches compiled bodies.
package seo

import (
	"net/url"
	"strings"
	"time"

	"git.home.luguber.info/inful/devlog/internal/index"
)

// Rule is the sitemap policy for one kind of entry.
type Rule struct {
	ChangeFrequency string
	Priority        float64
}

// Options configures an Adapter.
type Options struct {
	BaseURL    string // absolute site URL without trailing slash
	PublicPath string // listing route and post prefix, e.g. "post"
	SiteName   string
	Home       Rule
	Listing    Rule
	Post       Rule
}

// Adapter exposes static enumeration over one index snapshot.
type Adapter struct {
	idx  *index.Index
	opts Options
}

// New creates an adapter over idx.
func New(idx *index.Index, opts Options) *Adapter {
	opts.BaseURL = strings.TrimRight(strings.TrimSpace(opts.BaseURL), "/")
	opts.PublicPath = strings.Trim(opts.PublicPath, "/")
	return &Adapter{idx: idx, opts: opts}
}

// ListRoutes returns every post id, ascending, for pre-render enumeration.
func (a *Adapter) ListRoutes() []string {
	return a.idx.IDs()
}

// OpenGraph is the subset of og: properties emitted per post.
type OpenGraph struct {
	Type          string   `json:"type"`
	Title         string   `json:"title"`
	Description   string   `json:"description"`
	URL           string   `json:"url"`
	SiteName      string   `json:"site_name,omitempty"`
	PublishedTime string   `json:"published_time"`
	Tags          []string `json:"tags,omitempty"`
}

// Record is the page metadata of one post.
type Record struct {
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Keywords    []string  `json:"keywords"`
	Canonical   string    `json:"canonical"`
	OpenGraph   OpenGraph `json:"open_graph"`
}

// MetadataFor derives the record of post id from its frontmatter.
func (a *Adapter) MetadataFor(id string) (Record, bool) {
	p, ok := a.idx.Get(id)
	if !ok {
		return Record{}, false
	}
	fm := p.Frontmatter
	keywords := append([]string{}, fm.Tags...)
	canonical := a.PostURL(p.ID)
	return Record{
		Title:       fm.Title,
		Description: fm.Description,
		Keywords:    keywords,
		Canonical:   canonical,
		OpenGraph: OpenGraph{
			Type:          "article",
			Title:         fm.Title,
			Description:   fm.Description,
			URL:           canonical,
			SiteName:      a.opts.SiteName,
			PublishedTime: fm.Date.Format(time.RFC3339),
			Tags:          keywords,
		},
	}, true
}

// HomeURL is the site root.
func (a *Adapter) HomeURL() string { return a.opts.BaseURL }

// ListingURL is the paged post list.
func (a *Adapter) ListingURL() string {
	if a.opts.PublicPath == "" {
		return a.opts.BaseURL
	}
	return a.opts.BaseURL + "/" + a.opts.PublicPath
}

// PostURL is the canonical URL of post id.
func (a *Adapter) PostURL(id string) string {
	return a.ListingURL() + "/" + url.PathEscape(id)
}
