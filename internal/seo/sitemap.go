package seo

import (
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

// SitemapNamespace is the sitemaps.org 0.9 schema.
const SitemapNamespace = "http://www.sitemaps.org/schemas/sitemap/0.9"

// SitemapEntry is one <url> of the sitemap.
type SitemapEntry struct {
	URL             string
	LastModified    time.Time
	ChangeFrequency string
	Priority        float64
}

// SitemapEntries lists the home page and listing (modified now), then every
// post newest first with its frontmatter date.
func (a *Adapter) SitemapEntries(now time.Time) []SitemapEntry {
	posts := a.idx.OrderedByDate()
	entries := make([]SitemapEntry, 0, len(posts)+2)
	entries = append(entries,
		SitemapEntry{URL: a.HomeURL(), LastModified: now, ChangeFrequency: a.opts.Home.ChangeFrequency, Priority: a.opts.Home.Priority},
		SitemapEntry{URL: a.ListingURL(), LastModified: now, ChangeFrequency: a.opts.Listing.ChangeFrequency, Priority: a.opts.Listing.Priority},
	)
	for _, p := range posts {
		entries = append(entries, SitemapEntry{
			URL:             a.PostURL(p.ID),
			LastModified:    p.Frontmatter.Date,
			ChangeFrequency: a.opts.Post.ChangeFrequency,
			Priority:        a.opts.Post.Priority,
		})
	}
	return entries
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	LastMod    string `xml:"lastmod,omitempty"`
	ChangeFreq string `xml:"changefreq,omitempty"`
	Priority   string `xml:"priority,omitempty"`
}

// WriteSitemap encodes entries as a sitemaps.org document.
func WriteSitemap(w io.Writer, entries []SitemapEntry) error {
	set := xmlURLSet{XMLNS: SitemapNamespace, URLs: make([]xmlURL, 0, len(entries))}
	for _, e := range entries {
		u := xmlURL{Loc: e.URL, ChangeFreq: e.ChangeFrequency}
		if !e.LastModified.IsZero() {
			u.LastMod = e.LastModified.UTC().Format(time.RFC3339)
		}
		if e.Priority > 0 {
			u.Priority = strconv.FormatFloat(e.Priority, 'f', 1, 64)
		}
		set.URLs = append(set.URLs, u)
	}

	if _, err := io.WriteString(w, xml.Header); err != nil {
		return err
	}
	enc := xml.NewEncoder(w)
	enc.Indent("", "  ")
	if err := enc.Encode(set); err != nil {
		return fmt.Errorf("encode sitemap: %w", err)
	}
	_, err := io.WriteString(w, "\n")
	return err
}

// Robots returns the robots.txt policy: everything allowed, sitemap advertised.
func Robots(baseURL string) string {
	return fmt.Sprintf("User-agent: *\nAllow: /\n\nSitemap: %s/sitemap.xml\n", strings.TrimRight(strings.TrimSpace(baseURL), "/"))
}

// Robots returns the robots.txt policy of the adapter's site.
func (a *Adapter) Robots() string { return Robots(a.opts.BaseURL) }
