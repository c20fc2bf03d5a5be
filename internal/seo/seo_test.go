package seo

import (
	"bytes"
	"encoding/xml"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/devlog/internal/frontmatter"
	"git.home.luguber.info/inful/devlog/internal/index"
)

func fixture(t *testing.T) *Adapter {
	t.Helper()
	posts := []*index.Post{
		{ID: "older", Frontmatter: frontmatter.Meta{Title: "Older", Description: "first", Date: time.Date(2023, 5, 1, 0, 0, 0, 0, time.UTC), Tags: []string{"go"}}},
		{ID: "newer", Frontmatter: frontmatter.Meta{Title: "Newer", Description: "second", Date: time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), Tags: []string{"go", "web"}}},
		{ID: "a b", Frontmatter: frontmatter.Meta{Title: "Spaced", Description: "third", Date: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC), Tags: []string{}}},
	}
	idx, err := index.Build(posts)
	require.NoError(t, err)
	return New(idx, Options{
		BaseURL:    "https://blog.example.com/",
		PublicPath: "/post/",
		SiteName:   "Blog",
		Home:       Rule{ChangeFrequency: "monthly", Priority: 0.8},
		Listing:    Rule{ChangeFrequency: "weekly", Priority: 1.0},
		Post:       Rule{ChangeFrequency: "weekly"},
	})
}

func TestListRoutesMatchesIndex(t *testing.T) {
	a := fixture(t)
	routes := a.ListRoutes()
	require.Equal(t, []string{"a b", "newer", "older"}, routes)
	for _, id := range routes {
		_, ok := a.idx.Get(id)
		require.True(t, ok)
	}
}

func TestMetadataFor(t *testing.T) {
	a := fixture(t)

	rec, ok := a.MetadataFor("newer")
	require.True(t, ok)
	require.Equal(t, "Newer", rec.Title)
	require.Equal(t, "second", rec.Description)
	require.Equal(t, []string{"go", "web"}, rec.Keywords)
	require.Equal(t, "https://blog.example.com/post/newer", rec.Canonical)
	require.Equal(t, "article", rec.OpenGraph.Type)
	require.Equal(t, "2024-02-03T00:00:00Z", rec.OpenGraph.PublishedTime)
	require.Equal(t, "Blog", rec.OpenGraph.SiteName)

	spaced, ok := a.MetadataFor("a b")
	require.True(t, ok)
	require.Equal(t, "https://blog.example.com/post/a%20b", spaced.Canonical)
	require.Empty(t, spaced.Keywords)

	_, ok = a.MetadataFor("missing")
	require.False(t, ok)
}

func TestSitemapEntries(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	entries := fixture(t).SitemapEntries(now)
	require.Len(t, entries, 5)

	require.Equal(t, SitemapEntry{URL: "https://blog.example.com", LastModified: now, ChangeFrequency: "monthly", Priority: 0.8}, entries[0])
	require.Equal(t, SitemapEntry{URL: "https://blog.example.com/post", LastModified: now, ChangeFrequency: "weekly", Priority: 1.0}, entries[1])
	require.Equal(t, "https://blog.example.com/post/newer", entries[2].URL)
	require.Equal(t, time.Date(2024, 2, 3, 0, 0, 0, 0, time.UTC), entries[2].LastModified)
	require.Equal(t, "https://blog.example.com/post/older", entries[3].URL)
	require.Equal(t, "https://blog.example.com/post/a%20b", entries[4].URL)
	require.Zero(t, entries[4].Priority)
}

func TestWriteSitemap(t *testing.T) {
	now := time.Date(2025, 1, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	require.NoError(t, WriteSitemap(&buf, fixture(t).SitemapEntries(now)))

	out := buf.String()
	require.Contains(t, out, `<?xml version="1.0" encoding="UTF-8"?>`)
	require.Contains(t, out, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`)
	require.Contains(t, out, "<lastmod>2024-02-03T00:00:00Z</lastmod>")
	require.Contains(t, out, "<priority>1.0</priority>")
	require.Equal(t, 2, strings.Count(out, "<priority>"), "posts carry no priority")

	var decoded struct {
		URLs []struct {
			Loc        string `xml:"loc"`
			ChangeFreq string `xml:"changefreq"`
		} `xml:"url"`
	}
	require.NoError(t, xml.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded.URLs, 5)
	require.Equal(t, "https://blog.example.com", decoded.URLs[0].Loc)
	require.Equal(t, "monthly", decoded.URLs[0].ChangeFreq)
}

func TestRobots(t *testing.T) {
	require.Equal(t, "User-agent: *\nAllow: /\n\nSitemap: https://blog.example.com/sitemap.xml\n", Robots("https://blog.example.com/"))
	require.Equal(t, Robots("https://blog.example.com"), fixture(t).Robots())
}
