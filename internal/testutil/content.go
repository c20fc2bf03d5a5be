package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// Post describes a fixture post.
type Post struct {
	ID          string
	Title       string
	Description string
	Date        string
	Tags        []string
	Body        string
	// Assets maps file names to contents written next to the document.
	Assets map[string]string
	// OmitDate drops the date field from the header.
	OmitDate bool
}

// ContentBuilder writes fixture posts into a content root.
type ContentBuilder struct {
	t    *testing.T
	Root string
}

// NewContentBuilder creates an empty content root under t.TempDir().
func NewContentBuilder(t *testing.T) *ContentBuilder {
	t.Helper()
	root := filepath.Join(t.TempDir(), "post")
	if err := os.MkdirAll(root, testDirPermissions); err != nil {
		t.Fatalf("create content root: %v", err)
	}
	return &ContentBuilder{t: t, Root: root}
}

// Add writes p as a directory unit <root>/<id>/<id>.md.
func (cb *ContentBuilder) Add(p Post) *ContentBuilder {
	cb.t.Helper()
	dir := filepath.Join(cb.Root, p.ID)
	cb.write(filepath.Join(dir, p.ID+".md"), p.Markdown())
	for name, data := range p.Assets {
		cb.write(filepath.Join(dir, name), data)
	}
	return cb
}

// AddFile writes raw content to a path relative to the root.
func (cb *ContentBuilder) AddFile(rel, data string) *ContentBuilder {
	cb.t.Helper()
	cb.write(filepath.Join(cb.Root, rel), data)
	return cb
}

func (cb *ContentBuilder) write(path, data string) {
	cb.t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), testDirPermissions); err != nil {
		cb.t.Fatalf("create %s: %v", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, []byte(data), testFilePermissions); err != nil {
		cb.t.Fatalf("write %s: %v", path, err)
	}
}

// Markdown renders the post as a document with a YAML header.
func (p Post) Markdown() string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: " + orDefault(p.Title, p.ID) + "\n")
	b.WriteString("description: " + orDefault(p.Description, "About "+p.ID) + "\n")
	if !p.OmitDate {
		b.WriteString("date: " + orDefault(p.Date, "2024-01-01") + "\n")
	}
	b.WriteString("tags: [" + strings.Join(p.Tags, ", ") + "]\n")
	b.WriteString("---\n")
	b.WriteString(orDefault(p.Body, "# "+orDefault(p.Title, p.ID)+"\n"))
	return b.String()
}

func orDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
