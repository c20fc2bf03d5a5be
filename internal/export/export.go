// Package export writes a built index to a static output directory.
package export

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"git.home.luguber.info/inful/devlog/internal/compiler"
	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
	"git.home.luguber.info/inful/devlog/internal/index"
	"git.home.luguber.info/inful/devlog/internal/logfields"
	"git.home.luguber.info/inful/devlog/internal/seo"
)

// Output file names.
const (
	SitemapFile  = "sitemap.xml"
	RobotsFile   = "robots.txt"
	ManifestFile = "posts.json"
	PostFile     = "index.html"
)

// Options configures an Exporter.
type Options struct {
	Directory  string
	Clean      bool // replace the directory instead of writing over it
	PublicPath string
	// IsDocument reports whether a file name is a document source. Sources are never exported.
	IsDocument func(name string) bool
	Now        func() time.Time
}

// Summary describes a finished export.
type Summary struct {
	Directory string
	Posts     int
	Assets    int
}

// ManifestEntry is one post in posts.json.
type ManifestEntry struct {
	ID          string             `json:"id"`
	URL         string             `json:"url"`
	Title       string             `json:"title"`
	Description string             `json:"description"`
	Date        string             `json:"date"`
	Tags        []string           `json:"tags"`
	Fingerprint string             `json:"fingerprint"`
	Outline     []compiler.Heading `json:"outline"`
	Languages   []string           `json:"languages"`
	SEO         seo.Record         `json:"seo"`
}

// Exporter writes static output.
type Exporter struct {
	opts Options
}

// New creates an Exporter.
func New(opts Options) *Exporter {
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.IsDocument == nil {
		opts.IsDocument = func(string) bool { return false }
	}
	opts.PublicPath = strings.Trim(opts.PublicPath, "/")
	return &Exporter{opts: opts}
}

// Export writes idx. With Clean set, output is written to a sibling staging
// directory and promoted once complete.
func (e *Exporter) Export(ctx context.Context, idx *index.Index, adapter *seo.Adapter) (*Summary, error) {
	root := e.opts.Directory
	if e.opts.Clean {
		root = e.opts.Directory + "_stage"
		if err := os.RemoveAll(root); err != nil {
			return nil, fsError(err, "failed to reset staging directory", root)
		}
	}
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fsError(err, "failed to create output directory", root)
	}

	summary, err := e.write(ctx, root, idx, adapter)
	if err != nil {
		if e.opts.Clean {
			_ = os.RemoveAll(root)
		}
		return nil, err
	}
	if e.opts.Clean {
		if err := promote(root, e.opts.Directory); err != nil {
			return nil, fsError(err, "failed to promote staging directory", root)
		}
	}
	summary.Directory = e.opts.Directory
	slog.Info("Export complete",
		logfields.Path(e.opts.Directory),
		logfields.Count(summary.Posts),
		slog.Int("assets", summary.Assets))
	return summary, nil
}

func (e *Exporter) write(ctx context.Context, root string, idx *index.Index, adapter *seo.Adapter) (*Summary, error) {
	var sitemap bytes.Buffer
	if err := seo.WriteSitemap(&sitemap, adapter.SitemapEntries(e.opts.Now())); err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to render sitemap").Build()
	}
	if err := writeFile(filepath.Join(root, SitemapFile), sitemap.Bytes()); err != nil {
		return nil, err
	}
	if err := writeFile(filepath.Join(root, RobotsFile), []byte(adapter.Robots())); err != nil {
		return nil, err
	}

	posts := idx.OrderedByDate()
	manifest := make([]ManifestEntry, 0, len(posts))
	summary := &Summary{}
	for _, p := range posts {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		record, _ := adapter.MetadataFor(p.ID)
		manifest = append(manifest, ManifestEntry{
			ID:          p.ID,
			URL:         record.Canonical,
			Title:       p.Frontmatter.Title,
			Description: p.Frontmatter.Description,
			Date:        p.Frontmatter.Date.Format(time.DateOnly),
			Tags:        p.Frontmatter.Tags,
			Fingerprint: p.Fingerprint,
			Outline:     p.Body.Outline,
			Languages:   p.Body.Languages,
			SEO:         record,
		})

		dir := filepath.Join(root, filepath.FromSlash(e.opts.PublicPath), p.ID)
		if err := writeFile(filepath.Join(dir, PostFile), []byte(p.Body.HTML)); err != nil {
			return nil, err
		}
		n, err := e.copyAssets(p, dir)
		if err != nil {
			return nil, err
		}
		summary.Posts++
		summary.Assets += n
		slog.Debug("Exported post", logfields.PostID(p.ID), slog.Int("assets", n))
	}

	data, err := json.MarshalIndent(manifest, "", "  ")
	if err != nil {
		return nil, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to encode manifest").Build()
	}
	if err := writeFile(filepath.Join(root, ManifestFile), append(data, '\n')); err != nil {
		return nil, err
	}
	return summary, nil
}

func (e *Exporter) copyAssets(p *index.Post, dir string) (int, error) {
	files, err := p.AssetFiles(e.opts.IsDocument)
	if err != nil {
		return 0, fsError(err, "failed to list assets", p.AssetDir)
	}
	for _, rel := range files {
		src, _ := p.AssetFile(rel, e.opts.IsDocument)
		if err := copyFile(src, filepath.Join(dir, filepath.FromSlash(rel))); err != nil {
			return 0, err
		}
	}
	return len(files), nil
}

func writeFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fsError(err, "failed to create directory", filepath.Dir(path))
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fsError(err, "failed to write file", path)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fsError(err, "failed to open asset", src)
	}
	defer func() { _ = in.Close() }()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return fsError(err, "failed to create directory", filepath.Dir(dst))
	}
	out, err := os.Create(dst)
	if err != nil {
		return fsError(err, "failed to create asset", dst)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fsError(err, "failed to copy asset", dst)
	}
	if err := out.Close(); err != nil {
		return fsError(err, "failed to close asset", dst)
	}
	return nil
}

// promote replaces final with stage, keeping final.prev until the swap is done.
func promote(stage, final string) error {
	prev := final + ".prev"
	if err := os.RemoveAll(prev); err != nil {
		return fmt.Errorf("remove previous backup: %w", err)
	}
	backedUp := false
	if _, err := os.Stat(final); err == nil {
		if err := os.Rename(final, prev); err != nil {
			return fmt.Errorf("backup existing output: %w", err)
		}
		backedUp = true
	}
	if err := os.Rename(stage, final); err != nil {
		err = fmt.Errorf("promote staging: %w", err)
		if backedUp {
			if rerr := os.Rename(prev, final); rerr != nil {
				err = errors.Join(err, fmt.Errorf("restore previous output: %w", rerr))
			}
		}
		return err
	}
	if err := os.RemoveAll(prev); err != nil {
		slog.Warn("Failed to remove previous backup", logfields.Path(prev), logfields.Error(err))
	}
	return nil
}

func fsError(err error, msg, path string) error {
	return ferrors.WrapError(err, ferrors.CategoryFileSystem, msg).WithContext("path", path).Build()
}
