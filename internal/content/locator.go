package content

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/unicode/norm"

	cerrors "git.home.luguber.info/inful/devlog/internal/content/errors"
	"git.home.luguber.info/inful/devlog/internal/logfields"
)

// Locator enumerates content units below a root directory.
//
// A unit is either a directory <root>/<id>/ holding one document file, or a
// top-level file <root>/<id>.<ext>. Directory units resolve their document by
// precedence <id><ext> for each configured extension, then index<ext>.
type Locator struct {
	root       string
	extensions []string
}

// NewLocator creates a locator. extensions are tried in order, e.g. ".mdx", ".md".
func NewLocator(root string, extensions []string) *Locator {
	return &Locator{root: root, extensions: extensions}
}

// Root returns the content root.
func (l *Locator) Root() string { return l.root }

// Locate lists every unit under the root in directory order. Duplicate
// identifiers are returned as-is; uniqueness is enforced at index build.
func (l *Locator) Locate() ([]Document, error) {
	info, err := os.Stat(l.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", cerrors.ErrDiscovery, l.root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", cerrors.ErrDiscovery, l.root)
	}
	entries, err := os.ReadDir(l.root)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", cerrors.ErrDiscovery, l.root, err)
	}

	docs := make([]Document, 0, len(entries))
	for _, entry := range entries {
		name := entry.Name()
		if IsHidden(name) {
			continue
		}
		full := filepath.Join(l.root, name)

		if entry.IsDir() {
			docPath, ok := l.resolveUnit(full, name)
			if !ok {
				slog.Warn("Skipping content unit without document", logfields.Path(full))
				continue
			}
			docs = append(docs, Document{
				ID:       NormalizeID(name),
				Path:     docPath,
				AssetDir: full,
				Unit:     true,
			})
			continue
		}

		ext := l.matchExtension(name)
		if ext == "" {
			slog.Debug("Ignoring non-document file in content root", logfields.Path(full))
			continue
		}
		docs = append(docs, Document{
			ID:       NormalizeID(strings.TrimSuffix(name, ext)),
			Path:     full,
			AssetDir: l.root,
		})
	}

	slog.Debug("Located content units", logfields.Path(l.root), logfields.Count(len(docs)))
	return docs, nil
}

func (l *Locator) resolveUnit(dir, name string) (string, bool) {
	for _, stem := range []string{name, "index"} {
		for _, ext := range l.extensions {
			candidate := filepath.Join(dir, stem+ext)
			if fi, err := os.Stat(candidate); err == nil && fi.Mode().IsRegular() {
				return candidate, true
			}
		}
	}
	return "", false
}

func (l *Locator) matchExtension(name string) string {
	for _, ext := range l.extensions {
		if strings.HasSuffix(name, ext) && len(name) > len(ext) {
			return ext
		}
	}
	return ""
}

// IsDocument reports whether name carries one of the document extensions.
func (l *Locator) IsDocument(name string) bool {
	return l.matchExtension(name) != ""
}

// IsHidden reports whether a directory entry is excluded from discovery.
func IsHidden(name string) bool {
	return strings.HasPrefix(name, ".") || strings.HasPrefix(name, "_")
}

// NormalizeID returns the NFC form of a path segment so that decomposed
// filenames (as written by macOS) match identifiers typed in links.
func NormalizeID(segment string) string {
	return norm.NFC.String(segment)
}
