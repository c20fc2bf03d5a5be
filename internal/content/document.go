// Package content discovers authored post documents under a content root.
package content

import (
	"fmt"
	"io/fs"
	"os"

	cerrors "git.home.luguber.info/inful/devlog/internal/content/errors"
)

// Document is one located content unit. It is immutable after discovery.
type Document struct {
	ID       string // NFC-normalized identifier, doubles as route segment
	Path     string // Source file path
	AssetDir string // Directory relative asset references resolve against
	Unit     bool   // True for directory units, false for top-level files
}

// Read returns the raw document bytes. Failures wrap ErrDocumentRead.
func (d Document) Read() ([]byte, error) {
	data, err := os.ReadFile(d.Path)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", cerrors.ErrDocumentRead, d.Path, err)
	}
	return data, nil
}

// Assets exposes the document's asset directory as a filesystem.
func (d Document) Assets() fs.FS {
	return os.DirFS(d.AssetDir)
}
