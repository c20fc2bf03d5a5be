// Package index holds the immutable post collection built once per build and
// the pure queries over it.
package index

import (
	"strings"

	"github.com/inful/mdfp"

	"git.home.luguber.info/inful/devlog/internal/compiler"
	"git.home.luguber.info/inful/devlog/internal/frontmatter"
)

// Post is a compiled, indexed post.
type Post struct {
	ID          string            `json:"id"`
	Frontmatter frontmatter.Meta  `json:"frontmatter"`
	Body        *compiler.Content `json:"body"`
	Fingerprint string            `json:"fingerprint"`
	Source      string            `json:"source"`

	// AssetDir is the directory relative assets resolve against. Unit is set
	// when it holds only this post.
	AssetDir string `json:"-"`
	Unit     bool   `json:"-"`
}

// Fingerprint hashes the canonical header and the raw body. It changes
// whenever anything a reader could see changes and is used as the HTTP ETag.
func Fingerprint(meta frontmatter.Meta, body []byte) (string, error) {
	serialized, err := meta.CanonicalYAML()
	if err != nil {
		return "", err
	}
	header := strings.TrimSuffix(string(serialized), "\n")
	return mdfp.CalculateFingerprintFromParts(header, string(body)), nil
}
