package compiler

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"path"
	"strings"

	"git.home.luguber.info/inful/devlog/internal/document"
)

var (
	// ErrAssetEscapes indicates a relative reference leaving the post's directory.
	ErrAssetEscapes = errors.New("asset path escapes the post directory")
	// ErrAssetMissing indicates a referenced asset file does not exist.
	ErrAssetMissing = errors.New("asset file not found")
)

var assetExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true, ".webp": true, ".avif": true, ".bmp": true, ".ico": true,
	".pdf": true, ".zip": true, ".tar": true, ".gz": true,
	".mp4": true, ".webm": true, ".ogv": true, ".mp3": true,
	".csv": true, ".json": true, ".yaml": true, ".yml": true, ".xml": true, ".txt": true,
}

// IsAssetPath reports whether p names a file type served as a post asset.
func IsAssetPath(p string) bool {
	return assetExtensions[strings.ToLower(path.Ext(p))]
}

// AssetResolver rewrites relative image destinations, and relative links to
// asset files, to /<public-path>/<id>/<path>.
type AssetResolver struct {
	prefix string
	assets fs.FS
	verify bool

	Images []string // image destinations after resolution, document order
	Assets []string // post-relative paths of local images and asset links, unescaped, first use order

	seen map[string]bool
}

// NewAssetResolver creates a resolver for post id.
func NewAssetResolver(publicPath, id string, assets fs.FS, verify bool) *AssetResolver {
	prefix := "/" + id + "/"
	if p := strings.Trim(publicPath, "/"); p != "" {
		prefix = "/" + p + prefix
	}
	return &AssetResolver{prefix: prefix, assets: assets, verify: verify && assets != nil, seen: map[string]bool{}}
}

func (r *AssetResolver) Visit(n *document.Node) error {
	switch n.Kind {
	case document.KindImage:
		resolved, rel, err := r.resolve(n.Destination)
		if err != nil {
			return fmt.Errorf("line %d: image %q: %w", n.Line, n.Destination, err)
		}
		n.Destination = resolved
		r.Images = append(r.Images, resolved)
		r.record(rel)
	case document.KindLink:
		if n.ReadOnly || !isRelative(n.Destination) || !IsAssetPath(stripSuffix(n.Destination)) {
			return nil
		}
		resolved, rel, err := r.resolve(n.Destination)
		if err != nil {
			return fmt.Errorf("line %d: link %q: %w", n.Line, n.Destination, err)
		}
		n.Destination = resolved
		r.record(rel)
	}
	return nil
}

func (r *AssetResolver) record(rel string) {
	if rel == "" || r.seen[rel] {
		return
	}
	r.seen[rel] = true
	r.Assets = append(r.Assets, rel)
}

// Resolve maps a destination to its public form. Absolute paths, URLs with a
// scheme, protocol-relative URLs and fragments are returned unchanged.
func (r *AssetResolver) Resolve(dest string) (string, error) {
	resolved, _, err := r.resolve(dest)
	return resolved, err
}

// resolve also returns the unescaped post-relative path, empty when dest is
// left unchanged.
func (r *AssetResolver) resolve(dest string) (resolved, rel string, err error) {
	if !isRelative(dest) {
		return dest, "", nil
	}
	rawPath := stripSuffix(dest)
	suffix := dest[len(rawPath):]

	cleaned := path.Clean(rawPath)
	if cleaned == "." || cleaned == ".." || strings.HasPrefix(cleaned, "../") {
		return "", "", ErrAssetEscapes
	}

	name, uerr := url.PathUnescape(cleaned)
	if uerr != nil {
		name = cleaned
	}
	if r.verify {
		if _, err := fs.Stat(r.assets, name); err != nil {
			return "", "", fmt.Errorf("%w: %s", ErrAssetMissing, name)
		}
	}
	return r.prefix + cleaned + suffix, name, nil
}

func isRelative(dest string) bool {
	if dest == "" || strings.HasPrefix(dest, "/") || strings.HasPrefix(dest, "#") || strings.HasPrefix(dest, "?") {
		return false
	}
	u, err := url.Parse(dest)
	if err != nil {
		return true
	}
	return u.Scheme == ""
}

// stripSuffix returns dest without its query and fragment.
func stripSuffix(dest string) string {
	if i := strings.IndexAny(dest, "?#"); i >= 0 {
		return dest[:i]
	}
	return dest
}
