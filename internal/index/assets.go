package index

import (
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"git.home.luguber.info/inful/devlog/internal/content"
)

// AssetFile maps rel, a slash path below the post's public URL, to a file on
// disk. Document sources, hidden names and paths leaving AssetDir are
// refused. A post sharing its directory with other posts only exposes the
// files its body references.
func (p *Post) AssetFile(rel string, isDocument func(name string) bool) (string, bool) {
	rel = strings.TrimPrefix(path.Clean("/"+rel), "/")
	if rel == "" || p.AssetDir == "" {
		return "", false
	}
	for _, seg := range strings.Split(rel, "/") {
		if content.IsHidden(seg) {
			return "", false
		}
	}
	if isDocument(path.Base(rel)) {
		return "", false
	}
	if !p.Unit && !p.references(rel) {
		return "", false
	}
	return filepath.Join(p.AssetDir, filepath.FromSlash(rel)), true
}

// AssetFiles lists the slash paths AssetFile accepts that exist on disk.
func (p *Post) AssetFiles(isDocument func(name string) bool) ([]string, error) {
	if p.AssetDir == "" {
		return nil, nil
	}
	if !p.Unit {
		var out []string
		for _, rel := range p.referenced() {
			file, ok := p.AssetFile(rel, isDocument)
			if !ok {
				continue
			}
			if info, err := os.Stat(file); err == nil && info.Mode().IsRegular() {
				out = append(out, rel)
			}
		}
		return out, nil
	}

	var out []string
	err := filepath.WalkDir(p.AssetDir, func(full string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if full == p.AssetDir {
			return nil
		}
		if content.IsHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(p.AssetDir, full)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)
		if _, ok := p.AssetFile(rel, isDocument); ok {
			out = append(out, rel)
		}
		return nil
	})
	return out, err
}

func (p *Post) references(rel string) bool {
	return slices.Contains(p.referenced(), rel)
}

// referenced returns the post-relative paths the body refers to.
func (p *Post) referenced() []string {
	if p.Body == nil {
		return nil
	}
	return p.Body.Assets
}
