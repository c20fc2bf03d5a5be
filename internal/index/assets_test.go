package index

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/devlog/internal/compiler"
)

func isMarkdown(name string) bool {
	ext := filepath.Ext(name)
	return ext == ".md" || ext == ".mdx"
}

func writeAsset(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
}

func TestAssetFileUnit(t *testing.T) {
	dir := t.TempDir()
	p := &Post{ID: "hello", AssetDir: dir, Unit: true}

	file, ok := p.AssetFile("img/figure.png", isMarkdown)
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "img", "figure.png"), file)

	for _, rel := range []string{"", "hello.md", "draft.mdx", ".secret", "_wip/a.png", "../other/a.png"} {
		file, ok := p.AssetFile(rel, isMarkdown)
		if rel == "../other/a.png" {
			require.True(t, ok, rel)
			require.Equal(t, filepath.Join(dir, "other", "a.png"), file, "cleaned below the asset dir")
			continue
		}
		require.False(t, ok, rel)
	}
}

func TestAssetFileSharedDirectoryOnlyReferenced(t *testing.T) {
	dir := t.TempDir()
	p := &Post{
		ID:       "loose",
		AssetDir: dir,
		Body:     &compiler.Content{Assets: []string{"a b.png", "c.png"}},
	}
	_, ok := p.AssetFile("a b.png", isMarkdown)
	require.True(t, ok)
	_, ok = p.AssetFile("c.png", isMarkdown)
	require.True(t, ok)
	_, ok = p.AssetFile("other.png", isMarkdown)
	require.False(t, ok)
}

func TestAssetFiles(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, filepath.Join(dir, "hello.md"))
	writeAsset(t, filepath.Join(dir, "figure.png"))
	writeAsset(t, filepath.Join(dir, "data", "table.csv"))
	writeAsset(t, filepath.Join(dir, ".cache", "x.png"))

	unit := &Post{ID: "hello", AssetDir: dir, Unit: true}
	files, err := unit.AssetFiles(isMarkdown)
	require.NoError(t, err)
	require.ElementsMatch(t, []string{"figure.png", "data/table.csv"}, files)

	loose := &Post{ID: "loose", AssetDir: dir, Body: &compiler.Content{Assets: []string{"figure.png", "missing.png"}}}
	files, err = loose.AssetFiles(isMarkdown)
	require.NoError(t, err)
	require.Equal(t, []string{"figure.png"}, files)
}

func TestAssetFileIDMatchesPublicPath(t *testing.T) {
	dir := t.TempDir()
	writeAsset(t, filepath.Join(dir, "a.png"))

	c := compiler.New(compiler.Options{PublicPath: "post"})
	body, err := c.Compile("post", []byte("![a](./a.png) and [notes](img/../notes.pdf)"), nil)
	require.NoError(t, err)
	require.Equal(t, []string{"/post/post/a.png"}, body.Images)

	p := &Post{ID: "post", AssetDir: dir, Body: body}
	file, ok := p.AssetFile("a.png", isMarkdown)
	require.True(t, ok)
	require.Equal(t, filepath.Join(dir, "a.png"), file)
	_, ok = p.AssetFile("notes.pdf", isMarkdown)
	require.True(t, ok)
	_, ok = p.AssetFile("post/a.png", isMarkdown)
	require.False(t, ok)

	files, err := p.AssetFiles(isMarkdown)
	require.NoError(t, err)
	require.Equal(t, []string{"a.png"}, files)
}
