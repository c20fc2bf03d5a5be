package revision

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func TestLookupNotARepository(t *testing.T) {
	rev, err := Lookup(t.TempDir())
	require.NoError(t, err)
	require.Empty(t, rev)
}

func TestLookupEmptyRepository(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	rev, err := Lookup(dir)
	require.NoError(t, err)
	require.Empty(t, rev)
}

func TestLookupFromSubdirectory(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	content := filepath.Join(dir, "public", "post", "hello")
	require.NoError(t, os.MkdirAll(content, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(content, "hello.md"), []byte("hi"), 0o644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add("public/post/hello/hello.md")
	require.NoError(t, err)
	hash, err := wt.Commit("add post", &git.CommitOptions{
		Author: &object.Signature{Name: "Author", Email: "author@example.com", When: time.Now()},
	})
	require.NoError(t, err)

	rev, err := Lookup(content)
	require.NoError(t, err)
	require.Equal(t, hash.String()[:ShortLength], rev)
}
