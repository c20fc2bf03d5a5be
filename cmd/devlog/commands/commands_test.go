package commands

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/alecthomas/kong"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"git.home.luguber.info/inful/devlog/internal/config"
	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
	"git.home.luguber.info/inful/devlog/internal/testutil"
)

// run parses args and executes the selected command, returning its output.
func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, logs bytes.Buffer
	cli := &CLI{Out: &out, Err: &logs}
	parser, err := kong.New(cli, kong.Name("devlog"), kong.Vars{"version": "test"}, kong.Exit(func(int) {}))
	require.NoError(t, err)
	kctx, err := parser.Parse(args)
	require.NoError(t, err)
	err = kctx.Run(cli)
	return out.String(), err
}

func writeConfig(t *testing.T, contentRoot, outputDir string) string {
	t.Helper()
	cfg := testutil.NewConfigBuilder(t).WithContentRoot(contentRoot).WithOutputDir(outputDir).Build()
	data, err := yaml.Marshal(cfg)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "devlog.yaml")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func fixture(t *testing.T) (configPath, outputDir string) {
	t.Helper()
	posts := testutil.NewContentBuilder(t).
		Add(testutil.Post{ID: "hello", Title: "Hello", Date: "2024-03-01", Tags: []string{"go"},
			Body: "# Hello\n\n## Setup\n\n```go\nfunc main() {}\n```\n"}).
		Add(testutil.Post{ID: "older", Title: "Older", Date: "2023-05-01", Tags: []string{"life"}}).
		Add(testutil.Post{ID: "broken", OmitDate: true})
	outputDir = filepath.Join(t.TempDir(), "site")
	return writeConfig(t, posts.Root, outputDir), outputDir
}

func TestBuildCommand(t *testing.T) {
	cfgPath, out := fixture(t)

	stdout, err := run(t, "-c", cfgPath, "build")
	require.NoError(t, err)
	require.Contains(t, stdout, "Indexed 2 of 3 posts (1 skipped)")
	require.Contains(t, stdout, "skipped broken")
	require.Contains(t, stdout, "Exported 2 posts")

	testutil.NewFileAssertions(t, out).
		AssertFileExists("sitemap.xml").
		AssertFileExists("robots.txt").
		AssertFileExists("posts.json").
		AssertFileExists("post/hello/index.html")
}

func TestBuildCommandStrict(t *testing.T) {
	cfgPath, out := fixture(t)

	_, err := run(t, "-c", cfgPath, "build", "--strict")
	require.Error(t, err)
	require.Equal(t, 11, ferrors.NewCLIErrorAdapter(false, nil).ExitCodeFor(err))
	testutil.NewFileAssertions(t, out).AssertFileNotExists("sitemap.xml")
}

func TestBuildCommandDryRun(t *testing.T) {
	cfgPath, out := fixture(t)

	_, err := run(t, "-c", cfgPath, "build", "--dry-run")
	require.NoError(t, err)
	testutil.NewFileAssertions(t, out).AssertFileNotExists("sitemap.xml")
}

func TestListCommand(t *testing.T) {
	cfgPath, _ := fixture(t)

	stdout, err := run(t, "-c", cfgPath, "list")
	require.NoError(t, err)
	require.Contains(t, stdout, "DATE")
	require.Less(t, bytes.Index([]byte(stdout), []byte("hello")), bytes.Index([]byte(stdout), []byte("older")))
	require.Contains(t, stdout, "page 1 of 1, 2 posts")

	stdout, err = run(t, "-c", cfgPath, "list", "--tag", "life")
	require.NoError(t, err)
	require.Contains(t, stdout, "older")
	require.NotContains(t, stdout, "hello")

	stdout, err = run(t, "-c", cfgPath, "list", "--tag", "nothing")
	require.NoError(t, err)
	require.Contains(t, stdout, "no posts")
}

func TestShowCommand(t *testing.T) {
	cfgPath, _ := fixture(t)

	stdout, err := run(t, "-c", cfgPath, "show", "hello")
	require.NoError(t, err)
	require.Contains(t, stdout, "Title:       Hello")
	require.Contains(t, stdout, "Canonical:   https://blog.example.com/post/hello")
	require.Contains(t, stdout, "Languages:   go")
	require.Contains(t, stdout, "Setup (#setup)")

	stdout, err = run(t, "-c", cfgPath, "show", "--json", "hello")
	require.NoError(t, err)
	var decoded showOutput
	require.NoError(t, json.Unmarshal([]byte(stdout), &decoded))
	require.Equal(t, "Hello", decoded.SEO.Title)
	require.Equal(t, []string{"go"}, decoded.Languages)

	_, err = run(t, "-c", cfgPath, "show", "missing")
	require.True(t, ferrors.HasCategory(err, ferrors.CategoryNotFound))
}

func TestInitCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "devlog.yaml")

	stdout, err := run(t, "-c", path, "init")
	require.NoError(t, err)
	require.Contains(t, stdout, "Wrote configuration")
	_, err = config.Load(path)
	require.NoError(t, err)

	_, err = run(t, "-c", path, "init")
	require.Error(t, err)
	_, err = run(t, "-c", path, "init", "--force")
	require.NoError(t, err)
}
