package compiler

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"

	cerrors "git.home.luguber.info/inful/devlog/internal/content/errors"
	"git.home.luguber.info/inful/devlog/internal/markdown"
)

func newCompiler(verify bool) *Compiler {
	return New(Options{
		PublicPath:   "post",
		SiteHost:     "blog.example.com",
		VerifyAssets: verify,
		Markdown:     markdown.Options{Extensions: []string{"gfm", "footnote"}},
	})
}

// elements parses an HTML fragment and returns every element named tag.
func elements(t *testing.T, fragment, tag string) []*html.Node {
	t.Helper()
	doc, err := html.Parse(strings.NewReader(fragment))
	require.NoError(t, err)
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == tag {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

const post = `## Setup

![diagram](./a.png?v=2#top) ![remote](https://cdn.example.net/x.png) ![abs](/static/logo.svg)

Read [the docs](https://go.dev/doc), [home](https://blog.example.com/about), [local](/post/other),
[notes](notes.pdf) and [cdn](//cdn.example.net/lib.js).

### Code

` + "```Go\nfmt.Println(1)\n```\n\n```\nplain\n```\n\n```bash {linenos=true}\nls\n```\n"

func TestCompile(t *testing.T) {
	c, err := newCompiler(false).Compile("post-1", []byte(post), nil)
	require.NoError(t, err)

	imgs := elements(t, c.HTML, "img")
	require.Len(t, imgs, 3)
	require.Equal(t, "/post/post-1/a.png?v=2#top", attr(imgs[0], "src"))
	require.Equal(t, "https://cdn.example.net/x.png", attr(imgs[1], "src"))
	require.Equal(t, "/static/logo.svg", attr(imgs[2], "src"))
	require.Equal(t, []string{"/post/post-1/a.png?v=2#top", "https://cdn.example.net/x.png", "/static/logo.svg"}, c.Images)

	links := map[string]*html.Node{}
	for _, a := range elements(t, c.HTML, "a") {
		links[attr(a, "href")] = a
	}
	require.Equal(t, "_blank", attr(links["https://go.dev/doc"], "target"))
	require.Equal(t, "noopener noreferrer", attr(links["https://go.dev/doc"], "rel"))
	require.Equal(t, "_blank", attr(links["//cdn.example.net/lib.js"], "target"))
	require.Empty(t, attr(links["https://blog.example.com/about"], "target"))
	require.Empty(t, attr(links["/post/other"], "target"))
	require.Contains(t, links, "/post/post-1/notes.pdf")
	require.Equal(t, []string{"https://go.dev/doc", "//cdn.example.net/lib.js"}, c.ExternalLinks)

	pres := elements(t, c.HTML, "pre")
	require.Len(t, pres, 3)
	require.Equal(t, "go", attr(pres[0], "data-language"))
	require.Equal(t, "plaintext", attr(pres[1], "data-language"))
	require.Equal(t, "bash", attr(pres[2], "data-language"))
	codes := elements(t, c.HTML, "code")
	require.Equal(t, "language-go", attr(codes[0], "class"))
	require.Equal(t, []string{"bash", "go", "plaintext"}, c.Languages)

	require.Equal(t, []Heading{
		{Level: 2, Text: "Setup", Anchor: "setup"},
		{Level: 3, Text: "Code", Anchor: "code"},
	}, c.Outline)
	require.NotNil(t, c.Tree)
}

func TestCompileDeterministic(t *testing.T) {
	a, err := newCompiler(false).Compile("p", []byte(post), nil)
	require.NoError(t, err)
	b, err := newCompiler(false).Compile("p", []byte(post), nil)
	require.NoError(t, err)
	require.Equal(t, a.HTML, b.HTML)
}

func TestCompileFailures(t *testing.T) {
	assets := fstest.MapFS{"present.png": &fstest.MapFile{Data: []byte("png")}}
	cases := []struct {
		name   string
		body   string
		verify bool
		target error
	}{
		{"unterminated fence", "text\n\n```go\nfmt.Println()\n", false, nil},
		{"escaping image", "![x](../other/a.png)", false, ErrAssetEscapes},
		{"missing asset", "![x](./absent.png)", true, ErrAssetMissing},
		{"escaping asset link", "[x](../../secret.pdf)", false, ErrAssetEscapes},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newCompiler(tc.verify).Compile("p", []byte(tc.body), assets)
			require.ErrorIs(t, err, cerrors.ErrCompilation)
			if tc.target != nil {
				require.ErrorIs(t, err, tc.target)
			}
		})
	}

	var fe *markdown.FenceError
	_, err := newCompiler(false).Compile("p", []byte(cases[0].body), nil)
	require.ErrorAs(t, err, &fe)
	require.Equal(t, 3, fe.Line)
}

func TestCompileRecordsLocalAssets(t *testing.T) {
	body := "![a](./a%20b.png?v=1) ![b](img/b.png) ![again](a%20b.png) ![cdn](https://cdn.example.net/x.png) [pdf](./paper.pdf) [page](./other)"
	c, err := newCompiler(false).Compile("post-1", []byte(body), nil)
	require.NoError(t, err)
	require.Equal(t, []string{"a b.png", "img/b.png", "paper.pdf"}, c.Assets)
}

func TestCompileWellFormedFences(t *testing.T) {
	bodies := map[string]string{
		"fence shown inside a fence": "```markdown\n    ```\n```\n",
		"fence in list item":         "- ```sh\n  ls\n  ```\n",
		"indented code block":        "Example:\n\n    ```go\n    x := 1\n",
		"fence in block quote":       "> ```go\n> x := 1\n> ```\n",
	}
	for name, body := range bodies {
		t.Run(name, func(t *testing.T) {
			c, err := newCompiler(false).Compile("p", []byte(body), nil)
			require.NoError(t, err)
			require.Contains(t, c.HTML, "<pre")
		})
	}
}

func TestCompileVerifiedAssetPresent(t *testing.T) {
	assets := fstest.MapFS{"img/present.png": &fstest.MapFile{Data: []byte("png")}}
	c, err := newCompiler(true).Compile("p", []byte("![x](img/present.png)"), assets)
	require.NoError(t, err)
	require.Equal(t, []string{"/post/p/img/present.png"}, c.Images)
}

func TestResolve(t *testing.T) {
	r := NewAssetResolver("post", "post-1", nil, false)
	cases := map[string]string{
		"./a.png":                 "/post/post-1/a.png",
		"a.png":                   "/post/post-1/a.png",
		"img/./b.png":             "/post/post-1/img/b.png",
		"img/../c.png":            "/post/post-1/c.png",
		"/abs.png":                "/abs.png",
		"https://x.org/a.png":     "https://x.org/a.png",
		"//x.org/a.png":           "//x.org/a.png",
		"data:image/png;base64,x": "data:image/png;base64,x",
		"#frag":                   "#frag",
	}
	for in, want := range cases {
		got, err := r.Resolve(in)
		require.NoError(t, err, in)
		require.Equal(t, want, got, in)
	}
}

func TestLanguageFromInfo(t *testing.T) {
	require.Equal(t, "go", LanguageFromInfo("Go"))
	require.Equal(t, "ts", LanguageFromInfo("ts title=app.ts"))
	require.Equal(t, "plaintext", LanguageFromInfo(""))
	require.Equal(t, "plaintext", LanguageFromInfo("{linenos=true}"))
}

func TestLinkMarkerIsExternal(t *testing.T) {
	m := NewLinkMarker("blog.example.com")
	require.True(t, m.IsExternal("https://github.com"))
	require.True(t, m.IsExternal("HTTP://Other.org/x"))
	require.True(t, m.IsExternal("//cdn.net/x"))
	require.False(t, m.IsExternal("https://BLOG.example.com/x"))
	require.False(t, m.IsExternal("https://blog.example.com:443/x"))
	require.False(t, m.IsExternal("mailto:me@example.com"))
	require.False(t, m.IsExternal("/post/x"))
	require.False(t, m.IsExternal("ftp://files.org"))
}
