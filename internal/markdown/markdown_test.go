package markdown

import (
	"testing"

	"github.com/stretchr/testify/require"

	"git.home.luguber.info/inful/devlog/internal/document"
)

var defaultOpts = Options{Extensions: []string{"gfm", "footnote"}}

const body = "# Hello World\n\nSee ![fig](./fig.png \"Figure\") and [Go](https://go.dev).\n\n```Go title\nfmt.Println(\"<hi>\")\n```\n\nVisit https://example.org today.\n"

func TestParseBuildsNeutralTree(t *testing.T) {
	doc := New(defaultOpts).Parse([]byte(body))
	tree := doc.Tree()

	headings := tree.Find(document.KindHeading)
	require.Len(t, headings, 1)
	require.Equal(t, 1, headings[0].Level)
	require.Equal(t, "Hello World", headings[0].Text)
	require.Equal(t, "hello-world", headings[0].Anchor)
	require.Equal(t, 1, headings[0].Line)

	images := tree.Find(document.KindImage)
	require.Len(t, images, 1)
	require.Equal(t, "./fig.png", images[0].Destination)
	require.Equal(t, "fig", images[0].Alt)
	require.Equal(t, "Figure", images[0].Title)
	require.Equal(t, 3, images[0].Line)

	links := tree.Find(document.KindLink)
	require.Len(t, links, 2)
	require.Equal(t, "https://go.dev", links[0].Destination)
	require.False(t, links[0].ReadOnly)
	require.Equal(t, "https://example.org", links[1].Destination)
	require.True(t, links[1].ReadOnly)

	code := tree.Find(document.KindCodeBlock)
	require.Len(t, code, 1)
	require.Equal(t, "Go title", code[0].Info)
	require.Equal(t, "fmt.Println(\"<hi>\")\n", code[0].Text)
	require.Equal(t, 5, code[0].Line)
}

func TestRenderSyncsChanges(t *testing.T) {
	doc := New(defaultOpts).Parse([]byte(body))
	tree := doc.Tree()

	tree.Find(document.KindImage)[0].Destination = "/post/p/fig.png"
	for _, l := range tree.Find(document.KindLink) {
		l.SetAttribute("target", "_blank")
		l.SetAttribute("rel", "noopener noreferrer")
	}
	tree.Find(document.KindCodeBlock)[0].Language = "go"

	out, err := doc.Render()
	require.NoError(t, err)
	html := string(out)
	require.Contains(t, html, `<h1 id="hello-world">Hello World</h1>`)
	require.Contains(t, html, `src="/post/p/fig.png"`)
	require.Contains(t, html, `<a href="https://go.dev" rel="noopener noreferrer" target="_blank">Go</a>`)
	require.Contains(t, html, `<a href="https://example.org" rel="noopener noreferrer" target="_blank">https://example.org</a>`)
	require.Contains(t, html, `<pre data-language="go"><code class="language-go">fmt.Println(&quot;&lt;hi&gt;&quot;)`+"\n</code></pre>")
}

func TestRenderUntaggedCodeBlock(t *testing.T) {
	doc := New(defaultOpts).Parse([]byte("    indented code\n"))
	out, err := doc.Render()
	require.NoError(t, err)
	require.Contains(t, string(out), `<pre data-language="plaintext"><code class="language-plaintext">indented code`)
}

func TestSafeModeDropsRawHTML(t *testing.T) {
	src := []byte("<div class=\"x\">raw</div>\n\ntext\n")

	unsafe, err := New(defaultOpts).Parse(src).Render()
	require.NoError(t, err)
	require.Contains(t, string(unsafe), `<div class="x">raw</div>`)

	safe, err := New(Options{Safe: true}).Parse(src).Render()
	require.NoError(t, err)
	require.NotContains(t, string(safe), `<div class="x">`)
}

func TestExtensionsAreOptional(t *testing.T) {
	src := []byte("| a | b |\n|---|---|\n| 1 | 2 |\n")

	with, err := New(defaultOpts).Parse(src).Render()
	require.NoError(t, err)
	require.Contains(t, string(with), "<table>")

	without, err := New(Options{}).Parse(src).Render()
	require.NoError(t, err)
	require.NotContains(t, string(without), "<table>")
}

func TestCheckFences(t *testing.T) {
	cases := []struct {
		name string
		in   string
		line int
	}{
		{"closed backticks", "```go\nx\n```\n", 0},
		{"closed tildes", "~~~\nx\n~~~\n", 0},
		{"longer closer", "```\nx\n`````\n", 0},
		{"inline span", "use ```code``` inline\n", 0},
		{"nested in list", "- item\n\n  ```sh\n  ls\n  ```\n", 0},
		{"unterminated", "intro\n\n```go\nfmt.Println()\n", 3},
		{"mismatched char", "```\nx\n~~~\n", 1},
		{"closer with info", "~~~\nx\n~~~ js\n", 1},
		{"quoted", "> ```\n> x\n", 1},
		{"indented closer is content", "```markdown\n    ```\n```\n", 0},
		{"indented closer left open", "```markdown\n    ```\n", 1},
		{"opened on list marker", "- ```sh\n  ls\n  ```\n", 0},
		{"list marker without info", "1. ```\n   ls\n   ```\n", 0},
		{"indented code block", "Example:\n\n    ```go\n    x := 1\n", 0},
		{"empty block", "```\n```\n", 0},
		{"empty block then open", "intro\n\n```\n```\n\n~~~~\n", 6},
		{"closer indented three", "```\nx\n   ```\n", 0},
		{"second block open", "```go\na\n```\n\ntext\n\n```sh\nb\n", 7},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := New(defaultOpts).Parse([]byte(tc.in)).CheckFences()
			if tc.line == 0 {
				require.NoError(t, err)
				return
			}
			var fe *FenceError
			require.ErrorAs(t, err, &fe)
			require.Equal(t, tc.line, fe.Line)
		})
	}
}
