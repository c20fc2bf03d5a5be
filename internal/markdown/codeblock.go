package markdown

import (
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/renderer"
	"github.com/yuin/goldmark/util"
)

// LanguageAttribute carries the language tag from the neutral tree to the renderer.
const LanguageAttribute = "data-language"

// DefaultLanguage tags code blocks without an info string.
const DefaultLanguage = "plaintext"

// codeBlockRenderer emits <pre data-language="L"><code class="language-L">
// for fenced and indented code. Content is escaped verbatim; highlighting is
// left to the presentation layer.
type codeBlockRenderer struct{}

func (r *codeBlockRenderer) RegisterFuncs(reg renderer.NodeRendererFuncRegisterer) {
	reg.Register(ast.KindFencedCodeBlock, r.render)
	reg.Register(ast.KindCodeBlock, r.render)
}

func (r *codeBlockRenderer) render(w util.BufWriter, source []byte, node ast.Node, entering bool) (ast.WalkStatus, error) {
	if !entering {
		return ast.WalkContinue, nil
	}
	lang := util.EscapeHTML([]byte(languageOf(node)))

	_, _ = w.WriteString(`<pre data-language="`)
	_, _ = w.Write(lang)
	_, _ = w.WriteString(`"><code class="language-`)
	_, _ = w.Write(lang)
	_, _ = w.WriteString(`">`)
	lines := node.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		_, _ = w.Write(util.EscapeHTML(seg.Value(source)))
	}
	_, _ = w.WriteString("</code></pre>\n")
	return ast.WalkSkipChildren, nil
}

func languageOf(node ast.Node) string {
	if v, ok := node.AttributeString(LanguageAttribute); ok {
		if b, ok := v.([]byte); ok && len(b) > 0 {
			return string(b)
		}
	}
	return DefaultLanguage
}
