package compiler

import (
	"strings"

	"git.home.luguber.info/inful/devlog/internal/document"
	"git.home.luguber.info/inful/devlog/internal/markdown"
)

// CodeTagger attaches a language tag to every code block: the first word of
// the info string, lowercased, or "plaintext".
type CodeTagger struct {
	languages map[string]struct{}
}

func (c *CodeTagger) Visit(n *document.Node) error {
	if n.Kind != document.KindCodeBlock {
		return nil
	}
	n.Language = LanguageFromInfo(n.Info)
	if c.languages == nil {
		c.languages = make(map[string]struct{})
	}
	c.languages[n.Language] = struct{}{}
	return nil
}

// Languages returns the distinct tags seen, sorted.
func (c *CodeTagger) Languages() []string {
	return sortedKeys(c.languages)
}

// LanguageFromInfo derives a language tag from a fence info string.
// Attribute blocks such as {linenos=true} are ignored.
func LanguageFromInfo(info string) string {
	fields := strings.Fields(info)
	if len(fields) == 0 {
		return markdown.DefaultLanguage
	}
	lang := strings.ToLower(strings.Trim(fields[0], "{}."))
	if lang == "" || strings.Contains(lang, "=") {
		return markdown.DefaultLanguage
	}
	return lang
}

// OutlineCollector records headings for a table of contents.
type OutlineCollector struct {
	Headings []Heading
}

func (o *OutlineCollector) Visit(n *document.Node) error {
	if n.Kind == document.KindHeading {
		o.Headings = append(o.Headings, Heading{Level: n.Level, Text: strings.TrimSpace(n.Text), Anchor: n.Anchor})
	}
	return nil
}
