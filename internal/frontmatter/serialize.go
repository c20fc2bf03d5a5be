package frontmatter

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// CanonicalYAML renders the validated header with keys in alphabetical order
// and the date as a calendar day. Two headers that parse to the same Meta
// always produce the same bytes, whatever format they were written in.
func (m Meta) CanonicalYAML() ([]byte, error) {
	str := func(v string) *yaml.Node {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: v}
	}
	tags := &yaml.Node{Kind: yaml.SequenceNode}
	for _, t := range m.Tags {
		tags.Content = append(tags.Content, str(t))
	}
	doc := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
		str("date"), str(m.Date.Format(DateLayout)),
		str("description"), str(m.Description),
		str("tags"), tags,
		str("title"), str(m.Title),
	}}

	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
