package frontmatter

import (
	"bytes"
	"errors"
	"fmt"

	adrg "github.com/adrg/frontmatter"
	"gopkg.in/yaml.v3"

	cerrors "git.home.luguber.info/inful/devlog/internal/content/errors"
)

// ErrNoHeader indicates the document carries no metadata header at all.
var ErrNoHeader = errors.New("document has no frontmatter header")

// ParseYAML parses a raw YAML header (without delimiters) into a map.
func ParseYAML(header []byte) (map[string]any, error) {
	fields := map[string]any{}
	if len(bytes.TrimSpace(header)) == 0 {
		return fields, nil
	}
	if err := yaml.Unmarshal(header, &fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Decode returns the header fields and the body of a document.
//
// YAML headers (`---`) are split locally and decoded with yaml.v3. TOML (`+++`)
// and JSON (`;;;`) headers are handed to adrg/frontmatter. Every failure wraps
// ErrMalformedFrontmatter.
func Decode(content []byte) (map[string]any, []byte, error) {
	header, body, had, err := Split(content)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", cerrors.ErrMalformedFrontmatter, err)
	}
	if had {
		fields, perr := ParseYAML(header)
		if perr != nil {
			return nil, nil, fmt.Errorf("%w: yaml: %w", cerrors.ErrMalformedFrontmatter, perr)
		}
		return fields, body, nil
	}

	switch openingDelimiter(content) {
	case DelimTOML, DelimJSON:
		fields := map[string]any{}
		rest, aerr := adrg.Parse(bytes.NewReader(content), &fields)
		if aerr != nil {
			return nil, nil, fmt.Errorf("%w: %w", cerrors.ErrMalformedFrontmatter, aerr)
		}
		return fields, rest, nil
	}
	return nil, nil, fmt.Errorf("%w: %w", cerrors.ErrMalformedFrontmatter, ErrNoHeader)
}

func openingDelimiter(content []byte) string {
	line, _, _ := cutLine(content)
	return string(bytes.TrimSpace(line))
}
