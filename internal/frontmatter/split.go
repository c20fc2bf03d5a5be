// Package frontmatter separates the metadata header of a post from its body
// and validates the fields every post must carry.
package frontmatter

import (
	"bytes"
	"errors"
)

// ErrMissingClosingDelimiter indicates the document opened a header but never closed it.
var ErrMissingClosingDelimiter = errors.New("frontmatter closing delimiter is missing")

// Delimiters recognized at the very start of a document.
const (
	DelimYAML = "---"
	DelimTOML = "+++"
	DelimJSON = ";;;"
)

// Split separates a `---` delimited YAML header from the body. Both LF and
// CRLF line endings are accepted. When the content does not open with `---`,
// had is false and body is the whole input.
func Split(content []byte) (header, body []byte, had bool, err error) {
	return splitDelimited(content, DelimYAML)
}

func splitDelimited(content []byte, delim string) (header, body []byte, had bool, err error) {
	first, rest, ok := cutLine(content)
	if !ok && len(first) == 0 {
		return nil, content, false, nil
	}
	if string(trimCR(first)) != delim {
		return nil, content, false, nil
	}
	if !ok {
		return nil, nil, true, ErrMissingClosingDelimiter
	}

	offset := 0
	for {
		line, next, more := cutLine(rest[offset:])
		if string(trimCR(line)) == delim {
			return rest[:offset], next, true, nil
		}
		if !more {
			return nil, nil, true, ErrMissingClosingDelimiter
		}
		offset = len(rest) - len(next)
	}
}

// cutLine splits off the first line (without its \n). more reports whether a
// newline terminated it.
func cutLine(b []byte) (line, rest []byte, more bool) {
	i := bytes.IndexByte(b, '\n')
	if i < 0 {
		return b, nil, false
	}
	return b[:i], b[i+1:], true
}

func trimCR(b []byte) []byte {
	return bytes.TrimSuffix(b, []byte("\r"))
}
