package markdown

import (
	"fmt"
	"strings"

	"github.com/yuin/goldmark/ast"
)

// FenceError reports a code fence that is never closed.
type FenceError struct {
	Line  int    // 1-based line of the opening fence
	Fence string // the opening marker, e.g. "```"
}

func (e *FenceError) Error() string {
	return fmt.Sprintf("unterminated code fence %q opened on line %d", e.Fence, e.Line)
}

// CheckFences reports the first fenced code block that has no closing fence.
// goldmark silently extends such a block to the end of its container, which
// swallows the rest of the post. Block extents come from the parsed tree, so
// indented code blocks, list items and block quotes follow CommonMark.
func (d *Doc) CheckFences() error {
	next := 1 // first source line not yet claimed by a block
	var found *FenceError
	_ = ast.Walk(d.root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering || n.Type() != ast.TypeBlock {
			return ast.WalkContinue, nil
		}
		fcb, ok := n.(*ast.FencedCodeBlock)
		if !ok {
			if lines := n.Lines(); lines != nil && lines.Len() > 0 {
				next = max(next, d.lineOf(lines.At(lines.Len()-1).Start)+1)
			}
			return ast.WalkContinue, nil
		}

		open, char, length := d.opener(fcb, next)
		closeLine := open + 1
		if lines := fcb.Lines(); lines.Len() > 0 {
			closeLine = d.lineOf(lines.At(lines.Len()-1).Start) + 1
		}
		if !d.closes(closeLine, char, length) {
			found = &FenceError{Line: open, Fence: strings.Repeat(string(char), length)}
			return ast.WalkStop, nil
		}
		next = closeLine + 1
		return ast.WalkSkipChildren, nil
	})
	if found != nil {
		return found
	}
	return nil
}

// opener locates the opening fence line of n and its marker. from is the
// first line the fence can be on.
func (d *Doc) opener(n *ast.FencedCodeBlock, from int) (line int, char byte, length int) {
	switch {
	case n.Info != nil:
		line = d.lineOf(n.Info.Segment.Start)
		end := n.Info.Segment.Start
		for end > 0 && (d.source[end-1] == ' ' || d.source[end-1] == '\t') {
			end--
		}
		char, length = runBefore(d.source, end)
		return line, char, length
	case n.Lines().Len() > 0:
		line = d.lineOf(n.Lines().At(0).Start) - 1
	default:
		// Empty block without info string: the first fence-looking line
		// after the previous block.
		line = from
		for l := from; l <= d.lineCount(); l++ {
			_, k := fenceRun(stripContainers(d.line(l), true))
			if k >= 3 {
				line = l
				break
			}
		}
	}
	text := strings.TrimRight(d.line(line), " \t")
	char, length = runBefore([]byte(text), len(text))
	return line, char, length
}

// closes reports whether line l is a closing fence for char and length.
func (d *Doc) closes(l int, char byte, length int) bool {
	if l > d.lineCount() {
		return false
	}
	text := stripContainers(d.line(l), false)
	c, n := fenceRun(text)
	return c == char && n >= length && strings.TrimSpace(text[n:]) == ""
}

func (d *Doc) lineCount() int { return len(d.lineAt) }

// line returns the text of 1-based line l without its line ending.
func (d *Doc) line(l int) string {
	if l < 1 || l > len(d.lineAt) {
		return ""
	}
	start, end := d.lineAt[l-1], len(d.source)
	if l < len(d.lineAt) {
		end = d.lineAt[l]
	}
	return strings.TrimRight(string(d.source[start:end]), "\r\n")
}

// runBefore returns the fence character and run length ending at end.
func runBefore(src []byte, end int) (byte, int) {
	if end == 0 || (src[end-1] != '`' && src[end-1] != '~') {
		return 0, 0
	}
	c := src[end-1]
	n := 0
	for end-n > 0 && src[end-n-1] == c {
		n++
	}
	return c, n
}

// stripContainers removes indentation and block quote markers. With
// listMarkers it also removes bullet and ordered list markers.
func stripContainers(line string, listMarkers bool) string {
	for {
		line = strings.TrimLeft(line, " \t")
		switch {
		case strings.HasPrefix(line, ">"):
			line = line[1:]
		case listMarkers && listMarkerLen(line) > 0:
			line = line[listMarkerLen(line):]
		default:
			return line
		}
	}
}

func listMarkerLen(line string) int {
	if len(line) >= 2 && strings.ContainsRune("-*+", rune(line[0])) && (line[1] == ' ' || line[1] == '\t') {
		return 2
	}
	i := 0
	for i < len(line) && i < 9 && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i+1 < len(line) && (line[i] == '.' || line[i] == ')') && (line[i+1] == ' ' || line[i+1] == '\t') {
		return i + 2
	}
	return 0
}

func fenceRun(line string) (byte, int) {
	if line == "" || (line[0] != '`' && line[0] != '~') {
		return 0, 0
	}
	c := line[0]
	n := 0
	for n < len(line) && line[n] == c {
		n++
	}
	return c, n
}
