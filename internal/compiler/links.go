package compiler

import (
	"net/url"
	"strings"

	"git.home.luguber.info/inful/devlog/internal/document"
)

// LinkMarker flags links to other hosts so they open in a new browsing context.
type LinkMarker struct {
	siteHost string
	seen     map[string]struct{}

	External []string // distinct external destinations, document order
}

// NewLinkMarker creates a marker. Links to siteHost stay internal.
func NewLinkMarker(siteHost string) *LinkMarker {
	return &LinkMarker{siteHost: strings.ToLower(siteHost), seen: make(map[string]struct{})}
}

func (m *LinkMarker) Visit(n *document.Node) error {
	if n.Kind != document.KindLink || !m.IsExternal(n.Destination) {
		return nil
	}
	n.External = true
	n.SetAttribute("target", "_blank")
	n.SetAttribute("rel", "noopener noreferrer")
	if _, ok := m.seen[n.Destination]; !ok {
		m.seen[n.Destination] = struct{}{}
		m.External = append(m.External, n.Destination)
	}
	return nil
}

// IsExternal reports whether dest is an http(s) or protocol-relative URL on another host.
func (m *LinkMarker) IsExternal(dest string) bool {
	if !strings.HasPrefix(dest, "//") {
		lower := strings.ToLower(dest)
		if !strings.HasPrefix(lower, "http://") && !strings.HasPrefix(lower, "https://") {
			return false
		}
	}
	u, err := url.Parse(dest)
	if err != nil || u.Host == "" {
		return false
	}
	return !strings.EqualFold(u.Hostname(), m.siteHost) && !strings.EqualFold(u.Host, m.siteHost)
}
