// Package responses defines API response types used by devlog HTTP handlers.
package responses

import (
	"time"

	"git.home.luguber.info/inful/devlog/internal/compiler"
	"git.home.luguber.info/inful/devlog/internal/frontmatter"
	"git.home.luguber.info/inful/devlog/internal/index"
)

// HealthResponse represents the health check API response.
type HealthResponse struct {
	Status   string     `json:"status"`
	Version  string     `json:"version"`
	Uptime   float64    `json:"uptime"`
	Posts    int        `json:"posts"`
	BuildID  string     `json:"build_id,omitempty"`
	Revision string     `json:"revision,omitempty"`
	BuiltAt  *time.Time `json:"built_at,omitempty"`
	Skipped  int        `json:"skipped"`
}

// PostSummary is a post without its body.
type PostSummary struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Date        string   `json:"date"`
	Tags        []string `json:"tags"`
	URL         string   `json:"url"`
}

// PostResponse is a full post.
type PostResponse struct {
	ID          string            `json:"id"`
	Frontmatter frontmatter.Meta  `json:"frontmatter"`
	Body        *compiler.Content `json:"body"`
	Fingerprint string            `json:"fingerprint"`
}

// PageResponse is one page of the post list.
type PageResponse struct {
	View      index.View    `json:"view"`
	Posts     []PostSummary `json:"posts"`
	Total     int           `json:"total"`
	PageSize  int           `json:"page_size"`
	PageCount int           `json:"page_count"`
	HasPrev   bool          `json:"has_prev"`
	HasNext   bool          `json:"has_next"`
	Pages     []int         `json:"pages"`
}

// RoutesResponse lists every post id.
type RoutesResponse struct {
	Routes []string `json:"routes"`
}

// Summarize converts p using url for its canonical address.
func Summarize(p *index.Post, url string) PostSummary {
	return PostSummary{
		ID:          p.ID,
		Title:       p.Frontmatter.Title,
		Description: p.Frontmatter.Description,
		Date:        p.Frontmatter.Date.Format(time.DateOnly),
		Tags:        p.Frontmatter.Tags,
		URL:         url,
	}
}
