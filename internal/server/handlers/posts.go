package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"git.home.luguber.info/inful/devlog/internal/index"
	"git.home.luguber.info/inful/devlog/internal/server/responses"
)

const maxPageSize = 100

// PostHandlers serves the read API over the index.
type PostHandlers struct {
	source     SnapshotSource
	pageSize   int
	recent     int
	pageWindow int
}

// NewPostHandlers creates post handlers with listing defaults.
func NewPostHandlers(source SnapshotSource, pageSize, recent, pageWindow int) *PostHandlers {
	return &PostHandlers{source: source, pageSize: pageSize, recent: recent, pageWindow: pageWindow}
}

// HandleList serves GET /api/posts?tag=&page=&size=.
func (h *PostHandlers) HandleList(c *gin.Context) {
	snap, ok := current(c, h.source)
	if !ok {
		return
	}
	page, ok := intQuery(c, "page", 0, 0, -1)
	if !ok {
		return
	}
	size, ok := intQuery(c, "size", h.pageSize, 1, maxPageSize)
	if !ok {
		return
	}

	view := index.View{Tag: strings.TrimSpace(c.Query("tag")), Page: page}
	p := index.Select(snap.Index.OrderedByDate(), view, size)
	resp := responses.PageResponse{
		View:      p.View,
		Posts:     make([]responses.PostSummary, 0, len(p.Posts)),
		Total:     p.Total,
		PageSize:  p.PageSize,
		PageCount: p.PageCount,
		HasPrev:   p.HasPrev,
		HasNext:   p.HasNext,
		Pages:     index.PageWindow(page, p.PageCount, h.pageWindow),
	}
	for _, post := range p.Posts {
		resp.Posts = append(resp.Posts, responses.Summarize(post, snap.SEO.PostURL(post.ID)))
	}
	c.JSON(http.StatusOK, resp)
}

// HandleGet serves GET /api/posts/:id with the fingerprint as ETag.
func (h *PostHandlers) HandleGet(c *gin.Context) {
	snap, ok := current(c, h.source)
	if !ok {
		return
	}
	post, found := snap.Index.Get(c.Param("id"))
	if !found {
		responses.SendError(c, http.StatusNotFound, responses.ErrorCodePostNotFound, "post not found: "+c.Param("id"))
		return
	}

	etag := strconv.Quote(post.Fingerprint)
	c.Header("ETag", etag)
	if match := c.GetHeader("If-None-Match"); match != "" && etagMatches(match, etag) {
		c.Status(http.StatusNotModified)
		return
	}
	c.JSON(http.StatusOK, responses.PostResponse{
		ID:          post.ID,
		Frontmatter: post.Frontmatter,
		Body:        post.Body,
		Fingerprint: post.Fingerprint,
	})
}

// HandleMeta serves GET /api/posts/:id/meta.
func (h *PostHandlers) HandleMeta(c *gin.Context) {
	snap, ok := current(c, h.source)
	if !ok {
		return
	}
	record, found := snap.SEO.MetadataFor(c.Param("id"))
	if !found {
		responses.SendError(c, http.StatusNotFound, responses.ErrorCodePostNotFound, "post not found: "+c.Param("id"))
		return
	}
	c.JSON(http.StatusOK, record)
}

// HandleTags serves GET /api/tags.
func (h *PostHandlers) HandleTags(c *gin.Context) {
	snap, ok := current(c, h.source)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, index.Tags(snap.Index.All()))
}

// HandleRecent serves GET /api/recent?n=.
func (h *PostHandlers) HandleRecent(c *gin.Context) {
	snap, ok := current(c, h.source)
	if !ok {
		return
	}
	n, ok := intQuery(c, "n", h.recent, 0, maxPageSize)
	if !ok {
		return
	}
	posts := snap.Index.Recent(n)
	out := make([]responses.PostSummary, 0, len(posts))
	for _, p := range posts {
		out = append(out, responses.Summarize(p, snap.SEO.PostURL(p.ID)))
	}
	c.JSON(http.StatusOK, out)
}

// HandleRoutes serves GET /api/routes.
func (h *PostHandlers) HandleRoutes(c *gin.Context) {
	snap, ok := current(c, h.source)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, responses.RoutesResponse{Routes: snap.SEO.ListRoutes()})
}

// intQuery parses an integer query parameter. hi < 0 means unbounded.
func intQuery(c *gin.Context, key string, def, lo, hi int) (int, bool) {
	raw := c.Query(key)
	if raw == "" {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < lo || (hi >= 0 && v > hi) {
		responses.SendError(c, http.StatusBadRequest, responses.ErrorCodeInvalidQuery, "invalid "+key+": "+raw)
		return 0, false
	}
	return v, true
}

func etagMatches(header, etag string) bool {
	for _, candidate := range strings.Split(header, ",") {
		candidate = strings.TrimPrefix(strings.TrimSpace(candidate), "W/")
		if candidate == "*" || candidate == etag {
			return true
		}
	}
	return false
}
