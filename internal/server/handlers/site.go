package handlers

import (
	"bytes"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	ferrors "git.home.luguber.info/inful/devlog/internal/foundation/errors"
	"git.home.luguber.info/inful/devlog/internal/seo"
	"git.home.luguber.info/inful/devlog/internal/server/responses"
)

// SiteHandlers serves the sitemap, the robots policy and post assets.
type SiteHandlers struct {
	source     SnapshotSource
	isDocument func(name string) bool
	now        func() time.Time
}

// NewSiteHandlers creates site handlers. isDocument identifies document
// sources, which are never served.
func NewSiteHandlers(source SnapshotSource, isDocument func(name string) bool) *SiteHandlers {
	return &SiteHandlers{source: source, isDocument: isDocument, now: time.Now}
}

// HandleSitemap serves GET /sitemap.xml.
func (h *SiteHandlers) HandleSitemap(c *gin.Context) {
	snap, ok := current(c, h.source)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := seo.WriteSitemap(&buf, snap.SEO.SitemapEntries(h.now())); err != nil {
		responses.SendClassified(c, ferrors.WrapError(err, ferrors.CategoryInternal, "failed to render sitemap").Build())
		return
	}
	c.Data(http.StatusOK, "application/xml; charset=utf-8", buf.Bytes())
}

// HandleRobots serves GET /robots.txt.
func (h *SiteHandlers) HandleRobots(c *gin.Context) {
	snap, ok := current(c, h.source)
	if !ok {
		return
	}
	c.String(http.StatusOK, snap.SEO.Robots())
}

// HandleAsset serves GET /<public-path>/:id/*asset.
func (h *SiteHandlers) HandleAsset(c *gin.Context) {
	snap, ok := current(c, h.source)
	if !ok {
		return
	}
	post, found := snap.Index.Get(c.Param("id"))
	if !found {
		responses.SendError(c, http.StatusNotFound, responses.ErrorCodePostNotFound, "post not found: "+c.Param("id"))
		return
	}
	file, allowed := post.AssetFile(c.Param("asset"), h.isDocument)
	if !allowed {
		responses.SendError(c, http.StatusNotFound, responses.ErrorCodeNotFound, "asset not found")
		return
	}
	c.File(file)
}
