package httpserver

import (
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"storefront/internal/session"

	"github.com/gin-gonic/gin"
)

// save writes the session cookie. It must run before the body is written.
func (h *handlers) save(c *gin.Context) {
	if err := h.deps.Sessions.Save(c.Writer, currentSession(c)); err != nil {
		h.logger.Printf("session save error=%v", err)
	}
}

func (h *handlers) redirect(c *gin.Context, target string) {
	h.save(c)
	c.Redirect(http.StatusFound, target)
}

func (h *handlers) reply(c *gin.Context, status int, body interface{}) {
	h.save(c)
	c.JSON(status, body)
}

// page renders a view model together with pending flashes and the visitor.
func (h *handlers) page(c *gin.Context, body gin.H) {
	s := currentSession(c)
	if body == nil {
		body = gin.H{}
	}
	body["flashes"] = s.TakeFlashes()
	body["user"] = visitorFrom(s)
	h.reply(c, http.StatusOK, body)
}

func (h *handlers) flashRedirect(c *gin.Context, category, message, target string) {
	currentSession(c).AddFlash(category, message)
	h.redirect(c, target)
}

func (h *handlers) internalError(c *gin.Context, what string, err error) {
	h.logger.Printf("%s %s: %s error=%v", c.Request.Method, c.Request.URL.Path, what, err)
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
}

func notFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, gin.H{"error": message})
}

func wantsJSON(c *gin.Context) bool {
	return c.GetHeader("X-Requested-With") == "XMLHttpRequest"
}

// idParam parses a positive numeric path parameter.
func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// safeTarget keeps redirects on this site. Absolute URLs are accepted only
// for the request's own host and are reduced to their path.
func safeTarget(c *gin.Context, raw, fallback string) string {
	if raw == "" {
		return fallback
	}
	u, err := url.Parse(raw)
	if err != nil {
		return fallback
	}
	if u.IsAbs() || u.Host != "" {
		if u.Host != c.Request.Host {
			return fallback
		}
	}
	target := u.RequestURI()
	if !strings.HasPrefix(target, "/") || strings.HasPrefix(target, "//") || strings.Contains(target, `\`) {
		return fallback
	}
	return target
}

func backTarget(c *gin.Context, fallback string) string {
	return safeTarget(c, c.Request.Referer(), fallback)
}

// shareURL builds an absolute link for path.
func (h *handlers) shareURL(c *gin.Context, path string) string {
	base := h.deps.PublicBaseURL
	if base == "" {
		scheme := "http"
		if c.Request.TLS != nil || strings.EqualFold(c.GetHeader("X-Forwarded-Proto"), "https") {
			scheme = "https"
		}
		base = scheme + "://" + c.Request.Host
	}
	return base + path
}

type visitor struct {
	ID      int64  `json:"id"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"admin"`
}

func visitorFrom(s *session.Data) *visitor {
	if !s.Authenticated() {
		return nil
	}
	return &visitor{ID: s.UserID, Name: s.UserName, IsAdmin: s.IsAdmin}
}
