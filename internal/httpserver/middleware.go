package httpserver

import (
	"errors"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/session"

	"github.com/gin-gonic/gin"
)

const sessionCtxKey = "session"

func (h *handlers) loadSession(c *gin.Context) {
	c.Set(sessionCtxKey, h.deps.Sessions.Load(c.Request))
	c.Next()
}

func currentSession(c *gin.Context) *session.Data {
	if v, ok := c.Get(sessionCtxKey); ok {
		if s, ok := v.(*session.Data); ok {
			return s
		}
	}
	s := &session.Data{}
	c.Set(sessionCtxKey, s)
	return s
}

// requireLogin sends anonymous visitors to /login. GET requests are
// remembered so login can resume them.
func (h *handlers) requireLogin(c *gin.Context) {
	s := currentSession(c)
	if s.Authenticated() {
		c.Next()
		return
	}
	if c.Request.Method == http.MethodGet {
		s.Next = c.Request.URL.RequestURI()
	}
	if wantsJSON(c) {
		h.reply(c, http.StatusUnauthorized, gin.H{"success": false, "error": "login required", "login_url": "/login"})
	} else {
		h.flashRedirect(c, session.FlashWarning, "Please log in to continue.", "/login")
	}
	c.Abort()
}

// requireAdmin checks the role against the stored account, not the cookie.
func (h *handlers) requireAdmin(c *gin.Context) {
	s := currentSession(c)
	u, err := h.deps.Accounts.Get(c.Request.Context(), s.UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.internalError(c, "admin lookup", err)
		c.Abort()
		return
	}
	if u == nil || !u.IsAdmin {
		if s.IsAdmin {
			h.logger.Printf("admin denied user=%d: role not held by account", s.UserID)
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		return
	}
	c.Next()
}
