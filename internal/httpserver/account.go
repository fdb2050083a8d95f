package httpserver

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/session"
	accountsvc "storefront/internal/service/account"

	"github.com/gin-gonic/gin"
)

func (h *handlers) signupPage(c *gin.Context) {
	h.page(c, gin.H{"email": c.Query("email")})
}

func (h *handlers) signup(c *gin.Context) {
	var in accountsvc.SignupInput
	if err := c.ShouldBind(&in); err != nil {
		h.flashRedirect(c, session.FlashDanger, "All fields are required.", "/signup")
		return
	}
	if _, err := h.deps.Accounts.Signup(c.Request.Context(), in); err != nil {
		if msg, ok := domain.ValidationMessage(err); ok {
			h.flashRedirect(c, session.FlashDanger, msg, "/signup")
			return
		}
		if errors.Is(err, accountsvc.ErrEmailTaken) {
			h.flashRedirect(c, session.FlashWarning, "An account with this email already exists. Please login instead.", "/login")
			return
		}
		h.logger.Printf("signup error=%v", err)
		h.flashRedirect(c, session.FlashDanger, "An error occurred while creating your account. Please try again.", "/signup")
		return
	}
	h.flashRedirect(c, session.FlashSuccess, "Account created successfully! Please login with your credentials.", "/login")
}

func (h *handlers) loginPage(c *gin.Context) {
	h.page(c, nil)
}

func (h *handlers) login(c *gin.Context) {
	email := strings.TrimSpace(c.PostForm("email"))
	u, err := h.deps.Accounts.Login(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		switch {
		case errors.Is(err, accountsvc.ErrAccountNotFound):
			h.flashRedirect(c, session.FlashWarning, "Account not found. Please sign up first.", "/signup?email="+url.QueryEscape(email))
		case errors.Is(err, accountsvc.ErrInvalidPassword):
			h.flashRedirect(c, session.FlashDanger, "Invalid password. Please try again.", "/login")
		default:
			if msg, ok := domain.ValidationMessage(err); ok {
				h.flashRedirect(c, session.FlashDanger, msg, "/login")
				return
			}
			h.internalError(c, "login", err)
		}
		return
	}

	s := currentSession(c)
	next := s.Next
	s.Next = ""
	s.Login(*u)
	h.flashRedirect(c, session.FlashSuccess, fmt.Sprintf("Welcome back, %s!", u.Name), safeTarget(c, next, "/"))
}

func (h *handlers) loginSignup(c *gin.Context) {
	h.redirect(c, "/login")
}

func (h *handlers) logout(c *gin.Context) {
	currentSession(c).Logout()
	h.flashRedirect(c, session.FlashInfo, "Logged out successfully!", "/")
}
