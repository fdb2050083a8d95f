package httpserver

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/session"

	"github.com/gin-gonic/gin"
)

func (h *handlers) cartView(c *gin.Context) {
	details, err := h.deps.Cart.Details(c.Request.Context(), currentSession(c).Cart)
	if err != nil {
		h.internalError(c, "cart details", err)
		return
	}
	h.page(c, gin.H{"cart": newCartView(details)})
}

func (h *handlers) cartAdd(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		notFound(c, "product not found")
		return
	}
	raw := c.PostForm("quantity")
	if raw == "" {
		raw = c.PostForm("qty")
	}
	qty, err := parseQuantity(raw)
	if err != nil {
		qty = 1
	}

	s := currentSession(c)
	cart := s.CartOrInit()
	p, err := h.deps.Cart.Add(c.Request.Context(), cart, pid, qty)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if wantsJSON(c) {
				h.reply(c, http.StatusNotFound, gin.H{"success": false, "error": "Product not found."})
				return
			}
			h.flashRedirect(c, session.FlashDanger, "Product not found.", backTarget(c, "/"))
			return
		}
		h.internalError(c, "cart add", err)
		return
	}

	if wantsJSON(c) {
		h.reply(c, http.StatusOK, gin.H{
			"success":      true,
			"product_name": p.Name,
			"cart_count":   len(cart),
		})
		return
	}
	h.flashRedirect(c, session.FlashSuccess, fmt.Sprintf("Added %s to cart.", p.Name), backTarget(c, "/"))
}

func (h *handlers) cartRemove(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		notFound(c, "product not found")
		return
	}
	s := currentSession(c)
	if h.deps.Cart.Remove(s.CartOrInit(), pid) {
		s.AddFlash(session.FlashInfo, "Item removed from cart.")
	}
	h.redirect(c, "/cart")
}

func (h *handlers) cartUpdate(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		notFound(c, "product not found")
		return
	}
	qty, err := parseQuantity(c.DefaultPostForm("quantity", "1"))
	if err != nil {
		h.flashRedirect(c, session.FlashWarning, "Please enter a valid quantity.", "/cart")
		return
	}
	h.deps.Cart.Update(currentSession(c).CartOrInit(), pid, qty)
	h.redirect(c, "/cart")
}

func (h *handlers) cartShare(c *gin.Context) {
	token, err := h.deps.Cart.Share(currentSession(c).Cart)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			h.flashRedirect(c, session.FlashWarning, "Your cart is empty.", "/cart")
			return
		}
		h.internalError(c, "cart share", err)
		return
	}
	shareURL := h.shareURL(c, "/cart/share/"+token)
	if wantsJSON(c) {
		h.reply(c, http.StatusOK, gin.H{"share_url": shareURL})
		return
	}
	h.flashRedirect(c, session.FlashInfo, "Share your cart with this link: "+shareURL, "/cart")
}

func (h *handlers) cartLoadShared(c *gin.Context) {
	cart, err := h.deps.Cart.Load(c.Param("token"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.flashRedirect(c, session.FlashDanger, "Shared cart not found or expired.", "/cart")
			return
		}
		h.internalError(c, "cart load", err)
		return
	}
	currentSession(c).Cart = cart
	h.flashRedirect(c, session.FlashSuccess, "Shared cart loaded.", "/cart")
}

// parseQuantity reads a form quantity, clamping values above the line limit.
func parseQuantity(raw string) (int, error) {
	qty, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		var numErr *strconv.NumError
		if errors.As(err, &numErr) && errors.Is(numErr.Err, strconv.ErrRange) && !strings.HasPrefix(strings.TrimSpace(raw), "-") {
			return domain.MaxLineQuantity, nil
		}
		return 0, err
	}
	if qty > domain.MaxLineQuantity {
		qty = domain.MaxLineQuantity
	}
	return qty, nil
}
