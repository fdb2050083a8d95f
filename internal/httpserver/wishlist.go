package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/session"

	"github.com/gin-gonic/gin"
)

func (h *handlers) wishlistView(c *gin.Context) {
	products, err := h.deps.Wishlist.List(c.Request.Context(), currentSession(c).UserID)
	if err != nil {
		h.internalError(c, "list wishlist", err)
		return
	}
	h.page(c, gin.H{"products": newProductViews(products)})
}

func (h *handlers) wishlistAdd(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		notFound(c, "product not found")
		return
	}
	p, added, err := h.deps.Wishlist.Add(c.Request.Context(), currentSession(c).UserID, pid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if wantsJSON(c) {
				h.reply(c, http.StatusNotFound, gin.H{"success": false, "error": "Product not found."})
				return
			}
			h.flashRedirect(c, session.FlashDanger, "Product not found.", backTarget(c, "/"))
			return
		}
		h.internalError(c, "wishlist add", err)
		return
	}

	if wantsJSON(c) {
		h.reply(c, http.StatusOK, gin.H{"success": true, "added": added, "message": "Added to wishlist"})
		return
	}
	if added {
		h.flashRedirect(c, session.FlashSuccess, fmt.Sprintf("Added %s to your wishlist.", p.Name), backTarget(c, "/"))
		return
	}
	h.flashRedirect(c, session.FlashInfo, fmt.Sprintf("%s is already in your wishlist.", p.Name), backTarget(c, "/"))
}

func (h *handlers) wishlistRemove(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		notFound(c, "product not found")
		return
	}
	p, removed, err := h.deps.Wishlist.Remove(c.Request.Context(), currentSession(c).UserID, pid)
	if err != nil {
		h.internalError(c, "wishlist remove", err)
		return
	}
	if wantsJSON(c) {
		h.reply(c, http.StatusOK, gin.H{"success": true, "removed": removed, "message": "Removed from wishlist"})
		return
	}
	if removed {
		name := "item"
		if p != nil {
			name = p.Name
		}
		currentSession(c).AddFlash(session.FlashInfo, fmt.Sprintf("Removed %s from your wishlist.", name))
	}
	h.redirect(c, backTarget(c, "/wishlist"))
}

func (h *handlers) wishlistShare(c *gin.Context) {
	s := currentSession(c)
	name := s.UserName
	if name == "" {
		name = "Someone"
	}
	shared, err := h.deps.Wishlist.Share(c.Request.Context(), s.UserID, name)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyWishlist) {
			h.flashRedirect(c, session.FlashWarning, "Your wishlist is empty.", "/wishlist")
			return
		}
		h.internalError(c, "wishlist share", err)
		return
	}
	shareURL := h.shareURL(c, "/wishlist/shared/"+shared.Token)
	if wantsJSON(c) {
		h.reply(c, http.StatusOK, gin.H{"share_url": shareURL, "expires_at": shared.ExpiresAt})
		return
	}
	h.flashRedirect(c, session.FlashInfo, "Share your wishlist with this link: "+shareURL, "/wishlist")
}

func (h *handlers) viewSharedWishlist(c *gin.Context) {
	view, err := h.deps.Wishlist.ViewShared(c.Request.Context(), c.Param("token"))
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.flashRedirect(c, session.FlashDanger, "Shared wishlist not found or expired.", "/")
			return
		}
		h.internalError(c, "view shared wishlist", err)
		return
	}
	h.page(c, gin.H{
		"owner_name":  view.OwnerName,
		"shared_date": view.CreatedAt,
		"expires_at":  view.ExpiresAt,
		"products":    newProductViews(view.Products),
	})
}

func (h *handlers) wishlistMoveToCart(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		notFound(c, "product not found")
		return
	}
	s := currentSession(c)
	alsoRemove := c.PostForm("remove_from_wishlist") == "true"
	p, err := h.deps.Wishlist.MoveToCart(c.Request.Context(), s.UserID, s.CartOrInit(), pid, alsoRemove)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			h.flashRedirect(c, session.FlashDanger, "Product not found.", "/wishlist")
			return
		}
		h.internalError(c, "wishlist move to cart", err)
		return
	}
	h.flashRedirect(c, session.FlashSuccess, fmt.Sprintf("Added %s to cart.", p.Name), "/wishlist")
}

func (h *handlers) wishlistClear(c *gin.Context) {
	if _, err := h.deps.Wishlist.Clear(c.Request.Context(), currentSession(c).UserID); err != nil {
		h.internalError(c, "wishlist clear", err)
		return
	}
	h.flashRedirect(c, session.FlashSuccess, "Wishlist cleared successfully.", "/wishlist")
}
