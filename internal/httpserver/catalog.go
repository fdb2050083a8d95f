package httpserver

import (
	"errors"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
)

func (h *handlers) index(c *gin.Context) {
	ctx := c.Request.Context()
	filter := domain.ProductFilter{Query: c.Query("q"), Category: c.Query("category")}

	products, err := h.deps.Catalog.List(ctx, filter)
	if err != nil {
		h.internalError(c, "list products", err)
		return
	}
	categories, err := h.deps.Catalog.Categories(ctx)
	if err != nil {
		h.internalError(c, "list categories", err)
		return
	}

	wishlistIDs := []int64{}
	if s := currentSession(c); s.Authenticated() {
		ids, err := h.deps.Wishlist.ProductIDs(ctx, s.UserID)
		if err != nil {
			h.internalError(c, "wishlist ids", err)
			return
		}
		if ids != nil {
			wishlistIDs = ids
		}
	}

	h.page(c, gin.H{
		"products":      newProductViews(products),
		"q":             filter.Query,
		"category":      filter.Category,
		"categories":    categories,
		"user_wishlist": wishlistIDs,
	})
}

func (h *handlers) productDetail(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		notFound(c, "product not found")
		return
	}
	ctx := c.Request.Context()
	p, err := h.deps.Catalog.Get(ctx, pid)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c, "product not found")
			return
		}
		h.internalError(c, "get product", err)
		return
	}

	inWishlist := false
	if s := currentSession(c); s.Authenticated() {
		inWishlist, err = h.deps.Wishlist.Contains(ctx, s.UserID, pid)
		if err != nil {
			h.internalError(c, "wishlist contains", err)
			return
		}
	}
	h.page(c, gin.H{"product": newProductView(*p), "in_wishlist": inWishlist})
}
