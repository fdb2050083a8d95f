package httpserver

import (
	"errors"
	"fmt"
	"net/http"

	"storefront/internal/domain"
	"storefront/internal/session"

	"github.com/gin-gonic/gin"
)

func (h *handlers) adminDeleteProduct(c *gin.Context) {
	pid, ok := idParam(c, "pid")
	if !ok {
		notFound(c, "product not found")
		return
	}
	ctx := c.Request.Context()
	p, err := h.deps.Catalog.Get(ctx, pid)
	if err == nil {
		err = h.deps.Catalog.Delete(ctx, pid)
	}
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			if wantsJSON(c) {
				h.reply(c, http.StatusNotFound, gin.H{"success": false, "error": "Product not found."})
				return
			}
			h.flashRedirect(c, session.FlashDanger, "Product not found.", "/")
			return
		}
		h.internalError(c, "delete product", err)
		return
	}
	h.logger.Printf("admin user=%d deleted product=%d", currentSession(c).UserID, pid)
	if wantsJSON(c) {
		h.reply(c, http.StatusOK, gin.H{"success": true})
		return
	}
	h.flashRedirect(c, session.FlashSuccess, fmt.Sprintf("Deleted %s.", p.Name), "/")
}

func (h *handlers) orderFeed(c *gin.Context) {
	if h.deps.OrderFeed == nil {
		notFound(c, "order feed disabled")
		return
	}
	h.deps.OrderFeed.Serve(c.Writer, c.Request)
}
