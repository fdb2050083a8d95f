package httpserver

import (
	"errors"
	"strconv"
	"strings"

	"storefront/internal/domain"
	"storefront/internal/session"
	ordersvc "storefront/internal/service/order"

	"github.com/gin-gonic/gin"
)

func (h *handlers) checkoutPage(c *gin.Context) {
	ctx := c.Request.Context()
	details, err := h.deps.Cart.Details(ctx, currentSession(c).Cart)
	if err != nil {
		h.internalError(c, "cart details", err)
		return
	}
	if len(details.Lines) == 0 {
		h.flashRedirect(c, session.FlashWarning, "Your cart is empty.", "/")
		return
	}
	charities, err := h.deps.Charities.ListActive(ctx)
	if err != nil {
		h.internalError(c, "list charities", err)
		return
	}
	h.page(c, gin.H{"cart": newCartView(details), "charities": newCharityViews(charities)})
}

func (h *handlers) checkout(c *gin.Context) {
	var in ordersvc.CheckoutInput
	if err := c.ShouldBind(&in); err != nil {
		h.flashRedirect(c, session.FlashWarning, "Please fill all required fields.", "/checkout")
		return
	}

	s := currentSession(c)
	order, err := h.deps.Orders.Checkout(c.Request.Context(), s.CartOrInit(), in)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyCart) {
			h.flashRedirect(c, session.FlashWarning, "Your cart is empty.", "/")
			return
		}
		if msg, ok := domain.ValidationMessage(err); ok {
			h.flashRedirect(c, session.FlashWarning, msg, "/checkout")
			return
		}
		h.internalError(c, "checkout", err)
		return
	}
	h.flashRedirect(c, session.FlashSuccess, ordersvc.ConfirmationMessage(*order), "/orders/"+strconv.FormatInt(order.ID, 10))
}

func (h *handlers) orderDetail(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		notFound(c, "order not found")
		return
	}
	ctx := c.Request.Context()
	order, err := h.deps.Orders.Get(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			notFound(c, "order not found")
			return
		}
		h.internalError(c, "get order", err)
		return
	}

	u, err := h.deps.Accounts.Get(ctx, currentSession(c).UserID)
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		h.internalError(c, "get account", err)
		return
	}
	if u == nil || (!u.IsAdmin && !strings.EqualFold(u.Email, order.CustomerEmail)) {
		notFound(c, "order not found")
		return
	}
	h.page(c, gin.H{"order": newOrderView(*order)})
}

func (h *handlers) accountOrders(c *gin.Context) {
	ctx := c.Request.Context()
	u, err := h.deps.Accounts.Get(ctx, currentSession(c).UserID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			currentSession(c).Logout()
			h.flashRedirect(c, session.FlashWarning, "Please log in to continue.", "/login")
			return
		}
		h.internalError(c, "get account", err)
		return
	}
	orders, err := h.deps.Orders.ListByEmail(ctx, u.Email)
	if err != nil {
		h.internalError(c, "list orders", err)
		return
	}
	views := make([]orderView, 0, len(orders))
	for _, o := range orders {
		views = append(views, newOrderView(o))
	}
	h.page(c, gin.H{"orders": views})
}
