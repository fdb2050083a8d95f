// Package events publishes order lifecycle events to external sinks.
package events

import (
	"context"
	"errors"
	"time"

	"storefront/internal/domain"
)

const TypeOrderPlaced = "order.placed"

// Publisher receives every order after it has been committed.
type Publisher interface {
	PublishOrderPlaced(ctx context.Context, order domain.Order) error
}

// OrderPlaced is the wire payload for TypeOrderPlaced.
type OrderPlaced struct {
	Type          string           `json:"type"`
	OrderID       int64            `json:"orderId"`
	CustomerName  string           `json:"customerName"`
	CustomerEmail string           `json:"customerEmail"`
	TotalCents    int64            `json:"totalCents"`
	DonationCents int64            `json:"donationCents"`
	CharityName   string           `json:"charityName,omitempty"`
	Items         []OrderPlacedRow `json:"items"`
	PlacedAt      time.Time        `json:"placedAt"`
}

type OrderPlacedRow struct {
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

func NewOrderPlaced(o domain.Order) OrderPlaced {
	ev := OrderPlaced{
		Type:          TypeOrderPlaced,
		OrderID:       o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		TotalCents:    o.TotalCents,
		DonationCents: o.DonationCents,
		CharityName:   o.CharityName,
		Items:         make([]OrderPlacedRow, 0, len(o.Items)),
		PlacedAt:      o.CreatedAt.UTC(),
	}
	for _, it := range o.Items {
		ev.Items = append(ev.Items, OrderPlacedRow{
			ProductName:    it.ProductName,
			Quantity:       it.Quantity,
			UnitPriceCents: it.UnitPriceCents,
		})
	}
	return ev
}

// Nop discards events.
type Nop struct{}

func (Nop) PublishOrderPlaced(context.Context, domain.Order) error { return nil }

// Fanout forwards each event to every publisher and joins their errors.
type Fanout []Publisher

func (f Fanout) PublishOrderPlaced(ctx context.Context, order domain.Order) error {
	var errs []error
	for _, p := range f {
		if p == nil {
			continue
		}
		if err := p.PublishOrderPlaced(ctx, order); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
