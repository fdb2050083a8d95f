package domain

import "time"

// WishlistSnapshot is the immutable payload stored with a shared wishlist.
type WishlistSnapshot struct {
	UserName string                    `json:"user_name"`
	Products []WishlistSnapshotProduct `json:"products"`
}

type WishlistSnapshotProduct struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	PriceCents int64  `json:"price_cents"`
}

type SharedWishlist struct {
	Token     string           `json:"token"`
	UserID    int64            `json:"userId"`
	Snapshot  WishlistSnapshot `json:"snapshot"`
	CreatedAt time.Time        `json:"createdAt"`
	ExpiresAt time.Time        `json:"expiresAt"`
}

// Expired reports whether the share link is past its expiry at now.
func (s SharedWishlist) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}
