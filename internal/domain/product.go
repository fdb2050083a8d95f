package domain

import "time"

const DefaultProductImage = "https://via.placeholder.com/300x200?text=No+Image"

type Product struct {
	ID          int64     `json:"id"`
	Key         string    `json:"key"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Category    string    `json:"category"`
	Stock       int       `json:"stock"`
	ImageURL    string    `json:"imageUrl"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ProductFilter narrows catalog listings. Empty fields match everything.
type ProductFilter struct {
	Query    string
	Category string
}
