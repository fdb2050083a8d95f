package domain

// MaxLineQuantity bounds a single cart line. Larger requests are clamped.
const MaxLineQuantity = 999

// Cart maps product id to quantity. It lives in the session until checkout.
type Cart map[int64]int

// Add increments the quantity for productID, treating qty below 1 as 1.
// The line never exceeds MaxLineQuantity.
func (c Cart) Add(productID int64, qty int) {
	if qty < 1 {
		qty = 1
	}
	current := c[productID]
	if current < 0 {
		current = 0
	}
	if qty > MaxLineQuantity-current {
		c[productID] = MaxLineQuantity
		return
	}
	c[productID] = current + qty
}

// Set overwrites the quantity; a non-positive qty removes the line.
func (c Cart) Set(productID int64, qty int) {
	if qty <= 0 {
		delete(c, productID)
		return
	}
	if qty > MaxLineQuantity {
		qty = MaxLineQuantity
	}
	c[productID] = qty
}

// ValidQuantity reports whether qty may appear on a cart line.
func ValidQuantity(qty int) bool {
	return qty >= 1 && qty <= MaxLineQuantity
}

func (c Cart) Remove(productID int64) {
	delete(c, productID)
}

func (c Cart) Clone() Cart {
	out := make(Cart, len(c))
	for k, v := range c {
		out[k] = v
	}
	return out
}

// CartLine is a cart entry resolved against the live catalog.
type CartLine struct {
	Product       Product `json:"product"`
	Quantity      int     `json:"qty"`
	SubtotalCents int64   `json:"subtotalCents"`
}

type CartDetails struct {
	Lines      []CartLine `json:"items"`
	TotalCents int64      `json:"totalCents"`
}
