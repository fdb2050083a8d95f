package domain

import "time"

type Order struct {
	ID            int64       `json:"id"`
	CustomerName  string      `json:"customerName"`
	CustomerEmail string      `json:"customerEmail"`
	Address       string      `json:"address"`
	TotalCents    int64       `json:"totalCents"`
	DonationCents int64       `json:"donationCents"`
	CharityName   string      `json:"charityName,omitempty"`
	CreatedAt     time.Time   `json:"createdAt"`
	Items         []OrderItem `json:"items,omitempty"`
}

// OrderItem freezes the product name and unit price at checkout time.
// ProductID is nil once the product has been removed from the catalog.
type OrderItem struct {
	ID             int64  `json:"id"`
	OrderID        int64  `json:"orderId"`
	ProductID      *int64 `json:"productId,omitempty"`
	ProductName    string `json:"productName"`
	Quantity       int    `json:"quantity"`
	UnitPriceCents int64  `json:"unitPriceCents"`
}

func (i OrderItem) SubtotalCents() int64 {
	return i.UnitPriceCents * int64(i.Quantity)
}

// ItemsTotalCents sums the line subtotals, excluding the donation.
func (o Order) ItemsTotalCents() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.SubtotalCents()
	}
	return total
}
