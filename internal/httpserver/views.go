package httpserver

import (
	"time"

	"storefront/internal/domain"
)

type productView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       string `json:"price"`
	PriceCents  int64  `json:"price_cents"`
	Category    string `json:"category"`
	Stock       int    `json:"stock"`
	ImageURL    string `json:"image_url"`
}

func newProductView(p domain.Product) productView {
	return productView{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Price:       domain.FormatAmount(p.PriceCents),
		PriceCents:  p.PriceCents,
		Category:    p.Category,
		Stock:       p.Stock,
		ImageURL:    p.ImageURL,
	}
}

func newProductViews(products []domain.Product) []productView {
	out := make([]productView, 0, len(products))
	for _, p := range products {
		out = append(out, newProductView(p))
	}
	return out
}

type cartLineView struct {
	Product       productView `json:"product"`
	Quantity      int         `json:"qty"`
	Subtotal      string      `json:"subtotal"`
	SubtotalCents int64       `json:"subtotal_cents"`
}

type cartView struct {
	Items      []cartLineView `json:"items"`
	Total      string         `json:"total"`
	TotalCents int64          `json:"total_cents"`
}

func newCartView(d domain.CartDetails) cartView {
	v := cartView{
		Items:      make([]cartLineView, 0, len(d.Lines)),
		Total:      domain.FormatAmount(d.TotalCents),
		TotalCents: d.TotalCents,
	}
	for _, l := range d.Lines {
		v.Items = append(v.Items, cartLineView{
			Product:       newProductView(l.Product),
			Quantity:      l.Quantity,
			Subtotal:      domain.FormatAmount(l.SubtotalCents),
			SubtotalCents: l.SubtotalCents,
		})
	}
	return v
}

type orderItemView struct {
	ProductID   *int64 `json:"product_id"`
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
	UnitPrice   string `json:"unit_price"`
	Subtotal    string `json:"subtotal"`
}

type orderView struct {
	ID            int64           `json:"id"`
	CustomerName  string          `json:"customer_name"`
	CustomerEmail string          `json:"customer_email"`
	Address       string          `json:"address"`
	Total         string          `json:"total"`
	TotalCents    int64           `json:"total_cents"`
	Donation      string          `json:"donation"`
	DonationCents int64           `json:"donation_cents"`
	CharityName   string          `json:"charity_name,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	Items         []orderItemView `json:"items,omitempty"`
}

func newOrderView(o domain.Order) orderView {
	v := orderView{
		ID:            o.ID,
		CustomerName:  o.CustomerName,
		CustomerEmail: o.CustomerEmail,
		Address:       o.Address,
		Total:         domain.FormatAmount(o.TotalCents),
		TotalCents:    o.TotalCents,
		Donation:      domain.FormatAmount(o.DonationCents),
		DonationCents: o.DonationCents,
		CharityName:   o.CharityName,
		CreatedAt:     o.CreatedAt,
	}
	for _, it := range o.Items {
		v.Items = append(v.Items, orderItemView{
			ProductID:   it.ProductID,
			ProductName: it.ProductName,
			Quantity:    it.Quantity,
			UnitPrice:   domain.FormatAmount(it.UnitPriceCents),
			Subtotal:    domain.FormatAmount(it.SubtotalCents()),
		})
	}
	return v
}

type charityView struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Website     string `json:"website,omitempty"`
}

func newCharityViews(charities []domain.Charity) []charityView {
	out := make([]charityView, 0, len(charities))
	for _, c := range charities {
		out = append(out, charityView{ID: c.ID, Name: c.Name, Description: c.Description, Website: c.Website})
	}
	return out
}
