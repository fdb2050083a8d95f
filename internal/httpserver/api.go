package httpserver

import (
	"net/http"

	"storefront/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/tealeg/xlsx"
)

type apiProduct struct {
	ID         int64   `json:"id"`
	Name       string  `json:"name"`
	Price      float64 `json:"price"`
	PriceCents int64   `json:"price_cents"`
	ImageURL   string  `json:"image_url"`
	Category   string  `json:"category"`
	Stock      int     `json:"stock"`
}

func (h *handlers) apiProducts(c *gin.Context) {
	products, err := h.deps.Catalog.List(c.Request.Context(), domain.ProductFilter{})
	if err != nil {
		h.internalError(c, "list products", err)
		return
	}
	out := make([]apiProduct, 0, len(products))
	for _, p := range products {
		out = append(out, apiProduct{
			ID:         p.ID,
			Name:       p.Name,
			Price:      domain.AmountFloat(p.PriceCents),
			PriceCents: p.PriceCents,
			ImageURL:   p.ImageURL,
			Category:   p.Category,
			Stock:      p.Stock,
		})
	}
	c.JSON(http.StatusOK, out)
}

var xlsxHeaders = []string{"ID", "Name", "Category", "Price", "Stock", "Image", "CreatedAt"}

func (h *handlers) apiProductsXLSX(c *gin.Context) {
	products, err := h.deps.Catalog.List(c.Request.Context(), domain.ProductFilter{})
	if err != nil {
		h.internalError(c, "list products", err)
		return
	}

	file := xlsx.NewFile()
	sheet, err := file.AddSheet("Products")
	if err != nil {
		h.internalError(c, "create sheet", err)
		return
	}
	header := sheet.AddRow()
	for _, name := range xlsxHeaders {
		header.AddCell().SetValue(name)
	}
	for _, p := range products {
		row := sheet.AddRow()
		row.AddCell().SetValue(p.ID)
		row.AddCell().SetValue(p.Name)
		row.AddCell().SetValue(p.Category)
		row.AddCell().SetValue(domain.FormatAmount(p.PriceCents))
		row.AddCell().SetValue(p.Stock)
		row.AddCell().SetValue(p.ImageURL)
		row.AddCell().SetValue(p.CreatedAt.UTC().Format("2006-01-02 15:04:05"))
	}

	c.Header("Content-Disposition", "attachment; filename=products.xlsx")
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err := file.Write(c.Writer); err != nil {
		h.logger.Printf("write products.xlsx error=%v", err)
	}
}
