package catalog

import (
	"github.com/shopspring/decimal"
)

// Product is one storefront catalog entry.
type Product struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Price       decimal.Decimal `json:"price"`
	Description string          `json:"description"`
}

// Catalog is the static product listing shown on the storefront.
type Catalog struct {
	products []Product
}

func NewCatalog() *Catalog {
	return &Catalog{products: defaultProducts()}
}

func (c *Catalog) List() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// Find returns the product with the given id, or false when it is not
// in the catalog.
func (c *Catalog) Find(id int64) (Product, bool) {
	for _, p := range c.products {
		if p.ID == id {
			return p, true
		}
	}
	return Product{}, false
}

func defaultProducts() []Product {
	price := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return []Product{
		{ID: 1, Name: "Wireless Headphones", Price: price("99.99"), Description: "High-quality wireless headphones with noise cancellation"},
		{ID: 2, Name: "Smart Watch", Price: price("249.99"), Description: "Feature-rich smartwatch with fitness tracking"},
		{ID: 3, Name: "Laptop Stand", Price: price("49.99"), Description: "Ergonomic laptop stand for better posture"},
		{ID: 4, Name: "Mechanical Keyboard", Price: price("129.99"), Description: "RGB mechanical keyboard with cherry switches"},
		{ID: 5, Name: "Wireless Mouse", Price: price("39.99"), Description: "Ergonomic wireless mouse with long battery life"},
		{ID: 6, Name: "USB-C Hub", Price: price("34.99"), Description: "Multi-port USB-C hub with HDMI and USB 3.0"},
		{ID: 7, Name: "Desk Lamp", Price: price("29.99"), Description: "LED desk lamp with adjustable brightness"},
		{ID: 8, Name: "Webcam HD", Price: price("79.99"), Description: "1080p HD webcam with auto-focus"},
	}
}
