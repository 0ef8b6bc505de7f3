package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paypoq/storefront/catalog"
)

type ProductHandler interface {
	ListProducts(c echo.Context) error
}

type productHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(catalog *catalog.Catalog) ProductHandler {
	return &productHandler{catalog: catalog}
}

// ListProducts handles GET /products
func (ph *productHandler) ListProducts(c echo.Context) error {
	return c.JSON(http.StatusOK, ph.catalog.List())
}
