package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/paypoq/storefront/cart"
	"github.com/paypoq/storefront/catalog"
)

type CartHandler interface {
	GetCart(c echo.Context) error
	AddItem(c echo.Context) error
	UpdateItem(c echo.Context) error
	RemoveItem(c echo.Context) error
}

type cartHandler struct {
	store   *cart.Store
	catalog *catalog.Catalog
}

func NewCartHandler(store *cart.Store, catalog *catalog.Catalog) CartHandler {
	return &cartHandler{
		store:   store,
		catalog: catalog,
	}
}

type cartView struct {
	Lines  []cart.Line `json:"lines"`
	Totals cart.Totals `json:"totals"`
}

// GetCart handles GET /cart
func (ch *cartHandler) GetCart(c echo.Context) error {
	return c.JSON(http.StatusOK, cartView{
		Lines:  ch.store.Lines(),
		Totals: ch.store.Totals(),
	})
}

// AddItem handles POST /cart/items
func (ch *cartHandler) AddItem(c echo.Context) error {
	var req struct {
		ProductID int64 `json:"product_id"`
		Quantity  int   `json:"quantity"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	product, ok := ch.catalog.Find(req.ProductID)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Product not found"})
	}

	if req.Quantity == 0 {
		req.Quantity = 1
	}
	ch.store.Add(product, req.Quantity)

	return ch.GetCart(c)
}

// UpdateItem handles PUT /cart/items/:id
func (ch *cartHandler) UpdateItem(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product id"})
	}

	var req struct {
		Quantity int `json:"quantity"`
	}
	if err = c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	ch.store.SetQuantity(productID, req.Quantity)
	return ch.GetCart(c)
}

// RemoveItem handles DELETE /cart/items/:id
func (ch *cartHandler) RemoveItem(c echo.Context) error {
	productID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid product id"})
	}

	ch.store.Remove(productID)
	return ch.GetCart(c)
}
