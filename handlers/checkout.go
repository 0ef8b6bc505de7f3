package handlers

import (
	"errors"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/paypoq/storefront/backend"
	"github.com/paypoq/storefront/cart"
	"github.com/paypoq/storefront/checkout"
	"github.com/paypoq/storefront/config"
)

type CheckoutHandler interface {
	Checkout(c echo.Context) error
}

type checkoutHandler struct {
	cfg     *config.Config
	store   *cart.Store
	gateway backend.SessionGateway
	logger  *zap.Logger

	mu sync.Mutex
	// submitting is reserved under mu before the submit runs, so two
	// overlapping requests can never both enter Submit.
	submitting bool
}

func NewCheckoutHandler(cfg *config.Config, store *cart.Store, gateway backend.SessionGateway, logger *zap.Logger) CheckoutHandler {
	return &checkoutHandler{
		cfg:     cfg,
		store:   store,
		gateway: gateway,
		logger:  logger,
	}
}

// Checkout handles POST /checkout. An empty cart bounces back to
// browsing; a duplicate submit while one is in flight is rejected so a
// double click can never mint two sessions.
func (ch *checkoutHandler) Checkout(c echo.Context) error {

	var form checkout.Form
	if err := c.Bind(&form); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	ch.mu.Lock()
	if ch.submitting {
		ch.mu.Unlock()
		return c.JSON(http.StatusConflict, map[string]string{"error": "Submission already in progress"})
	}
	flow, err := checkout.NewFlow(ch.cfg, ch.store, ch.gateway, ch.logger)
	if err != nil {
		ch.mu.Unlock()
		if errors.Is(err, checkout.ErrCartEmpty) {
			return c.Redirect(http.StatusSeeOther, "/")
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to start checkout"})
	}
	ch.submitting = true
	ch.mu.Unlock()

	redirectURL, err := flow.Submit(c.Request().Context(), &form)

	ch.mu.Lock()
	ch.submitting = false
	ch.mu.Unlock()

	if err != nil {
		var validationErrs checkout.ValidationErrors
		if errors.As(err, &validationErrs) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]any{"errors": validationErrs})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{"error": flow.FailureMessage()})
	}

	return c.Redirect(http.StatusSeeOther, redirectURL)
}
