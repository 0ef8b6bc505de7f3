package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/paypoq/storefront/backend"
	"github.com/paypoq/storefront/models"
	"github.com/paypoq/storefront/payment_session"
	"github.com/paypoq/storefront/success"
)

type PaymentHandler interface {
	GetPaymentPage(c echo.Context) error
	ConfirmPayment(c echo.Context) error
	GetSuccess(c echo.Context) error
}

type paymentHandler struct {
	sessions *payment_session.Manager
}

func NewPaymentHandler(sessions *payment_session.Manager) PaymentHandler {
	return &paymentHandler{sessions: sessions}
}

// GetPaymentPage handles GET /pay/:uuid — loads the session record and
// gateway config; card entry data is returned only when both loaded.
func (ph *paymentHandler) GetPaymentPage(c echo.Context) error {
	sessionID := c.Param("uuid")

	session, err := ph.sessions.Load(c.Request().Context(), sessionID)
	if err != nil {
		if errors.Is(err, backend.ErrSessionNotFound) {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Transaction not found"})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to load payment details. Please try again."})
	}

	return c.JSON(http.StatusOK, map[string]any{
		"order":           session.Record(),
		"display_total":   session.DisplayTotal(),
		"publishable_key": session.GatewayConfig().PublishableKey,
	})
}

// ConfirmPayment handles POST /pay/:uuid/confirm. Declines come back
// retryable against the same session; only a succeeded intent moves on
// to the success view.
func (ph *paymentHandler) ConfirmPayment(c echo.Context) error {
	sessionID := c.Param("uuid")

	session, ok := ph.sessions.Get(sessionID)
	if !ok {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Payment session not loaded"})
	}

	var req struct {
		CardToken string `json:"card_token"`
		Name      string `json:"name"`
		Email     string `json:"email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	billing := models.BillingDetails{Name: req.Name, Email: req.Email}
	result, err := session.ConfirmPayment(c.Request().Context(), req.CardToken, billing)
	if err != nil {
		var confirmErr *payment_session.ConfirmationError
		switch {
		case errors.As(err, &confirmErr):
			return c.JSON(http.StatusPaymentRequired, map[string]any{
				"error":     confirmErr.Message,
				"retryable": true,
			})
		case errors.Is(err, payment_session.ErrConfirmationInProgress):
			return c.JSON(http.StatusConflict, map[string]string{"error": "Confirmation already in progress"})
		default:
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "Payment session is not ready"})
		}
	}

	return c.JSON(http.StatusOK, map[string]any{
		"payment_intent": result.Outcome.Succeeded,
		"redirect":       "/success/" + sessionID,
	})
}

// GetSuccess handles GET /success/:uuid. Without a prior succeeded
// confirmation in memory it redirects home instead of rendering — a
// page reload legitimately loses the receipt.
func (ph *paymentHandler) GetSuccess(c echo.Context) error {
	sessionID := c.Param("uuid")

	session, ok := ph.sessions.Get(sessionID)
	if !ok {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	receipt, err := success.Render(session.Result())
	if err != nil {
		return c.Redirect(http.StatusSeeOther, "/")
	}

	return c.JSON(http.StatusOK, map[string]any{
		"receipt":        receipt,
		"display_amount": receipt.DisplayAmount(),
	})
}
