package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/paypoq/storefront/backend"
	"github.com/paypoq/storefront/cart"
	"github.com/paypoq/storefront/catalog"
	"github.com/paypoq/storefront/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Organization: config.OrganizationConfig{ID: "ORG_TEST"},
		Checkout:     config.CheckoutConfig{Domain: "https://pay.example.com"},
	}
}

func filledCart(t *testing.T) *cart.Store {
	t.Helper()
	store := cart.NewStore()
	store.Add(catalog.Product{ID: 1, Name: "Wireless Headphones", Price: decimal.RequireFromString("99.99")}, 1)
	store.Add(catalog.Product{ID: 2, Name: "Smart Watch", Price: decimal.RequireFromString("249.99")}, 2)
	return store
}

func validForm() *Form {
	return &Form{
		FirstName:   "Ada",
		LastName:    "Lovelace",
		Email:       "ada@example.com",
		CountryCode: "+44",
		Phone:       "7400123456",
		Country:     "United Kingdom",
		Address:     "1 Analytical Way",
		City:        "London",
		PostalCode:  "EC1A 1BB",
		Delivery:    "royal-mail",
		Payment:     "bank-card",
	}
}

func TestNewFlowRejectsEmptyCart(t *testing.T) {
	_, err := NewFlow(testConfig(), cart.NewStore(), &gatewayMock{}, zap.NewNop())
	assert.ErrorIs(t, err, ErrCartEmpty)
}

func TestValidationFailureNeverContactsGateway(t *testing.T) {
	gateway := &gatewayMock{uuid: "ignored"}
	flow, err := NewFlow(testConfig(), filledCart(t), gateway, zap.NewNop())
	require.NoError(t, err)

	form := validForm()
	form.Email = "not-an-email"

	_, err = flow.Submit(context.Background(), form)

	var validationErrs ValidationErrors
	require.ErrorAs(t, err, &validationErrs)
	assert.Equal(t, 0, gateway.calls())
	assert.Equal(t, StateEditing, flow.State())
}

func TestSubmitCreatesSessionAndClearsCart(t *testing.T) {
	gateway := &gatewayMock{uuid: "3f6c0d7e-8a21-4c8e-9f1a-0b5d2c4e6a80"}
	store := filledCart(t)
	flow, err := NewFlow(testConfig(), store, gateway, zap.NewNop())
	require.NoError(t, err)

	redirectURL, err := flow.Submit(context.Background(), validForm())
	require.NoError(t, err)

	assert.Equal(t, "https://pay.example.com/3f6c0d7e-8a21-4c8e-9f1a-0b5d2c4e6a80", redirectURL)
	assert.Equal(t, StateRedirecting, flow.State())
	assert.True(t, store.IsEmpty(), "cart must be cleared before the redirect is handed out")
	assert.Equal(t, 1, gateway.calls())

	request := gateway.request()
	require.NotNil(t, request)
	assert.Equal(t, "ORG_TEST", request.OrganizationID)
	assert.Equal(t, "GBP", request.Currency)
	assert.Equal(t, "Ada Lovelace", request.CustomerName)
	assert.Equal(t, "ada@example.com", request.CustomerEmail)
	assert.True(t, request.Amount.Equal(decimal.RequireFromString("599.97")))
	assert.Len(t, request.OrderReference, 6)
}

func TestSubmitFailurePreservesCartForRetry(t *testing.T) {
	gateway := &gatewayMock{createErr: &backend.SessionCreationError{Message: "organization not active"}}
	store := filledCart(t)
	flow, err := NewFlow(testConfig(), store, gateway, zap.NewNop())
	require.NoError(t, err)

	_, err = flow.Submit(context.Background(), validForm())
	require.Error(t, err)

	assert.Equal(t, StateFailed, flow.State())
	assert.Equal(t, "organization not active", flow.FailureMessage())
	assert.Equal(t, 3, store.Totals().TotalItems, "failed submit must not touch the cart")

	flow.Retry()
	assert.Equal(t, StateEditing, flow.State())

	gateway.createErr = nil
	gateway.uuid = "cd7b3c42-9f34-4a7e-9b3e-2d1f0a6c5e91"
	_, err = flow.Submit(context.Background(), validForm())
	require.NoError(t, err)
	assert.Equal(t, 2, gateway.calls())
}

func TestReentrantSubmitRejectedWhileSubmitting(t *testing.T) {
	gateway := &gatewayMock{
		uuid:        "9a1b2c3d-4e5f-4a6b-8c7d-0e1f2a3b4c5d",
		blockCreate: make(chan struct{}),
	}
	flow, err := NewFlow(testConfig(), filledCart(t), gateway, zap.NewNop())
	require.NoError(t, err)

	firstDone := make(chan error, 1)
	go func() {
		_, submitErr := flow.Submit(context.Background(), validForm())
		firstDone <- submitErr
	}()

	// Wait for the first submit to park inside the gateway call.
	require.Eventually(t, func() bool { return gateway.calls() == 1 }, time.Second, time.Millisecond)

	_, err = flow.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrSubmitInProgress)

	close(gateway.blockCreate)
	require.NoError(t, <-firstDone)
	assert.Equal(t, 1, gateway.calls(), "duplicate submit must not produce a second create-session request")
}

func TestSubmitAfterSuccessRejected(t *testing.T) {
	gateway := &gatewayMock{uuid: "7e8f9a0b-1c2d-4e3f-8a5b-6c7d8e9f0a1b"}
	flow, err := NewFlow(testConfig(), filledCart(t), gateway, zap.NewNop())
	require.NoError(t, err)

	_, err = flow.Submit(context.Background(), validForm())
	require.NoError(t, err)

	_, err = flow.Submit(context.Background(), validForm())
	assert.ErrorIs(t, err, ErrAlreadyCompleted)
	assert.Equal(t, 1, gateway.calls())
}

func TestSessionCreationErrorIsUserFacing(t *testing.T) {
	assert.Equal(t, "organization not active",
		userFacingMessage(&backend.SessionCreationError{Message: "organization not active"}))
	assert.Equal(t, "Unable to create payment session. Please try again.",
		userFacingMessage(errors.New("connection refused")))
}
