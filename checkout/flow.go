package checkout

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/paypoq/storefront/backend"
	"github.com/paypoq/storefront/cart"
	"github.com/paypoq/storefront/config"
	"github.com/paypoq/storefront/models"
)

type State string

const (
	StateEditing     State = "editing"
	StateSubmitting  State = "submitting"
	StateRedirecting State = "redirecting"
	StateFailed      State = "failed"
)

var (
	// ErrCartEmpty blocks entering checkout without items.
	ErrCartEmpty = errors.New("cart is empty")

	// ErrSubmitInProgress rejects a re-entrant submit; only one
	// create-session call may leave per accepted submit.
	ErrSubmitInProgress = errors.New("submission already in progress")

	// ErrAlreadyCompleted rejects submitting a flow that has already
	// produced a session.
	ErrAlreadyCompleted = errors.New("checkout already completed")
)

// Flow takes one cart through checkout: local validation, one
// create-session call, cart clear, redirect to the hosted payment page.
// On failure the cart and form survive untouched for a buyer-initiated
// retry.
type Flow struct {
	cfg     *config.Config
	cart    *cart.Store
	gateway backend.SessionGateway
	logger  *zap.Logger

	mu             sync.Mutex
	state          State
	redirectURL    string
	failureMessage string
}

// NewFlow is the checkout entry point. An empty cart is not enterable;
// the caller sends the buyer back to browsing.
func NewFlow(cfg *config.Config, store *cart.Store, gateway backend.SessionGateway, logger *zap.Logger) (*Flow, error) {
	if store.IsEmpty() {
		return nil, ErrCartEmpty
	}
	return &Flow{
		cfg:     cfg,
		cart:    store,
		gateway: gateway,
		logger:  logger,
		state:   StateEditing,
	}, nil
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// RedirectURL is the hosted payment page address, set once the flow
// reached StateRedirecting.
func (f *Flow) RedirectURL() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.redirectURL
}

func (f *Flow) FailureMessage() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.failureMessage
}

// Submit validates the form, creates the payment session and clears the
// cart. Validation failures keep the flow at StateEditing without any
// network traffic. The cart is cleared before the redirect URL is
// handed out: if navigation then fails, the cart must not be
// recoverable into a double submission.
func (f *Flow) Submit(ctx context.Context, form *Form) (string, error) {

	f.mu.Lock()
	switch f.state {
	case StateSubmitting:
		f.mu.Unlock()
		return "", ErrSubmitInProgress
	case StateRedirecting:
		f.mu.Unlock()
		return "", ErrAlreadyCompleted
	}

	if errs := form.Validate(); len(errs) > 0 {
		f.state = StateEditing
		f.mu.Unlock()
		return "", errs
	}

	totals := f.cart.Totals()
	if totals.TotalItems == 0 {
		f.mu.Unlock()
		return "", ErrCartEmpty
	}

	f.state = StateSubmitting
	f.mu.Unlock()

	request := &models.PaymentSessionRequest{
		OrganizationID: f.cfg.Organization.ID,
		Amount:         totals.TotalPrice,
		Currency:       config.DefaultCurrency,
		CustomerName:   form.CustomerName(),
		CustomerEmail:  form.Email,
		OrderReference: newOrderReference(),
	}

	uuid, err := f.gateway.CreatePaymentLink(ctx, request)
	if err != nil {
		f.mu.Lock()
		f.state = StateFailed
		f.failureMessage = userFacingMessage(err)
		f.mu.Unlock()
		f.logger.Error("failed to create payment session", zap.Error(err))
		return "", err
	}

	f.cart.Clear()

	redirectURL := fmt.Sprintf("%s/%s", f.cfg.Checkout.Domain, uuid)

	f.mu.Lock()
	f.state = StateRedirecting
	f.redirectURL = redirectURL
	f.mu.Unlock()

	f.logger.Info("checkout redirecting to hosted payment page",
		zap.String("uuid", uuid),
		zap.String("order_id", request.OrderReference))

	return redirectURL, nil
}

// Retry re-arms a failed flow for another submit with the same cart and
// form.
func (f *Flow) Retry() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == StateFailed {
		f.state = StateEditing
		f.failureMessage = ""
	}
}

// newOrderReference mirrors the storefront's short order ids: the last
// six digits of the current unix-millisecond clock.
func newOrderReference() string {
	ms := fmt.Sprintf("%d", time.Now().UnixMilli())
	if len(ms) > 6 {
		ms = ms[len(ms)-6:]
	}
	return ms
}

func userFacingMessage(err error) string {
	var creationErr *backend.SessionCreationError
	if errors.As(err, &creationErr) {
		return creationErr.Message
	}
	return "Unable to create payment session. Please try again."
}
