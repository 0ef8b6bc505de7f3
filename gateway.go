package storefront

import (
	"context"

	"github.com/paypoq/storefront/models"
)

// Gateway is the card-network side of a payment: it confirms a payment
// intent created server-side, using a tokenized card. Implementations
// must report card declines and other gateway-level rejections as a
// Failed outcome, not as an error — a declined attempt leaves the
// session retryable.
type Gateway interface {
	// ConfirmPayment confirms the intent addressed by clientSecret with
	// the given card token and billing details. An error return means
	// the attempt could not be carried out at all (transport failure,
	// malformed secret); the outcome carries the gateway's verdict.
	ConfirmPayment(ctx context.Context, clientSecret, cardToken string, billing models.BillingDetails) (*models.PaymentOutcome, error)
}
