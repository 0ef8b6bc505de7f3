package storefront

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
	"go.uber.org/zap"

	"github.com/paypoq/storefront/config"
	"github.com/paypoq/storefront/models"
)

// StripeGateway confirms payment intents through the Stripe API.
type StripeGateway struct {
	client *client.API
	logger *zap.Logger
}

func NewStripeGateway(cfg *config.Config, logger *zap.Logger) Gateway {
	return &StripeGateway{
		client: client.New(cfg.Stripe.SecretKey, nil),
		logger: logger,
	}
}

// ConfirmPayment attaches the tokenized card to a payment method and
// confirms the intent addressed by the client secret. Stripe-level
// rejections (declines, failed tokenization) come back as a Failed
// outcome so the buyer can retry against the same session.
func (g *StripeGateway) ConfirmPayment(ctx context.Context, clientSecret, cardToken string, billing models.BillingDetails) (*models.PaymentOutcome, error) {

	intentID, err := IntentIDFromClientSecret(clientSecret)
	if err != nil {
		return nil, err
	}

	pmParams := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Token: stripe.String(cardToken),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Name:  stripe.String(billing.Name),
			Email: stripe.String(billing.Email),
		},
	}
	pmParams.Context = ctx

	paymentMethod, err := g.client.PaymentMethods.New(pmParams)
	if err != nil {
		if outcome := outcomeFromStripeError(err); outcome != nil {
			g.logger.Warn("card tokenization rejected",
				zap.String("intent_id", intentID),
				zap.String("message", outcome.Failed.Message))
			return outcome, nil
		}
		return nil, fmt.Errorf("failed to create payment method: %w", err)
	}

	confirmParams := &stripe.PaymentIntentConfirmParams{
		PaymentMethod: stripe.String(paymentMethod.ID),
	}
	confirmParams.Context = ctx

	intent, err := g.client.PaymentIntents.Confirm(intentID, confirmParams)
	if err != nil {
		if outcome := outcomeFromStripeError(err); outcome != nil {
			g.logger.Warn("payment confirmation rejected",
				zap.String("intent_id", intentID),
				zap.String("message", outcome.Failed.Message))
			return outcome, nil
		}
		return nil, fmt.Errorf("failed to confirm payment intent: %w", err)
	}

	if intent.Status != stripe.PaymentIntentStatusSucceeded {
		// requires_action and friends are not success; the buyer retries.
		return models.NewFailedOutcome(fmt.Sprintf("payment not completed: status %s", intent.Status)), nil
	}

	g.logger.Info("payment intent succeeded",
		zap.String("intent_id", intent.ID),
		zap.Int64("amount", intent.Amount))

	return models.NewSucceededOutcome(intent.ID, intent.Amount, string(intent.Status)), nil
}

// IntentIDFromClientSecret extracts the intent identifier from a client
// secret of the form "pi_xxx_secret_yyy".
func IntentIDFromClientSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret")
	if !found || id == "" {
		return "", fmt.Errorf("malformed client secret")
	}
	return id, nil
}

func outcomeFromStripeError(err error) *models.PaymentOutcome {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return nil
	}
	message := stripeErr.Msg
	if message == "" {
		message = "Payment failed. Please try again."
	}
	return models.NewFailedOutcome(message)
}
