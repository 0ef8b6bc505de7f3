package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type TransactionStatus string

const (
	TransactionStatusSuccess TransactionStatus = "success"
	TransactionStatusPending TransactionStatus = "pending"
	TransactionStatusFailed  TransactionStatus = "failed"
	TransactionStatusExpired TransactionStatus = "expired"
)

// Transaction is one settled or attempted payment as listed on the
// organizations dashboard.
type Transaction struct {
	UUID                  string            `json:"uuid"`
	OrderID               string            `json:"order_id"`
	OrganizationID        string            `json:"organization_id"`
	CustomerName          string            `json:"customer_name"`
	CustomerEmail         string            `json:"customer_email"`
	Amount                decimal.Decimal   `json:"amount"`
	Currency              string            `json:"currency"`
	Status                TransactionStatus `json:"status"`
	Provider              string            `json:"provider"`
	StripePaymentIntentID string            `json:"stripe_payment_intent_id"`
	CreatedAt             time.Time         `json:"createdAt"`
}

// Organization as listed on the dashboard. The API token is absent on
// purpose: it is revealed exactly once at creation time and never
// readable afterwards.
type Organization struct {
	Name           string    `json:"name"`
	OwnerEmail     string    `json:"owner_email"`
	OrganizationID string    `json:"organization_id"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"createdAt"`
}

type RefundReason string

const (
	RefundReasonRequestedByCustomer RefundReason = "requested_by_customer"
	RefundReasonDuplicate           RefundReason = "duplicate"
	RefundReasonFraudulent          RefundReason = "fraudulent"
	RefundReasonOther               RefundReason = "other"
)

// RefundRequest targets the payment intent behind a settled
// transaction. Amount must not exceed the original transaction amount;
// the backend re-validates independently of the client-side check.
type RefundRequest struct {
	PaymentIntentID string          `json:"payment_intent_id"`
	Amount          decimal.Decimal `json:"amount"`
	Reason          RefundReason    `json:"reason"`
	UUID            string          `json:"uuid"`
}
