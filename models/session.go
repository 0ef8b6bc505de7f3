package models

import (
	"github.com/shopspring/decimal"
)

// DefaultProcessingFee is applied when the backend omits the fee (or
// reports it as zero) on a transaction record.
var DefaultProcessingFee = decimal.RequireFromString("0.42")

// PaymentSessionRequest is the create-payment-link payload. It is built
// once from the cart and the checkout form and never mutated after it
// has been sent; any change of amount or currency requires a new
// session.
type PaymentSessionRequest struct {
	OrganizationID string          `json:"organization_id"`
	Amount         decimal.Decimal `json:"amount"`
	Currency       string          `json:"currency"`
	CustomerName   string          `json:"customer_name"`
	CustomerEmail  string          `json:"customer_email"`
	OrderReference string          `json:"order_id"`
}

// TransactionDetail is the raw transaction payload returned by the
// backend for a session identifier.
type TransactionDetail struct {
	OrderID          string          `json:"order_id"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	Amount           decimal.Decimal `json:"amount"`
	ProcessingFee    decimal.Decimal `json:"processing_fee"`
	OrganizationName string          `json:"organization_name"`
	LogoURL          string          `json:"logo_url"`
}

// PaymentSessionRecord is the normalized, read-only view of one payment
// session as shown on the hosted payment page.
type PaymentSessionRecord struct {
	UUID             string          `json:"uuid"`
	OrderID          string          `json:"order_id"`
	CustomerName     string          `json:"customer_name"`
	CustomerEmail    string          `json:"customer_email"`
	Subtotal         decimal.Decimal `json:"subtotal"`
	ProcessingFee    decimal.Decimal `json:"processing_fee"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	Currency         string          `json:"currency"`
	OrganizationName string          `json:"organization_name"`
	LogoURL          string          `json:"logo_url"`
}

// NewPaymentSessionRecord normalizes a backend transaction payload:
// a missing or zero processing fee falls back to the fixed minimum and
// the total is always recomputed as subtotal + fee.
func NewPaymentSessionRecord(uuid, currency string, detail *TransactionDetail) *PaymentSessionRecord {

	fee := detail.ProcessingFee
	if fee.IsZero() {
		fee = DefaultProcessingFee
	}

	return &PaymentSessionRecord{
		UUID:             uuid,
		OrderID:          detail.OrderID,
		CustomerName:     detail.CustomerName,
		CustomerEmail:    detail.CustomerEmail,
		Subtotal:         detail.Amount,
		ProcessingFee:    fee,
		TotalAmount:      detail.Amount.Add(fee),
		Currency:         currency,
		OrganizationName: detail.OrganizationName,
		LogoURL:          detail.LogoURL,
	}
}

// GatewayConfig is the organization-scoped card-gateway configuration.
// The payment form is never enabled without it.
type GatewayConfig struct {
	PublishableKey string `json:"publishable_key"`
}

// BillingDetails accompany the card token on confirmation.
type BillingDetails struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}
