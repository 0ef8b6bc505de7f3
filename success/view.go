package success

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/paypoq/storefront/models"
)

// ErrNoCompletedPayment means the view was reached without a prior
// succeeded confirmation (direct navigation, page reload). The caller
// redirects to the entry point; there is no receipt-lookup fallback.
var ErrNoCompletedPayment = errors.New("no completed payment to display")

// Receipt is the terminal display of a confirmed payment. It is built
// purely from the in-memory handoff bundle — exactly what the gateway
// confirmed, never a re-fetched server record.
type Receipt struct {
	TransactionID string          `json:"transaction_id"`
	OrderID       string          `json:"order_id"`
	AmountPaid    decimal.Decimal `json:"amount_paid"`
	Currency      string          `json:"currency"`
	CustomerEmail string          `json:"customer_email"`
	Status        string          `json:"status"`
}

// Render turns a succeeded payment result into a receipt. Anything
// short of a Succeeded outcome yields ErrNoCompletedPayment.
func Render(result *models.PaymentResult) (*Receipt, error) {
	if result == nil || !result.Outcome.IsSucceeded() {
		return nil, ErrNoCompletedPayment
	}

	succeeded := result.Outcome.Succeeded

	receipt := &Receipt{
		TransactionID: succeeded.IntentID,
		AmountPaid:    models.FromMinorUnits(succeeded.AmountMinorUnits),
		Status:        succeeded.Status,
	}
	if result.Order != nil {
		receipt.OrderID = result.Order.OrderID
		receipt.CustomerEmail = result.Order.CustomerEmail
		receipt.Currency = result.Order.Currency
	}

	return receipt, nil
}

// DisplayAmount is the formatted paid amount ("£100.42").
func (r *Receipt) DisplayAmount() string {
	return models.FormatAmount(r.Currency, r.AmountPaid)
}
