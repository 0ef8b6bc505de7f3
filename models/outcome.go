package models

// PaymentOutcome is the tagged result of one confirmation attempt.
// Exactly one of Succeeded or Failed is set.
type PaymentOutcome struct {
	Succeeded *SucceededOutcome `json:"succeeded,omitempty"`
	Failed    *FailedOutcome    `json:"failed,omitempty"`
}

type SucceededOutcome struct {
	IntentID         string `json:"intent_id"`
	AmountMinorUnits int64  `json:"amount_minor_units"`
	Status           string `json:"status"`
}

type FailedOutcome struct {
	Message string `json:"message"`
}

func NewSucceededOutcome(intentID string, amountMinorUnits int64, status string) *PaymentOutcome {
	return &PaymentOutcome{
		Succeeded: &SucceededOutcome{
			IntentID:         intentID,
			AmountMinorUnits: amountMinorUnits,
			Status:           status,
		},
	}
}

func NewFailedOutcome(message string) *PaymentOutcome {
	return &PaymentOutcome{
		Failed: &FailedOutcome{Message: message},
	}
}

func (o *PaymentOutcome) IsSucceeded() bool {
	return o != nil && o.Succeeded != nil
}

// PaymentResult is the in-memory handoff from a succeeded confirmation
// to the success view. It is never persisted or re-fetched; the receipt
// shown is exactly what the gateway confirmed at that moment.
type PaymentResult struct {
	Outcome *PaymentOutcome       `json:"outcome"`
	Order   *PaymentSessionRecord `json:"order"`
}
