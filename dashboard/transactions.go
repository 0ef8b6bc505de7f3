package dashboard

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/paypoq/storefront/models"
)

// StatusFilterAll matches every transaction status.
const StatusFilterAll = "all"

// FilterTransactions returns the transactions where the free-text query
// matches customer name, email, order id or session identifier
// case-insensitively, and the status filter matches. The source slice
// is never mutated.
func FilterTransactions(transactions []*models.Transaction, statusFilter, query string) []*models.Transaction {

	needle := strings.ToLower(query)

	out := make([]*models.Transaction, 0, len(transactions))
	for _, tx := range transactions {
		if statusFilter != StatusFilterAll && statusFilter != "" && string(tx.Status) != statusFilter {
			continue
		}
		if needle != "" && !matchesQuery(tx, needle) {
			continue
		}
		out = append(out, tx)
	}
	return out
}

func matchesQuery(tx *models.Transaction, needle string) bool {
	for _, field := range []string{tx.CustomerName, tx.CustomerEmail, tx.OrderID, tx.UUID} {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

// Stats is a pure reduction over an organization's transactions.
type Stats struct {
	Total        int             `json:"total"`
	TotalAmount  decimal.Decimal `json:"total_amount"`
	SuccessCount int             `json:"success_count"`
	PendingCount int             `json:"pending_count"`
}

// OrganizationStats aggregates the given transactions for one
// organization without mutating the source records.
func OrganizationStats(transactions []*models.Transaction, organizationID string) Stats {

	stats := Stats{TotalAmount: decimal.Zero}
	for _, tx := range transactions {
		if tx.OrganizationID != organizationID {
			continue
		}
		stats.Total++
		stats.TotalAmount = stats.TotalAmount.Add(tx.Amount)
		switch tx.Status {
		case models.TransactionStatusSuccess:
			stats.SuccessCount++
		case models.TransactionStatusPending:
			stats.PendingCount++
		}
	}
	return stats
}
