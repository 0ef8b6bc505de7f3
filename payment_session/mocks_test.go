package payment_session

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/paypoq/storefront/backend"
	"github.com/paypoq/storefront/models"
)

type sessionGatewayMock struct {
	mu sync.Mutex

	transactionCalls int
	configCalls      int
	intentCalls      int
	events           []string

	transaction    *models.TransactionDetail
	transactionErr error
	config         *models.GatewayConfig
	configErr      error
	clientSecret   string
	intentErr      error
}

func (m *sessionGatewayMock) GetTransaction(context.Context, string) (*models.TransactionDetail, error) {
	m.mu.Lock()
	m.transactionCalls++
	m.mu.Unlock()
	if m.transactionErr != nil {
		return nil, m.transactionErr
	}
	return m.transaction, nil
}

func (m *sessionGatewayMock) GetGatewayConfig(context.Context, string) (*models.GatewayConfig, error) {
	m.mu.Lock()
	m.configCalls++
	m.mu.Unlock()
	if m.configErr != nil {
		return nil, m.configErr
	}
	return m.config, nil
}

func (m *sessionGatewayMock) CreatePaymentIntent(context.Context, string, decimal.Decimal, string, string, string) (string, error) {
	m.mu.Lock()
	m.intentCalls++
	m.events = append(m.events, "create-intent")
	m.mu.Unlock()
	if m.intentErr != nil {
		return "", m.intentErr
	}
	return m.clientSecret, nil
}

func (m *sessionGatewayMock) recordEvent(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *sessionGatewayMock) CreatePaymentLink(context.Context, *models.PaymentSessionRequest) (string, error) {
	return "", errors.New("not implemented")
}

func (m *sessionGatewayMock) CreateRefund(context.Context, *models.RefundRequest) error {
	return errors.New("not implemented")
}

func (m *sessionGatewayMock) AddOrganization(context.Context, *backend.AddOrganizationRequest) (string, error) {
	return "", errors.New("not implemented")
}

func (m *sessionGatewayMock) ListOrganizations(context.Context) ([]*models.Organization, error) {
	return nil, errors.New("not implemented")
}

func (m *sessionGatewayMock) ListTransactions(context.Context) ([]*models.Transaction, error) {
	return nil, errors.New("not implemented")
}

func (m *sessionGatewayMock) ListOrganizationTransactions(context.Context, string) ([]*models.Transaction, error) {
	return nil, errors.New("not implemented")
}

// cardGatewayMock implements the storefront.Gateway confirm step.
type cardGatewayMock struct {
	mu           sync.Mutex
	confirmCalls int

	outcomes []*models.PaymentOutcome
	err      error
	// block, when set, holds ConfirmPayment until released.
	block   chan struct{}
	onEvent func(string)
}

func (m *cardGatewayMock) ConfirmPayment(context.Context, string, string, models.BillingDetails) (*models.PaymentOutcome, error) {
	m.mu.Lock()
	m.confirmCalls++
	call := m.confirmCalls
	block := m.block
	m.mu.Unlock()

	if m.onEvent != nil {
		m.onEvent("confirm")
	}
	if block != nil {
		<-block
	}
	if m.err != nil {
		return nil, m.err
	}

	outcome := m.outcomes[len(m.outcomes)-1]
	if call <= len(m.outcomes) {
		outcome = m.outcomes[call-1]
	}
	return outcome, nil
}

func (m *cardGatewayMock) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.confirmCalls
}
