package checkout

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/paypoq/storefront/backend"
	"github.com/paypoq/storefront/models"
)

// gatewayMock implements backend.SessionGateway; only the
// create-payment-link path matters to checkout.
type gatewayMock struct {
	mu          sync.Mutex
	createCalls int
	lastRequest *models.PaymentSessionRequest

	uuid      string
	createErr error
	// blockCreate, when set, holds CreatePaymentLink until released.
	blockCreate chan struct{}
}

func (m *gatewayMock) CreatePaymentLink(_ context.Context, req *models.PaymentSessionRequest) (string, error) {
	m.mu.Lock()
	m.createCalls++
	m.lastRequest = req
	block := m.blockCreate
	m.mu.Unlock()

	if block != nil {
		<-block
	}
	if m.createErr != nil {
		return "", m.createErr
	}
	return m.uuid, nil
}

func (m *gatewayMock) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *gatewayMock) request() *models.PaymentSessionRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lastRequest
}

func (m *gatewayMock) GetTransaction(context.Context, string) (*models.TransactionDetail, error) {
	return nil, errors.New("not implemented")
}

func (m *gatewayMock) GetGatewayConfig(context.Context, string) (*models.GatewayConfig, error) {
	return nil, errors.New("not implemented")
}

func (m *gatewayMock) CreatePaymentIntent(context.Context, string, decimal.Decimal, string, string, string) (string, error) {
	return "", errors.New("not implemented")
}

func (m *gatewayMock) CreateRefund(context.Context, *models.RefundRequest) error {
	return errors.New("not implemented")
}

func (m *gatewayMock) AddOrganization(context.Context, *backend.AddOrganizationRequest) (string, error) {
	return "", errors.New("not implemented")
}

func (m *gatewayMock) ListOrganizations(context.Context) ([]*models.Organization, error) {
	return nil, errors.New("not implemented")
}

func (m *gatewayMock) ListTransactions(context.Context) ([]*models.Transaction, error) {
	return nil, errors.New("not implemented")
}

func (m *gatewayMock) ListOrganizationTransactions(context.Context, string) ([]*models.Transaction, error) {
	return nil, errors.New("not implemented")
}
