package handlers

import (
	"context"
	"errors"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/paypoq/storefront/backend"
	"github.com/paypoq/storefront/models"
)

type sessionGatewayMock struct {
	mu          sync.Mutex
	createCalls int

	uuid      string
	createErr error
	// blockCreate, when set, holds CreatePaymentLink until released.
	blockCreate chan struct{}
}

func (m *sessionGatewayMock) CreatePaymentLink(context.Context, *models.PaymentSessionRequest) (string, error) {
	m.mu.Lock()
	m.createCalls++
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

func (m *sessionGatewayMock) calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.createCalls
}

func (m *sessionGatewayMock) GetTransaction(context.Context, string) (*models.TransactionDetail, error) {
	return nil, errors.New("not implemented")
}

func (m *sessionGatewayMock) GetGatewayConfig(context.Context, string) (*models.GatewayConfig, error) {
	return nil, errors.New("not implemented")
}

func (m *sessionGatewayMock) CreatePaymentIntent(context.Context, string, decimal.Decimal, string, string, string) (string, error) {
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
