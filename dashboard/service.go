package dashboard

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/paypoq/storefront/backend"
	"github.com/paypoq/storefront/models"
)

// RefundValidationError is a client-side rejection of a refund request;
// it never reaches the network.
type RefundValidationError struct {
	Message string
}

func (e *RefundValidationError) Error() string {
	return fmt.Sprintf("invalid refund: %s", e.Message)
}

// CreatedOrganization is handed back exactly once; the API token is not
// stored and cannot be retrieved again.
type CreatedOrganization struct {
	Name           string `json:"name"`
	OwnerEmail     string `json:"owner_email"`
	OrganizationID string `json:"organization_id"`
	APIToken       string `json:"api_token"`
}

type Service interface {
	Organizations(ctx context.Context) ([]*models.Organization, error)
	Transactions(ctx context.Context, organizationID string) ([]*models.Transaction, error)
	Refund(ctx context.Context, transaction *models.Transaction, amount decimal.Decimal, reason models.RefundReason) error
	CreateOrganization(ctx context.Context, name, ownerEmail string) (*CreatedOrganization, error)
}

type service struct {
	gateway backend.SessionGateway
	logger  *zap.Logger
}

func NewService(gateway backend.SessionGateway, logger *zap.Logger) Service {
	return &service{
		gateway: gateway,
		logger:  logger,
	}
}

func (s *service) Organizations(ctx context.Context) ([]*models.Organization, error) {
	organizations, err := s.gateway.ListOrganizations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list organizations: %w", err)
	}
	return organizations, nil
}

// Transactions lists all transactions, or one organization's when
// organizationID is set.
func (s *service) Transactions(ctx context.Context, organizationID string) ([]*models.Transaction, error) {
	var (
		transactions []*models.Transaction
		err          error
	)
	if organizationID == "" {
		transactions, err = s.gateway.ListTransactions(ctx)
	} else {
		transactions, err = s.gateway.ListOrganizationTransactions(ctx, organizationID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	return transactions, nil
}

// Refund validates the amount locally before any network call, then
// submits the refund. The backend re-validates independently; the
// client check is a pre-check, not the enforcement.
func (s *service) Refund(ctx context.Context, transaction *models.Transaction, amount decimal.Decimal, reason models.RefundReason) error {

	if amount.LessThanOrEqual(decimal.Zero) {
		return &RefundValidationError{Message: "Please enter a valid amount"}
	}
	if amount.GreaterThan(transaction.Amount) {
		return &RefundValidationError{Message: "Refund amount cannot exceed transaction amount"}
	}

	request := &models.RefundRequest{
		PaymentIntentID: transaction.StripePaymentIntentID,
		Amount:          amount,
		Reason:          reason,
		UUID:            transaction.UUID,
	}

	if err := s.gateway.CreateRefund(ctx, request); err != nil {
		return fmt.Errorf("failed to process refund: %w", err)
	}

	s.logger.Info("refund submitted",
		zap.String("uuid", transaction.UUID),
		zap.String("reason", string(reason)))
	return nil
}

// CreateOrganization registers a new organization with generated
// identifiers. The returned API token comes from the backend response
// and is revealed to the caller exactly once.
func (s *service) CreateOrganization(ctx context.Context, name, ownerEmail string) (*CreatedOrganization, error) {

	organizationID := newOrganizationID()

	request := &backend.AddOrganizationRequest{
		Name:           name,
		OwnerEmail:     ownerEmail,
		OrganizationID: organizationID,
		APIToken:       newAPIToken(),
	}

	token, err := s.gateway.AddOrganization(ctx, request)
	if err != nil {
		return nil, fmt.Errorf("failed to add organization: %w", err)
	}

	return &CreatedOrganization{
		Name:           name,
		OwnerEmail:     ownerEmail,
		OrganizationID: organizationID,
		APIToken:       token,
	}, nil
}

func newOrganizationID() string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:7])
	return fmt.Sprintf("ORG_%d_%s", time.Now().UnixMilli(), suffix)
}

func newAPIToken() string {
	return "org_" + strings.ReplaceAll(uuid.NewString(), "-", "")
}
