package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker/v2"
	"go.uber.org/zap"

	"github.com/paypoq/storefront/config"
	"github.com/paypoq/storefront/models"
)

// SessionGateway is the backend HTTP API behind the storefront: it
// mints payment-link sessions, resolves them, issues gateway
// configuration and payment intents, and serves the dashboard data.
type SessionGateway interface {
	CreatePaymentLink(ctx context.Context, req *models.PaymentSessionRequest) (string, error)
	GetTransaction(ctx context.Context, uuid string) (*models.TransactionDetail, error)
	GetGatewayConfig(ctx context.Context, organizationID string) (*models.GatewayConfig, error)
	CreatePaymentIntent(ctx context.Context, uuid string, amount decimal.Decimal, currency, customerEmail, customerName string) (string, error)
	CreateRefund(ctx context.Context, req *models.RefundRequest) error
	AddOrganization(ctx context.Context, req *AddOrganizationRequest) (string, error)
	ListOrganizations(ctx context.Context) ([]*models.Organization, error)
	ListTransactions(ctx context.Context) ([]*models.Transaction, error)
	ListOrganizationTransactions(ctx context.Context, organizationID string) ([]*models.Transaction, error)
}

// AddOrganizationRequest registers a new organization. The API token in
// the response is revealed exactly once; the gateway never returns it
// again.
type AddOrganizationRequest struct {
	Name           string `json:"name"`
	OwnerEmail     string `json:"owner_email"`
	OrganizationID string `json:"organization_id"`
	APIToken       string `json:"api_token"`
}

type apiResponse struct {
	status int
	body   []byte
}

type client struct {
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker[*apiResponse]
	baseURL    string
	apiToken   string
	logger     *zap.Logger
}

func NewSessionGateway(cfg *config.Config, logger *zap.Logger) SessionGateway {
	return &client{
		httpClient: &http.Client{Timeout: 15 * time.Second},
		breaker: gobreaker.NewCircuitBreaker[*apiResponse](gobreaker.Settings{
			Name:    "session-gateway",
			Timeout: 30 * time.Second,
		}),
		baseURL:  cfg.Backend.BaseURL + "/api/v1",
		apiToken: cfg.Backend.APIToken,
		logger:   logger,
	}
}

func (c *client) CreatePaymentLink(ctx context.Context, req *models.PaymentSessionRequest) (string, error) {

	resp, err := c.do(ctx, http.MethodPost, "/organizations/create-payment-link", req, true)
	if err != nil {
		return "", err
	}
	if resp.status < 200 || resp.status >= 300 {
		return "", &SessionCreationError{Message: errorMessage(resp.body, "Unable to create payment session")}
	}

	var out struct {
		UUID string `json:"uuid"`
	}
	if err = json.Unmarshal(resp.body, &out); err != nil || out.UUID == "" {
		return "", &SessionCreationError{Message: "Unable to create payment session"}
	}

	c.logger.Info("payment session created", zap.String("uuid", out.UUID))
	return out.UUID, nil
}

func (c *client) GetTransaction(ctx context.Context, uuid string) (*models.TransactionDetail, error) {

	resp, err := c.do(ctx, http.MethodGet, "/organizations/transaction/"+uuid, nil, false)
	if err != nil {
		return nil, err
	}
	if resp.status == http.StatusNotFound {
		return nil, ErrSessionNotFound
	}
	if resp.status < 200 || resp.status >= 300 {
		return nil, &APIError{StatusCode: resp.status, Message: errorMessage(resp.body, "")}
	}

	var out struct {
		Success bool                     `json:"success"`
		Data    *models.TransactionDetail `json:"data"`
	}
	if err = json.Unmarshal(resp.body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode transaction response: %w", err)
	}
	if !out.Success || out.Data == nil {
		return nil, ErrSessionNotFound
	}

	return out.Data, nil
}

func (c *client) GetGatewayConfig(ctx context.Context, organizationID string) (*models.GatewayConfig, error) {

	body := map[string]string{"organization_id": organizationID}
	resp, err := c.do(ctx, http.MethodPost, "/stripe/config", body, false)
	if err != nil {
		return nil, err
	}
	if resp.status < 200 || resp.status >= 300 {
		return nil, &APIError{StatusCode: resp.status, Message: errorMessage(resp.body, "")}
	}

	var out struct {
		Success        bool   `json:"success"`
		PublishableKey string `json:"publishable_key"`
	}
	if err = json.Unmarshal(resp.body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode gateway config: %w", err)
	}
	if !out.Success || out.PublishableKey == "" {
		return nil, fmt.Errorf("%w: missing publishable key", ErrGatewayUnavailable)
	}

	return &models.GatewayConfig{PublishableKey: out.PublishableKey}, nil
}

func (c *client) CreatePaymentIntent(ctx context.Context, uuid string, amount decimal.Decimal, currency, customerEmail, customerName string) (string, error) {

	body := struct {
		UUID          string          `json:"uuid"`
		Amount        decimal.Decimal `json:"amount"`
		Currency      string          `json:"currency"`
		CustomerEmail string          `json:"customer_email"`
		CustomerName  string          `json:"customer_name"`
	}{uuid, amount, currency, customerEmail, customerName}

	resp, err := c.do(ctx, http.MethodPost, "/stripe/create-payment-intent", body, false)
	if err != nil {
		return "", err
	}
	if resp.status < 200 || resp.status >= 300 {
		return "", &APIError{StatusCode: resp.status, Message: errorMessage(resp.body, "")}
	}

	var out struct {
		ClientSecret string `json:"clientSecret"`
	}
	if err = json.Unmarshal(resp.body, &out); err != nil || out.ClientSecret == "" {
		return "", fmt.Errorf("failed to decode payment intent response")
	}

	return out.ClientSecret, nil
}

func (c *client) CreateRefund(ctx context.Context, req *models.RefundRequest) error {

	resp, err := c.do(ctx, http.MethodPost, "/stripe/refund", req, false)
	if err != nil {
		return err
	}
	if resp.status < 200 || resp.status >= 300 {
		return &APIError{StatusCode: resp.status, Message: errorMessage(resp.body, "Failed to process refund")}
	}

	var out struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
	}
	if err = json.Unmarshal(resp.body, &out); err != nil {
		return fmt.Errorf("failed to decode refund response: %w", err)
	}
	if !out.Success {
		message := out.Message
		if message == "" {
			message = "Failed to process refund"
		}
		return &APIError{StatusCode: resp.status, Message: message}
	}

	c.logger.Info("refund processed",
		zap.String("uuid", req.UUID),
		zap.String("payment_intent_id", req.PaymentIntentID))
	return nil
}

func (c *client) AddOrganization(ctx context.Context, req *AddOrganizationRequest) (string, error) {

	resp, err := c.do(ctx, http.MethodPost, "/organizations/add-organization", req, false)
	if err != nil {
		return "", err
	}
	if resp.status < 200 || resp.status >= 300 {
		return "", &APIError{StatusCode: resp.status, Message: errorMessage(resp.body, "Failed to add organization")}
	}

	var out struct {
		Success bool `json:"success"`
		Data    struct {
			APIToken string `json:"api_token"`
		} `json:"data"`
		Message string `json:"message"`
	}
	if err = json.Unmarshal(resp.body, &out); err != nil {
		return "", fmt.Errorf("failed to decode add-organization response: %w", err)
	}
	if !out.Success {
		message := out.Message
		if message == "" {
			message = "Failed to add organization"
		}
		return "", &APIError{StatusCode: resp.status, Message: message}
	}

	return out.Data.APIToken, nil
}

func (c *client) ListOrganizations(ctx context.Context) ([]*models.Organization, error) {
	var organizations []*models.Organization
	if err := c.list(ctx, "/organizations", &organizations); err != nil {
		return nil, err
	}
	return organizations, nil
}

func (c *client) ListTransactions(ctx context.Context) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	if err := c.list(ctx, "/transactions", &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (c *client) ListOrganizationTransactions(ctx context.Context, organizationID string) ([]*models.Transaction, error) {
	var transactions []*models.Transaction
	if err := c.list(ctx, "/organizations/"+organizationID+"/transactions", &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

func (c *client) list(ctx context.Context, path string, target any) error {

	resp, err := c.do(ctx, http.MethodGet, path, nil, false)
	if err != nil {
		return err
	}
	if resp.status < 200 || resp.status >= 300 {
		return &APIError{StatusCode: resp.status, Message: errorMessage(resp.body, "")}
	}

	var out struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err = json.Unmarshal(resp.body, &out); err != nil {
		return fmt.Errorf("failed to decode list response: %w", err)
	}
	if !out.Success {
		return &APIError{StatusCode: resp.status, Message: errorMessage(resp.body, "")}
	}

	if err = json.Unmarshal(out.Data, target); err != nil {
		return fmt.Errorf("failed to decode list payload: %w", err)
	}
	return nil
}

// do runs one request through the circuit breaker. Transport failures
// and 5xx responses count toward opening the breaker; 4xx responses are
// business outcomes and pass through.
func (c *client) do(ctx context.Context, method, path string, body any, authorized bool) (*apiResponse, error) {

	resp, err := c.breaker.Execute(func() (*apiResponse, error) {
		return c.roundTrip(ctx, method, path, body, authorized)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.logger.Warn("session gateway circuit open", zap.String("path", path))
			return nil, fmt.Errorf("%w: circuit open", ErrGatewayUnavailable)
		}
		return nil, err
	}
	return resp, nil
}

func (c *client) roundTrip(ctx context.Context, method, path string, body any, authorized bool) (*apiResponse, error) {

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if authorized {
		req.Header.Set("Authorization", "Bearer "+c.apiToken)
	}

	httpResp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}
	defer httpResp.Body.Close()

	payload, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrGatewayUnavailable, err)
	}

	if httpResp.StatusCode >= 500 {
		return nil, fmt.Errorf("%w: status %d", ErrGatewayUnavailable, httpResp.StatusCode)
	}

	return &apiResponse{status: httpResp.StatusCode, body: payload}, nil
}

func errorMessage(body []byte, fallback string) string {
	var out struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(body, &out); err == nil {
		if out.Error != "" {
			return out.Error
		}
		if out.Message != "" {
			return out.Message
		}
	}
	return fallback
}
