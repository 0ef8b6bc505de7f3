package payment_session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	storefront "github.com/paypoq/storefront"
	"github.com/paypoq/storefront/backend"
	"github.com/paypoq/storefront/cache"
	"github.com/paypoq/storefront/config"
	"github.com/paypoq/storefront/models"
)

type State string

const (
	StateLoading    State = "loading"
	StateReady      State = "ready"
	StateConfirming State = "confirming"
	StateSucceeded  State = "succeeded"
	StateFailed     State = "failed"
)

// FailureReason distinguishes the two fatal load failures.
type FailureReason string

const (
	ReasonNone               FailureReason = ""
	ReasonNotFound           FailureReason = "not_found"
	ReasonGatewayUnavailable FailureReason = "gateway_unavailable"
)

var (
	ErrNotReady               = errors.New("payment session is not ready")
	ErrConfirmationInProgress = errors.New("confirmation already in progress")
	ErrSessionClosed          = errors.New("payment session closed")
)

// ConfirmationError is a recoverable confirmation failure: the session
// stays Ready and the buyer may retry with corrected card details
// against the same session identifier.
type ConfirmationError struct {
	Message string
}

func (e *ConfirmationError) Error() string {
	return fmt.Sprintf("payment confirmation failed: %s", e.Message)
}

const defaultConfirmTimeout = 30 * time.Second

// Session drives one hosted payment page load through
// Loading -> Ready -> Confirming -> {Succeeded | Failed}. The session
// identifier is immutable; amount and currency come from the server
// record and are never changed client-side.
type Session struct {
	uuid           string
	cfg            *config.Config
	gateway        backend.SessionGateway
	cardGateway    storefront.Gateway
	configCache    cache.ConfigCache
	logger         *zap.Logger
	confirmTimeout time.Duration

	mu            sync.Mutex
	state         State
	closed        bool
	record        *models.PaymentSessionRecord
	gatewayConfig *models.GatewayConfig
	failureReason FailureReason
	result        *models.PaymentResult
}

func NewSession(cfg *config.Config, gateway backend.SessionGateway, cardGateway storefront.Gateway, configCache cache.ConfigCache, logger *zap.Logger, sessionID string) *Session {
	return &Session{
		uuid:           sessionID,
		cfg:            cfg,
		gateway:        gateway,
		cardGateway:    cardGateway,
		configCache:    configCache,
		logger:         logger,
		confirmTimeout: defaultConfirmTimeout,
		state:          StateLoading,
	}
}

func (s *Session) UUID() string { return s.uuid }

func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

func (s *Session) FailureReason() FailureReason {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failureReason
}

// Record is the loaded session record; nil until StateReady.
func (s *Session) Record() *models.PaymentSessionRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.record
}

// GatewayConfig is nil until StateReady; card entry is never enabled
// without it.
func (s *Session) GatewayConfig() *models.GatewayConfig {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gatewayConfig
}

// Result is the success bundle handed to the success view; nil unless
// StateSucceeded.
func (s *Session) Result() *models.PaymentResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.result
}

// DisplayTotal is the formatted total charged ("£100.42").
func (s *Session) DisplayTotal() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.record == nil {
		return ""
	}
	return models.FormatAmount(s.record.Currency, s.record.TotalAmount)
}

// Load fans out the two independent fetches — transaction record and
// gateway configuration — and joins them. Both must succeed before the
// session is Ready; either failure is fatal for this page load. Results
// arriving after Close are discarded.
func (s *Session) Load(ctx context.Context) error {

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if s.state != StateLoading {
		s.mu.Unlock()
		return fmt.Errorf("load not allowed in state %s", s.state)
	}
	s.mu.Unlock()

	if _, err := uuid.Parse(s.uuid); err != nil {
		s.fail(ReasonNotFound)
		return backend.ErrSessionNotFound
	}

	var (
		detail        *models.TransactionDetail
		gatewayConfig *models.GatewayConfig
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		detail, err = s.gateway.GetTransaction(gctx, s.uuid)
		return err
	})
	g.Go(func() error {
		var err error
		gatewayConfig, err = s.loadGatewayConfig(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		reason := ReasonGatewayUnavailable
		if errors.Is(err, backend.ErrSessionNotFound) {
			reason = ReasonNotFound
		}
		s.fail(reason)
		s.logger.Warn("payment session load failed",
			zap.String("uuid", s.uuid),
			zap.String("reason", string(reason)),
			zap.Error(err))
		return err
	}

	record := models.NewPaymentSessionRecord(s.uuid, config.DefaultCurrency, detail)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	s.record = record
	s.gatewayConfig = gatewayConfig
	s.state = StateReady
	return nil
}

// loadGatewayConfig reads the publishable key through the cache, with a
// miss or a cache outage degrading to a backend fetch.
func (s *Session) loadGatewayConfig(ctx context.Context) (*models.GatewayConfig, error) {

	organizationID := s.cfg.Organization.ID

	if s.configCache != nil {
		cached, err := s.configCache.Get(ctx, organizationID)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			s.logger.Warn("gateway config cache get failed", zap.Error(err))
		}
	}

	cfg, err := s.gateway.GetGatewayConfig(ctx, organizationID)
	if err != nil {
		return nil, err
	}

	if s.configCache != nil {
		if err = s.configCache.Set(ctx, organizationID, cfg); err != nil {
			s.logger.Warn("gateway config cache set failed", zap.Error(err))
		}
	}

	return cfg, nil
}

// ConfirmPayment runs one confirmation attempt: create the payment
// intent server-side for this session's identifier and total, then
// confirm it with the card gateway — strictly in that order. A gateway
// rejection returns the session to Ready for a retry with the same
// identifier; only intent status "succeeded" reaches StateSucceeded.
// A second call while Confirming is ignored.
func (s *Session) ConfirmPayment(ctx context.Context, cardToken string, billing models.BillingDetails) (*models.PaymentResult, error) {

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrSessionClosed
	}
	switch s.state {
	case StateConfirming:
		s.mu.Unlock()
		return nil, ErrConfirmationInProgress
	case StateReady:
		// proceed
	default:
		s.mu.Unlock()
		return nil, ErrNotReady
	}
	s.state = StateConfirming
	record := s.record
	s.mu.Unlock()

	ctx, cancel := context.WithTimeout(ctx, s.confirmTimeout)
	defer cancel()

	clientSecret, err := s.gateway.CreatePaymentIntent(ctx, s.uuid, record.TotalAmount,
		strings.ToLower(record.Currency), billing.Email, billing.Name)
	if err != nil {
		s.backToReady()
		s.logger.Warn("failed to create payment intent", zap.String("uuid", s.uuid), zap.Error(err))
		return nil, &ConfirmationError{Message: "Payment failed. Please try again."}
	}

	outcome, err := s.cardGateway.ConfirmPayment(ctx, clientSecret, cardToken, billing)
	if err != nil {
		s.backToReady()
		s.logger.Warn("payment confirmation errored", zap.String("uuid", s.uuid), zap.Error(err))
		return nil, &ConfirmationError{Message: "Payment failed. Please try again."}
	}

	if !outcome.IsSucceeded() {
		s.backToReady()
		return nil, &ConfirmationError{Message: outcome.Failed.Message}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		// Torn down while confirming; drop the result on the floor.
		return nil, ErrSessionClosed
	}
	s.state = StateSucceeded
	s.result = &models.PaymentResult{Outcome: outcome, Order: record}

	s.logger.Info("payment session succeeded",
		zap.String("uuid", s.uuid),
		zap.String("intent_id", outcome.Succeeded.IntentID))

	return s.result, nil
}

// Close tears the session down: any in-flight load or confirmation
// result arriving afterwards is discarded without a state transition.
func (s *Session) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
}

func (s *Session) fail(reason FailureReason) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state = StateFailed
	s.failureReason = reason
}

func (s *Session) backToReady() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.state = StateReady
}
