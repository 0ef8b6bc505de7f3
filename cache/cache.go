package cache

import (
	"context"
	"errors"

	"github.com/paypoq/storefront/models"
)

// ConfigCache holds organization-scoped gateway configuration so the
// hosted payment page does not hit the backend for the publishable key
// on every load. A miss or an unavailable cache always degrades to a
// backend fetch, never to a page failure.
type ConfigCache interface {
	Get(ctx context.Context, organizationID string) (*models.GatewayConfig, error)
	Set(ctx context.Context, organizationID string, cfg *models.GatewayConfig) error
	Delete(ctx context.Context, organizationID string) error
}

var ErrCacheMiss = errors.New("cache miss")
