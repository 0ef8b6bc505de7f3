//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	storefront "github.com/paypoq/storefront"
	"github.com/paypoq/storefront/backend"
	"github.com/paypoq/storefront/cache"
	"github.com/paypoq/storefront/cart"
	"github.com/paypoq/storefront/catalog"
	"github.com/paypoq/storefront/config"
	"github.com/paypoq/storefront/dashboard"
	"github.com/paypoq/storefront/handlers"
	"github.com/paypoq/storefront/payment_session"
	"github.com/paypoq/storefront/server"
)

func InitializeStorefront() (*server.Server, error) {

	wire.Build(
		config.ProvideApplicationConfig,
		config.NewLogger,
		config.ProvideRedisClient,
		cache.NewRedisCache,
		wire.Bind(new(cache.ConfigCache), new(*cache.RedisCache)),
		catalog.NewCatalog,
		cart.NewStore,
		backend.NewSessionGateway,
		storefront.NewStripeGateway,
		payment_session.NewManager,
		dashboard.NewService,
		handlers.NewProductHandler,
		handlers.NewCartHandler,
		handlers.NewCheckoutHandler,
		handlers.NewPaymentHandler,
		handlers.NewDashboardHandler,
		server.NewServer,
	)

	return &server.Server{}, nil
}
