package server

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/paypoq/storefront/handlers"
)

type Server struct {
	echo      *echo.Echo
	Product   handlers.ProductHandler
	Cart      handlers.CartHandler
	Checkout  handlers.CheckoutHandler
	Payment   handlers.PaymentHandler
	Dashboard handlers.DashboardHandler
}

func NewServer(
	Product handlers.ProductHandler,
	Cart handlers.CartHandler,
	Checkout handlers.CheckoutHandler,
	Payment handlers.PaymentHandler,
	Dashboard handlers.DashboardHandler,
) *Server {
	return &Server{
		echo:      echo.New(),
		Product:   Product,
		Cart:      Cart,
		Checkout:  Checkout,
		Payment:   Payment,
		Dashboard: Dashboard,
	}
}

// Start initializes the server by registering middlewares and routes, and starts listening for connections on the provided address.
// It returns an error if there is an issue starting the server.
func (s *Server) Start(address string) error {
	s.registerMiddlewares()
	s.registerRoutes()
	return s.echo.Start(address)
}

// Run starts the server in a goroutine, then waits for an interrupt or
// SIGTERM and shuts it down with a five second grace period.
func (s *Server) Run(address string) error {

	go func() {
		if err := s.Start(address); err != nil {
			s.echo.Logger.Fatal(err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.echo.Shutdown(ctx)
}

func (s *Server) registerMiddlewares() {
	s.echo.Use(middleware.Recover())
}

func (s *Server) registerRoutes() {

	s.echo.GET("/products", s.Product.ListProducts)

	s.echo.GET("/cart", s.Cart.GetCart)
	s.echo.POST("/cart/items", s.Cart.AddItem)
	s.echo.PUT("/cart/items/:id", s.Cart.UpdateItem)
	s.echo.DELETE("/cart/items/:id", s.Cart.RemoveItem)

	s.echo.POST("/checkout", s.Checkout.Checkout)

	s.echo.GET("/pay/:uuid", s.Payment.GetPaymentPage)
	s.echo.POST("/pay/:uuid/confirm", s.Payment.ConfirmPayment)
	s.echo.GET("/success/:uuid", s.Payment.GetSuccess)

	s.echo.GET("/organizations", s.Dashboard.ListOrganizations)
	s.echo.POST("/organizations", s.Dashboard.CreateOrganization)
	s.echo.GET("/transactions", s.Dashboard.ListTransactions)
	s.echo.POST("/refunds", s.Dashboard.CreateRefund)
}
