package handlers

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/paypoq/storefront/dashboard"
	"github.com/paypoq/storefront/models"
)

type DashboardHandler interface {
	ListOrganizations(c echo.Context) error
	ListTransactions(c echo.Context) error
	CreateOrganization(c echo.Context) error
	CreateRefund(c echo.Context) error
}

type dashboardHandler struct {
	service dashboard.Service
}

func NewDashboardHandler(service dashboard.Service) DashboardHandler {
	return &dashboardHandler{service: service}
}

// ListOrganizations handles GET /organizations
func (dh *dashboardHandler) ListOrganizations(c echo.Context) error {
	organizations, err := dh.service.Organizations(c.Request().Context())
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Error fetching organizations"})
	}
	return c.JSON(http.StatusOK, map[string]any{"success": true, "data": organizations})
}

// ListTransactions handles GET /transactions with optional
// organization_id, status and q filters. Filtering and per-organization
// stats are computed here, not by the backend.
func (dh *dashboardHandler) ListTransactions(c echo.Context) error {
	organizationID := c.QueryParam("organization_id")

	transactions, err := dh.service.Transactions(c.Request().Context(), organizationID)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Error fetching transactions"})
	}

	statusFilter := c.QueryParam("status")
	if statusFilter == "" {
		statusFilter = dashboard.StatusFilterAll
	}
	filtered := dashboard.FilterTransactions(transactions, statusFilter, c.QueryParam("q"))

	response := map[string]any{"success": true, "data": filtered}
	if organizationID != "" {
		response["stats"] = dashboard.OrganizationStats(transactions, organizationID)
	}
	return c.JSON(http.StatusOK, response)
}

// CreateOrganization handles POST /organizations. The API token in the
// response is shown exactly once and never retrievable again.
func (dh *dashboardHandler) CreateOrganization(c echo.Context) error {
	var req struct {
		Name       string `json:"name"`
		OwnerEmail string `json:"owner_email"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}
	if req.Name == "" || req.OwnerEmail == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Name and owner email are required"})
	}

	created, err := dh.service.CreateOrganization(c.Request().Context(), req.Name, req.OwnerEmail)
	if err != nil {
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Failed to add organization"})
	}

	return c.JSON(http.StatusCreated, map[string]any{"success": true, "data": created})
}

// CreateRefund handles POST /refunds. The amount is validated locally
// first; an over-amount request never reaches the backend.
func (dh *dashboardHandler) CreateRefund(c echo.Context) error {
	var req struct {
		Transaction models.Transaction `json:"transaction"`
		Amount      decimal.Decimal    `json:"amount"`
		Reason      string             `json:"reason"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request payload"})
	}

	err := dh.service.Refund(c.Request().Context(), &req.Transaction, req.Amount, models.RefundReason(req.Reason))
	if err != nil {
		var validationErr *dashboard.RefundValidationError
		if errors.As(err, &validationErr) {
			return c.JSON(http.StatusUnprocessableEntity, map[string]string{"error": validationErr.Message})
		}
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "Error processing refund"})
	}

	return c.JSON(http.StatusOK, map[string]any{"success": true, "message": "Refund processed successfully"})
}
