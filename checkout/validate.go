package checkout

import (
	"fmt"
	"regexp"
	"strings"
)

// Form carries the buyer's checkout input.
type Form struct {
	FirstName     string `json:"first_name"`
	LastName      string `json:"last_name"`
	Email         string `json:"email"`
	CountryCode   string `json:"country_code"`
	Phone         string `json:"phone"`
	CreateAccount bool   `json:"create_account"`
	Country       string `json:"country"`
	Address       string `json:"address"`
	City          string `json:"city"`
	PostalCode    string `json:"postal_code"`
	AddNote       bool   `json:"add_note"`
	Delivery      string `json:"delivery"`
	Payment       string `json:"payment"`
}

// CustomerName is the full name sent to the session gateway.
func (f *Form) CustomerName() string {
	return strings.TrimSpace(f.FirstName + " " + f.LastName)
}

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationErrors is the per-field result of a failed local
// validation. It never reaches the network.
type ValidationErrors []FieldError

func (v ValidationErrors) Error() string {
	fields := make([]string, len(v))
	for i, fe := range v {
		fields[i] = fe.Field
	}
	return fmt.Sprintf("invalid checkout form: %s", strings.Join(fields, ", "))
}

var (
	emailPattern = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)
	digitPattern = regexp.MustCompile(`^[0-9]+$`)
)

// Validate applies the checkout schema. All failing fields are
// reported, not just the first.
func (f *Form) Validate() ValidationErrors {
	var errs ValidationErrors

	add := func(field, message string) {
		errs = append(errs, FieldError{Field: field, Message: message})
	}

	switch {
	case f.FirstName == "":
		add("first_name", "First name is required")
	case len(f.FirstName) < 2:
		add("first_name", "First name must be at least 2 characters")
	}
	switch {
	case f.LastName == "":
		add("last_name", "Last name is required")
	case len(f.LastName) < 2:
		add("last_name", "Last name must be at least 2 characters")
	}
	switch {
	case f.Email == "":
		add("email", "Email is required")
	case !emailPattern.MatchString(f.Email):
		add("email", "Invalid email address")
	}
	if f.CountryCode == "" {
		add("country_code", "Country code is required")
	}
	switch {
	case f.Phone == "":
		add("phone", "Phone number is required")
	case !digitPattern.MatchString(f.Phone):
		add("phone", "Phone number must contain only digits")
	case len(f.Phone) < 10:
		add("phone", "Phone number must be at least 10 digits")
	}
	if f.Country == "" {
		add("country", "Country is required")
	}
	if f.Address == "" {
		add("address", "Address is required")
	}
	if f.City == "" {
		add("city", "City is required")
	}
	if f.PostalCode == "" {
		add("postal_code", "Postal code is required")
	}
	if f.Delivery == "" {
		add("delivery", "Please select a delivery option")
	}
	if f.Payment == "" {
		add("payment", "Please select a payment method")
	}

	return errs
}
