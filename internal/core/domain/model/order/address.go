package order

import (
	"errors"
	"strings"

	"ordering/internal/pkg/errs"
)

// DeliveryAddress is where the order is shipped to.
type DeliveryAddress struct {
	RecipientName          string `json:"recipient_name"`
	Street                 string `json:"street"`
	City                   string `json:"city"`
	PostalCode             string `json:"postal_code"`
	Country                string `json:"country"`
	AdditionalInstructions string `json:"additional_instructions,omitempty"`
}

// Validate requires every field except AdditionalInstructions to be non-blank.
func (a DeliveryAddress) Validate() error {
	return errors.Join(
		requireText("delivery_address.recipient_name", a.RecipientName),
		requireText("delivery_address.street", a.Street),
		requireText("delivery_address.city", a.City),
		requireText("delivery_address.postal_code", a.PostalCode),
		requireText("delivery_address.country", a.Country),
	)
}

// BillingAddress is the invoicing party. CompanyName and VATNumber are optional.
type BillingAddress struct {
	BillingName string `json:"billing_name"`
	Street      string `json:"street"`
	City        string `json:"city"`
	PostalCode  string `json:"postal_code"`
	Country     string `json:"country"`
	CompanyName string `json:"company_name,omitempty"`
	VATNumber   string `json:"vat_number,omitempty"`
}

func (a BillingAddress) Validate() error {
	return errors.Join(
		requireText("billing_address.billing_name", a.BillingName),
		requireText("billing_address.street", a.Street),
		requireText("billing_address.city", a.City),
		requireText("billing_address.postal_code", a.PostalCode),
		requireText("billing_address.country", a.Country),
	)
}

func requireText(param, value string) error {
	if strings.TrimSpace(value) == "" {
		return errs.NewValueIsRequiredError(param)
	}
	return nil
}
