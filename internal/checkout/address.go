package checkout

import (
	"strings"

	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
)

func joinAddressParts(parts ...*string) *string {
	var kept []string
	for _, part := range parts {
		if part == nil {
			continue
		}
		if v := strings.TrimSpace(*part); v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		return nil
	}
	joined := strings.Join(kept, ", ")
	return &joined
}

func savedShippingAddress(c *models.Customer) *string {
	return joinAddressParts(c.AddressLine1, c.AddressLine2, c.City, c.Province, c.PostalCode, c.Country)
}

func savedBillingAddress(c *models.Customer) *string {
	return joinAddressParts(c.BillingAddressLine1, c.BillingAddressLine2, c.BillingCity, c.BillingProvince, c.BillingPostalCode, c.BillingCountry)
}

func explicit(raw *string) *string {
	if raw == nil {
		return nil
	}
	if v := strings.TrimSpace(*raw); v != "" {
		return &v
	}
	return nil
}

// resolveAddresses picks the shipping and billing address per the saved-info
// preference: saved fields win when requested, explicit input is next, and
// the saved address is the final fallback. Billing falls back to shipping.
func resolveAddresses(c *models.Customer, req Request) (shipping, billing *string) {
	savedShipping := savedShippingAddress(c)
	switch {
	case req.UseSavedInfo && savedShipping != nil:
		shipping = savedShipping
	case explicit(req.ShippingAddress) != nil:
		shipping = explicit(req.ShippingAddress)
	default:
		shipping = savedShipping
	}

	savedBilling := savedBillingAddress(c)
	switch {
	case req.UseSavedInfo && savedBilling != nil:
		billing = savedBilling
	case explicit(req.BillingAddress) != nil:
		billing = explicit(req.BillingAddress)
	default:
		billing = savedBilling
	}
	if billing == nil {
		billing = shipping
	}
	return shipping, billing
}
