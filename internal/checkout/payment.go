package checkout

import (
	"strings"

	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
)

// declineToken is the deterministic stand-in for a gateway decline. Any
// other token authorizes.
const declineToken = "decline"

func paymentDeclined(token *string) bool {
	if token == nil {
		return false
	}
	return strings.EqualFold(strings.TrimSpace(*token), declineToken)
}

// cardUpdates builds a diff-only update map for the customer's saved card
// fields. Unchanged values are not rewritten.
func cardUpdates(customer *models.Customer, req Request) map[string]any {
	updates := map[string]any{}
	diff := func(column string, incoming, stored *string) {
		if incoming == nil {
			return
		}
		value := strings.TrimSpace(*incoming)
		if value == "" {
			return
		}
		if stored != nil && *stored == value {
			return
		}
		updates[column] = value
	}
	diff("credit_card_holder", req.CardHolder, customer.CreditCardHolder)
	diff("credit_card_number", req.CardNumber, customer.CreditCardNumber)
	diff("credit_card_expiry", req.CardExpiry, customer.CreditCardExpiry)
	diff("credit_card_cvv", req.CardCvv, customer.CreditCardCvv)
	return updates
}
