package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mateohuerta/sneakpeak-backend/api/responses"
	"github.com/mateohuerta/sneakpeak-backend/api/validators"
	checkoutsvc "github.com/mateohuerta/sneakpeak-backend/internal/checkout"
	pkgerrors "github.com/mateohuerta/sneakpeak-backend/pkg/errors"
	"github.com/mateohuerta/sneakpeak-backend/pkg/logger"
	"github.com/mateohuerta/sneakpeak-backend/pkg/metrics"
)

// Checkout handles submission of a customer's purchase.
func Checkout(svc checkoutsvc.Service, met *metrics.CheckoutMetrics, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		var payload checkoutRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		req := payload.toRequest()
		units := 0
		for _, item := range req.Items {
			units += item.Quantity
		}

		start := time.Now()
		result, err := svc.Checkout(r.Context(), req)
		outcome := checkoutOutcome(err)
		if met != nil {
			met.ObserveAttempt(outcome, time.Since(start))
			if err == nil {
				met.AddUnitsSold(outcome, units)
			}
		}
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if logg != nil {
			ctx := logg.WithOrderNumber(r.Context(), result.OrderNumber)
			logg.Info(ctx, "checkout.completed")
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

type checkoutRequest struct {
	CustomerID      uuid.UUID             `json:"customerId" validate:"required"`
	Items           []checkoutItemPayload `json:"items" validate:"required,dive"`
	ShippingAddress *string               `json:"shippingAddress,omitempty"`
	BillingAddress  *string               `json:"billingAddress,omitempty"`
	PaymentMethod   string                `json:"paymentMethod" validate:"required"`
	PaymentToken    *string               `json:"paymentToken,omitempty"`
	UseSavedInfo    bool                  `json:"useSavedInfo"`
	CardHolder      *string               `json:"cardHolder,omitempty"`
	CardNumber      *string               `json:"cardNumber,omitempty"`
	CardExpiry      *string               `json:"cardExpiry,omitempty"`
	CardCvv         *string               `json:"cardCvv,omitempty"`
	SavePaymentInfo bool                  `json:"savePaymentInfo"`
}

type checkoutItemPayload struct {
	ProductID *uuid.UUID `json:"productId,omitempty"`
	SKU       string     `json:"sku,omitempty"`
	Quantity  int        `json:"quantity" validate:"required"`
	Size      *string    `json:"size,omitempty"`
}

func (r checkoutRequest) toRequest() checkoutsvc.Request {
	items := make([]checkoutsvc.LineItem, len(r.Items))
	for i, item := range r.Items {
		items[i] = checkoutsvc.LineItem{
			ProductID: item.ProductID,
			SKU:       item.SKU,
			Quantity:  item.Quantity,
			Size:      item.Size,
		}
	}
	return checkoutsvc.Request{
		CustomerID:      r.CustomerID,
		Items:           items,
		ShippingAddress: r.ShippingAddress,
		BillingAddress:  r.BillingAddress,
		PaymentMethod:   r.PaymentMethod,
		PaymentToken:    r.PaymentToken,
		UseSavedInfo:    r.UseSavedInfo,
		CardHolder:      r.CardHolder,
		CardNumber:      r.CardNumber,
		CardExpiry:      r.CardExpiry,
		CardCvv:         r.CardCvv,
		SavePaymentInfo: r.SavePaymentInfo,
	}
}

func checkoutOutcome(err error) string {
	if err == nil {
		return metrics.OutcomeCompleted
	}
	switch {
	case pkgerrors.HasCode(err, pkgerrors.CodePaymentDeclined):
		return metrics.OutcomePaymentDeclined
	case pkgerrors.HasCode(err, pkgerrors.CodeInsufficientStock):
		return metrics.OutcomeInsufficientStock
	case pkgerrors.HasCode(err, pkgerrors.CodeValidation), pkgerrors.HasCode(err, pkgerrors.CodeNotFound):
		return metrics.OutcomeValidationFailed
	default:
		return metrics.OutcomeError
	}
}
