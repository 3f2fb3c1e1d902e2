package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/mateohuerta/sneakpeak-backend/api/responses"
	"github.com/mateohuerta/sneakpeak-backend/api/validators"
	ordersvc "github.com/mateohuerta/sneakpeak-backend/internal/orders"
	pkgerrors "github.com/mateohuerta/sneakpeak-backend/pkg/errors"
	"github.com/mateohuerta/sneakpeak-backend/pkg/logger"
)

// AdminUpdateOrderStatus sets an order's status.
func AdminUpdateOrderStatus(svc ordersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "orders service unavailable"))
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "orderID"), "orderID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderStatusRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.UpdateStatus(r.Context(), orderID, payload.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newOrderResponse(*record))
	}
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
}
