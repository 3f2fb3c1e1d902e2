package controllers

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/mateohuerta/sneakpeak-backend/api/responses"
	"github.com/mateohuerta/sneakpeak-backend/api/validators"
	cartsvc "github.com/mateohuerta/sneakpeak-backend/internal/cart"
	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
	pkgerrors "github.com/mateohuerta/sneakpeak-backend/pkg/errors"
	"github.com/mateohuerta/sneakpeak-backend/pkg/logger"
)

// CartList returns the customer's current cart snapshot.
func CartList(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		customerID, err := validators.ParseQueryUUID(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := svc.Items(r.Context(), customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]cartItemResponse, 0, len(records))
		for _, record := range records {
			items = append(items, newCartItemResponse(record))
		}
		responses.WriteSuccess(w, items)
	}
}

// CartUpsert adds a product to the customer's cart, merging quantity into an
// existing line for the same product and size.
func CartUpsert(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		var payload upsertCartRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.AddItem(r.Context(), payload.CustomerID, payload.ProductID, payload.Quantity, payload.Size)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newCartItemResponse(*record))
	}
}

// CartRemove deletes one line, or the whole cart when no product is given.
func CartRemove(svc cartsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "cart service unavailable"))
			return
		}

		customerID, err := validators.ParseQueryUUID(r, "customerId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		rawProduct := r.URL.Query().Get("productId")
		if rawProduct == "" {
			if err := svc.Clear(r.Context(), customerID); err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			responses.WriteSuccess(w, map[string]string{"status": "cleared"})
			return
		}

		productID, err := validators.ParsePathUUID(rawProduct, "productId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var size *string
		if raw := r.URL.Query().Get("size"); raw != "" {
			size = &raw
		}

		if err := svc.RemoveItem(r.Context(), customerID, productID, size); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, map[string]string{"status": "removed"})
	}
}

type upsertCartRequest struct {
	CustomerID uuid.UUID `json:"customerId" validate:"required"`
	ProductID  uuid.UUID `json:"productId" validate:"required"`
	Quantity   int       `json:"quantity" validate:"required,gt=0"`
	Size       *string   `json:"size,omitempty"`
}

type cartItemResponse struct {
	ID         uuid.UUID `json:"id"`
	CustomerID uuid.UUID `json:"customerId"`
	ProductID  uuid.UUID `json:"productId"`
	Quantity   int       `json:"quantity"`
	Size       *string   `json:"size,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

func newCartItemResponse(item models.CartItem) cartItemResponse {
	return cartItemResponse{
		ID:         item.ID,
		CustomerID: item.CustomerID,
		ProductID:  item.ProductID,
		Quantity:   item.Quantity,
		Size:       item.Size,
		CreatedAt:  item.CreatedAt,
		UpdatedAt:  item.UpdatedAt,
	}
}
