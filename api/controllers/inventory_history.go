package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mateohuerta/sneakpeak-backend/api/responses"
	"github.com/mateohuerta/sneakpeak-backend/api/validators"
	inventorysvc "github.com/mateohuerta/sneakpeak-backend/internal/inventory"
	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
	pkgerrors "github.com/mateohuerta/sneakpeak-backend/pkg/errors"
	"github.com/mateohuerta/sneakpeak-backend/pkg/logger"
)

// AdminInventoryHistory returns a product's ledger grouped by kind.
func AdminInventoryHistory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		history, err := svc.HistoryForProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newInventoryHistoryResponse(history))
	}
}

type inventoryHistoryResponse struct {
	PriceChanges []inventoryEventResponse `json:"priceChanges"`
	Transactions []inventoryEventResponse `json:"transactions"`
	Restocks     []inventoryEventResponse `json:"restocks"`
}

type inventoryEventResponse struct {
	ID            uuid.UUID        `json:"id"`
	ProductID     uuid.UUID        `json:"productId"`
	Type          string           `json:"type"`
	QuantityDelta *int             `json:"quantityDelta,omitempty"`
	PreviousStock *int             `json:"previousStock,omitempty"`
	NewStock      *int             `json:"newStock,omitempty"`
	PreviousPrice *decimal.Decimal `json:"previousPrice,omitempty"`
	NewPrice      *decimal.Decimal `json:"newPrice,omitempty"`
	OrderID       *uuid.UUID       `json:"orderId,omitempty"`
	Note          *string          `json:"note,omitempty"`
	CreatedAt     time.Time        `json:"createdAt"`
}

func newInventoryHistoryResponse(history *inventorysvc.History) inventoryHistoryResponse {
	if history == nil {
		return inventoryHistoryResponse{
			PriceChanges: []inventoryEventResponse{},
			Transactions: []inventoryEventResponse{},
			Restocks:     []inventoryEventResponse{},
		}
	}
	return inventoryHistoryResponse{
		PriceChanges: newInventoryEventResponses(history.PriceChanges),
		Transactions: newInventoryEventResponses(history.Transactions),
		Restocks:     newInventoryEventResponses(history.Restocks),
	}
}

func newInventoryEventResponses(events []models.InventoryEvent) []inventoryEventResponse {
	items := make([]inventoryEventResponse, 0, len(events))
	for _, event := range events {
		items = append(items, inventoryEventResponse{
			ID:            event.ID,
			ProductID:     event.ProductID,
			Type:          string(event.Type),
			QuantityDelta: event.QuantityDelta,
			PreviousStock: event.PreviousStock,
			NewStock:      event.NewStock,
			PreviousPrice: event.PreviousPrice,
			NewPrice:      event.NewPrice,
			OrderID:       event.OrderID,
			Note:          event.Note,
			CreatedAt:     event.CreatedAt,
		})
	}
	return items
}
