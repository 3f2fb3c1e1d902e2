package controllers

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mateohuerta/sneakpeak-backend/api/responses"
	"github.com/mateohuerta/sneakpeak-backend/api/validators"
	catalogsvc "github.com/mateohuerta/sneakpeak-backend/internal/catalog"
	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
	pkgerrors "github.com/mateohuerta/sneakpeak-backend/pkg/errors"
	"github.com/mateohuerta/sneakpeak-backend/pkg/logger"
)

// AdminCreateProduct adds a product to the catalog.
func AdminCreateProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.CreateProduct(r.Context(), catalogsvc.CreateProductInput{
			SKU:            payload.SKU,
			Name:           payload.Name,
			Brand:          payload.Brand,
			Description:    payload.Description,
			Price:          payload.Price,
			StockQuantity:  payload.StockQuantity,
			ImageURL:       payload.ImageURL,
			AvailableSizes: payload.AvailableSizes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, newProductResponse(record))
	}
}

// AdminListProducts returns the full catalog, newest first.
func AdminListProducts(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		records, err := svc.ListProducts(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items := make([]productResponse, 0, len(records))
		for i := range records {
			items = append(items, newProductResponse(&records[i]))
		}
		responses.WriteSuccess(w, items)
	}
}

// AdminGetProduct returns one product.
func AdminGetProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.GetProduct(r.Context(), productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(record))
	}
}

// AdminUpdateProduct edits product fields. Price and stock edits are recorded
// in the inventory ledger by the service.
func AdminUpdateProduct(svc catalogsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "catalog service unavailable"))
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		record, err := svc.UpdateProduct(r.Context(), productID, catalogsvc.UpdateProductInput{
			Name:           payload.Name,
			Brand:          payload.Brand,
			Description:    payload.Description,
			Price:          payload.Price,
			StockQuantity:  payload.StockQuantity,
			ImageURL:       payload.ImageURL,
			AvailableSizes: payload.AvailableSizes,
			AdjustmentNote: payload.AdjustmentNote,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, newProductResponse(record))
	}
}

type createProductRequest struct {
	SKU            string          `json:"sku" validate:"required"`
	Name           string          `json:"name" validate:"required"`
	Brand          *string         `json:"brand,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price" validate:"required"`
	StockQuantity  int             `json:"stockQuantity"`
	ImageURL       *string         `json:"imageUrl,omitempty"`
	AvailableSizes []string        `json:"availableSizes,omitempty"`
}

type updateProductRequest struct {
	Name           *string          `json:"name,omitempty"`
	Brand          *string          `json:"brand,omitempty"`
	Description    *string          `json:"description,omitempty"`
	Price          *decimal.Decimal `json:"price,omitempty"`
	StockQuantity  *int             `json:"stockQuantity,omitempty"`
	ImageURL       *string          `json:"imageUrl,omitempty"`
	AvailableSizes []string         `json:"availableSizes,omitempty"`
	AdjustmentNote *string          `json:"adjustmentNote,omitempty"`
}

type productResponse struct {
	ID             uuid.UUID       `json:"id"`
	SKU            string          `json:"sku"`
	Name           string          `json:"name"`
	Brand          *string         `json:"brand,omitempty"`
	Description    *string         `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	StockQuantity  int             `json:"stockQuantity"`
	ImageURL       *string         `json:"imageUrl,omitempty"`
	AvailableSizes []string        `json:"availableSizes"`
	CreatedAt      time.Time       `json:"createdAt"`
	UpdatedAt      time.Time       `json:"updatedAt"`
}

func newProductResponse(product *models.Product) productResponse {
	if product == nil {
		return productResponse{}
	}
	return productResponse{
		ID:             product.ID,
		SKU:            product.SKU,
		Name:           product.Name,
		Brand:          product.Brand,
		Description:    product.Description,
		Price:          product.Price,
		StockQuantity:  product.StockQuantity,
		ImageURL:       product.ImageURL,
		AvailableSizes: append([]string{}, product.AvailableSizes...),
		CreatedAt:      product.CreatedAt,
		UpdatedAt:      product.UpdatedAt,
	}
}
