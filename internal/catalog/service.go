package catalog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mateohuerta/sneakpeak-backend/pkg/db"
	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
	pkgerrors "github.com/mateohuerta/sneakpeak-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type ledgerRecorder interface {
	RecordPriceChange(ctx context.Context, tx *gorm.DB, productID uuid.UUID, previous, next decimal.Decimal) error
	RecordStockAdjustment(ctx context.Context, tx *gorm.DB, productID uuid.UUID, previous, next int, note *string) error
}

// CreateProductInput carries the fields accepted when creating a product.
type CreateProductInput struct {
	SKU            string
	Name           string
	Brand          *string
	Description    *string
	Price          decimal.Decimal
	StockQuantity  int
	ImageURL       *string
	AvailableSizes []string
}

// UpdateProductInput carries the optional fields accepted on update. Nil
// means "leave unchanged".
type UpdateProductInput struct {
	Name           *string
	Brand          *string
	Description    *string
	Price          *decimal.Decimal
	StockQuantity  *int
	ImageURL       *string
	AvailableSizes []string
	AdjustmentNote *string
}

// Service exposes admin catalog operations. Price and stock edits are paired
// with ledger events inside the same transaction.
type Service interface {
	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context) ([]models.Product, error)
}

type service struct {
	repo   Repository
	tx     txRunner
	ledger ledgerRecorder
}

// NewService builds the catalog admin service.
func NewService(repo Repository, tx txRunner, ledger ledgerRecorder) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger recorder required")
	}
	return &service{repo: repo, tx: tx, ledger: ledger}, nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if strings.TrimSpace(input.SKU) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if strings.TrimSpace(input.Name) == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name required")
	}
	if input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.StockQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity must not be negative")
	}

	product := &models.Product{
		ID:             uuid.New(),
		SKU:            strings.TrimSpace(input.SKU),
		Name:           strings.TrimSpace(input.Name),
		Brand:          input.Brand,
		Description:    input.Description,
		Price:          input.Price,
		StockQuantity:  input.StockQuantity,
		ImageURL:       input.ImageURL,
		AvailableSizes: pq.StringArray(input.AvailableSizes),
	}
	created, err := s.repo.Create(ctx, product)
	if err != nil {
		if db.IsUniqueViolation(err) {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "sku already exists")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create product")
	}
	return created, nil
}

func (s *service) UpdateProduct(ctx context.Context, id uuid.UUID, input UpdateProductInput) (*models.Product, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Price != nil && input.Price.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "price must not be negative")
	}
	if input.StockQuantity != nil && *input.StockQuantity < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock quantity must not be negative")
	}

	var result *models.Product
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		product, err := repo.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}

		updates := map[string]any{}
		if input.Name != nil {
			updates["name"] = strings.TrimSpace(*input.Name)
		}
		if input.Brand != nil {
			updates["brand"] = *input.Brand
		}
		if input.Description != nil {
			updates["description"] = *input.Description
		}
		if input.ImageURL != nil {
			updates["image_url"] = *input.ImageURL
		}
		if input.AvailableSizes != nil {
			updates["available_sizes"] = pq.StringArray(input.AvailableSizes)
		}
		if input.Price != nil && !input.Price.Equal(product.Price) {
			updates["price"] = *input.Price
			if err := s.ledger.RecordPriceChange(ctx, tx, product.ID, product.Price, *input.Price); err != nil {
				return err
			}
		}
		if input.StockQuantity != nil && *input.StockQuantity != product.StockQuantity {
			updates["stock_quantity"] = *input.StockQuantity
			if err := s.ledger.RecordStockAdjustment(ctx, tx, product.ID, product.StockQuantity, *input.StockQuantity, input.AdjustmentNote); err != nil {
				return err
			}
		}

		if err := repo.UpdateFields(ctx, product.ID, updates); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update product")
		}

		updated, err := repo.FindByID(ctx, product.ID)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload product")
		}
		result = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*models.Product, error) {
	product, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}
	return product, nil
}

func (s *service) ListProducts(ctx context.Context) ([]models.Product, error) {
	products, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list products")
	}
	return products, nil
}
