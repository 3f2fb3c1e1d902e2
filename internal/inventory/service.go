package inventory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
	"github.com/mateohuerta/sneakpeak-backend/pkg/enums"
	pkgerrors "github.com/mateohuerta/sneakpeak-backend/pkg/errors"
)

type productChecker interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Product, error)
}

// SaleInput carries the fields recorded with a SALE event.
type SaleInput struct {
	ProductID     uuid.UUID
	Quantity      int
	PreviousStock int
	NewStock      int
	OrderID       uuid.UUID
}

// History groups a product's ledger entries for presentation. Each group is
// ordered newest-first.
type History struct {
	PriceChanges []models.InventoryEvent `json:"priceChanges"`
	Transactions []models.InventoryEvent `json:"transactions"`
	Restocks     []models.InventoryEvent `json:"restocks"`
}

// Service appends ledger events and reads product history.
type Service interface {
	RecordSale(ctx context.Context, tx *gorm.DB, input SaleInput) error
	RecordPriceChange(ctx context.Context, tx *gorm.DB, productID uuid.UUID, previous, next decimal.Decimal) error
	RecordStockAdjustment(ctx context.Context, tx *gorm.DB, productID uuid.UUID, previous, next int, note *string) error
	HistoryForProduct(ctx context.Context, productID uuid.UUID) (*History, error)
}

type service struct {
	repo     Repository
	products productChecker
}

// NewService builds the ledger service.
func NewService(repo Repository, products productChecker) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("ledger repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product checker required")
	}
	return &service{repo: repo, products: products}, nil
}

// RecordSale always appends a SALE event with a negative quantity delta.
func (s *service) RecordSale(ctx context.Context, tx *gorm.DB, input SaleInput) error {
	if input.ProductID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if input.Quantity <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "sale quantity must be positive")
	}
	delta := -input.Quantity
	prev := input.PreviousStock
	next := input.NewStock
	note := fmt.Sprintf("Order #%s", input.OrderID)
	orderID := input.OrderID
	event := &models.InventoryEvent{
		ID:            uuid.New(),
		ProductID:     input.ProductID,
		Type:          enums.InventoryEventSale,
		QuantityDelta: &delta,
		PreviousStock: &prev,
		NewStock:      &next,
		OrderID:       &orderID,
		Note:          &note,
	}
	if _, err := s.repo.WithTx(tx).Create(ctx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record sale event")
	}
	return nil
}

// RecordPriceChange appends a PRICE_CHANGE event. Numerically equal prices
// are a no-op.
func (s *service) RecordPriceChange(ctx context.Context, tx *gorm.DB, productID uuid.UUID, previous, next decimal.Decimal) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if previous.Equal(next) {
		return nil
	}
	prev := previous
	val := next
	event := &models.InventoryEvent{
		ID:            uuid.New(),
		ProductID:     productID,
		Type:          enums.InventoryEventPriceChange,
		PreviousPrice: &prev,
		NewPrice:      &val,
	}
	if _, err := s.repo.WithTx(tx).Create(ctx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record price change event")
	}
	return nil
}

// RecordStockAdjustment appends a RESTOCK event when stock increased and an
// ADJUSTMENT event when it decreased. Equal values are a no-op.
func (s *service) RecordStockAdjustment(ctx context.Context, tx *gorm.DB, productID uuid.UUID, previous, next int, note *string) error {
	if productID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if previous == next {
		return nil
	}
	eventType := enums.InventoryEventAdjustment
	if next > previous {
		eventType = enums.InventoryEventRestock
	}
	delta := next - previous
	prev := previous
	val := next
	event := &models.InventoryEvent{
		ID:            uuid.New(),
		ProductID:     productID,
		Type:          eventType,
		QuantityDelta: &delta,
		PreviousStock: &prev,
		NewStock:      &val,
		Note:          note,
	}
	if _, err := s.repo.WithTx(tx).Create(ctx, event); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "record stock adjustment event")
	}
	return nil
}

// HistoryForProduct returns the product's ledger partitioned into price
// changes, sale transactions, and restock/adjustment events.
func (s *service) HistoryForProduct(ctx context.Context, productID uuid.UUID) (*History, error) {
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	if _, err := s.products.FindByID(ctx, productID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
	}

	events, err := s.repo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list inventory events")
	}

	history := &History{
		PriceChanges: []models.InventoryEvent{},
		Transactions: []models.InventoryEvent{},
		Restocks:     []models.InventoryEvent{},
	}
	for _, event := range events {
		switch event.Type {
		case enums.InventoryEventPriceChange:
			history.PriceChanges = append(history.PriceChanges, event)
		case enums.InventoryEventSale:
			history.Transactions = append(history.Transactions, event)
		default:
			history.Restocks = append(history.Restocks, event)
		}
	}
	return history, nil
}
