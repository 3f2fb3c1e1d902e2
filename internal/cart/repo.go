package cart

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
)

// Repository defines persistence operations for cart snapshots.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Upsert(ctx context.Context, item *models.CartItem) (*models.CartItem, error)
	ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CartItem, error)
	Remove(ctx context.Context, customerID, productID uuid.UUID, size *string) error
	Clear(ctx context.Context, customerID uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a cart repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

// Upsert adds the quantity onto an existing line for the same product and
// size, or inserts a new line.
func (r *repository) Upsert(ctx context.Context, item *models.CartItem) (*models.CartItem, error) {
	var existing models.CartItem
	q := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", item.CustomerID, item.ProductID)
	if item.Size != nil {
		q = q.Where("size = ?", *item.Size)
	} else {
		q = q.Where("size IS NULL")
	}
	err := q.First(&existing).Error
	switch {
	case err == nil:
		existing.Quantity += item.Quantity
		if err := r.db.WithContext(ctx).Save(&existing).Error; err != nil {
			return nil, err
		}
		return &existing, nil
	case err == gorm.ErrRecordNotFound:
		if item.ID == uuid.Nil {
			item.ID = uuid.New()
		}
		if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
			return nil, err
		}
		return item, nil
	default:
		return nil, err
	}
}

func (r *repository) ListByCustomer(ctx context.Context, customerID uuid.UUID) ([]models.CartItem, error) {
	var items []models.CartItem
	err := r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Order("created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

func (r *repository) Remove(ctx context.Context, customerID, productID uuid.UUID, size *string) error {
	q := r.db.WithContext(ctx).
		Where("customer_id = ? AND product_id = ?", customerID, productID)
	if size != nil {
		q = q.Where("size = ?", *size)
	}
	return q.Delete(&models.CartItem{}).Error
}

// Clear drops every line in the customer's cart. Called by checkout inside
// the checkout transaction.
func (r *repository) Clear(ctx context.Context, customerID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("customer_id = ?", customerID).
		Delete(&models.CartItem{}).Error
}
