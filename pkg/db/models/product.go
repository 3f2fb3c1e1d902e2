package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// Product is the canonical catalog listing. Stock and price changes made by
// the storefront must be paired with an inventory event.
type Product struct {
	ID             uuid.UUID       `gorm:"column:id;type:uuid;primaryKey"`
	SKU            string          `gorm:"column:sku;not null;uniqueIndex"`
	Name           string          `gorm:"column:name;not null"`
	Brand          *string         `gorm:"column:brand"`
	Description    *string         `gorm:"column:description"`
	Price          decimal.Decimal `gorm:"column:price;type:numeric(12,2);not null"`
	StockQuantity  int             `gorm:"column:stock_quantity;not null;default:0"`
	ImageURL       *string         `gorm:"column:image_url"`
	AvailableSizes pq.StringArray  `gorm:"column:available_sizes;type:text[]"`
	CreatedAt      time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time       `gorm:"column:updated_at;autoUpdateTime"`
}
