package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/mateohuerta/sneakpeak-backend/pkg/enums"
)

// InventoryEvent records an immutable stock or price change. Rows are only
// ever appended; history reads order them newest-first.
type InventoryEvent struct {
	ID            uuid.UUID                `gorm:"column:id;type:uuid;primaryKey"`
	ProductID     uuid.UUID                `gorm:"column:product_id;type:uuid;not null;index"`
	Type          enums.InventoryEventType `gorm:"column:type;not null"`
	QuantityDelta *int                     `gorm:"column:quantity_delta"`
	PreviousStock *int                     `gorm:"column:previous_stock"`
	NewStock      *int                     `gorm:"column:new_stock"`
	PreviousPrice *decimal.Decimal         `gorm:"column:previous_price;type:numeric(12,2)"`
	NewPrice      *decimal.Decimal         `gorm:"column:new_price;type:numeric(12,2)"`
	OrderID       *uuid.UUID               `gorm:"column:order_id;type:uuid"`
	Note          *string                  `gorm:"column:note"`
	CreatedAt     time.Time                `gorm:"column:created_at;autoCreateTime"`
}
