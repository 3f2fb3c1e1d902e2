package catalog

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mateohuerta/sneakpeak-backend/internal/inventory"
	pkgdb "github.com/mateohuerta/sneakpeak-backend/pkg/db"
	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
	"github.com/mateohuerta/sneakpeak-backend/pkg/enums"
	pkgerrors "github.com/mateohuerta/sneakpeak-backend/pkg/errors"
)

func setupCatalogServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db := setupCatalogTestDB(t)
	events := `
CREATE TABLE IF NOT EXISTS inventory_events (
  id TEXT PRIMARY KEY,
  product_id TEXT NOT NULL,
  type TEXT NOT NULL,
  quantity_delta INTEGER,
  previous_stock INTEGER,
  new_stock INTEGER,
  previous_price NUMERIC,
  new_price NUMERIC,
  order_id TEXT,
  note TEXT,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(events).Error)
	return db
}

func newCatalogService(t *testing.T, db *gorm.DB) Service {
	t.Helper()

	repo := NewRepository(db)
	ledger, err := inventory.NewService(inventory.NewRepository(db), repo)
	require.NoError(t, err)
	svc, err := NewService(repo, pkgdb.NewWithConn(db), ledger)
	require.NoError(t, err)
	return svc
}

func TestUpdateProductPriceChangeWritesLedgerEvent(t *testing.T) {
	t.Parallel()

	db := setupCatalogServiceTestDB(t)
	ctx := context.Background()
	svc := newCatalogService(t, db)
	product := newProduct(t, db, "SNK-PRICE", 25)

	newPrice := decimal.RequireFromString("260.00")
	updated, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{Price: &newPrice})
	require.NoError(t, err)
	assert.True(t, updated.Price.Equal(newPrice))

	var events []models.InventoryEvent
	require.NoError(t, db.Where("product_id = ?", product.ID).Find(&events).Error)
	require.Len(t, events, 1)
	assert.Equal(t, enums.InventoryEventPriceChange, events[0].Type)
	require.NotNil(t, events[0].PreviousPrice)
	assert.True(t, events[0].PreviousPrice.Equal(decimal.RequireFromString("240.00")))
	require.NotNil(t, events[0].NewPrice)
	assert.True(t, events[0].NewPrice.Equal(newPrice))
}

func TestUpdateProductSamePriceWritesNoEvent(t *testing.T) {
	t.Parallel()

	db := setupCatalogServiceTestDB(t)
	ctx := context.Background()
	svc := newCatalogService(t, db)
	product := newProduct(t, db, "SNK-SAME", 25)

	samePrice := decimal.RequireFromString("240.00")
	_, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{Price: &samePrice})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.InventoryEvent{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Zero(t, count)
}

func TestUpdateProductStockChangeWritesAdjustment(t *testing.T) {
	t.Parallel()

	db := setupCatalogServiceTestDB(t)
	ctx := context.Background()
	svc := newCatalogService(t, db)
	product := newProduct(t, db, "SNK-STOCK", 10)

	restocked := 40
	updated, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{StockQuantity: &restocked})
	require.NoError(t, err)
	assert.Equal(t, 40, updated.StockQuantity)

	var event models.InventoryEvent
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&event).Error)
	assert.Equal(t, enums.InventoryEventRestock, event.Type)
	require.NotNil(t, event.QuantityDelta)
	assert.Equal(t, 30, *event.QuantityDelta)
}

func TestUpdateProductPairsBothEventsInOneTransaction(t *testing.T) {
	t.Parallel()

	db := setupCatalogServiceTestDB(t)
	ctx := context.Background()
	svc := newCatalogService(t, db)
	product := newProduct(t, db, "SNK-BOTH", 10)

	price := decimal.RequireFromString("199.99")
	stock := 8
	_, err := svc.UpdateProduct(ctx, product.ID, UpdateProductInput{Price: &price, StockQuantity: &stock})
	require.NoError(t, err)

	var count int64
	require.NoError(t, db.Model(&models.InventoryEvent{}).Where("product_id = ?", product.ID).Count(&count).Error)
	assert.Equal(t, int64(2), count)
}

func TestUpdateProductNotFound(t *testing.T) {
	t.Parallel()

	db := setupCatalogServiceTestDB(t)
	svc := newCatalogService(t, db)

	name := "Phantom"
	_, err := svc.UpdateProduct(context.Background(), uuid.New(), UpdateProductInput{Name: &name})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}

func TestCreateProductValidation(t *testing.T) {
	t.Parallel()

	db := setupCatalogServiceTestDB(t)
	svc := newCatalogService(t, db)
	ctx := context.Background()

	_, err := svc.CreateProduct(ctx, CreateProductInput{Name: "No SKU", Price: decimal.RequireFromString("10.00")})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.CreateProduct(ctx, CreateProductInput{
		SKU:   "SNK-NEG",
		Name:  "Negative",
		Price: decimal.RequireFromString("-1.00"),
	})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	created, err := svc.CreateProduct(ctx, CreateProductInput{
		SKU:           "SNK-NEW",
		Name:          "Fresh Drop",
		Price:         decimal.RequireFromString("120.00"),
		StockQuantity: 5,
	})
	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, created.ID)
	assert.Equal(t, "SNK-NEW", created.SKU)
}
