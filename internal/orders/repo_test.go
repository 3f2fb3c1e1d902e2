package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
	"github.com/mateohuerta/sneakpeak-backend/pkg/enums"
)

func setupOrdersTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	ordersTable := `
CREATE TABLE IF NOT EXISTS orders (
  id TEXT PRIMARY KEY,
  order_number TEXT NOT NULL UNIQUE,
  customer_id TEXT NOT NULL,
  status TEXT NOT NULL,
  total_amount NUMERIC NOT NULL,
  shipping_address TEXT,
  billing_address TEXT,
  created_at DATETIME,
  updated_at DATETIME
);`
	orderItems := `
CREATE TABLE IF NOT EXISTS order_items (
  id TEXT PRIMARY KEY,
  order_id TEXT NOT NULL,
  product_id TEXT NOT NULL,
  product_sku TEXT NOT NULL,
  product_name TEXT NOT NULL,
  quantity INTEGER NOT NULL,
  size TEXT,
  unit_price NUMERIC NOT NULL,
  line_total NUMERIC NOT NULL,
  created_at DATETIME
);`
	require.NoError(t, db.Exec(ordersTable).Error)
	require.NoError(t, db.Exec(orderItems).Error)
	return db
}

func seedOrder(t *testing.T, db *gorm.DB, customerID, productID uuid.UUID, status enums.OrderStatus, createdAt time.Time) *models.Order {
	t.Helper()

	orderID := uuid.New()
	order := &models.Order{
		ID:          orderID,
		OrderNumber: "ORD-" + uuid.NewString(),
		CustomerID:  customerID,
		Status:      status,
		TotalAmount: decimal.RequireFromString("240.00"),
		Items: []models.OrderItem{
			{
				ID:          uuid.New(),
				OrderID:     orderID,
				ProductID:   productID,
				ProductSKU:  "SNK-1",
				ProductName: "Retro High",
				Quantity:    1,
				UnitPrice:   decimal.RequireFromString("240.00"),
				LineTotal:   decimal.RequireFromString("240.00"),
			},
		},
	}
	require.NoError(t, db.Create(order).Error)
	require.NoError(t, db.Model(&models.Order{}).Where("id = ?", orderID).Update("created_at", createdAt).Error)
	return order
}

func TestListFiltersByCustomerAndStatus(t *testing.T) {
	t.Parallel()

	db := setupOrdersTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)
	customerA := uuid.New()
	customerB := uuid.New()
	product := uuid.New()
	now := time.Now().UTC()

	shipped := seedOrder(t, db, customerA, product, enums.OrderStatusShipped, now)
	seedOrder(t, db, customerA, product, enums.OrderStatusPending, now)
	seedOrder(t, db, customerB, product, enums.OrderStatusShipped, now)

	status := enums.OrderStatusShipped
	results, err := repo.List(ctx, Filters{CustomerID: &customerA, Status: &status})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, shipped.ID, results[0].ID)
	require.Len(t, results[0].Items, 1)
}

func TestListFiltersByProduct(t *testing.T) {
	t.Parallel()

	db := setupOrdersTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)
	customer := uuid.New()
	productA := uuid.New()
	productB := uuid.New()
	now := time.Now().UTC()

	withA := seedOrder(t, db, customer, productA, enums.OrderStatusPending, now)
	seedOrder(t, db, customer, productB, enums.OrderStatusPending, now)

	results, err := repo.List(ctx, Filters{ProductID: &productA})
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, withA.ID, results[0].ID)
}

func TestListDateWindowIsInclusiveDayBounded(t *testing.T) {
	t.Parallel()

	db := setupOrdersTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)
	customer := uuid.New()
	product := uuid.New()

	day := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	early := seedOrder(t, db, customer, product, enums.OrderStatusPending, day.Add(10*time.Minute))
	late := seedOrder(t, db, customer, product, enums.OrderStatusPending, day.Add(23*time.Hour+59*time.Minute))
	seedOrder(t, db, customer, product, enums.OrderStatusPending, day.AddDate(0, 0, -1).Add(12*time.Hour))
	seedOrder(t, db, customer, product, enums.OrderStatusPending, day.AddDate(0, 0, 1).Add(2*time.Hour))

	from := day
	to := day.Add(24*time.Hour - time.Nanosecond)
	results, err := repo.List(ctx, Filters{DateFrom: &from, DateTo: &to})
	require.NoError(t, err)
	require.Len(t, results, 2)

	ids := []uuid.UUID{results[0].ID, results[1].ID}
	assert.Contains(t, ids, early.ID)
	assert.Contains(t, ids, late.ID)
}

func TestListNoFiltersReturnsEverything(t *testing.T) {
	t.Parallel()

	db := setupOrdersTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)
	customer := uuid.New()
	product := uuid.New()
	now := time.Now().UTC()

	seedOrder(t, db, customer, product, enums.OrderStatusPending, now.Add(-time.Hour))
	seedOrder(t, db, customer, product, enums.OrderStatusPaid, now)

	results, err := repo.List(ctx, Filters{})
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestUpdateStatusPersists(t *testing.T) {
	t.Parallel()

	db := setupOrdersTestDB(t)
	ctx := context.Background()
	repo := NewRepository(db)
	order := seedOrder(t, db, uuid.New(), uuid.New(), enums.OrderStatusPending, time.Now().UTC())

	require.NoError(t, repo.UpdateStatus(ctx, order.ID, enums.OrderStatusPaid))

	reloaded, err := repo.FindByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPaid, reloaded.Status)
}
