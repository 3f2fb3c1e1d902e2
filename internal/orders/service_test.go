package orders

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
	"github.com/mateohuerta/sneakpeak-backend/pkg/enums"
	pkgerrors "github.com/mateohuerta/sneakpeak-backend/pkg/errors"
)

type stubOrdersRepo struct {
	orders        map[uuid.UUID]*models.Order
	lastFilters   *Filters
	statusUpdates []enums.OrderStatus
}

func newStubOrdersRepo() *stubOrdersRepo {
	return &stubOrdersRepo{orders: make(map[uuid.UUID]*models.Order)}
}

func (s *stubOrdersRepo) WithTx(tx *gorm.DB) Repository { return s }

func (s *stubOrdersRepo) Create(ctx context.Context, order *models.Order) (*models.Order, error) {
	s.orders[order.ID] = order
	return order, nil
}

func (s *stubOrdersRepo) FindByID(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	order, ok := s.orders[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return order, nil
}

func (s *stubOrdersRepo) List(ctx context.Context, filters Filters) ([]models.Order, error) {
	s.lastFilters = &filters
	var out []models.Order
	for _, order := range s.orders {
		out = append(out, *order)
	}
	return out, nil
}

func (s *stubOrdersRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.OrderStatus) error {
	s.statusUpdates = append(s.statusUpdates, status)
	if order, ok := s.orders[id]; ok {
		order.Status = status
	}
	return nil
}

func TestListStatusFilterIsCaseInsensitive(t *testing.T) {
	t.Parallel()

	repo := newStubOrdersRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.List(ctx, Query{Status: "shipped"})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilters)
	require.NotNil(t, repo.lastFilters.Status)
	assert.Equal(t, enums.OrderStatusShipped, *repo.lastFilters.Status)

	_, err = svc.List(ctx, Query{Status: "SHIPPED"})
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusShipped, *repo.lastFilters.Status)
}

func TestListRejectsUnknownStatus(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubOrdersRepo())
	require.NoError(t, err)

	_, err = svc.List(context.Background(), Query{Status: "bogus"})
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestListRejectsUnparsableDates(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubOrdersRepo())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.List(ctx, Query{DateFrom: "01/02/2024"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))

	_, err = svc.List(ctx, Query{DateTo: "not-a-date"})
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestListDateBoundsExpandToFullDays(t *testing.T) {
	t.Parallel()

	repo := newStubOrdersRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	_, err = svc.List(context.Background(), Query{DateFrom: "2024-01-01", DateTo: "2024-01-01"})
	require.NoError(t, err)
	require.NotNil(t, repo.lastFilters)
	require.NotNil(t, repo.lastFilters.DateFrom)
	require.NotNil(t, repo.lastFilters.DateTo)

	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), repo.lastFilters.DateFrom.UTC())
	assert.True(t, repo.lastFilters.DateTo.After(time.Date(2024, 1, 1, 23, 59, 59, 0, time.UTC)))
	assert.True(t, repo.lastFilters.DateTo.Before(time.Date(2024, 1, 2, 0, 0, 0, 0, time.UTC)))
}

func TestUpdateStatusAcceptsAnyTransition(t *testing.T) {
	t.Parallel()

	repo := newStubOrdersRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)
	ctx := context.Background()

	orderID := uuid.New()
	repo.orders[orderID] = &models.Order{ID: orderID, Status: enums.OrderStatusDelivered}

	// operators may roll a status backwards
	order, err := svc.UpdateStatus(ctx, orderID, "pending")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusPending, order.Status)

	order, err = svc.UpdateStatus(ctx, orderID, "CANCELLED")
	require.NoError(t, err)
	assert.Equal(t, enums.OrderStatusCancelled, order.Status)
}

func TestUpdateStatusSameValueSkipsWrite(t *testing.T) {
	t.Parallel()

	repo := newStubOrdersRepo()
	svc, err := NewService(repo)
	require.NoError(t, err)

	orderID := uuid.New()
	repo.orders[orderID] = &models.Order{ID: orderID, Status: enums.OrderStatusPaid}

	_, err = svc.UpdateStatus(context.Background(), orderID, "paid")
	require.NoError(t, err)
	assert.Empty(t, repo.statusUpdates)
}

func TestUpdateStatusRejectsUnknownValue(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubOrdersRepo())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), "bogus")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeValidation))
}

func TestUpdateStatusUnknownOrder(t *testing.T) {
	t.Parallel()

	svc, err := NewService(newStubOrdersRepo())
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), uuid.New(), "paid")
	require.Error(t, err)
	assert.True(t, pkgerrors.HasCode(err, pkgerrors.CodeNotFound))
}
