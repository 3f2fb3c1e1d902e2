package orders

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
	"github.com/mateohuerta/sneakpeak-backend/pkg/enums"
	pkgerrors "github.com/mateohuerta/sneakpeak-backend/pkg/errors"
)

const dateLayout = "2006-01-02"

// Service exposes order reads and the administrative status transition.
type Service interface {
	List(ctx context.Context, query Query) ([]models.Order, error)
	Get(ctx context.Context, id uuid.UUID) (*models.Order, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error)
}

type service struct {
	repo Repository
}

// NewService builds the orders service.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) List(ctx context.Context, query Query) ([]models.Order, error) {
	filters, err := parseFilters(query)
	if err != nil {
		return nil, err
	}
	orders, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list orders")
	}
	return orders, nil
}

func (s *service) Get(ctx context.Context, id uuid.UUID) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}
	return order, nil
}

// UpdateStatus sets any of the five statuses. Transitions are deliberately
// unconstrained so an operator can correct a mis-set status.
func (s *service) UpdateStatus(ctx context.Context, id uuid.UUID, status string) (*models.Order, error) {
	if id == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	parsed, err := enums.ParseOrderStatus(status)
	if err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
	}

	order, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "order not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load order")
	}

	if order.Status != parsed {
		if err := s.repo.UpdateStatus(ctx, order.ID, parsed); err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update order status")
		}
		order.Status = parsed
	}
	return order, nil
}

func parseFilters(query Query) (Filters, error) {
	var filters Filters

	if raw := strings.TrimSpace(query.CustomerID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid customer id")
		}
		filters.CustomerID = &id
	}
	if raw := strings.TrimSpace(query.Status); raw != "" {
		status, err := enums.ParseOrderStatus(raw)
		if err != nil {
			return Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid order status")
		}
		filters.Status = &status
	}
	if raw := strings.TrimSpace(query.ProductID); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid product id")
		}
		filters.ProductID = &id
	}
	if raw := strings.TrimSpace(query.DateFrom); raw != "" {
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid dateFrom, expected yyyy-MM-dd")
		}
		from := day
		filters.DateFrom = &from
	}
	if raw := strings.TrimSpace(query.DateTo); raw != "" {
		day, err := time.Parse(dateLayout, raw)
		if err != nil {
			return Filters{}, pkgerrors.New(pkgerrors.CodeValidation, "invalid dateTo, expected yyyy-MM-dd")
		}
		// inclusive end-of-day bound
		to := day.Add(24*time.Hour - time.Nanosecond)
		filters.DateTo = &to
	}
	return filters, nil
}
