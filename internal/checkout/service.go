package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/mateohuerta/sneakpeak-backend/internal/cart"
	"github.com/mateohuerta/sneakpeak-backend/internal/catalog"
	"github.com/mateohuerta/sneakpeak-backend/internal/customers"
	"github.com/mateohuerta/sneakpeak-backend/internal/inventory"
	"github.com/mateohuerta/sneakpeak-backend/internal/orders"
	"github.com/mateohuerta/sneakpeak-backend/pkg/db/models"
	"github.com/mateohuerta/sneakpeak-backend/pkg/enums"
	pkgerrors "github.com/mateohuerta/sneakpeak-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type saleRecorder interface {
	RecordSale(ctx context.Context, tx *gorm.DB, input inventory.SaleInput) error
}

// LineItem identifies one requested product, by id when present, else by SKU.
type LineItem struct {
	ProductID *uuid.UUID
	SKU       string
	Quantity  int
	Size      *string
}

// Request carries everything checkout needs to convert a cart into an order.
type Request struct {
	CustomerID      uuid.UUID
	Items           []LineItem
	ShippingAddress *string
	BillingAddress  *string
	PaymentMethod   string
	PaymentToken    *string
	UseSavedInfo    bool
	CardHolder      *string
	CardNumber      *string
	CardExpiry      *string
	CardCvv         *string
	SavePaymentInfo bool
}

// PurchasedItem is the normalized view of one order line in the response.
type PurchasedItem struct {
	ProductID uuid.UUID       `json:"productId"`
	SKU       string          `json:"sku"`
	Name      string          `json:"name"`
	Quantity  int             `json:"quantity"`
	Size      *string         `json:"size,omitempty"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// Result is the checkout confirmation returned to the client.
type Result struct {
	OrderID     uuid.UUID         `json:"orderId"`
	OrderNumber string            `json:"orderNumber"`
	TotalAmount decimal.Decimal   `json:"totalAmount"`
	Status      enums.OrderStatus `json:"status"`
	Items       []PurchasedItem   `json:"items"`
	Message     string            `json:"message"`
}

// Service executes checkout orchestration.
type Service interface {
	Checkout(ctx context.Context, req Request) (*Result, error)
}

type service struct {
	tx        txRunner
	customers customers.Repository
	catalog   catalog.Repository
	orders    orders.Repository
	cart      cart.Repository
	ledger    saleRecorder
}

// NewService builds the checkout service.
func NewService(
	tx txRunner,
	customersRepo customers.Repository,
	catalogRepo catalog.Repository,
	ordersRepo orders.Repository,
	cartRepo cart.Repository,
	ledger saleRecorder,
) (Service, error) {
	if tx == nil {
		return nil, fmt.Errorf("tx runner required")
	}
	if customersRepo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	if catalogRepo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	if ordersRepo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if cartRepo == nil {
		return nil, fmt.Errorf("cart repository required")
	}
	if ledger == nil {
		return nil, fmt.Errorf("ledger recorder required")
	}
	return &service{
		tx:        tx,
		customers: customersRepo,
		catalog:   catalogRepo,
		orders:    ordersRepo,
		cart:      cartRepo,
		ledger:    ledger,
	}, nil
}

type resolvedLine struct {
	product  *models.Product
	quantity int
	size     *string
}

// Checkout validates the request, decrements stock with a per-product guard,
// persists the order aggregate with its SALE events, and clears the cart.
// The whole operation runs in one transaction; any failure rolls everything
// back.
func (s *service) Checkout(ctx context.Context, req Request) (*Result, error) {
	if req.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}

	var result *Result
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		customersRepo := s.customers.WithTx(tx)
		catalogRepo := s.catalog.WithTx(tx)
		ordersRepo := s.orders.WithTx(tx)
		cartRepo := s.cart.WithTx(tx)

		customer, err := customersRepo.FindByID(ctx, req.CustomerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "customer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load customer")
		}
		if len(req.Items) == 0 {
			return pkgerrors.New(pkgerrors.CodeValidation, "cart contains no items")
		}
		if strings.TrimSpace(req.PaymentMethod) == "" {
			return pkgerrors.New(pkgerrors.CodeValidation, "payment method required")
		}

		lines := make([]resolvedLine, len(req.Items))
		for i, item := range req.Items {
			product, err := resolveProduct(ctx, catalogRepo, item)
			if err != nil {
				return err
			}
			lines[i] = resolvedLine{product: product, quantity: item.Quantity, size: item.Size}
		}
		for _, line := range lines {
			if line.quantity <= 0 {
				return pkgerrors.New(pkgerrors.CodeValidation,
					fmt.Sprintf("quantity must be positive for product %s", line.product.SKU))
			}
		}
		remaining := make(map[uuid.UUID]int, len(lines))
		for _, line := range lines {
			if _, ok := remaining[line.product.ID]; !ok {
				remaining[line.product.ID] = line.product.StockQuantity
			}
			if line.quantity > remaining[line.product.ID] {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock,
					fmt.Sprintf("insufficient stock for product %s", line.product.SKU))
			}
			remaining[line.product.ID] -= line.quantity
		}

		orderID := uuid.New()
		orderNumber := "ORD-" + uuid.NewString()
		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(lines))
		purchased := make([]PurchasedItem, 0, len(lines))
		sales := make([]inventory.SaleInput, 0, len(lines))

		// Running stock per product so repeated lines chain their
		// previous/new snapshots instead of reusing the loaded value.
		stock := make(map[uuid.UUID]int, len(lines))

		for _, line := range lines {
			ok, err := catalogRepo.DecrementStock(ctx, line.product.ID, line.quantity)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "decrement stock")
			}
			if !ok {
				return pkgerrors.New(pkgerrors.CodeInsufficientStock,
					fmt.Sprintf("insufficient stock for product %s", line.product.SKU))
			}

			if _, seen := stock[line.product.ID]; !seen {
				stock[line.product.ID] = line.product.StockQuantity
			}
			previous := stock[line.product.ID]
			stock[line.product.ID] = previous - line.quantity
			sales = append(sales, inventory.SaleInput{
				ProductID:     line.product.ID,
				Quantity:      line.quantity,
				PreviousStock: previous,
				NewStock:      previous - line.quantity,
				OrderID:       orderID,
			})

			lineTotal := line.product.Price.Mul(decimal.NewFromInt(int64(line.quantity)))
			total = total.Add(lineTotal)
			items = append(items, models.OrderItem{
				ID:          uuid.New(),
				OrderID:     orderID,
				ProductID:   line.product.ID,
				ProductSKU:  line.product.SKU,
				ProductName: line.product.Name,
				Quantity:    line.quantity,
				Size:        line.size,
				UnitPrice:   line.product.Price,
				LineTotal:   lineTotal,
			})
			purchased = append(purchased, PurchasedItem{
				ProductID: line.product.ID,
				SKU:       line.product.SKU,
				Name:      line.product.Name,
				Quantity:  line.quantity,
				Size:      line.size,
				UnitPrice: line.product.Price,
				LineTotal: lineTotal,
			})
		}

		shipping, billing := resolveAddresses(customer, req)
		order := &models.Order{
			ID:              orderID,
			OrderNumber:     orderNumber,
			CustomerID:      customer.ID,
			Status:          enums.OrderStatusPending,
			TotalAmount:     total,
			ShippingAddress: shipping,
			BillingAddress:  billing,
			Items:           items,
		}
		if _, err := ordersRepo.Create(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create order")
		}

		if paymentDeclined(req.PaymentToken) {
			return pkgerrors.New(pkgerrors.CodePaymentDeclined, "payment was declined")
		}

		for _, sale := range sales {
			if err := s.ledger.RecordSale(ctx, tx, sale); err != nil {
				return err
			}
		}

		if err := cartRepo.Clear(ctx, customer.ID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "clear cart")
		}

		if req.SavePaymentInfo {
			if updates := cardUpdates(customer, req); len(updates) > 0 {
				if err := customersRepo.UpdateFields(ctx, customer.ID, updates); err != nil {
					return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "save payment info")
				}
			}
		}

		result = &Result{
			OrderID:     order.ID,
			OrderNumber: order.OrderNumber,
			TotalAmount: order.TotalAmount,
			Status:      order.Status,
			Items:       purchased,
			Message:     "Order placed successfully",
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

func resolveProduct(ctx context.Context, repo catalog.Repository, item LineItem) (*models.Product, error) {
	if item.ProductID != nil && *item.ProductID != uuid.Nil {
		product, err := repo.FindByID(ctx, *item.ProductID)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
	}
	if sku := strings.TrimSpace(item.SKU); sku != "" {
		product, err := repo.FindBySKU(ctx, sku)
		if err == nil {
			return product, nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load product")
		}
	}
	return nil, pkgerrors.New(pkgerrors.CodeNotFound, "product not found")
}
