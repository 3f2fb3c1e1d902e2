package orders

import (
	"time"

	"github.com/google/uuid"

	"github.com/mateohuerta/sneakpeak-backend/pkg/enums"
)

// Filters describe the optional predicates applied to the order listing.
// All set filters are combined with AND.
type Filters struct {
	CustomerID *uuid.UUID
	Status     *enums.OrderStatus
	ProductID  *uuid.UUID
	DateFrom   *time.Time
	DateTo     *time.Time
}

// Query carries the raw listing inputs as they arrive from the transport
// layer. The service parses them into Filters.
type Query struct {
	CustomerID string
	Status     string
	ProductID  string
	DateFrom   string
	DateTo     string
}
