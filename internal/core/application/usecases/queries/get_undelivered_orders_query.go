package queries

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"

	"courierdesk/internal/core/domain/model/kernel"
	"courierdesk/internal/core/domain/model/order"
	"courierdesk/internal/pkg/errs"
	"courierdesk/internal/pkg/guard"
)

const (
	DefaultUndeliveredOrdersLimit = 100
	MaxUndeliveredOrdersLimit     = 1000
)

var ErrGetUndeliveredOrdersQueryIsNotConstructed = errors.New(
	"GetUndeliveredOrdersQuery must be created via NewGetUndeliveredOrdersQuery constructor",
)

// GetUndeliveredOrdersQuery lists orders that have not reached DELIVERED, oldest first.
// It is the work queue operators pick bulk status changes from.
type GetUndeliveredOrdersQuery struct {
	facility *kernel.Facility
	status   *order.Status
	limit    int
	guard    guard.ConstructorGuard
}

// NewGetUndeliveredOrdersQuery builds the query. facility and status narrow the list
// when set; limit 0 means DefaultUndeliveredOrdersLimit.
func NewGetUndeliveredOrdersQuery(
	facility *kernel.Facility,
	status *order.Status,
	limit int,
) (GetUndeliveredOrdersQuery, error) {
	q := GetUndeliveredOrdersQuery{limit: limit, guard: guard.NewConstructorGuard()}

	if facility != nil {
		if err := facility.Validate(); err != nil {
			return GetUndeliveredOrdersQuery{}, err
		}
		f := *facility
		q.facility = &f
	}

	if status != nil {
		if err := status.Validate(); err != nil {
			return GetUndeliveredOrdersQuery{}, err
		}
		if status.IsTerminal() {
			return GetUndeliveredOrdersQuery{}, errs.NewValueIsInvalidErrorWithCause("status",
				errors.New("delivered orders are not listed"))
		}
		s := *status
		q.status = &s
	}

	if q.limit == 0 {
		q.limit = DefaultUndeliveredOrdersLimit
	}
	if q.limit < 1 || q.limit > MaxUndeliveredOrdersLimit {
		return GetUndeliveredOrdersQuery{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, MaxUndeliveredOrdersLimit)
	}

	return q, nil
}

func (q GetUndeliveredOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetUndeliveredOrdersQueryIsNotConstructed)
}

func (q GetUndeliveredOrdersQuery) Facility() *kernel.Facility {
	return q.facility
}

func (q GetUndeliveredOrdersQuery) Status() *order.Status {
	return q.status
}

func (q GetUndeliveredOrdersQuery) Limit() int {
	return q.limit
}

type GetUndeliveredOrdersQueryResponse struct {
	ID         kernel.UUID
	Guide      string
	CustomerID *kernel.UUID
	Status     order.Status
	Facility   kernel.Facility
	Total      decimal.Decimal
	CreatedAt  time.Time
}
