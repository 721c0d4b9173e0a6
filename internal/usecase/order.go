package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	domainErrors "github.com/polkiloo/quickmart/internal/domain/errors"
	"github.com/polkiloo/quickmart/internal/domain/model"
	"github.com/polkiloo/quickmart/internal/domain/repository"
)

// OrderOptions tunes order access rules.
type OrderOptions struct {
	// ConcealForbidden reports any access denied by the guard as not found when
	// the principal cannot read the order either. Reads, status changes, updates
	// and deletes all follow it; owners still get forbidden on admin operations.
	ConcealForbidden bool
}

// StatusUpdate is the payload of the dedicated status endpoint.
type StatusUpdate struct {
	OrderStatus  string
	DriverName   *string
	DeliveryTime *string
}

// OrderUpdate is the payload of the combined update endpoint.
type OrderUpdate struct {
	OrderStatus   *string
	PaymentStatus *string
	DriverName    *string
	DeliveryTime  *string
}

// OrderUseCase encapsulates order lifecycle logic.
type OrderUseCase struct {
	orders  repository.OrderRepository
	options OrderOptions
	now     func() time.Time
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, options OrderOptions) *OrderUseCase {
	return &OrderUseCase{orders: orders, options: options, now: time.Now}
}

// Place normalizes the request and stores exactly one order for the principal.
func (u *OrderUseCase) Place(ctx context.Context, principal model.Principal, in CreateOrderInput) (*model.Order, error) {
	order, err := NormalizeOrder(principal.UserID, in, u.now())
	if err != nil {
		return nil, err
	}

	id, err := u.orders.Create(ctx, order)
	if err != nil {
		return nil, storeError(err)
	}
	order.ID = id
	return &order, nil
}

// Get returns an order the principal is allowed to read.
func (u *OrderUseCase) Get(ctx context.Context, principal model.Principal, id string) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if !CanRead(principal, *order) {
		return nil, u.denied(principal, *order)
	}
	return order, nil
}

// ListMine returns the principal's own orders, most recent first.
func (u *OrderUseCase) ListMine(ctx context.Context, principal model.Principal, class model.StatusClass) ([]model.Order, error) {
	orders, err := u.orders.ListByOwner(ctx, principal.UserID, class)
	if err != nil {
		return nil, storeError(err)
	}
	return orders, nil
}

// ListAll returns every order for admins, most recent first.
func (u *OrderUseCase) ListAll(ctx context.Context, principal model.Principal, class model.StatusClass) ([]model.Order, error) {
	if !CanListAll(principal) {
		return nil, domainErrors.ErrForbidden
	}
	orders, err := u.orders.ListAll(ctx, class)
	if err != nil {
		return nil, storeError(err)
	}
	return orders, nil
}

// UpdateStatus sets the fulfillment status and optionally the driver and delivery time.
// Any label is accepted regardless of the current status.
func (u *OrderUseCase) UpdateStatus(ctx context.Context, principal model.Principal, id string, in StatusUpdate) (*model.Order, error) {
	return u.mutate(ctx, principal, id, func() (model.OrderPatch, error) {
		status, err := ParseFulfillmentStatus(in.OrderStatus)
		if err != nil {
			return model.OrderPatch{}, err
		}
		return model.OrderPatch{
			FulfillmentStatus:     &status,
			DriverName:            sanitizeOptional(in.DriverName),
			EstimatedDeliveryTime: sanitizeOptional(in.DeliveryTime),
		}, nil
	})
}

// Update applies the combined update; at least one field must be present.
func (u *OrderUseCase) Update(ctx context.Context, principal model.Principal, id string, in OrderUpdate) (*model.Order, error) {
	return u.mutate(ctx, principal, id, func() (model.OrderPatch, error) {
		patch := model.OrderPatch{
			DriverName:            sanitizeOptional(in.DriverName),
			EstimatedDeliveryTime: sanitizeOptional(in.DeliveryTime),
		}
		if in.OrderStatus != nil {
			status, err := ParseFulfillmentStatus(*in.OrderStatus)
			if err != nil {
				return model.OrderPatch{}, err
			}
			patch.FulfillmentStatus = &status
		}
		if in.PaymentStatus != nil {
			status, err := ParsePaymentStatus(*in.PaymentStatus)
			if err != nil {
				return model.OrderPatch{}, err
			}
			patch.PaymentStatus = &status
		}
		if patch.Empty() {
			return model.OrderPatch{}, fmt.Errorf("%w: nothing to update", domainErrors.ErrMalformedUpdate)
		}
		return patch, nil
	})
}

// Delete removes an order unconditionally for admins, whatever its status.
func (u *OrderUseCase) Delete(ctx context.Context, principal model.Principal, id string) error {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return storeError(err)
	}
	if !CanDelete(principal, *order) {
		return u.denied(principal, *order)
	}
	if err := u.orders.Delete(ctx, id); err != nil {
		return storeError(err)
	}
	return nil
}

func (u *OrderUseCase) mutate(ctx context.Context, principal model.Principal, id string, build func() (model.OrderPatch, error)) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, id)
	if err != nil {
		return nil, storeError(err)
	}
	if !CanMutate(principal, *order) {
		return nil, u.denied(principal, *order)
	}

	patch, err := build()
	if err != nil {
		return nil, err
	}

	updated, err := u.orders.Update(ctx, id, patch)
	if err != nil {
		return nil, storeError(err)
	}
	return updated, nil
}

// denied hides the order from principals that may not even read it.
func (u *OrderUseCase) denied(principal model.Principal, order model.Order) error {
	if u.options.ConcealForbidden && !CanRead(principal, order) {
		return domainErrors.ErrNotFound
	}
	return domainErrors.ErrForbidden
}

func sanitizeOptional(v *string) *string {
	if v == nil {
		return nil
	}
	clean := sanitizeText(*v)
	return &clean
}

// storeError keeps not-found as is and classifies every other persistence failure.
func storeError(err error) error {
	if errors.Is(err, domainErrors.ErrNotFound) {
		return domainErrors.ErrNotFound
	}
	return fmt.Errorf("%w: %w", domainErrors.ErrUnexpectedStore, err)
}
