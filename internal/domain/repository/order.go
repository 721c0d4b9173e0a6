package repository

import (
	"context"

	"github.com/polkiloo/quickmart/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
// Listings are ordered most recent first. Identifiers the store cannot parse
// are reported as errors.ErrNotFound.
type OrderRepository interface {
	Create(ctx context.Context, order model.Order) (string, error)
	GetByID(ctx context.Context, id string) (*model.Order, error)
	ListByOwner(ctx context.Context, ownerID int64, class model.StatusClass) ([]model.Order, error)
	ListAll(ctx context.Context, class model.StatusClass) ([]model.Order, error)
	Update(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error)
	Delete(ctx context.Context, id string) error
}
