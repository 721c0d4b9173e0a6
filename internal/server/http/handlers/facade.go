package handlers

import (
	"context"

	"github.com/polkiloo/quickmart/internal/domain/model"
	"github.com/polkiloo/quickmart/internal/presenter"
	"github.com/polkiloo/quickmart/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error)
	Authenticate(ctx context.Context, email, password string) (*model.User, string, error)
	ParseToken(token string) (model.Principal, error)
	Profile(ctx context.Context, principal model.Principal) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	PlaceOrder(ctx context.Context, principal model.Principal, in usecase.CreateOrderInput) (presenter.OwnerOrder, error)
	MyOrders(ctx context.Context, principal model.Principal, class model.StatusClass) ([]presenter.OwnerOrder, error)
	AllOrders(ctx context.Context, principal model.Principal, class model.StatusClass) ([]presenter.AdminOrder, error)
	OwnerOrder(ctx context.Context, principal model.Principal, id string) (presenter.OwnerOrder, error)
	AdminOrder(ctx context.Context, principal model.Principal, id string) (presenter.AdminOrder, error)
	UpdateOrderStatus(ctx context.Context, principal model.Principal, id string, in usecase.StatusUpdate) (presenter.AdminOrder, error)
	UpdateOrder(ctx context.Context, principal model.Principal, id string, in usecase.OrderUpdate) (presenter.AdminOrder, error)
	DeleteOrder(ctx context.Context, principal model.Principal, id string) error
}

type HealthFacade interface {
	HealthCheck(ctx context.Context) error
}

// QuickmartFacade aggregates the full set of operations used across handlers.
type QuickmartFacade interface {
	AuthFacade
	OrderFacade
	HealthFacade
}
