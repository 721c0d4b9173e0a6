package test

import (
	"context"

	"github.com/polkiloo/quickmart/internal/domain/model"
	"github.com/polkiloo/quickmart/internal/presenter"
	"github.com/polkiloo/quickmart/internal/usecase"
)

// QuickmartFacadeStub provides controllable behaviour for HTTP handlers.
type QuickmartFacadeStub struct {
	RegisterFn     func(context.Context, usecase.RegisterInput) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (model.Principal, error)
	ProfileFn      func(context.Context, model.Principal) (*model.User, error)

	PlaceFn        func(context.Context, model.Principal, usecase.CreateOrderInput) (presenter.OwnerOrder, error)
	MyOrdersFn     func(context.Context, model.Principal, model.StatusClass) ([]presenter.OwnerOrder, error)
	AllOrdersFn    func(context.Context, model.Principal, model.StatusClass) ([]presenter.AdminOrder, error)
	OwnerOrderFn   func(context.Context, model.Principal, string) (presenter.OwnerOrder, error)
	AdminOrderFn   func(context.Context, model.Principal, string) (presenter.AdminOrder, error)
	UpdateStatusFn func(context.Context, model.Principal, string, usecase.StatusUpdate) (presenter.AdminOrder, error)
	UpdateFn       func(context.Context, model.Principal, string, usecase.OrderUpdate) (presenter.AdminOrder, error)
	DeleteFn       func(context.Context, model.Principal, string) error

	HealthFn func(context.Context) error
}

func (s QuickmartFacadeStub) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, in)
	}
	return &model.User{ID: 1, Name: in.Name, Email: in.Email, Role: model.RoleCustomer}, "token", nil
}

func (s QuickmartFacadeStub) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, email, password)
	}
	return &model.User{ID: 1, Email: email, Role: model.RoleCustomer}, "token", nil
}

func (s QuickmartFacadeStub) ParseToken(token string) (model.Principal, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return model.Principal{UserID: 1, Role: model.RoleCustomer}, nil
}

func (s QuickmartFacadeStub) Profile(ctx context.Context, principal model.Principal) (*model.User, error) {
	if s.ProfileFn != nil {
		return s.ProfileFn(ctx, principal)
	}
	return &model.User{ID: principal.UserID, Role: principal.Role}, nil
}

func (s QuickmartFacadeStub) PlaceOrder(ctx context.Context, principal model.Principal, in usecase.CreateOrderInput) (presenter.OwnerOrder, error) {
	if s.PlaceFn != nil {
		return s.PlaceFn(ctx, principal, in)
	}
	return presenter.OwnerOrder{ID: "order", LegacyID: "order", Status: "Order Placed"}, nil
}

func (s QuickmartFacadeStub) MyOrders(ctx context.Context, principal model.Principal, class model.StatusClass) ([]presenter.OwnerOrder, error) {
	if s.MyOrdersFn != nil {
		return s.MyOrdersFn(ctx, principal, class)
	}
	return []presenter.OwnerOrder{}, nil
}

func (s QuickmartFacadeStub) AllOrders(ctx context.Context, principal model.Principal, class model.StatusClass) ([]presenter.AdminOrder, error) {
	if s.AllOrdersFn != nil {
		return s.AllOrdersFn(ctx, principal, class)
	}
	return []presenter.AdminOrder{}, nil
}

func (s QuickmartFacadeStub) OwnerOrder(ctx context.Context, principal model.Principal, id string) (presenter.OwnerOrder, error) {
	if s.OwnerOrderFn != nil {
		return s.OwnerOrderFn(ctx, principal, id)
	}
	return presenter.OwnerOrder{ID: id, LegacyID: id}, nil
}

func (s QuickmartFacadeStub) AdminOrder(ctx context.Context, principal model.Principal, id string) (presenter.AdminOrder, error) {
	if s.AdminOrderFn != nil {
		return s.AdminOrderFn(ctx, principal, id)
	}
	return presenter.AdminOrder{ID: id}, nil
}

func (s QuickmartFacadeStub) UpdateOrderStatus(ctx context.Context, principal model.Principal, id string, in usecase.StatusUpdate) (presenter.AdminOrder, error) {
	if s.UpdateStatusFn != nil {
		return s.UpdateStatusFn(ctx, principal, id, in)
	}
	return presenter.AdminOrder{ID: id}, nil
}

func (s QuickmartFacadeStub) UpdateOrder(ctx context.Context, principal model.Principal, id string, in usecase.OrderUpdate) (presenter.AdminOrder, error) {
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, principal, id, in)
	}
	return presenter.AdminOrder{ID: id}, nil
}

func (s QuickmartFacadeStub) DeleteOrder(ctx context.Context, principal model.Principal, id string) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, principal, id)
	}
	return nil
}

func (s QuickmartFacadeStub) HealthCheck(ctx context.Context) error {
	if s.HealthFn != nil {
		return s.HealthFn(ctx)
	}
	return nil
}
