package app

import (
	"context"
	"log/slog"

	"github.com/polkiloo/quickmart/internal/domain/model"
	"github.com/polkiloo/quickmart/internal/domain/repository"
	"github.com/polkiloo/quickmart/internal/presenter"
	"github.com/polkiloo/quickmart/internal/usecase"
)

// QuickmartFacade joins use cases with catalog and owner lookups and returns
// ready-to-serve views.
type QuickmartFacade struct {
	auth    *usecase.AuthUseCase
	orders  *usecase.OrderUseCase
	users   repository.UserRepository
	catalog repository.CatalogRepository
	health  repository.HealthChecker
	logger  *slog.Logger
}

func NewQuickmartFacade(
	auth *usecase.AuthUseCase,
	orders *usecase.OrderUseCase,
	users repository.UserRepository,
	catalog repository.CatalogRepository,
	health repository.HealthChecker,
	logger *slog.Logger,
) *QuickmartFacade {
	return &QuickmartFacade{auth: auth, orders: orders, users: users, catalog: catalog, health: health, logger: logger}
}

func (f *QuickmartFacade) Register(ctx context.Context, in usecase.RegisterInput) (*model.User, string, error) {
	return f.auth.Register(ctx, in)
}

func (f *QuickmartFacade) Authenticate(ctx context.Context, email, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, email, password)
}

func (f *QuickmartFacade) ParseToken(token string) (model.Principal, error) {
	return f.auth.ParseToken(token)
}

func (f *QuickmartFacade) Profile(ctx context.Context, principal model.Principal) (*model.User, error) {
	return f.auth.GetByID(ctx, principal.UserID)
}

func (f *QuickmartFacade) PlaceOrder(ctx context.Context, principal model.Principal, in usecase.CreateOrderInput) (presenter.OwnerOrder, error) {
	order, err := f.orders.Place(ctx, principal, in)
	if err != nil {
		return presenter.OwnerOrder{}, err
	}
	return presenter.Owner(*order, f.lookupCatalog(ctx, *order)), nil
}

func (f *QuickmartFacade) MyOrders(ctx context.Context, principal model.Principal, class model.StatusClass) ([]presenter.OwnerOrder, error) {
	orders, err := f.orders.ListMine(ctx, principal, class)
	if err != nil {
		return nil, err
	}
	return presenter.Owners(orders, f.lookupCatalog(ctx, orders...)), nil
}

func (f *QuickmartFacade) AllOrders(ctx context.Context, principal model.Principal, class model.StatusClass) ([]presenter.AdminOrder, error) {
	orders, err := f.orders.ListAll(ctx, principal, class)
	if err != nil {
		return nil, err
	}
	return presenter.Admins(orders, f.lookupOwners(ctx, orders...), f.lookupCatalog(ctx, orders...)), nil
}

func (f *QuickmartFacade) OwnerOrder(ctx context.Context, principal model.Principal, id string) (presenter.OwnerOrder, error) {
	order, err := f.orders.Get(ctx, principal, id)
	if err != nil {
		return presenter.OwnerOrder{}, err
	}
	return presenter.Owner(*order, f.lookupCatalog(ctx, *order)), nil
}

func (f *QuickmartFacade) AdminOrder(ctx context.Context, principal model.Principal, id string) (presenter.AdminOrder, error) {
	order, err := f.orders.Get(ctx, principal, id)
	if err != nil {
		return presenter.AdminOrder{}, err
	}
	return f.adminView(ctx, *order), nil
}

func (f *QuickmartFacade) UpdateOrderStatus(ctx context.Context, principal model.Principal, id string, in usecase.StatusUpdate) (presenter.AdminOrder, error) {
	order, err := f.orders.UpdateStatus(ctx, principal, id, in)
	if err != nil {
		return presenter.AdminOrder{}, err
	}
	return f.adminView(ctx, *order), nil
}

func (f *QuickmartFacade) UpdateOrder(ctx context.Context, principal model.Principal, id string, in usecase.OrderUpdate) (presenter.AdminOrder, error) {
	order, err := f.orders.Update(ctx, principal, id, in)
	if err != nil {
		return presenter.AdminOrder{}, err
	}
	return f.adminView(ctx, *order), nil
}

func (f *QuickmartFacade) DeleteOrder(ctx context.Context, principal model.Principal, id string) error {
	return f.orders.Delete(ctx, principal, id)
}

func (f *QuickmartFacade) HealthCheck(ctx context.Context) error {
	return f.health.HealthCheck(ctx)
}

func (f *QuickmartFacade) adminView(ctx context.Context, order model.Order) presenter.AdminOrder {
	var owner *model.User
	if u, ok := f.lookupOwners(ctx, order)[order.OwnerID]; ok {
		owner = &u
	}
	return presenter.Admin(order, owner, f.lookupCatalog(ctx, order))
}

// lookupCatalog never fails: views fall back to the stored snapshots.
func (f *QuickmartFacade) lookupCatalog(ctx context.Context, orders ...model.Order) map[string]model.Product {
	seen := make(map[string]struct{})
	refs := make([]string, 0)
	for _, o := range orders {
		for _, ref := range o.ProductRefs() {
			if _, ok := seen[ref]; ok {
				continue
			}
			seen[ref] = struct{}{}
			refs = append(refs, ref)
		}
	}
	if len(refs) == 0 {
		return nil
	}

	products, err := f.catalog.Lookup(ctx, refs)
	if err != nil {
		f.logger.Warn("catalog lookup failed", slog.Int("products", len(refs)), slog.Any("error", err))
		return nil
	}
	return products
}

func (f *QuickmartFacade) lookupOwners(ctx context.Context, orders ...model.Order) map[int64]model.User {
	seen := make(map[int64]struct{})
	ids := make([]int64, 0)
	for _, o := range orders {
		if _, ok := seen[o.OwnerID]; ok {
			continue
		}
		seen[o.OwnerID] = struct{}{}
		ids = append(ids, o.OwnerID)
	}
	if len(ids) == 0 {
		return nil
	}

	owners, err := f.users.GetByIDs(ctx, ids)
	if err != nil {
		f.logger.Warn("owner lookup failed", slog.Int("users", len(ids)), slog.Any("error", err))
		return nil
	}
	return owners
}
