package test

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	domainErrors "github.com/polkiloo/quickmart/internal/domain/errors"
	"github.com/polkiloo/quickmart/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	ByEmail map[string]*model.User
	ByID    map[int64]*model.User
	Next    int64
	Err     error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		ByEmail: make(map[string]*model.User),
		ByID:    make(map[int64]*model.User),
		Next:    1,
	}
}

// Create registers user unless the email is taken or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, user model.User) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.ByEmail == nil {
		s.ByEmail = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.ByEmail[user.Email]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user.ID = s.Next
	s.Next++
	stored := user
	s.ByEmail[user.Email] = &stored
	s.ByID[user.ID] = &stored
	return &user, nil
}

// GetByEmail fetches user by email or returns not found.
func (s *UserRepositoryStub) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByEmail[email]; ok {
		u := *user
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		u := *user
		return &u, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByIDs returns the known users among ids.
func (s *UserRepositoryStub) GetByIDs(ctx context.Context, ids []int64) (map[int64]model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[int64]model.User, len(ids))
	for _, id := range ids {
		if user, ok := s.ByID[id]; ok {
			out[id] = *user
		}
	}
	return out, nil
}

// OrderRepositoryStub is an in-memory order store honouring the repository contract.
// Fn overrides replace the default behaviour of a single method.
type OrderRepositoryStub struct {
	CreateFn      func(context.Context, model.Order) (string, error)
	GetByIDFn     func(context.Context, string) (*model.Order, error)
	ListByOwnerFn func(context.Context, int64, model.StatusClass) ([]model.Order, error)
	ListAllFn     func(context.Context, model.StatusClass) ([]model.Order, error)
	UpdateFn      func(context.Context, string, model.OrderPatch) (*model.Order, error)
	DeleteFn      func(context.Context, string) error

	Now   func() time.Time
	Calls []string

	mu     sync.Mutex
	orders []model.Order
	next   int
}

// Seed stores orders as if they had been created in the given sequence.
func (s *OrderRepositoryStub) Seed(orders ...model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, o := range orders {
		if o.ID == "" {
			s.next++
			o.ID = fmt.Sprintf("order-%d", s.next)
		}
		s.orders = append(s.orders, cloneOrder(o))
	}
}

// Stored returns a snapshot of every stored order in insertion sequence.
func (s *OrderRepositoryStub) Stored() []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, 0, len(s.orders))
	for _, o := range s.orders {
		out = append(out, cloneOrder(o))
	}
	return out
}

func (s *OrderRepositoryStub) record(call string) {
	s.mu.Lock()
	s.Calls = append(s.Calls, call)
	s.mu.Unlock()
}

func (s *OrderRepositoryStub) Create(ctx context.Context, order model.Order) (string, error) {
	s.record("Create")
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.next++
	order.ID = fmt.Sprintf("order-%d", s.next)
	s.orders = append(s.orders, cloneOrder(order))
	return order.ID, nil
}

func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	s.record("GetByID")
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if idx := s.indexOf(id); idx >= 0 {
		o := cloneOrder(s.orders[idx])
		return &o, nil
	}
	return nil, domainErrors.ErrNotFound
}

func (s *OrderRepositoryStub) ListByOwner(ctx context.Context, ownerID int64, class model.StatusClass) ([]model.Order, error) {
	s.record("ListByOwner")
	if s.ListByOwnerFn != nil {
		return s.ListByOwnerFn(ctx, ownerID, class)
	}
	return s.list(func(o model.Order) bool { return o.OwnerID == ownerID && class.Contains(o.FulfillmentStatus) }), nil
}

func (s *OrderRepositoryStub) ListAll(ctx context.Context, class model.StatusClass) ([]model.Order, error) {
	s.record("ListAll")
	if s.ListAllFn != nil {
		return s.ListAllFn(ctx, class)
	}
	return s.list(func(o model.Order) bool { return class.Contains(o.FulfillmentStatus) }), nil
}

func (s *OrderRepositoryStub) Update(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	s.record("Update")
	if s.UpdateFn != nil {
		return s.UpdateFn(ctx, id, patch)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return nil, domainErrors.ErrNotFound
	}
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	patch.Apply(&s.orders[idx], now())
	o := cloneOrder(s.orders[idx])
	return &o, nil
}

func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) error {
	s.record("Delete")
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := s.indexOf(id)
	if idx < 0 {
		return domainErrors.ErrNotFound
	}
	s.orders = append(s.orders[:idx], s.orders[idx+1:]...)
	return nil
}

// list walks the store newest insertion first, then stable-sorts by creation time so
// equal timestamps keep the later insertion first.
func (s *OrderRepositoryStub) list(keep func(model.Order) bool) []model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]model.Order, 0, len(s.orders))
	for i := len(s.orders) - 1; i >= 0; i-- {
		if keep(s.orders[i]) {
			out = append(out, cloneOrder(s.orders[i]))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}

func (s *OrderRepositoryStub) indexOf(id string) int {
	for i, o := range s.orders {
		if o.ID == id {
			return i
		}
	}
	return -1
}

func cloneOrder(o model.Order) model.Order {
	o.Items = append([]model.LineItem(nil), o.Items...)
	if o.DeliveryTarget.Address != nil {
		addr := *o.DeliveryTarget.Address
		o.DeliveryTarget.Address = &addr
	}
	if o.DeliveryTarget.Geo != nil {
		geo := *o.DeliveryTarget.Geo
		o.DeliveryTarget.Geo = &geo
	}
	return o
}

// CatalogStub resolves products from a fixed map.
type CatalogStub struct {
	Products map[string]model.Product
	Err      error
	LookupFn func(context.Context, []string) (map[string]model.Product, error)
	Requests [][]string
}

func (s *CatalogStub) Lookup(ctx context.Context, refs []string) (map[string]model.Product, error) {
	s.Requests = append(s.Requests, append([]string(nil), refs...))
	if s.LookupFn != nil {
		return s.LookupFn(ctx, refs)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make(map[string]model.Product, len(refs))
	for _, ref := range refs {
		if p, ok := s.Products[ref]; ok {
			out[ref] = p
		}
	}
	return out, nil
}

// HealthCheckerStub reports the configured error.
type HealthCheckerStub struct {
	Err error
}

func (s HealthCheckerStub) HealthCheck(context.Context) error {
	return s.Err
}
