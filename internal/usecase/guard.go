package usecase

import "github.com/polkiloo/quickmart/internal/domain/model"

// CanRead allows the owner of the order and any admin.
func CanRead(p model.Principal, o model.Order) bool {
	return p.UserID == o.OwnerID || p.IsAdmin()
}

// CanMutate allows admins only. Owners cannot amend an order once it is placed.
func CanMutate(p model.Principal, _ model.Order) bool {
	return p.IsAdmin()
}

// CanDelete mirrors CanMutate.
func CanDelete(p model.Principal, o model.Order) bool {
	return CanMutate(p, o)
}

// CanListAll allows admins to see every customer's orders.
func CanListAll(p model.Principal) bool {
	return p.IsAdmin()
}
