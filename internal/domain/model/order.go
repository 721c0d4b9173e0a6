package model

import "time"

// PaymentMethod enumerates the accepted ways to pay for an order.
type PaymentMethod string

const (
	PaymentMethodCashOnDelivery PaymentMethod = "cash_on_delivery"
	PaymentMethodMobileWallet   PaymentMethod = "mobile_wallet"
	PaymentMethodCreditCard     PaymentMethod = "credit_card"
	PaymentMethodDebitCard      PaymentMethod = "debit_card"
)

// PaymentStatus is a label recorded from the caller, never computed here.
type PaymentStatus string

const (
	PaymentStatusPending PaymentStatus = "pending"
	PaymentStatusPaid    PaymentStatus = "paid"
	PaymentStatusFailed  PaymentStatus = "failed"
)

// LineItem is a purchased product with the values captured when the order was placed.
// ProductRef is a lookup key into the catalog; the entry may no longer exist.
type LineItem struct {
	ProductRef string
	Quantity   int
	UnitPrice  float64
	Name       string
	Image      string
}

// Address is the legacy structured mailing address.
type Address struct {
	Name       string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// GeoPoint is a delivery coordinate pair.
type GeoPoint struct {
	Lat float64
	Lng float64
}

// DeliveryTarget holds an address, a coordinate pair, or both for migrated records.
type DeliveryTarget struct {
	Address *Address
	Geo     *GeoPoint
}

// Empty reports whether neither delivery form is present.
func (t DeliveryTarget) Empty() bool {
	return t.Address == nil && t.Geo == nil
}

// Order is the canonical persisted order.
type Order struct {
	ID                    string
	OwnerID               int64
	Items                 []LineItem
	PaymentMethod         PaymentMethod
	PaymentStatus         PaymentStatus
	FulfillmentStatus     FulfillmentStatus
	Progress              int
	Subtotal              float64
	Discount              float64
	DeliveryCharges       float64
	Total                 float64
	DeliveryTarget        DeliveryTarget
	DriverName            string
	EstimatedDeliveryTime string
	CreatedAt             time.Time
	UpdatedAt             time.Time
}

// ProductRefs returns the distinct catalog references of the order items in order of appearance.
func (o Order) ProductRefs() []string {
	seen := make(map[string]struct{}, len(o.Items))
	refs := make([]string, 0, len(o.Items))
	for _, item := range o.Items {
		if item.ProductRef == "" {
			continue
		}
		if _, ok := seen[item.ProductRef]; ok {
			continue
		}
		seen[item.ProductRef] = struct{}{}
		refs = append(refs, item.ProductRef)
	}
	return refs
}

// OrderPatch carries the admin-settable fields of an order. Nil fields are left untouched.
type OrderPatch struct {
	FulfillmentStatus     *FulfillmentStatus
	PaymentStatus         *PaymentStatus
	DriverName            *string
	EstimatedDeliveryTime *string
}

// Empty reports whether the patch changes nothing.
func (p OrderPatch) Empty() bool {
	return p.FulfillmentStatus == nil && p.PaymentStatus == nil && p.DriverName == nil && p.EstimatedDeliveryTime == nil
}

// Apply writes the patch onto the order. Progress is always recomputed from the
// resulting fulfillment status.
func (p OrderPatch) Apply(o *Order, now time.Time) {
	if p.FulfillmentStatus != nil {
		o.FulfillmentStatus = *p.FulfillmentStatus
	}
	if p.PaymentStatus != nil {
		o.PaymentStatus = *p.PaymentStatus
	}
	if p.DriverName != nil {
		o.DriverName = *p.DriverName
	}
	if p.EstimatedDeliveryTime != nil {
		o.EstimatedDeliveryTime = *p.EstimatedDeliveryTime
	}
	o.Progress = Progress(o.FulfillmentStatus)
	o.UpdatedAt = now
}
