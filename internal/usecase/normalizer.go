package usecase

import (
	"fmt"
	"math"
	"strings"
	"time"

	domainErrors "github.com/polkiloo/quickmart/internal/domain/errors"
	"github.com/polkiloo/quickmart/internal/domain/model"
)

// LineItemInput is one requested item. ProductRef is filled from either "product" or "productId".
type LineItemInput struct {
	ProductRef string
	Price      *float64
	Quantity   *int
	Name       string
	Image      string
}

// GeoInput is a coordinate pair; it only counts when both values are present.
type GeoInput struct {
	Lat *float64
	Lng *float64
}

// AddressInput is the legacy mailing address.
type AddressInput struct {
	Name       string
	Phone      string
	Address    string
	City       string
	PostalCode string
}

// CreateOrderInput accepts both historical request shapes.
type CreateOrderInput struct {
	Items           []LineItemInput
	PaymentMethod   string
	TotalAmount     *float64
	Total           *float64
	Location        *GeoInput
	ShippingAddress *AddressInput
	Subtotal        *float64
	Discount        *float64
	DeliveryCharges *float64
	// OrderStatus is ignored: orders always start in model.InitialStatus.
	OrderStatus string
}

// NormalizeOrder turns a creation request into a canonical order owned by ownerID.
// It performs no I/O; the returned order has no identifier yet.
func NormalizeOrder(ownerID int64, in CreateOrderInput, now time.Time) (model.Order, error) {
	items, err := normalizeItems(in.Items)
	if err != nil {
		return model.Order{}, err
	}

	total, err := resolveTotal(in.TotalAmount, in.Total)
	if err != nil {
		return model.Order{}, err
	}

	target := model.DeliveryTarget{
		Geo:     normalizeGeo(in.Location),
		Address: normalizeAddress(in.ShippingAddress),
	}
	if target.Empty() {
		return model.Order{}, domainErrors.ErrMissingDeliveryTarget
	}

	subtotal, err := optionalAmount("subtotal", in.Subtotal)
	if err != nil {
		return model.Order{}, err
	}
	discount, err := optionalAmount("discount", in.Discount)
	if err != nil {
		return model.Order{}, err
	}
	deliveryCharges, err := optionalAmount("deliveryCharges", in.DeliveryCharges)
	if err != nil {
		return model.Order{}, err
	}

	method, err := ParsePaymentMethod(in.PaymentMethod)
	if err != nil {
		return model.Order{}, err
	}

	paymentStatus := model.PaymentStatusPending
	if method == model.PaymentMethodMobileWallet {
		paymentStatus = model.PaymentStatusPaid
	}

	now = now.UTC()
	return model.Order{
		OwnerID:           ownerID,
		Items:             items,
		PaymentMethod:     method,
		PaymentStatus:     paymentStatus,
		FulfillmentStatus: model.InitialStatus,
		Progress:          model.Progress(model.InitialStatus),
		Subtotal:          subtotal,
		Discount:          discount,
		DeliveryCharges:   deliveryCharges,
		Total:             total,
		DeliveryTarget:    target,
		CreatedAt:         now,
		UpdatedAt:         now,
	}, nil
}

func normalizeItems(in []LineItemInput) ([]model.LineItem, error) {
	if len(in) == 0 {
		return nil, fmt.Errorf("%w: order has no items", domainErrors.ErrMalformedOrder)
	}

	items := make([]model.LineItem, 0, len(in))
	for i, item := range in {
		ref := strings.TrimSpace(item.ProductRef)
		if ref == "" {
			return nil, fmt.Errorf("%w: item %d has no product", domainErrors.ErrMalformedOrder, i)
		}
		if item.Quantity == nil || *item.Quantity < 1 {
			return nil, fmt.Errorf("%w: item %d quantity must be at least 1", domainErrors.ErrMalformedOrder, i)
		}
		if item.Price == nil || !validAmount(*item.Price) {
			return nil, fmt.Errorf("%w: item %d price must be a non-negative number", domainErrors.ErrMalformedOrder, i)
		}
		items = append(items, model.LineItem{
			ProductRef: ref,
			Quantity:   *item.Quantity,
			UnitPrice:  *item.Price,
			Name:       sanitizeText(item.Name),
			Image:      strings.TrimSpace(item.Image),
		})
	}
	return items, nil
}

func resolveTotal(totalAmount, total *float64) (float64, error) {
	resolved := totalAmount
	if resolved == nil {
		resolved = total
	}
	if resolved == nil {
		return 0, domainErrors.ErrMissingTotal
	}
	if !validAmount(*resolved) {
		return 0, fmt.Errorf("%w: total must be a non-negative number", domainErrors.ErrMalformedOrder)
	}
	return *resolved, nil
}

func normalizeGeo(in *GeoInput) *model.GeoPoint {
	if in == nil || in.Lat == nil || in.Lng == nil {
		return nil
	}
	if math.IsNaN(*in.Lat) || math.IsNaN(*in.Lng) {
		return nil
	}
	return &model.GeoPoint{Lat: *in.Lat, Lng: *in.Lng}
}

func normalizeAddress(in *AddressInput) *model.Address {
	if in == nil {
		return nil
	}
	addr := model.Address{
		Name:       sanitizeText(in.Name),
		Phone:      sanitizeText(in.Phone),
		Address:    sanitizeText(in.Address),
		City:       sanitizeText(in.City),
		PostalCode: sanitizeText(in.PostalCode),
	}
	if addr == (model.Address{}) {
		return nil
	}
	return &addr
}

func optionalAmount(field string, v *float64) (float64, error) {
	if v == nil {
		return 0, nil
	}
	if !validAmount(*v) {
		return 0, fmt.Errorf("%w: %s must be a non-negative number", domainErrors.ErrMalformedOrder, field)
	}
	return *v, nil
}

func validAmount(v float64) bool {
	return v >= 0 && !math.IsInf(v, 0) && !math.IsNaN(v)
}
