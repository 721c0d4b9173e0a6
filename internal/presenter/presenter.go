// Package presenter reshapes canonical orders into the payloads served to
// customers and to the admin console. Builders are pure and never touch storage.
package presenter

import (
	"time"

	"github.com/polkiloo/quickmart/internal/domain/model"
)

// PlaceholderProductName is shown to customers when no name is known for an item.
const PlaceholderProductName = "Product"

type Location struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

type ShippingAddress struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode,omitempty"`
}

// OwnerItem is a line item as the customer sees it.
type OwnerItem struct {
	Product  string  `json:"product"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image"`
}

// OwnerOrder carries both the current and the legacy field names so either client generation can read it.
type OwnerOrder struct {
	ID              string           `json:"id"`
	LegacyID        string           `json:"_id"`
	Items           []OwnerItem      `json:"items"`
	TotalAmount     float64          `json:"totalAmount"`
	Total           float64          `json:"total"`
	Status          string           `json:"status"`
	OrderStatus     string           `json:"orderStatus"`
	Progress        int              `json:"progress"`
	PaymentMethod   string           `json:"paymentMethod"`
	PaymentStatus   string           `json:"paymentStatus"`
	Location        Location         `json:"location"`
	ShippingAddress *ShippingAddress `json:"shippingAddress,omitempty"`
	Subtotal        float64          `json:"subtotal"`
	Discount        float64          `json:"discount"`
	DeliveryCharges float64          `json:"deliveryCharges"`
	DriverName      string           `json:"driverName,omitempty"`
	DeliveryTime    string           `json:"deliveryTime,omitempty"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Customer identifies the owner of an order in the admin console.
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone,omitempty"`
}

// AdminItem is a line item as the admin console sees it.
type AdminItem struct {
	Product   string  `json:"product"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Quantity  int     `json:"quantity"`
	Image     string  `json:"image"`
	InCatalog bool    `json:"inCatalog"`
}

// AdminOrder exposes the full monetary breakdown. Absent delivery forms stay null.
type AdminOrder struct {
	ID              string           `json:"id"`
	User            *Customer        `json:"user"`
	Items           []AdminItem      `json:"items"`
	Subtotal        float64          `json:"subtotal"`
	Discount        float64          `json:"discount"`
	DeliveryCharges float64          `json:"deliveryCharges"`
	Total           float64          `json:"total"`
	OrderStatus     string           `json:"orderStatus"`
	Progress        int              `json:"progress"`
	PaymentMethod   string           `json:"paymentMethod"`
	PaymentStatus   string           `json:"paymentStatus"`
	ShippingAddress *ShippingAddress `json:"shippingAddress"`
	Location        *Location        `json:"location"`
	DriverName      string           `json:"driverName"`
	DeliveryTime    string           `json:"deliveryTime"`
	CreatedAt       time.Time        `json:"createdAt"`
	UpdatedAt       time.Time        `json:"updatedAt"`
}

// Owner builds the customer view. catalog may be nil or miss entries.
func Owner(o model.Order, catalog map[string]model.Product) OwnerOrder {
	items := make([]OwnerItem, 0, len(o.Items))
	for _, item := range o.Items {
		name, image, _ := resolveDisplay(item, catalog)
		if name == "" {
			name = PlaceholderProductName
		}
		items = append(items, OwnerItem{
			Product:  item.ProductRef,
			Name:     name,
			Price:    item.UnitPrice,
			Quantity: item.Quantity,
			Image:    image,
		})
	}

	var location Location
	if geo := o.DeliveryTarget.Geo; geo != nil {
		location = Location{Lat: geo.Lat, Lng: geo.Lng}
	}

	status := string(o.FulfillmentStatus)
	return OwnerOrder{
		ID:              o.ID,
		LegacyID:        o.ID,
		Items:           items,
		TotalAmount:     o.Total,
		Total:           o.Total,
		Status:          status,
		OrderStatus:     status,
		Progress:        o.Progress,
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		Location:        location,
		ShippingAddress: shippingAddress(o.DeliveryTarget.Address),
		Subtotal:        o.Subtotal,
		Discount:        o.Discount,
		DeliveryCharges: o.DeliveryCharges,
		DriverName:      o.DriverName,
		DeliveryTime:    o.EstimatedDeliveryTime,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// Owners builds customer views preserving order.
func Owners(orders []model.Order, catalog map[string]model.Product) []OwnerOrder {
	views := make([]OwnerOrder, 0, len(orders))
	for _, o := range orders {
		views = append(views, Owner(o, catalog))
	}
	return views
}

// Admin builds the admin view. owner is nil when the account could not be resolved.
func Admin(o model.Order, owner *model.User, catalog map[string]model.Product) AdminOrder {
	items := make([]AdminItem, 0, len(o.Items))
	for _, item := range o.Items {
		name, image, found := resolveDisplay(item, catalog)
		items = append(items, AdminItem{
			Product:   item.ProductRef,
			Name:      name,
			Price:     item.UnitPrice,
			Quantity:  item.Quantity,
			Image:     image,
			InCatalog: found,
		})
	}

	var customer *Customer
	if owner != nil {
		customer = &Customer{ID: owner.ID, Name: owner.Name, Email: owner.Email, Phone: owner.Phone}
	}

	var location *Location
	if geo := o.DeliveryTarget.Geo; geo != nil {
		location = &Location{Lat: geo.Lat, Lng: geo.Lng}
	}

	return AdminOrder{
		ID:              o.ID,
		User:            customer,
		Items:           items,
		Subtotal:        o.Subtotal,
		Discount:        o.Discount,
		DeliveryCharges: o.DeliveryCharges,
		Total:           o.Total,
		OrderStatus:     string(o.FulfillmentStatus),
		Progress:        o.Progress,
		PaymentMethod:   string(o.PaymentMethod),
		PaymentStatus:   string(o.PaymentStatus),
		ShippingAddress: shippingAddress(o.DeliveryTarget.Address),
		Location:        location,
		DriverName:      o.DriverName,
		DeliveryTime:    o.EstimatedDeliveryTime,
		CreatedAt:       o.CreatedAt,
		UpdatedAt:       o.UpdatedAt,
	}
}

// Admins builds admin views; owners is keyed by user id.
func Admins(orders []model.Order, owners map[int64]model.User, catalog map[string]model.Product) []AdminOrder {
	views := make([]AdminOrder, 0, len(orders))
	for _, o := range orders {
		var owner *model.User
		if u, ok := owners[o.OwnerID]; ok {
			owner = &u
		}
		views = append(views, Admin(o, owner, catalog))
	}
	return views
}

// resolveDisplay prefers the live catalog entry and falls back to the stored snapshot.
func resolveDisplay(item model.LineItem, catalog map[string]model.Product) (name, image string, found bool) {
	name, image = item.Name, item.Image
	product, found := catalog[item.ProductRef]
	if !found {
		return name, image, false
	}
	if product.Name != "" {
		name = product.Name
	}
	if product.Image != "" {
		image = product.Image
	}
	return name, image, true
}

func shippingAddress(a *model.Address) *ShippingAddress {
	if a == nil {
		return nil
	}
	return &ShippingAddress{
		Name:       a.Name,
		Phone:      a.Phone,
		Address:    a.Address,
		City:       a.City,
		PostalCode: a.PostalCode,
	}
}
