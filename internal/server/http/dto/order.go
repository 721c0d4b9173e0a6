package dto

import (
	"strings"

	"github.com/polkiloo/quickmart/internal/usecase"
)

// OrderItemRequest accepts the product reference under either "product" or "productId".
type OrderItemRequest struct {
	Product   string   `json:"product"`
	ProductID string   `json:"productId"`
	Price     *float64 `json:"price"`
	Quantity  *int     `json:"quantity"`
	Name      string   `json:"name"`
	Image     string   `json:"image"`
}

type LocationRequest struct {
	Lat *float64 `json:"lat"`
	Lng *float64 `json:"lng"`
}

type ShippingAddressRequest struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

// CreateOrderRequest is the union of the geo-located and the address-based request shapes.
type CreateOrderRequest struct {
	Items           []OrderItemRequest      `json:"items"`
	PaymentMethod   string                  `json:"paymentMethod"`
	TotalAmount     *float64                `json:"totalAmount"`
	Total           *float64                `json:"total"`
	Location        *LocationRequest        `json:"location"`
	ShippingAddress *ShippingAddressRequest `json:"shippingAddress"`
	Subtotal        *float64                `json:"subtotal"`
	Discount        *float64                `json:"discount"`
	DeliveryCharges *float64                `json:"deliveryCharges"`
	OrderStatus     string                  `json:"orderStatus"`
}

func (r CreateOrderRequest) ToInput() usecase.CreateOrderInput {
	in := usecase.CreateOrderInput{
		Items:           make([]usecase.LineItemInput, 0, len(r.Items)),
		PaymentMethod:   r.PaymentMethod,
		TotalAmount:     r.TotalAmount,
		Total:           r.Total,
		Subtotal:        r.Subtotal,
		Discount:        r.Discount,
		DeliveryCharges: r.DeliveryCharges,
		OrderStatus:     r.OrderStatus,
	}
	for _, item := range r.Items {
		ref := strings.TrimSpace(item.Product)
		if ref == "" {
			ref = strings.TrimSpace(item.ProductID)
		}
		in.Items = append(in.Items, usecase.LineItemInput{
			ProductRef: ref,
			Price:      item.Price,
			Quantity:   item.Quantity,
			Name:       item.Name,
			Image:      item.Image,
		})
	}
	if r.Location != nil {
		in.Location = &usecase.GeoInput{Lat: r.Location.Lat, Lng: r.Location.Lng}
	}
	if a := r.ShippingAddress; a != nil {
		in.ShippingAddress = &usecase.AddressInput{
			Name:       a.Name,
			Phone:      a.Phone,
			Address:    a.Address,
			City:       a.City,
			PostalCode: a.PostalCode,
		}
	}
	return in
}

// StatusRequest is the body of the dedicated status endpoints; "status" is an alias of "orderStatus".
type StatusRequest struct {
	OrderStatus  string  `json:"orderStatus"`
	Status       string  `json:"status"`
	DriverName   *string `json:"driverName"`
	DeliveryTime *string `json:"deliveryTime"`
}

func (r StatusRequest) ToInput() usecase.StatusUpdate {
	status := r.OrderStatus
	if strings.TrimSpace(status) == "" {
		status = r.Status
	}
	return usecase.StatusUpdate{OrderStatus: status, DriverName: r.DriverName, DeliveryTime: r.DeliveryTime}
}

// UpdateOrderRequest is the body of the combined update endpoint.
type UpdateOrderRequest struct {
	OrderStatus   *string `json:"orderStatus"`
	PaymentStatus *string `json:"paymentStatus"`
	DriverName    *string `json:"driverName"`
	DeliveryTime  *string `json:"deliveryTime"`
}

func (r UpdateOrderRequest) ToInput() usecase.OrderUpdate {
	return usecase.OrderUpdate{
		OrderStatus:   r.OrderStatus,
		PaymentStatus: r.PaymentStatus,
		DriverName:    r.DriverName,
		DeliveryTime:  r.DeliveryTime,
	}
}
