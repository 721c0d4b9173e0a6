package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	domainErrors "github.com/polkiloo/quickmart/internal/domain/errors"
	"github.com/polkiloo/quickmart/internal/domain/model"
)

type orderRepository struct {
	storage *Storage
}

const orderColumns = `id, owner_id, items, payment_method, payment_status, fulfillment_status, progress,
        subtotal, discount, delivery_charges, total, shipping_address, geo_lat, geo_lng,
        driver_name, estimated_delivery_time, created_at, updated_at`

type itemRecord struct {
	ProductRef string  `json:"product"`
	Quantity   int     `json:"quantity"`
	Price      float64 `json:"price"`
	Name       string  `json:"name,omitempty"`
	Image      string  `json:"image,omitempty"`
}

type addressRecord struct {
	Name       string `json:"name"`
	Phone      string `json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postalCode"`
}

type orderRecord struct {
	id                    string
	ownerID               int64
	items                 []byte
	paymentMethod         string
	paymentStatus         string
	fulfillmentStatus     string
	progress              int
	subtotal              float64
	discount              float64
	deliveryCharges       float64
	total                 float64
	shippingAddress       []byte
	geoLat                *float64
	geoLng                *float64
	driverName            string
	estimatedDeliveryTime string
	order                 model.Order
}

func (r *orderRecord) dest() []any {
	return []any{
		&r.id, &r.ownerID, &r.items, &r.paymentMethod, &r.paymentStatus, &r.fulfillmentStatus, &r.progress,
		&r.subtotal, &r.discount, &r.deliveryCharges, &r.total, &r.shippingAddress, &r.geoLat, &r.geoLng,
		&r.driverName, &r.estimatedDeliveryTime, &r.order.CreatedAt, &r.order.UpdatedAt,
	}
}

func (r *orderRecord) toModel() (model.Order, error) {
	o := r.order
	o.ID = r.id
	o.OwnerID = r.ownerID
	o.PaymentMethod = model.PaymentMethod(r.paymentMethod)
	o.PaymentStatus = model.PaymentStatus(r.paymentStatus)
	o.FulfillmentStatus = model.FulfillmentStatus(r.fulfillmentStatus)
	o.Progress = r.progress
	o.Subtotal = r.subtotal
	o.Discount = r.discount
	o.DeliveryCharges = r.deliveryCharges
	o.Total = r.total
	o.DriverName = r.driverName
	o.EstimatedDeliveryTime = r.estimatedDeliveryTime

	var items []itemRecord
	if err := json.Unmarshal(r.items, &items); err != nil {
		return model.Order{}, fmt.Errorf("decode items of order %s: %w", r.id, err)
	}
	o.Items = make([]model.LineItem, 0, len(items))
	for _, it := range items {
		o.Items = append(o.Items, model.LineItem{
			ProductRef: it.ProductRef,
			Quantity:   it.Quantity,
			UnitPrice:  it.Price,
			Name:       it.Name,
			Image:      it.Image,
		})
	}

	if len(r.shippingAddress) > 0 && string(r.shippingAddress) != "null" {
		var addr addressRecord
		if err := json.Unmarshal(r.shippingAddress, &addr); err != nil {
			return model.Order{}, fmt.Errorf("decode address of order %s: %w", r.id, err)
		}
		o.DeliveryTarget.Address = &model.Address{
			Name:       addr.Name,
			Phone:      addr.Phone,
			Address:    addr.Address,
			City:       addr.City,
			PostalCode: addr.PostalCode,
		}
	}
	if r.geoLat != nil && r.geoLng != nil {
		o.DeliveryTarget.Geo = &model.GeoPoint{Lat: *r.geoLat, Lng: *r.geoLng}
	}
	return o, nil
}

func encodeItems(items []model.LineItem) ([]byte, error) {
	records := make([]itemRecord, 0, len(items))
	for _, it := range items {
		records = append(records, itemRecord{
			ProductRef: it.ProductRef,
			Quantity:   it.Quantity,
			Price:      it.UnitPrice,
			Name:       it.Name,
			Image:      it.Image,
		})
	}
	return json.Marshal(records)
}

func encodeTarget(target model.DeliveryTarget) (address any, lat any, lng any, err error) {
	if target.Address != nil {
		raw, err := json.Marshal(addressRecord{
			Name:       target.Address.Name,
			Phone:      target.Address.Phone,
			Address:    target.Address.Address,
			City:       target.Address.City,
			PostalCode: target.Address.PostalCode,
		})
		if err != nil {
			return nil, nil, nil, err
		}
		address = raw
	}
	if target.Geo != nil {
		lat, lng = target.Geo.Lat, target.Geo.Lng
	}
	return address, lat, lng, nil
}

// validID reports whether id could have been issued by Create.
func validID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

func (r *orderRepository) Create(ctx context.Context, order model.Order) (string, error) {
	items, err := encodeItems(order.Items)
	if err != nil {
		return "", fmt.Errorf("encode items: %w", err)
	}
	address, lat, lng, err := encodeTarget(order.DeliveryTarget)
	if err != nil {
		return "", fmt.Errorf("encode address: %w", err)
	}

	id := uuid.NewString()
	const query = `INSERT INTO orders (id, owner_id, items, payment_method, payment_status, fulfillment_status, progress,
        subtotal, discount, delivery_charges, total, shipping_address, geo_lat, geo_lng,
        driver_name, estimated_delivery_time, created_at, updated_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18)`
	_, err = r.storage.pool.Exec(ctx, query,
		id, order.OwnerID, items, string(order.PaymentMethod), string(order.PaymentStatus),
		string(order.FulfillmentStatus), order.Progress,
		order.Subtotal, order.Discount, order.DeliveryCharges, order.Total, address, lat, lng,
		order.DriverName, order.EstimatedDeliveryTime, order.CreatedAt, order.UpdatedAt,
	)
	if err != nil {
		return "", err
	}
	return id, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if !validID(id) {
		return nil, domainErrors.ErrNotFound
	}

	const query = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1`
	var rec orderRecord
	if err := r.storage.pool.QueryRow(ctx, query, id).Scan(rec.dest()...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domainErrors.ErrNotFound
		}
		return nil, err
	}
	order, err := rec.toModel()
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func (r *orderRepository) ListByOwner(ctx context.Context, ownerID int64, class model.StatusClass) ([]model.Order, error) {
	return r.list(ctx, []string{"owner_id=$1"}, []any{ownerID}, class)
}

func (r *orderRepository) ListAll(ctx context.Context, class model.StatusClass) ([]model.Order, error) {
	return r.list(ctx, nil, nil, class)
}

func (r *orderRepository) list(ctx context.Context, conds []string, args []any, class model.StatusClass) ([]model.Order, error) {
	if class != model.StatusClassAny {
		args = append(args, class.Labels())
		conds = append(conds, fmt.Sprintf("LOWER(fulfillment_status) = ANY($%d)", len(args)))
	}

	query := `SELECT ` + orderColumns + ` FROM orders`
	if len(conds) > 0 {
		query += ` WHERE ` + strings.Join(conds, " AND ")
	}
	query += ` ORDER BY created_at DESC, seq DESC`

	rows, err := r.storage.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := make([]model.Order, 0)
	for rows.Next() {
		var rec orderRecord
		if err := rows.Scan(rec.dest()...); err != nil {
			return nil, err
		}
		order, err := rec.toModel()
		if err != nil {
			return nil, err
		}
		orders = append(orders, order)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return orders, nil
}

// Update applies the patch under a row lock so concurrent patches touching
// different fields do not overwrite each other.
func (r *orderRepository) Update(ctx context.Context, id string, patch model.OrderPatch) (*model.Order, error) {
	if !validID(id) {
		return nil, domainErrors.ErrNotFound
	}

	var updated model.Order
	err := r.storage.WithinTransaction(ctx, func(tx pgx.Tx) error {
		const selectQuery = `SELECT ` + orderColumns + ` FROM orders WHERE id=$1 FOR UPDATE`
		var rec orderRecord
		if err := tx.QueryRow(ctx, selectQuery, id).Scan(rec.dest()...); err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return domainErrors.ErrNotFound
			}
			return err
		}
		order, err := rec.toModel()
		if err != nil {
			return err
		}

		patch.Apply(&order, r.storage.clock())

		const updateQuery = `UPDATE orders SET fulfillment_status=$2, payment_status=$3, progress=$4,
            driver_name=$5, estimated_delivery_time=$6, updated_at=$7 WHERE id=$1`
		if _, err := tx.Exec(ctx, updateQuery, id, string(order.FulfillmentStatus), string(order.PaymentStatus),
			order.Progress, order.DriverName, order.EstimatedDeliveryTime, order.UpdatedAt); err != nil {
			return err
		}
		updated = order
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) error {
	if !validID(id) {
		return domainErrors.ErrNotFound
	}

	tag, err := r.storage.pool.Exec(ctx, `DELETE FROM orders WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domainErrors.ErrNotFound
	}
	return nil
}
