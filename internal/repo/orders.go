package repo

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"

	sq "github.com/Masterminds/squirrel"
	"github.com/jmoiron/sqlx"
)

const idempotencyConstraint = "orders_idempotency_key_key"

type orderRepo struct {
	base
}

func NewOrderRepo(db *sqlx.DB) *orderRepo {
	return &orderRepo{base: newBase(db)}
}

// адрес авторизованного заказа берётся из addresses, гостевого из колонок заказа
var orderColumns = []string{
	"o.id", "o.user_id", "o.address_id",
	"o.guest_name", "o.guest_email", "o.guest_phone",
	"COALESCE(a.full_name, o.ship_full_name) AS ship_full_name",
	"COALESCE(a.phone, o.ship_phone) AS ship_phone",
	"COALESCE(a.line1, o.ship_line1) AS ship_line1",
	"COALESCE(a.line2, o.ship_line2) AS ship_line2",
	"COALESCE(a.city, o.ship_city) AS ship_city",
	"COALESCE(a.region, o.ship_region) AS ship_region",
	"COALESCE(a.postal_code, o.ship_postal_code) AS ship_postal_code",
	"COALESCE(a.country, o.ship_country) AS ship_country",
	"o.shipping_method", "o.subtotal", "o.tax", "o.shipping_cost", "o.total",
	"o.status", "o.payment_status", "o.carrier", "o.tracking_number", "o.shipped_at",
	"o.idempotency_key", "o.created_at", "o.updated_at",
}

var (
	itemColumns    = []string{"id", "order_id", "product_id", "product_name", "size", "quantity", "price", "position"}
	paymentColumns = []string{
		"id", "order_id", "provider", "external_ref", "amount", "currency", "status", "created_at", "updated_at",
	}
)

func (r *orderRepo) selectOrders() sq.SelectBuilder {
	return r.qb.Select(orderColumns...).
		From("orders o").
		LeftJoin("addresses a ON a.id = o.address_id")
}

func (r *orderRepo) GetOrder(ctx context.Context, id string) (entities.Order, error) {
	if !isUUID(id) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	query, args := r.selectOrders().Where(sq.Eq{"o.id": id}).MustSql()
	return r.getOrder(ctx, query, args...)
}

// GetOrderForUpdate locks the order row until the surrounding transaction ends.
func (r *orderRepo) GetOrderForUpdate(ctx context.Context, id string) (entities.Order, error) {
	if !isUUID(id) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	query, args := r.selectOrders().Where(sq.Eq{"o.id": id}).Suffix("FOR UPDATE OF o").MustSql()
	return r.getOrder(ctx, query, args...)
}

func (r *orderRepo) FindByIdempotencyKey(ctx context.Context, key string) (entities.Order, error) {
	query, args := r.selectOrders().Where(sq.Eq{"o.idempotency_key": key}).MustSql()
	return r.getOrder(ctx, query, args...)
}

func (r *orderRepo) getOrder(ctx context.Context, query string, args ...any) (entities.Order, error) {
	var order Order
	err := r.getContext(ctx, &order, query, args...)
	if errors.Is(err, sql.ErrNoRows) || isInvalidText(err) {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	if err != nil {
		return entities.Order{}, fmt.Errorf("failed to get order: %w", err)
	}

	orders, err := r.attach(ctx, []Order{order})
	if err != nil {
		return entities.Order{}, err
	}
	return orders[0], nil
}

func (r *orderRepo) ListOrders(ctx context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	q := r.selectOrders().OrderBy("o.created_at DESC", "o.id")
	if filter.UserID != "" {
		q = q.Where(sq.Eq{"o.user_id": filter.UserID})
	}
	if filter.Status != "" {
		q = q.Where(sq.Eq{"o.status": string(filter.Status)})
	}
	if filter.Limit > 0 {
		q = q.Limit(uint64(filter.Limit))
	}
	if filter.Offset > 0 {
		q = q.Offset(uint64(filter.Offset))
	}

	query, args := q.MustSql()

	var orders []Order
	if err := r.selectContext(ctx, &orders, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select orders: %w", err)
	}
	if len(orders) == 0 {
		return []entities.Order{}, nil
	}
	return r.attach(ctx, orders)
}

// attach загружает позиции и платежи одним запросом на таблицу.
func (r *orderRepo) attach(ctx context.Context, orders []Order) ([]entities.Order, error) {
	ids := make([]string, len(orders))
	for i, order := range orders {
		ids[i] = order.ID
	}

	query, args := r.qb.Select(paymentColumns...).
		From("payments").
		Where(sq.Eq{"order_id": ids}).
		MustSql()

	var payments []Payment
	if err := r.selectContext(ctx, &payments, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select payments: %w", err)
	}
	paymentMap := make(map[string]Payment, len(payments))
	for _, payment := range payments {
		paymentMap[payment.OrderID] = payment
	}

	query, args = r.selectItems(ids).MustSql()

	var items []Item
	if err := r.selectContext(ctx, &items, query, args...); err != nil {
		return nil, fmt.Errorf("failed to select items: %w", err)
	}
	itemsMap := make(map[string][]Item, len(ids))
	for _, item := range items {
		itemsMap[item.OrderID] = append(itemsMap[item.OrderID], item)
	}

	result := make([]entities.Order, 0, len(orders))
	for _, order := range orders {
		result = append(result, OrderToEntity(order, paymentMap[order.ID], itemsMap[order.ID]))
	}
	return result, nil
}

func (r *orderRepo) CreateAddress(ctx context.Context, a entities.Address) error {
	query, args := r.qb.Insert("addresses").
		Columns("id", "user_id", "full_name", "phone", "line1", "line2", "city", "region", "postal_code", "country").
		Values(a.ID, a.UserID, a.FullName, nullString(a.Phone), a.Line1, nullString(a.Line2),
			a.City, nullString(a.Region), a.PostalCode, a.Country).
		MustSql()

	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save address: %w", err)
	}
	return nil
}

// CreateOrder inserts the order row and its items.
// A reused idempotency key yields entities.ErrDuplicateOrder.
func (r *orderRepo) CreateOrder(ctx context.Context, o entities.Order) error {
	values := map[string]any{
		"id":              o.ID,
		"user_id":         nullString(o.UserID),
		"address_id":      nullString(o.AddressID),
		"shipping_method": string(o.ShippingMethod),
		"subtotal":        o.Subtotal,
		"tax":             o.Tax,
		"shipping_cost":   o.ShippingCost,
		"total":           o.Total,
		"status":          string(o.Status),
		"payment_status":  string(o.PaymentStatus),
		"idempotency_key": nullString(o.IdempotencyKey),
		"created_at":      o.CreatedAt,
		"updated_at":      o.UpdatedAt,
	}
	if o.IsGuest() {
		values["guest_name"] = nullString(o.Customer.Name)
		values["guest_email"] = nullString(o.Customer.Email)
		values["guest_phone"] = nullString(o.Customer.Phone)
		values["ship_full_name"] = nullString(o.Shipping.FullName)
		values["ship_phone"] = nullString(o.Shipping.Phone)
		values["ship_line1"] = nullString(o.Shipping.Line1)
		values["ship_line2"] = nullString(o.Shipping.Line2)
		values["ship_city"] = nullString(o.Shipping.City)
		values["ship_region"] = nullString(o.Shipping.Region)
		values["ship_postal_code"] = nullString(o.Shipping.PostalCode)
		values["ship_country"] = nullString(o.Shipping.Country)
	}

	query, args := r.qb.Insert("orders").SetMap(values).MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		if isUniqueViolation(err, idempotencyConstraint) {
			return entities.ErrDuplicateOrder
		}
		return fmt.Errorf("failed to save order: %w", err)
	}

	return r.createItems(ctx, o.ID, o.Items)
}

func (r *orderRepo) createItems(ctx context.Context, orderID string, items []entities.OrderItem) error {
	if len(items) == 0 {
		return nil
	}

	query, args := r.insertItems(orderID, items).MustSql()
	if _, err := r.execContext(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to save items: %w", err)
	}
	return nil
}

// insertItems numbers items in cart order; selectItems returns them in that order.
func (r *orderRepo) insertItems(orderID string, items []entities.OrderItem) sq.InsertBuilder {
	q := r.qb.Insert("order_items").Columns(itemColumns...)
	for i, it := range items {
		q = q.Values(it.ID, orderID, it.ProductID, it.ProductName, it.Size, it.Quantity, it.Price, i)
	}
	return q
}

func (r *orderRepo) selectItems(orderIDs []string) sq.SelectBuilder {
	return r.qb.Select(itemColumns...).
		From("order_items").
		Where(sq.Eq{"order_id": orderIDs}).
		OrderBy("order_id", "position")
}

func (r *orderRepo) UpdateStatus(ctx context.Context, id string, status entities.OrderStatus) error {
	query, args := r.qb.Update("orders").
		Set("status", string(status)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		MustSql()

	return r.updateOne(ctx, "status", query, args...)
}

func (r *orderRepo) UpdateShipping(ctx context.Context, id string, upd entities.ShippingUpdate, shippedAt time.Time) error {
	query, args := r.qb.Update("orders").
		Set("carrier", upd.Carrier).
		Set("tracking_number", upd.TrackingNumber).
		Set("shipped_at", shippedAt).
		Set("status", string(entities.OrderStatusShipped)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		MustSql()

	return r.updateOne(ctx, "shipping", query, args...)
}

func (r *orderRepo) UpdatePaymentStatus(ctx context.Context, id string, status entities.PaymentStatus) error {
	query, args := r.qb.Update("orders").
		Set("payment_status", string(status)).
		Set("updated_at", sq.Expr("NOW()")).
		Where(sq.Eq{"id": id}).
		MustSql()

	return r.updateOne(ctx, "payment status", query, args...)
}

func (r *orderRepo) updateOne(ctx context.Context, what, query string, args ...any) error {
	n, err := r.affected(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update order %s: %w", what, err)
	}
	if n == 0 {
		return entities.ErrOrderNotFound
	}
	return nil
}
