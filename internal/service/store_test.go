package service_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/SergeyBogomolovv/storefront-service/internal/entities"
	"github.com/SergeyBogomolovv/storefront-service/internal/service"
)

// memStore is an in-memory database. Transactions are serialized and rolled
// back on error, which is enough to observe atomicity of checkout.
type memStore struct {
	txMu sync.Mutex
	mu   sync.Mutex

	products  map[string]entities.Product
	addresses map[string]entities.Address
	orders    map[string]entities.Order
	payments  map[string]entities.Payment
	outbox    []entities.OutboxMessage

	failEnqueue error
}

func newMemStore(products ...entities.Product) *memStore {
	s := &memStore{
		products:  make(map[string]entities.Product),
		addresses: make(map[string]entities.Address),
		orders:    make(map[string]entities.Order),
		payments:  make(map[string]entities.Payment),
	}
	for _, p := range products {
		s.products[p.ID] = cloneProduct(p)
	}
	return s
}

func (s *memStore) repos() service.Repositories {
	return service.Repositories{
		Products: memProducts{s},
		Orders:   memOrders{s},
		Payments: memPayments{s},
		Outbox:   memOutbox{s},
	}
}

type snapshot struct {
	products  map[string]entities.Product
	addresses map[string]entities.Address
	orders    map[string]entities.Order
	payments  map[string]entities.Payment
	outbox    []entities.OutboxMessage
}

func (s *memStore) Do(ctx context.Context, callback func(ctx context.Context) error) error {
	s.txMu.Lock()
	defer s.txMu.Unlock()

	s.mu.Lock()
	snap := snapshot{
		products:  make(map[string]entities.Product, len(s.products)),
		addresses: maps.Clone(s.addresses),
		orders:    maps.Clone(s.orders),
		payments:  maps.Clone(s.payments),
		outbox:    slices.Clone(s.outbox),
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	s.mu.Unlock()

	if err := callback(ctx); err != nil {
		s.mu.Lock()
		s.products, s.addresses, s.orders, s.payments, s.outbox =
			snap.products, snap.addresses, snap.orders, snap.payments, snap.outbox
		s.mu.Unlock()
		return err
	}
	return nil
}

func (s *memStore) stock(productID, size string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	n, _ := s.products[productID].Available(size)
	return n
}

func (s *memStore) orderCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.orders)
}

func cloneProduct(p entities.Product) entities.Product {
	p.Sizes = slices.Clone(p.Sizes)
	if p.HasSizes {
		p.Stock = entities.SumSizes(p.Sizes)
	}
	return p
}

type memProducts struct{ s *memStore }

func (r memProducts) GetProduct(_ context.Context, id string) (entities.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[id]
	if !ok {
		return entities.Product{}, entities.ErrProductNotFound
	}
	return cloneProduct(p), nil
}

func (r memProducts) ProductsByIDs(_ context.Context, ids []string) (map[string]entities.Product, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	result := make(map[string]entities.Product, len(ids))
	for _, id := range ids {
		if p, ok := r.s.products[id]; ok {
			result[id] = cloneProduct(p)
		}
	}
	return result, nil
}

func (r memProducts) DecrementStock(_ context.Context, productID, size string, qty int) (bool, error) {
	return r.adjust(productID, size, -qty), nil
}

func (r memProducts) IncrementStock(_ context.Context, productID, size string, qty int) error {
	r.adjust(productID, size, qty)
	return nil
}

func (r memProducts) SetStock(_ context.Context, productID, size string, stock int) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return entities.ErrProductNotFound
	}
	if _, ok := p.Available(size); !ok {
		return entities.NewValidationError("size", "unknown size")
	}
	p = cloneProduct(p)
	if !p.HasSizes {
		p.Stock = stock
	}
	for i := range p.Sizes {
		if p.Sizes[i].Size == size {
			p.Sizes[i].Stock = stock
		}
	}
	r.s.products[productID] = cloneProduct(p)
	return nil
}

func (r memProducts) adjust(productID, size string, delta int) bool {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.products[productID]
	if !ok {
		return false
	}
	if !p.HasSizes {
		if size != "" || p.Stock+delta < 0 {
			return false
		}
		p.Stock += delta
		r.s.products[productID] = p
		return true
	}
	p = cloneProduct(p)
	for i := range p.Sizes {
		if p.Sizes[i].Size == size {
			if p.Sizes[i].Stock+delta < 0 {
				return false
			}
			p.Sizes[i].Stock += delta
			r.s.products[productID] = cloneProduct(p)
			return true
		}
	}
	return false
}

type memOrders struct{ s *memStore }

func (r memOrders) GetOrder(_ context.Context, id string) (entities.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	o.Payment = r.s.paymentOf(id)
	return o, nil
}

func (r memOrders) GetOrderForUpdate(ctx context.Context, id string) (entities.Order, error) {
	return r.GetOrder(ctx, id)
}

func (r memOrders) FindByIdempotencyKey(ctx context.Context, key string) (entities.Order, error) {
	r.s.mu.Lock()
	var id string
	for _, o := range r.s.orders {
		if o.IdempotencyKey == key {
			id = o.ID
		}
	}
	r.s.mu.Unlock()
	if id == "" {
		return entities.Order{}, entities.ErrOrderNotFound
	}
	return r.GetOrder(ctx, id)
}

func (r memOrders) ListOrders(_ context.Context, filter entities.OrderFilter) ([]entities.Order, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var result []entities.Order
	for _, o := range r.s.orders {
		if filter.UserID != "" && o.UserID != filter.UserID {
			continue
		}
		result = append(result, o)
	}
	return result, nil
}

func (r memOrders) CreateAddress(_ context.Context, a entities.Address) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.addresses[a.ID] = a
	return nil
}

func (r memOrders) CreateOrder(_ context.Context, o entities.Order) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if o.IdempotencyKey != "" {
		for _, existing := range r.s.orders {
			if existing.IdempotencyKey == o.IdempotencyKey {
				return entities.ErrDuplicateOrder
			}
		}
	}
	o.Payment = entities.Payment{}
	r.s.orders[o.ID] = o
	return nil
}

func (r memOrders) UpdateStatus(_ context.Context, id string, status entities.OrderStatus) error {
	return r.update(id, func(o *entities.Order) { o.Status = status })
}

func (r memOrders) UpdateShipping(_ context.Context, id string, upd entities.ShippingUpdate, shippedAt time.Time) error {
	return r.update(id, func(o *entities.Order) {
		o.Carrier, o.TrackingNumber, o.ShippedAt = upd.Carrier, upd.TrackingNumber, &shippedAt
		o.Status = entities.OrderStatusShipped
	})
}

func (r memOrders) UpdatePaymentStatus(_ context.Context, id string, status entities.PaymentStatus) error {
	return r.update(id, func(o *entities.Order) { o.PaymentStatus = status })
}

func (r memOrders) update(id string, fn func(o *entities.Order)) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	o, ok := r.s.orders[id]
	if !ok {
		return entities.ErrOrderNotFound
	}
	fn(&o)
	r.s.orders[id] = o
	return nil
}

func (s *memStore) paymentOf(orderID string) entities.Payment {
	for _, p := range s.payments {
		if p.OrderID == orderID {
			return p
		}
	}
	return entities.Payment{}
}

type memPayments struct{ s *memStore }

func (r memPayments) CreatePayment(_ context.Context, p entities.Payment) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.payments[p.ID] = p
	return nil
}

func (r memPayments) FindByExternalRefForUpdate(_ context.Context, ref string) (entities.Payment, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, p := range r.s.payments {
		if p.ExternalRef == ref {
			return p, nil
		}
	}
	return entities.Payment{}, entities.ErrPaymentNotFound
}

func (r memPayments) UpdatePaymentStatus(_ context.Context, id string, status entities.PaymentStatus) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	p, ok := r.s.payments[id]
	if !ok {
		return entities.ErrPaymentNotFound
	}
	p.Status = status
	r.s.payments[id] = p
	return nil
}

func (r memPayments) MarkEventProcessed(context.Context, string, string) (bool, error) {
	return false, errors.New("not supported")
}

type memOutbox struct{ s *memStore }

func (r memOutbox) Enqueue(_ context.Context, msg entities.OutboxMessage) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if r.s.failEnqueue != nil {
		return r.s.failEnqueue
	}
	r.s.outbox = append(r.s.outbox, msg)
	return nil
}
