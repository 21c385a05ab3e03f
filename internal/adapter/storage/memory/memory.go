// Package memory keeps orders in process memory. It enforces the same
// one-open-order-per-purchase constraint as the Postgres schema and is used
// when no database is configured.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/MikeRez0/studiocheckout/internal/core/domain"
	"github.com/MikeRez0/studiocheckout/internal/core/port"
)

type Repository struct {
	mu        sync.RWMutex
	orders    map[string]*domain.Order
	open      map[domain.PurchaseKey]string
	byGateway map[string]string
}

func NewRepository() *Repository {
	return &Repository{
		orders:    make(map[string]*domain.Order),
		open:      make(map[domain.PurchaseKey]string),
		byGateway: make(map[string]string),
	}
}

// gatewayTaken reports whether gatewayOrderID belongs to an order other than orderID.
func (r *Repository) gatewayTaken(gatewayOrderID, orderID string) bool {
	if gatewayOrderID == "" {
		return false
	}
	owner, ok := r.byGateway[gatewayOrderID]
	return ok && owner != orderID
}

func (r *Repository) CreateOrder(_ context.Context, order *domain.Order) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.orders[order.ID]; ok {
		return nil, domain.ErrConflictingData
	}
	if r.gatewayTaken(order.GatewayOrderID, order.ID) {
		return nil, domain.ErrConflictingData
	}
	if !order.State.Terminal() {
		if _, ok := r.open[order.Key()]; ok {
			return nil, domain.ErrConflictingData
		}
		r.open[order.Key()] = order.ID
	}
	if order.GatewayOrderID != "" {
		r.byGateway[order.GatewayOrderID] = order.ID
	}

	r.orders[order.ID] = clone(order)
	return clone(order), nil
}

func (r *Repository) ReadOrder(_ context.Context, orderID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	o, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return clone(o), nil
}

func (r *Repository) ReadOrderByGatewayID(_ context.Context, gatewayOrderID string) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byGateway[gatewayOrderID]
	if !ok || gatewayOrderID == "" {
		return nil, domain.ErrDataNotFound
	}
	return clone(r.orders[id]), nil
}

func (r *Repository) FindOpenOrder(_ context.Context, key domain.PurchaseKey) (*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.open[key]
	if !ok {
		return nil, domain.ErrDataNotFound
	}
	return clone(r.orders[id]), nil
}

func (r *Repository) ListStaleOrders(_ context.Context, createdBefore time.Time, limit int) ([]*domain.Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	list := make([]*domain.Order, 0)
	for _, id := range r.open {
		o := r.orders[id]
		if o.CreatedAt.Before(createdBefore) {
			list = append(list, clone(o))
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].CreatedAt.Before(list[j].CreatedAt) })
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list, nil
}

func (r *Repository) UpdateOrder(_ context.Context, orderID string, updateFn port.UpdateOrderFn) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	stored, ok := r.orders[orderID]
	if !ok {
		return nil, domain.ErrDataNotFound
	}

	o := clone(stored)
	if err := updateFn(o); err != nil {
		return nil, err
	}
	if r.gatewayTaken(o.GatewayOrderID, o.ID) {
		return nil, domain.ErrConflictingData
	}
	keepAmounts(o, stored)

	if stored.GatewayOrderID != o.GatewayOrderID {
		delete(r.byGateway, stored.GatewayOrderID)
		if o.GatewayOrderID != "" {
			r.byGateway[o.GatewayOrderID] = o.ID
		}
	}
	if o.State.Terminal() {
		if r.open[o.Key()] == o.ID {
			delete(r.open, o.Key())
		}
	}
	r.orders[orderID] = clone(o)
	return o, nil
}

func (r *Repository) Ping(context.Context) error {
	return nil
}

// keepAmounts restores the priced amounts, which are fixed at creation.
func keepAmounts(o, stored *domain.Order) {
	o.BaseAmount = stored.BaseAmount
	o.DiscountAmount = stored.DiscountAmount
	o.WalletAmount = stored.WalletAmount
	o.TaxAmount = stored.TaxAmount
	o.TotalAmount = stored.TotalAmount
	o.Currency = stored.Currency
	o.DiscountCode = stored.DiscountCode
}

func clone(o *domain.Order) *domain.Order {
	c := *o
	if o.SettledAt != nil {
		t := *o.SettledAt
		c.SettledAt = &t
	}
	return &c
}
