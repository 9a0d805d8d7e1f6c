package memory

import (
	"context"
	"sort"
	"time"

	"bookstore/domain/order"

	"github.com/google/uuid"
)

type orderItemRecord struct {
	bookID   string
	quantity int
}

type orderRecord struct {
	id          string
	status      order.Status
	items       []orderItemRecord
	recipientID string
	delivery    order.Delivery
	createdAt   time.Time
	updatedAt   time.Time
}

func orderRecordFromDomain(o *order.Order) orderRecord {
	items := o.Items()
	itemRecords := make([]orderItemRecord, 0, len(items))
	for _, item := range items {
		itemRecords = append(itemRecords, orderItemRecord{bookID: item.BookID(), quantity: item.Quantity()})
	}
	return orderRecord{
		id:          o.ID(),
		status:      o.Status(),
		items:       itemRecords,
		recipientID: o.RecipientID(),
		delivery:    o.Delivery(),
		createdAt:   o.CreatedAt(),
		updatedAt:   o.UpdatedAt(),
	}
}

func (rec orderRecord) toDomain() *order.Order {
	items := make([]order.OrderItem, 0, len(rec.items))
	for _, item := range rec.items {
		items = append(items, order.RebuildItem(item.bookID, item.quantity))
	}
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:          rec.id,
		Status:      rec.status,
		Items:       items,
		RecipientID: rec.recipientID,
		Delivery:    rec.delivery,
		CreatedAt:   rec.createdAt,
		UpdatedAt:   rec.updatedAt,
	})
}

// OrderRepository is the in-memory implementation of order.Repository.
type OrderRepository struct {
	store *Store
}

// NewOrderRepository creates an in-memory order repository.
func NewOrderRepository(store *Store) *OrderRepository {
	return &OrderRepository{store: store}
}

var _ order.Repository = (*OrderRepository)(nil)

// NextIdentity generates a new order ID.
func (r *OrderRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the order with its lines.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.orders[o.ID()] = orderRecordFromDomain(o)
	return nil
}

// FindByID loads an order.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	rec, ok := r.store.orders[id]
	if !ok {
		return nil, order.ErrOrderNotFound
	}
	return rec.toDomain(), nil
}

// FindPage lists orders oldest first, optionally filtered by status.
func (r *OrderRepository) FindPage(ctx context.Context, query order.PageQuery) ([]*order.Order, int64, error) {
	r.store.mu.RLock()
	matched := make([]*order.Order, 0, len(r.store.orders))
	for _, rec := range r.store.orders {
		if query.Status != nil && rec.status != *query.Status {
			continue
		}
		matched = append(matched, rec.toDomain())
	}
	r.store.mu.RUnlock()

	sortByCreatedAt(matched)
	total := int64(len(matched))
	return pageOf(matched, query.Page, query.PageSize), total, nil
}

// FindByStatusAndCreatedAtBefore returns orders in the given status created
// at or before the cutoff, oldest first.
func (r *OrderRepository) FindByStatusAndCreatedAtBefore(ctx context.Context, status order.Status, cutoff time.Time) ([]*order.Order, error) {
	r.store.mu.RLock()
	matched := make([]*order.Order, 0)
	for _, rec := range r.store.orders {
		if rec.status == status && !rec.createdAt.After(cutoff) {
			matched = append(matched, rec.toDomain())
		}
	}
	r.store.mu.RUnlock()

	sortByCreatedAt(matched)
	return matched, nil
}

// Remove deletes an order.
func (r *OrderRepository) Remove(ctx context.Context, id string) error {
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.orders[id]; !ok {
		return order.ErrOrderNotFound
	}
	delete(r.store.orders, id)
	return nil
}

func sortByCreatedAt(orders []*order.Order) {
	sort.Slice(orders, func(i, j int) bool {
		if orders[i].CreatedAt().Equal(orders[j].CreatedAt()) {
			return orders[i].ID() < orders[j].ID()
		}
		return orders[i].CreatedAt().Before(orders[j].CreatedAt())
	})
}
