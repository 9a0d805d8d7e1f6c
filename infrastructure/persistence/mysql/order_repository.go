package mysql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bookstore/domain/order"
	"bookstore/infrastructure/persistence/mysql/po"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OrderRepository is the MySQL implementation of order.Repository.
type OrderRepository struct {
	db *gorm.DB
}

// NewOrderRepository creates a MySQL order repository.
func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{db: db}
}

var _ order.Repository = (*OrderRepository)(nil)

// NextIdentity generates a new order ID.
func (r *OrderRepository) NextIdentity() string {
	return uuid.NewString()
}

// Save writes the order and rewrites its lines.
func (r *OrderRepository) Save(ctx context.Context, o *order.Order) error {
	db := dbFromContext(ctx, r.db)
	orderPO, itemPOs := po.FromOrderDomain(o)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(orderPO).Error; err != nil {
			return fmt.Errorf("failed to save order: %w", err)
		}
		if err := tx.Where("order_id = ?", o.ID()).Delete(&po.OrderItemPO{}).Error; err != nil {
			return fmt.Errorf("failed to clear order items: %w", err)
		}
		if len(itemPOs) == 0 {
			return nil
		}
		if err := tx.Create(&itemPOs).Error; err != nil {
			return fmt.Errorf("failed to save order items: %w", err)
		}
		return nil
	})
}

// FindByID loads an order with its lines.
func (r *OrderRepository) FindByID(ctx context.Context, id string) (*order.Order, error) {
	db := dbFromContext(ctx, r.db)
	var orderPO po.OrderPO
	if err := db.Where("id = ?", id).First(&orderPO).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, order.ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	itemPOs, err := r.itemsFor(ctx, id)
	if err != nil {
		return nil, err
	}
	return orderPO.ToDomain(itemPOs), nil
}

func (r *OrderRepository) itemsFor(ctx context.Context, orderID string) ([]po.OrderItemPO, error) {
	db := dbFromContext(ctx, r.db)
	var itemPOs []po.OrderItemPO
	if err := db.Where("order_id = ?", orderID).Order("id ASC").Find(&itemPOs).Error; err != nil {
		return nil, fmt.Errorf("failed to load order items: %w", err)
	}
	return itemPOs, nil
}

// FindPage lists orders oldest first, optionally filtered by status.
func (r *OrderRepository) FindPage(ctx context.Context, query order.PageQuery) ([]*order.Order, int64, error) {
	db := dbFromContext(ctx, r.db)

	tx := db.Model(&po.OrderPO{})
	if query.Status != nil {
		tx = tx.Where("status = ?", string(*query.Status))
	}

	var total int64
	if err := tx.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	page, pageSize := normalizePage(query.Page, query.PageSize)
	var orderPOs []po.OrderPO
	if err := tx.Order("created_at ASC, id ASC").
		Offset((page - 1) * pageSize).
		Limit(pageSize).
		Find(&orderPOs).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}

	return r.toDomainList(ctx, orderPOs, total)
}

// FindByStatusAndCreatedAtBefore returns orders in the given status created
// at or before the cutoff, oldest first.
func (r *OrderRepository) FindByStatusAndCreatedAtBefore(ctx context.Context, status order.Status, cutoff time.Time) ([]*order.Order, error) {
	db := dbFromContext(ctx, r.db)
	var orderPOs []po.OrderPO
	err := db.Where("status = ? AND created_at <= ?", string(status), cutoff).
		Order("created_at ASC").
		Find(&orderPOs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list stale orders: %w", err)
	}
	orders, _, err := r.toDomainList(ctx, orderPOs, 0)
	return orders, err
}

func (r *OrderRepository) toDomainList(ctx context.Context, orderPOs []po.OrderPO, total int64) ([]*order.Order, int64, error) {
	orders := make([]*order.Order, 0, len(orderPOs))
	for i := range orderPOs {
		itemPOs, err := r.itemsFor(ctx, orderPOs[i].ID)
		if err != nil {
			return nil, 0, err
		}
		orders = append(orders, orderPOs[i].ToDomain(itemPOs))
	}
	return orders, total, nil
}

// Remove deletes an order and its lines.
func (r *OrderRepository) Remove(ctx context.Context, id string) error {
	db := dbFromContext(ctx, r.db)
	return db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&po.OrderItemPO{}).Error; err != nil {
			return fmt.Errorf("failed to delete order items: %w", err)
		}
		result := tx.Where("id = ?", id).Delete(&po.OrderPO{})
		if result.Error != nil {
			return fmt.Errorf("failed to delete order: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return order.ErrOrderNotFound
		}
		return nil
	})
}
