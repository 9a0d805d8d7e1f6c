package po

import (
	"time"

	"bookstore/domain/order"
)

// OrderPO is the persistence object for orders.
type OrderPO struct {
	ID          string    `gorm:"column:id;primaryKey;size:64"`
	Status      string    `gorm:"column:status;size:16;not null;index:idx_orders_status_created,priority:1"`
	RecipientID string    `gorm:"column:recipient_id;size:64;not null;index:idx_orders_recipient"`
	Delivery    string    `gorm:"column:delivery;size:16;not null"`
	CreatedAt   time.Time `gorm:"column:created_at;not null;index:idx_orders_status_created,priority:2"`
	UpdatedAt   time.Time `gorm:"column:updated_at;not null"`
}

// TableName returns the table name for OrderPO.
func (OrderPO) TableName() string {
	return "orders"
}

// OrderItemPO is the persistence object for order lines. Lines are owned by
// their order and rewritten wholesale on save.
type OrderItemPO struct {
	ID       uint   `gorm:"column:id;primaryKey;autoIncrement"`
	OrderID  string `gorm:"column:order_id;size:64;not null;index:idx_order_items_order"`
	BookID   string `gorm:"column:book_id;size:64;not null"`
	Quantity int    `gorm:"column:quantity;not null"`
}

// TableName returns the table name for OrderItemPO.
func (OrderItemPO) TableName() string {
	return "order_items"
}

// FromOrderDomain converts a domain order to its persistence objects.
func FromOrderDomain(o *order.Order) (*OrderPO, []OrderItemPO) {
	items := o.Items()
	itemPOs := make([]OrderItemPO, 0, len(items))
	for _, item := range items {
		itemPOs = append(itemPOs, OrderItemPO{
			OrderID:  o.ID(),
			BookID:   item.BookID(),
			Quantity: item.Quantity(),
		})
	}
	return &OrderPO{
		ID:          o.ID(),
		Status:      string(o.Status()),
		RecipientID: o.RecipientID(),
		Delivery:    string(o.Delivery()),
		CreatedAt:   o.CreatedAt(),
		UpdatedAt:   o.UpdatedAt(),
	}, itemPOs
}

// ToDomain reconstructs the order aggregate from persisted rows.
func (p *OrderPO) ToDomain(itemPOs []OrderItemPO) *order.Order {
	items := make([]order.OrderItem, 0, len(itemPOs))
	for _, item := range itemPOs {
		items = append(items, order.RebuildItem(item.BookID, item.Quantity))
	}
	return order.RebuildFromDTO(order.ReconstructionDTO{
		ID:          p.ID,
		Status:      order.Status(p.Status),
		Items:       items,
		RecipientID: p.RecipientID,
		Delivery:    order.Delivery(p.Delivery),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	})
}
