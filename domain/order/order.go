/*
Package order holds the order aggregate and its lifecycle rules: the status
state machine, the delivery methods, and the stock side effects of status
changes. The aggregate references books and the recipient by identifier
only; resolving them is the job of the application layer.
*/
package order

import "time"

// Order is the order aggregate root. Items are fixed at creation; the only
// mutation after placement is a status change through UpdateStatus.
type Order struct {
	id          string
	status      Status
	items       []OrderItem
	recipientID string
	delivery    Delivery
	createdAt   time.Time
	updatedAt   time.Time
}

// OrderItem is a line of an order, owned exclusively by it. The unit price
// is not snapshotted here; pricing reads the book's current price.
type OrderItem struct {
	bookID   string
	quantity int
}

// NewOrderItem creates an order line. Quantity must be positive.
func NewOrderItem(bookID string, quantity int) (OrderItem, error) {
	if quantity <= 0 {
		return OrderItem{}, ErrInvalidQuantity
	}
	return OrderItem{bookID: bookID, quantity: quantity}, nil
}

func (item OrderItem) BookID() string { return item.bookID }
func (item OrderItem) Quantity() int  { return item.quantity }

// NewOrder creates a new order in status NEW. This is the only way to
// build an order outside the persistence layer.
func NewOrder(id string, items []OrderItem, recipientID string, delivery Delivery, now time.Time) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrderItems
	}
	owned := make([]OrderItem, len(items))
	copy(owned, items)
	return &Order{
		id:          id,
		status:      StatusNew,
		items:       owned,
		recipientID: recipientID,
		delivery:    delivery,
		createdAt:   now,
		updatedAt:   now,
	}, nil
}

// UpdateStatus applies a requested status through the transition table and
// returns the result, including whether reserved stock must be credited
// back. On an illegal transition the order is left untouched.
func (o *Order) UpdateStatus(requested Status, now time.Time) (UpdateStatusResult, error) {
	result, err := Transition(o.status, requested)
	if err != nil {
		return UpdateStatusResult{}, err
	}
	o.status = result.Status
	o.updatedAt = now
	return result, nil
}

func (o *Order) ID() string           { return o.id }
func (o *Order) Status() Status       { return o.status }
func (o *Order) RecipientID() string  { return o.recipientID }
func (o *Order) Delivery() Delivery   { return o.delivery }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) UpdatedAt() time.Time { return o.updatedAt }

// Items returns a copy of the order lines.
func (o *Order) Items() []OrderItem {
	items := make([]OrderItem, len(o.items))
	copy(items, o.items)
	return items
}

// ReconstructionDTO rebuilds an order from storage. Repository use only;
// fields stay private for everyone else.
type ReconstructionDTO struct {
	ID          string
	Status      Status
	Items       []OrderItem
	RecipientID string
	Delivery    Delivery
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// RebuildFromDTO reconstructs an order aggregate from persisted state.
func RebuildFromDTO(dto ReconstructionDTO) *Order {
	return &Order{
		id:          dto.ID,
		status:      dto.Status,
		items:       dto.Items,
		recipientID: dto.RecipientID,
		delivery:    dto.Delivery,
		createdAt:   dto.CreatedAt,
		updatedAt:   dto.UpdatedAt,
	}
}

// RebuildItem reconstructs an order line from persisted state.
func RebuildItem(bookID string, quantity int) OrderItem {
	return OrderItem{bookID: bookID, quantity: quantity}
}
