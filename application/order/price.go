/*
Package order orchestrates the order lifecycle: placement with stock
reservation, status changes with their stock side effects, pricing with
discount policies, and the scheduled abandonment of unpaid orders.
*/
package order

import (
	"context"

	"bookstore/domain/catalog"
	"bookstore/domain/order"
	"bookstore/domain/shared"
)

// PricedLine is one order line priced at the book's current catalog price.
type PricedLine struct {
	BookID    string
	Title     string
	UnitPrice shared.Money
	Quantity  int
}

// LineTotal returns unit price times quantity.
func (l PricedLine) LineTotal() shared.Money {
	return l.UnitPrice.MultiplyInt(l.Quantity)
}

// OrderSnapshot is the priced view of an order that discount policies see.
type OrderSnapshot struct {
	Lines         []PricedLine
	ItemsPrice    shared.Money
	DeliveryPrice shared.Money
}

// OrderPrice is the result of pricing an order.
type OrderPrice struct {
	ItemsPrice    shared.Money
	DeliveryPrice shared.Money
	Discount      shared.Money
}

// FinalPrice returns items plus delivery minus discount, never below zero.
func (p OrderPrice) FinalPrice() shared.Money {
	final := p.ItemsPrice.Add(p.DeliveryPrice).Subtract(p.Discount)
	if final.IsNegative() {
		return shared.Zero
	}
	return final
}

// PriceService prices orders against the current catalog. Prices are read
// at pricing time, not snapshotted at placement, so the total of an open
// order follows catalog price changes.
type PriceService struct {
	bookRepo catalog.BookRepository
	policies []DiscountPolicy
}

// NewPriceService creates a price service with the standard policy chain.
func NewPriceService(bookRepo catalog.BookRepository) *PriceService {
	return &PriceService{
		bookRepo: bookRepo,
		policies: []DiscountPolicy{
			DeliveryDiscountPolicy{},
			TotalPriceDiscountPolicy{},
		},
	}
}

// Price computes the order's price with every discount policy applied.
// Discounts from different policies add up.
func (s *PriceService) Price(ctx context.Context, o *order.Order) (OrderPrice, OrderSnapshot, error) {
	snapshot, err := s.Snapshot(ctx, o)
	if err != nil {
		return OrderPrice{}, OrderSnapshot{}, err
	}

	discount := shared.Zero
	for _, policy := range s.policies {
		discount = discount.Add(policy.Discount(snapshot))
	}

	return OrderPrice{
		ItemsPrice:    snapshot.ItemsPrice,
		DeliveryPrice: snapshot.DeliveryPrice,
		Discount:      discount,
	}, snapshot, nil
}

// Snapshot resolves every line against the catalog and totals the items.
// Delivery is free when the order has no lines.
func (s *PriceService) Snapshot(ctx context.Context, o *order.Order) (OrderSnapshot, error) {
	items := o.Items()
	lines := make([]PricedLine, 0, len(items))
	itemsPrice := shared.Zero
	for _, item := range items {
		book, err := s.bookRepo.FindByID(ctx, item.BookID())
		if err != nil {
			return OrderSnapshot{}, err
		}
		line := PricedLine{
			BookID:    book.ID,
			Title:     book.Title,
			UnitPrice: book.Price,
			Quantity:  item.Quantity(),
		}
		lines = append(lines, line)
		itemsPrice = itemsPrice.Add(line.LineTotal())
	}

	deliveryPrice := shared.Zero
	if len(lines) > 0 {
		deliveryPrice = o.Delivery().Price()
	}

	return OrderSnapshot{
		Lines:         lines,
		ItemsPrice:    itemsPrice,
		DeliveryPrice: deliveryPrice,
	}, nil
}
